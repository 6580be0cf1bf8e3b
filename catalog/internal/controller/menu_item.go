package controller

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Alturino/journey/catalog/internal/otel"
	"github.com/Alturino/journey/catalog/pkg/request"
	"github.com/Alturino/journey/internal/constants"
	inHttp "github.com/Alturino/journey/internal/http"
)

func (ctrl CatalogController) InsertMenuItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CatalogController InsertMenuItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(constants.KEY_TAG, "CatalogController InsertMenuItem").
		Logger()
	c = logger.WithContext(c)

	p, err := principal(c)
	if err != nil {
		writeFailed(c, w, span, http.StatusUnauthorized, err)
		return
	}

	logger.Trace().Msg("decoding request body")
	reqBody := request.InsertMenuItem{}
	if err := ctrl.decodeAndValidate(c, r, &reqBody); err != nil {
		writeFailed(c, w, span, http.StatusBadRequest, err)
		return
	}
	logger.Trace().Msg("decoded request body")

	menuItem, err := ctrl.service.InsertMenuItem(c, p, reqBody)
	if err != nil {
		err = fmt.Errorf("failed inserting menu item with error=%w", err)
		writeFailed(c, w, span, inHttp.StatusFromError(err), err)
		return
	}
	logger.Info().Msg("inserted menu item")

	writeSuccess(c, w, http.StatusCreated, "successfully inserted menu item", map[string]interface{}{
		"menuItem": menuItem,
	})
}

func (ctrl CatalogController) FindMenuItemById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CatalogController FindMenuItemById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(constants.KEY_TAG, "CatalogController FindMenuItemById").
		Logger()
	c = logger.WithContext(c)

	id, err := pathID(r)
	if err != nil {
		writeFailed(c, w, span, http.StatusBadRequest, err)
		return
	}

	menuItem, err := ctrl.service.FindMenuItemById(c, id)
	if err != nil {
		err = fmt.Errorf("failed finding menu item with error=%w", err)
		writeFailed(c, w, span, inHttp.StatusFromError(err), err)
		return
	}

	writeSuccess(c, w, http.StatusOK, "successfully found menu item", map[string]interface{}{
		"menuItem": menuItem,
	})
}

func (ctrl CatalogController) ListMenuItems(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CatalogController ListMenuItems")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(constants.KEY_TAG, "CatalogController ListMenuItems").
		Logger()
	c = logger.WithContext(c)

	param := request.ListMenuItems{Venue: r.URL.Query().Get("venue")}
	if err := ctrl.validate.StructCtx(c, param); err != nil {
		writeFailed(c, w, span, http.StatusBadRequest, fmt.Errorf("failed validating query with error=%w", err))
		return
	}

	menuItems, err := ctrl.service.ListMenuItems(c, param)
	if err != nil {
		err = fmt.Errorf("failed listing menu items with error=%w", err)
		writeFailed(c, w, span, inHttp.StatusFromError(err), err)
		return
	}

	writeSuccess(c, w, http.StatusOK, "successfully listed menu items", map[string]interface{}{
		"menuItems": menuItems,
	})
}

func (ctrl CatalogController) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CatalogController DeleteMenuItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(constants.KEY_TAG, "CatalogController DeleteMenuItem").
		Logger()
	c = logger.WithContext(c)

	p, err := principal(c)
	if err != nil {
		writeFailed(c, w, span, http.StatusUnauthorized, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeFailed(c, w, span, http.StatusBadRequest, err)
		return
	}

	if err := ctrl.service.DeleteMenuItem(c, p, id); err != nil {
		err = fmt.Errorf("failed deleting menu item with error=%w", err)
		writeFailed(c, w, span, inHttp.StatusFromError(err), err)
		return
	}

	writeSuccess(c, w, http.StatusOK, "successfully deleted menu item", map[string]interface{}{
		"id": id,
	})
}

func (ctrl CatalogController) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CatalogController UpdateMenuItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(constants.KEY_TAG, "CatalogController UpdateMenuItem").
		Logger()
	c = logger.WithContext(c)

	p, err := principal(c)
	if err != nil {
		writeFailed(c, w, span, http.StatusUnauthorized, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeFailed(c, w, span, http.StatusBadRequest, err)
		return
	}

	logger.Trace().Msg("decoding request body")
	reqBody := request.UpdateMenuItem{}
	if err := ctrl.decodeAndValidate(c, r, &reqBody); err != nil {
		writeFailed(c, w, span, http.StatusBadRequest, err)
		return
	}
	logger.Trace().Msg("decoded request body")

	menuItem, err := ctrl.service.UpdateMenuItem(c, p, id, reqBody)
	if err != nil {
		err = fmt.Errorf("failed updating menu item with error=%w", err)
		writeFailed(c, w, span, inHttp.StatusFromError(err), err)
		return
	}
	logger.Info().Msg("updated menu item")

	writeSuccess(c, w, http.StatusOK, "successfully updated menu item", map[string]interface{}{
		"menuItem": menuItem,
	})
}
