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

func (ctrl CatalogController) InsertAccommodation(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CatalogController InsertAccommodation")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(constants.KEY_TAG, "CatalogController InsertAccommodation").
		Logger()
	c = logger.WithContext(c)

	p, err := principal(c)
	if err != nil {
		writeFailed(c, w, span, http.StatusUnauthorized, err)
		return
	}

	logger.Trace().Msg("decoding request body")
	reqBody := request.InsertAccommodation{}
	if err := ctrl.decodeAndValidate(c, r, &reqBody); err != nil {
		writeFailed(c, w, span, http.StatusBadRequest, err)
		return
	}
	logger.Trace().Msg("decoded request body")

	accommodation, err := ctrl.service.InsertAccommodation(c, p, reqBody)
	if err != nil {
		err = fmt.Errorf("failed inserting accommodation with error=%w", err)
		writeFailed(c, w, span, inHttp.StatusFromError(err), err)
		return
	}
	logger.Info().Msg("inserted accommodation")

	writeSuccess(c, w, http.StatusCreated, "successfully inserted accommodation", map[string]interface{}{
		"accommodation": accommodation,
	})
}

func (ctrl CatalogController) FindAccommodationById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CatalogController FindAccommodationById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(constants.KEY_TAG, "CatalogController FindAccommodationById").
		Logger()
	c = logger.WithContext(c)

	id, err := pathID(r)
	if err != nil {
		writeFailed(c, w, span, http.StatusBadRequest, err)
		return
	}

	accommodation, err := ctrl.service.FindAccommodationById(c, id)
	if err != nil {
		err = fmt.Errorf("failed finding accommodation with error=%w", err)
		writeFailed(c, w, span, inHttp.StatusFromError(err), err)
		return
	}

	writeSuccess(c, w, http.StatusOK, "successfully found accommodation", map[string]interface{}{
		"accommodation": accommodation,
	})
}

func (ctrl CatalogController) ListAccommodations(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CatalogController ListAccommodations")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(constants.KEY_TAG, "CatalogController ListAccommodations").
		Logger()
	c = logger.WithContext(c)

	param := request.ListAccommodations{Category: r.URL.Query().Get("category")}
	if err := ctrl.validate.StructCtx(c, param); err != nil {
		writeFailed(c, w, span, http.StatusBadRequest, fmt.Errorf("failed validating query with error=%w", err))
		return
	}

	accommodations, err := ctrl.service.ListAccommodations(c, param)
	if err != nil {
		err = fmt.Errorf("failed listing accommodations with error=%w", err)
		writeFailed(c, w, span, inHttp.StatusFromError(err), err)
		return
	}

	writeSuccess(c, w, http.StatusOK, "successfully listed accommodations", map[string]interface{}{
		"accommodations": accommodations,
	})
}

func (ctrl CatalogController) DeleteAccommodation(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CatalogController DeleteAccommodation")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(constants.KEY_TAG, "CatalogController DeleteAccommodation").
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

	if err := ctrl.service.DeleteAccommodation(c, p, id); err != nil {
		err = fmt.Errorf("failed deleting accommodation with error=%w", err)
		writeFailed(c, w, span, inHttp.StatusFromError(err), err)
		return
	}

	writeSuccess(c, w, http.StatusOK, "successfully deleted accommodation", map[string]interface{}{
		"id": id,
	})
}

func (ctrl CatalogController) UpdateAccommodation(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CatalogController UpdateAccommodation")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(constants.KEY_TAG, "CatalogController UpdateAccommodation").
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
	reqBody := request.UpdateAccommodation{}
	if err := ctrl.decodeAndValidate(c, r, &reqBody); err != nil {
		writeFailed(c, w, span, http.StatusBadRequest, err)
		return
	}
	logger.Trace().Msg("decoded request body")

	accommodation, err := ctrl.service.UpdateAccommodation(c, p, id, reqBody)
	if err != nil {
		err = fmt.Errorf("failed updating accommodation with error=%w", err)
		writeFailed(c, w, span, inHttp.StatusFromError(err), err)
		return
	}
	logger.Info().Msg("updated accommodation")

	writeSuccess(c, w, http.StatusOK, "successfully updated accommodation", map[string]interface{}{
		"accommodation": accommodation,
	})
}
