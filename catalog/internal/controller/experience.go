package controller

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/journey/catalog/internal/otel"
	"github.com/Alturino/journey/catalog/pkg/request"
	"github.com/Alturino/journey/internal/constants"
	inHttp "github.com/Alturino/journey/internal/http"
)

func (ctrl CatalogController) InsertExperience(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CatalogController InsertExperience")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(constants.KEY_TAG, "CatalogController InsertExperience").
		Logger()
	c = logger.WithContext(c)

	p, err := principal(c)
	if err != nil {
		writeFailed(c, w, span, http.StatusUnauthorized, err)
		return
	}

	logger.Trace().Msg("decoding request body")
	reqBody := request.InsertExperience{}
	if err := ctrl.decodeAndValidate(c, r, &reqBody); err != nil {
		writeFailed(c, w, span, http.StatusBadRequest, err)
		return
	}
	reqBody.CreatedBy = p.UserID
	logger.Trace().Msg("decoded request body")

	experience, err := ctrl.service.InsertExperience(c, p, reqBody)
	if err != nil {
		err = fmt.Errorf("failed inserting experience with error=%w", err)
		writeFailed(c, w, span, inHttp.StatusFromError(err), err)
		return
	}
	logger.Info().Msg("inserted experience")

	writeSuccess(c, w, http.StatusCreated, "successfully inserted experience", map[string]interface{}{
		"experience": experience,
	})
}

func (ctrl CatalogController) FindExperienceById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CatalogController FindExperienceById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(constants.KEY_TAG, "CatalogController FindExperienceById").
		Logger()
	c = logger.WithContext(c)

	id, err := pathID(r)
	if err != nil {
		writeFailed(c, w, span, http.StatusBadRequest, err)
		return
	}

	experience, err := ctrl.service.FindExperienceById(c, id)
	if err != nil {
		err = fmt.Errorf("failed finding experience with error=%w", err)
		writeFailed(c, w, span, inHttp.StatusFromError(err), err)
		return
	}

	writeSuccess(c, w, http.StatusOK, "successfully found experience", map[string]interface{}{
		"experience":    experience,
		"isFullyBooked": experience.IsFullyBooked(),
	})
}

func (ctrl CatalogController) ListExperiences(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CatalogController ListExperiences")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(constants.KEY_TAG, "CatalogController ListExperiences").
		Logger()
	c = logger.WithContext(c)

	param := request.ListExperiences{Category: r.URL.Query().Get("category")}
	if err := ctrl.validate.StructCtx(c, param); err != nil {
		writeFailed(c, w, span, http.StatusBadRequest, fmt.Errorf("failed validating query with error=%w", err))
		return
	}

	experiences, err := ctrl.service.ListExperiences(c, param)
	if err != nil {
		err = fmt.Errorf("failed listing experiences with error=%w", err)
		writeFailed(c, w, span, inHttp.StatusFromError(err), err)
		return
	}

	writeSuccess(c, w, http.StatusOK, "successfully listed experiences", map[string]interface{}{
		"experiences": experiences,
	})
}

func (ctrl CatalogController) DeleteExperience(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CatalogController DeleteExperience")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(constants.KEY_TAG, "CatalogController DeleteExperience").
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

	if err := ctrl.service.DeleteExperience(c, p, id); err != nil {
		err = fmt.Errorf("failed deleting experience with error=%w", err)
		writeFailed(c, w, span, inHttp.StatusFromError(err), err)
		return
	}

	writeSuccess(c, w, http.StatusOK, "successfully deleted experience", map[string]interface{}{
		"id": id,
	})
}

func (ctrl CatalogController) UpdateExperience(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CatalogController UpdateExperience")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(constants.KEY_TAG, "CatalogController UpdateExperience").
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
	reqBody := request.UpdateExperience{}
	if err := ctrl.decodeAndValidate(c, r, &reqBody); err != nil {
		writeFailed(c, w, span, http.StatusBadRequest, err)
		return
	}
	logger.Trace().Msg("decoded request body")

	experience, err := ctrl.service.UpdateExperience(c, p, id, reqBody)
	if err != nil {
		err = fmt.Errorf("failed updating experience with error=%w", err)
		writeFailed(c, w, span, inHttp.StatusFromError(err), err)
		return
	}
	logger.Info().Msg("updated experience")

	writeSuccess(c, w, http.StatusOK, "successfully updated experience", map[string]interface{}{
		"experience": experience,
	})
}

func (ctrl CatalogController) UpdateExperienceSlot(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CatalogController UpdateExperienceSlot")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(constants.KEY_TAG, "CatalogController UpdateExperienceSlot").
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
	slotID, err := uuid.Parse(mux.Vars(r)["slotId"])
	if err != nil {
		writeFailed(c, w, span, http.StatusBadRequest, fmt.Errorf("failed parsing slotId with error=%w", err))
		return
	}

	logger.Trace().Msg("decoding request body")
	reqBody := request.UpdateSlot{}
	if err := ctrl.decodeAndValidate(c, r, &reqBody); err != nil {
		writeFailed(c, w, span, http.StatusBadRequest, err)
		return
	}
	logger.Trace().Msg("decoded request body")

	experience, err := ctrl.service.UpdateExperienceSlot(c, p, id, slotID, reqBody)
	if err != nil {
		err = fmt.Errorf("failed updating experience slot with error=%w", err)
		writeFailed(c, w, span, inHttp.StatusFromError(err), err)
		return
	}
	logger.Info().Msg("updated experience slot")

	writeSuccess(c, w, http.StatusOK, "successfully updated experience slot", map[string]interface{}{
		"experience": experience,
	})
}
