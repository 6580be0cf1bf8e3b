package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/Alturino/journey/catalog/internal/otel"
	"github.com/Alturino/journey/catalog/internal/service"
	"github.com/Alturino/journey/internal/auth"
	"github.com/Alturino/journey/internal/constants"
	inErrors "github.com/Alturino/journey/internal/errors"
	inHttp "github.com/Alturino/journey/internal/http"
	"github.com/Alturino/journey/internal/middleware"
	inOtel "github.com/Alturino/journey/internal/otel"
	"github.com/Alturino/journey/internal/validate"
)

type CatalogController struct {
	service  *service.CatalogService
	validate *validator.Validate
}

func AttachCatalogController(router *mux.Router, service *service.CatalogService, secretKey []byte) {
	ctrl := CatalogController{service: service, validate: validate.New()}

	router.HandleFunc("/experiences", ctrl.ListExperiences).Methods(http.MethodGet)
	router.HandleFunc("/experiences/{id}", ctrl.FindExperienceById).Methods(http.MethodGet)
	router.HandleFunc("/accommodations", ctrl.ListAccommodations).Methods(http.MethodGet)
	router.HandleFunc("/accommodations/{id}", ctrl.FindAccommodationById).Methods(http.MethodGet)
	router.HandleFunc("/menu-items", ctrl.ListMenuItems).Methods(http.MethodGet)
	router.HandleFunc("/menu-items/{id}", ctrl.FindMenuItemById).Methods(http.MethodGet)

	protected := router.NewRoute().Subrouter()
	protected.Use(middleware.Auth(secretKey))
	protected.HandleFunc("/experiences", ctrl.InsertExperience).Methods(http.MethodPost)
	protected.HandleFunc("/experiences/{id}", ctrl.UpdateExperience).Methods(http.MethodPut)
	protected.HandleFunc("/experiences/{id}", ctrl.DeleteExperience).Methods(http.MethodDelete)
	protected.HandleFunc("/experiences/{id}/slots/{slotId}", ctrl.UpdateExperienceSlot).Methods(http.MethodPut)
	protected.HandleFunc("/accommodations", ctrl.InsertAccommodation).Methods(http.MethodPost)
	protected.HandleFunc("/accommodations/{id}", ctrl.UpdateAccommodation).Methods(http.MethodPut)
	protected.HandleFunc("/accommodations/{id}", ctrl.DeleteAccommodation).Methods(http.MethodDelete)
	protected.HandleFunc("/menu-items", ctrl.InsertMenuItem).Methods(http.MethodPost)
	protected.HandleFunc("/menu-items/{id}", ctrl.UpdateMenuItem).Methods(http.MethodPut)
	protected.HandleFunc("/menu-items/{id}", ctrl.DeleteMenuItem).Methods(http.MethodDelete)
	protected.HandleFunc("/me/dashboard", ctrl.Dashboard).Methods(http.MethodGet)
}

func writeFailed(c context.Context, w http.ResponseWriter, span trace.Span, statusCode int, err error) {
	inOtel.RecordError(err, span)
	logger := zerolog.Ctx(c)
	if statusCode >= http.StatusInternalServerError {
		logger.Error().Err(err).Msg(err.Error())
	} else {
		logger.Info().Err(err).Msg(err.Error())
	}
	inHttp.WriteErrorResponse(c, w, statusCode, err)
}

func writeSuccess(c context.Context, w http.ResponseWriter, statusCode int, message string, data map[string]interface{}) {
	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": statusCode,
		"message":    message,
		"data":       data,
	})
}

func (ctrl CatalogController) decodeAndValidate(c context.Context, r *http.Request, body interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(body); err != nil {
		return fmt.Errorf("failed decoding request body with error=%w", err)
	}
	if err := ctrl.validate.StructCtx(c, body); err != nil {
		return fmt.Errorf("failed validating request body with error=%w", err)
	}
	return nil
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed parsing id with error=%w", err)
	}
	return id, nil
}

func principal(c context.Context) (auth.Principal, error) {
	p, ok := auth.PrincipalFromContext(c)
	if !ok {
		return auth.Principal{}, inErrors.ErrEmptyAuth
	}
	return p, nil
}

func (ctrl CatalogController) Dashboard(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CatalogController Dashboard")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(constants.KEY_TAG, "CatalogController Dashboard").Logger()
	c = logger.WithContext(c)

	p, err := principal(c)
	if err != nil {
		writeFailed(c, w, span, http.StatusUnauthorized, err)
		return
	}
	dashboard, err := p.Role.Dashboard()
	if err != nil {
		writeFailed(c, w, span, http.StatusForbidden, err)
		return
	}
	logger.Info().Str(constants.KEY_ROLE, p.Role.String()).Msg("resolved dashboard")

	writeSuccess(c, w, http.StatusOK, "successfully resolved dashboard", map[string]interface{}{
		"dashboard": dashboard,
		"role":      p.Role.String(),
		"userId":    p.UserID,
	})
}
