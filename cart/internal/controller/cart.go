package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Alturino/journey/cart/internal/otel"
	"github.com/Alturino/journey/cart/internal/service"
	"github.com/Alturino/journey/cart/pkg/journey"
	"github.com/Alturino/journey/cart/pkg/request"
	"github.com/Alturino/journey/internal/constants"
	inHttp "github.com/Alturino/journey/internal/http"
	inOtel "github.com/Alturino/journey/internal/otel"
	"github.com/Alturino/journey/internal/validate"
)

type CartController struct {
	service  *service.CartService
	validate *validator.Validate
}

func AttachCartController(mux *mux.Router, service *service.CartService) {
	controller := CartController{service: service, validate: validate.New()}

	router := mux.PathPrefix("/carts/{sessionId}").Subrouter()
	router.HandleFunc("", controller.GetCart).Methods(http.MethodGet)
	router.HandleFunc("", controller.DeleteCart).Methods(http.MethodDelete)
	router.HandleFunc("/items", controller.AddItem).Methods(http.MethodPost)
	router.HandleFunc("/items", controller.RemoveByName).Methods(http.MethodDelete).Queries("name", "{name}")
	router.HandleFunc("/items/{itemId}", controller.RemoveItem).Methods(http.MethodDelete)
	router.HandleFunc("/conflicts", controller.CheckConflict).Methods(http.MethodPost)
}

func statusFromError(err error) int {
	if errors.Is(err, journey.ErrMalformedItem) {
		return http.StatusBadRequest
	}
	return inHttp.StatusFromError(err)
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

func writeResponse(
	c context.Context,
	w http.ResponseWriter,
	status string,
	statusCode int,
	message string,
	data map[string]interface{},
) {
	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     status,
		"statusCode": statusCode,
		"message":    message,
		"data":       data,
	})
}

func uuidVar(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed parsing %s with error=%w", name, err)
	}
	return id, nil
}

// start opens the handler span and attaches a logger carrying the session id.
func start(r *http.Request, tag string) (context.Context, trace.Span, uuid.UUID, error) {
	c, span := otel.Tracer.Start(r.Context(), tag)
	sessionID, err := uuidVar(r, "sessionId")
	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(constants.KEY_TAG, tag).
		Str(constants.KEY_SESSION_ID, mux.Vars(r)["sessionId"]).
		Logger()
	span.SetAttributes(attribute.String(constants.KEY_SESSION_ID, mux.Vars(r)["sessionId"]))
	return logger.WithContext(c), span, sessionID, err
}

func (ctrl CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	c, span, sessionID, err := start(r, "CartController GetCart")
	defer span.End()
	if err != nil {
		writeFailed(c, w, span, http.StatusBadRequest, err)
		return
	}

	cart, err := ctrl.service.GetCart(c, sessionID)
	if err != nil {
		err = fmt.Errorf("failed getting cart with error=%w", err)
		writeFailed(c, w, span, statusFromError(err), err)
		return
	}

	writeResponse(c, w, "success", http.StatusOK, "successfully found cart", map[string]interface{}{
		"cart": cart,
	})
}

func (ctrl CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	c, span, sessionID, err := start(r, "CartController AddItem")
	defer span.End()
	if err != nil {
		writeFailed(c, w, span, http.StatusBadRequest, err)
		return
	}
	logger := zerolog.Ctx(c).With().Str(constants.KEY_PROCESS, "decoding request body").Logger()

	logger.Trace().Msg("decoding request body")
	reqBody := request.AddItem{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		writeFailed(c, w, span, http.StatusBadRequest, fmt.Errorf("failed decoding request body with error=%w", err))
		return
	}
	if err := ctrl.validate.StructCtx(c, reqBody); err != nil {
		writeFailed(c, w, span, http.StatusBadRequest, fmt.Errorf("failed validating request body with error=%w", err))
		return
	}
	logger.Trace().Msg("decoded request body")

	result, err := ctrl.service.AddItem(c, sessionID, reqBody)
	if err != nil {
		err = fmt.Errorf("failed adding item with error=%w", err)
		writeFailed(c, w, span, statusFromError(err), err)
		return
	}

	if !result.Success {
		writeResponse(c, w, "failed", http.StatusConflict, result.Message, map[string]interface{}{
			"result": result,
		})
		return
	}
	writeResponse(c, w, "success", http.StatusOK, "successfully added item", map[string]interface{}{
		"result": result,
	})
}

func (ctrl CartController) CheckConflict(w http.ResponseWriter, r *http.Request) {
	c, span, sessionID, err := start(r, "CartController CheckConflict")
	defer span.End()
	if err != nil {
		writeFailed(c, w, span, http.StatusBadRequest, err)
		return
	}

	reqBody := request.CheckConflict{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		writeFailed(c, w, span, http.StatusBadRequest, fmt.Errorf("failed decoding request body with error=%w", err))
		return
	}
	if err := ctrl.validate.StructCtx(c, reqBody); err != nil {
		writeFailed(c, w, span, http.StatusBadRequest, fmt.Errorf("failed validating request body with error=%w", err))
		return
	}

	conflict, err := ctrl.service.CheckConflict(c, sessionID, reqBody)
	if err != nil {
		err = fmt.Errorf("failed checking conflict with error=%w", err)
		writeFailed(c, w, span, statusFromError(err), err)
		return
	}

	writeResponse(c, w, "success", http.StatusOK, "successfully checked conflict", map[string]interface{}{
		"conflict": conflict,
	})
}

func (ctrl CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c, span, sessionID, err := start(r, "CartController RemoveItem")
	defer span.End()
	if err != nil {
		writeFailed(c, w, span, http.StatusBadRequest, err)
		return
	}
	itemID, err := uuidVar(r, "itemId")
	if err != nil {
		writeFailed(c, w, span, http.StatusBadRequest, err)
		return
	}

	removal, err := ctrl.service.RemoveItem(c, sessionID, itemID)
	if err != nil {
		err = fmt.Errorf("failed removing item with error=%w", err)
		writeFailed(c, w, span, statusFromError(err), err)
		return
	}

	writeResponse(c, w, "success", http.StatusOK, "successfully removed item", map[string]interface{}{
		"removal": removal,
	})
}

func (ctrl CartController) RemoveByName(w http.ResponseWriter, r *http.Request) {
	c, span, sessionID, err := start(r, "CartController RemoveByName")
	defer span.End()
	if err != nil {
		writeFailed(c, w, span, http.StatusBadRequest, err)
		return
	}

	removal, err := ctrl.service.RemoveByName(c, sessionID, mux.Vars(r)["name"])
	if err != nil {
		err = fmt.Errorf("failed removing items by name with error=%w", err)
		writeFailed(c, w, span, statusFromError(err), err)
		return
	}

	writeResponse(c, w, "success", http.StatusOK, "successfully removed items", map[string]interface{}{
		"removal": removal,
	})
}

func (ctrl CartController) DeleteCart(w http.ResponseWriter, r *http.Request) {
	c, span, sessionID, err := start(r, "CartController DeleteCart")
	defer span.End()
	if err != nil {
		writeFailed(c, w, span, http.StatusBadRequest, err)
		return
	}

	if err := ctrl.service.DeleteCart(c, sessionID); err != nil {
		err = fmt.Errorf("failed deleting cart with error=%w", err)
		writeFailed(c, w, span, statusFromError(err), err)
		return
	}

	writeResponse(c, w, "success", http.StatusOK, "successfully deleted cart", map[string]interface{}{})
}
