package middleware

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Alturino/journey/internal/constants"
	inHttp "github.com/Alturino/journey/internal/http"
	"github.com/Alturino/journey/internal/otel"
)

func RecoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, span := otel.Tracer.Start(r.Context(), "middleware RecoverPanic")
		defer span.End()

		logger := zerolog.Ctx(c).With().Str(constants.KEY_TAG, "middleware RecoverPanic").Logger()
		defer func() {
			if recovered := recover(); recovered != nil {
				err, ok := recovered.(error)
				if !ok {
					err = fmt.Errorf("panic: %v", recovered)
				}
				logger.Error().Err(err).Stack().Msg("recovered from panic")
				otel.RecordError(err, span)
				inHttp.WriteErrorResponse(c, w, http.StatusInternalServerError, fmt.Errorf("internal server error"))
			}
		}()

		next.ServeHTTP(w, r.WithContext(c))
	})
}
