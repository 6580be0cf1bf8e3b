package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Alturino/journey/internal/auth"
	"github.com/Alturino/journey/internal/constants"
	inErrors "github.com/Alturino/journey/internal/errors"
	inHttp "github.com/Alturino/journey/internal/http"
)

func Auth(secretKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := zerolog.Ctx(r.Context()).
				With().
				Str(constants.KEY_TAG, "middleware Auth").
				Logger()
			c := logger.WithContext(r.Context())

			authorization := r.Header.Get("Authorization")
			scheme, token, found := strings.Cut(authorization, " ")
			if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
				logger.Error().Err(inErrors.ErrEmptyAuth).Msg(inErrors.ErrEmptyAuth.Error())
				inHttp.WriteErrorResponse(c, w, http.StatusUnauthorized, inErrors.ErrEmptyAuth)
				return
			}

			principal, err := auth.VerifyToken(c, token, secretKey)
			if err != nil {
				logger.Error().Err(err).Msg(err.Error())
				inHttp.WriteErrorResponse(c, w, http.StatusUnauthorized, inErrors.ErrTokenInvalid)
				return
			}

			logger = logger.With().
				Str(constants.KEY_USER_ID, principal.UserID.String()).
				Str(constants.KEY_ROLE, principal.Role.String()).
				Logger()
			c = logger.WithContext(auth.AttachPrincipal(c, principal))
			next.ServeHTTP(w, r.WithContext(c))
		})
	}
}
