package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Alturino/journey/internal/constants"
	inErrors "github.com/Alturino/journey/internal/errors"
	"github.com/Alturino/journey/internal/otel"
)

type Claims struct {
	jwt.RegisteredClaims
	Role        string `json:"role"`
	ManagerType string `json:"manager_type,omitempty"`
}

type Principal struct {
	UserID uuid.UUID
	Role   Role
}

func VerifyToken(c context.Context, token string, secretKey []byte) (Principal, error) {
	c, span := otel.Tracer.Start(c, "auth VerifyToken")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "auth VerifyToken").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "parsing claims").Logger()
	logger.Trace().Msg("parsing claims")
	claims := Claims{}
	jwtToken, err := jwt.ParseWithClaims(token,
		&claims,
		func(t *jwt.Token) (interface{}, error) {
			return secretKey, nil
		},
		jwt.WithAudience(constants.AUDIENCE_USER),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithIssuer(constants.ISSUER_AUTH),
	)
	if err != nil {
		err = fmt.Errorf("failed parsing claims with error=%w", errors.Join(inErrors.ErrTokenInvalid, err))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return Principal{}, err
	}
	if !jwtToken.Valid {
		err = fmt.Errorf("failed validating token with error=%w", inErrors.ErrTokenInvalid)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return Principal{}, err
	}
	logger.Trace().Msg("parsed claims")

	logger = logger.With().Str(constants.KEY_PROCESS, "parsing subject").Logger()
	if claims.Subject == "" {
		err = fmt.Errorf("failed parsing subject with error=%w", inErrors.ErrEmptySubject)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return Principal{}, err
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		err = fmt.Errorf("failed parsing subject=%s with error=%w", claims.Subject, err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return Principal{}, err
	}
	logger = logger.With().Str(constants.KEY_USER_ID, userID.String()).Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "parsing role").Logger()
	role, err := ParseRole(claims.Role, claims.ManagerType)
	if err != nil {
		err = fmt.Errorf("failed parsing role with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return Principal{}, err
	}
	logger.Info().Str(constants.KEY_ROLE, role.String()).Msg("verified token")

	return Principal{UserID: userID, Role: role}, nil
}

type principalKey struct{}

func AttachPrincipal(c context.Context, p Principal) context.Context {
	return context.WithValue(c, principalKey{}, p)
}

// PrincipalFromContext reports ok only for a principal carrying a known role.
func PrincipalFromContext(c context.Context) (Principal, bool) {
	p, ok := c.Value(principalKey{}).(Principal)
	if !ok || !p.Role.Valid() {
		return Principal{}, false
	}
	return p, true
}
