// Package authtest signs access tokens for handler tests.
package authtest

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Alturino/journey/internal/auth"
	"github.com/Alturino/journey/internal/constants"
)

func Sign(t *testing.T, secretKey []byte, userID uuid.UUID, role string, managerType string) string {
	t.Helper()
	now := time.Now()
	claims := auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    constants.ISSUER_AUTH,
			Subject:   userID.String(),
			Audience:  jwt.ClaimStrings{constants.AUDIENCE_USER},
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Role:        role,
		ManagerType: managerType,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secretKey)
	if err != nil {
		t.Fatalf("failed signing token with error: %s", err)
	}
	return token
}
