// Package auth issues and verifies access tokens, hashes passwords and
// guards per-resource ownership.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bazaarbuddy/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the signed payload: standard registered claims plus the
// {"user":{"id":...}} object browser clients already understand.
type Claims struct {
	jwt.RegisteredClaims
	User ClaimsUser `json:"user"`
}

type ClaimsUser struct {
	ID string `json:"id"`
}

var errNoUserID = errors.New("token has no user id")

func GenerateToken(userID models.UserID, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		User: ClaimsUser{ID: userID.String()},
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken verifies signature and expiry and returns the canonical
// user id. Errors come straight from the jwt library where possible.
func GetUserIDFromToken(tokenString string, secretKey []byte) (models.UserID, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}

	if !token.Valid {
		return "", jwt.ErrTokenSignatureInvalid
	}

	if claims.User.ID == "" {
		return "", errNoUserID
	}

	id, err := models.ParseUserID(claims.User.ID)
	if err != nil {
		return "", fmt.Errorf("token has malformed user id: %w", err)
	}

	return id, nil
}
