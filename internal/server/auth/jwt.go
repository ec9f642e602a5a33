// Package auth issues and verifies the signed session tokens carried in the
// portal's cookies. A single Claims shape serves both token families; the
// audience claim says which family a token belongs to, and verification
// rejects tokens presented to the wrong audience even though the signing
// key is shared.
package auth

import (
	"time"

	"github.com/dspetrov/payportal/internal/shared"
	"github.com/golang-jwt/jwt/v5"
)

// Token audiences. A browser profile may hold a customer session and an
// employee session at the same time; the audience keeps them from
// impersonating each other.
const (
	AudienceClient   = "client"
	AudienceEmployee = "employee"
)

// Claims carries the actor identity inside a session token. Email is set
// for customer sessions, Username/FullName for employee sessions.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"uid"`
	Role     string `json:"role"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	FullName string `json:"full_name,omitempty"`
}

func GenerateToken(claims Claims, audience string, secretKey []byte, validityDuration time.Duration) (string, error) {
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		Audience:  jwt.ClaimStrings{audience},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies signature, expiry and audience and returns the claims.
// Any failure is reported as shared.ErrorInvalidToken; callers do not need
// to distinguish a forged token from an expired or cross-audience one.
func ParseToken(tokenString string, audience string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, shared.ErrorInvalidToken
	}

	if !token.Valid {
		return nil, shared.ErrorInvalidToken
	}

	return claims, nil
}
