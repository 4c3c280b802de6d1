// Package auth verifies the bearer tokens issued by the surrounding
// application. The editor never issues tokens itself; it only checks the
// signature and expiry and extracts the user identity.
package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload the editor relies on. Extra claims issued by
// the main application are ignored.
type Claims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secret []byte
}

func NewJWTService(secret string) *JWTService {
	return &JWTService{secret: []byte(secret)}
}

// Verify parses and validates the token signature and registered claims.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		if claims.UserID == 0 {
			return nil, fmt.Errorf("token has no user identity")
		}
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
