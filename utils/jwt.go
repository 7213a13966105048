package utils

import (
	"errors"

	"playarena/config"

	"github.com/golang-jwt/jwt"
)

// The gateway mints tokens; this service only validates them, with the
// shared secret carried by the config layer.

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		secret := config.AppConfig.JWTSecret
		if secret == "" {
			return nil, errors.New("jwt secret not configured")
		}
		return []byte(secret), nil
	})
}

// ExtractATTUIDFromToken extracts the caller identity (subject) from a
// valid JWT token string.
func ExtractATTUIDFromToken(tokenString string) (string, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("token does not contain a valid 'sub' claim")
	}

	return sub, nil
}
