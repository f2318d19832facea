package auth

import (
	"errors"
	"strings"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	apierr "github.com/pronas-suite/aicore/pkg/api/types/errors"
)

var ErrInvalidToken error = errors.New("invalid token")

// NewJWS signs claims with key and returns a JWS token string.
func NewJWS(key []byte, claims jwt.RegisteredClaims) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(key)
}

// VerifyJWS verifies a JWS token against key and returns its claims.
//
// Malformed, badly signed and expired tokens come back as errors
// wrapping ErrInvalidToken.
func VerifyJWS(key []byte, token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(
		token, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return key, nil
		},
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) ||
			errors.Is(err, jwt.ErrSignatureInvalid) ||
			errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.Join(ErrInvalidToken, err)
		}
		return nil, err
	}
	return claims, nil
}

// Middleware rejects requests without a valid bearer token signed by key.
func Middleware(key []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				return apierr.Unauthorized("set a bearer token in the Authorization header", nil)
			}
			if _, err := VerifyJWS(key, token); err != nil {
				return apierr.Unauthorized("the bearer token is not acceptable", err)
			}
			return next(c)
		}
	}
}
