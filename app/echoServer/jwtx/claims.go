// app/echoServer/jwtx/claims.go
package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Identity reads the verified token echo-jwt stored on the context and
// returns the username and role claims.
func Identity(c echo.Context) (username, role string, err error) {
	tok, ok := c.Get("user").(*jwt.Token)
	if !ok || tok == nil {
		return "", "", errors.New("no jwt token in context")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("invalid jwt claims")
	}

	username, ok = claims["sub"].(string)
	if !ok || username == "" {
		return "", "", errors.New("sub missing in claims")
	}
	role, _ = claims["role"].(string)
	return username, role, nil
}

// UsernameFromContext returns the identity the auth middleware stored.
func UsernameFromContext(c echo.Context) string {
	s, _ := c.Get("username").(string)
	return s
}

// IsAdmin reports whether the auth middleware marked this request as admin.
func IsAdmin(c echo.Context) bool {
	role, _ := c.Get("role").(string)
	return role == "admin"
}
