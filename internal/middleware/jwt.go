package middleware

import (
	"shopmart/internal/common"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// CustomerJWT verifies tokens signed with the customer secret.
func CustomerJWT(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(secret),
	})
}

// VendorJWT verifies tokens signed with the vendor secret. A customer
// token fails here because the secrets differ.
func VendorJWT(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(secret),
	})
}

// ExtractCustomerID copies the token subject into the request context as
// the authenticated customer identity. Runs after CustomerJWT.
func ExtractCustomerID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := subjectID(c)
		if !ok {
			return common.SendUnauthorizedError(c)
		}
		ctx := common.WithCustomerID(c.Request().Context(), id)
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

// ExtractVendorID copies the token subject into the request context as
// the authenticated vendor identity. Runs after VendorJWT.
func ExtractVendorID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := subjectID(c)
		if !ok {
			return common.SendUnauthorizedError(c)
		}
		ctx := common.WithVendorID(c.Request().Context(), id)
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

func subjectID(c echo.Context) (uuid.UUID, bool) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, false
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
