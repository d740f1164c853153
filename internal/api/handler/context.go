package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/idently/auth-api/internal/api/middleware"
	"github.com/idently/auth-api/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the Auth middleware and
// fast-fails before any service call. A missing principal means the request
// somehow reached a handler without passing authentication; treat it as
// unauthenticated, never fall back to client-supplied identity.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	principal, ok := middleware.Principal(c)
	if !ok || principal.UserID == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return principal, nil
}
