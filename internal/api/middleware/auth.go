package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/idently/auth-api/internal/api/metrics"
	"github.com/idently/auth-api/internal/core/domain"
	"github.com/idently/auth-api/internal/core/ports"
)

// PrincipalKey is the echo context key under which Auth stores the verified
// principal for downstream middleware and handlers.
const PrincipalKey = "principal"

// Auth extracts the bearer token, verifies it through the token service, and
// injects the resulting principal into the request context. Requests without
// a valid token never reach the next handler.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			principal, err := tokens.Verify(parts[1])
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("rejected").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()
			c.Set(PrincipalKey, *principal)

			return next(c)
		}
	}
}

// Principal retrieves the principal stored by Auth. The boolean is false when
// the middleware did not run for this request.
func Principal(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(PrincipalKey).(domain.Principal)
	return p, ok
}
