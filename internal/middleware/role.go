package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireAdmin enforces that the authenticated user carries the admin claim.
// It assumes JWTAuth ran earlier and stored the claim under CtxIsAdmin. A
// valid token without the admin flag is rejected with 403 Forbidden, which
// is deliberately distinct from the 401 a missing or bad token produces.
//
// The reference implementation left this check to its web client; here it
// is enforced server-side so a non-admin bearer cannot mutate the catalog.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			admin, ok := c.Get(CtxIsAdmin).(bool)
			if !ok || !admin {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
