package middleware // middleware provides shared request processing for handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/house-price-api/internal/auth"
)

// Context keys set by the guards for downstream handlers.
const (
	CtxUserID  = "user_id"  // resolved user principal id (uint64)
	CtxAdminID = "admin_id" // resolved admin principal id (uint64)
	CtxToken   = "token"    // raw bearer token, needed by logout
)

// bearerToken pulls the token out of the Authorization header.  The
// header must carry a space-separated second segment ("Bearer <token>");
// a missing header and a malformed one are distinct failures so clients
// can tell them apart.
func bearerToken(c echo.Context) (string, string) {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return "", "Token is missing"
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
		return "", "Invalid token format"
	}
	return parts[1], ""
}

// RequireUser returns an Echo middleware that resolves a bearer token
// against the user token registry and injects the owning user's id into
// the request context.  Every rejection short-circuits before the handler
// runs; handlers never re-validate the token.
func RequireUser(reg *auth.Registry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, msg := bearerToken(c)
			if msg != "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": msg})
			}
			id, ok := reg.Resolve(token)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or expired token"})
			}
			c.Set(CtxUserID, id)
			c.Set(CtxToken, token)
			return next(c)
		}
	}
}

// RequireAdmin is the admin mirror of RequireUser.  It resolves against
// the admin registry only; user tokens have no meaning here even if the
// opaque strings were to collide.
func RequireAdmin(reg *auth.Registry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, msg := bearerToken(c)
			if msg != "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": msg})
			}
			id, ok := reg.Resolve(token)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or expired admin token"})
			}
			c.Set(CtxAdminID, id)
			c.Set(CtxToken, token)
			return next(c)
		}
	}
}
