package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/surgward/surgward/internal/platform/apperr"
)

// SessionMiddleware resolves the caller's identity and attaches it to the
// request context. The session cookie is checked first, then an
// Authorization bearer token. Requests without either proceed anonymously;
// route-level gates decide whether that is acceptable.
func SessionMiddleware(store SessionStore, issuer *TokenIssuer, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			if cookie, err := c.Cookie(cookieName); err == nil && cookie.Value != "" {
				if id, err := store.Get(ctx, cookie.Value); err == nil {
					c.SetRequest(c.Request().WithContext(WithIdentity(ctx, *id)))
					return next(c)
				}
			}

			if issuer != nil {
				if header := c.Request().Header.Get("Authorization"); header != "" {
					parts := strings.SplitN(header, " ", 2)
					if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
						if id, err := issuer.Verify(parts[1]); err == nil {
							c.SetRequest(c.Request().WithContext(WithIdentity(ctx, *id)))
						}
					}
				}
			}

			return next(c)
		}
	}
}

// RequireSession rejects unauthenticated requests with 401.
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if IdentityFromContext(c.Request().Context()) == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, apperr.ErrUnauthenticated.Error())
			}
			return next(c)
		}
	}
}

// RequireRole rejects requests whose identity lacks all of the given roles.
func RequireRole(roles ...Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := IdentityFromContext(c.Request().Context())
			if err := AllowRoles(id, roles...); err != nil {
				return echo.NewHTTPError(apperr.Status(err), err.Error())
			}
			return next(c)
		}
	}
}
