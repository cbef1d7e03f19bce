package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	OwnerHeader = "X-Owner-Id"
	OwnerCookie = "OWNER_ID"
	ownerKey    = "owner"
)

// Owner resolves the caller's owner id from the X-Owner-Id header, the
// OWNER_ID cookie or the userId query parameter, in that order. The id is
// trusted as given. A query-supplied id is remembered in the cookie.
func Owner() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := strings.TrimSpace(c.Request().Header.Get(OwnerHeader))
			if id == "" {
				if ck, err := c.Cookie(OwnerCookie); err == nil {
					id = strings.TrimSpace(ck.Value)
				}
			}
			if id == "" {
				if q := strings.TrimSpace(c.QueryParam("userId")); q != "" {
					c.SetCookie(&http.Cookie{Name: OwnerCookie, Value: q, Path: "/"})
					id = q
				}
			}
			c.Set(ownerKey, id)
			return next(c)
		}
	}
}

// RequireOwner rejects requests that Owner could not attach an id to.
func RequireOwner() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if OwnerID(c) == "" {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "owner id is required (X-Owner-Id header, OWNER_ID cookie or userId query)"})
			}
			return next(c)
		}
	}
}

// OwnerID returns the id set by Owner, or "".
func OwnerID(c echo.Context) string {
	id, _ := c.Get(ownerKey).(string)
	return id
}
