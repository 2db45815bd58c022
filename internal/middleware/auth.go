package middleware

import (
	"net/http"

	"github.com/akulakov/blogicum/internal/models"
	"github.com/akulakov/blogicum/internal/policy"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// AuthCookieName is the cookie carrying the signed session token.
const AuthCookieName = "Authorization"

const viewerIDKey = "viewerID"
const viewerNameKey = "viewerUsername"

// ViewerContext resolves the current viewer from the auth cookie on every
// request, including public pages, so the owner exception can apply there.
// A missing or invalid token leaves the viewer anonymous and never fails
// the request.
func ViewerContext(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(AuthCookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			claims := &models.AuthClaims{}
			token, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unexpected signing method")
				}
				return []byte(secret), nil
			})
			if err == nil && token.Valid {
				c.Set(viewerIDKey, claims.UserID)
				c.Set(viewerNameKey, claims.Username)
			}

			return next(c)
		}
	}
}

// LoginRequired gates mutation routes. Browsers are redirected to the login
// page rather than shown a bare 401.
func LoginRequired(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(secret),
		TokenLookup: "cookie:" + AuthCookieName,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(models.AuthClaims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.Redirect(http.StatusFound, "/login")
		},
	})
}

// ViewerID returns the authenticated user's ID, or policy.AnonymousID
func ViewerID(c echo.Context) uint {
	if id, ok := c.Get(viewerIDKey).(uint); ok {
		return id
	}
	return policy.AnonymousID
}

// ViewerUsername returns the authenticated user's username, or ""
func ViewerUsername(c echo.Context) string {
	if name, ok := c.Get(viewerNameKey).(string); ok {
		return name
	}
	return ""
}
