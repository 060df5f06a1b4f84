package auth

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"taskflow/internal/model"
)

// ContextKey is where the verified token is stored on the echo context.
const ContextKey = "user"

// Middleware returns the authentication gate for protected routes. Whatever
// went wrong (missing header, malformed token, bad signature, expiry) the
// client sees the same 401 envelope; the cause is only logged.
func Middleware(svc *JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: svc.Secret(),
		ContextKey: ContextKey,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return &Claims{}
		},
		ErrorHandler: func(c echo.Context, err error) error {
			c.Logger().Debugf("authentication failed: %v", err)
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"success": false,
				"message": ErrInvalidToken.Error(),
			})
		},
	})
}

// RequireRole returns an authorization gate allowing only the given roles.
// It must run after Middleware; a request without verified claims is refused.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := ClaimsFrom(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false,
					"message": ErrInvalidToken.Error(),
				})
			}
			for _, role := range roles {
				if claims.Role == role {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, echo.Map{
				"success": false,
				"message": "not allowed",
			})
		}
	}
}

// ClaimsFrom extracts the verified claims placed on the context by Middleware.
func ClaimsFrom(c echo.Context) (*Claims, error) {
	token, ok := c.Get(ContextKey).(*jwt.Token)
	if !ok || token == nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
