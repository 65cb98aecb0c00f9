package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const sessionTTL = 30 * 24 * time.Hour

// IssueToken signs an HS256 session token for the given account.
func IssueToken(secret []byte, userID int64, email string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    userID,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(sessionTTL).Unix(),
	})
	return token.SignedString(secret)
}

func parseToken(secret []byte, token string) *AppUser {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}

	idClaim, ok := claims["id"].(float64)
	if !ok {
		return nil
	}

	email, _ := claims["email"].(string)
	return &AppUser{UserID: int64(idClaim), Email: email}
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// AuthMiddleware requires a valid session token.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c)
		if token == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		}

		cc := c.(*AppContext)
		user := parseToken(cc.App.SessionSecret, token)
		if user == nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		}

		cc.User = user
		return next(c)
	}
}

// OptionalAuthMiddleware populates the caller when a valid token is present
// but lets anonymous requests through; those endpoints fall back to the
// default sample dataset.
func OptionalAuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if token := bearerToken(c); token != "" {
			cc := c.(*AppContext)
			cc.User = parseToken(cc.App.SessionSecret, token)
		}
		return next(c)
	}
}
