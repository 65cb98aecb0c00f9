package routes

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lineagemap/backend/internal/server/middleware"
	"github.com/lineagemap/backend/internal/store"
	"github.com/lineagemap/backend/pkg/logger"
)

// GetMeHandler serves the caller's own account record.
func GetMeHandler(c echo.Context) error {
	cc := c.(*middleware.AppContext)
	user := cc.User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	account, err := cc.App.Users.GetByID(c.Request().Context(), user.UserID)
	if errors.Is(err, store.ErrNotFound) {
		// Token outlived the account.
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	if err != nil {
		logger.Error("Failed to load account", "err", err, "user_id", user.UserID)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, account)
}
