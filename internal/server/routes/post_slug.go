package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lineagemap/backend/internal/server/middleware"
	"github.com/lineagemap/backend/internal/util"
	"github.com/lineagemap/backend/pkg/logger"
)

// SetSlugHandler sets the caller's public slug and share toggle. The slug is
// stored in sanitized form, which is also what the response reports back.
func SetSlugHandler(c echo.Context) error {
	type slugBody struct {
		Slug   string `json:"slug"`
		Public bool   `json:"public"`
	}

	type slugResponse struct {
		Message string `json:"message"`
		Slug    string `json:"slug,omitempty"`
		Public  bool   `json:"public"`
	}

	data := new(slugBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, slugResponse{
			Message: "Invalid request body",
		})
	}

	cc := c.(*middleware.AppContext)
	user := cc.User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, slugResponse{
			Message: "Unauthorized",
		})
	}

	slug := util.SanitizeSlug(data.Slug)
	if err := cc.App.Users.SetPublicSlug(c.Request().Context(), user.UserID, slug, data.Public); err != nil {
		logger.Error("Failed to set public slug", "err", err, "user_id", user.UserID)
		return c.JSON(http.StatusInternalServerError, slugResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, slugResponse{
		Message: "Sharing settings saved",
		Slug:    slug,
		Public:  data.Public,
	})
}
