package routes

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lineagemap/backend/internal/server/middleware"
	"github.com/lineagemap/backend/pkg/family"
	"github.com/lineagemap/backend/pkg/logger"
)

// PutMyTreeHandler replaces the caller's dataset with the canonical form of
// the submitted document. A body that normalizes to zero people is rejected:
// accepting it would wipe the user's tree with garbage.
func PutMyTreeHandler(c echo.Context) error {
	type putTreeResponse struct {
		Message string          `json:"message"`
		Tree    *family.Dataset `json:"tree,omitempty"`
	}

	var payload map[string]any
	if err := json.NewDecoder(c.Request().Body).Decode(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, putTreeResponse{
			Message: "Invalid request body",
		})
	}

	ds := family.NormalizeTree(payload)
	if len(ds.People) == 0 {
		return c.JSON(http.StatusUnprocessableEntity, putTreeResponse{
			Message: "Tree must contain at least one person",
		})
	}

	cc := c.(*middleware.AppContext)
	user := cc.User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, putTreeResponse{
			Message: "Unauthorized",
		})
	}

	resolver := cc.App.Resolver
	if err := resolver.SaveUserTree(user.UserID, ds); err != nil {
		logger.Error("Failed to save family tree", "err", err, "user_id", user.UserID)
		return c.JSON(http.StatusInternalServerError, putTreeResponse{
			Message: "Internal server error",
		})
	}

	if err := cc.App.Users.SetFamilyFile(c.Request().Context(), user.UserID, resolver.UserFamilyPath(user.UserID)); err != nil {
		logger.Error("Failed to record family file", "err", err, "user_id", user.UserID)
	}

	return c.JSON(http.StatusOK, putTreeResponse{
		Message: "Tree saved",
		Tree:    &ds,
	})
}
