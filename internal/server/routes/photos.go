package routes

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/lineagemap/backend/internal/server/middleware"
	"github.com/lineagemap/backend/internal/storage"
	"github.com/lineagemap/backend/pkg/logger"
)

// UploadPhotoHandler stores a person photo and returns the key to put in the
// person's photo attribute.
func UploadPhotoHandler(c echo.Context) error {
	type uploadResponse struct {
		Message string `json:"message"`
		Key     string `json:"key,omitempty"`
	}

	cc := c.(*middleware.AppContext)
	user := cc.User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, uploadResponse{
			Message: "Unauthorized",
		})
	}

	file, err := c.FormFile("photo")
	if err != nil {
		return c.JSON(http.StatusBadRequest, uploadResponse{
			Message: "No photo provided",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, uploadResponse{
			Message: "Could not open photo",
		})
	}
	defer src.Close()

	id, err := gonanoid.New()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, uploadResponse{
			Message: "Internal server error",
		})
	}

	key, err := storage.PutPhoto(c.Request().Context(), cc.App.S3, user.UserID, file.Filename, id, src)
	if err != nil {
		logger.Error("Failed to upload photo", "err", err, "user_id", user.UserID)
		return c.JSON(http.StatusInternalServerError, uploadResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, uploadResponse{
		Message: "Photo uploaded",
		Key:     key,
	})
}

// DeletePhotoHandler removes a stored photo. Keys are namespaced per user,
// so a caller can only delete under their own prefix.
func DeletePhotoHandler(c echo.Context) error {
	type deleteBody struct {
		Key string `json:"key" validate:"required"`
	}

	type deleteResponse struct {
		Message string `json:"message"`
	}

	data := new(deleteBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, deleteResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, deleteResponse{
			Message: "Invalid request body",
		})
	}

	cc := c.(*middleware.AppContext)
	user := cc.User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, deleteResponse{
			Message: "Unauthorized",
		})
	}

	if !strings.HasPrefix(data.Key, fmt.Sprintf("photos/%d/", user.UserID)) {
		return c.JSON(http.StatusForbidden, deleteResponse{
			Message: "Not your photo",
		})
	}

	if err := storage.DeletePhoto(c.Request().Context(), cc.App.S3, data.Key); err != nil {
		logger.Error("Failed to delete photo", "err", err, "user_id", user.UserID)
		return c.JSON(http.StatusInternalServerError, deleteResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, deleteResponse{
		Message: "Photo deleted",
	})
}

// GetPhotoLinkHandler exchanges a photo key for a presigned download URL.
func GetPhotoLinkHandler(c echo.Context) error {
	type linkBody struct {
		Key string `json:"key" validate:"required"`
	}

	type linkResponse struct {
		Message string `json:"message"`
		URL     string `json:"url,omitempty"`
	}

	data := new(linkBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, linkResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, linkResponse{
			Message: "Invalid request body",
		})
	}

	cc := c.(*middleware.AppContext)
	url, err := storage.PhotoLink(c.Request().Context(), cc.App.S3, data.Key)
	if err != nil {
		return c.JSON(http.StatusNotFound, linkResponse{
			Message: "Photo does not exist",
		})
	}

	return c.JSON(http.StatusOK, linkResponse{
		Message: "Link generated",
		URL:     url,
	})
}
