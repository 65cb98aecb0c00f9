package routes

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lineagemap/backend/internal/dataset"
	"github.com/lineagemap/backend/internal/server/middleware"
	"github.com/lineagemap/backend/internal/store"
	"github.com/lineagemap/backend/internal/util"
	"github.com/lineagemap/backend/pkg/logger"
)

// GetMyTreeHandler serves the caller's own dataset. Anonymous callers get
// the default sample so the tree page always has something to render.
func GetMyTreeHandler(c echo.Context) error {
	cc := c.(*middleware.AppContext)
	resolver := cc.App.Resolver

	if cc.User == nil {
		ds, err := resolver.SampleTree(dataset.DefaultSample)
		if err != nil {
			return datasetError(c, err)
		}
		return c.JSON(http.StatusOK, ds)
	}

	ds, err := resolver.UserTree(cc.User.UserID)
	if err != nil {
		return datasetError(c, err)
	}
	return c.JSON(http.StatusOK, ds)
}

// GetSampleTreeHandler serves one of the built-in demo datasets.
func GetSampleTreeHandler(c echo.Context) error {
	type sampleParams struct {
		SampleID string `param:"sample_id" validate:"required"`
	}

	params := new(sampleParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	if _, ok := dataset.AllowedSample(params.SampleID); !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Sample not found"})
	}

	cc := c.(*middleware.AppContext)
	ds, err := cc.App.Resolver.SampleTree(params.SampleID)
	if err != nil {
		return datasetError(c, err)
	}
	return c.JSON(http.StatusOK, ds)
}

// GetPublicTreeHandler serves a dataset shared under a public slug. Unknown
// and private slugs are indistinguishable to the caller.
func GetPublicTreeHandler(c echo.Context) error {
	type publicParams struct {
		Slug string `param:"slug" validate:"required"`
	}

	params := new(publicParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	cc := c.(*middleware.AppContext)
	ctx := c.Request().Context()

	slug := util.SanitizeSlug(params.Slug)
	user, err := cc.App.Users.GetPublicBySlug(ctx, slug)
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Family not found"})
	}
	if err != nil {
		logger.Error("Failed to look up slug", "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	ds, err := cc.App.Resolver.UserTree(user.ID)
	if err != nil {
		return datasetError(c, err)
	}
	return c.JSON(http.StatusOK, ds)
}

// GetNamedTreeHandler serves a family file by name from the data directory.
func GetNamedTreeHandler(c echo.Context) error {
	type namedParams struct {
		Name string `param:"name" validate:"required"`
	}

	params := new(namedParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	cc := c.(*middleware.AppContext)
	ds, err := cc.App.Resolver.NamedTree(params.Name)
	if err != nil {
		return datasetError(c, err)
	}
	return c.JSON(http.StatusOK, ds)
}
