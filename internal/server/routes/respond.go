package routes

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lineagemap/backend/internal/dataset"
	"github.com/lineagemap/backend/pkg/logger"
)

// datasetError maps resolver anomalies onto transport responses: a missing
// document is the caller's problem, a document that exists but normalizes to
// zero people is ours.
func datasetError(c echo.Context, err error) error {
	var notFound *dataset.NotFoundError
	if errors.As(err, &notFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": notFound.Error()})
	}

	var empty *dataset.EmptyDatasetError
	if errors.As(err, &empty) {
		logger.Error("Dataset is structurally invalid", "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": empty.Error()})
	}

	logger.Error("Failed to load dataset", "err", err)
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
}
