package routes

import (
	"errors"
	"net/http"
	"sort"
	"sync"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/lineagemap/backend/internal/dataset"
	"github.com/lineagemap/backend/internal/server/middleware"
	"github.com/lineagemap/backend/pkg/family"
)

const (
	timelinePreviewSize = 6
	explorePreviewSize  = 5
)

// GetSamplePreviewHandler serves the tree preview card for a sample: the
// top-level ancestors and their direct children.
func GetSamplePreviewHandler(c echo.Context) error {
	type previewParams struct {
		SampleID string `param:"sample_id" validate:"required"`
	}

	params := new(previewParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	cc := c.(*middleware.AppContext)
	ds, err := cc.App.Resolver.SampleTree(params.SampleID)
	if err != nil {
		return datasetError(c, err)
	}

	return c.JSON(http.StatusOK, family.Preview(ds))
}

// GetSampleTimelineHandler serves the photo-ordered people sequence for the
// timeline page. An optional q parameter floats matching names to the front.
func GetSampleTimelineHandler(c echo.Context) error {
	type timelineParams struct {
		SampleID string `param:"sample_id" validate:"required"`
		Query    string `query:"q"`
	}

	type timelineResponse struct {
		People []family.Person `json:"people"`
	}

	params := new(timelineParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	cc := c.(*middleware.AppContext)
	ds, err := cc.App.Resolver.SampleTree(params.SampleID)
	if err != nil {
		return datasetError(c, err)
	}

	return c.JSON(http.StatusOK, timelineResponse{
		People: family.PhotoPreview(ds, timelinePreviewSize, params.Query),
	})
}

// GetCommonChildrenHandler answers the named-pair intersection query: which
// children do two parents share.
func GetCommonChildrenHandler(c echo.Context) error {
	type commonParams struct {
		SampleID string `param:"sample_id" validate:"required"`
		ParentA  string `query:"a" validate:"required"`
		ParentB  string `query:"b" validate:"required"`
	}

	type commonResponse struct {
		Children []string `json:"children"`
	}

	params := new(commonParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	cc := c.(*middleware.AppContext)
	ds, err := cc.App.Resolver.SampleTree(params.SampleID)
	if err != nil {
		return datasetError(c, err)
	}

	return c.JSON(http.StatusOK, commonResponse{
		Children: family.CommonChildren(ds, params.ParentA, params.ParentB, family.CommonChildrenCap),
	})
}

// GetExploreHandler builds landing-page cards for every built-in sample.
// Samples missing from disk are skipped rather than failing the whole page.
func GetExploreHandler(c echo.Context) error {
	type exploreCard struct {
		SampleID string          `json:"sample_id"`
		People   int             `json:"people"`
		Parents  []family.Person `json:"parents"`
		Featured []family.Person `json:"featured"`
	}

	cc := c.(*middleware.AppContext)
	resolver := cc.App.Resolver

	var (
		mu    sync.Mutex
		cards []exploreCard
	)

	var g errgroup.Group
	for _, id := range dataset.SampleIDs() {
		g.Go(func() error {
			ds, err := resolver.SampleTree(id)
			if err != nil {
				var notFound *dataset.NotFoundError
				if errors.As(err, &notFound) {
					return nil
				}
				return err
			}

			card := exploreCard{
				SampleID: id,
				People:   len(ds.People),
				Parents:  family.RootPreview(ds, family.RootPreviewSize),
				Featured: family.PhotoPreview(ds, explorePreviewSize, ""),
			}

			mu.Lock()
			cards = append(cards, card)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return datasetError(c, err)
	}

	sort.Slice(cards, func(i, j int) bool {
		return cards[i].SampleID < cards[j].SampleID
	})

	return c.JSON(http.StatusOK, cards)
}
