package server

import (
	"github.com/labstack/echo/v4"

	"github.com/lineagemap/backend/internal/server/middleware"
	"github.com/lineagemap/backend/internal/server/routes"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	api := e.Group("/api")

	// Auth routes
	api.POST("/auth/register", routes.RegisterHandler)
	api.POST("/auth/login", routes.LoginHandler)

	// Tree data routes. /tree/me works logged out (default sample fallback),
	// so it only gets optional auth.
	api.GET("/tree/me", routes.GetMyTreeHandler, middleware.OptionalAuthMiddleware)
	api.PUT("/tree/me", routes.PutMyTreeHandler, middleware.AuthMiddleware)
	api.GET("/tree/:name", routes.GetNamedTreeHandler)
	api.GET("/public/:slug/tree", routes.GetPublicTreeHandler)

	// Sample routes
	api.GET("/sample/:sample_id/tree", routes.GetSampleTreeHandler)
	api.GET("/sample/:sample_id/preview", routes.GetSamplePreviewHandler)
	api.GET("/sample/:sample_id/timeline", routes.GetSampleTimelineHandler)
	api.GET("/sample/:sample_id/common-children", routes.GetCommonChildrenHandler)
	api.GET("/explore", routes.GetExploreHandler)

	// Account routes
	api.GET("/me", routes.GetMeHandler, middleware.AuthMiddleware)
	api.POST("/me/slug", routes.SetSlugHandler, middleware.AuthMiddleware)

	// Photo routes
	api.POST("/photos", routes.UploadPhotoHandler, middleware.AuthMiddleware)
	api.DELETE("/photos", routes.DeletePhotoHandler, middleware.AuthMiddleware)
	api.POST("/photos/link", routes.GetPhotoLinkHandler)
}
