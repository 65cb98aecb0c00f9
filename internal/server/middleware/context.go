package middleware

import (
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"github.com/lineagemap/backend/internal/dataset"
	"github.com/lineagemap/backend/internal/store"
)

// AppUser is the authenticated caller, populated by AuthMiddleware.
type AppUser struct {
	UserID int64
	Email  string
}

// App carries the shared collaborators every handler needs.
type App struct {
	DBConn        *pgxpool.Pool
	Users         *store.Users
	Resolver      *dataset.Resolver
	S3            *s3.Client
	SessionSecret []byte
}

type AppContext struct {
	echo.Context
	App  *App
	User *AppUser
}

func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app, nil}
			return next(cc)
		}
	}
}
