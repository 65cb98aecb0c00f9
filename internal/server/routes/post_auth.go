package routes

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lineagemap/backend/internal/server/middleware"
	"github.com/lineagemap/backend/internal/store"
	"github.com/lineagemap/backend/pkg/logger"
)

type authResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token,omitempty"`
	User    *store.User `json:"user,omitempty"`
}

// RegisterHandler creates an account and seeds its starter family tree.
func RegisterHandler(c echo.Context) error {
	type registerBody struct {
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,min=8"`
	}

	data := new(registerBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, authResponse{
			Message: "Please enter a valid email and a password of at least 8 characters",
		})
	}
	data.Email = strings.ToLower(strings.TrimSpace(data.Email))
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, authResponse{
			Message: "Please enter a valid email and a password of at least 8 characters",
		})
	}

	hash, err := store.HashPassword(data.Password)
	if err != nil {
		logger.Error("Failed to hash password", "err", err)
		return c.JSON(http.StatusInternalServerError, authResponse{
			Message: "Internal server error",
		})
	}

	cc := c.(*middleware.AppContext)
	ctx := c.Request().Context()

	user, err := cc.App.Users.Create(ctx, data.Email, hash)
	if errors.Is(err, store.ErrEmailTaken) {
		return c.JSON(http.StatusConflict, authResponse{
			Message: "That email is already registered",
		})
	}
	if err != nil {
		logger.Error("Failed to create user", "err", err)
		return c.JSON(http.StatusInternalServerError, authResponse{
			Message: "Internal server error",
		})
	}

	resolver := cc.App.Resolver
	if err := resolver.SeedUserStarter(user.ID); err != nil {
		logger.Error("Failed to seed starter tree", "err", err, "user_id", user.ID)
		return c.JSON(http.StatusInternalServerError, authResponse{
			Message: "Internal server error",
		})
	}
	if err := cc.App.Users.SetFamilyFile(ctx, user.ID, resolver.UserFamilyPath(user.ID)); err != nil {
		logger.Error("Failed to record family file", "err", err, "user_id", user.ID)
		return c.JSON(http.StatusInternalServerError, authResponse{
			Message: "Internal server error",
		})
	}
	user.FamilyFile = resolver.UserFamilyPath(user.ID)

	token, err := middleware.IssueToken(cc.App.SessionSecret, user.ID, user.Email)
	if err != nil {
		logger.Error("Failed to issue token", "err", err)
		return c.JSON(http.StatusInternalServerError, authResponse{
			Message: "Internal server error",
		})
	}

	logger.Info("User registered", "user_id", user.ID)
	return c.JSON(http.StatusOK, authResponse{
		Message: "Account created",
		Token:   token,
		User:    &user,
	})
}

// LoginHandler verifies credentials and issues a session token.
func LoginHandler(c echo.Context) error {
	type loginBody struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	data := new(loginBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, authResponse{
			Message: "Invalid request body",
		})
	}
	data.Email = strings.ToLower(strings.TrimSpace(data.Email))
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, authResponse{
			Message: "Invalid request body",
		})
	}

	cc := c.(*middleware.AppContext)
	ctx := c.Request().Context()

	user, err := cc.App.Users.GetByEmail(ctx, data.Email)
	if errors.Is(err, store.ErrNotFound) || (err == nil && !store.CheckPassword(user.PasswordHash, data.Password)) {
		return c.JSON(http.StatusUnauthorized, authResponse{
			Message: "Invalid email or password",
		})
	}
	if err != nil {
		logger.Error("Failed to look up user", "err", err)
		return c.JSON(http.StatusInternalServerError, authResponse{
			Message: "Internal server error",
		})
	}

	token, err := middleware.IssueToken(cc.App.SessionSecret, user.ID, user.Email)
	if err != nil {
		logger.Error("Failed to issue token", "err", err)
		return c.JSON(http.StatusInternalServerError, authResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, authResponse{
		Message: "Logged in",
		Token:   token,
		User:    &user,
	})
}
