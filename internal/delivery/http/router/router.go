// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"opencycle/internal/delivery/http/middleware"
	"opencycle/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds the handlers and middleware to register, injected by Fx.
type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	ItemHandler    *handler.ItemHandler
	ProfileHandler *handler.ProfileHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	itemHandler    *handler.ItemHandler
	profileHandler *handler.ProfileHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		itemHandler:    params.ItemHandler,
		profileHandler: params.ProfileHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/refresh", r.authHandler.Refresh)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.GET("/me", r.authHandler.Me, r.authMiddleware.Authenticate)
	}

	// Item routes. Browsing and item pages work for anonymous visitors;
	// the optional middleware resolves the viewer when a token is present.
	itemsGroup := e.Group("/items")
	{
		itemsGroup.GET("", r.itemHandler.List, r.authMiddleware.OptionalAuthenticate)
		itemsGroup.GET("/search", r.itemHandler.Search, r.authMiddleware.OptionalAuthenticate)
		itemsGroup.GET("/mine", r.itemHandler.ListMine, r.authMiddleware.Authenticate)
		itemsGroup.GET("/:id", r.itemHandler.Get, r.authMiddleware.OptionalAuthenticate)
		itemsGroup.GET("/:id/stats", r.itemHandler.Stats)
		itemsGroup.GET("/:id/qr", r.itemHandler.ShareQR)
		itemsGroup.POST("/:id/views", r.itemHandler.RecordView, r.authMiddleware.OptionalAuthenticate)

		itemsGroup.POST("", r.itemHandler.Create, r.authMiddleware.Authenticate)
		itemsGroup.PATCH("/:id/availability", r.itemHandler.SetAvailability, r.authMiddleware.Authenticate)
		itemsGroup.DELETE("/:id", r.itemHandler.Delete, r.authMiddleware.Authenticate)
		itemsGroup.POST("/:id/favorite", r.itemHandler.ToggleFavorite, r.authMiddleware.Authenticate)
	}

	// Profile routes that require authentication
	profileGroup := e.Group("/profile")
	profileGroup.Use(r.authMiddleware.Authenticate)
	{
		profileGroup.GET("", r.profileHandler.Get)
		profileGroup.PUT("", r.profileHandler.Update)
		profileGroup.GET("/stats", r.profileHandler.Stats)
	}

	e.GET("/dashboard", r.profileHandler.Dashboard, r.authMiddleware.Authenticate)
}
