package http

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	custommiddleware "elitex/internal/middleware"
)

// RouterConfig holds all dependencies for routing
type RouterConfig struct {
	AuthHandler  *AuthHandler
	UserHandler  *UserHandler
	AdminHandler *AdminHandler
}

// SetupRoutes configures all HTTP routes
func SetupRoutes(e *echo.Echo, config *RouterConfig) {
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			// The UI polls these; logging them is noise.
			path := c.Request().URL.Path
			return path == "/health" || path == "/api/assets"
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return SuccessResponse(c, map[string]interface{}{
			"status":    "healthy",
			"service":   "elitex-api",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	api := e.Group("/api")

	// Public routes
	api.GET("/assets", config.UserHandler.GetAssets)

	auth := api.Group("/auth")
	{
		auth.POST("/signup", config.AuthHandler.Signup)
		auth.POST("/login", config.AuthHandler.Login)
		auth.POST("/logout", config.AuthHandler.Logout)
	}

	// User routes (protected with AuthMiddleware)
	user := api.Group("/user", custommiddleware.AuthMiddleware)
	{
		user.GET("/me", config.UserHandler.GetMe)
		user.POST("/trade", config.UserHandler.Trade)
		user.POST("/deposit", config.UserHandler.Deposit)
		user.POST("/withdraw", config.UserHandler.Withdraw)
		user.GET("/transactions", config.UserHandler.GetTransactions)
		user.GET("/gateways", config.UserHandler.GetGateways)
	}

	// Admin routes (protected with Auth + Admin middleware)
	admin := api.Group("/admin", custommiddleware.AuthMiddleware, custommiddleware.AdminMiddleware)
	{
		admin.GET("/users", config.AdminHandler.ListUsers)
		admin.PUT("/users/:id", config.AdminHandler.UpdateUser)
		admin.DELETE("/users/:id", config.AdminHandler.DeleteUser)
		admin.POST("/users/:id/balance", config.AdminHandler.AdjustBalance)
		admin.GET("/transactions", config.AdminHandler.ListTransactions)
		admin.POST("/transactions/:id/decide", config.AdminHandler.DecideTransaction)
		admin.GET("/gateways", config.AdminHandler.ListGateways)
		admin.PUT("/gateways", config.AdminHandler.SaveGateway)
		admin.POST("/gateways/:name/toggle", config.AdminHandler.ToggleGateway)
	}
}
