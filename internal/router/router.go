// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"

	"basic-api/internal/database"
	"basic-api/internal/handler"
	"basic-api/internal/handler/users"
	"basic-api/internal/store"
)

// Setup 註冊所有路由
func Setup(e *echo.Echo, db database.DB, repo store.UserRepository) {
	// 存活檢查，不掛在 /api 底下
	e.GET("/health", handler.HealthHandler(db))

	api := e.Group("/api")

	// Users CRUD
	apiUsers := api.Group("/users")
	apiUsers.GET("", users.ListUsersHandler(repo))
	apiUsers.POST("", users.CreateUserHandler(repo))
	apiUsers.GET("/:id", users.GetUserHandler(repo))
	apiUsers.PUT("/:id", users.UpdateUserHandler(repo))
	apiUsers.PATCH("/:id", users.UpdateUserHandler(repo))
	apiUsers.DELETE("/:id", users.DeleteUserHandler(repo))
}
