// File: internal/handler/health.go
package handler

import (
	"context"
	"net/http"
	"time"

	"basic-api/internal/api"
	"basic-api/internal/database"
	"basic-api/internal/middleware"

	"github.com/labstack/echo/v4"
)

const healthPingTimeout = 2 * time.Second

// HealthHandler 存活檢查
// @Summary     Health Check
// @Description 永遠回傳 200；資料庫無法連線時只記錄警告
// @Tags        health
// @Produce     json
// @Success     200 {object} api.HealthResponse
// @Router      /health [get]
func HealthHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthPingTimeout)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			middleware.LoggerFrom(c).WithError(err).Warn("health check: database unreachable")
		}
		return c.JSON(http.StatusOK, api.HealthResponse{Status: "OK"})
	}
}
