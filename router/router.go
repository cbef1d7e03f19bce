package router

import (
	"github.com/labstack/echo/v4"

	agentctrl "gardenguru/pkg/agent/controller"
	healthctrl "gardenguru/pkg/health/controller"
	"gardenguru/pkg/middleware"
	plantctrl "gardenguru/pkg/plant/controller"
	taskctrl "gardenguru/pkg/task/controller"
)

func New(
	e *echo.Echo,
	plantCtrl plantctrl.PlantController,
	taskCtrl taskctrl.TaskController,
	agentCtrl agentctrl.AgentController,
	healthCtrl healthctrl.HealthController,
) *echo.Echo {
	e.GET("/health", healthCtrl.Health)

	api := e.Group("/api", middleware.Owner())

	api.POST("/plants", plantCtrl.Create)
	api.GET("/plants", plantCtrl.List)
	api.GET("/plants/:id", plantCtrl.Get)
	api.PUT("/plants/:id", plantCtrl.Update, middleware.RequireOwner())
	api.DELETE("/plants/:id", plantCtrl.Delete, middleware.RequireOwner())
	api.POST("/plants/:id/care-guide", plantCtrl.ImportCareGuide, middleware.RequireOwner())
	api.GET("/species", plantCtrl.SearchSpecies)

	api.POST("/agent", agentCtrl.Generate)

	tasks := api.Group("/tasks", middleware.RequireOwner())
	tasks.GET("", taskCtrl.List)
	tasks.POST("", taskCtrl.Create)
	tasks.POST("/derive", taskCtrl.Derive)
	tasks.GET("/daily", taskCtrl.Daily)
	tasks.GET("/history", taskCtrl.History)
	tasks.GET("/history.xlsx", taskCtrl.ExportHistory)
	tasks.PATCH("/:id/complete", taskCtrl.Complete)
	return e
}
