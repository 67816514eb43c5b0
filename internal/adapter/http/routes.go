package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mew228/Flowstate/internal/adapter/http/handlers"
	"github.com/mew228/Flowstate/internal/adapter/http/middleware"
)

type Handlers struct {
	Health      *handlers.HealthHandler
	Tasks       *handlers.TaskHandler
	Categories  *handlers.CategoryHandler
	Preferences *handlers.PreferencesHandler
	Billing     *handlers.BillingHandler
}

type RouteConfig struct {
	JWTSecret string
	Billing   middleware.PaidChecker
}

func RegisterRoutes(r *gin.Engine, h Handlers, cfg RouteConfig) {
	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", h.Health.CheckHealth)
		api.GET("/health/report", h.Health.CheckHealthReport)
	}

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		authed.GET("/me", h.Preferences.Me)
		authed.GET("/preferences", h.Preferences.GetPreferences)
		authed.POST("/preferences/theme/toggle", h.Preferences.ToggleTheme)
		authed.GET("/categories", h.Categories.ListCategories)
		authed.POST("/categories", h.Categories.CreateCategory)
		authed.GET("/billing/checkout", h.Billing.Checkout)
		authed.GET("/billing/return", h.Billing.Return)
	}

	tasks := authed.Group("/tasks")
	tasks.Use(middleware.PaidMiddleware(cfg.Billing))
	{
		tasks.GET("", h.Tasks.ListTasks)
		tasks.GET("/stats", h.Tasks.GetStats)
		tasks.POST("", h.Tasks.CreateTask)
		tasks.PATCH("/:id", h.Tasks.UpdateTask)
		tasks.DELETE("/:id", h.Tasks.DeleteTask)
		tasks.POST("/:id/toggle", h.Tasks.ToggleTask)
		tasks.POST("/:id/subtasks/:subtaskId/toggle", h.Tasks.ToggleSubtask)
	}
}
