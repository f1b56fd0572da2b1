package routes

import (
	"github.com/NasiChan/lab2life-webapp/controllers"
	"github.com/NasiChan/lab2life-webapp/middlewares"
	"github.com/NasiChan/lab2life-webapp/services"

	"github.com/gin-gonic/gin"
)

// Deps carries the shared service instances wired up in main.
type Deps struct {
	AI   services.Extractor
	Hub  *services.RealtimeHub
	Push *services.PushService
}

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.Default()

	labs := controllers.NewLabResultController(services.NewLabResultService(deps.AI))
	doses := controllers.NewPillDoseController(services.NewDoseService())
	interactions := controllers.NewInteractionController(services.NewInteractionService(deps.AI))
	realtime := controllers.NewRealtimeController(deps.Hub)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.POST("/reset-password", controllers.ResetPassword)
	}

	api := r.Group("/api")
	api.Use(middlewares.CurrentUser())
	{
		api.GET("/me", controllers.GetMe)
		api.PATCH("/me/health-profile", controllers.UpdateHealthProfile)
		api.POST("/me/health-profile/skip", controllers.SkipHealthProfile)

		api.GET("/lab-results", labs.List)
		api.POST("/lab-results/upload", labs.Upload)
		api.GET("/lab-results/:id", labs.Get)
		api.DELETE("/lab-results/:id", labs.Delete)

		api.GET("/health-markers", labs.ListMarkers)
		api.GET("/recommendations", labs.ListRecommendations)

		api.GET("/medications", controllers.ListMedications)
		api.POST("/medications", controllers.CreateMedication)
		api.GET("/medications/:id", controllers.GetMedication)
		api.PATCH("/medications/:id", controllers.UpdateMedication)
		api.DELETE("/medications/:id", controllers.DeleteMedication)

		api.GET("/supplements", controllers.ListSupplements)
		api.POST("/supplements", controllers.CreateSupplement)
		api.GET("/supplements/:id", controllers.GetSupplement)
		api.PATCH("/supplements/:id", controllers.UpdateSupplement)
		api.DELETE("/supplements/:id", controllers.DeleteSupplement)

		api.GET("/interactions", interactions.List)
		api.POST("/interactions/check", interactions.Check)

		api.GET("/pill-stacks", controllers.ListPillStacks)
		api.POST("/pill-stacks", controllers.CreatePillStack)
		api.GET("/pill-stacks/:id", controllers.GetPillStack)
		api.PATCH("/pill-stacks/:id", controllers.UpdatePillStack)
		api.DELETE("/pill-stacks/:id", controllers.DeletePillStack)

		api.GET("/pill-doses", doses.List)
		api.POST("/pill-doses", doses.Create)
		api.PATCH("/pill-doses/:id", doses.Update)
		api.POST("/pill-doses/generate", doses.Generate)

		api.GET("/reminders", controllers.ListReminders)
		api.POST("/reminders", controllers.CreateReminder)
		api.GET("/reminders/:id", controllers.GetReminder)
		api.PATCH("/reminders/:id", controllers.UpdateReminder)
		api.DELETE("/reminders/:id", controllers.DeleteReminder)

		api.GET("/schedule/warnings", controllers.GetScheduleWarnings)

		api.GET("/notifications", controllers.ListNotifications)
		api.POST("/notifications/toggle", controllers.ToggleNotifications)
		api.GET("/ws/notifications", realtime.NotificationsWS)

		if deps.Push != nil {
			devices := controllers.NewDeviceController(deps.Push)
			api.POST("/devices/register", devices.Register)
		}
	}

	return r
}
