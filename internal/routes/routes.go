package routes

import (
	"board-view-api/internal/handlers"
	"board-view-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(h *handlers.Handlers) *gin.Engine {
	// Create a new GIN Router
	ginRouter := gin.Default()

	// CORS middleware (the board page calls from the backend's origin)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRFToken, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Board view service is running",
		})
	})

	// Every page request carries a viewer id; a token is optional
	page := ginRouter.Group("")
	page.Use(middleware.ViewerMiddleware(), middleware.OptionalJWTMiddleware())

	boards := page.Group("/boards/:id")
	{
		boards.PUT("/snapshot", h.PutSnapshot)
		boards.GET("/view", h.GetView)
		boards.POST("/filters/priority", h.TogglePriority)
		boards.POST("/filters/status", h.ToggleStatus)
		boards.POST("/search", h.Search)
		boards.POST("/lists/:listId/page", h.SetPage)
		boards.GET("/modal", h.OpenModal)
		boards.GET("/ws", h.BoardSocket)

		// Moves change the board for everyone and need a signed-in viewer
		boards.POST("/task/move/", middleware.JWTAuthMiddleware(), h.MoveTask)
	}

	accounts := page.Group("/accounts")
	{
		accounts.GET("/cookie-consent/", h.GetConsent)
		accounts.POST("/cookie-consent/", h.PostConsent)
	}

	return ginRouter
}
