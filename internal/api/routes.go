package api

import (
	"net/http"

	"liftlog/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires all endpoints. authService is nil in the local variant;
// the log routes then run without JWT checks against the single local
// collection.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	logService service.LogService,
	transferService service.TransferService,
) {
	logHandler := NewLogHandler(logService)
	transferHandler := NewTransferHandler(transferService)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")

	var ownerMiddleware gin.HandlerFunc
	if authService != nil {
		authHandler := NewAuthHandler(authService)
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
		ownerMiddleware = AuthMiddleware(jwtSecret)
	} else {
		ownerMiddleware = LocalOwnerMiddleware()
	}

	protected := apiV1.Group("")
	protected.Use(ownerMiddleware)
	{
		logGroup := protected.Group("/logs")
		{
			logGroup.GET("", logHandler.ListLogs)
			logGroup.POST("", logHandler.CreateLog)
			logGroup.DELETE("/:id", logHandler.DeleteLog)

			logGroup.GET("/export", transferHandler.Export)
			logGroup.POST("/import", transferHandler.Import)
			logGroup.POST("/migrate", transferHandler.Migrate)
		}

		statsGroup := protected.Group("/stats")
		{
			statsGroup.GET("/day/:date", logHandler.DayStats)
			statsGroup.GET("/volume", logHandler.VolumeSeries)
		}
	}
}
