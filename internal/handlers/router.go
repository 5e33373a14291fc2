package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/yukikurage/pastry-manager-api/internal/app"
	"github.com/yukikurage/pastry-manager-api/internal/constants"
	apierrors "github.com/yukikurage/pastry-manager-api/internal/errors"
	"github.com/yukikurage/pastry-manager-api/internal/middleware"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	Logger log.FieldLogger
	// ExposeErrors includes infrastructure error details in 500 responses.
	ExposeErrors   bool
	Checks         map[string]Checker
	MaxUploadBytes int64
}

// NewRouter builds the HTTP API.
func NewRouter(a *app.App, opts RouterOptions) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = log.StandardLogger()
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = constants.MaxUploadRequestBytes
	}

	r := gin.New()
	r.Use(
		middleware.Recovery(opts.Logger, opts.ExposeErrors),
		middleware.RequestLogger(opts.Logger),
		middleware.Metrics(),
		middleware.ErrorHandler(opts.Logger, opts.ExposeErrors),
	)

	userHandler := NewUserHandler(a)
	taskHandler := NewTaskRequestHandler(a)
	fileHandler := NewFileHandler(a)
	healthHandler := NewHealthHandler(opts.Checks)

	// Health and metrics endpoints
	r.GET("/health", healthHandler.Ready)
	r.GET("/health/ready", healthHandler.Ready)
	r.GET("/health/live", healthHandler.Live)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.NoRoute(func(c *gin.Context) {
		apierrors.NotFound(c, "Route not found")
	})

	api := r.Group("/api")
	{
		users := api.Group("/users")
		{
			users.GET("", userHandler.ListUsers)
			users.POST("/register", userHandler.Register)
			users.GET("/:id", userHandler.GetUser)
		}

		tasks := api.Group("/taskrequests")
		{
			tasks.GET("", taskHandler.ListTaskRequests)
			tasks.POST("", middleware.RequireUserID(), taskHandler.CreateTaskRequest)
			tasks.GET("/assigned/:userId", taskHandler.ListAssigned)
			tasks.GET("/created/:userId", taskHandler.ListCreated)
			tasks.GET("/:id", taskHandler.GetTaskRequest)
			tasks.PATCH("/:id/status", taskHandler.UpdateStatus)
			tasks.DELETE("/:id", taskHandler.DeleteTaskRequest)
			tasks.POST("/:id/comments", middleware.RequireUserID(), taskHandler.AddComment)
			tasks.GET("/:id/comments", taskHandler.ListComments)
		}

		files := api.Group("/files")
		{
			files.POST("/:id/:entityId", middleware.RequireUserID(), middleware.BodyLimit(opts.MaxUploadBytes), fileHandler.Upload)
			files.GET("/:id/:entityId", fileHandler.ListByEntity)
			files.GET("/:id", fileHandler.GetFile)
			files.DELETE("/:id", middleware.RequireUserID(), fileHandler.DeleteFile)
		}
	}

	return r
}
