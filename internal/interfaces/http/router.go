// Package http wires the repositories, usecases, handlers, and middleware
// into the Gin engine.
package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	gridUC "verdant/internal/application/grid/usecases"
	planUC "verdant/internal/application/plan/usecases"
	plantUC "verdant/internal/application/plant/usecases"
	"verdant/internal/infrastructure/auth"
	"verdant/internal/infrastructure/config"
	"verdant/internal/infrastructure/repository"
	"verdant/internal/interfaces/http/handlers"
	"verdant/internal/interfaces/http/middleware"
	"verdant/internal/shared/db"
	"verdant/internal/shared/logger"
)

type Router struct {
	engine      *gin.Engine
	config      *config.Config
	database    *gorm.DB
	redisClient *redis.Client
	logger      logger.Interface
}

// NewRouter creates the router. redisClient may be nil when rate limiting is
// disabled.
func NewRouter(cfg *config.Config, database *gorm.DB, redisClient *redis.Client, log logger.Interface) *Router {
	return &Router{
		engine:      gin.New(),
		config:      cfg,
		database:    database,
		redisClient: redisClient,
		logger:      log,
	}
}

// GetEngine returns the underlying Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// SetupRoutes wires the middleware chain and the plan editor API.
func (r *Router) SetupRoutes() {
	RegisterValidators()

	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.CORS(r.config.Server.AllowedOrigins))

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	jwtService := auth.NewJWTService(r.config.Auth.JWT.Secret)
	authMiddleware := middleware.NewAuthMiddleware(jwtService, r.logger)

	api := r.engine.Group("/api/v1")
	api.Use(authMiddleware.RequireAuth())

	if r.config.RateLimit.Enabled && r.redisClient != nil {
		limiter := middleware.NewRateLimiter(r.redisClient, r.config.RateLimit.RequestsPerMinute, time.Minute)
		api.Use(limiter.Limit())
	}

	r.registerPlanRoutes(api)
}

func (r *Router) registerPlanRoutes(api *gin.RouterGroup) {
	planRepo := repository.NewPlanRepository(r.database, r.logger)
	cellRepo := repository.NewGridCellRepository(r.database, r.logger)
	plantRepo := repository.NewPlantPlacementRepository(r.database, r.logger)
	txManager := db.NewTransactionManager(r.database)

	reclassifyUC := gridUC.NewReclassifyAreaUseCase(planRepo, cellRepo, plantRepo, txManager, r.logger)

	planHandler := handlers.NewPlanHandler(
		planUC.NewCreatePlanUseCase(planRepo, r.logger),
		planUC.NewGetPlanUseCase(planRepo, r.logger),
		planUC.NewListPlansUseCase(planRepo, r.logger),
		planUC.NewUpdatePlanUseCase(planRepo, r.logger),
		planUC.NewRegeneratePlanGeometryUseCase(planRepo, cellRepo, plantRepo, txManager, r.logger),
		planUC.NewDeletePlanUseCase(planRepo, cellRepo, plantRepo, txManager, r.logger),
	)
	gridHandler := handlers.NewGridHandler(
		gridUC.NewListCellsUseCase(planRepo, cellRepo, r.logger),
		gridUC.NewSetCellTypeUseCase(reclassifyUC),
		reclassifyUC,
	)
	plantHandler := handlers.NewPlantHandler(
		plantUC.NewPlacePlantUseCase(planRepo, cellRepo, plantRepo, r.logger),
		plantUC.NewRemovePlantUseCase(planRepo, plantRepo, r.logger),
		plantUC.NewListPlantsUseCase(planRepo, plantRepo, r.logger),
	)

	plans := api.Group("/plans")
	{
		plans.POST("", planHandler.CreatePlan)
		plans.GET("", planHandler.ListPlans)
		plans.GET("/:id", planHandler.GetPlan)
		plans.PATCH("/:id", planHandler.UpdatePlan)
		plans.PUT("/:id/geometry", planHandler.UpdateGeometry)
		plans.DELETE("/:id", planHandler.DeletePlan)

		plans.GET("/:id/cells", gridHandler.ListCells)
		plans.PUT("/:id/cells/:x/:y", gridHandler.SetCellType)
		plans.POST("/:id/cells/reclassify", gridHandler.ReclassifyArea)

		plans.GET("/:id/plants", plantHandler.ListPlants)
		plans.PUT("/:id/plants/:x/:y", plantHandler.PlacePlant)
		plans.DELETE("/:id/plants/:x/:y", plantHandler.RemovePlant)
	}
}
