package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	catalogusecases "github.com/seatshare-inc/seatshare/internal/application/catalog/usecases"
	purchaseusecases "github.com/seatshare-inc/seatshare/internal/application/purchase/usecases"
	"github.com/seatshare-inc/seatshare/internal/infrastructure/cache"
	"github.com/seatshare-inc/seatshare/internal/infrastructure/config"
	"github.com/seatshare-inc/seatshare/internal/infrastructure/repository"
	"github.com/seatshare-inc/seatshare/internal/interfaces/http/handlers"
	"github.com/seatshare-inc/seatshare/internal/interfaces/http/middleware"
	"github.com/seatshare-inc/seatshare/internal/shared/logger"
	"github.com/seatshare-inc/seatshare/internal/shared/utils"
)

// Router wires repositories, use cases and handlers onto a Gin engine.
type Router struct {
	engine          *gin.Engine
	catalogHandler  *handlers.CatalogHandler
	purchaseHandler *handlers.PurchaseHandler
	adminServices   *handlers.AdminServiceHandler
	adminPools      *handlers.AdminPoolHandler
	db              *gorm.DB
	redisClient     *redis.Client
	logger          logger.Interface
}

// NewRouter creates the HTTP router with all dependencies.
func NewRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Router {
	engine := gin.New()

	serviceRepo := repository.NewServiceRepository(db, log)
	poolRepo := repository.NewPoolRepository(db, log)
	grantRepo := repository.NewGrantRepository(db, log)
	refundTaskRepo := repository.NewRefundTaskRepository(db, log)

	availabilityCache := cache.NewRedisPoolAvailabilityCache(redisClient, log)

	listServicesUC := catalogusecases.NewListServicesUseCase(serviceRepo, log)
	listAvailablePoolsUC := catalogusecases.NewListAvailablePoolsUseCase(serviceRepo, poolRepo, availabilityCache, log)
	createServiceUC := catalogusecases.NewCreateServiceUseCase(serviceRepo, log)
	updateServiceUC := catalogusecases.NewUpdateServiceUseCase(serviceRepo, availabilityCache, log)
	deleteServiceUC := catalogusecases.NewDeleteServiceUseCase(serviceRepo, availabilityCache, log)
	createPoolUC := catalogusecases.NewCreatePoolUseCase(serviceRepo, poolRepo, availabilityCache, log)
	getPoolUC := catalogusecases.NewGetPoolUseCase(serviceRepo, poolRepo, log)
	updatePoolUC := catalogusecases.NewUpdatePoolUseCase(serviceRepo, poolRepo, availabilityCache, log)

	quoteUC := purchaseusecases.NewQuotePurchaseUseCase(poolRepo, log)
	purchaseUC := purchaseusecases.NewPurchaseSeatUseCase(poolRepo, grantRepo, refundTaskRepo, availabilityCache, log)
	listUserGrantsUC := purchaseusecases.NewListUserGrantsUseCase(grantRepo, log)

	return &Router{
		engine:          engine,
		catalogHandler:  handlers.NewCatalogHandler(listServicesUC, listAvailablePoolsUC, log),
		purchaseHandler: handlers.NewPurchaseHandler(quoteUC, purchaseUC, listUserGrantsUC, log),
		adminServices:   handlers.NewAdminServiceHandler(createServiceUC, listServicesUC, updateServiceUC, deleteServiceUC, log),
		adminPools:      handlers.NewAdminPoolHandler(createPoolUC, getPoolUC, updatePoolUC, log),
		db:              db,
		redisClient:     redisClient,
		logger:          log,
	}
}

// SetupRoutes configures all HTTP routes.
func (r *Router) SetupRoutes(cfg *config.Config) {
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.Identity())

	r.engine.GET("/health", r.healthCheck)

	v1 := r.engine.Group("/api/v1")
	{
		v1.GET("/services", r.catalogHandler.ListServices)
		v1.GET("/services/:id/pools", r.catalogHandler.ListAvailablePools)
		v1.POST("/purchases/quote", r.purchaseHandler.Quote)

		authed := v1.Group("")
		authed.Use(middleware.RequireUser())
		{
			authed.POST("/purchases", r.purchaseHandler.Purchase)
			authed.GET("/me/grants", r.purchaseHandler.ListMyGrants)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.RequireUser())
		{
			admin.POST("/services", r.adminServices.Create)
			admin.GET("/services", r.adminServices.List)
			admin.PATCH("/services/:id", r.adminServices.Update)
			admin.DELETE("/services/:id", r.adminServices.Delete)

			admin.POST("/services/:id/pools", r.adminPools.Create)
			admin.GET("/pools/:id", r.adminPools.Get)
			admin.PATCH("/pools/:id", r.adminPools.Update)
		}
	}
}

func (r *Router) healthCheck(c *gin.Context) {
	status := gin.H{
		"status": "ok",
		"time":   time.Now().UTC(),
	}

	if sqlDB, err := r.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		status["status"] = "degraded"
		status["database"] = "unreachable"
		c.JSON(http.StatusServiceUnavailable, status)
		return
	}
	status["database"] = "ok"

	if err := r.redisClient.Ping(c.Request.Context()).Err(); err != nil {
		status["redis"] = "unreachable"
	} else {
		status["redis"] = "ok"
	}

	utils.OKResponse(c, status)
}

// GetEngine returns the Gin engine.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server.
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
