package router

import (
	"time"

	"plmc/internal/clients"
	"plmc/internal/handlers"
	"plmc/internal/middleware"
	"plmc/internal/models"
	"plmc/internal/services"
	"plmc/pkg/config"
	"plmc/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupRouter 设置路由
func SetupRouter(cs *clients.Clients, views *services.ViewService, sessions *services.SessionService) *gin.Engine {
	router := gin.New()

	// 中间件
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.SetupCORS())

	registerValidators()

	// 注册路由
	registerRoutes(router, cs, views, sessions)
	return router
}

// 注册自定义校验器
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("availability", func(fl validator.FieldLevel) bool {
			return models.AvailabilityStatus(fl.Field().String()).Valid()
		})
	}
}

// 注册所有路由
func registerRoutes(router *gin.Engine, cs *clients.Clients, views *services.ViewService, sessions *services.SessionService) {

	auth := middleware.NewAuthMiddleware()
	cfg := config.GetConfig()
	staleAge := time.Duration(cfg.Console.CacheTTL) * time.Second

	// API路由组
	api := router.Group("/api/v1")
	{
		// 健康检查接口
		api.GET("/health", healthCheck)
		api.GET("/ping", ping)

		// 认证信息（令牌由远端认证服务签发，这里只解析）
		authHandler := handlers.NewAuthHandler(cs.Owner, cs.Tenant)
		api.GET("/auth/me", auth.RequireLogin(), authHandler.Me)

		// 控制台视图（匿名可浏览，申请状态只对登录租户生效）
		consoleHandler := handlers.NewConsoleHandler(views, sessions, staleAge)
		console := api.Group("/console", auth.OptionalAuth())
		{
			console.GET("/properties", consoleHandler.GetProperties)
			console.POST("/refresh", consoleHandler.Refresh)
			console.GET("/notifications", consoleHandler.GetNotifications)
		}

		// 房产维护（业主管自己的，管理员管全部）
		propertyHandler := handlers.NewPropertyHandler(cs.Property, cs.Owner)
		properties := api.Group("/properties")
		{
			properties.GET("", auth.RequireLogin(), auth.RequireRole("owner"), propertyHandler.Mine)
			properties.GET("/:id", propertyHandler.GetByID)
			properties.POST("", auth.RequireLogin(), auth.RequireRole("owner"), propertyHandler.Create)
			properties.PUT("/:id", auth.RequireLogin(), auth.RequireRole("owner"), propertyHandler.Update)
			properties.DELETE("/:id", auth.RequireLogin(), auth.RequireRole("owner"), propertyHandler.Delete)
		}

		// 租房申请
		requestHandler := handlers.NewRequestHandler(cs, sessions, views)
		requests := api.Group("/requests", auth.RequireLogin())
		{
			requests.GET("", requestHandler.List)
			requests.POST("", auth.RequireRole("tenant"), requestHandler.Create)
			requests.PUT("/:id/status", auth.RequireRole("owner"), requestHandler.UpdateStatus)
			requests.DELETE("/:id", auth.RequireRole("tenant"), requestHandler.Delete)
		}

		// 业主目录
		ownerHandler := handlers.NewOwnerHandler(cs.Owner)
		owners := api.Group("/owners", auth.RequireLogin())
		{
			owners.GET("", auth.RequireAdmin(), ownerHandler.GetAll)
			owners.GET("/:id", ownerHandler.GetByID)
			owners.PUT("/:id", auth.RequireRole("owner"), ownerHandler.Update)
			owners.DELETE("/:id", auth.RequireAdmin(), ownerHandler.Delete)
		}

		// 租户目录
		tenantHandler := handlers.NewTenantHandler(cs.Tenant)
		tenants := api.Group("/tenants", auth.RequireLogin())
		{
			tenants.GET("", auth.RequireAdmin(), tenantHandler.GetAll)
			tenants.GET("/:id", tenantHandler.GetByID)
			tenants.PUT("/:id", auth.RequireRole("tenant"), tenantHandler.Update)
			tenants.DELETE("/:id", auth.RequireAdmin(), tenantHandler.Delete)
		}

		// 租约
		leaseHandler := handlers.NewLeaseHandler(cs.Lease, cs.Owner, cs.Tenant)
		leases := api.Group("/leases", auth.RequireLogin())
		{
			leases.GET("", leaseHandler.List)
			leases.GET("/:id", leaseHandler.GetByID)
			leases.POST("", auth.RequireRole("owner"), leaseHandler.Create)
			leases.PUT("/:id", auth.RequireRole("owner"), leaseHandler.Update)
			leases.DELETE("/:id", auth.RequireRole("owner"), leaseHandler.Delete)
		}

		// 支付（租户）
		paymentHandler := handlers.NewPaymentHandler(cs.Payment, cs.Property, sessions)
		payments := api.Group("/payments", auth.RequireLogin(), auth.RequireRole("tenant"))
		{
			payments.POST("/order", paymentHandler.CreateOrder)
			payments.POST("/verify", paymentHandler.Verify)
		}
	}
}

func healthCheck(c *gin.Context) {
	data := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now(),
		"service":   "PLMC",
		"version":   "1.0.0",
	}
	response.Success(c, data)
}

func ping(c *gin.Context) {
	response.SuccessWithMessage(c, "pong", nil)
}
