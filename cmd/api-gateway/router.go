// Package main 是应用程序入口
package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dumeirei/hotel-management-backend/internal/common/cache"
	"github.com/dumeirei/hotel-management-backend/internal/common/config"
	"github.com/dumeirei/hotel-management-backend/internal/common/metrics"
	"github.com/dumeirei/hotel-management-backend/internal/common/response"
	hotelHandler "github.com/dumeirei/hotel-management-backend/internal/handler/hotel"
	"github.com/dumeirei/hotel-management-backend/internal/middleware"
	"github.com/dumeirei/hotel-management-backend/internal/repository"
	"github.com/dumeirei/hotel-management-backend/internal/scheduler"
	hotelService "github.com/dumeirei/hotel-management-backend/internal/service/hotel"
)

// setupRouter 设置路由, 返回调度器由 main 管理生命周期
func setupRouter(
	r *gin.Engine,
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	redisClient *redis.Client,
) *scheduler.Scheduler {
	// 初始化仓储
	guestRepo := repository.NewGuestRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	billingRepo := repository.NewBillingRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	itemRepo := repository.NewReservationServiceRepository(db)

	// 初始化服务
	guestSvc := hotelService.NewGuestService(db, guestRepo, reservationRepo)
	roomSvc := hotelService.NewRoomService(db, roomRepo, reservationRepo)
	reservationSvc := hotelService.NewReservationService(db, reservationRepo, roomRepo, guestRepo, billingRepo, itemRepo)
	billingSvc := hotelService.NewBillingService(db, &cfg.Business, billingRepo, reservationRepo, serviceRepo, itemRepo)
	catalogSvc := hotelService.NewCatalogService(serviceRepo)
	reportSvc := hotelService.NewReportService(reservationRepo, billingRepo, roomRepo)

	// 初始化处理器
	guestH := hotelHandler.NewGuestHandler(guestSvc)
	roomH := hotelHandler.NewRoomHandler(roomSvc)
	reservationH := hotelHandler.NewReservationHandler(reservationSvc)
	billingH := hotelHandler.NewBillingHandler(billingSvc)
	reportH := hotelHandler.NewReportHandler(reportSvc, catalogSvc)

	// 全局中间件
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RealIP())
	r.Use(middleware.CORS(&middleware.CORSConfig{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))
	r.Use(middleware.AccessLog(logger))

	// 限流
	if cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimit(&middleware.RateLimitConfig{
			RedisClient: redisClient,
			KeyPrefix:   cache.KeyPrefixRateLimit,
			Limit:       cfg.RateLimit.RequestsPerSecond,
			Window:      time.Second,
		}))
	}

	// 监控
	if cfg.Metrics.Enabled {
		m := metrics.Init("hotel_management")
		r.Use(m.Middleware())
		r.GET(cfg.Metrics.Path, metrics.Handler())
	}

	// 健康检查
	r.GET("/health", healthHandler)
	r.GET("/ping", pingHandler)
	r.GET("/ready", readyHandler(db, redisClient))

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 路由组
	v1 := r.Group("/api/v1")
	{
		// 住客
		guests := v1.Group("/guests")
		{
			guests.POST("", guestH.CreateGuest)
			guests.GET("", guestH.ListGuests)
			guests.GET("/:id", guestH.GetGuestDetail)
			guests.PUT("/:id", guestH.UpdateGuest)
			guests.DELETE("/:id", guestH.DeleteGuest)
		}

		// 房型与房间
		v1.POST("/room-types", roomH.CreateRoomType)
		v1.GET("/room-types", roomH.ListRoomTypes)

		rooms := v1.Group("/rooms")
		{
			rooms.POST("", roomH.CreateRoom)
			rooms.GET("", roomH.ListRooms)
			rooms.GET("/available", roomH.ListAvailableRooms)
			rooms.GET("/occupancy", roomH.GetOccupancy)
			rooms.GET("/:room_no", roomH.GetRoomDetail)
		}

		// 预订与账单
		reservations := v1.Group("/reservations")
		{
			reservations.POST("", reservationH.CreateReservation)
			reservations.GET("", reservationH.ListReservations)
			reservations.GET("/current", reservationH.ListCurrentReservations)
			reservations.GET("/availability", reservationH.CheckAvailability)
			reservations.GET("/:id", reservationH.GetReservationDetail)
			reservations.DELETE("/:id", reservationH.DeleteReservation)

			reservations.GET("/:id/billing", billingH.GetBilling)
			reservations.POST("/:id/billing/recompute", billingH.RecomputeServiceCharges)
			reservations.GET("/:id/services", billingH.ListServiceItems)
			reservations.POST("/:id/services", billingH.AddService)
			reservations.DELETE("/:id/services/:item_id", billingH.RemoveService)
			reservations.POST("/:id/checkout", billingH.ProcessCheckout)
		}

		// 待结账账单
		v1.GET("/billings/pending", billingH.ListCheckoutCandidates)

		// 服务目录
		services := v1.Group("/services")
		{
			services.POST("", reportH.CreateCatalogItem)
			services.GET("", reportH.ListCatalogItems)
			services.PUT("/:id", reportH.UpdateCatalogItem)
		}

		// 看板与报表
		v1.GET("/dashboard", reportH.GetDashboard)
		v1.GET("/reports/reservations", reportH.GetReservationReport)
		v1.GET("/reports/revenue", reportH.GetRevenueSummary)
	}

	// 404 处理
	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "接口不存在")
	})

	// 定时任务
	sched := scheduler.NewScheduler()
	taskHandler := scheduler.NewTaskHandler(db, roomSvc)
	scheduler.SetupTasks(sched, taskHandler, &cfg.Business)

	return sched
}
