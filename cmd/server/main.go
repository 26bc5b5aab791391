package main

import (
	"log"

	"fanboard/internal/pkg/common"
	"fanboard/internal/pkg/config"
	"fanboard/internal/pkg/middleware"
	"fanboard/internal/pkg/registry"
	"fanboard/internal/pkg/uploader"
	"fanboard/pkg/cache"
	"fanboard/pkg/database"
	"fanboard/pkg/logger"

	// 模块通过 init() 自注册
	_ "fanboard/internal/domain/emotion"
	_ "fanboard/internal/domain/post"
	_ "fanboard/internal/domain/team"
	_ "fanboard/internal/domain/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// 1. 配置与日志
	config.LoadConfig()
	logger.Init(config.GlobalConfig.App.Env)
	defer logger.Sync()

	// 2. 基础设施
	db := database.InitDatabase()
	rdb := database.InitRedis()
	cacheService := cache.NewRedisCache(rdb)

	// OSS 上传器，配置不全时跳过（本地开发不依赖 OSS）
	if config.GlobalConfig.OSS.Endpoint != "" {
		up, err := uploader.NewAliyunOSSUploader()
		if err != nil {
			log.Fatalf("Failed to initialize OSS uploader: %v", err)
		}
		uploader.GlobalUploader = up
	}

	// 3. HTTP 引擎与全局中间件
	gin.SetMode(config.GlobalConfig.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.RateLimitMiddleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "X-Trace-ID")
	r.Use(cors.New(corsConfig))

	// 4. 业务模块
	moduleCtx := &registry.ModuleContext{
		DB:     db,
		Redis:  rdb,
		Cache:  cacheService,
		Router: r,
	}
	if err := registry.InitModules(moduleCtx); err != nil {
		log.Fatalf("Failed to initialize modules: %v", err)
	}

	// 5. 通用路由
	r.POST("/upload", middleware.AuthMiddleware(), common.UploadFile)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	port := config.GlobalConfig.Server.Port
	log.Printf("Server listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}
