package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studyquest_backend/internal/config"
	"studyquest_backend/internal/controller"
	"studyquest_backend/internal/repository"
	"studyquest_backend/internal/service"
	"studyquest_backend/internal/store"
	"studyquest_backend/pkg/configwatcher"
	"studyquest_backend/pkg/database"
	"studyquest_backend/pkg/logger"
	"studyquest_backend/pkg/monitoring"
	"studyquest_backend/pkg/security"
	"studyquest_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	Store           *store.MemStore
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user *repository.UserRepository
}

type services struct {
	storage     *service.StorageService
	extract     *service.ExtractService
	ai          *service.AIService
	achievement *service.AchievementService
	material    *service.MaterialService
	quiz        *service.QuizService
	question    *service.QuestionService
	dashboard   *service.DashboardService
	auth        *service.AuthService
	user        *service.UserService
	chat        *service.ChatService
}

type controllers struct {
	auth        *controller.AuthController
	user        *controller.UserController
	material    *controller.MaterialController
	quiz        *controller.QuizController
	question    *controller.QuestionController
	achievement *controller.AchievementController
	dashboard   *controller.DashboardController
	ai          *controller.AIController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user: repository.NewUserRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, memStore *store.MemStore, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.extract = service.NewExtractService()
	s.ai = service.NewAIService(cfg.AI)
	s.achievement = service.NewAchievementService(memStore)
	s.material = service.NewMaterialService(memStore, s.extract, s.ai, s.storage, s.achievement, cfg.Upload.MaxSizeMB)
	s.quiz = service.NewQuizService(memStore, repos.user, s.achievement)
	s.question = service.NewQuestionService(memStore)
	s.dashboard = service.NewDashboardService(memStore, repos.user)
	s.auth = service.NewAuthService(repos.user, cfg.JWT)
	s.user = service.NewUserService(repos.user)
	s.chat = service.NewChatService(s.ai, memStore, rdb)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		user:        controller.NewUserController(s.user),
		material:    controller.NewMaterialController(s.material),
		quiz:        controller.NewQuizController(s.quiz),
		question:    controller.NewQuestionController(s.question),
		achievement: controller.NewAchievementController(s.achievement),
		dashboard:   controller.NewDashboardController(s.dashboard),
		ai:          controller.NewAIController(s.chat),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// watchConfig 配置文件热更新：AI凭证等运行时可变项改动后无需重启
func (a *App) watchConfig() {
	go configwatcher.WatchConfig("configs/config.yaml", a.Config, func(newCfg interface{}) {
		cfg, ok := newCfg.(*config.Config)
		if !ok {
			return
		}
		a.Config = cfg
		for _, callback := range a.configCallbacks {
			callback(cfg)
		}
		logger.Log.Info("Configuration reloaded")
	})
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// Redis可选：只服务聊天历史，连不上降级为单轮对话
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Warn("Redis unavailable, chat history disabled", zap.Error(err))
			rdb = nil
		}
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		Store:  store.NewMemStore(),
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, app.Store, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	// AI凭证热更新
	app.RegisterConfigCallback(func(c *config.Config) {
		services.ai.UpdateConfig(c.AI)
	})

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("studyquest-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.watchConfig()

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
