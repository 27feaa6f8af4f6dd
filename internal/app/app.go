package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"hacklab_backend/internal/config"
	"hacklab_backend/internal/controller"
	"hacklab_backend/internal/repository"
	"hacklab_backend/internal/service"
	"hacklab_backend/pkg/database"
	"hacklab_backend/pkg/logger"
	"hacklab_backend/pkg/monitoring"
	"hacklab_backend/pkg/security"
	"hacklab_backend/pkg/tracing"

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
	services        *services
	configMu        sync.RWMutex
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user     *repository.UserRepository
	module   *repository.ModuleRepository
	page     *repository.PageRepository
	question *repository.QuestionRepository
	solve    *repository.SolveRepository
	giftCode *repository.GiftCodeRepository
	progress *repository.ProgressRepository
	session  *repository.SessionRepository
}

type services struct {
	auth      *service.AuthService
	challenge *service.ChallengeService
	module    *service.ModuleService
	page      *service.PageService
	question  *service.QuestionService
	giftCode  *service.GiftCodeService
	progress  *service.ProgressService
	user      *service.UserService
	storage   *service.StorageService
}

type controllers struct {
	auth     *controller.AuthController
	module   *controller.ModuleController
	page     *controller.PageController
	question *controller.QuestionController
	giftCode *controller.GiftCodeController
	progress *controller.ProgressController
	user     *controller.UserController
	upload   *controller.UploadController
	health   *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 热更新回调入口，配置文件变化时由 watcher 调用。
// Config 指针会被后台任务并发读取，换指针要拿写锁。
func (a *App) ApplyConfig(cfg *config.Config) {
	a.configMu.Lock()
	a.Config = cfg
	a.configMu.Unlock()

	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
	logger.Log.Info("Configuration reloaded")
}

func (a *App) currentConfig() *config.Config {
	a.configMu.RLock()
	defer a.configMu.RUnlock()
	return a.Config
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		module:   repository.NewModuleRepository(db),
		page:     repository.NewPageRepository(db),
		question: repository.NewQuestionRepository(db),
		solve:    repository.NewSolveRepository(db),
		giftCode: repository.NewGiftCodeRepository(db),
		progress: repository.NewProgressRepository(db),
		session:  repository.NewSessionRepository(rdb),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB) (*services, error) {
	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}

	return &services{
		auth:      service.NewAuthService(repos.user, repos.session, cfg),
		challenge: service.NewChallengeService(repos.question, repos.solve, db),
		module:    service.NewModuleService(repos.module, db),
		page:      service.NewPageService(repos.page, repos.module),
		question:  service.NewQuestionService(repos.question, repos.page),
		giftCode:  service.NewGiftCodeService(repos.giftCode, db),
		progress:  service.NewProgressService(repos.progress, repos.page, repos.solve),
		user:      service.NewUserService(repos.user, repos.session),
		storage:   storage,
	}, nil
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth),
		module:   controller.NewModuleController(s.module),
		page:     controller.NewPageController(s.page),
		question: controller.NewQuestionController(s.question, s.challenge),
		giftCode: controller.NewGiftCodeController(s.giftCode),
		progress: controller.NewProgressController(s.progress),
		user:     controller.NewUserController(s.user),
		upload:   controller.NewUploadController(s.storage),
		health:   controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	windowMinutes := cfg.RateLimit.WindowMinutes
	if windowMinutes <= 0 {
		windowMinutes = 1
	}
	router.Use(security.RateLimiter(maxRequests, time.Duration(windowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) startBackgroundTasks(s *services) {
	// 定期停用过期礼品码
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			expireDays := a.currentConfig().GiftCodes.ExpireDays
			if expireDays <= 0 {
				continue
			}
			if err := s.giftCode.DisableExpired(expireDays); err != nil {
				logger.Log.Error("gift code expiry sweep error", zap.Error(err))
			}
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb)
	services, err := app.initServices(repos, cfg, db)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		_, err := tracing.InitTracer("hacklab-platform", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	// 热加载后重建 logger，日志级别跟随 server.mode
	app.RegisterConfigCallback(func(c *config.Config) {
		logger.InitLogger(c)
	})

	app.startBackgroundTasks(services)

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

	if err := a.Redis.Close(); err != nil {
		logger.Log.Error("Failed to close redis connection", zap.Error(err))
	}

	log.Println("Server exiting")
}
