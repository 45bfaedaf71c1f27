package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tiku_backend/internal/config"
	"tiku_backend/internal/controller"
	"tiku_backend/internal/repository"
	"tiku_backend/internal/service"
	"tiku_backend/pkg/database"
	"tiku_backend/pkg/logger"
	"tiku_backend/pkg/monitoring"
	"tiku_backend/pkg/security"
	"tiku_backend/pkg/tracing"

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
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user            *repository.UserRepository
	subject         *repository.SubjectRepository
	chapter         *repository.ChapterRepository
	question        *repository.QuestionRepository
	answerRecord    *repository.AnswerRecordRepository
	aiGradingRecord *repository.AIGradingRecordRepository
	wrongQuestion   *repository.WrongQuestionRepository
	favorite        *repository.FavoriteRepository
	systemConfig    *repository.SystemConfigRepository
}

type services struct {
	user          *service.UserService
	subject       *service.SubjectService
	question      *service.QuestionService
	grading       *service.GradingService
	practice      *service.PracticeService
	wrongQuestion *service.WrongQuestionService
	favorite      *service.FavoriteService
	aiReview      *service.AIReviewService
	systemConfig  *service.SystemConfigService
	storage       *service.StorageService
	ai            *service.AIService
}

type controllers struct {
	user          *controller.UserController
	subject       *controller.SubjectController
	question      *controller.QuestionController
	grading       *controller.GradingController
	practice      *controller.PracticeController
	wrongQuestion *controller.WrongQuestionController
	favorite      *controller.FavoriteController
	aiGrading     *controller.AIGradingController
	systemConfig  *controller.SystemConfigController
	health        *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 热加载配置：仅更新可动态生效的部分，监听端口等需重启
func (a *App) ApplyConfig(newCfg *config.Config) {
	a.Config.AI = newCfg.AI
	a.Config.RateLimit = newCfg.RateLimit
	a.Config.CORS = newCfg.CORS
	for _, cb := range a.configCallbacks {
		cb(a.Config)
	}
	logger.Log.Info("Config reloaded")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:            repository.NewUserRepository(db),
		subject:         repository.NewSubjectRepository(db),
		chapter:         repository.NewChapterRepository(db),
		question:        repository.NewQuestionRepository(db),
		answerRecord:    repository.NewAnswerRecordRepository(db),
		aiGradingRecord: repository.NewAIGradingRecordRepository(db),
		wrongQuestion:   repository.NewWrongQuestionRepository(db),
		favorite:        repository.NewFavoriteRepository(db),
		systemConfig:    repository.NewSystemConfigRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*services, error) {
	s := &services{}

	s.systemConfig = service.NewSystemConfigService(repos.systemConfig, rdb)
	s.ai = service.NewAIService(cfg.AI, s.systemConfig)

	auto := service.NewAutoGradingStrategy()
	aiStrategy := service.NewAIGradingStrategy(s.ai, cfg.AI.ConfidenceThreshold)

	s.user = service.NewUserService(repos.user, repos.answerRecord, cfg.JWT)
	s.subject = service.NewSubjectService(repos.subject, repos.chapter)
	s.question = service.NewQuestionService(repos.question, repos.subject, repos.chapter)
	s.grading = service.NewGradingService(
		repos.question,
		repos.answerRecord,
		repos.aiGradingRecord,
		repos.wrongQuestion,
		repos.user,
		auto,
		aiStrategy,
		db,
	)
	s.practice = service.NewPracticeService(
		repos.question,
		repos.subject,
		repos.chapter,
		repos.answerRecord,
		repos.wrongQuestion,
		repos.favorite,
	)
	s.wrongQuestion = service.NewWrongQuestionService(
		repos.wrongQuestion,
		repos.question,
		repos.subject,
		repos.chapter,
		repos.answerRecord,
	)
	s.favorite = service.NewFavoriteService(repos.favorite, repos.question)
	s.aiReview = service.NewAIReviewService(
		repos.aiGradingRecord,
		repos.answerRecord,
		repos.question,
		repos.user,
		db,
	)

	provider, err := service.NewStorageProvider(&cfg.Storage)
	if err != nil {
		return nil, err
	}
	s.storage = service.NewStorageService(provider)

	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		user:          controller.NewUserController(s.user),
		subject:       controller.NewSubjectController(s.subject),
		question:      controller.NewQuestionController(s.question, s.storage),
		grading:       controller.NewGradingController(s.grading),
		practice:      controller.NewPracticeController(s.practice),
		wrongQuestion: controller.NewWrongQuestionController(s.wrongQuestion),
		favorite:      controller.NewFavoriteController(s.favorite),
		aiGrading:     controller.NewAIGradingController(s.aiReview),
		systemConfig:  controller.NewSystemConfigController(s.systemConfig),
		health:        controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(func(c *gin.Context) {
		c.Set("config", a.Config)
		c.Next()
	})

	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 10000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
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

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, db, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
		log.Fatalf("Failed to initialize services: %v", err)
	}
	controllers := app.initControllers(services, db)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		_, err := tracing.InitTracer("tiku-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

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
