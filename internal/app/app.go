package app

import (
	"candypang_backend/internal/config"
	"candypang_backend/internal/controller"
	"candypang_backend/internal/repository"
	"candypang_backend/internal/service"
	"candypang_backend/pkg/database"
	"candypang_backend/pkg/logger"
	"candypang_backend/pkg/monitoring"
	"candypang_backend/pkg/security"
	"candypang_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

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
	configCallbacks []func(*config.Config)
}

type repositories struct {
	student *repository.StudentRepository
	quest   *repository.QuestRepository
	praise  *repository.PraiseRepository
	message *repository.MessageRepository
	economy *repository.EconomyRepository
	ledger  *repository.LedgerRepository
}

type services struct {
	fever    *service.FeverService
	notifier *service.Notifier
	quest    *service.QuestService
	praise   *service.PraiseService
	economy  *service.EconomyService
	batch    *service.BatchService
	pending  *service.PendingService
	message  *service.MessageService
	student  *service.StudentService
	seed     *service.SeedService
	analysis *service.AnalysisService
}

type controllers struct {
	student  *controller.StudentController
	quest    *controller.QuestController
	praise   *controller.PraiseController
	economy  *controller.EconomyController
	teacher  *controller.TeacherController
	analysis *controller.AnalysisController
	health   *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig picks up a live config reload. Only the tunables that are
// safe to swap at runtime are applied; server, database and redis settings
// need a restart.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config.Fever = cfg.Fever
	a.Config.CORS = cfg.CORS
	if a.services != nil && a.services.fever != nil {
		a.services.fever.Config = cfg.Fever
	}
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
	logger.Log.Info("Config reloaded")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		student: repository.NewStudentRepository(db),
		quest:   repository.NewQuestRepository(db),
		praise:  repository.NewPraiseRepository(db),
		message: repository.NewMessageRepository(db),
		economy: repository.NewEconomyRepository(db),
		ledger:  repository.NewLedgerRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.fever = service.NewFeverService(rdb, cfg.Fever)
	s.notifier = service.NewNotifier(rdb)
	s.quest = service.NewQuestService(repos.student, repos.quest, s.fever, s.notifier, db)
	s.praise = service.NewPraiseService(repos.student, repos.praise, s.fever, s.notifier, db)
	s.economy = service.NewEconomyService(repos.student, repos.economy, s.notifier, db)
	s.batch = service.NewBatchService(repos.student, s.fever, s.notifier, db)
	s.pending = service.NewPendingService(repos.student)
	s.message = service.NewMessageService(repos.student, repos.message, s.notifier)
	s.student = service.NewStudentService(repos.student, repos.ledger, s.notifier)
	s.seed = service.NewSeedService(db)
	s.analysis = service.NewAnalysisService(cfg.AI)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		student:  controller.NewStudentController(s.student),
		quest:    controller.NewQuestController(s.quest),
		praise:   controller.NewPraiseController(s.praise, s.message),
		economy:  controller.NewEconomyController(s.economy),
		teacher:  controller.NewTeacherController(s.pending, s.batch, s.fever, s.notifier),
		analysis: controller.NewAnalysisController(s.analysis),
		health:   controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 6000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks keeps the pending gauge fresh even when nobody is
// hitting the inbox endpoint.
func (a *App) startBackgroundTasks(s *services) {
	go func() {
		ticker := time.NewTicker(time.Minute)
		for range ticker.C {
			if _, err := s.pending.ListPending(); err != nil {
				logger.Log.Error("pending refresh error", zap.Error(err))
			}
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

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
	services := app.initServices(repos, cfg, db, rdb)
	app.services = services

	if err := services.seed.EnsureSeed(cfg.Seed, cfg.ForceReseed); err != nil {
		logger.Log.Fatal("Seeding failed", zap.Error(err))
	}
	if cfg.SeedOnly {
		logger.Log.Info("Seed-only run complete")
		os.Exit(0)
	}

	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("candypang-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	app.registerRoutes(router, controllers, cfg)

	app.startBackgroundTasks(services)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

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
