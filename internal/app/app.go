package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vidyamitra_backend/internal/config"
	"vidyamitra_backend/internal/controller"
	"vidyamitra_backend/internal/model"
	"vidyamitra_backend/internal/repository"
	"vidyamitra_backend/internal/service"
	"vidyamitra_backend/internal/store"
	"vidyamitra_backend/pkg/database"
	"vidyamitra_backend/pkg/logger"
	"vidyamitra_backend/pkg/monitoring"
	"vidyamitra_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
}

// ApplyConfig pushes the reloadable parts of a fresh config into running
// services. Anything not handled here needs a restart.
func (a *App) ApplyConfig(newCfg *config.Config) {
	a.Config.AI = newCfg.AI
	a.Config.Enrichment = newCfg.Enrichment
	if a.services != nil {
		a.services.ai.UpdateConfig(newCfg.AI)
		a.services.enrichment.UpdateConfig(newCfg.Enrichment)
	}
}

type repositories struct {
	user      *repository.UserRepository
	interview *repository.InterviewRepository
	quiz      *repository.QuizRepository
	roadmap   *repository.RoadmapRepository
	resume    *repository.ResumeEvaluationRepository
	plan      *repository.TrainingPlanRepository
	job       *repository.SavedJobRepository
}

// stores are the session stores shared by the sessionful modules. Each one
// fronts its repository with the in-memory layer.
type stores struct {
	interview *store.SessionStore[*model.InterviewSession]
	quiz      *store.SessionStore[*model.Quiz]
	roadmap   *store.SessionStore[*model.Roadmap]
}

type services struct {
	auth       *service.AuthService
	ai         *service.AIService
	enrichment *service.EnrichmentService
	storage    *service.StorageService
	interview  *service.InterviewService
	quiz       *service.QuizService
	roadmap    *service.RoadmapService
	plan       *service.PlanService
	resume     *service.ResumeService
	job        *service.JobService
	progress   *service.ProgressService
}

type controllers struct {
	auth      *controller.AuthController
	interview *controller.InterviewController
	quiz      *controller.QuizController
	roadmap   *controller.RoadmapController
	plan      *controller.PlanController
	resume    *controller.ResumeController
	job       *controller.JobController
	progress  *controller.ProgressController
	health    *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:      repository.NewUserRepository(db),
		interview: repository.NewInterviewRepository(db),
		quiz:      repository.NewQuizRepository(db),
		roadmap:   repository.NewRoadmapRepository(db),
		resume:    repository.NewResumeEvaluationRepository(db),
		plan:      repository.NewTrainingPlanRepository(db),
		job:       repository.NewSavedJobRepository(db),
	}
}

func (a *App) initStores(repos *repositories) *stores {
	return &stores{
		interview: store.NewSessionStore[*model.InterviewSession]("interview", repos.interview),
		quiz:      store.NewSessionStore[*model.Quiz]("quiz", repos.quiz),
		roadmap:   store.NewSessionStore[*model.Roadmap]("roadmap", repos.roadmap),
	}
}

func (a *App) initServices(repos *repositories, stores *stores, cfg *config.Config, rdb *redis.Client) *services {
	ai := service.NewAIService(cfg.AI)
	enrichment := service.NewEnrichmentService(cfg.Enrichment, rdb)
	storage := service.NewStorageService(cfg)

	return &services{
		auth:       service.NewAuthService(repos.user, cfg),
		ai:         ai,
		enrichment: enrichment,
		storage:    storage,
		interview:  service.NewInterviewService(stores.interview, ai, repos.resume),
		quiz:       service.NewQuizService(stores.quiz, ai),
		roadmap:    service.NewRoadmapService(stores.roadmap, ai, repos.resume, enrichment),
		plan:       service.NewPlanService(ai, repos.plan, repos.resume, enrichment),
		resume:     service.NewResumeService(ai, repos.resume, storage),
		job:        service.NewJobService(repos.job),
		progress:   service.NewProgressService(stores.quiz, stores.interview, repos.job, repos.plan),
	}
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		interview: controller.NewInterviewController(s.interview),
		quiz:      controller.NewQuizController(s.quiz),
		roadmap:   controller.NewRoadmapController(s.roadmap),
		plan:      controller.NewPlanController(s.plan),
		resume:    controller.NewResumeController(s.resume),
		job:       controller.NewJobController(s.job),
		progress:  controller.NewProgressController(s.progress),
		health:    controller.NewHealthController(db, rdb),
	}
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if cfg.ForceMigrate || cfg.Server.Mode != "release" {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Database migration failed", zap.Error(err))
		}
	}

	// Redis only backs the enrichment cache; running without it just means
	// every lookup goes to the external APIs.
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, enrichment cache disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	stores := app.initStores(repos)
	services := app.initServices(repos, stores, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	gin.SetMode(func() string {
		if cfg.Server.Mode == "release" {
			return gin.ReleaseMode
		}
		return gin.DebugMode
	}())

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("vidyamitra-backend", cfg.Tracing.CollectorEndpoint); err != nil {
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
