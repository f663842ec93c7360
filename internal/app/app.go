package app

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/problemhub/server/cmd/server/docs" // swagger docs

	"github.com/problemhub/server/internal/module/auth"
	"github.com/problemhub/server/internal/module/problem"
	"github.com/problemhub/server/internal/module/submission"
	"github.com/problemhub/server/internal/module/team"
	"github.com/problemhub/server/internal/module/tracker"
	"github.com/problemhub/server/internal/module/user"
	"github.com/problemhub/server/internal/shared/cache"
	"github.com/problemhub/server/internal/shared/config"
	"github.com/problemhub/server/internal/shared/database"
	"github.com/problemhub/server/internal/shared/logger"
	"github.com/problemhub/server/internal/shared/metrics"
	"github.com/problemhub/server/internal/shared/middleware"
)

// App wires configuration, infrastructure, and module services into a
// runnable HTTP application.
type App struct {
	config    *config.Config
	db        *gorm.DB
	redis     goredis.UniversalClient
	router    *gin.Engine
	logger    *logger.Logger
	zapLogger *zap.Logger
	metrics   *metrics.Metrics

	jwtManager *auth.JWTManager

	userService       *user.Service
	teamService       *team.Service
	problemService    *problem.Service
	submissionService *submission.Service
	trackerService    *tracker.Service
}

// New creates a new application instance.
func New(cfg *config.Config) (*App, error) {
	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	zapLog, err := logger.NewZapLogger(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("init zap logger: %w", err)
	}

	app := &App{
		config:    cfg,
		logger:    log,
		zapLogger: zapLog,
		metrics:   metrics.New("problemhub"),
	}

	if err := app.initInfrastructure(); err != nil {
		return nil, fmt.Errorf("init infrastructure: %w", err)
	}

	if err := app.initModules(); err != nil {
		return nil, fmt.Errorf("init modules: %w", err)
	}

	app.router = app.setupRouter()
	app.registerRoutes()

	return app, nil
}

// initInfrastructure initializes database and cache connections.
func (a *App) initInfrastructure() error {
	db, err := database.New(&a.config.Database)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	a.db = db

	if err := database.Instrument(db, a.metrics.RecordDBQuery); err != nil {
		return fmt.Errorf("instrument database: %w", err)
	}

	if err := a.migrate(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// Redis is optional; without it the login rate limiter is disabled.
	if a.config.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(&a.config.Redis)
		if err != nil {
			a.zapLogger.Warn("Redis connection failed, continuing without rate limiting", zap.Error(err))
		} else {
			a.redis = redisClient
		}
	}

	return nil
}

// migrate applies the schema for every module model.
func (a *App) migrate() error {
	return a.db.AutoMigrate(
		&user.User{},
		&team.Team{},
		&team.TeamMember{},
		&problem.Problem{},
		&problem.ProblemSet{},
		&submission.Submission{},
		&submission.Comment{},
		&tracker.Bookmark{},
		&tracker.ReadStatus{},
	)
}

// initModules builds the module services in dependency order.
func (a *App) initModules() error {
	a.jwtManager = auth.NewJWTManager(&auth.JWTConfig{
		Secret:            a.config.Auth.JWTSecret,
		AccessTokenExpiry: a.config.Auth.AccessTokenExpiry,
		Issuer:            "problemhub",
	})

	var limiter *auth.LoginLimiter
	if a.redis != nil {
		limiter = auth.NewLoginLimiter(a.redis, a.config.Auth.LoginRateLimit)
	}

	a.userService = user.NewService(user.NewRepository(a.db), a.jwtManager, limiter, a.metrics, a.zapLogger)
	a.teamService = team.NewService(team.NewRepository(a.db), team.NewUserStore(a.db), a.metrics, a.zapLogger)
	a.problemService = problem.NewService(problem.NewRepository(a.db), a.teamService, a.zapLogger)
	a.submissionService = submission.NewService(submission.NewRepository(a.db), a.problemService, a.userService, a.zapLogger)
	a.trackerService = tracker.NewService(tracker.NewRepository(a.db), a.problemService, a.zapLogger)

	return nil
}

// setupRouter creates and configures the Gin router.
func (a *App) setupRouter() *gin.Engine {
	if a.config.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(middleware.Recovery(a.logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(a.logger))
	r.Use(middleware.CORS(a.config.Server.AllowedOrigins))
	r.Use(middleware.Metrics(a.metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	return r
}

// registerRoutes registers all HTTP routes.
func (a *App) registerRoutes() {
	v1 := a.router.Group("/api/v1")

	userHandler := user.NewHandler(a.userService)
	userHandler.RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(auth.RequireAuth(a.jwtManager))

	userHandler.RegisterProtectedRoutes(protected)
	team.NewHandler(a.teamService).RegisterRoutes(protected)
	problem.NewHandler(a.problemService).RegisterRoutes(protected)

	adminOnly := auth.RequireAdmin(a.userService)
	submission.NewHandler(a.submissionService).RegisterRoutes(protected, adminOnly)
	tracker.NewHandler(a.trackerService).RegisterRoutes(protected)
}

// Router returns the HTTP router.
func (a *App) Router() *gin.Engine {
	return a.router
}

// Stop stops the application and releases resources.
func (a *App) Stop() {
	if a.zapLogger != nil {
		_ = a.zapLogger.Sync()
	}

	if a.redis != nil {
		_ = cache.Close(a.redis)
	}

	if a.db != nil {
		_ = database.Close(a.db)
	}
}
