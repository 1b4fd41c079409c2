package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/placement-portal/internal/app/controllers"
	appMigrations "github.com/yigit/placement-portal/internal/app/migrations"
	appRepos "github.com/yigit/placement-portal/internal/app/repositories"
	appRoutes "github.com/yigit/placement-portal/internal/app/routes"
	appServices "github.com/yigit/placement-portal/internal/app/services"
	"github.com/yigit/placement-portal/internal/config"
	"github.com/yigit/placement-portal/internal/db"
	appMiddleware "github.com/yigit/placement-portal/internal/middleware"
	pkgAuth "github.com/yigit/placement-portal/internal/pkg/auth"
	"github.com/yigit/placement-portal/internal/pkg/export"
	"github.com/yigit/placement-portal/internal/pkg/logger"
	"github.com/yigit/placement-portal/internal/pkg/validation"
	"github.com/yigit/placement-portal/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService       *appServices.AuthService
	StudentService    *appServices.StudentService
	AdminService      *appServices.AdminService
	AnalyticsService  *appServices.AnalyticsService
	AuthController    *appControllers.AuthController
	StudentController *appControllers.StudentController
	AdminController   *appControllers.AdminController
	HealthController  *appControllers.HealthController
	AuthMiddleware    *appMiddleware.AuthMiddleware
	Repos             *appRepos.Repositories
	JWTService        *pkgAuth.JWTService
	Logger            zerolog.Logger
}

// Resources are the opened connections. Any of them may be nil.
type Resources struct {
	Postgres *db.PostgresDB
	Mongo    *db.MongoDB
	Redis    *redis.Client
}

// Close releases every open connection
func (r *Resources) Close(ctx context.Context, lgr zerolog.Logger) error {
	var errs error
	if r.Redis != nil {
		lgr.Info().Msg("Closing redis client...")
		errs = errors.Join(errs, r.Redis.Close())
	}
	if r.Mongo != nil {
		lgr.Info().Msg("Disconnecting from mongo...")
		errs = errors.Join(errs, r.Mongo.Close(ctx))
	}
	if r.Postgres != nil {
		lgr.Info().Msg("Closing database connection pool...")
		r.Postgres.Close()
	}
	return errs
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := config.GetEnv("CONFIG_PATH", filepath.Join("configs", "config.yaml"))
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase connects to PostgreSQL and applies pending migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("dir", migrationsDir).Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return database, nil
}

// SetupStores opens the student store and, when enabled, the report cache.
// A Redis failure only disables caching.
func SetupStores(ctx context.Context, cfg *config.Config, lgr zerolog.Logger, res *Resources) error {
	if cfg.Mongo.Driver == "mongo" {
		lgr.Info().Str("database", cfg.Mongo.Database).Str("collection", cfg.Mongo.Collection).Msg("Connecting to mongo...")
		mdb, err := db.NewMongoDB(ctx, cfg)
		if err != nil {
			return err
		}
		res.Mongo = mdb
	} else {
		lgr.Warn().Msg("Using in-memory student store, records are lost on restart")
	}

	if cfg.Redis.Enabled {
		rdb, err := db.NewRedisClient(ctx, cfg)
		if err != nil {
			lgr.Warn().Err(err).Msg("Redis unavailable, analytics caching disabled")
		} else {
			res.Redis = rdb
		}
	}
	return nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, res *Resources, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	src := appRepos.Sources{
		Redis:    res.Redis,
		CacheTTL: cfg.Redis.CacheTTL,
	}
	if res.Postgres != nil {
		src.Postgres = res.Postgres.Pool
	}
	if res.Mongo != nil {
		src.Students = res.Mongo.Collection
	}
	deps.Repos = appRepos.NewRepositories(src)

	formatter, err := export.NewFormatter(export.Options{
		DateLayout: cfg.Export.DateLayout,
		Location:   cfg.ExportLocation(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build export formatter: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.JWT.AccessTokenExpiration,
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.JWTService,
		appServices.Credentials{
			AdminEmail:      cfg.Auth.AdminEmail,
			AdminPassword:   cfg.Auth.AdminPassword,
			StudentPassword: cfg.Auth.StudentPassword,
		},
		logger.Component("auth"),
	)
	deps.StudentService = appServices.NewStudentService(
		deps.Repos.StudentRepository,
		deps.Repos.ReportCache,
		validation.NewProfileValidator(nil),
		logger.Component("student"),
	)
	deps.AdminService = appServices.NewAdminService(deps.Repos.StudentRepository, formatter, logger.Component("admin"))
	deps.AnalyticsService = appServices.NewAnalyticsService(deps.Repos.StudentRepository, deps.Repos.ReportCache, logger.Component("analytics"))

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService, lgr)
	deps.AdminController = appControllers.NewAdminController(deps.AdminService, deps.AnalyticsService, lgr)
	deps.HealthController = appControllers.NewHealthController(healthChecks(res))

	return deps, nil
}

func healthChecks(res *Resources) map[string]appControllers.Pinger {
	checks := map[string]appControllers.Pinger{}
	if res.Postgres != nil {
		checks["postgres"] = res.Postgres.Ping
	}
	if res.Mongo != nil {
		checks["mongo"] = func(ctx context.Context) error { return res.Mongo.Client.Ping(ctx, nil) }
	}
	if res.Redis != nil {
		checks["redis"] = func(ctx context.Context) error { return res.Redis.Ping(ctx).Err() }
	}
	return checks
}

// SeedDefaults creates the administrator account
func SeedDefaults(ctx context.Context, cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) {
	if err := seed.CreateDefaultData(ctx, deps.Repos.UserRepository, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.Recovery(lgr), appMiddleware.RequestLogger(lgr))

	appRoutes.SetupRouter(router, appRoutes.Controllers{
		Auth:    deps.AuthController,
		Student: deps.StudentController,
		Admin:   deps.AdminController,
		Health:  deps.HealthController,
	}, deps.AuthMiddleware)

	return router
}

// WrapCORS allows the configured browser origins to call the API
func WrapCORS(cfg *config.Config, handler http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", appMiddleware.RequestIDHeader},
		ExposedHeaders:   []string{"Content-Disposition", appMiddleware.RequestIDHeader},
		AllowCredentials: true,
	})
	return c.Handler(handler)
}
