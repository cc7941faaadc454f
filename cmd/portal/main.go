package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/eschool-portal/api/swagger"
	"github.com/noah-isme/eschool-portal/internal/handler"
	"github.com/noah-isme/eschool-portal/internal/middleware"
	"github.com/noah-isme/eschool-portal/internal/models"
	"github.com/noah-isme/eschool-portal/internal/repository"
	"github.com/noah-isme/eschool-portal/internal/service"
	"github.com/noah-isme/eschool-portal/internal/session"
	"github.com/noah-isme/eschool-portal/pkg/apiclient"
	"github.com/noah-isme/eschool-portal/pkg/cache"
	"github.com/noah-isme/eschool-portal/pkg/config"
	"github.com/noah-isme/eschool-portal/pkg/database"
	"github.com/noah-isme/eschool-portal/pkg/logger"
	corsmiddleware "github.com/noah-isme/eschool-portal/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/eschool-portal/pkg/middleware/requestid"
	"github.com/noah-isme/eschool-portal/pkg/observability"
	"github.com/noah-isme/eschool-portal/web"
)

// @title eSchool Portal
// @version 1.0.0
// @description Browser portal over the school administration REST backend.
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	flushSentry, err := observability.InitSentry(cfg.Sentry.DSN, cfg.Env, cfg.Release)
	if err != nil {
		logr.Warn("sentry disabled", zap.Error(err))
	}
	defer flushSentry()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics := service.NewMetricsService()
	validate := service.NewValidator()

	var redisClient *redis.Client
	if cfg.Session.Backend == config.SessionBackendRedis || cfg.Cache.Enabled {
		redisClient, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Fatal("failed to connect redis", zap.Error(err))
		}
		defer redisClient.Close() //nolint:errcheck
	}

	backend, err := sessionBackend(ctx, cfg, redisClient, logr)
	if err != nil {
		logr.Fatal("failed to init session backend", zap.Error(err))
	}
	store := session.NewStore(backend, cfg.Session.TTL, logr)

	client := apiclient.New(apiclient.Options{
		BaseURL:     cfg.BackendURL(),
		RefreshPath: cfg.Backend.RefreshPath,
		Timeout:     cfg.Backend.Timeout,
		Logger:      logr,
		Observer:    metrics,
	})

	var cacheRepo service.CacheRepository
	if redisClient != nil {
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr, cfg.Cache.Enabled)

	opts := service.CRUDOptions{
		Validator:      validate,
		Logger:         logr,
		FlashTTL:       cfg.UI.FlashTTL,
		PageSize:       cfg.UI.PageSize,
		IdempotencyTTL: cfg.Backend.IdempotencyTTL,
	}
	studentRepo := repository.NewResourceRepository[models.Student](client, "/api/students/")
	employeeRepo := repository.NewResourceRepository[models.Employee](client, "/api/employees/")
	schoolRepo := repository.NewResourceRepository[models.School](client, "/api/schools/")
	weredaRepo := repository.NewResourceRepository[models.Wereda](client, "/api/weredas/")

	students := service.NewCRUDService[models.Student](studentRepo, service.StudentEntity(), opts)
	staff := service.NewStaffService(employeeRepo, opts)
	schools := service.NewCRUDService[models.School](schoolRepo, service.SchoolEntity(), opts)
	weredas := service.NewCRUDService[models.Wereda](weredaRepo, service.WeredaEntity(), opts)
	weredaManagers := service.NewCRUDService[models.WeredaManager](repository.NewResourceRepository[models.WeredaManager](client, "/api/wereda/officer/"), service.WeredaManagerEntity(), opts)
	schoolManagers := service.NewCRUDService[models.SchoolManager](repository.NewResourceRepository[models.SchoolManager](client, "/api/register_school_manager/"), service.SchoolManagerEntity(), opts)
	supervisors := service.NewCRUDService[models.Supervisor](repository.NewResourceRepository[models.Supervisor](client, "/api/register_schools_supervisor/"), service.SupervisorEntity(), opts)

	authSvc := service.NewAuthService(repository.NewAuthRepository(client), validate, logr)
	studentPortal := service.NewStudentPortalService(repository.NewStudentSelfRepository(client), cacheSvc, logr)
	teacherPortal := service.NewTeacherPortalService(repository.NewTeacherSelfRepository(client), validate, cfg.Backend.IdempotencyTTL, logr)
	dashboardSvc := service.NewDashboardService(service.DashboardSources{
		Weredas:   weredaRepo,
		Schools:   schoolRepo,
		Students:  studentRepo,
		Employees: employeeRepo,
		Student:   studentPortal,
		Teacher:   teacherPortal,
	}, logr)
	activitySvc := service.NewActivityService(repository.NewActivityRepository(client), cfg.DataSource, logr)
	settingsSvc := service.NewSettingsService(store, validate, logr)

	store.Subscribe(metrics.ObserveSessionEvent)
	store.Subscribe(studentPortal.OnSessionEvent)

	tmpl, err := web.Templates()
	if err != nil {
		logr.Fatal("failed to parse templates", zap.Error(err))
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))
	r.Use(middleware.WithResponseMeta())
	r.SetHTMLTemplate(tmpl)

	render := handler.NewRenderer(settingsSvc, cfg.Session.LoginPath, logr)
	handler.RegisterRoutes(r, handler.Handlers{
		Auth:      handler.NewAuthHandler(authSvc, settingsSvc, render, "/dashboard"),
		Dashboard: handler.NewDashboardHandler(dashboardSvc, render),
		Student:   handler.NewStudentHandler(studentPortal, dashboardSvc, render),
		Teacher:   handler.NewTeacherHandler(teacherPortal, render),
		Activity:  handler.NewActivityHandler(activitySvc, render),
		Settings:  handler.NewSettingsHandler(settingsSvc, render),
		Metrics:   handler.NewMetricsHandler(metrics),

		Students: handler.NewCRUDHandler(students, render, "/record/students", "Student Records").
			WithStats(func(all []models.Student) interface{} { return models.ComputeStudentStats(all) }),
		Staff: handler.NewStaffHandler(staff, render, "/director/staff"),
		Schools: handler.NewCRUDHandler(schools, render, "/wereda/schools", "Schools").
			WithStats(func(all []models.School) interface{} { return models.SumSchools(all) }),
		SchoolManagers: handler.NewCRUDHandler(schoolManagers, render, "/wereda/schools/directors", "School Directors"),
		Supervisors:    handler.NewCRUDHandler(supervisors, render, "/wereda/supervisors", "Supervisors"),
		Weredas: handler.NewCRUDHandler(weredas, render, "/zone/wereda/manage", "Weredas").
			WithStats(func(all []models.Wereda) interface{} { return models.SumWeredas(all) }),
		WeredaManagers: handler.NewCRUDHandler(weredaManagers, render, "/zone/awm", "Wereda Managers"),
	}, handler.RouterConfig{
		Store: store,
		Cookie: middleware.SessionCookie{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
			TTL:    cfg.Session.TTL,
		},
		LoginPath: cfg.Session.LoginPath,
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready", "backend": client.BaseURL()})
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "backend", client.BaseURL(), "session_backend", cfg.Session.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}

// sessionBackend opens the configured session storage. The postgres backend is migrated and
// swept by a janitor until ctx ends.
func sessionBackend(ctx context.Context, cfg *config.Config, redisClient *redis.Client, logr *zap.Logger) (session.Backend, error) {
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		return session.NewRedisBackend(redisClient), nil
	case config.SessionBackendPostgres:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := session.Migrate(ctx, db); err != nil {
			return nil, err
		}
		backend := session.NewPostgresBackend(db)
		go session.RunJanitor(ctx, backend, 10*time.Minute, logr)
		return backend, nil
	default:
		backend := session.NewMemoryBackend()
		go session.RunJanitor(ctx, backend, time.Minute, logr)
		return backend, nil
	}
}
