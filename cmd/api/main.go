package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/bryanwahyu/tender-guard/internal/application"
	appai "github.com/bryanwahyu/tender-guard/internal/application/ai"
	appanalysis "github.com/bryanwahyu/tender-guard/internal/application/analysis"
	"github.com/bryanwahyu/tender-guard/internal/config"
	domai "github.com/bryanwahyu/tender-guard/internal/domain/ai"
	domanalysis "github.com/bryanwahyu/tender-guard/internal/domain/analysis"
	domanalyst "github.com/bryanwahyu/tender-guard/internal/domain/analyst"
	domaudit "github.com/bryanwahyu/tender-guard/internal/domain/audit"
	domrecords "github.com/bryanwahyu/tender-guard/internal/domain/records"
	localai "github.com/bryanwahyu/tender-guard/internal/infra/ai/local"
	openaicli "github.com/bryanwahyu/tender-guard/internal/infra/ai/openai"
	mysqlp "github.com/bryanwahyu/tender-guard/internal/infra/db/mysql"
	postgresp "github.com/bryanwahyu/tender-guard/internal/infra/db/postgres"
	"github.com/bryanwahyu/tender-guard/internal/infra/httpserver"
	minioStore "github.com/bryanwahyu/tender-guard/internal/infra/storage"
	"github.com/bryanwahyu/tender-guard/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// connect database + init repos (mysql default, postgres optional)
	var (
		db        *sql.DB
		repo      domanalysis.Repository
		source    domrecords.Source
		auditRepo domaudit.Repository
		briefRepo domanalyst.Repository
	)
	switch cfg.Database.Driver {
	case "postgres":
		db, err = postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		repo = postgresp.NewAnalysisRepository(db)
		source = postgresp.NewRecordSource(db)
		auditRepo = postgresp.NewAuditRepository(db)
		briefRepo = postgresp.NewBriefRepository(db)
	default:
		db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		repo = mysqlp.NewAnalysisRepository(db)
		source = mysqlp.NewRecordSource(db)
		auditRepo = mysqlp.NewAuditRepository(db)
		briefRepo = mysqlp.NewBriefRepository(db)
	}
	defer db.Close()

	// init minio
	store, err := minioStore.New(ctx,
		cfg.Minio.Endpoint,
		cfg.Minio.Region,
		cfg.Minio.BucketName,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.UseSSL,
	)
	if err != nil {
		log.Fatalf("minio init error: %v", err)
	}

	// init service
	svc := &appanalysis.Service{
		Repo:      repo,
		Records:   source,
		Artifacts: store,
		Audit:     auditRepo,
		Clock:     application.SystemClock{},
	}

	// analyst client: OpenAI when configured, local fallback otherwise
	var analystClient domai.Client = localai.Client{}
	if cfg.OpenAI.APIKey != "" {
		analystClient = openaicli.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	}
	aiSvc := appai.NewService(analystClient, briefRepo)

	// init router
	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	if len(cfg.Auth.APIKeys) > 0 {
		mux.Use(middleware.APIKeyAuth(cfg.Auth.APIKeys))
		mux.Use(middleware.RequireValidTenant)
	}
	if cfg.RateLimit.Capacity > 0 {
		mux.Use(middleware.RateLimitMiddleware(cfg.RateLimit.Capacity, cfg.RateLimit.RefillRate))
	}

	mux.Get("/metrics", middleware.MetricsHandler)
	mux.Get("/ready", middleware.ReadinessHandler)
	mux.Get("/live", middleware.LivenessHandler)
	mux.Get("/healthz", middleware.HealthHandler(map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
	}))
	mux.Mount("/", httpserver.NewRouter(svc, aiSvc))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
