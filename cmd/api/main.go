package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dataflow-ng/statement-auditor/internal/api/handlers"
	apimw "github.com/dataflow-ng/statement-auditor/internal/api/middleware"
	"github.com/dataflow-ng/statement-auditor/internal/audit"
	"github.com/dataflow-ng/statement-auditor/internal/config"
	"github.com/dataflow-ng/statement-auditor/internal/extract"
	"github.com/dataflow-ng/statement-auditor/internal/jobs/inmemory"
	"github.com/dataflow-ng/statement-auditor/internal/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	uploadDir, err := os.MkdirTemp("", "statement-auditor-uploads")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create upload directory")
	}
	defer os.RemoveAll(uploadDir)

	auditor := audit.NewAuditor(
		extract.NewPDFSource(),
		audit.NewGeminiClient(cfg.Model),
		cfg.AuditorOptions(),
	)

	jobStore := inmemory.NewStore()
	jobQueue := inmemory.NewQueue(cfg.QueueSize, jobStore)
	reports := handlers.NewReportStore()

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()

	jobHandler := handlers.NewJobHandler(auditor, cfg, reports, log)

	go func() {
		log.Info().Msg("Starting audit worker")
		if err := jobQueue.Start(workerCtx, jobHandler); err != nil {
			log.Error().Err(err).Msg("Audit worker stopped with error")
		}
	}()

	auditsHandler := handlers.NewAuditsHandler(auditor, cfg, jobQueue, reports, uploadDir, log)
	jobsHandler := handlers.NewJobsHandler(jobStore, log)

	r := chi.NewRouter()
	r.Use(apimw.Logger(log))
	r.Use(apimw.Recovery(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         3600,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		apimw.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/api", func(r chi.Router) {
		r.Post("/audits", auditsHandler.RunAudit)
		r.Post("/audits/async", auditsHandler.EnqueueAudit)
		r.Post("/waybills", auditsHandler.RunWaybills)
		r.Get("/reports/{reportID}", auditsHandler.GetReport)
		r.Get("/jobs", jobsHandler.ListJobs)
		r.Get("/jobs/{jobID}", jobsHandler.GetJob)
	})

	srv := &http.Server{
		Addr:    cfg.BindAddr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", cfg.BindAddr).Msg("API server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	cancelWorker()
	if err := jobQueue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping job queue")
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
