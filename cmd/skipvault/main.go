package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/JustinTDCT/SkipVault/internal/api"
	"github.com/JustinTDCT/SkipVault/internal/cache"
	"github.com/JustinTDCT/SkipVault/internal/config"
	"github.com/JustinTDCT/SkipVault/internal/db"
	"github.com/JustinTDCT/SkipVault/internal/engine"
	"github.com/JustinTDCT/SkipVault/internal/jobs"
	"github.com/JustinTDCT/SkipVault/internal/oracle"
	"github.com/JustinTDCT/SkipVault/internal/oracle/groq"
	"github.com/JustinTDCT/SkipVault/internal/repository"
	"github.com/JustinTDCT/SkipVault/internal/scheduler"
	"github.com/JustinTDCT/SkipVault/internal/transcript"
	"github.com/JustinTDCT/SkipVault/internal/version"
)

func main() {
	_ = godotenv.Load()

	ver := version.Load()
	log.Printf("SkipVault %s starting...", ver.Version)

	cfg := config.Load()

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	cfg.MergeFromDB(database.DB)

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()
	resultCache := cache.New(rdb, time.Duration(cfg.CacheTTLHours)*time.Hour)

	var classifier oracle.Classifier
	if cfg.OracleEnabled() {
		opts := []groq.Option{groq.WithRequestsPerSecond(cfg.OracleRPS)}
		if cfg.GroqModel != "" {
			opts = append(opts, groq.WithModel(cfg.GroqModel))
		}
		classifier, err = groq.New(cfg.GroqAPIKey, cfg.GroqBaseURL, opts...)
		if err != nil {
			log.Fatalf("oracle setup failed: %v", err)
		}
		log.Println("Engine: oracle classifier enabled")
	} else {
		log.Println("Engine: no GROQ_API_KEY set, running rule-based only")
	}

	resultRepo := repository.NewResultRepository(database.DB)
	eng := engine.New(transcript.NewFetcher(), classifier, resultCache, resultRepo)

	jobQueue := jobs.NewQueue(cfg.RedisAddr)
	srv := api.NewServer(cfg, database, eng, resultCache, jobQueue)

	jobs.RegisterHandlers(jobQueue, eng, srv.WSHub())
	if err := jobQueue.Start(); err != nil {
		log.Fatalf("job queue failed to start: %v", err)
	}

	janitor := scheduler.New(resultRepo, resultCache, time.Duration(cfg.ResultRetentionHours)*time.Hour)
	if err := janitor.Start(cfg.JanitorSchedule); err != nil {
		log.Fatalf("scheduler failed to start: %v", err)
	}

	httpServer := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Port),
		Handler:      srv,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("listening on :%d", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	jobQueue.Stop()
	janitor.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	httpServer.Shutdown(ctx)
}
