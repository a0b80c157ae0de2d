package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/redis/go-redis/v9"

	"github.com/talentohq/ats-server/internal/api"
	"github.com/talentohq/ats-server/internal/config"
	"github.com/talentohq/ats-server/internal/docstore"
	"github.com/talentohq/ats-server/internal/importer"
	"github.com/talentohq/ats-server/internal/repository/postgres"
	"github.com/talentohq/ats-server/internal/service/candidate"
	"github.com/talentohq/ats-server/internal/service/process"
)

// checkPortAvailable verifies that the target port is not already in
// use, so a stale process doesn't silently shadow this one.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %v", port, addr, err)
	}
	ln.Close()
	return nil
}

func main() {
	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	host := cfg.Server.GetHost()
	port := cfg.Server.Port
	if port == 0 {
		port = 8080
	}
	if err := checkPortAvailable(host, port); err != nil {
		log.Fatalf("Pre-flight check FAILED: %v", err)
	}

	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	if err := db.Ping(); err != nil {
		log.Fatalf("Database unreachable: %v", err)
	}
	defer db.Close()

	processes := process.NewService(postgres.NewProcessRepo(db))
	candidates := candidate.NewService(postgres.NewCandidateRepo(db), processes)
	imports := importer.NewService(candidates, processes)

	handlers := api.NewHandlers(candidates, processes, imports, cfg)

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Printf("Redis unreachable, import history disabled: %v", err)
		} else {
			history := importer.NewHistory(rdb, cfg.Import.HistorySize)
			imports.SetHistory(history)
			handlers.SetHistory(history)
			log.Println("Import history enabled")
		}
	}

	if cfg.Storage.Bucket != "" {
		store, err := docstore.New(context.Background(), docstore.Config{
			Bucket: cfg.Storage.Bucket,
			Region: cfg.Storage.Region,
			Prefix: cfg.Storage.Prefix,
		})
		if err != nil {
			log.Printf("Document store disabled: %v", err)
		} else {
			handlers.SetDocStore(store)
			log.Println("Document store enabled")
		}
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      api.SetupRoutes(handlers),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
