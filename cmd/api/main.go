package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/raspverry/desktop-partner/internal/command"
	"github.com/raspverry/desktop-partner/internal/config"
	"github.com/raspverry/desktop-partner/internal/handler"
	"github.com/raspverry/desktop-partner/internal/service/agent"
	"github.com/raspverry/desktop-partner/internal/service/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	memoryService := memory.NewService()
	registry := command.DefaultRegistry()

	// Initialize agent service when model credentials are present. The stub
	// commands keep working without it.
	var agentService *agent.Service
	if cfg.AI.Enabled() {
		agentService, err = agent.NewService(ctx, memoryService, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize agent service: %v", err)
			log.Println("continuing without agent functionality - Ark 모델 환경 변수를 확인하세요")
		} else {
			log.Println("agent service initialized successfully")
		}
	} else {
		log.Println("Ark 자격 증명이 설정되지 않아 에이전트 기능을 건너뜁니다")
	}

	router := handler.NewRouter(registry, memoryService, agentService)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("desktop partner backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
