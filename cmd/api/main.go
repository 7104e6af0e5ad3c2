package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/youthmindhub/backend/internal/config"
	"github.com/youthmindhub/backend/internal/handler"
	chathandler "github.com/youthmindhub/backend/internal/handler/chat"
	mailhandler "github.com/youthmindhub/backend/internal/handler/mail"
	"github.com/youthmindhub/backend/internal/service/ai"
	"github.com/youthmindhub/backend/internal/service/auth"
	mailservice "github.com/youthmindhub/backend/internal/service/mail"
	"github.com/youthmindhub/backend/internal/service/retrieval"
	"github.com/youthmindhub/backend/internal/storage"
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

	// Firebase backs both identity verification and the content collections.
	// A failed initialization is a warning: the affected endpoints fail
	// per-request instead of keeping the whole service down.
	var authService *auth.Service
	var contentStore retrieval.ContentStore
	clients, err := storage.NewClients(ctx, cfg.Firebase)
	if err != nil {
		log.Printf("warning: failed to initialize Firebase clients: %v", err)
		log.Println("continuing without identity verification and grounding")
	} else {
		defer func() { _ = clients.Close() }()
		authService = auth.NewService(
			storage.NewTokenVerifier(clients.Auth),
			storage.NewUserStore(clients.Firestore),
		)
		contentStore = storage.NewContentStore(clients.Firestore)
	}

	var dispatcher mailhandler.Dispatcher
	if cfg.Mail.Enabled() {
		dispatcher = mailservice.NewService(
			mailservice.NewSendGridSender(cfg.Mail.APIKey),
			mailservice.SenderIdentity{Email: cfg.Mail.FromEmail, Name: cfg.Mail.FromName},
		)
	} else {
		log.Println("warning: missing SENDGRID_KEY (email may fail)")
	}

	var generator ai.Generator
	if cfg.AI.Enabled() {
		aiService, err := ai.NewService(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize AI service: %v", err)
			log.Println("continuing without chat functionality")
		} else {
			generator = aiService
			log.Println("AI service initialized successfully")
		}
	} else {
		log.Println("warning: missing chat model credentials (chat may fail)")
	}

	retrievalService := retrieval.NewService(contentStore, retrieval.Config{
		SnapshotLimit:  cfg.Retrieval.SnapshotLimit,
		SelectionLimit: cfg.Retrieval.SelectionLimit,
	})

	router := handler.NewRouter(
		mailhandler.New(authService, dispatcher),
		chathandler.New(generator, retrievalService),
	)

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

	log.Printf("Youth Mental Hub gateway listening on %s", addr)
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
