package main

import (
	"Scribz/internal/auth"
	"Scribz/internal/config"
	"Scribz/internal/handlers"
	"Scribz/internal/middleware"
	"Scribz/internal/repo"
	"Scribz/internal/service"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	// создаём предустановленный регистратор zap
	var logger *zap.Logger
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		_ = logger.Sync()
	}()

	if cfg.IsProduction() && cfg.UsesDefaultSecret() {
		sugar.Warnw("AUTH_SECRET is not set, tokens are signed with the development key")
	}

	//context
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store, err := repo.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if err := store.Close(closeCtx); err != nil {
			sugar.Errorw("failed to close database", "error", err)
		}
	}()

	tokens := auth.NewTokenManager(cfg.AuthSecret, cfg.TokenTTL)
	userService := service.NewUserService(store.Users, tokens)
	noteService := service.NewNoteService(store.Notes, sugar)

	h := handlers.NewHandler(userService, noteService, sugar, cfg, store)

	srv := &http.Server{
		Addr:              cfg.BaseURL,
		Handler:           h.Router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	sugar.Infow("Starting server",
		"addr", srv.Addr,
		"env", cfg.AppEnv,
		"token_ttl", cfg.TokenTTL,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Errorw("Server failed", "error", err)
		}
	case <-ctx.Done():
		sugar.Infow("Shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sugar.Errorw("graceful shutdown failed", "error", err)
		}
	}
}
