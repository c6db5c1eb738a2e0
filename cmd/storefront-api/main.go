package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/trendify/storefront/internal/adapters/catalog"
	"github.com/trendify/storefront/internal/adapters/gateway"
	httpadapter "github.com/trendify/storefront/internal/adapters/http"
	"github.com/trendify/storefront/internal/adapters/llm"
	"github.com/trendify/storefront/internal/adapters/storage/memory"
	"github.com/trendify/storefront/internal/adapters/voice"
	cartapp "github.com/trendify/storefront/internal/app/cart"
	chatapp "github.com/trendify/storefront/internal/app/chat"
	"github.com/trendify/storefront/internal/config"
	"github.com/trendify/storefront/internal/domain"
	"github.com/trendify/storefront/internal/observability"
)

func main() {
	ctx := context.Background()
	log := observability.Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	var generator domain.TextGenerator
	if cfg.UseMockLLM {
		log.Info("using mock text generator")
		generator = llm.NewMockGenerator()
	} else {
		log.Info("using gemini text generator", "model", cfg.ModelName)
		generator, err = llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.ModelName)
		if err != nil {
			log.Error("initializing gemini client", "err", err)
			os.Exit(1)
		}
	}

	catalogSource := catalog.NewHTTPSource(cfg.CatalogURL, cfg.CatalogLimit)
	sessionStore := memory.NewSessionStore()
	turnStore := memory.NewTurnStore()

	cartSvc := cartapp.NewService(catalogSource, sessionStore)
	chatSvc := chatapp.NewService(gateway.NewClient(cfg.GatewayURL), sessionStore, turnStore)

	handler := httpadapter.NewServer(cartSvc, chatSvc, catalogSource, generator, voice.NewUnsupported())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("storefront api listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "err", err)
	}
}
