package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/openbobs/gateway/internal/adapter/duckduckgo"
	"github.com/openbobs/gateway/internal/adapter/fsstore"
	gwhttp "github.com/openbobs/gateway/internal/adapter/http"
	"github.com/openbobs/gateway/internal/adapter/ollama"
	"github.com/openbobs/gateway/internal/adapter/ristretto"
	"github.com/openbobs/gateway/internal/config"
	"github.com/openbobs/gateway/internal/logger"
	"github.com/openbobs/gateway/internal/metrics"
	"github.com/openbobs/gateway/internal/middleware"
	"github.com/openbobs/gateway/internal/port/cache"
	"github.com/openbobs/gateway/internal/resilience"
	"github.com/openbobs/gateway/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Service)
	slog.SetDefault(log)

	port, err := strconv.Atoi(cfg.Server.Port)
	if err != nil {
		return fmt.Errorf("config: port %q is not a number", cfg.Server.Port)
	}

	slog.Info("config loaded",
		"host", cfg.Server.Host,
		"port", port,
		"ollama_url", cfg.Ollama.URL,
		"library_dir", cfg.Library.Dir,
	)

	// --- Infrastructure ---

	var searchCache cache.Cache
	if c, err := ristretto.New(cfg.Cache.MaxSizeMB << 20); err != nil {
		slog.Warn("search cache disabled", "error", err)
	} else {
		searchCache = c
		defer c.Close()
	}

	store, err := fsstore.New(cfg.Library.Dir)
	if err != nil {
		return fmt.Errorf("agent library: %w", err)
	}

	llmClient := ollama.NewClient(cfg.Ollama.URL, cfg.Ollama.ChatTimeout, cfg.Ollama.HealthTimeout)
	llmClient.SetBreaker(resilience.NewBreaker(cfg.Breaker.MaxFailures, cfg.Breaker.Timeout))

	ddg := duckduckgo.NewClient(cfg.Search.BaseURL, cfg.Search.UserAgent, cfg.Search.Timeout)

	// --- Services ---

	registry := metrics.NewRegistry(metrics.Names()...)
	handlers := &gwhttp.Handlers{
		LLM:       llmClient,
		Search:    service.NewSearchService(ddg, ddg, searchCache, cfg.Search.CacheTTL, log),
		Tools:     service.NewToolService(cfg.Tools.ProbeTimeout, cfg.Tools.OutputLimit),
		Library:   service.NewLibraryService(store, cfg.Library.ImportTimeout, cfg.Library.UserAgent),
		Metrics:   registry,
		StartedAt: time.Now(),
		Host:      cfg.Server.Host,
		Port:      port,
		OllamaURL: cfg.Ollama.URL,
	}

	// --- HTTP ---

	r := chi.NewRouter()
	r.Use(gwhttp.CORS(cfg.Server.CORSOrigin))
	r.Use(gwhttp.SecurityHeaders)
	r.Use(middleware.RequestID)
	r.Use(gwhttp.Logger)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	gwhttp.MountRoutes(r, handlers, cfg.Server.StaticDir)

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("gateway listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
