package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/meur/harborline/internal/api"
	"github.com/meur/harborline/internal/config"
	"github.com/meur/harborline/internal/content"
	"github.com/meur/harborline/internal/forms"
	"github.com/meur/harborline/internal/observability"
	"github.com/meur/harborline/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Flags override the environment
	port := flag.String("port", cfg.Server.Port, "Server port")
	dbPath := flag.String("db", cfg.Store.DBPath, "SQLite database path")
	driver := flag.String("store", cfg.Store.Driver, "Store driver (sqlite, firestore, memory)")
	flag.Parse()
	cfg.Server.Port = *port
	cfg.Store.DBPath = *dbPath
	cfg.Store.Driver = *driver

	logger, err := observability.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	backend, err := storage.Open(cfg)
	if err != nil {
		logger.Fatal("failed to initialize storage", zap.Error(err))
	}
	client := storage.NewClient(backend)
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loader := content.NewLoader(client, logger)
	loadCtx, cancel := context.WithTimeout(ctx, cfg.Content.LoadTimeout)
	// A failed first load leaves the site empty until the next refresh.
	_ = loader.Load(loadCtx)
	cancel()
	go loader.Run(ctx, cfg.Content.RefreshInterval, cfg.Content.LoadTimeout)

	sessions := forms.NewSessions(client, cfg.Forms.SessionCapacity, cfg.Forms.SessionTTL,
		forms.WithResetDelay(cfg.Forms.ResetDelay),
		forms.WithLogger(logger),
	)

	srv := api.New(loader, sessions, logger,
		api.WithAllowedOrigins(cfg.Server.AllowedOrigins),
		api.WithLoadTimeout(cfg.Content.LoadTimeout),
	)

	// Serve frontend static files (for production deployment)
	if cfg.Server.StaticDir != "" {
		FileServer(srv.Router(), "/", http.Dir(cfg.Server.StaticDir))
	}

	httpServer := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      srv,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("server starting",
		zap.String("addr", httpServer.Addr),
		zap.String("store", cfg.Store.Driver),
	)

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server failed", zap.Error(err))
	}
}

// FileServer conveniently sets up a http.FileServer handler to serve
// static files from a http.FileSystem.
func FileServer(r chi.Router, path string, root http.FileSystem) {
	if strings.ContainsAny(path, "{}*") {
		panic("FileServer does not permit URL parameters.")
	}

	if path != "/" && path[len(path)-1] != '/' {
		r.Get(path, http.RedirectHandler(path+"/", 301).ServeHTTP)
		path += "/"
	}
	path += "*"

	r.Get(path, func(w http.ResponseWriter, req *http.Request) {
		rctx := chi.RouteContext(req.Context())
		pathPrefix := strings.TrimSuffix(rctx.RoutePattern(), "/*")
		fs := http.StripPrefix(pathPrefix, http.FileServer(root))
		fs.ServeHTTP(w, req)
	})
}
