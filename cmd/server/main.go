package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/faiadgitm-oss/trpical-try/internal/config"
	"github.com/faiadgitm-oss/trpical-try/internal/db"
	"github.com/faiadgitm-oss/trpical-try/internal/es"
	"github.com/faiadgitm-oss/trpical-try/internal/handlers"
	"github.com/faiadgitm-oss/trpical-try/internal/hash"
	"github.com/faiadgitm-oss/trpical-try/internal/logging"
	"github.com/faiadgitm-oss/trpical-try/internal/middleware/auth"
	"github.com/faiadgitm-oss/trpical-try/internal/middleware/csrf"
	loggingmw "github.com/faiadgitm-oss/trpical-try/internal/middleware/logging"
	"github.com/faiadgitm-oss/trpical-try/internal/mykafka"
	"github.com/faiadgitm-oss/trpical-try/internal/realtime"
	"github.com/faiadgitm-oss/trpical-try/internal/repo"
	"github.com/faiadgitm-oss/trpical-try/internal/search"
	"github.com/faiadgitm-oss/trpical-try/internal/seed"
	"github.com/faiadgitm-oss/trpical-try/internal/service"
	"github.com/faiadgitm-oss/trpical-try/internal/session"
	httpserver "github.com/faiadgitm-oss/trpical-try/internal/transport/http"
	"github.com/faiadgitm-oss/trpical-try/internal/uploads"
	"github.com/faiadgitm-oss/trpical-try/internal/web"
)

func main() {
	cfg := config.LoadConfig()

	logger := logging.New(cfg.LogLevel).With("service", "tropical")
	slog.SetDefault(logger)

	for _, key := range cfg.InsecureDefaults() {
		logger.Warn("insecure_default", "setting", key)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	seedCtx := logging.IntoContext(context.Background(), logger)
	if seeded, err := seed.Seed(seedCtx, gdb); err != nil {
		logger.Error("seed_failed", "error", err)
	} else if seeded {
		logger.Info("seed_done")
	}

	store, err := uploads.NewStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("upload dir: %v", err)
	}

	passwordHash := cfg.AdminPasswordHash
	if passwordHash == "" {
		passwordHash, err = hash.HashPassword(cfg.AdminPassword)
		if err != nil {
			log.Fatalf("hash admin password: %v", err)
		}
	}

	r := repo.New(gdb)

	var (
		searcher service.Searcher
		indexer  service.Indexer
	)
	if cfg.ESURL != "" {
		if idx := openSearchIndex(seedCtx, cfg, r); idx != nil {
			searcher, indexer = idx, idx
		}
	}

	hub := realtime.NewHub()
	notifier := &realtime.Notifier{Hub: hub}

	var prod *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		prod, err = mykafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			logger.Error("kafka_disabled", "error", err)
		} else {
			notifier.Sink = prod
			logger.Info("kafka_enabled", "brokers", cfg.KafkaBrokers, "topic", prod.Topic())
		}
	}

	menu := service.NewMenuService(r, searcher)
	orders := service.NewOrderService(r, notifier)
	items := service.NewItemService(r, store, indexer)
	sessions := &session.Manager{Secret: cfg.SecretKey, TTL: cfg.SessionTTL, Secure: cfg.CookieSecure}
	csrfCfg := csrf.DefaultConfig()
	csrfCfg.Secure = cfg.CookieSecure

	renderer, err := web.NewRenderer()
	if err != nil {
		log.Fatalf("templates: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.HTTPErrorHandler = handlers.HTTPErrorHandler
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())
	e.Use(echomw.Secure())
	e.Use(echomw.BodyLimit("20M"))

	httpserver.Register(e, &httpserver.Deps{
		DB:             gdb,
		MenuHandler:    &handlers.MenuHTTP{Svc: menu},
		OrderHandler:   &handlers.OrderHTTP{Svc: orders},
		AdminHandler:   &handlers.AdminHTTP{Orders: orders, Items: items, Menu: menu},
		PagesHandler:   &handlers.PagesHTTP{},
		SessionHandler: &handlers.SessionHTTP{Sessions: sessions, PasswordHash: passwordHash},
		Guard:          &auth.AdminGuard{Sessions: sessions},
		Hub:            hub,
		CSRF:           csrfCfg,
		StaticDir:      cfg.StaticDir,
		UploadDir:      store.Dir,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting_down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown", "error", err)
	}
	hub.Close()

	if prod != nil {
		if err := prod.Close(); err != nil {
			logger.Error("kafka_close", "error", err)
		}
	}
	if err := db.Close(gdb); err != nil {
		logger.Error("db_close", "error", err)
	}

	logger.Info("shutdown_complete")
}

// openSearchIndex connects to Elasticsearch and loads the current catalog
// into it. Search falls back to the database when this returns nil.
func openSearchIndex(ctx context.Context, cfg *config.Config, r *repo.GormRepo) *search.ESIndex {
	l := logging.FromContext(ctx)

	client, err := es.NewClient(es.Config{URL: cfg.ESURL, User: cfg.ESUser, Password: cfg.ESPassword})
	if err != nil {
		l.Error("search_index_disabled", "error", err)
		return nil
	}

	idx := search.NewESIndex(client, cfg.ESIndex)
	if err := idx.EnsureIndex(ctx); err != nil {
		l.Error("search_index_disabled", "error", err)
		return nil
	}

	all, err := r.ListItems(ctx)
	if err == nil {
		err = idx.Reindex(ctx, all)
	}
	if err != nil {
		l.Warn("search_reindex_failed", "error", err)
	}
	return idx
}
