package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"vessels/db"
	"vessels/db/migrations"
	"vessels/internal/config"
	"vessels/internal/handlers"
	"vessels/internal/logging"
	"vessels/internal/metrics"
	"vessels/internal/service"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("error loading config: %v", err)
	}
	log := logging.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatalf("cannot open storage: %v", err)
	}
	defer closeStore()

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("invalid time zone: %v", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	svc := service.New(store,
		service.WithLocation(loc),
		service.WithLogger(log),
		service.WithMetrics(m),
	)
	h := handlers.NewHandler(svc, log)

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      handlers.NewRouter(h, m, metrics.Handler(reg)),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.WithFields(logrus.Fields{"addr": srv.Addr, "storage": cfg.Storage.Driver}).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}

// openStore returns the configured store and a func releasing it.
func openStore(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (service.Store, func(), error) {
	if cfg.Storage.Driver == config.DriverMemory {
		log.Warn("using in-memory storage, data is lost on restart")
		return db.NewMemoryStorage(), func() {}, nil
	}

	dbConn, err := sqlx.ConnectContext(ctx, "postgres", cfg.Database.DSN)
	if err != nil {
		return nil, nil, err
	}
	dbConn.SetMaxOpenConns(cfg.Database.MaxOpenConns)

	if cfg.Database.AutoMigrate {
		if err := migrations.Run(ctx, dbConn.DB, log); err != nil {
			dbConn.Close()
			return nil, nil, err
		}
	}
	return db.NewStorage(dbConn), func() { dbConn.Close() }, nil
}
