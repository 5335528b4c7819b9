package main

import (
	"context"
	"database/sql"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"seatkeeper/internal/config"
	"seatkeeper/internal/infrastructure/logger"
	"seatkeeper/internal/infrastructure/mysql"
	"seatkeeper/internal/reservation"
	"seatkeeper/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	var db *sql.DB
	if cfg.Store.Driver == config.StoreDriverMySQL {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		db, err = mysql.NewConnection(ctx, cfg.Database)
		if err == nil {
			err = mysql.EnsureSchema(ctx, db)
		}
		cancel()
		if err != nil {
			zapLogger.Fatal("connecting to database", zap.Error(err))
		}
		defer db.Close()
		zapLogger.Info("database connected")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	store := reservation.NewStore(cfg, db, zapLogger)
	reservationCtrl := reservation.NewModule(store, cfg, zapLogger, registry)

	router := server.NewRouter(reservationCtrl, registry, zapLogger)

	srv := server.New(cfg.Server, router, zapLogger)

	zapLogger.Info("reservation service configured",
		zap.String("store", cfg.Store.Driver),
		zap.Int("capacity", cfg.Reservation.Capacity),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		zapLogger.Fatal("server error", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
