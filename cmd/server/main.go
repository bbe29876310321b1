package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Spok95/metalstock/internal/api"
	"github.com/Spok95/metalstock/internal/config"
	"github.com/Spok95/metalstock/internal/domain/catalog"
	"github.com/Spok95/metalstock/internal/domain/inventory"
	"github.com/Spok95/metalstock/internal/domain/materials"
	"github.com/Spok95/metalstock/internal/domain/receiving"
	"github.com/Spok95/metalstock/internal/infra/backend"
	"github.com/Spok95/metalstock/internal/infra/db"
	httpx "github.com/Spok95/metalstock/internal/infra/http"
	"github.com/Spok95/metalstock/internal/infra/logger"
	"github.com/Spok95/metalstock/internal/infra/metrics"
	"github.com/Spok95/metalstock/internal/infra/notify"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func runMigrations(dsn, dir string) error {
	sqlDB, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, dir)
}

func main() {
	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	if cfg.App.Timezone != "" {
		loc, err := time.LoadLocation(cfg.App.Timezone)
		if err != nil {
			log.Error("bad timezone", "tz", cfg.App.Timezone, "err", err)
			return
		}
		// дата приёмки по умолчанию считается в часовом поясе склада
		time.Local = loc
	}

	policy, ok := receiving.ParsePolicy(cfg.Receiving.LotPolicy)
	if !ok {
		log.Error("unknown lot policy", "lot_policy", cfg.Receiving.LotPolicy)
		return
	}

	if err := runMigrations(cfg.Postgres.DSN, cfg.Postgres.Migrations); err != nil {
		log.Error("migrations failed", "err", err)
		return
	}
	log.Info("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		return
	}
	defer pool.Close()
	log.Info("db connected")

	matRepo := materials.NewRepo(pool)
	catRepo := catalog.NewRepo(pool)
	invRepo := inventory.NewRepo(pool)

	var sink receiving.LotSink
	switch cfg.Receiving.Sink {
	case "db":
		sink = invRepo
	case "http":
		sink = backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	default:
		log.Error("unknown receiving sink", "sink", cfg.Receiving.Sink)
		return
	}

	submitter := receiving.NewSubmitter(sink, catRepo, policy)
	submitter.OnLot = func(rec receiving.LotRecord, err error) {
		if err != nil {
			metrics.LotsSubmitted.WithLabelValues("error").Inc()
			return
		}
		metrics.LotsSubmitted.WithLabelValues("ok").Inc()
		log.Debug("lot submitted", "lot_number", rec.LotNumber, "qty", rec.ReceivedQuantity, "kg", rec.ReceivedWeightKg)
	}

	deps := api.Deps{
		Materials: matRepo,
		Locations: catRepo,
		Lots:      invRepo,
		Submitter: submitter,
	}
	if cfg.Telegram.Token != "" {
		tg, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.AdminChatID, log)
		if err != nil {
			log.Error("telegram init failed", "err", err)
		} else {
			deps.Notifier = tg
			log.Info("telegram notifications enabled", "chat_id", cfg.Telegram.AdminChatID)
		}
	}

	h := api.New(log, deps)
	srv := httpx.New(cfg.HTTP.Addr, cfg.HTTP.WriteTimeout, cfg.Metrics.Enabled, log, h.Register)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", "err", err)
			stop()
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr, "sink", cfg.Receiving.Sink, "lot_policy", string(policy))

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
