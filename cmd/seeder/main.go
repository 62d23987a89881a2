package main

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"hostel_portal/internal/adapters/observability"
	redisad "hostel_portal/internal/adapters/redis"
	"hostel_portal/internal/app"
	"hostel_portal/internal/domain"
	"hostel_portal/internal/generator"
	"hostel_portal/internal/shared"
	mysqlrepo "hostel_portal/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "hostel-seeder", cfg.LogLevel)
	observability.Serve(cfg.MetricsAddr, observability.InitRegistry())

	sz := generator.Sizes(cfg.SeedSizes)
	log.Info().
		Uint64("seed", cfg.Seed).
		Int("workers", cfg.SeedWorkers).
		Int("residents", sz.Residents).
		Int("rooms", sz.Rooms).
		Int("polls", sz.Polls).
		Msg("seeder starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	if err := mysqlrepo.InitSchema(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("schema init failed")
	}

	// cached stats from a previous dataset must go
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer rc.Close()
		cache = rc
	}

	start := time.Now()
	ds := generator.New(cfg.Seed, start).Dataset(sz)
	if err := app.Seed(ctx, app.NewMySQLStores(db), cache, ds, cfg.SeedWorkers); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}
	log.Info().Dur("took", time.Since(start)).Msg("seeding completed")
}
