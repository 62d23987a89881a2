package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "hostel_portal/internal/adapters/http_server"
	"hostel_portal/internal/adapters/observability"
	redisad "hostel_portal/internal/adapters/redis"
	"hostel_portal/internal/app"
	"hostel_portal/internal/domain"
	"hostel_portal/internal/generator"
	"hostel_portal/internal/session"
	"hostel_portal/internal/shared"
	mysqlrepo "hostel_portal/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "hostel-api", cfg.LogLevel)

	// cache is optional
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, running without cache")
			_ = rc.Close()
		} else {
			defer rc.Close()
			cache = rc
		}
	}

	// stores
	var st app.Stores
	switch cfg.Store {
	case shared.StoreMySQL:
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.PingContext(ctx); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		if err := mysqlrepo.InitSchema(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("schema init failed")
		}
		log.Info().Msg("database connection ok")
		st = app.NewMySQLStores(db)
		// snapshots from an earlier process may describe other data
		app.DropCachedViews(ctx, cache)
	default:
		st = app.NewMemoryStores()
		sz := generator.Sizes(cfg.SeedSizes)
		ds := generator.New(cfg.Seed, time.Now()).Dataset(sz)
		if err := app.Seed(ctx, st, cache, ds, cfg.SeedWorkers); err != nil {
			log.Fatal().Err(err).Msg("seeding memory store failed")
		}
		log.Info().Uint64("seed", cfg.Seed).Int("residents", sz.Residents).Int("rooms", sz.Rooms).Msg("memory store seeded")
	}

	q := app.NewQueryService(st, cache, cfg.CacheTTL, time.Now)
	c := app.NewCommandService(st, cache, time.Now)
	auth := app.NewAuthService(app.NewStaticAuthenticator(), session.NewManager(cfg.SessionTTL))

	limiter := server.NewIPLimiter(cfg.LoginRPS, cfg.LoginBurst)
	go housekeeping(ctx, auth, c, limiter)

	// http
	srv := server.New(cfg.TrustProxy)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Q:        q,
		C:        c,
		Auth:     auth,
		Limiter:  limiter,
		PageSize: cfg.PageSize,
	})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdown); err != nil {
			log.Error().Err(err).Msg("http shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Str("store", cfg.Store).Msg("API listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("API stopped")
}

// limiterIdle is how long a login bucket may sit unused before it is dropped.
const limiterIdle = 10 * time.Minute

// housekeeping expires sessions, drops idle login buckets and flags overdue
// movements until ctx ends.
func housekeeping(ctx context.Context, auth *app.AuthService, c *app.CommandService, limiter *server.IPLimiter) {
	t := time.NewTicker(time.Minute)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := auth.Sweep(); n > 0 {
				log.Debug().Int("sessions", n).Msg("expired sessions swept")
			}
			if n := limiter.Sweep(limiterIdle); n > 0 {
				log.Debug().Int("clients", n).Msg("idle login limiters dropped")
			}
			if n, err := c.FlagOverdue(ctx); err != nil {
				log.Warn().Err(err).Msg("overdue sweep failed")
			} else if n > 0 {
				log.Info().Int("movements", n).Msg("movements flagged overdue")
			}
		}
	}
}
