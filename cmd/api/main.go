package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Overland-East-Bay/member-search-api/internal/adapters/httpapi"
	memidempotency "github.com/Overland-East-Bay/member-search-api/internal/adapters/memory/idempotency"
	memmemberrepo "github.com/Overland-East-Bay/member-search-api/internal/adapters/memory/memberrepo"
	memteamrepo "github.com/Overland-East-Bay/member-search-api/internal/adapters/memory/teamrepo"
	postgres "github.com/Overland-East-Bay/member-search-api/internal/adapters/postgres"
	pgidempotency "github.com/Overland-East-Bay/member-search-api/internal/adapters/postgres/idempotency"
	pgmemberrepo "github.com/Overland-East-Bay/member-search-api/internal/adapters/postgres/memberrepo"
	pgteamrepo "github.com/Overland-East-Bay/member-search-api/internal/adapters/postgres/teamrepo"
	"github.com/Overland-East-Bay/member-search-api/internal/adapters/sqlite"
	sqliteidempotency "github.com/Overland-East-Bay/member-search-api/internal/adapters/sqlite/idempotency"
	sqlitememberrepo "github.com/Overland-East-Bay/member-search-api/internal/adapters/sqlite/memberrepo"
	sqliteteamrepo "github.com/Overland-East-Bay/member-search-api/internal/adapters/sqlite/teamrepo"
	"github.com/Overland-East-Bay/member-search-api/internal/adapters/sqlsearch"
	"github.com/Overland-East-Bay/member-search-api/internal/app/members"
	platformclock "github.com/Overland-East-Bay/member-search-api/internal/platform/clock"
	"github.com/Overland-East-Bay/member-search-api/internal/platform/config"
	"github.com/Overland-East-Bay/member-search-api/internal/platform/logger"
	idempotencyport "github.com/Overland-East-Bay/member-search-api/internal/ports/out/idempotency"
	memberrepoport "github.com/Overland-East-Bay/member-search-api/internal/ports/out/memberrepo"
	teamrepoport "github.com/Overland-East-Bay/member-search-api/internal/ports/out/teamrepo"
)

const serviceName = "member-search-api"

type stores struct {
	members memberrepoport.Repository
	teams   teamrepoport.Repository
	idem    idempotencyport.Store
	close   func()
}

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		// No logger yet: the env decides its encoder.
		logger.New(serviceName, os.Getenv("APP_ENV")).Fatal("invalid config", zap.Error(err))
	}
	log := logger.New(serviceName, cfg.AppEnv)
	defer func() { _ = log.Sync() }()

	st, err := openStores(context.Background(), cfg, log)
	if err != nil {
		log.Fatal("open storage", zap.String("backend", string(cfg.Storage)), zap.Error(err))
	}
	if st.close != nil {
		defer st.close()
	}

	memberSvc := members.NewService(st.members, st.teams)
	api := httpapi.NewServer(memberSvc, st.idem, platformclock.NewSystemClock(), log)
	handler := httpapi.NewRouter(api, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("api listening", zap.String("port", cfg.Port), zap.String("storage", string(cfg.Storage)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("shutdown", zap.Error(err))
	}
}

func openStores(ctx context.Context, cfg config.Config, log *zap.Logger) (stores, error) {
	queryLog := log.Named("sqlsearch")

	switch cfg.Storage {
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, postgres.PoolOptions{MaxConns: cfg.DBMaxConns})
		if err != nil {
			return stores{}, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return stores{}, err
		}
		session := sqlsearch.NewLoggingSession(postgres.NewSession(pool), queryLog, cfg.SlowQueryThreshold)
		return stores{
			members: pgmemberrepo.NewRepo(pool, session),
			teams:   pgteamrepo.NewRepo(pool),
			idem:    pgidempotency.NewStore(pool),
			close:   pool.Close,
		}, nil

	case config.StorageSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return stores{}, err
		}
		session := sqlsearch.NewLoggingSession(sqlite.NewSession(db), queryLog, cfg.SlowQueryThreshold)
		return stores{
			members: sqlitememberrepo.NewRepo(db, session),
			teams:   sqliteteamrepo.NewRepo(db),
			idem:    sqliteidempotency.NewStore(db),
			close:   func() { _ = db.Close() },
		}, nil

	default:
		teams := memteamrepo.NewRepo()
		return stores{
			members: memmemberrepo.NewRepo(teams),
			teams:   teams,
			idem:    memidempotency.NewStore(),
		}, nil
	}
}
