package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"attestor/internal/audit"
	"attestor/internal/certificate"
	jwttoken "attestor/internal/jwt_token"
	"attestor/internal/ledger"
	"attestor/internal/oracle"
	"attestor/internal/platform/config"
	"attestor/internal/platform/httpserver"
	"attestor/internal/platform/logger"
	"attestor/internal/platform/metrics"
	"attestor/internal/platform/middleware"
	platformredis "attestor/internal/platform/redis"
	httpapi "attestor/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal services.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis init failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	oracleStore, closeStore, err := buildOracleStore(ctx, cfg.Oracle, log)
	if err != nil {
		log.Error("oracle store init failed", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	var cache *oracle.ValidationCache
	if redisClient != nil {
		cache = oracle.NewValidationCache(redisClient, cfg.Oracle.CacheTTL)
	}
	oracleSvc := oracle.NewService(oracleStore, cache, log, m)

	ledgerClient := buildLedger(cfg.Ledger, log)

	auditStore, closeAudit, err := buildAuditStore(ctx, cfg.Audit)
	if err != nil {
		log.Error("audit store init failed", "error", err)
		os.Exit(1)
	}
	defer closeAudit()
	publisher := audit.NewPublisher(256, log)
	worker := audit.NewWorker(auditStore, publisher.Inbox(), log)

	coordinator := certificate.NewService(oracleSvc, ledgerClient, publisher, log, m, cfg.Ledger.Timeout)

	var jwtValidator middleware.JWTValidator
	if cfg.JWTSigningKey != "" {
		jwtValidator = jwttoken.NewJWTService(cfg.JWTSigningKey, "attestor")
	} else {
		log.Warn("JWT_SIGNING_KEY not set, mutating routes are unauthenticated")
	}

	handler := httpapi.NewHandler(coordinator, oracleSvc, httpapi.ContractInfo{
		Address: cfg.ContractAddress,
		Network: cfg.ContractNetwork,
	}, log, jwtValidator)
	if redisClient != nil {
		handler.AddDependency("redis", redisClient)
	}

	srv := httpserver.New(cfg.Addr, httpapi.NewRouter(handler, log, m))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting attestor", "addr", cfg.Addr, "ledger_mode", cfg.Ledger.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := worker.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("shutdown with error", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}

// buildOracleStore picks postgres when a DSN is configured, otherwise the
// static seed dataset.
func buildOracleStore(ctx context.Context, cfg config.OracleConfig, log *slog.Logger) (oracle.Store, func(), error) {
	if cfg.PostgresDSN != "" {
		store, err := oracle.NewPostgresStore(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := store.Seed(ctx, oracle.SeedEvents(), oracle.SeedParticipants()); err != nil {
			store.Close()
			return nil, nil, err
		}
		log.Info("oracle store: postgres")
		return store, func() { store.Close() }, nil
	}
	store, err := oracle.NewMemoryStore(oracle.SeedEvents(), oracle.SeedParticipants())
	if err != nil {
		return nil, nil, err
	}
	log.Info("oracle store: in-memory seed")
	return store, func() {}, nil
}

func buildLedger(cfg config.LedgerConfig, log *slog.Logger) ledger.Client {
	if cfg.Mode == "node" {
		log.Info("ledger: registry node", "url", cfg.NodeURL)
		return ledger.NewNodeClient(cfg.NodeURL, cfg.IssuerAccount, cfg.ConfirmPollInterval)
	}
	log.Info("ledger: in-memory chain")
	return ledger.NewMemoryLedger(cfg.IssuerAccount)
}

func buildAuditStore(ctx context.Context, cfg config.AuditConfig) (audit.Store, func(), error) {
	if len(cfg.KafkaBrokers) > 0 {
		store, err := audit.NewKafkaStore(ctx, cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	}
	return audit.NewMemoryStore(), func() {}, nil
}
