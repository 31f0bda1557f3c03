package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"github.com/simaogato/ledgerflow-backend/internal/adapter/cache"
	"github.com/simaogato/ledgerflow-backend/internal/adapter/gemini"
	grpcadapter "github.com/simaogato/ledgerflow-backend/internal/adapter/grpc"
	"github.com/simaogato/ledgerflow-backend/internal/adapter/httpapi"
	"github.com/simaogato/ledgerflow-backend/internal/adapter/observability"
	"github.com/simaogato/ledgerflow-backend/internal/adapter/repository/memory"
	"github.com/simaogato/ledgerflow-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/ledgerflow-backend/internal/adapter/repository/redis"
	"github.com/simaogato/ledgerflow-backend/internal/adapter/repository/sqlite"
	"github.com/simaogato/ledgerflow-backend/internal/adapter/resilience"
	"github.com/simaogato/ledgerflow-backend/internal/config"
	"github.com/simaogato/ledgerflow-backend/internal/domain"
	"github.com/simaogato/ledgerflow-backend/internal/usecase/advice"
	"github.com/simaogato/ledgerflow-backend/internal/usecase/dashboard"
	"github.com/simaogato/ledgerflow-backend/internal/usecase/seeder"
	"github.com/simaogato/ledgerflow-backend/internal/usecase/snapshot"
	"github.com/simaogato/ledgerflow-backend/internal/usecase/tracker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", os.Getenv("LEDGERFLOW_CONFIG"), "path to a YAML config file")
	flag.Parse()

	// 1. Configuration and logging
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("grpc_addr", cfg.Server.GRPCAddr),
		zap.String("http_addr", cfg.Server.HTTPAddr),
		zap.Bool("advice_enabled", cfg.Advice.APIKey != ""),
	)

	metrics := observability.NewMetrics()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Storage
	store, checks, closeStore, err := openStore(ctx, cfg.Storage)
	if err != nil {
		logger.Fatal("failed to open store", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	defer closeStore()

	created, err := seeder.NewCollectionSeeder(store).Seed(ctx)
	if err != nil {
		logger.Fatal("failed to seed collections", zap.Error(err))
	}
	if len(created) > 0 {
		logger.Info("seeded empty collections", zap.Strings("keys", created))
	}

	// 3. Application state
	codec := snapshot.NewCodec(store, logger, metrics)
	state, err := codec.Load(ctx)
	if err != nil {
		logger.Fatal("failed to load state", zap.Error(err))
	}
	logger.Info("state loaded",
		zap.Int("transactions", len(state.Transactions)),
		zap.Int("scheduled_payments", len(state.ScheduledPayments)),
		zap.Int("investment_accounts", len(state.InvestmentAccounts)),
	)

	// 4. Advice
	generator, err := gemini.NewGenerator(ctx, gemini.Config{
		APIKey: cfg.Advice.APIKey,
		Model:  cfg.Advice.Model,
		Resilience: resilience.Config{
			MaxRetries:     cfg.Advice.MaxRetries,
			InitialBackoff: cfg.Advice.InitialBackoff,
		},
	}, logger)
	if err != nil {
		logger.Fatal("failed to create advice generator", zap.Error(err))
	}
	defer generator.Close()

	tipCache := cache.New[string](cfg.Advice.CacheTTL)
	defer tipCache.Close()
	adviceService := advice.NewService(generator, tipCache, cfg.Advice.Timeout, metrics, logger)

	t := tracker.New(state, codec,
		tracker.WithAdviser(adviceService),
		tracker.WithMetrics(metrics),
		tracker.WithLogger(logger),
	)
	dashboardService := dashboard.NewDashboardService(t)

	// 5. Servers
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpcadapter.RecoveryInterceptor(logger),
			grpcadapter.LoggingInterceptor(logger, metrics),
			grpcadapter.AuthInterceptor(cfg.Server.APIToken),
		),
	)
	grpcadapter.RegisterTrackerServiceServer(grpcServer, grpcadapter.NewServer(t, dashboardService))
	reflection.Register(grpcServer)

	httpServer := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           httpapi.NewRouter(checks, metrics, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", cfg.Server.GRPCAddr, err)
		}
		logger.Info("gRPC server listening", zap.String("addr", cfg.Server.GRPCAddr))
		return grpcServer.Serve(lis)
	})

	g.Go(func() error {
		logger.Info("HTTP server listening", zap.String("addr", cfg.Server.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Graceful shutdown on signal or when either server fails
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		grpcServer.GracefulStop()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
		return
	}
	logger.Info("server stopped")
}

// openStore connects the configured backend and returns its health checks and closer
func openStore(ctx context.Context, cfg config.StorageConfig) (domain.KVStore, map[string]httpapi.HealthCheck, func(), error) {
	noop := func() {}

	switch cfg.Driver {
	case config.DriverMemory:
		return memory.NewKVRepository(), nil, noop, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, noop, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, noop, err
		}
		checks := map[string]httpapi.HealthCheck{"sqlite": sqlDB.PingContext}
		return sqlite.NewKVRepository(db), checks, func() { _ = sqlDB.Close() }, nil

	case config.DriverPostgres:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		db, err := postgres.NewDB(connectCtx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, noop, err
		}
		if err := db.EnsureSchema(connectCtx); err != nil {
			_ = db.Close()
			return nil, nil, noop, err
		}
		checks := map[string]httpapi.HealthCheck{"postgres": db.PingContext}
		return postgres.NewKVRepository(db), checks, func() { _ = db.Close() }, nil

	case config.DriverRedis:
		client, err := redis.Connect(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, noop, err
		}
		checks := map[string]httpapi.HealthCheck{
			"redis": func(ctx context.Context) error { return client.Ping(ctx).Err() },
		}
		return redis.NewKVRepository(client, cfg.RedisPrefix), checks, func() { _ = client.Close() }, nil
	}

	return nil, nil, noop, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}
