// Command kanban-server serves the board API over HTTP/JSON and gRPC.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/and161185/kanban/internal/cache"
	"github.com/and161185/kanban/internal/config"
	"github.com/and161185/kanban/internal/migrate"
	"github.com/and161185/kanban/internal/repository"
	"github.com/and161185/kanban/internal/repository/memory"
	"github.com/and161185/kanban/internal/repository/mongodb"
	"github.com/and161185/kanban/internal/repository/postgres"
	grpcserver "github.com/and161185/kanban/internal/server/grpc"
	httpserver "github.com/and161185/kanban/internal/server/http"
	"github.com/and161185/kanban/internal/service"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

const shutdownTimeout = 5 * time.Second

// main loads configuration, opens the board store and serves both facades until a signal arrives.
func main() {
	cfg, err := config.Load(os.Args[1:], os.Getenv)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}

	logger, err := cfg.Logger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("store", cfg.Store),
		zap.String("http", cfg.HTTPAddr),
		zap.String("grpc", cfg.GRPCAddr),
	)

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("open store", zap.Error(err))
	}
	defer closeStore()

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		defer func() { _ = rdb.Close() }()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, cache will retry per request", zap.Error(err))
		}
		repo = cache.New(repo, rdb, cfg.Redis.TTL, logger)
	}

	svc := service.NewBoardService(repo, nil)

	httpSrv := httpserver.New(svc, logger)
	grpcSrv, health := grpcserver.NewGRPCServer(grpcserver.New(svc), logger, cfg.Dev)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		logger.Fatal("listen", zap.Error(err))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpSrv.Listen(cfg.HTTPAddr); err != nil {
			return fmt.Errorf("http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		logger.Info("grpc listening", zap.String("addr", cfg.GRPCAddr))
		if err := grpcSrv.Serve(lis); err != nil {
			return fmt.Errorf("grpc: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		health.Shutdown()

		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			grpcSrv.GracefulStop()
			close(done)
		}()
		httpErr := httpSrv.Shutdown(sctx)
		select {
		case <-done:
		case <-sctx.Done():
			grpcSrv.Stop()
		}
		return httpErr
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server error", zap.Error(err))
		closeStore()
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}

// openStore builds the configured repository and returns a cleanup func.
func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.BoardRepository, func(), error) {
	switch cfg.Store {
	case config.StorePostgres:
		if err := migrate.Up(ctx, cfg.DatabaseDSN, log); err != nil {
			return nil, nil, fmt.Errorf("migrate up: %w", err)
		}
		db, err := postgres.New(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewBoardRepo(db), db.Close, nil

	case config.StoreMongo:
		client, err := mongodb.Connect(ctx, cfg.Mongo.URI)
		if err != nil {
			return nil, nil, fmt.Errorf("mongo connect: %w", err)
		}
		closeFn := func() { _ = client.Disconnect(context.Background()) }
		repo := mongodb.NewBoardRepo(client.Database(cfg.Mongo.Database).Collection(mongodb.BoardsCollection))
		if err := repo.EnsureIndexes(ctx); err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("mongo indexes: %w", err)
		}
		return repo, closeFn, nil

	default:
		return memory.NewBoardRepo(), func() {}, nil
	}
}
