// Package main runs the relations builder stage of the UTXO graph pipeline.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/goodnatureofminers/blockinsight7000-graph/internal/metrics"
	rpcclient2 "github.com/goodnatureofminers/blockinsight7000-graph/internal/pkg/btcd/rpcclient"
	"github.com/goodnatureofminers/blockinsight7000-graph/internal/transport"
	"github.com/goodnatureofminers/blockinsight7000-graph/internal/utxo/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-graph/internal/utxo/cache"
	"github.com/goodnatureofminers/blockinsight7000-graph/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-graph/internal/utxo/pipeline"
	"github.com/goodnatureofminers/blockinsight7000-graph/internal/utxo/relations"
	"github.com/goodnatureofminers/blockinsight7000-graph/internal/utxo/repository/clickhouse"
	blockinsight7000v1 "github.com/goodnatureofminers/blockinsight7000-proto/pkg/blockinsight7000/v1"
	grpcMiddleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	grpcRecovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpcCtxTags "github.com/grpc-ecosystem/go-grpc-middleware/tags"
	grpcPrometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

type config struct {
	ClickhouseDSN string        `long:"clickhouse-dsn" env:"RELATIONS_CLICKHOUSE_DSN" description:"ClickHouse DSN" required:"true"`
	Coin          model.Coin    `long:"coin" env:"RELATIONS_COIN" description:"coin name" required:"true"`
	Network       model.Network `long:"network" env:"RELATIONS_NETWORK" description:"network name" required:"true"`
	RPCURL        string        `long:"rpc-url" env:"RELATIONS_RPC_URL" description:"Bitcoin RPC URL" default:"http://127.0.0.1:8332"`
	RPCUser       string        `long:"rpc-user" env:"RELATIONS_RPC_USER" description:"Bitcoin RPC username"`
	RPCPassword   string        `long:"rpc-password" env:"RELATIONS_RPC_PASSWORD" description:"Bitcoin RPC password"`
	RPCRateLimit  int           `long:"rpc-rate-limit" env:"RELATIONS_RPC_RATE_LIMIT" description:"max RPC requests per second, 0 disables throttling" default:"50"`
	CacheStale    time.Duration `long:"cache-stale-after" env:"RELATIONS_CACHE_STALE_AFTER" description:"how long a cached chain height stays fresh" default:"10m"`
	IdleSleep     time.Duration `long:"idle-sleep" env:"RELATIONS_IDLE_SLEEP" description:"wait when no block is eligible" default:"5s"`
	Backoff       time.Duration `long:"backoff" env:"RELATIONS_BACKOFF" description:"wait after a failed iteration" default:"5s"`
	ZMQAddr       string        `long:"zmq-addr" env:"RELATIONS_ZMQ_ADDR" description:"bitcoind zmq hashblock endpoint (requires zmq build tag)"`
	MetricsAddr   string        `long:"metrics-addr" env:"RELATIONS_METRICS_ADDR" description:"address for metrics server" default:":2112"`
	GRPCAddr      string        `long:"grpc-addr" env:"RELATIONS_GRPC_ADDR" description:"admin gRPC address" default:":8000"`
	RestAddr      string        `long:"rest-addr" env:"RELATIONS_REST_ADDR" description:"admin REST address" default:":8001"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	grpcZap.ReplaceGrpcLoggerV2(logger)

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	logger = logger.With(zap.String("coin", string(cfg.Coin)), zap.String("network", string(cfg.Network)))
	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("relations builder failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	genesisTxID, err := bitcoin.GenesisTransactionID(cfg.Coin, cfg.Network)
	if err != nil {
		return fmt.Errorf("resolve genesis transaction: %w", err)
	}
	decoder, err := bitcoin.NewScriptDecoder(cfg.Network)
	if err != nil {
		return fmt.Errorf("init script decoder: %w", err)
	}

	repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository())
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Warn("failed to close repository", zap.Error(err))
		}
	}()

	rpcClient, err := newRPCClient(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
	if err != nil {
		return fmt.Errorf("init utxo rpc client: %w", err)
	}
	defer func() {
		rpcClient.Shutdown()
		rpcClient.WaitForShutdown()
	}()
	rpc := rpcclient2.NewObservedClient(rpcClient, metrics.NewRPCClient(cfg.Coin, cfg.Network))

	results := cache.New(cfg.CacheStale, nil)
	source := bitcoin.NewDataSource(rpc, results, cfg.RPCRateLimit, metrics.NewResultCache(cfg.Coin, cfg.Network), logger.Named("data_source"))

	builder, err := relations.NewBuilder(
		repo,
		source,
		bitcoin.NewTransactionMapper(decoder, cfg.Coin, cfg.Network),
		metrics.NewRelations(cfg.Coin, cfg.Network),
		cfg.Coin,
		cfg.Network,
		genesisTxID,
		logger,
	)
	if err != nil {
		return fmt.Errorf("init relations builder: %w", err)
	}

	blockSignal, err := startBlockSignal(ctx, cfg.ZMQAddr, logger)
	if err != nil {
		return fmt.Errorf("init block signal: %w", err)
	}

	driver, err := pipeline.NewDriver(
		builder,
		repo,
		source,
		metrics.NewStageDriver(cfg.Coin, cfg.Network),
		cfg.IdleSleep,
		cfg.Backoff,
		func(block model.Block) {
			source.Evict(block.Height, block.TxIDs...)
		},
		blockSignal,
		logger,
	)
	if err != nil {
		return fmt.Errorf("init stage driver: %w", err)
	}

	handler := transport.NewExplorerHandler([]transport.StageHealth{driver}, repo, cfg.Coin, cfg.Network, logger.Named("health"))
	if err := startAdminServers(ctx, cfg.GRPCAddr, cfg.RestAddr, handler, logger); err != nil {
		return err
	}

	return driver.Run(ctx)
}

func startAdminServers(ctx context.Context, grpcAddr, restAddr string, handler blockinsight7000v1.ExplorerServiceServer, logger *zap.Logger) error {
	chain := []grpc.UnaryServerInterceptor{
		grpcRecovery.UnaryServerInterceptor(),
		grpcCtxTags.UnaryServerInterceptor(),
		grpcPrometheus.UnaryServerInterceptor,
		grpcZap.UnaryServerInterceptor(logger),
	}
	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(grpcMiddleware.ChainUnaryServer(chain...)),
	)
	grpcPrometheus.EnableHandlingTimeHistogram()
	grpcPrometheus.Register(grpcServer)

	blockinsight7000v1.RegisterExplorerServiceServer(grpcServer, handler)

	socket, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		return fmt.Errorf("listen admin grpc: %w", err)
	}
	go func() {
		logger.Info("starting admin gRPC server", zap.String("addr", grpcAddr))
		if serveErr := grpcServer.Serve(socket); serveErr != nil {
			logger.Error("admin gRPC server failed", zap.Error(serveErr))
		}
	}()
	go func() {
		<-ctx.Done()
		logger.Info("shutting down admin gRPC server")
		grpcServer.GracefulStop()
	}()

	gw := gwruntime.NewServeMux()
	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if err := blockinsight7000v1.RegisterExplorerServiceHandlerFromEndpoint(ctx, gw, grpcAddr, opts); err != nil {
		return fmt.Errorf("register explorer gateway: %w", err)
	}

	srv := &http.Server{
		Addr:              restAddr,
		Handler:           cors.Default().Handler(gw),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		logger.Info("starting admin REST server", zap.String("addr", restAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("admin REST server failed", zap.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown admin REST server", zap.Error(err))
		}
	}()
	return nil
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}

func newRPCClient(rawURL, user, password string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	return rpcclient.New(&rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}, nil)
}
