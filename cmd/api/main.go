package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/feral-file/ff-token-prober/internal/adapter"
	"github.com/feral-file/ff-token-prober/internal/api/server"
	"github.com/feral-file/ff-token-prober/internal/classifier"
	"github.com/feral-file/ff-token-prober/internal/config"
	"github.com/feral-file/ff-token-prober/internal/discovery"
	"github.com/feral-file/ff-token-prober/internal/logger"
	"github.com/feral-file/ff-token-prober/internal/metadata"
	"github.com/feral-file/ff-token-prober/internal/prober"
	"github.com/feral-file/ff-token-prober/internal/providers/ethereum"
	"github.com/feral-file/ff-token-prober/internal/ratelimit"
	"github.com/feral-file/ff-token-prober/internal/session"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "api-server",
			"chain":   string(cfg.Ethereum.ChainID),
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Feral File Token Prober API")

	if cfg.Ethereum.RPCURL == "" {
		logger.FatalCtx(ctx, "ethereum.rpc_url is not configured")
	}

	// Initialize adapters
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	httpClient := adapter.NewHTTPClient(cfg.Metadata.MaxBodySize)

	// The RPC connection is shared read-only by every request
	ethClient, err := adapter.NewEthClientDialer().Dial(ctx, cfg.Ethereum.RPCURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to dial Ethereum RPC", zap.Error(err))
	}
	defer ethClient.Close()
	logger.InfoCtx(ctx, "Connected to Ethereum RPC", zap.String("chain", string(cfg.Ethereum.ChainID)))

	ethereumClient := ethereum.NewClient(cfg.Ethereum.ChainID, ratelimit.NewEthClient(ethClient, cfg.RateLimit))
	tokenProber := prober.New(ethereumClient)
	service := session.NewService(
		classifier.New(ethereumClient),
		discovery.New(ethereumClient, tokenProber, clock, cfg.Discovery),
		tokenProber,
		metadata.NewResolver(httpClient, jsonAdapter, cfg.Metadata),
		clock,
	)

	srv := server.New(server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}, service)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(ctx); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	logger.Info("API server stopped")
}
