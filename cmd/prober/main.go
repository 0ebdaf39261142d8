package main

import (
	"context"
	"flag"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/feral-file/ff-token-prober/internal/adapter"
	"github.com/feral-file/ff-token-prober/internal/api/rest/dto"
	"github.com/feral-file/ff-token-prober/internal/classifier"
	"github.com/feral-file/ff-token-prober/internal/config"
	"github.com/feral-file/ff-token-prober/internal/discovery"
	"github.com/feral-file/ff-token-prober/internal/domain"
	"github.com/feral-file/ff-token-prober/internal/logger"
	"github.com/feral-file/ff-token-prober/internal/metadata"
	"github.com/feral-file/ff-token-prober/internal/prober"
	"github.com/feral-file/ff-token-prober/internal/providers/ethereum"
	"github.com/feral-file/ff-token-prober/internal/ratelimit"
	"github.com/feral-file/ff-token-prober/internal/session"
)

var (
	configFile    = flag.String("config", "", "Path to configuration file")
	envPath       = flag.String("env", "config/", "Path to environment files")
	address       = flag.String("address", "", "Contract address to probe")
	token         = flag.String("token", "", "Token id to inspect, decimal or 0x hex (defaults to the first minted token found)")
	skipDiscovery = flag.Bool("skip-discovery", false, "Skip token discovery")
)

// report is the single JSON document written to stdout
type report struct {
	Contract      dto.ContractResponse   `json:"contract"`
	Discovery     *dto.DiscoveryResponse `json:"discovery,omitempty"`
	Token         *dto.TokenResponse     `json:"token,omitempty"`
	Metadata      *dto.MetadataResponse  `json:"metadata,omitempty"`
	MetadataError string                 `json:"metadata_error,omitempty"`
}

func main() {
	flag.Parse()

	config.ChdirRepoRoot()
	cfg, err := config.LoadProberConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "prober",
			"chain":   string(cfg.Ethereum.ChainID),
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)

	if *address == "" {
		logger.FatalCtx(ctx, "Contract address is required, use -address")
	}
	if cfg.Ethereum.RPCURL == "" {
		logger.FatalCtx(ctx, "ethereum.rpc_url is not configured")
	}

	var tokenID *big.Int
	if *token != "" {
		tokenID, err = domain.ParseTokenID(*token)
		if err != nil {
			logger.FatalCtx(ctx, "Invalid token id", zap.Error(err))
		}
	}

	// Initialize adapters
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	httpClient := adapter.NewHTTPClient(cfg.Metadata.MaxBodySize)

	ethClient, err := adapter.NewEthClientDialer().Dial(ctx, cfg.Ethereum.RPCURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to dial Ethereum RPC", zap.Error(err))
	}
	defer ethClient.Close()
	ethereumClient := ethereum.NewClient(cfg.Ethereum.ChainID, ratelimit.NewEthClient(ethClient, cfg.RateLimit))

	tokenProber := prober.New(ethereumClient)
	service := session.NewService(
		classifier.New(ethereumClient),
		discovery.New(ethereumClient, tokenProber, clock, cfg.Discovery),
		tokenProber,
		metadata.NewResolver(httpClient, jsonAdapter, cfg.Metadata),
		clock,
	)

	out, err := run(ctx, service, *address, tokenID, *skipDiscovery)
	if err != nil {
		logger.FatalCtx(ctx, "Probe failed", zap.Error(err), zap.String("address", *address))
	}

	data, err := jsonAdapter.Marshal(out)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to encode report", zap.Error(err))
	}
	_, _ = os.Stdout.Write(append(data, '\n'))
}

// run opens a session, discovers tokens and inspects one of them.
// Metadata failures are reported in the output rather than aborting the run.
func run(ctx context.Context, service session.Service, address string, tokenID *big.Int, skipDiscovery bool) (*report, error) {
	s, err := service.Open(ctx, address)
	if err != nil {
		return nil, err
	}
	ctx = s.Context(ctx)

	out := &report{Contract: dto.NewContractResponse(s)}

	if !skipDiscovery {
		result, err := service.Discover(ctx, s)
		if err != nil {
			return nil, fmt.Errorf("discovery failed: %w", err)
		}
		discovered := dto.NewDiscoveryResponse(s, result)
		out.Discovery = &discovered

		if tokenID == nil && len(result.MintedTokens) > 0 {
			tokenID = result.MintedTokens[0].TokenID
		}
	}

	if tokenID == nil {
		logger.InfoCtx(ctx, "No token selected, skipping token inspection")
		return out, nil
	}

	probe, err := service.CheckToken(ctx, s, tokenID)
	if err != nil {
		return nil, err
	}
	checked := dto.NewTokenResponse(s, probe)
	out.Token = &checked

	if !probe.Minted {
		logger.InfoCtx(ctx, "Selected token is not minted", zap.String("tokenID", tokenID.String()))
		return out, nil
	}

	doc, err := service.TokenMetadata(ctx, s, tokenID)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to resolve token metadata", zap.Error(err), zap.String("tokenID", tokenID.String()))
		out.MetadataError = err.Error()
		return out, nil
	}

	out.Metadata, err = dto.NewMetadataResponse(doc)
	if err != nil {
		return nil, err
	}

	return out, nil
}
