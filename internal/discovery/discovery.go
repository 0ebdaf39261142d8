package discovery

import (
	"context"
	"fmt"
	"math/big"
	"slices"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-token-prober/internal/adapter"
	"github.com/feral-file/ff-token-prober/internal/config"
	"github.com/feral-file/ff-token-prober/internal/domain"
	"github.com/feral-file/ff-token-prober/internal/logger"
	"github.com/feral-file/ff-token-prober/internal/prober"
	"github.com/feral-file/ff-token-prober/internal/providers/ethereum"
)

// Engine builds a best-effort inventory of a classified contract: a sample of minted tokens
// and one free token id. It never claims completeness.
//
//go:generate mockgen -source=discovery.go -destination=../mocks/discovery.go -package=mocks -mock_names=Engine=MockDiscoveryEngine
type Engine interface {
	// Discover runs the minted sample and then the unminted sweep.
	// It only fails when ctx is done.
	Discover(ctx context.Context, descriptor *domain.ContractDescriptor) (*domain.DiscoveryResult, error)
}

type engine struct {
	client ethereum.Client
	prober prober.Prober
	clock  adapter.Clock
	config config.DiscoveryConfig
}

func New(client ethereum.Client, prober prober.Prober, clock adapter.Clock, cfg config.DiscoveryConfig) Engine {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 10
	}
	if cfg.MaxChecks <= 0 {
		cfg.MaxChecks = 1000
	}
	return &engine{
		client: client,
		prober: prober,
		clock:  clock,
		config: cfg,
	}
}

func (e *engine) Discover(ctx context.Context, descriptor *domain.ContractDescriptor) (*domain.DiscoveryResult, error) {
	ctx = logger.WithFields(ctx, zap.String("contract", descriptor.Address))
	startTime := e.clock.Now()

	result := &domain.DiscoveryResult{
		MintedTokens:   []domain.MintedToken{},
		UnmintedTokens: []*big.Int{},
	}
	seen := make(map[string]struct{})

	if err := e.sampleMinted(ctx, descriptor, sampleCandidates(startTime.Unix()), seen, result); err != nil {
		return nil, err
	}

	if err := e.sampleEnumerable(ctx, descriptor, seen, result); err != nil {
		return nil, err
	}

	if err := e.sweepUnminted(ctx, descriptor, result); err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Discovery completed",
		zap.Int("minted", len(result.MintedTokens)),
		zap.Int("total_checked", result.TotalChecked),
		zap.Int("batches_scanned", result.BatchesScanned),
		zap.Bool("unminted_found", result.UnmintedCandidate() != nil),
		zap.Duration("duration", e.clock.Since(startTime)),
	)

	return result, nil
}

// sampleMinted resolves the URI of each candidate in order, keeping the ones that answer
func (e *engine) sampleMinted(ctx context.Context, descriptor *domain.ContractDescriptor, candidates []*big.Int, seen map[string]struct{}, result *domain.DiscoveryResult) error {
	for _, tokenID := range candidates {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, ok := seen[tokenID.String()]; ok {
			continue
		}
		seen[tokenID.String()] = struct{}{}

		e.attemptURI(ctx, descriptor, tokenID, result)

		if err := e.sleep(ctx, e.config.Delay); err != nil {
			return err
		}
	}
	return nil
}

// sampleEnumerable walks tokenByIndex on enumerable ERC721 contracts with a known supply
func (e *engine) sampleEnumerable(ctx context.Context, descriptor *domain.ContractDescriptor, seen map[string]struct{}, result *domain.DiscoveryResult) error {
	if e.config.EnumerableSampleSize <= 0 ||
		descriptor.Standard != domain.StandardERC721 ||
		descriptor.TotalSupply == nil ||
		descriptor.TotalSupply.Sign() <= 0 {
		return nil
	}

	count := int64(e.config.EnumerableSampleSize)
	if descriptor.TotalSupply.IsInt64() && descriptor.TotalSupply.Int64() < count {
		count = descriptor.TotalSupply.Int64()
	}

	var candidates []*big.Int
	for i := int64(0); i < count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		tokenID, err := e.client.ERC721TokenByIndex(ctx, descriptor.Address, big.NewInt(i))
		if err != nil {
			// Not enumerable, the first failure ends the walk
			logger.DebugCtx(ctx, "Enumerable sampling stopped",
				zap.Int64("index", i),
				zap.Error(err))
			break
		}
		candidates = append(candidates, tokenID)
	}

	return e.sampleMinted(ctx, descriptor, dedupe(candidates), seen, result)
}

func (e *engine) attemptURI(ctx context.Context, descriptor *domain.ContractDescriptor, tokenID *big.Int, result *domain.DiscoveryResult) {
	result.TotalChecked++

	uri, err := e.prober.TokenURI(ctx, descriptor, tokenID)
	if err != nil {
		if isNonexistent(err) {
			logger.DebugCtx(ctx, "Sample token does not exist",
				zap.String("tokenID", tokenID.String()))
		} else {
			logger.WarnCtx(ctx, "Sample token URI lookup failed",
				zap.String("tokenID", tokenID.String()),
				zap.Error(err))
		}
		return
	}

	result.MintedTokens = append(result.MintedTokens, domain.MintedToken{
		TokenID: tokenID,
		URI:     uri,
	})
}

// sweepUnminted scans consecutive ids in parallel batches until a batch has a free id
func (e *engine) sweepUnminted(ctx context.Context, descriptor *domain.ContractDescriptor, result *domain.DiscoveryResult) error {
	known := make(map[string]struct{}, len(result.MintedTokens))
	for _, token := range result.MintedTokens {
		known[token.TokenID.String()] = struct{}{}
	}

	pool := pond.NewPool(e.config.BatchSize, pond.WithContext(ctx))
	defer pool.StopAndWait()

	start := big.NewInt(e.config.SweepStart)
	for offset := 0; offset < e.config.MaxChecks; offset += e.config.BatchSize {
		width := min(e.config.BatchSize, e.config.MaxChecks-offset)

		ids := make([]*big.Int, width)
		minted := make([]bool, width)
		var probes []func()
		for i := range ids {
			ids[i] = new(big.Int).Add(start, big.NewInt(int64(offset+i)))
			if _, ok := known[ids[i].String()]; ok {
				minted[i] = true
				continue
			}

			probes = append(probes, func() {
				// Each probe writes only its own slot
				minted[i] = e.prober.IsMinted(ctx, descriptor, ids[i])
			})
		}
		if len(probes) > 0 {
			result.TotalChecked += len(probes)
			if err := pool.NewGroup().Submit(probes...).Wait(); err != nil {
				return fmt.Errorf("sweep batch failed: %w", err)
			}
		}
		result.BatchesScanned++

		var unminted []*big.Int
		for i, id := range ids {
			if !minted[i] {
				unminted = append(unminted, id)
			}
		}

		if len(unminted) > 0 {
			slices.SortFunc(unminted, func(a, b *big.Int) int { return a.Cmp(b) })
			candidate := unminted[0]
			result.UnmintedTokens = append(result.UnmintedTokens, candidate)

			logger.InfoCtx(ctx, "Unminted token found",
				zap.String("tokenID", candidate.String()),
				zap.Int("batch", result.BatchesScanned))
			return nil
		}

		if offset+width < e.config.MaxChecks {
			if err := e.sleep(ctx, e.config.Delay); err != nil {
				return err
			}
		}
	}

	logger.InfoCtx(ctx, "No unminted token found within sweep ceiling",
		zap.Int("max_checks", e.config.MaxChecks))

	return nil
}

// sleep waits for d on the engine clock, returning early with ctx's error
func (e *engine) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-e.clock.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
