package classifier

import (
	"context"
	"fmt"
	"math/big"

	"go.uber.org/zap"

	"github.com/feral-file/ff-token-prober/internal/domain"
	"github.com/feral-file/ff-token-prober/internal/logger"
	"github.com/feral-file/ff-token-prober/internal/providers/ethereum"
)

// Classifier determines which token surface a contract actually implements
//
//go:generate mockgen -source=classifier.go -destination=../mocks/classifier.go -package=mocks -mock_names=Classifier=MockClassifier
type Classifier interface {
	// Classify validates the address, confirms a contract is deployed there and probes its surface.
	// Only ErrInvalidAddress, ErrContractNotFound and code lookup failures are returned;
	// every probing failure degrades into the descriptor.
	Classify(ctx context.Context, address string) (*domain.ContractDescriptor, error)
}

// standardProbe is one capability check of the classification chain
type standardProbe struct {
	standard domain.Standard
	method   string
	call     func(ctx context.Context, client ethereum.Client, address string, tokenID *big.Int) error
}

// standardProbes are tried in order with token id 1, the first success decides the standard
var standardProbes = []standardProbe{
	{
		standard: domain.StandardERC721,
		method:   ethereum.MethodTokenURI,
		call: func(ctx context.Context, client ethereum.Client, address string, tokenID *big.Int) error {
			_, err := client.ERC721TokenURI(ctx, address, tokenID)
			return err
		},
	},
	{
		standard: domain.StandardERC721,
		method:   ethereum.MethodOwnerOf,
		call: func(ctx context.Context, client ethereum.Client, address string, tokenID *big.Int) error {
			_, err := client.ERC721OwnerOf(ctx, address, tokenID)
			return err
		},
	},
	{
		standard: domain.StandardERC1155,
		method:   ethereum.MethodURI,
		call: func(ctx context.Context, client ethereum.Client, address string, tokenID *big.Int) error {
			_, err := client.ERC1155URI(ctx, address, tokenID)
			return err
		},
	},
}

type classifier struct {
	client ethereum.Client
}

// New creates a classifier backed by the given gateway
func New(client ethereum.Client) Classifier {
	return &classifier{client: client}
}

func (c *classifier) Classify(ctx context.Context, address string) (*domain.ContractDescriptor, error) {
	if !c.client.IsValidAddress(address) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidAddress, address)
	}

	code, err := c.client.GetCode(ctx, address)
	if err != nil {
		return nil, err
	}
	if len(code) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrContractNotFound, address)
	}

	address = domain.NormalizeAddress(address)
	ctx = logger.WithFields(ctx, zap.String("contract", address))

	descriptor := &domain.ContractDescriptor{
		Address:  address,
		Standard: domain.StandardUnknown,
	}

	descriptor.Name = optional(ctx, ethereum.MethodName, func() (string, error) {
		return c.client.Name(ctx, address)
	})
	descriptor.Symbol = optional(ctx, ethereum.MethodSymbol, func() (string, error) {
		return c.client.Symbol(ctx, address)
	})
	if supply := optional(ctx, ethereum.MethodTotalSupply, func() (*big.Int, error) {
		return c.client.TotalSupply(ctx, address)
	}); supply != nil {
		descriptor.TotalSupply = *supply
	}
	if supply := optional(ctx, ethereum.MethodMaxSupply, func() (*big.Int, error) {
		return c.client.MaxSupply(ctx, address)
	}); supply != nil {
		descriptor.MaxSupply = *supply
	}

	for _, probe := range standardProbes {
		err := probe.call(ctx, c.client, address, big.NewInt(1))
		if err == nil {
			descriptor.Standard = probe.standard
			logger.InfoCtx(ctx, "Contract classified",
				zap.String("standard", string(probe.standard)),
				zap.String("method", probe.method))
			return descriptor, nil
		}
		logger.DebugCtx(ctx, "Classification probe failed",
			zap.String("method", probe.method),
			zap.Error(err))
	}

	descriptor.Uncertain = true
	logger.WarnCtx(ctx, "Could not determine token standard, defaulting",
		zap.Error(domain.ErrClassificationUncertain),
		zap.String("effective_standard", string(descriptor.EffectiveStandard())))

	return descriptor, nil
}

// optional runs an accessor whose failure only means the field is absent
func optional[T any](ctx context.Context, field string, fn func() (T, error)) *T {
	value, err := fn()
	if err != nil {
		logger.DebugCtx(ctx, "Optional contract field unavailable",
			zap.String("field", field),
			zap.Error(err))
		return nil
	}
	return &value
}
