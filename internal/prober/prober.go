package prober

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/ff-token-prober/internal/domain"
	"github.com/feral-file/ff-token-prober/internal/logger"
	"github.com/feral-file/ff-token-prober/internal/providers/ethereum"
)

// Prober reports whether a token id has been minted on a classified contract.
// Call failures never surface: an inconclusive probe is reported as unminted.
//
//go:generate mockgen -source=prober.go -destination=../mocks/prober.go -package=mocks -mock_names=Prober=MockProber
type Prober interface {
	// IsMinted reports the existence of a single token id
	IsMinted(ctx context.Context, descriptor *domain.ContractDescriptor, tokenID *big.Int) bool

	// Probe checks existence and, for minted tokens, reads the token URI on a best effort basis
	Probe(ctx context.Context, descriptor *domain.ContractDescriptor, tokenID *big.Int) domain.ProbeResult

	// TokenURI reads the raw metadata URI through the standard's accessor
	TokenURI(ctx context.Context, descriptor *domain.ContractDescriptor, tokenID *big.Int) (string, error)
}

type prober struct {
	client ethereum.Client
}

func New(client ethereum.Client) Prober {
	return &prober{client: client}
}

func (p *prober) IsMinted(ctx context.Context, descriptor *domain.ContractDescriptor, tokenID *big.Int) bool {
	var (
		minted bool
		err    error
	)

	switch descriptor.Standard {
	case domain.StandardERC721:
		minted, err = p.erc721Minted(ctx, descriptor.Address, tokenID)
	case domain.StandardERC1155:
		minted, err = p.erc1155Minted(ctx, descriptor.Address, tokenID)
	default:
		// No call against an unverified interface
		return false
	}

	if err != nil {
		logger.DebugCtx(ctx, "Existence probe inconclusive, treating as unminted",
			zap.Error(domain.ErrProbeInconclusive),
			zap.String("standard", string(descriptor.Standard)),
			zap.String("tokenID", tokenID.String()),
			zap.NamedError("cause", err))
		return false
	}

	return minted
}

func (p *prober) erc721Minted(ctx context.Context, address string, tokenID *big.Int) (bool, error) {
	owner, err := p.client.ERC721OwnerOf(ctx, address, tokenID)
	if err != nil {
		return false, err
	}
	return common.HexToAddress(owner) != (common.Address{}), nil
}

// erc1155Minted uses the null address balance as a proxy for the id having been touched.
// It does not prove current supply for implementations that never credit the null address.
func (p *prober) erc1155Minted(ctx context.Context, address string, tokenID *big.Int) (bool, error) {
	balance, err := p.client.ERC1155BalanceOf(ctx, address, domain.ETHEREUM_ZERO_ADDRESS, tokenID)
	if err != nil {
		return false, err
	}
	return balance != nil && balance.Sign() > 0, nil
}

func (p *prober) Probe(ctx context.Context, descriptor *domain.ContractDescriptor, tokenID *big.Int) domain.ProbeResult {
	result := domain.ProbeResult{
		TokenID: new(big.Int).Set(tokenID),
		Minted:  p.IsMinted(ctx, descriptor, tokenID),
	}
	if !result.Minted {
		return result
	}

	uri, err := p.TokenURI(ctx, descriptor, tokenID)
	if err != nil {
		logger.DebugCtx(ctx, "Token URI unavailable for minted token",
			zap.String("tokenID", tokenID.String()),
			zap.Error(err))
		return result
	}
	result.URI = &uri

	return result
}

func (p *prober) TokenURI(ctx context.Context, descriptor *domain.ContractDescriptor, tokenID *big.Int) (string, error) {
	if descriptor.EffectiveStandard() == domain.StandardERC1155 {
		return p.client.ERC1155URI(ctx, descriptor.Address, tokenID)
	}
	return p.client.ERC721TokenURI(ctx, descriptor.Address, tokenID)
}
