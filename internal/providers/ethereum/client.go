package ethereum

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/ff-token-prober/internal/adapter"
	"github.com/feral-file/ff-token-prober/internal/domain"
	"github.com/feral-file/ff-token-prober/internal/logger"
)

// Client is the read-only remote call gateway to a connected EVM chain
//
//go:generate mockgen -source=client.go -destination=../../mocks/ethereum_client.go -package=mocks -mock_names=Client=MockEthereumClient
type Client interface {
	// IsValidAddress reports whether address is a well-formed hex address
	IsValidAddress(address string) bool

	// GetCode returns the bytecode deployed at address on the latest block
	GetCode(ctx context.Context, address string) ([]byte, error)

	// GetCurrentBlock returns the latest block number
	GetCurrentBlock(ctx context.Context) (uint64, error)

	// Invoke calls a read-only method of the given surface and returns the unpacked outputs
	Invoke(ctx context.Context, contractAddress string, surface Surface, method string, args ...interface{}) ([]interface{}, error)

	// ERC721TokenURI fetches the tokenURI from an ERC721 contract
	ERC721TokenURI(ctx context.Context, contractAddress string, tokenID *big.Int) (string, error)

	// ERC721OwnerOf fetches the current owner of an ERC721 token
	ERC721OwnerOf(ctx context.Context, contractAddress string, tokenID *big.Int) (string, error)

	// ERC721TokenByIndex fetches the token id at index from an enumerable ERC721 contract
	ERC721TokenByIndex(ctx context.Context, contractAddress string, index *big.Int) (*big.Int, error)

	// ERC1155URI fetches the uri from an ERC1155 contract
	ERC1155URI(ctx context.Context, contractAddress string, tokenID *big.Int) (string, error)

	// ERC1155BalanceOf fetches the balance of a token id held by ownerAddress
	ERC1155BalanceOf(ctx context.Context, contractAddress, ownerAddress string, tokenID *big.Int) (*big.Int, error)

	// Name fetches the contract name
	Name(ctx context.Context, contractAddress string) (string, error)

	// Symbol fetches the contract symbol
	Symbol(ctx context.Context, contractAddress string) (string, error)

	// TotalSupply fetches the total supply
	TotalSupply(ctx context.Context, contractAddress string) (*big.Int, error)

	// MaxSupply fetches the maximum supply, trying maxSupply() then MAX_SUPPLY()
	MaxSupply(ctx context.Context, contractAddress string) (*big.Int, error)

	// Close closes the connection
	Close()
}

type ethereumClient struct {
	chainID domain.Chain
	client  adapter.EthClient
}

func NewClient(chainID domain.Chain, client adapter.EthClient) Client {
	return &ethereumClient{chainID: chainID, client: client}
}

func (c *ethereumClient) IsValidAddress(address string) bool {
	return common.IsHexAddress(address)
}

func (c *ethereumClient) GetCode(ctx context.Context, address string) ([]byte, error) {
	code, err := c.client.CodeAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get code: %w", err)
	}
	return code, nil
}

func (c *ethereumClient) GetCurrentBlock(ctx context.Context) (uint64, error) {
	number, err := c.client.BlockNumber(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get block number: %w", err)
	}
	return number, nil
}

func (c *ethereumClient) Invoke(ctx context.Context, contractAddress string, surface Surface, method string, args ...interface{}) ([]interface{}, error) {
	contractABI, _, err := lookupMethod(surface, method)
	if err != nil {
		return nil, err
	}

	data, err := contractABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method, err)
	}

	contractAddr := common.HexToAddress(contractAddress)
	result, err := c.client.CallContract(ctx, ethereum.CallMsg{
		To:   &contractAddr,
		Data: data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", method, err)
	}

	// Non-implementing contracts without a fallback return no data instead of reverting
	if len(result) == 0 {
		return nil, fmt.Errorf("%s: %w", method, domain.ErrEmptyResult)
	}

	outputs, err := contractABI.Unpack(method, result)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s: %w", method, err)
	}

	logger.DebugCtx(ctx, "Contract call succeeded",
		zap.String("chain", string(c.chainID)),
		zap.String("contract", contractAddress),
		zap.String("method", method))

	return outputs, nil
}

// invokeOne calls a single-output method and converts the output to T
func invokeOne[T any](ctx context.Context, c *ethereumClient, contractAddress string, surface Surface, method string, args ...interface{}) (T, error) {
	var zero T
	outputs, err := c.Invoke(ctx, contractAddress, surface, method, args...)
	if err != nil {
		return zero, err
	}
	if len(outputs) != 1 {
		return zero, fmt.Errorf("%s: expected 1 output, got %d", method, len(outputs))
	}
	value, ok := outputs[0].(T)
	if !ok {
		return zero, fmt.Errorf("%s: unexpected output type %T", method, outputs[0])
	}
	return value, nil
}

// ERC721TokenURI fetches the tokenURI from an ERC721 contract
func (c *ethereumClient) ERC721TokenURI(ctx context.Context, contractAddress string, tokenID *big.Int) (string, error) {
	return invokeOne[string](ctx, c, contractAddress, SurfaceERC721, MethodTokenURI, tokenID)
}

// ERC721OwnerOf fetches the current owner of an ERC721 token
func (c *ethereumClient) ERC721OwnerOf(ctx context.Context, contractAddress string, tokenID *big.Int) (string, error) {
	owner, err := invokeOne[common.Address](ctx, c, contractAddress, SurfaceERC721, MethodOwnerOf, tokenID)
	if err != nil {
		return "", err
	}
	return owner.Hex(), nil
}

func (c *ethereumClient) ERC721TokenByIndex(ctx context.Context, contractAddress string, index *big.Int) (*big.Int, error) {
	return invokeOne[*big.Int](ctx, c, contractAddress, SurfaceERC721, MethodTokenByIndex, index)
}

// ERC1155URI fetches the uri from an ERC1155 contract
func (c *ethereumClient) ERC1155URI(ctx context.Context, contractAddress string, tokenID *big.Int) (string, error) {
	return invokeOne[string](ctx, c, contractAddress, SurfaceERC1155, MethodURI, tokenID)
}

// ERC1155BalanceOf fetches the balance of a specific token ID for an owner from an ERC1155 contract
func (c *ethereumClient) ERC1155BalanceOf(ctx context.Context, contractAddress, ownerAddress string, tokenID *big.Int) (*big.Int, error) {
	return invokeOne[*big.Int](ctx, c, contractAddress, SurfaceERC1155, MethodBalanceOf, common.HexToAddress(ownerAddress), tokenID)
}

func (c *ethereumClient) Name(ctx context.Context, contractAddress string) (string, error) {
	return invokeOne[string](ctx, c, contractAddress, SurfaceERC721, MethodName)
}

func (c *ethereumClient) Symbol(ctx context.Context, contractAddress string) (string, error) {
	return invokeOne[string](ctx, c, contractAddress, SurfaceERC721, MethodSymbol)
}

func (c *ethereumClient) TotalSupply(ctx context.Context, contractAddress string) (*big.Int, error) {
	return invokeOne[*big.Int](ctx, c, contractAddress, SurfaceERC721, MethodTotalSupply)
}

func (c *ethereumClient) MaxSupply(ctx context.Context, contractAddress string) (*big.Int, error) {
	supply, err := invokeOne[*big.Int](ctx, c, contractAddress, SurfaceERC721, MethodMaxSupply)
	if err == nil {
		return supply, nil
	}

	supply, altErr := invokeOne[*big.Int](ctx, c, contractAddress, SurfaceERC721, MethodMaxSupplyAlt)
	if altErr != nil {
		return nil, fmt.Errorf("max supply unavailable: %w, %w", err, altErr)
	}
	return supply, nil
}

// Close closes the connection
func (c *ethereumClient) Close() {
	c.client.Close()
}
