package prober_test

import (
	"context"
	"errors"
	"math/big"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-token-prober/internal/domain"
	"github.com/feral-file/ff-token-prober/internal/logger"
	"github.com/feral-file/ff-token-prober/internal/mocks"
	"github.com/feral-file/ff-token-prober/internal/prober"
)

const contractAddress = "0xABcdEFABcdEFabcdEfAbCdefabcdeFABcDEFabCD"

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func descriptorFor(standard domain.Standard) *domain.ContractDescriptor {
	return &domain.ContractDescriptor{Address: contractAddress, Standard: standard}
}

func TestIsMinted(t *testing.T) {
	tests := []struct {
		name     string
		standard domain.Standard
		setup    func(client *mocks.MockEthereumClient)
		expected bool
	}{
		{
			name:     "erc721 owned token",
			standard: domain.StandardERC721,
			setup: func(client *mocks.MockEthereumClient) {
				client.EXPECT().ERC721OwnerOf(gomock.Any(), contractAddress, big.NewInt(3)).
					Return("0x00000000000000000000000000000000000000aA", nil)
			},
			expected: true,
		},
		{
			name:     "erc721 zero owner",
			standard: domain.StandardERC721,
			setup: func(client *mocks.MockEthereumClient) {
				client.EXPECT().ERC721OwnerOf(gomock.Any(), contractAddress, big.NewInt(3)).
					Return(domain.ETHEREUM_ZERO_ADDRESS, nil)
			},
			expected: false,
		},
		{
			name:     "erc721 nonexistent token revert",
			standard: domain.StandardERC721,
			setup: func(client *mocks.MockEthereumClient) {
				client.EXPECT().ERC721OwnerOf(gomock.Any(), contractAddress, big.NewInt(3)).
					Return("", errors.New("execution reverted: ERC721: invalid token ID"))
			},
			expected: false,
		},
		{
			name:     "erc1155 positive null address balance",
			standard: domain.StandardERC1155,
			setup: func(client *mocks.MockEthereumClient) {
				client.EXPECT().ERC1155BalanceOf(gomock.Any(), contractAddress, domain.ETHEREUM_ZERO_ADDRESS, big.NewInt(3)).
					Return(big.NewInt(2), nil)
			},
			expected: true,
		},
		{
			name:     "erc1155 zero balance",
			standard: domain.StandardERC1155,
			setup: func(client *mocks.MockEthereumClient) {
				client.EXPECT().ERC1155BalanceOf(gomock.Any(), contractAddress, domain.ETHEREUM_ZERO_ADDRESS, big.NewInt(3)).
					Return(big.NewInt(0), nil)
			},
			expected: false,
		},
		{
			name:     "erc1155 call failure",
			standard: domain.StandardERC1155,
			setup: func(client *mocks.MockEthereumClient) {
				client.EXPECT().ERC1155BalanceOf(gomock.Any(), contractAddress, domain.ETHEREUM_ZERO_ADDRESS, big.NewInt(3)).
					Return(nil, errors.New("timeout"))
			},
			expected: false,
		},
		{
			name:     "unknown standard issues no call",
			standard: domain.StandardUnknown,
			setup:    func(client *mocks.MockEthereumClient) {},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mocks.NewMockEthereumClient(ctrl)
			tt.setup(client)

			minted := prober.New(client).IsMinted(context.Background(), descriptorFor(tt.standard), big.NewInt(3))
			assert.Equal(t, tt.expected, minted)
		})
	}
}

func TestIsMinted_StableRecheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockEthereumClient(ctrl)

	client.EXPECT().ERC721OwnerOf(gomock.Any(), contractAddress, big.NewInt(5)).
		Return("0x00000000000000000000000000000000000000aA", nil).
		Times(2)

	p := prober.New(client)
	descriptor := descriptorFor(domain.StandardERC721)
	assert.True(t, p.IsMinted(context.Background(), descriptor, big.NewInt(5)))
	assert.True(t, p.IsMinted(context.Background(), descriptor, big.NewInt(5)))
}

func TestProbe(t *testing.T) {
	t.Run("minted erc721 token carries its uri", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockEthereumClient(ctrl)

		client.EXPECT().ERC721OwnerOf(gomock.Any(), contractAddress, big.NewInt(1)).
			Return("0x00000000000000000000000000000000000000aA", nil)
		client.EXPECT().ERC721TokenURI(gomock.Any(), contractAddress, big.NewInt(1)).
			Return("ipfs://bafy/1", nil)

		result := prober.New(client).Probe(context.Background(), descriptorFor(domain.StandardERC721), big.NewInt(1))
		assert.True(t, result.Minted)
		require.NotNil(t, result.URI)
		assert.Equal(t, "ipfs://bafy/1", *result.URI)
		assert.Equal(t, int64(1), result.TokenID.Int64())
	})

	t.Run("minted token without readable uri", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockEthereumClient(ctrl)

		client.EXPECT().ERC1155BalanceOf(gomock.Any(), contractAddress, domain.ETHEREUM_ZERO_ADDRESS, big.NewInt(9)).
			Return(big.NewInt(1), nil)
		client.EXPECT().ERC1155URI(gomock.Any(), contractAddress, big.NewInt(9)).
			Return("", errors.New("execution reverted"))

		result := prober.New(client).Probe(context.Background(), descriptorFor(domain.StandardERC1155), big.NewInt(9))
		assert.True(t, result.Minted)
		assert.Nil(t, result.URI)
	})

	t.Run("unminted token skips uri lookup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockEthereumClient(ctrl)

		client.EXPECT().ERC721OwnerOf(gomock.Any(), contractAddress, big.NewInt(2)).
			Return("", errors.New("execution reverted"))

		result := prober.New(client).Probe(context.Background(), descriptorFor(domain.StandardERC721), big.NewInt(2))
		assert.False(t, result.Minted)
		assert.Nil(t, result.URI)
	})
}

func TestTokenURI_UnknownUsesSingleOwnerAccessor(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockEthereumClient(ctrl)

	client.EXPECT().ERC721TokenURI(gomock.Any(), contractAddress, big.NewInt(4)).Return("https://example.com/4", nil)

	uri, err := prober.New(client).TokenURI(context.Background(), descriptorFor(domain.StandardUnknown), big.NewInt(4))
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/4", uri)
}
