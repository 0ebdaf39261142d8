package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidChain(t *testing.T) {
	tests := []struct {
		name     string
		chain    Chain
		expected bool
	}{
		{
			name:     "valid ethereum mainnet",
			chain:    ChainEthereumMainnet,
			expected: true,
		},
		{
			name:     "valid ethereum sepolia",
			chain:    ChainEthereumSepolia,
			expected: true,
		},
		{
			name:     "valid base mainnet",
			chain:    ChainBaseMainnet,
			expected: true,
		},
		{
			name:     "invalid empty chain",
			chain:    Chain(""),
			expected: false,
		},
		{
			name:     "invalid tezos chain",
			chain:    Chain("tezos:mainnet"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsValidChain(tt.chain))
		})
	}
}

func TestParseTokenID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "decimal", input: "1", expected: "1"},
		{name: "hex literal", input: "0x1", expected: "1"},
		{name: "padded hex literal", input: "0x0001", expected: "1"},
		{name: "uppercase hex prefix", input: "0X10", expected: "16"},
		{name: "surrounding whitespace", input: "  42 ", expected: "42"},
		{
			name:     "beyond 64 bits",
			input:    "115792089237316195423570985008687907853269984665640564039457584007913129639935",
			expected: "115792089237316195423570985008687907853269984665640564039457584007913129639935",
		},
		{name: "empty", input: "", wantErr: true},
		{name: "negative", input: "-1", wantErr: true},
		{name: "float", input: "1.5", wantErr: true},
		{name: "garbage hex", input: "0xzz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseTokenID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidTokenID))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, id.String())
		})
	}
}

func TestTokenIDHex(t *testing.T) {
	got := TokenIDHex(big.NewInt(314592))
	assert.Len(t, got, 64)
	assert.Equal(t, strings.Repeat("0", 59)+"4cce0", got)
}

func TestContractDescriptor_EffectiveStandard(t *testing.T) {
	assert.Equal(t, StandardERC721, (&ContractDescriptor{Standard: StandardUnknown}).EffectiveStandard())
	assert.Equal(t, StandardERC721, (&ContractDescriptor{Standard: StandardERC721}).EffectiveStandard())
	assert.Equal(t, StandardERC1155, (&ContractDescriptor{Standard: StandardERC1155}).EffectiveStandard())
}

func TestDiscoveryResult_UnmintedCandidate(t *testing.T) {
	empty := &DiscoveryResult{}
	assert.Nil(t, empty.UnmintedCandidate())

	found := &DiscoveryResult{UnmintedTokens: []*big.Int{big.NewInt(16)}}
	assert.Equal(t, int64(16), found.UnmintedCandidate().Int64())
}

func TestMetadataDocument_CanonicalHash(t *testing.T) {
	a := &MetadataDocument{Parsed: map[string]interface{}{"name": "Foo", "image": "ipfs://x"}}
	b := &MetadataDocument{Parsed: map[string]interface{}{"image": "ipfs://x", "name": "Foo"}}

	hashA, err := a.CanonicalHash()
	require.NoError(t, err)
	hashB, err := b.CanonicalHash()
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(hashA), hex.EncodeToString(hashB))
	assert.True(t, a.IsStructured())

	raw := &MetadataDocument{Raw: "not json"}
	hashRaw, err := raw.CanonicalHash()
	require.NoError(t, err)
	assert.Len(t, hashRaw, 32)
	assert.False(t, raw.IsStructured())
}

func TestMetadataDocument_CanonicalHashNumbers(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		parsed    interface{}
		hashesRaw bool
	}{
		{
			name:   "small integers are canonicalized",
			raw:    `{"edition": 1, "name":"Foo"}`,
			parsed: map[string]interface{}{"edition": json.Number("1"), "name": "Foo"},
		},
		{
			name:   "exact decimal is canonicalized",
			raw:    `[1.50]`,
			parsed: []interface{}{json.Number("1.50")},
		},
		{
			name:   "negative zero is canonicalized",
			raw:    `{"z":-0.0e5}`,
			parsed: map[string]interface{}{"z": json.Number("-0.0e5")},
		},
		{
			name:      "integer wider than float64 mantissa",
			raw:       `{"token_id":12345678901234567891}`,
			parsed:    map[string]interface{}{"token_id": json.Number("12345678901234567891")},
			hashesRaw: true,
		},
		{
			name:      "nested wide integer",
			raw:       `{"attributes":[{"value":9007199254740993}]}`,
			parsed:    map[string]interface{}{"attributes": []interface{}{map[string]interface{}{"value": json.Number("9007199254740993")}}},
			hashesRaw: true,
		},
		{
			name:      "underflowing number",
			raw:       `{"v":1e-400}`,
			parsed:    map[string]interface{}{"v": json.Number("1e-400")},
			hashesRaw: true,
		},
		{
			name:      "overflowing number",
			raw:       `{"v":1e400}`,
			parsed:    map[string]interface{}{"v": json.Number("1e400")},
			hashesRaw: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &MetadataDocument{Raw: tt.raw, Parsed: tt.parsed}
			hash, err := doc.CanonicalHash()
			require.NoError(t, err)
			require.Len(t, hash, 32)

			rawHash := sha256.Sum256([]byte(tt.raw))
			if tt.hashesRaw {
				assert.Equal(t, rawHash[:], hash)
			} else {
				assert.NotEqual(t, rawHash[:], hash)
			}
		})
	}
}

func TestMetadataDocument_CanonicalHashIgnoresNumberSpelling(t *testing.T) {
	a := &MetadataDocument{Parsed: map[string]interface{}{"edition": json.Number("1.0")}}
	b := &MetadataDocument{Parsed: map[string]interface{}{"edition": json.Number("1")}}

	hashA, err := a.CanonicalHash()
	require.NoError(t, err)
	hashB, err := b.CanonicalHash()
	require.NoError(t, err)
	assert.Equal(t, hashA, hashB)
}
