package domain

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gowebpki/jcs"
)

// Chain represents the blockchain network identifier using CAIP-2 format
type Chain string

const (
	ChainEthereumMainnet Chain = "eip155:1"
	ChainEthereumSepolia Chain = "eip155:11155111"
	ChainBaseMainnet     Chain = "eip155:8453"
	ChainPolygonMainnet  Chain = "eip155:137"
)

// IsValidChain checks if a chain is valid
func IsValidChain(chain Chain) bool {
	return chain == ChainEthereumMainnet ||
		chain == ChainEthereumSepolia ||
		chain == ChainBaseMainnet ||
		chain == ChainPolygonMainnet
}

// Standard represents the token standard a contract was classified as
type Standard string

const (
	StandardERC721  Standard = "erc721"
	StandardERC1155 Standard = "erc1155"
	StandardUnknown Standard = "unknown"
)

// ContractDescriptor is the one-shot classification of a contract.
// It is built once per session and never re-evaluated.
type ContractDescriptor struct {
	Address     string   `json:"address"`
	Standard    Standard `json:"standard"`
	Name        *string  `json:"name,omitempty"`
	Symbol      *string  `json:"symbol,omitempty"`
	TotalSupply *big.Int `json:"total_supply,omitempty"`
	MaxSupply   *big.Int `json:"max_supply,omitempty"`
	// Uncertain is set when no probe succeeded and the standard fell back to the default
	Uncertain bool `json:"uncertain"`
}

// EffectiveStandard returns the standard used for subsequent calls.
// Unknown contracts are treated as ERC721.
func (d *ContractDescriptor) EffectiveStandard() Standard {
	if d.Standard == StandardUnknown {
		return StandardERC721
	}
	return d.Standard
}

// ProbeResult is the outcome of a single existence check
type ProbeResult struct {
	TokenID *big.Int `json:"token_id"`
	Minted  bool     `json:"minted"`
	URI     *string  `json:"uri,omitempty"`
}

// MintedToken is a token found during discovery together with its metadata URI
type MintedToken struct {
	TokenID *big.Int `json:"token_id"`
	URI     string   `json:"uri"`
}

// DiscoveryResult is the partial inventory built by one discovery pass
type DiscoveryResult struct {
	MintedTokens   []MintedToken `json:"minted_tokens"`
	UnmintedTokens []*big.Int    `json:"unminted_tokens"`
	TotalChecked   int           `json:"total_checked"`
	BatchesScanned int           `json:"batches_scanned"`
}

// UnmintedCandidate returns the free token id found by the sweep, or nil if none was found
func (r *DiscoveryResult) UnmintedCandidate() *big.Int {
	if len(r.UnmintedTokens) == 0 {
		return nil
	}
	return r.UnmintedTokens[0]
}

// MetadataDocument is a resolved token metadata document.
// Parsed is nil when Raw is not valid JSON.
type MetadataDocument struct {
	URI      string      `json:"uri"`
	Scheme   string      `json:"scheme"`
	Source   string      `json:"source"`
	Raw      string      `json:"raw"`
	Parsed   interface{} `json:"parsed"`
	MimeType string      `json:"mime_type,omitempty"`
}

// IsStructured reports whether the document was parsed as JSON
func (m *MetadataDocument) IsStructured() bool {
	return m.Parsed != nil
}

// CanonicalHash returns the SHA-256 of the JCS canonical form of the parsed document.
// JCS writes numbers as float64, so a document holding a number that float64
// cannot represent exactly is hashed from its raw bytes instead.
func (m *MetadataDocument) CanonicalHash() ([]byte, error) {
	if m.Parsed == nil || !float64Exact(m.Parsed) {
		hash := sha256.Sum256([]byte(m.Raw))
		return hash[:], nil
	}

	documentJSON, err := json.Marshal(m.Parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}

	canonicalized, err := jcs.Transform(documentJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize metadata: %w", err)
	}
	hash := sha256.Sum256(canonicalized)
	return hash[:], nil
}

// float64Exact reports whether every json.Number in v converts to float64 without loss
func float64Exact(v interface{}) bool {
	switch t := v.(type) {
	case map[string]interface{}:
		for _, e := range t {
			if !float64Exact(e) {
				return false
			}
		}
	case []interface{}:
		for _, e := range t {
			if !float64Exact(e) {
				return false
			}
		}
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return false
		}
		if f == 0 {
			mantissa, _, _ := strings.Cut(strings.ToLower(t.String()), "e")
			return strings.Trim(mantissa, "-0.") == ""
		}
		exact, ok := new(big.Rat).SetString(t.String())
		if !ok {
			return false
		}
		return exact.Cmp(new(big.Rat).SetFloat64(f)) == 0
	}
	return true
}

// ParseTokenID parses a decimal or 0x-prefixed hex token identifier
func ParseTokenID(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidTokenID)
	}

	base := 10
	digits := s
	if after, ok := strings.CutPrefix(strings.ToLower(s), "0x"); ok {
		base = 16
		digits = after
	}

	id, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTokenID, s)
	}
	if id.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative value %s", ErrInvalidTokenID, s)
	}

	return id, nil
}

// TokenIDHex returns the id as 64 lowercase hex characters, the ERC1155 {id} substitution format
func TokenIDHex(id *big.Int) string {
	return fmt.Sprintf("%064x", id)
}

// NormalizeAddress normalizes an address to its checksummed form
func NormalizeAddress(address string) string {
	if strings.HasPrefix(address, "0x") {
		return common.HexToAddress(address).Hex()
	}
	return address
}
