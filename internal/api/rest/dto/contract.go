package dto

import (
	"encoding/hex"
	"math/big"
	"time"

	"github.com/feral-file/ff-token-prober/internal/domain"
	"github.com/feral-file/ff-token-prober/internal/session"
)

// ContractResponse represents a classified contract
type ContractResponse struct {
	SessionID    string          `json:"session_id"`
	Address      string          `json:"address"`
	Standard     domain.Standard `json:"standard"`
	Uncertain    bool            `json:"uncertain"`
	Name         *string         `json:"name,omitempty"`
	Symbol       *string         `json:"symbol,omitempty"`
	TotalSupply  *string         `json:"total_supply,omitempty"`
	MaxSupply    *string         `json:"max_supply,omitempty"`
	ClassifiedAt time.Time       `json:"classified_at"`
}

// MintedTokenResponse represents a token found during discovery
type MintedTokenResponse struct {
	TokenID string `json:"token_id"`
	URI     string `json:"uri"`
}

// DiscoveryResponse represents the outcome of a discovery pass
type DiscoveryResponse struct {
	Contract        ContractResponse      `json:"contract"`
	MintedTokens    []MintedTokenResponse `json:"minted_tokens"`
	UnmintedTokenID *string               `json:"unminted_token_id,omitempty"`
	TotalChecked    int                   `json:"total_checked"`
	BatchesScanned  int                   `json:"batches_scanned"`
}

// TokenResponse represents a single existence check
type TokenResponse struct {
	Contract ContractResponse `json:"contract"`
	TokenID  string           `json:"token_id"`
	Minted   bool             `json:"minted"`
	URI      *string          `json:"uri,omitempty"`
}

// MetadataResponse represents a resolved metadata document
type MetadataResponse struct {
	URI        string      `json:"uri"`
	Scheme     string      `json:"scheme"`
	Source     string      `json:"source"`
	MimeType   string      `json:"mime_type,omitempty"`
	Structured bool        `json:"structured"`
	Document   interface{} `json:"document,omitempty"`
	Raw        *string     `json:"raw,omitempty"`
	Hash       string      `json:"hash"`
}

// NewContractResponse maps a session to its contract response
func NewContractResponse(s *session.Session) ContractResponse {
	d := s.Descriptor
	return ContractResponse{
		SessionID:    s.ID.String(),
		Address:      d.Address,
		Standard:     d.Standard,
		Uncertain:    d.Uncertain,
		Name:         d.Name,
		Symbol:       d.Symbol,
		TotalSupply:  bigString(d.TotalSupply),
		MaxSupply:    bigString(d.MaxSupply),
		ClassifiedAt: s.OpenedAt,
	}
}

// NewDiscoveryResponse maps a discovery result to its response
func NewDiscoveryResponse(s *session.Session, result *domain.DiscoveryResult) DiscoveryResponse {
	minted := make([]MintedTokenResponse, 0, len(result.MintedTokens))
	for _, token := range result.MintedTokens {
		minted = append(minted, MintedTokenResponse{
			TokenID: token.TokenID.String(),
			URI:     token.URI,
		})
	}

	return DiscoveryResponse{
		Contract:        NewContractResponse(s),
		MintedTokens:    minted,
		UnmintedTokenID: bigString(result.UnmintedCandidate()),
		TotalChecked:    result.TotalChecked,
		BatchesScanned:  result.BatchesScanned,
	}
}

// NewTokenResponse maps a probe result to its response
func NewTokenResponse(s *session.Session, result *domain.ProbeResult) TokenResponse {
	return TokenResponse{
		Contract: NewContractResponse(s),
		TokenID:  result.TokenID.String(),
		Minted:   result.Minted,
		URI:      result.URI,
	}
}

// NewMetadataResponse maps a metadata document to its response.
// The raw text is only included when the body could not be parsed as JSON.
func NewMetadataResponse(doc *domain.MetadataDocument) (*MetadataResponse, error) {
	hash, err := doc.CanonicalHash()
	if err != nil {
		return nil, err
	}

	response := &MetadataResponse{
		URI:        doc.URI,
		Scheme:     doc.Scheme,
		Source:     doc.Source,
		MimeType:   doc.MimeType,
		Structured: doc.IsStructured(),
		Hash:       hex.EncodeToString(hash),
	}
	if doc.IsStructured() {
		response.Document = doc.Parsed
	} else {
		raw := doc.Raw
		response.Raw = &raw
	}

	return response, nil
}

func bigString(v *big.Int) *string {
	if v == nil {
		return nil
	}
	s := v.String()
	return &s
}
