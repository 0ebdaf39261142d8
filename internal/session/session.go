package session

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/feral-file/ff-token-prober/internal/adapter"
	"github.com/feral-file/ff-token-prober/internal/classifier"
	"github.com/feral-file/ff-token-prober/internal/discovery"
	"github.com/feral-file/ff-token-prober/internal/domain"
	"github.com/feral-file/ff-token-prober/internal/logger"
	"github.com/feral-file/ff-token-prober/internal/metadata"
	"github.com/feral-file/ff-token-prober/internal/prober"
)

// Session is one classified contract. The descriptor is decided once at Open
// and passed explicitly through every later call.
type Session struct {
	ID         uuid.UUID                  `json:"id"`
	Descriptor *domain.ContractDescriptor `json:"descriptor"`
	OpenedAt   time.Time                  `json:"opened_at"`
}

// Context returns ctx carrying the session's log fields
func (s *Session) Context(ctx context.Context) context.Context {
	return logger.WithFields(ctx,
		zap.String("session_id", s.ID.String()),
		zap.String("contract", s.Descriptor.Address),
	)
}

// Service is the query surface over a contract session
//
//go:generate mockgen -source=session.go -destination=../mocks/session.go -package=mocks -mock_names=Service=MockSessionService
type Service interface {
	// Open classifies the contract at address and starts a session for it
	Open(ctx context.Context, address string) (*Session, error)

	// Discover samples minted tokens and looks for one free token id
	Discover(ctx context.Context, s *Session) (*domain.DiscoveryResult, error)

	// CheckToken re-checks the existence of a single token id
	CheckToken(ctx context.Context, s *Session, tokenID *big.Int) (*domain.ProbeResult, error)

	// TokenMetadata reads the token URI from the contract and resolves its document
	TokenMetadata(ctx context.Context, s *Session, tokenID *big.Int) (*domain.MetadataDocument, error)

	// ResolveURI resolves a metadata URI without any contract context
	ResolveURI(ctx context.Context, uri string) (*domain.MetadataDocument, error)
}

type service struct {
	classifier classifier.Classifier
	engine     discovery.Engine
	prober     prober.Prober
	resolver   metadata.Resolver
	clock      adapter.Clock
}

func NewService(
	classifier classifier.Classifier,
	engine discovery.Engine,
	prober prober.Prober,
	resolver metadata.Resolver,
	clock adapter.Clock,
) Service {
	return &service{
		classifier: classifier,
		engine:     engine,
		prober:     prober,
		resolver:   resolver,
		clock:      clock,
	}
}

func (s *service) Open(ctx context.Context, address string) (*Session, error) {
	descriptor, err := s.classifier.Classify(ctx, address)
	if err != nil {
		return nil, err
	}

	session := &Session{
		ID:         uuid.New(),
		Descriptor: descriptor,
		OpenedAt:   s.clock.Now(),
	}

	logger.InfoCtx(session.Context(ctx), "Session opened",
		zap.String("standard", string(descriptor.Standard)),
		zap.Bool("uncertain", descriptor.Uncertain))

	return session, nil
}

func (s *service) Discover(ctx context.Context, session *Session) (*domain.DiscoveryResult, error) {
	return s.engine.Discover(session.Context(ctx), session.Descriptor)
}

func (s *service) CheckToken(ctx context.Context, session *Session, tokenID *big.Int) (*domain.ProbeResult, error) {
	if tokenID == nil || tokenID.Sign() < 0 {
		return nil, domain.ErrInvalidTokenID
	}

	result := s.prober.Probe(session.Context(ctx), session.Descriptor, tokenID)
	return &result, nil
}

func (s *service) TokenMetadata(ctx context.Context, session *Session, tokenID *big.Int) (*domain.MetadataDocument, error) {
	if tokenID == nil || tokenID.Sign() < 0 {
		return nil, domain.ErrInvalidTokenID
	}
	ctx = session.Context(ctx)

	uri, err := s.prober.TokenURI(ctx, session.Descriptor, tokenID)
	if err != nil {
		return nil, fmt.Errorf("%w: token %s: %w", domain.ErrTokenURIUnavailable, tokenID, err)
	}

	uri = processTokenURI(session.Descriptor.EffectiveStandard(), uri, tokenID)
	logger.DebugCtx(ctx, "Token URI read", zap.String("tokenID", tokenID.String()), zap.String("uri", uri))

	return s.resolver.Resolve(ctx, uri)
}

func (s *service) ResolveURI(ctx context.Context, uri string) (*domain.MetadataDocument, error) {
	return s.resolver.Resolve(ctx, uri)
}

// processTokenURI substitutes the ERC1155 {id} placeholder with the 64 hex character id
func processTokenURI(standard domain.Standard, uri string, tokenID *big.Int) string {
	if standard != domain.StandardERC1155 {
		return uri
	}
	return strings.ReplaceAll(uri, "{id}", domain.TokenIDHex(tokenID))
}
