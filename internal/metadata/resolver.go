package metadata

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/feral-file/ff-token-prober/internal/adapter"
	"github.com/feral-file/ff-token-prober/internal/config"
	"github.com/feral-file/ff-token-prober/internal/domain"
	"github.com/feral-file/ff-token-prober/internal/logger"
)

const defaultGatewayTimeout = 10 * time.Second

// Resolver maps a token URI to its metadata document
//
//go:generate mockgen -source=resolver.go -destination=../mocks/metadata_resolver.go -package=mocks -mock_names=Resolver=MockMetadataResolver
type Resolver interface {
	// Resolve returns the document behind uri or a definitive failure:
	// ErrMetadataTerminal, ErrAllGatewaysExhausted or ErrUnsupportedURIScheme
	Resolve(ctx context.Context, uri string) (*domain.MetadataDocument, error)
}

// strategy resolves the URIs whose lowercased form starts with one of its prefixes
type strategy struct {
	scheme   string
	prefixes []string
	resolve  func(ctx context.Context, uri string) (*domain.MetadataDocument, error)
}

type resolver struct {
	httpClient adapter.HTTPClient
	json       adapter.JSON
	config     config.MetadataConfig
	strategies []strategy
}

func NewResolver(httpClient adapter.HTTPClient, json adapter.JSON, cfg config.MetadataConfig) Resolver {
	if cfg.GatewayTimeout <= 0 {
		cfg.GatewayTimeout = defaultGatewayTimeout
	}

	r := &resolver{
		httpClient: httpClient,
		json:       json,
		config:     cfg,
	}

	// Evaluated in order, the first matching prefix wins
	r.strategies = []strategy{
		{scheme: "data", prefixes: []string{domain.SCHEME_DATA}, resolve: r.resolveInline},
		{scheme: "http", prefixes: []string{domain.SCHEME_HTTP, domain.SCHEME_HTTPS}, resolve: r.resolveHTTP},
		{scheme: "ipfs", prefixes: []string{domain.SCHEME_IPFS}, resolve: r.resolveIPFS},
		{scheme: "ar", prefixes: []string{domain.SCHEME_AR}, resolve: r.resolveArweave},
	}

	return r
}

func (r *resolver) Resolve(ctx context.Context, uri string) (*domain.MetadataDocument, error) {
	uri = strings.TrimSpace(uri)
	lower := strings.ToLower(uri)

	for _, s := range r.strategies {
		for _, prefix := range s.prefixes {
			if strings.HasPrefix(lower, prefix) {
				logger.DebugCtx(ctx, "Resolving metadata", zap.String("scheme", s.scheme), zap.String("uri", truncate(uri)))
				return s.resolve(ctx, uri)
			}
		}
	}

	return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedURIScheme, truncate(uri))
}

// resolveInline decodes a data URI; the payload was located, so a bad payload is terminal
func (r *resolver) resolveInline(_ context.Context, uri string) (*domain.MetadataDocument, error) {
	payload, err := decodeDataURI(uri)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMetadataTerminal, err)
	}

	var parsed interface{}
	if err := r.json.UnmarshalNumbers(payload, &parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON: %w", domain.ErrMetadataTerminal, err)
	}

	return &domain.MetadataDocument{
		URI:      uri,
		Scheme:   "data",
		Source:   "inline",
		Raw:      string(payload),
		Parsed:   parsed,
		MimeType: mimetype.Detect(payload).String(),
	}, nil
}

// resolveHTTP issues a single request, any failure is terminal
func (r *resolver) resolveHTTP(ctx context.Context, uri string) (*domain.MetadataDocument, error) {
	if r.config.HTTPTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.HTTPTimeout)
		defer cancel()
	}

	resp, err := r.httpClient.Fetch(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMetadataTerminal, err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("%w: unexpected status code %d", domain.ErrMetadataTerminal, resp.StatusCode)
	}

	var parsed interface{}
	if err := r.json.UnmarshalNumbers(resp.Body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON: %w", domain.ErrMetadataTerminal, err)
	}

	scheme := "http"
	if strings.HasPrefix(strings.ToLower(uri), domain.SCHEME_HTTPS) {
		scheme = "https"
	}

	return &domain.MetadataDocument{
		URI:      uri,
		Scheme:   scheme,
		Source:   uri,
		Raw:      string(resp.Body),
		Parsed:   parsed,
		MimeType: mimetype.Detect(resp.Body).String(),
	}, nil
}

func (r *resolver) resolveIPFS(ctx context.Context, uri string) (*domain.MetadataDocument, error) {
	cid := uri[len(domain.SCHEME_IPFS):]
	cid = strings.TrimPrefix(cid, "ipfs/")
	cid = strings.TrimSuffix(cid, "/")

	urls := make([]string, 0, len(r.config.IPFSGateways))
	for _, gateway := range r.config.IPFSGateways {
		urls = append(urls, fmt.Sprintf("%s/ipfs/%s", strings.TrimSuffix(gateway, "/"), cid))
	}

	return r.resolveContentAddressed(ctx, uri, "ipfs", urls)
}

func (r *resolver) resolveArweave(ctx context.Context, uri string) (*domain.MetadataDocument, error) {
	txID := strings.TrimSuffix(uri[len(domain.SCHEME_AR):], "/")

	urls := make([]string, 0, len(r.config.ArweaveGateways))
	for _, gateway := range r.config.ArweaveGateways {
		urls = append(urls, fmt.Sprintf("%s/%s", strings.TrimSuffix(gateway, "/"), txID))
	}

	return r.resolveContentAddressed(ctx, uri, "ar", urls)
}

// resolveContentAddressed tries each gateway URL in order, one at a time.
// The first 2xx response wins; a body that is not JSON is still a result.
func (r *resolver) resolveContentAddressed(ctx context.Context, uri, scheme string, urls []string) (*domain.MetadataDocument, error) {
	attemptErrs := make([]error, 0, len(urls))

	for _, url := range urls {
		if err := ctx.Err(); err != nil {
			attemptErrs = append(attemptErrs, err)
			break
		}

		body, err := r.fetchGateway(ctx, url)
		if err != nil {
			logger.WarnCtx(ctx, "Gateway attempt failed", zap.String("url", url), zap.Error(err))
			attemptErrs = append(attemptErrs, fmt.Errorf("%s: %w", url, err))
			continue
		}

		document := &domain.MetadataDocument{
			URI:      uri,
			Scheme:   scheme,
			Source:   url,
			Raw:      string(body),
			MimeType: mimetype.Detect(body).String(),
		}

		var parsed interface{}
		if err := r.json.UnmarshalNumbers(body, &parsed); err == nil {
			document.Parsed = parsed
		} else {
			logger.DebugCtx(ctx, "Gateway body is not JSON, keeping raw text",
				zap.String("url", url),
				zap.String("mimeType", document.MimeType))
		}

		return document, nil
	}

	return nil, errors.Join(append([]error{fmt.Errorf("%w: %s", domain.ErrAllGatewaysExhausted, uri)}, attemptErrs...)...)
}

// fetchGateway performs one gateway attempt under its own timeout
func (r *resolver) fetchGateway(ctx context.Context, url string) ([]byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, r.config.GatewayTimeout)
	defer cancel()

	resp, err := r.httpClient.Fetch(attemptCtx, url)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// truncate keeps inline payloads out of logs and error messages
func truncate(uri string) string {
	const maxLen = 120
	if len(uri) <= maxLen {
		return uri
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(uri[cut]) {
		cut--
	}
	return uri[:cut] + "..."
}
