package metadata_test

import (
	"context"
	"errors"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-token-prober/internal/adapter"
	"github.com/feral-file/ff-token-prober/internal/config"
	"github.com/feral-file/ff-token-prober/internal/domain"
	"github.com/feral-file/ff-token-prober/internal/logger"
	"github.com/feral-file/ff-token-prober/internal/metadata"
	"github.com/feral-file/ff-token-prober/internal/mocks"
)

func TestMain(m *testing.M) {
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

type testResolverMocks struct {
	ctrl       *gomock.Controller
	httpClient *mocks.MockHTTPClient
	resolver   metadata.Resolver
}

func setupTestResolver(t *testing.T) *testResolverMocks {
	ctrl := gomock.NewController(t)

	tm := &testResolverMocks{
		ctrl:       ctrl,
		httpClient: mocks.NewMockHTTPClient(ctrl),
	}
	tm.resolver = metadata.NewResolver(tm.httpClient, adapter.NewJSON(), config.MetadataConfig{
		IPFSGateways:    []string{"https://gw1.example", "https://gw2.example/", "https://gw3.example"},
		ArweaveGateways: []string{"https://arweave.net"},
		GatewayTimeout:  10 * time.Second,
		HTTPTimeout:     30 * time.Second,
	})

	return tm
}

func jsonResponse(body string) *adapter.HTTPResponse {
	return &adapter.HTTPResponse{StatusCode: 200, ContentType: "application/json", Body: []byte(body)}
}

func TestResolve_InlineBase64(t *testing.T) {
	tm := setupTestResolver(t)

	// No HTTP expectation: any network call fails the test
	uri := "data:application/json;base64,eyJuYW1lIjoiVGVzdCJ9"
	first, err := tm.resolver.Resolve(context.Background(), uri)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"name": "Test"}, first.Parsed)
	assert.Equal(t, "data", first.Scheme)
	assert.Equal(t, `{"name":"Test"}`, first.Raw)

	second, err := tm.resolver.Resolve(context.Background(), uri)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolve_InlinePlain(t *testing.T) {
	tm := setupTestResolver(t)

	doc, err := tm.resolver.Resolve(context.Background(), `data:application/json;utf8,{"name":"Plain%20Text"}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"name": "Plain Text"}, doc.Parsed)
}

func TestResolve_InlineTerminalFailures(t *testing.T) {
	tests := []struct {
		name string
		uri  string
	}{
		{name: "invalid base64", uri: "data:application/json;base64,!!!not-base64!!!"},
		{name: "base64 of non-json", uri: "data:application/json;base64,aGVsbG8gd29ybGQ="},
		{name: "missing comma", uri: "data:application/json;base64"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTestResolver(t)

			doc, err := tm.resolver.Resolve(context.Background(), tt.uri)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrMetadataTerminal))
			assert.Nil(t, doc)
		})
	}
}

func TestResolve_HTTP(t *testing.T) {
	tm := setupTestResolver(t)

	tm.httpClient.EXPECT().
		Fetch(gomock.Any(), "https://api.example.com/token/1").
		Return(jsonResponse(`{"name":"Remote","image":"ipfs://bafy/img.png"}`), nil)

	doc, err := tm.resolver.Resolve(context.Background(), "https://api.example.com/token/1")
	require.NoError(t, err)
	assert.Equal(t, "https", doc.Scheme)
	assert.Equal(t, "https://api.example.com/token/1", doc.Source)
	parsed, ok := doc.Parsed.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Remote", parsed["name"])
	assert.Equal(t, "application/json", doc.MimeType)
}

func TestResolve_HTTPTerminalFailures(t *testing.T) {
	tests := []struct {
		name     string
		response *adapter.HTTPResponse
		err      error
	}{
		{name: "network failure", err: errors.New("dial tcp: connection refused")},
		{name: "non-2xx status", response: &adapter.HTTPResponse{StatusCode: 404, Body: []byte("not found")}},
		{name: "non-json body", response: &adapter.HTTPResponse{StatusCode: 200, Body: []byte("<html></html>")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTestResolver(t)

			// Exactly one request, never retried
			tm.httpClient.EXPECT().
				Fetch(gomock.Any(), "http://api.example.com/1").
				Return(tt.response, tt.err).
				Times(1)

			_, err := tm.resolver.Resolve(context.Background(), "http://api.example.com/1")
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrMetadataTerminal))
		})
	}
}

func TestResolve_IPFSFallsBackToNextGateway(t *testing.T) {
	tm := setupTestResolver(t)

	gomock.InOrder(
		tm.httpClient.EXPECT().
			Fetch(gomock.Any(), "https://gw1.example/ipfs/bafybeigdyrzt").
			DoAndReturn(func(ctx context.Context, _ string) (*adapter.HTTPResponse, error) {
				_, hasDeadline := ctx.Deadline()
				assert.True(t, hasDeadline)
				return nil, context.DeadlineExceeded
			}),
		tm.httpClient.EXPECT().
			Fetch(gomock.Any(), "https://gw2.example/ipfs/bafybeigdyrzt").
			Return(jsonResponse(`{"name":"Foo"}`), nil),
	)
	// gw3 has no expectation and must never be called

	doc, err := tm.resolver.Resolve(context.Background(), "ipfs://bafybeigdyrzt")
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"name": "Foo"}, doc.Parsed)
	assert.Equal(t, "https://gw2.example/ipfs/bafybeigdyrzt", doc.Source)
	assert.Equal(t, "ipfs", doc.Scheme)
}

func TestResolve_IPFSNormalizesIdentifier(t *testing.T) {
	tests := []struct {
		uri      string
		expected string
	}{
		{uri: "ipfs://bafy/", expected: "https://gw1.example/ipfs/bafy"},
		{uri: "ipfs://ipfs/bafy", expected: "https://gw1.example/ipfs/bafy"},
		{uri: "ipfs://bafy/metadata/7.json", expected: "https://gw1.example/ipfs/bafy/metadata/7.json"},
		{uri: "IPFS://bafy", expected: "https://gw1.example/ipfs/bafy"},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			tm := setupTestResolver(t)
			tm.httpClient.EXPECT().Fetch(gomock.Any(), tt.expected).Return(jsonResponse(`{}`), nil)

			_, err := tm.resolver.Resolve(context.Background(), tt.uri)
			require.NoError(t, err)
		})
	}
}

func TestResolve_IPFSNonJSONBodyIsStillAResult(t *testing.T) {
	tm := setupTestResolver(t)

	png := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d}
	tm.httpClient.EXPECT().
		Fetch(gomock.Any(), "https://gw1.example/ipfs/bafyimage").
		Return(&adapter.HTTPResponse{StatusCode: 200, Body: png}, nil)

	doc, err := tm.resolver.Resolve(context.Background(), "ipfs://bafyimage")
	require.NoError(t, err)
	assert.Nil(t, doc.Parsed)
	assert.False(t, doc.IsStructured())
	assert.Equal(t, string(png), doc.Raw)
	assert.Equal(t, "image/png", doc.MimeType)
}

func TestResolve_AllGatewaysExhausted(t *testing.T) {
	tm := setupTestResolver(t)

	gatewayErr := errors.New("connection reset")
	tm.httpClient.EXPECT().Fetch(gomock.Any(), "https://gw1.example/ipfs/bafy").Return(nil, gatewayErr)
	tm.httpClient.EXPECT().Fetch(gomock.Any(), "https://gw2.example/ipfs/bafy").Return(&adapter.HTTPResponse{StatusCode: 504}, nil)
	tm.httpClient.EXPECT().Fetch(gomock.Any(), "https://gw3.example/ipfs/bafy").Return(nil, context.DeadlineExceeded)

	doc, err := tm.resolver.Resolve(context.Background(), "ipfs://bafy")
	require.Error(t, err)
	assert.Nil(t, doc)
	assert.True(t, errors.Is(err, domain.ErrAllGatewaysExhausted))
	assert.True(t, errors.Is(err, gatewayErr))
	assert.Contains(t, err.Error(), "status 504")
}

func TestResolve_NoGatewaysConfigured(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := metadata.NewResolver(mocks.NewMockHTTPClient(ctrl), adapter.NewJSON(), config.MetadataConfig{})

	_, err := r.Resolve(context.Background(), "ipfs://bafy")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrAllGatewaysExhausted))
}

func TestResolve_Arweave(t *testing.T) {
	tm := setupTestResolver(t)

	tm.httpClient.EXPECT().
		Fetch(gomock.Any(), "https://arweave.net/tx123").
		Return(jsonResponse(`{"name":"Permanent"}`), nil)

	doc, err := tm.resolver.Resolve(context.Background(), "ar://tx123")
	require.NoError(t, err)
	assert.Equal(t, "ar", doc.Scheme)
	assert.Equal(t, map[string]interface{}{"name": "Permanent"}, doc.Parsed)
}

func TestResolve_UnsupportedScheme(t *testing.T) {
	for _, uri := range []string{"ftp://example.com/1.json", "bafybeigdyrzt", "", "onchfs://abc"} {
		t.Run(uri, func(t *testing.T) {
			tm := setupTestResolver(t)

			_, err := tm.resolver.Resolve(context.Background(), uri)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrUnsupportedURIScheme))
			assert.Contains(t, err.Error(), "unsupported URI format")
		})
	}
}

func TestResolve_PreservesWideIntegers(t *testing.T) {
	const body = `{"token_id":12345678901234567891,"attributes":[{"value":9007199254740993}]}`

	tests := []struct {
		name  string
		uri   string
		setup func(tm *testResolverMocks)
	}{
		{
			name: "inline",
			uri:  `data:application/json;utf8,` + body,
		},
		{
			name: "http",
			uri:  "https://api.example.com/token/1",
			setup: func(tm *testResolverMocks) {
				tm.httpClient.EXPECT().Fetch(gomock.Any(), "https://api.example.com/token/1").Return(jsonResponse(body), nil)
			},
		},
		{
			name: "ipfs",
			uri:  "ipfs://bafy",
			setup: func(tm *testResolverMocks) {
				tm.httpClient.EXPECT().Fetch(gomock.Any(), "https://gw1.example/ipfs/bafy").Return(jsonResponse(body), nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTestResolver(t)
			if tt.setup != nil {
				tt.setup(tm)
			}

			doc, err := tm.resolver.Resolve(context.Background(), tt.uri)
			require.NoError(t, err)

			out, err := json.Marshal(doc.Parsed)
			require.NoError(t, err)
			assert.Equal(t, body, string(out))
		})
	}
}

func TestResolve_InlineBase64WideInteger(t *testing.T) {
	tm := setupTestResolver(t)

	doc, err := tm.resolver.Resolve(context.Background(), "data:application/json;base64,eyJ0b2tlbl9pZCI6MTIzNDU2Nzg5MDEyMzQ1Njc4OTF9")
	require.NoError(t, err)
	parsed, ok := doc.Parsed.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, json.Number("12345678901234567891"), parsed["token_id"])

	out, err := json.Marshal(doc.Parsed)
	require.NoError(t, err)
	assert.Equal(t, `{"token_id":12345678901234567891}`, string(out))
}

func TestResolve_DeadlinePerFetchKind(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		url      string
		min, max time.Duration
	}{
		{name: "direct http uses http timeout", uri: "https://api.example.com/slow", url: "https://api.example.com/slow", min: 20 * time.Second, max: 30 * time.Second},
		{name: "gateway attempt uses gateway timeout", uri: "ipfs://bafy", url: "https://gw1.example/ipfs/bafy", min: 5 * time.Second, max: 10 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTestResolver(t)

			tm.httpClient.EXPECT().
				Fetch(gomock.Any(), tt.url).
				DoAndReturn(func(ctx context.Context, _ string) (*adapter.HTTPResponse, error) {
					deadline, ok := ctx.Deadline()
					require.True(t, ok)
					remaining := time.Until(deadline)
					assert.Greater(t, remaining, tt.min)
					assert.LessOrEqual(t, remaining, tt.max)
					return jsonResponse(`{}`), nil
				})

			_, err := tm.resolver.Resolve(context.Background(), tt.uri)
			require.NoError(t, err)
		})
	}
}

func TestResolve_UnsupportedSchemeMessageKeepsValidUTF8(t *testing.T) {
	tm := setupTestResolver(t)

	// The multi-byte rune straddles the truncation point
	uri := "ftp://" + strings.Repeat("a", 113) + "é" + strings.Repeat("b", 20)

	_, err := tm.resolver.Resolve(context.Background(), uri)
	require.Error(t, err)
	assert.True(t, utf8.ValidString(err.Error()))
	assert.True(t, strings.HasSuffix(err.Error(), strings.Repeat("a", 113)+"..."))
}
