package discovery

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampleCandidates(t *testing.T) {
	candidates := sampleCandidates(1700000000)

	// 1..20, 0x100, 0x1000, the timestamp and ten meme numbers
	assert.Len(t, candidates, 33)
	for i := 0; i < 20; i++ {
		assert.Equal(t, int64(i+1), candidates[i].Int64())
	}
	assert.Equal(t, int64(256), candidates[20].Int64())
	assert.Equal(t, int64(4096), candidates[21].Int64())
	assert.Equal(t, int64(1700000000), candidates[22].Int64())
	assert.Equal(t, int64(31337), candidates[len(candidates)-1].Int64())

	seen := make(map[string]bool)
	for _, id := range candidates {
		assert.False(t, seen[id.String()], "duplicate candidate %s", id)
		seen[id.String()] = true
	}
}

func TestSampleCandidates_TimestampCollision(t *testing.T) {
	// A timestamp equal to an existing candidate is collapsed
	candidates := sampleCandidates(42)
	assert.Len(t, candidates, 32)
}

func TestDedupe(t *testing.T) {
	ids := []*big.Int{big.NewInt(3), big.NewInt(1), big.NewInt(3), big.NewInt(2), big.NewInt(1)}
	unique := dedupe(ids)

	var got []int64
	for _, id := range unique {
		got = append(got, id.Int64())
	}
	assert.Equal(t, []int64{3, 1, 2}, got)
}

func TestIsNonexistent(t *testing.T) {
	tests := []struct {
		err      string
		expected bool
	}{
		{err: "execution reverted: ERC721Metadata: URI query for nonexistent token", expected: true},
		{err: "execution reverted: ERC721: invalid token ID", expected: true},
		{err: "execution reverted: URIQueryForNonexistentToken", expected: true},
		{err: "execution reverted: Token does not exist", expected: true},
		{err: "execution reverted: ERC721: owner query for nonexistent token", expected: true},
		{err: "dial tcp: connection refused", expected: false},
		{err: "tokenURI: empty call result", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.err, func(t *testing.T) {
			assert.Equal(t, tt.expected, isNonexistent(errors.New(tt.err)))
		})
	}
}
