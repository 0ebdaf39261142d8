package discovery

import (
	"math/big"
	"strings"

	"github.com/feral-file/ff-token-prober/internal/domain"
)

// hexLiterals are spellings of small ids that some deployers use as their first token
var hexLiterals = []string{"0x1", "0x01", "0x10", "0x100", "0x1000"}

// memeNumbers are ids commonly minted first as vanity or reserved tokens
var memeNumbers = []int64{42, 69, 420, 666, 777, 1337, 6969, 9999, 10000, 31337}

// nonexistenceMarkers are revert fragments contracts use for ids that were never minted
var nonexistenceMarkers = []string{
	"nonexistent",
	"non-existent",
	"does not exist",
	"doesn't exist",
	"not exist",
	"invalid token",
	"not minted",
	"owner query for",
	"uri query for",
}

// sampleCandidates builds the ordered, deduplicated minted sample for the given Unix time
func sampleCandidates(now int64) []*big.Int {
	var candidates []*big.Int
	for i := int64(1); i <= 20; i++ {
		candidates = append(candidates, big.NewInt(i))
	}
	for _, literal := range hexLiterals {
		id, err := domain.ParseTokenID(literal)
		if err != nil {
			continue
		}
		candidates = append(candidates, id)
	}
	candidates = append(candidates, big.NewInt(now))
	for _, n := range memeNumbers {
		candidates = append(candidates, big.NewInt(n))
	}

	return dedupe(candidates)
}

// dedupe keeps the first occurrence of every id
func dedupe(ids []*big.Int) []*big.Int {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]*big.Int, 0, len(ids))
	for _, id := range ids {
		key := id.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

// isNonexistent reports whether a failed accessor call looks like an unminted id
func isNonexistent(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, marker := range nonexistenceMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
