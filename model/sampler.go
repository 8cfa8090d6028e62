package model

import (
	"fmt"
	"math/rand/v2"

	"github.com/bobonovski/gow2v/corpus"
)

// AliasSampler draws negative words from a precomputed alias table in O(1)
// expected time.
type AliasSampler struct {
	prob       []float32
	alias      []uint32
	rng        *rand.Rand
	maxRetries int
}

// NewAliasSampler wraps table, which must not change while the sampler
// is in use. maxRetries <= 0 selects DefaultMaxSampleRetries.
func NewAliasSampler(table *corpus.AliasTable, rng *rand.Rand, maxRetries int) (*AliasSampler, error) {
	if table == nil || table.Size() == 0 || len(table.Alias) != len(table.Prob) {
		return nil, fmt.Errorf("%w: empty or mismatched arrays", ErrBadAliasTable)
	}
	for i, p := range table.Prob {
		if !(p >= 0 && p <= 1) {
			return nil, fmt.Errorf("%w: prob[%d] = %v", ErrBadAliasTable, i, p)
		}
	}
	if maxRetries <= 0 {
		maxRetries = DefaultMaxSampleRetries
	}
	return &AliasSampler{
		prob:       table.Prob,
		alias:      table.Alias,
		rng:        rng,
		maxRetries: maxRetries,
	}, nil
}

// get the number of alias bins
func (s *AliasSampler) Size() int {
	return len(s.prob)
}

// Sample draws a word different from exclude. It gives up with
// ErrDegenerateSampler after maxRetries draws hit exclude.
func (s *AliasSampler) Sample(exclude uint32) (uint32, error) {
	n := len(s.prob)
	for retry := 0; retry < s.maxRetries; retry += 1 {
		k := s.rng.IntN(n)
		candidate := uint32(k)
		if s.prob[k] <= s.rng.Float32() {
			candidate = s.alias[k]
		}
		if candidate != exclude {
			return candidate, nil
		}
	}
	return 0, fmt.Errorf("%w: word %d after %d draws", ErrDegenerateSampler, exclude, s.maxRetries)
}
