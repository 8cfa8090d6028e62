package model

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobonovski/gow2v/corpus"
)

func newTestRand() *rand.Rand {
	return rand.New(rand.NewPCG(3, 5))
}

func uniformAliasTable(n int) *corpus.AliasTable {
	table := &corpus.AliasTable{
		Prob:  make([]float32, n),
		Alias: make([]uint32, n),
	}
	for i := 0; i < n; i += 1 {
		table.Prob[i] = 1.0
		table.Alias[i] = uint32(i)
	}
	return table
}

func TestAliasSamplerExcludes(t *testing.T) {
	s, err := NewAliasSampler(uniformAliasTable(4), newTestRand(), 0)
	require.NoError(t, err)

	seen := make(map[uint32]int)
	for i := 0; i < 10000; i += 1 {
		w, err := s.Sample(2)
		require.NoError(t, err)
		assert.NotEqual(t, uint32(2), w)
		seen[w] += 1
	}
	assert.Len(t, seen, 3)
}

func TestAliasSamplerDistribution(t *testing.T) {
	// bin 0 always yields 0, bin 1 yields 1 or 0 evenly: p(0) = 0.75
	table := &corpus.AliasTable{
		Prob:  []float32{1.0, 0.5},
		Alias: []uint32{0, 0},
	}
	s, err := NewAliasSampler(table, newTestRand(), 0)
	require.NoError(t, err)

	zeros := 0
	draws := 20000
	for i := 0; i < draws; i += 1 {
		w, err := s.Sample(99)
		require.NoError(t, err)
		if w == 0 {
			zeros += 1
		}
	}
	assert.InDelta(t, 0.75, float64(zeros)/float64(draws), 0.02)
}

func TestAliasSamplerAlias(t *testing.T) {
	table := &corpus.AliasTable{
		Prob:  []float32{0, 0},
		Alias: []uint32{1, 1},
	}
	s, err := NewAliasSampler(table, newTestRand(), 100)
	require.NoError(t, err)

	for i := 0; i < 100; i += 1 {
		w, err := s.Sample(0)
		require.NoError(t, err)
		assert.Equal(t, uint32(1), w)
	}

	_, err = s.Sample(1)
	assert.ErrorIs(t, err, ErrDegenerateSampler)
}

func TestAliasSamplerDegenerate(t *testing.T) {
	table := &corpus.AliasTable{
		Prob:  []float32{1.0},
		Alias: []uint32{0},
	}
	s, err := NewAliasSampler(table, newTestRand(), 0)
	require.NoError(t, err)

	_, err = s.Sample(0)
	assert.ErrorIs(t, err, ErrDegenerateSampler)

	w, err := s.Sample(1)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), w)
}

func TestAliasSamplerBadTable(t *testing.T) {
	tables := map[string]*corpus.AliasTable{
		"nil":        nil,
		"empty":      {},
		"mismatched": {Prob: []float32{1, 1}, Alias: []uint32{0}},
		"prob":       {Prob: []float32{1.5}, Alias: []uint32{0}},
	}
	for name, table := range tables {
		t.Run(name, func(t *testing.T) {
			_, err := NewAliasSampler(table, newTestRand(), 0)
			assert.ErrorIs(t, err, ErrBadAliasTable)
		})
	}
}
