package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSigmoidSaturates(t *testing.T) {
	s := NewSigmoidTable(DefaultSigmoidTableSize, DefaultMaxSigmoid)

	for _, v := range []float32{6.0001, 7, 100, float32(math.MaxFloat32)} {
		assert.Equal(t, float32(1), s.Lookup(v))
		assert.Equal(t, float32(0), s.Lookup(-v))
	}
}

func TestSigmoidZero(t *testing.T) {
	s := NewSigmoidTable(DefaultSigmoidTableSize, DefaultMaxSigmoid)

	assert.InDelta(t, 0.5, s.Lookup(0), 2*DefaultMaxSigmoid/DefaultSigmoidTableSize)
}

func TestSigmoidBoundary(t *testing.T) {
	s := NewSigmoidTable(DefaultSigmoidTableSize, DefaultMaxSigmoid)

	assert.NotPanics(t, func() {
		assert.InDelta(t, 1.0, s.Lookup(6), 0.01)
		assert.InDelta(t, 0.0, s.Lookup(-6), 0.01)
	})
}

func TestSigmoidApproximation(t *testing.T) {
	s := NewSigmoidTable(DefaultSigmoidTableSize, DefaultMaxSigmoid)
	// the logistic slope is at most 1/4
	tolerance := 0.25*2*DefaultMaxSigmoid/DefaultSigmoidTableSize + 1e-6

	prev := float32(0)
	for v := -6.0; v <= 6.0; v += 0.01 {
		got := s.Lookup(float32(v))
		want := 1 / (1 + math.Exp(-v))
		assert.InDelta(t, want, got, tolerance, "v = %f", v)
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}
}
