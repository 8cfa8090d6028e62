package model

import "math"

// SigmoidTable approximates the logistic function with tableSize values
// evenly spaced over [-maxX, maxX]. Inputs beyond the bound saturate.
type SigmoidTable struct {
	maxX   float32
	values []float32
}

func NewSigmoidTable(tableSize int, maxX float32) *SigmoidTable {
	values := make([]float32, tableSize)
	for i := range values {
		x := (float64(i)/float64(tableSize)*2 - 1) * float64(maxX)
		values[i] = float32(1 / (1 + math.Exp(-x)))
	}
	return &SigmoidTable{
		maxX:   maxX,
		values: values,
	}
}

// get the approximated sigmoid of v
func (s *SigmoidTable) Lookup(v float32) float32 {
	if v > s.maxX {
		return 1
	}
	if v < -s.maxX {
		return 0
	}
	size := len(s.values)
	idx := int((v + s.maxX) * float32(size) / (2 * s.maxX))
	if idx >= size {
		idx = size - 1
	} else if idx < 0 {
		idx = 0
	}
	return s.values[idx]
}
