package matrix

import (
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/stat/distuv"
)

// SparseMatrix maps word ids to dense float32 rows of a fixed dimension.
// Rows are created on first access and never deleted, so memory grows with
// the number of distinct ids seen. It is not safe for concurrent use.
type SparseMatrix struct {
	dim  int
	rows map[uint32][]float32
	init distuv.Uniform
}

// NewSparseMatrix creates an empty SparseMatrix whose rows have dim
// columns. capacity is only a sizing hint for the number of rows. New rows
// are drawn uniformly from (-0.5/dim, 0.5/dim) using src; a nil src falls
// back to the global source. If dim <= 0, it will panic.
func NewSparseMatrix(dim, capacity int, src rand.Source) *SparseMatrix {
	if dim <= 0 {
		panic(ErrBadShape)
	}
	if capacity < 0 {
		capacity = 0
	}
	bound := 0.5 / float64(dim)
	return &SparseMatrix{
		dim:  dim,
		rows: make(map[uint32][]float32, capacity),
		init: distuv.Uniform{Min: -bound, Max: bound, Src: src},
	}
}

// get the row dimension
func (m *SparseMatrix) Dim() int {
	return m.dim
}

// get the number of materialized rows
func (m *SparseMatrix) Len() int {
	return len(m.rows)
}

// check whether the row of id has been created
func (m *SparseMatrix) Has(id uint32) bool {
	_, ok := m.rows[id]
	return ok
}

// Row returns the row of id, creating and initializing it on first
// access. The returned slice is the stored row, updates through
// ApplyGradient are visible in it.
func (m *SparseMatrix) Row(id uint32) []float32 {
	if row, ok := m.rows[id]; ok {
		return row
	}
	row := make([]float32, m.dim)
	for i := range row {
		row[i] = m.draw()
	}
	m.rows[id] = row
	return row
}

// draw a value strictly inside the init interval after float32 rounding
func (m *SparseMatrix) draw() float32 {
	lo, hi := float32(m.init.Min), float32(m.init.Max)
	for {
		v := float32(m.init.Rand())
		if v > lo && v < hi {
			return v
		}
	}
}

// Set stores a copy of vec as the row of id.
func (m *SparseMatrix) Set(id uint32, vec []float32) error {
	if len(vec) != m.dim {
		return ErrDimMismatch
	}
	row := make([]float32, m.dim)
	copy(row, vec)
	m.rows[id] = row
	return nil
}

// Dot returns the inner product of the row idA of m and the row idB of
// other. Missing rows are created.
func (m *SparseMatrix) Dot(other *SparseMatrix, idA, idB uint32) (float32, error) {
	if other.dim != m.dim {
		return 0, ErrDimMismatch
	}
	return blas32.Dot(m.vector(m.Row(idA)), other.vector(other.Row(idB))), nil
}

// ApplyGradient adds grad element-wise into the row of id.
func (m *SparseMatrix) ApplyGradient(id uint32, grad []float32) error {
	if len(grad) != m.dim {
		return ErrDimMismatch
	}
	blas32.Axpy(1, m.vector(grad), m.vector(m.Row(id)))
	return nil
}

// Ids returns the ids of all materialized rows in ascending order.
func (m *SparseMatrix) Ids() []uint32 {
	ids := make([]uint32, 0, len(m.rows))
	for id := range m.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (m *SparseMatrix) vector(data []float32) blas32.Vector {
	return blas32.Vector{N: m.dim, Data: data, Inc: 1}
}
