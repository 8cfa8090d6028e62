package matrix

import "errors"

var (
	ErrBadShape    = errors.New("matrix: non-positive dimension not allowed")
	ErrDimMismatch = errors.New("matrix: vector dimension mismatch")
)
