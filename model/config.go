package model

import "fmt"

const (
	DefaultSigmoidTableSize = 1000
	DefaultMaxSigmoid       = 6.0
	DefaultMaxSampleRetries = 10000
)

// Config holds the constants fixed for the lifetime of a training session.
type Config struct {
	Dim       int    // embedding dimension
	Win       int    // upper bound of the dynamic window radius
	Neg       int    // negative samples per positive pair
	VocabSize uint32 // word ids must be below this bound

	SigmoidTableSize int
	MaxSigmoid       float32

	// rejection cap of the negative sampler before it gives up
	MaxSampleRetries int
	// expected number of distinct words, only used to presize the tables
	CapacityHint int
	// 0 seeds from the clock
	Seed uint64
}

func DefaultConfig() Config {
	return Config{
		Dim:              100,
		Win:              5,
		Neg:              5,
		SigmoidTableSize: DefaultSigmoidTableSize,
		MaxSigmoid:       DefaultMaxSigmoid,
		MaxSampleRetries: DefaultMaxSampleRetries,
	}
}

// Validate reports the first configuration error found.
func (c Config) Validate() error {
	if c.Dim <= 0 {
		return fmt.Errorf("%w: %d", ErrBadDim, c.Dim)
	}
	if c.Win <= 0 {
		return fmt.Errorf("%w: %d", ErrBadWindow, c.Win)
	}
	if c.Neg < 0 {
		return fmt.Errorf("%w: %d", ErrBadNegative, c.Neg)
	}
	if c.VocabSize == 0 {
		return ErrBadVocab
	}
	if c.SigmoidTableSize <= 0 || c.MaxSigmoid <= 0 {
		return fmt.Errorf("%w: size %d, bound %v", ErrBadSigmoid, c.SigmoidTableSize, c.MaxSigmoid)
	}
	return nil
}
