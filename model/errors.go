package model

import "errors"

// configuration errors, no session is created
var (
	ErrBadDim        = errors.New("model: dim must be positive")
	ErrBadWindow     = errors.New("model: win must be positive")
	ErrBadNegative   = errors.New("model: neg must be non-negative")
	ErrBadSigmoid    = errors.New("model: sigmoid table size and bound must be positive")
	ErrBadVocab      = errors.New("model: vocabulary size must be positive")
	ErrBadAliasTable = errors.New("model: malformed alias table")
)

// per call errors, the session stays usable
var (
	ErrEmptyDocument     = errors.New("model: empty document")
	ErrWordOutOfRange    = errors.New("model: word id out of vocabulary range")
	ErrBadLearningRate   = errors.New("model: learning rate must be positive")
	ErrDegenerateSampler = errors.New("model: negative sampler cannot avoid excluded word")
	ErrNilPartition      = errors.New("model: nil partition")
)
