package model

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/bobonovski/gow2v/corpus"
	"github.com/bobonovski/gow2v/matrix"
)

var constructors = make(map[string]ModelCtor)

// the common interface embedding trainers should follow, one
// instance is one training session
type Model interface {
	// train on one subsampled document with learning rate lr
	Train(doc []uint32, lr float32) error
	// drop words according to the session discard table
	Subsample(doc []uint32) []uint32
	// get the input and context embedding tables
	ExportTables() (*matrix.SparseMatrix, *matrix.SparseMatrix)
	// get the session identity
	ID() uuid.UUID
}

// new trainers should register themselves using this function
func Register(modelType string, m ModelCtor) {
	constructors[modelType] = m
}

type ModelCtor func(cfg Config, alias *corpus.AliasTable, discard corpus.DiscardTable) (Model, error)

func GetModel(modelType string) (ModelCtor, error) {
	if _, ok := constructors[modelType]; !ok {
		return nil, fmt.Errorf("model %s not registered", modelType)
	}
	return constructors[modelType], nil
}
