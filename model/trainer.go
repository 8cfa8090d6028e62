package model

import (
	"fmt"

	log "github.com/golang/glog"

	"github.com/bobonovski/gow2v/corpus"
	"github.com/bobonovski/gow2v/matrix"
)

// used when the seed derived for a partition wraps around to zero, which
// would otherwise mean seeding from the clock
const wrappedSeed uint64 = 0x9e3779b97f4a7c15

// Partition is the per-session input handed over by the data source. A
// change of ID starts a new session.
type Partition struct {
	ID            int
	Alias         *corpus.AliasTable
	Discard       corpus.DiscardTable
	NumTrainWords int64
}

// Trainer feeds a stream of documents into the session of their
// partition. Replicas for different partitions should use separate
// Trainers; a Trainer is not safe for concurrent use.
type Trainer struct {
	ctor      ModelCtor
	cfg       Config
	model     Model
	partition *Partition
	words     int64

	// initial vectors copied into every new session
	initIn  *matrix.SparseMatrix
	initCtx *matrix.SparseMatrix
}

func NewTrainer(modelType string, cfg Config) (*Trainer, error) {
	ctor, err := GetModel(modelType)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Trainer{ctor: ctor, cfg: cfg}, nil
}

// Process subsamples doc and trains the session of p on what is left. A
// document emptied by subsampling is skipped.
func (this *Trainer) Process(p *Partition, doc []uint32, lr float32) error {
	if p == nil {
		errorCounter.WithLabelValues("partition").Inc()
		return ErrNilPartition
	}
	if this.partition == nil || this.partition.ID != p.ID {
		if err := this.reset(p); err != nil {
			return err
		}
	}

	this.words += int64(len(doc))
	kept := this.model.Subsample(doc)
	if len(kept) == 0 {
		return nil
	}
	return this.model.Train(kept, lr)
}

// reset builds the session of p and only then replaces the current one,
// so a failed reset leaves no half-built state behind.
func (this *Trainer) reset(p *Partition) error {
	cfg := this.cfg
	cfg.Seed = this.sessionSeed(p.ID)
	m, err := this.ctor(cfg, p.Alias, p.Discard)
	if err != nil {
		return fmt.Errorf("partition %d: %w", p.ID, err)
	}
	if this.initIn != nil {
		in, ctx := m.ExportTables()
		if err := copyRows(in, this.initIn); err != nil {
			return fmt.Errorf("partition %d: %w", p.ID, err)
		}
		if err := copyRows(ctx, this.initCtx); err != nil {
			return fmt.Errorf("partition %d: %w", p.ID, err)
		}
	}

	if this.partition != nil {
		log.Infof("partition %d replaces %d, dropping session %s",
			p.ID, this.partition.ID, this.model.ID())
	}
	this.model = m
	this.partition = p
	this.words = 0
	return nil
}

// sessionSeed derives the seed of partition id. A zero configured seed
// keeps seeding every session from the clock.
func (this *Trainer) sessionSeed(id int) uint64 {
	if this.cfg.Seed == 0 {
		return 0
	}
	seed := this.cfg.Seed + uint64(id)
	if seed == 0 {
		seed = wrappedSeed
	}
	return seed
}

// WarmStart makes every session created from now on start from the rows of
// in and ctx instead of random vectors. Words missing from them are still
// initialized lazily. The current session is left untouched. in and ctx
// are only read, so Trainers of different partitions may share them.
func (this *Trainer) WarmStart(in, ctx *matrix.SparseMatrix) error {
	if in == nil || ctx == nil {
		return fmt.Errorf("warm start: %w", matrix.ErrBadShape)
	}
	for _, table := range []*matrix.SparseMatrix{in, ctx} {
		if table.Dim() != this.cfg.Dim {
			return fmt.Errorf("warm start: %w: dim %d, want %d",
				matrix.ErrDimMismatch, table.Dim(), this.cfg.Dim)
		}
		if ids := table.Ids(); len(ids) > 0 && ids[len(ids)-1] >= this.cfg.VocabSize {
			return fmt.Errorf("warm start: %w: word %d, vocabulary %d",
				ErrWordOutOfRange, ids[len(ids)-1], this.cfg.VocabSize)
		}
	}
	this.initIn, this.initCtx = in, ctx
	log.Infof("warm start with %d input and %d context vectors", in.Len(), ctx.Len())
	return nil
}

func copyRows(dst, src *matrix.SparseMatrix) error {
	for _, id := range src.Ids() {
		if err := dst.Set(id, src.Row(id)); err != nil {
			return err
		}
	}
	return nil
}

// get the session of the current partition, nil before the first document
func (this *Trainer) Model() Model {
	return this.model
}

func (this *Trainer) Partition() *Partition {
	return this.partition
}

// get the number of words received for the current partition before subsampling
func (this *Trainer) Words() int64 {
	return this.words
}
