package model

import (
	"fmt"
	"math/rand/v2"
	"time"

	log "github.com/golang/glog"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/blas/blas32"

	"github.com/bobonovski/gow2v/corpus"
	"github.com/bobonovski/gow2v/matrix"
)

func init() {
	Register("skipgram", NewSkipGram)
}

// SkipGram is one skip-gram negative sampling training session. It owns
// the embedding tables, the negative sampler and the random source, and
// is not safe for concurrent use.
type SkipGram struct {
	id      uuid.UUID
	cfg     Config
	rng     *rand.Rand
	sigmoid *SigmoidTable
	sampler *AliasSampler
	discard corpus.DiscardTable

	in  *matrix.SparseMatrix // input word vectors
	ctx *matrix.SparseMatrix // context word vectors

	// gradient buffers reused across pairs
	inGrad  []float32
	ctxGrad []float32
}

// NewSkipGram creates a training session over the given alias and discard
// tables. Every word the alias table can produce must be inside
// cfg.VocabSize. A nil discard table keeps every word.
func NewSkipGram(cfg Config, alias *corpus.AliasTable, discard corpus.DiscardTable) (Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	sampler, err := NewAliasSampler(alias, rng, cfg.MaxSampleRetries)
	if err != nil {
		return nil, err
	}
	if maxId := alias.MaxAlias(); maxId >= cfg.VocabSize {
		return nil, fmt.Errorf("%w: word %d outside vocabulary of %d",
			ErrBadAliasTable, maxId, cfg.VocabSize)
	}
	if discard == nil {
		discard = corpus.DiscardTable{}
	}

	sg := &SkipGram{
		id:      uuid.New(),
		cfg:     cfg,
		rng:     rng,
		sigmoid: NewSigmoidTable(cfg.SigmoidTableSize, cfg.MaxSigmoid),
		sampler: sampler,
		discard: discard,
		in:      matrix.NewSparseMatrix(cfg.Dim, cfg.CapacityHint, rng),
		ctx:     matrix.NewSparseMatrix(cfg.Dim, cfg.CapacityHint, rng),
		inGrad:  make([]float32, cfg.Dim),
		ctxGrad: make([]float32, cfg.Dim),
	}
	sessionCounter.Inc()
	log.Infof("session %s: dim %d, win %d, neg %d, vocabulary %d, alias bins %d",
		sg.id, cfg.Dim, cfg.Win, cfg.Neg, cfg.VocabSize, sampler.Size())
	return sg, nil
}

func (this *SkipGram) ID() uuid.UUID {
	return this.id
}

func (this *SkipGram) Config() Config {
	return this.cfg
}

func (this *SkipGram) ExportTables() (*matrix.SparseMatrix, *matrix.SparseMatrix) {
	return this.in, this.ctx
}

// Subsample keeps each word with its retention probability.
func (this *SkipGram) Subsample(doc []uint32) []uint32 {
	kept := make([]uint32, 0, len(doc))
	for _, w := range doc {
		if p := this.discard.Retention(w); p < 1 && p < this.rng.Float32() {
			continue
		}
		kept = append(kept, w)
	}
	return kept
}

// Train runs one pass of skip-gram with negative sampling over doc. The
// window radius of every position is drawn uniformly from [1, win]. The
// document is validated before any update; a sampler failure stops the
// pass and keeps the updates already applied.
func (this *SkipGram) Train(doc []uint32, lr float32) error {
	if len(doc) == 0 {
		errorCounter.WithLabelValues("empty").Inc()
		return ErrEmptyDocument
	}
	if !(lr > 0) {
		errorCounter.WithLabelValues("learning_rate").Inc()
		return fmt.Errorf("%w: %v", ErrBadLearningRate, lr)
	}
	for i, w := range doc {
		if w >= this.cfg.VocabSize {
			errorCounter.WithLabelValues("out_of_range").Inc()
			return fmt.Errorf("%w: word %d at position %d, vocabulary %d",
				ErrWordOutOfRange, w, i, this.cfg.VocabSize)
		}
	}

	positive, negative := 0, 0
	defer func() {
		recordPairs(positive, negative)
	}()

	docLength := len(doc)
	for inputPos, w := range doc {
		windowSize := 1 + this.rng.IntN(this.cfg.Win)

		for contextPos := inputPos - windowSize; contextPos <= inputPos+windowSize; contextPos += 1 {
			if contextPos == inputPos || contextPos < 0 || contextPos >= docLength {
				continue
			}
			c := doc[contextPos]

			if err := this.update(w, c, 1, lr); err != nil {
				return err
			}
			positive += 1

			for d := 0; d < this.cfg.Neg; d += 1 {
				target, err := this.sampler.Sample(c)
				if err != nil {
					errorCounter.WithLabelValues("sampler").Inc()
					log.Warningf("session %s: aborting document: %v", this.id, err)
					return err
				}
				if err := this.update(w, target, 0, lr); err != nil {
					return err
				}
				negative += 1
			}
		}
	}

	documentCounter.Inc()
	if log.V(2) {
		log.Infof("session %s: trained %d words, %d positive and %d negative pairs",
			this.id, docLength, positive, negative)
	}
	return nil
}

// update moves the input row of w and the context row of target along the
// logistic gradient. Both gradients are taken from the rows as they were
// before this update.
func (this *SkipGram) update(w, target uint32, label, lr float32) error {
	dot, err := this.in.Dot(this.ctx, w, target)
	if err != nil {
		return err
	}
	g := lr * (label - this.sigmoid.Lookup(dot))

	copy(this.inGrad, this.ctx.Row(target))
	copy(this.ctxGrad, this.in.Row(w))
	blas32.Scal(g, blas32.Vector{N: this.cfg.Dim, Data: this.inGrad, Inc: 1})
	blas32.Scal(g, blas32.Vector{N: this.cfg.Dim, Data: this.ctxGrad, Inc: 1})

	if err := this.in.ApplyGradient(w, this.inGrad); err != nil {
		return err
	}
	return this.ctx.ApplyGradient(target, this.ctxGrad)
}
