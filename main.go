package main

import (
	"flag"
	"fmt"
	"net/http"
	"sync"

	"github.com/cheggaaa/pb/v3"
	log "github.com/golang/glog"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bobonovski/gow2v/corpus"
	"github.com/bobonovski/gow2v/matrix"
	"github.com/bobonovski/gow2v/model"
	"github.com/bobonovski/gow2v/sstable"
)

var (
	input       = flag.String("input_file", "", "input training file")
	aliasFile   = flag.String("alias_file", "", "negative sampling alias table")
	discardFile = flag.String("discard_file", "", "subsampling retention table, optional")
	output      = flag.String("output", "vectors", "output file prefix")
	initVectors = flag.String("init_vectors", "", "warm start from the .in and .ctx files with this prefix, optional")
	modelType   = flag.String("model", "skipgram", "model type")
	dim         = flag.Int("dim", 100, "embedding dimension")
	win         = flag.Int("win", 5, "maximum context window radius")
	neg         = flag.Int("neg", 5, "negative samples per context word")
	alpha       = flag.Float64("alpha", 0.025, "starting learning rate")
	iteration   = flag.Int("iter", 5, "number of iteration")
	seed        = flag.Uint64("seed", 0, "random seed, 0 seeds from the clock")
	partitions  = flag.Int("partitions", 1, "number of independently trained partitions")
	tableSize   = flag.Int("sigmoid_table_size", model.DefaultSigmoidTableSize, "sigmoid lookup table size")
	maxSigmoid  = flag.Float64("max_sigmoid", model.DefaultMaxSigmoid, "sigmoid lookup table bound")
	metricsAddr = flag.String("metrics_addr", "", "serve prometheus metrics on this address")
)

func main() {
	flag.Parse()
	defer log.Flush()

	if *metricsAddr != "" {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(*metricsAddr, nil); err != nil {
				log.Errorf("metrics server: %v", err)
			}
		}()
	}

	// read training data
	data := &corpus.Corpus{}
	if err := data.Load(*input); err != nil {
		log.Exitf("load corpus: %v", err)
	}
	alias, err := corpus.LoadAliasTable(*aliasFile)
	if err != nil {
		log.Exitf("load alias table: %v", err)
	}
	var discard corpus.DiscardTable
	if *discardFile != "" {
		if discard, err = corpus.LoadDiscardTable(*discardFile); err != nil {
			log.Exitf("load discard table: %v", err)
		}
	}

	cfg := model.DefaultConfig()
	cfg.Dim = *dim
	cfg.Win = *win
	cfg.Neg = *neg
	cfg.Seed = *seed
	cfg.SigmoidTableSize = *tableSize
	cfg.MaxSigmoid = float32(*maxSigmoid)
	cfg.VocabSize = data.VocabSize
	if maxId := alias.MaxAlias(); maxId >= cfg.VocabSize {
		cfg.VocabSize = maxId + 1
	}
	cfg.CapacityHint = int(cfg.VocabSize)

	var initIn, initCtx *matrix.SparseMatrix
	if *initVectors != "" {
		if initIn, err = sstable.EmbeddingDeserialize(*initVectors + ".in"); err != nil {
			log.Exitf("load initial vectors: %v", err)
		}
		if initCtx, err = sstable.EmbeddingDeserialize(*initVectors + ".ctx"); err != nil {
			log.Exitf("load initial vectors: %v", err)
		}
	}

	parts := data.Split(*partitions)
	bar := pb.StartNew(int(data.NumTrainWords) * *iteration)
	errs := make([]error, len(parts))
	wg := sync.WaitGroup{}
	for i, part := range parts {
		wg.Add(1)
		go func(i int, part *corpus.Corpus) {
			defer wg.Done()
			p := &model.Partition{
				ID:            i,
				Alias:         alias,
				Discard:       discard,
				NumTrainWords: part.NumTrainWords,
			}
			errs[i] = train(p, part, cfg, initIn, initCtx, bar)
		}(i, part)
	}
	wg.Wait()
	bar.Finish()

	for i, err := range errs {
		if err != nil {
			log.Exitf("partition %d: %v", i, err)
		}
	}
}

// train one partition for all iterations and save its tables
func train(p *model.Partition, part *corpus.Corpus, cfg model.Config,
	initIn, initCtx *matrix.SparseMatrix, bar *pb.ProgressBar) error {
	tr, err := model.NewTrainer(*modelType, cfg)
	if err != nil {
		return err
	}
	if initIn != nil {
		if err := tr.WarmStart(initIn, initCtx); err != nil {
			return err
		}
	}

	decay := model.LinearDecay{
		Start: float32(*alpha),
		Total: int64(*iteration) * p.NumTrainWords,
	}
	processed := int64(0)
	for iterIdx := 0; iterIdx < *iteration; iterIdx += 1 {
		for _, doc := range part.Docs {
			lr := decay.Rate(processed)
			if err := tr.Process(p, doc.Words, lr); err != nil {
				if tr.Model() == nil {
					return err
				}
				log.Warningf("partition %d: document %d skipped: %v", p.ID, doc.DocId, err)
			}
			processed += int64(len(doc.Words))
			bar.Add(len(doc.Words))
		}
		log.Infof("partition %d: iter %d done, learning rate %f",
			p.ID, iterIdx, decay.Rate(processed))
	}

	if tr.Model() == nil {
		log.Warningf("partition %d: no documents", p.ID)
		return nil
	}
	prefix := *output
	if *partitions > 1 {
		prefix = fmt.Sprintf("%s.%d", *output, p.ID)
	}
	in, ctx := tr.Model().ExportTables()
	if err := sstable.EmbeddingSerialize(in, prefix+".in"); err != nil {
		return err
	}
	if err := sstable.EmbeddingSerialize(ctx, prefix+".ctx"); err != nil {
		return err
	}
	log.Infof("partition %d: saved %d input and %d context vectors to %s",
		p.ID, in.Len(), ctx.Len(), prefix)
	return nil
}
