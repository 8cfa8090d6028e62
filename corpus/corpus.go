package corpus

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/golang/glog"
)

type Corpus struct {
	VocabSize     uint32
	DocNum        uint32
	NumTrainWords int64
	Docs          []*Document
}

// ordered word ids of one document
type Document struct {
	DocId uint32
	Words []uint32
}

// load training data from file, the file format should be like:
// [docId wordId wordId ... wordId]
// documents keep the file order and the word order inside each line.
// lines without any word are skipped.
func (this *Corpus) Load(fn string) error {
	f, err := os.Open(fn)
	if err != nil {
		return err
	}
	defer f.Close()

	vocabMaxId := uint32(0)
	lineIdx := 0

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lineIdx += 1
		vals := strings.Fields(scanner.Text())
		if len(vals) < 2 {
			log.Warningf("bad document at %s:%d", fn, lineIdx)
			continue
		}

		docId, err := strconv.ParseUint(vals[0], 10, 32)
		if err != nil {
			return fmt.Errorf("%s:%d: bad document id: %w", fn, lineIdx, err)
		}

		doc := &Document{
			DocId: uint32(docId),
			Words: make([]uint32, 0, len(vals)-1),
		}
		for _, v := range vals[1:] {
			wordId, err := strconv.ParseUint(v, 10, 32)
			if err != nil {
				return fmt.Errorf("%s:%d: bad word id: %w", fn, lineIdx, err)
			}
			doc.Words = append(doc.Words, uint32(wordId))
			if uint32(wordId) > vocabMaxId {
				vocabMaxId = uint32(wordId)
			}
		}

		this.Docs = append(this.Docs, doc)
		this.DocNum += uint32(1)
		this.NumTrainWords += int64(len(doc.Words))
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if this.DocNum > 0 && vocabMaxId+1 > this.VocabSize {
		this.VocabSize = vocabMaxId + 1
	}

	log.Infof("number of documents %d", this.DocNum)
	log.Infof("number of words %d", this.NumTrainWords)
	log.Infof("vocabulary size %d", this.VocabSize)
	return nil
}

// Split distributes the documents round-robin over n partitions. Every
// partition shares the vocabulary size of the whole corpus.
func (this *Corpus) Split(n int) []*Corpus {
	if n < 1 {
		n = 1
	}
	parts := make([]*Corpus, n)
	for i := range parts {
		parts[i] = &Corpus{VocabSize: this.VocabSize}
	}
	for i, doc := range this.Docs {
		p := parts[i%n]
		p.Docs = append(p.Docs, doc)
		p.DocNum += uint32(1)
		p.NumTrainWords += int64(len(doc.Words))
	}
	return parts
}
