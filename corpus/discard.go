package corpus

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/golang/glog"
)

// DiscardTable maps word ids to the probability of keeping the word when
// subsampling. Missing ids are always kept.
type DiscardTable map[uint32]float32

// get the retention probability of wordId
func (this DiscardTable) Retention(wordId uint32) float32 {
	if p, ok := this[wordId]; ok {
		return p
	}
	return 1.0
}

// load discard table from file, the file format should be like:
// [wordId retention]
func LoadDiscardTable(fn string) (DiscardTable, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	table := make(DiscardTable)
	lineIdx := 0

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineIdx += 1
		vals := strings.Fields(scanner.Text())
		if len(vals) == 0 {
			continue
		}
		if len(vals) != 2 {
			log.Warningf("bad discard entry at %s:%d", fn, lineIdx)
			continue
		}
		wordId, err := strconv.ParseUint(vals[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: bad word id: %w", fn, lineIdx, err)
		}
		p, err := strconv.ParseFloat(vals[1], 32)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: bad retention: %w", fn, lineIdx, err)
		}
		if p < 0 || p > 1 {
			return nil, fmt.Errorf("%s:%d: retention %v outside [0, 1]", fn, lineIdx, p)
		}
		table[uint32(wordId)] = float32(p)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	log.Infof("discard table size %d", len(table))
	return table, nil
}
