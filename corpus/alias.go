package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/golang/glog"
)

// AliasTable holds the precomputed alias-method arrays of the negative
// sampling distribution. Bin i yields i with probability Prob[i] and
// Alias[i] otherwise.
type AliasTable struct {
	Prob  []float32
	Alias []uint32
}

// get the number of bins
func (this *AliasTable) Size() int {
	return len(this.Prob)
}

// MaxAlias returns the largest word id the table can produce.
func (this *AliasTable) MaxAlias() uint32 {
	maxId := uint32(0)
	if len(this.Prob) > 0 {
		maxId = uint32(len(this.Prob) - 1)
	}
	for _, a := range this.Alias {
		if a > maxId {
			maxId = a
		}
	}
	return maxId
}

// load alias table from file, the file format should be like:
// [index prob alias]
// indices must be dense and start from 0, in any order.
func LoadAliasTable(fn string) (*AliasTable, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	prob := make(map[uint32]float32)
	alias := make(map[uint32]uint32)
	lineIdx := 0

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineIdx += 1
		vals := strings.Fields(scanner.Text())
		if len(vals) == 0 {
			continue
		}
		if len(vals) != 3 {
			return nil, fmt.Errorf("%s:%d: alias bin needs 3 fields, got %d", fn, lineIdx, len(vals))
		}
		idx, err := strconv.ParseUint(vals[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: bad index: %w", fn, lineIdx, err)
		}
		p, err := strconv.ParseFloat(vals[1], 32)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: bad probability: %w", fn, lineIdx, err)
		}
		a, err := strconv.ParseUint(vals[2], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: bad alias: %w", fn, lineIdx, err)
		}
		if _, ok := prob[uint32(idx)]; ok {
			return nil, fmt.Errorf("%s:%d: duplicate index %d", fn, lineIdx, idx)
		}
		prob[uint32(idx)] = float32(p)
		alias[uint32(idx)] = uint32(a)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(prob) == 0 {
		return nil, errors.New("alias table is empty")
	}

	table := &AliasTable{
		Prob:  make([]float32, len(prob)),
		Alias: make([]uint32, len(prob)),
	}
	for i := range table.Prob {
		p, ok := prob[uint32(i)]
		if !ok {
			return nil, fmt.Errorf("%s: missing alias bin %d", fn, i)
		}
		table.Prob[i] = p
		table.Alias[i] = alias[uint32(i)]
	}

	log.Infof("alias table size %d", table.Size())
	return table, nil
}
