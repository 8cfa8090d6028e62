package sstable

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/golang/glog"

	"github.com/bobonovski/gow2v/matrix"
)

// the header row count is untrusted, it only sizes the initial map up to this
const maxPreallocRows = 1 << 16

// serialize embedding rows to file, the file format is like:
// [rows,dim] followed by one [wordId,v1,...,vdim] line per row
// in ascending word id order
func EmbeddingSerialize(m *matrix.SparseMatrix, fn string) error {
	out, err := os.OpenFile(fn, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	// write the matrix shape
	fmt.Fprintf(w, "%d,%d\n", m.Len(), m.Dim())

	var line strings.Builder
	for _, id := range m.Ids() {
		line.Reset()
		line.WriteString(strconv.FormatUint(uint64(id), 10))
		for _, val := range m.Row(id) {
			line.WriteString(fmt.Sprintf(",%e", val))
		}
		line.WriteByte('\n')
		if _, err := w.WriteString(line.String()); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return out.Close()
}

// deserialize embedding rows from file
func EmbeddingDeserialize(fn string) (*matrix.SparseMatrix, error) {
	file, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	lineIdx := 0
	rows := 0
	var tmp *matrix.SparseMatrix

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		txt := scanner.Text()
		lineIdx += 1
		if tmp == nil {
			shape := strings.Split(txt, ",")
			if len(shape) != 2 {
				return nil, fmt.Errorf("model corrupted, shape not found: %s", txt)
			}
			row, err := strconv.ParseUint(shape[0], 10, 32)
			if err != nil {
				return nil, err
			}
			dim, err := strconv.ParseUint(shape[1], 10, 32)
			if err != nil {
				return nil, err
			}
			if dim == 0 {
				return nil, matrix.ErrBadShape
			}
			rows = int(row)
			tmp = matrix.NewSparseMatrix(int(dim), min(rows, maxPreallocRows), nil)
			continue
		}

		value := strings.Split(txt, ",")
		if len(value) != tmp.Dim()+1 {
			log.Warningf("data corrupted, row %d, data %s", lineIdx, txt)
			continue
		}
		id, err := strconv.ParseUint(value[0], 10, 32)
		if err != nil {
			return nil, err
		}
		vec := make([]float32, tmp.Dim())
		for i, v := range value[1:] {
			val, err := strconv.ParseFloat(v, 32)
			if err != nil {
				return nil, err
			}
			vec[i] = float32(val)
		}
		if err := tmp.Set(uint32(id), vec); err != nil {
			return nil, err
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if tmp == nil {
		return nil, fmt.Errorf("model corrupted, empty file: %s", fn)
	}
	if tmp.Len() != rows {
		log.Warningf("%s: expected %d rows, read %d", fn, rows, tmp.Len())
	}

	return tmp, nil
}
