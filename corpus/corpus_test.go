package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fn, []byte(content), 0o644))
	return fn
}

func TestCorpusLoad(t *testing.T) {
	fn := writeTempFile(t, "docs.txt", "0 3 1 4 1 5\n1\n7 2 6\n")

	data := &Corpus{}
	require.NoError(t, data.Load(fn))

	assert.Equal(t, uint32(2), data.DocNum)
	assert.Equal(t, uint32(7), data.VocabSize)
	assert.Equal(t, int64(7), data.NumTrainWords)
	require.Len(t, data.Docs, 2)
	assert.Equal(t, uint32(0), data.Docs[0].DocId)
	assert.Equal(t, []uint32{3, 1, 4, 1, 5}, data.Docs[0].Words)
	assert.Equal(t, uint32(7), data.Docs[1].DocId)
	assert.Equal(t, []uint32{2, 6}, data.Docs[1].Words)
}

func TestCorpusLoadBadWord(t *testing.T) {
	fn := writeTempFile(t, "docs.txt", "0 1 x 2\n")

	data := &Corpus{}
	assert.Error(t, data.Load(fn))
}

func TestCorpusSplit(t *testing.T) {
	data := &Corpus{VocabSize: 10}
	for i := uint32(0); i < 5; i += 1 {
		data.Docs = append(data.Docs, &Document{DocId: i, Words: []uint32{i, i}})
	}

	parts := data.Split(2)
	require.Len(t, parts, 2)
	assert.Equal(t, uint32(3), parts[0].DocNum)
	assert.Equal(t, uint32(2), parts[1].DocNum)
	assert.Equal(t, int64(6), parts[0].NumTrainWords)
	assert.Equal(t, uint32(10), parts[1].VocabSize)
	assert.Equal(t, uint32(1), parts[1].Docs[0].DocId)
}

func TestLoadAliasTable(t *testing.T) {
	fn := writeTempFile(t, "alias.txt", "1 0.5 0\n0 1.0 0\n2 0.25 4\n")

	table, err := LoadAliasTable(fn)
	require.NoError(t, err)

	assert.Equal(t, 3, table.Size())
	assert.Equal(t, []float32{1.0, 0.5, 0.25}, table.Prob)
	assert.Equal(t, []uint32{0, 0, 4}, table.Alias)
	assert.Equal(t, uint32(4), table.MaxAlias())
}

func TestLoadAliasTableErrors(t *testing.T) {
	cases := map[string]string{
		"empty":     "",
		"gap":       "0 1.0 0\n2 1.0 0\n",
		"duplicate": "0 1.0 0\n0 0.5 0\n",
		"fields":    "0 1.0\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadAliasTable(writeTempFile(t, "alias.txt", content))
			assert.Error(t, err)
		})
	}
}

func TestDiscardTable(t *testing.T) {
	fn := writeTempFile(t, "discard.txt", "3 0.25\nbroken\n5 0\n")

	table, err := LoadDiscardTable(fn)
	require.NoError(t, err)

	assert.Len(t, table, 2)
	assert.Equal(t, float32(0.25), table.Retention(3))
	assert.Equal(t, float32(0), table.Retention(5))
	assert.Equal(t, float32(1.0), table.Retention(42))

	_, err = LoadDiscardTable(writeTempFile(t, "discard.txt", "1 1.5\n"))
	assert.Error(t, err)
}
