package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"hiring.csv":   "gender,hired\nA,1\nB,0\n",
		"hiring.tsv":   "gender\thired\nA\t1\nB\t0\n",
		"hiring.json":  `[{"gender":"A","hired":1},{"gender":"B","hired":0}]`,
		"hiring.jsonl": "{\"gender\":\"A\",\"hired\":1}\n{\"gender\":\"B\",\"hired\":0}\n",
	}

	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

			tbl, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, []string{"gender", "hired"}, tbl.Headers())
			assert.Equal(t, 2, tbl.Len())
		})
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)

	path := filepath.Join(dir, "data.parquet")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	_, err = Load(path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
