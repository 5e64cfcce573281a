package csv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		opts        []Option
		wantHeaders []string
		wantLen     int
		wantErr     bool
	}{
		{
			name:        "with header",
			input:       "gender, hired\nA, 1\nB, 0\n",
			wantHeaders: []string{"gender", "hired"},
			wantLen:     2,
		},
		{
			name:        "without header",
			input:       "A,1\nB,0\n",
			opts:        []Option{WithHeader(false)},
			wantHeaders: []string{"0", "1"},
			wantLen:     2,
		},
		{
			name:        "semicolon delimiter",
			input:       "gender;hired\nA;1\n",
			opts:        []Option{WithDelimiter(';')},
			wantHeaders: []string{"gender", "hired"},
			wantLen:     1,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
		{
			name:    "ragged rows",
			input:   "a,b\n1\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromReader(strings.NewReader(tt.input), tt.opts...)
			defer r.Close()

			tbl, err := r.Read()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHeaders, tbl.Headers())
			assert.Equal(t, tt.wantLen, tbl.Len())
		})
	}
}

func TestReadFileTSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hiring.tsv")
	require.NoError(t, os.WriteFile(path, []byte("gender\thired\nA\t1\n"), 0o644))

	tbl, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"gender", "hired"}, tbl.Headers())

	col, err := tbl.Column("hired")
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, col)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
