package ioyaml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

func TestFileReader_file(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: a\ncount: 2\n"), 0o644))

	var fr FileReader[doc]
	fr.SetPath(path)

	got, err := fr.Read()
	require.NoError(t, err)
	assert.Equal(t, doc{Name: "a", Count: 2}, got)
}

func TestFileReader_json_is_yaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name": "b", "count": 3}`), 0o644))

	var fr FileReader[doc]
	fr.SetPath(path)

	got, err := fr.Read()
	require.NoError(t, err)
	assert.Equal(t, doc{Name: "b", Count: 3}, got)
}

func TestFileReader_unknown_field(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.yaml")
	require.NoError(t, os.WriteFile(path, []byte("nam: a\n"), 0o644))

	var fr FileReader[doc]
	fr.SetPath(path)

	_, err := fr.Read()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode YAML")
}

func TestFileReader_stdin_pipe(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	_, err = w.WriteString("name: piped\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	fr := FileReader[doc]{stdin: r}
	got, err := fr.Read()
	require.NoError(t, err)
	assert.Equal(t, "piped", got.Name)
}

func TestFileReader_missing_file(t *testing.T) {
	var fr FileReader[doc]
	fr.SetPath(filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := fr.Read()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open file")
}
