package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFiles(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "responses", "address")

	err := WriteFiles([]GeneratedFile{
		{Dir: dir, Filename: "AddressWsDTO.ejs", Content: []byte("{}\n")},
		{Dir: root, Filename: "CountryWsDTO.ejs", Content: []byte(`{"code":"CH"}`)},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "AddressWsDTO.ejs"))
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))

	data, err = os.ReadFile(filepath.Join(root, "CountryWsDTO.ejs"))
	require.NoError(t, err)
	assert.Equal(t, `{"code":"CH"}`, string(data))
}

func TestWriteFiles_DirIsFile(t *testing.T) {
	root := t.TempDir()
	blocker := filepath.Join(root, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	err := WriteFiles([]GeneratedFile{{Dir: filepath.Join(blocker, "sub"), Filename: "x.ejs"}})
	assert.Error(t, err)
}
