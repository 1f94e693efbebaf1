package utils

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteOutput_Success(t *testing.T) {
	for _, atomic := range []bool{true, false} {
		path := filepath.Join(t.TempDir(), "out.vdf")
		require.NoError(t, os.WriteFile(path, []byte("old contents that are longer"), 0o644))

		n, err := WriteOutput(path, atomic, func(w io.Writer) error {
			_, err := io.WriteString(w, "new")
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
	}
}

func TestWriteOutput_AtomicFailureKeepsExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.xml")
	require.NoError(t, os.WriteFile(path, []byte("previous"), 0o644))

	boom := errors.New("boom")
	_, err := WriteOutput(path, true, func(w io.Writer) error {
		io.WriteString(w, "partial")
		return boom
	})
	require.ErrorIs(t, err, boom)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file should be removed")
}

func TestWriteOutput_AtomicFailureCreatesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xml")

	_, err := WriteOutput(path, true, func(w io.Writer) error {
		return errors.New("boom")
	})
	require.Error(t, err)
	assert.False(t, FileExists(path))
}

func TestWriteOutput_DirectFailureLeavesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xml")

	_, err := WriteOutput(path, false, func(w io.Writer) error {
		io.WriteString(w, "partial")
		return errors.New("boom")
	})
	require.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "partial", string(data))
}

func TestCreateOutput_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.xml")

	_, err := CreateOutput(path, true)
	assert.Error(t, err)
	_, err = CreateOutput(path, false)
	assert.Error(t, err)
}

func TestReadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.vdf")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))

	data, err := ReadInput(path)
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))

	_, err = ReadInput(path + ".missing")
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = OpenInput(path + ".missing")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".xml", Extension("dir.v1/loc_english.xml"))
	assert.Equal(t, ".VDF", Extension("LOC.VDF"))
	assert.Equal(t, "", Extension("noext"))
}
