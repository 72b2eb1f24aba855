package workspace

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireOperationError(t *testing.T, err error, code ErrorCode) *OperationError {
	t.Helper()
	require.Error(t, err)

	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, code, opErr.Code)
	assert.NotEmpty(t, opErr.Message)
	return opErr
}

func TestWriteTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	svc := New(Options{})

	require.NoError(t, svc.Write(path, "a much longer first version"))
	require.NoError(t, svc.Write(path, "short"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "short", string(data))
}

func TestWriteMissingParent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "file.txt")

	err := New(Options{}).Write(path, "x")
	opErr := requireOperationError(t, err, CodeWrite)
	assert.ErrorIs(t, opErr, os.ErrNotExist)
}

func TestCreateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.rs")
	svc := New(Options{})

	require.NoError(t, svc.CreateFile(path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())

	// existing contents are truncated
	require.NoError(t, os.WriteFile(path, []byte("fn main() {}"), 0o644))
	require.NoError(t, svc.CreateFile(path))
	info, err = os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestCreateFileMissingParent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "new.rs")

	err := New(Options{}).CreateFile(path)
	requireOperationError(t, err, CodeCreate)
}

func TestCreateDirectoryIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "c")
	svc := New(Options{})

	require.NoError(t, svc.CreateDirectory(path))
	require.NoError(t, svc.CreateDirectory(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCreateDirectoryOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	writeFile(t, path, []byte("x"))

	err := New(Options{}).CreateDirectory(path)
	requireOperationError(t, err, CodeCreateDir)
}

func TestDeleteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doomed.txt")
	writeFile(t, path, []byte("x"))

	require.NoError(t, New(Options{}).Delete(path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteDirectoryRecursive(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "tree")
	writeFile(t, filepath.Join(dir, "a", "b", "c.txt"), []byte("x"))
	writeFile(t, filepath.Join(dir, ".hidden"), []byte("x"))

	require.NoError(t, New(Options{}).Delete(dir))
	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ghost")

	err := New(Options{}).Delete(path)
	opErr := requireOperationError(t, err, CodeDelete)
	assert.ErrorIs(t, opErr, os.ErrNotExist)
}

func TestErrorJSONShapes(t *testing.T) {
	opErr := &OperationError{Message: "permission denied", Code: CodeDelete}
	data, err := json.Marshal(opErr)
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"permission denied","code":"DELETE_ERROR"}`, string(data))

	readErr := &ReadError{Message: "path does not exist: /ws"}
	data, err = json.Marshal(readErr)
	require.NoError(t, err)
	assert.Equal(t, `"path does not exist: /ws"`, string(data))
}
