package workspace

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadContentText(t *testing.T) {
	root := t.TempDir()
	tests := []struct {
		file     string
		content  string
		language string
	}{
		{file: "a.py", content: "print(1)", language: "python"},
		{file: "main.rs", content: "fn main() {}\n", language: "rust"},
		{file: "App.TSX", content: "export const App = () => null", language: "typescript"},
		{file: "config.yml", content: "key: value\n", language: "yaml"},
		{file: "notes.txt", content: "héllo wörld", language: "plaintext"},
		{file: "Makefile", content: "all:\n\tgo build\n", language: "plaintext"},
		{file: "empty.json", content: "", language: "json"},
	}

	svc := New(Options{})
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := filepath.Join(root, tt.file)
			writeFile(t, path, []byte(tt.content))

			got, err := svc.ReadContent(path)
			require.NoError(t, err)
			assert.Equal(t, tt.content, got.Payload)
			assert.Equal(t, tt.language, got.Representation)
			assert.False(t, got.IsBinary())
		})
	}
}

func TestReadContentBinary(t *testing.T) {
	root := t.TempDir()
	data := []byte{0xFF, 0xD8, 0x00, 0x10, 0x89}

	svc := New(Options{})
	for _, ext := range BinaryExtensions() {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(root, "asset."+ext)
			writeFile(t, path, data)

			got, err := svc.ReadContent(path)
			require.NoError(t, err)
			assert.Equal(t, BinaryTag, got.Representation)
			assert.True(t, got.IsBinary())

			decoded, err := base64.StdEncoding.DecodeString(got.Payload)
			require.NoError(t, err)
			assert.Equal(t, data, decoded)
		})
	}
}

func TestReadContentScenarioImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.png")
	writeFile(t, path, []byte{0xFF, 0xD8})

	got, err := New(Options{}).ReadContent(path)
	require.NoError(t, err)
	assert.Equal(t, &FileContent{Payload: base64.StdEncoding.EncodeToString([]byte("\xFF\xD8")), Representation: "binary"}, got)
}

func TestReadContentInvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blob.txt")
	writeFile(t, path, []byte{0xFF, 0xFE, 0xFD})

	got, err := New(Options{}).ReadContent(path)
	assert.Nil(t, got)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidUTF8)

	var readErr *ReadError
	require.ErrorAs(t, err, &readErr)
	assert.Contains(t, readErr.Message, "blob.txt")
}

func TestReadContentMissing(t *testing.T) {
	tests := []string{"missing.rs", "missing.png"}

	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			got, err := New(Options{}).ReadContent(path)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, os.ErrNotExist)

			var readErr *ReadError
			require.ErrorAs(t, err, &readErr)
			assert.Contains(t, readErr.Message, "no such file or directory")
		})
	}
}

func TestReadContentDirectory(t *testing.T) {
	_, err := New(Options{}).ReadContent(t.TempDir())
	assert.Error(t, err)
}

func TestWriteThenReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "round.md")
	svc := New(Options{})

	text := "# Title\n\nunicode: ✓ λ 日本語\n"
	require.NoError(t, svc.Write(path, text))

	got, err := svc.ReadContent(path)
	require.NoError(t, err)
	assert.Equal(t, text, got.Payload)
	assert.Equal(t, "markdown", got.Representation)
}
