package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtension(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "simple", path: "/ws/main.rs", want: "rs"},
		{name: "uppercase", path: "/ws/IMG.PNG", want: "png"},
		{name: "multiple dots", path: "archive.tar.gz", want: "gz"},
		{name: "no extension", path: "/ws/Makefile", want: ""},
		{name: "hidden without extension", path: "/home/me/.bashrc", want: ""},
		{name: "hidden with extension", path: ".eslintrc.json", want: "json"},
		{name: "trailing dot", path: "notes.", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extension(tt.path))
		})
	}
}

func TestClassifyBinaryAllowList(t *testing.T) {
	want := []string{"bmp", "fbx", "gif", "glb", "gltf", "jpeg", "jpg", "obj", "png", "stl", "webp"}
	assert.Equal(t, want, BinaryExtensions())

	for _, ext := range want {
		d := Classify(ext)
		assert.True(t, d.Binary, ext)
		assert.Equal(t, BinaryTag, d.Tag(), ext)
	}
}

func TestClassifyLanguages(t *testing.T) {
	tests := map[string]string{
		"js":   "javascript",
		"jsx":  "javascript",
		"ts":   "typescript",
		"tsx":  "typescript",
		"rs":   "rust",
		"py":   "python",
		"json": "json",
		"md":   "markdown",
		"css":  "css",
		"html": "html",
		"xml":  "xml",
		"yaml": "yaml",
		"yml":  "yaml",
		"go":   "plaintext",
		"txt":  "plaintext",
		"svg":  "plaintext",
		"":     "plaintext",
	}

	for ext, lang := range tests {
		d := Classify(ext)
		assert.False(t, d.Binary, ext)
		assert.Equal(t, lang, d.Language, ext)
		assert.Equal(t, lang, d.Tag(), ext)
	}
}

func TestClassifyPath(t *testing.T) {
	assert.Equal(t, "python", ClassifyPath("/ws/a.py").Tag())
	assert.Equal(t, BinaryTag, ClassifyPath("/ws/Model.GLB").Tag())
	assert.Equal(t, PlaintextTag, ClassifyPath("/ws/.gitignore").Tag())
}

func TestLanguageTableIsCopy(t *testing.T) {
	table := LanguageTable()
	table["rs"] = "changed"

	assert.Equal(t, "rust", LanguageFor("rs"))
	assert.Len(t, LanguageTable(), 13)
}
