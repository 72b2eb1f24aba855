package workspace

import (
	"path/filepath"
	"sort"
	"strings"
)

// PlaintextTag is the language for any unrecognized extension
const PlaintextTag = "plaintext"

// binaryExtensions is the closed set of media and 3D asset formats read as base64
var binaryExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
	"webp": {},
	"bmp":  {},
	"glb":  {},
	"gltf": {},
	"obj":  {},
	"fbx":  {},
	"stl":  {},
}

var languageByExtension = map[string]string{
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
}

// Disposition is the binary/text decision for an extension
type Disposition struct {
	Binary   bool
	Language string
}

// Tag returns the representation tag for the disposition
func (d Disposition) Tag() string {
	if d.Binary {
		return BinaryTag
	}
	return d.Language
}

// Extension returns the lowercased extension of path without the dot.
// A leading dot alone does not start an extension, so ".bashrc" has none.
func Extension(path string) string {
	name := filepath.Base(path)
	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 {
		return ""
	}
	return strings.ToLower(name[idx+1:])
}

// Classify maps a lowercased extension to its disposition
func Classify(ext string) Disposition {
	if _, ok := binaryExtensions[ext]; ok {
		return Disposition{Binary: true}
	}
	return Disposition{Language: LanguageFor(ext)}
}

// ClassifyPath classifies path by its extension
func ClassifyPath(path string) Disposition {
	return Classify(Extension(path))
}

// LanguageFor returns the language tag for ext, or plaintext
func LanguageFor(ext string) string {
	if lang, ok := languageByExtension[ext]; ok {
		return lang
	}
	return PlaintextTag
}

// BinaryExtensions returns the binary allow-list, sorted
func BinaryExtensions() []string {
	exts := make([]string, 0, len(binaryExtensions))
	for ext := range binaryExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// LanguageTable returns a copy of the extension to language table
func LanguageTable() map[string]string {
	table := make(map[string]string, len(languageByExtension))
	for ext, lang := range languageByExtension {
		table[ext] = lang
	}
	return table
}
