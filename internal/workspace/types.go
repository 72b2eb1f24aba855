package workspace

import (
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

// EntryKind is the filesystem kind of a DirectoryEntry
type EntryKind string

const (
	KindDirectory EntryKind = "directory"
	KindFile      EntryKind = "file"
)

// BinaryTag is the representation sentinel for base64 payloads
const BinaryTag = "binary"

// DirectoryEntry is one visible node below an enumeration root
type DirectoryEntry struct {
	Name         string    `json:"name"`
	RelativePath string    `json:"path"`
	Kind         EntryKind `json:"entry_type"`
}

// FileContent is a single file read. Payload holds base64 when
// Representation is BinaryTag and decoded UTF-8 text otherwise.
type FileContent struct {
	Payload        string `json:"content"`
	Representation string `json:"language"`
}

// IsBinary reports whether the payload is base64 encoded
func (f *FileContent) IsBinary() bool {
	return f.Representation == BinaryTag
}

// PathInfo describes a single path for the inspect command
type PathInfo struct {
	Name              string    `json:"name"`
	Path              string    `json:"path"`
	Size              int64     `json:"size"`
	IsDir             bool      `json:"is_dir"`
	Mode              string    `json:"mode"`
	Modified          time.Time `json:"modified"`
	Extension         string    `json:"extension,omitempty"`
	Disposition       string    `json:"disposition,omitempty"`
	Language          string    `json:"language,omitempty"`
	MIMEType          string    `json:"mime_type,omitempty"`
	Charset           string    `json:"charset,omitempty"`
	CharsetConfidence int       `json:"charset_confidence,omitempty"`
	Linguist          string    `json:"linguist,omitempty"`
	LinguistType      string    `json:"linguist_type,omitempty"`
}

// Options configures a Service
type Options struct {
	// ExcludePatterns are doublestar globs matched against the slash form of
	// each relative path during enumeration.
	ExcludePatterns []string
	Logger          *zap.Logger
}

// Service implements the workspace file operations
type Service struct {
	exclude []string
	logger  *zap.Logger
}

// New creates a workspace service. Invalid exclude patterns are dropped
// with a warning.
func New(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	exclude := make([]string, 0, len(opts.ExcludePatterns))
	for _, pattern := range opts.ExcludePatterns {
		if !doublestar.ValidatePattern(pattern) {
			logger.Warn("Ignoring invalid exclude pattern", zap.String("pattern", pattern))
			continue
		}
		exclude = append(exclude, pattern)
	}

	return &Service{
		exclude: exclude,
		logger:  logger.Named("workspace"),
	}
}
