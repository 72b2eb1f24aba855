package workspace

import (
	"encoding/base64"
	"fmt"
	"os"
	"unicode/utf8"

	"go.uber.org/zap"
)

// ReadContent loads a whole file. Files on the binary allow-list come back
// base64 encoded; everything else must be valid UTF-8 and is returned as
// text tagged with its language.
func (s *Service) ReadContent(path string) (*FileContent, error) {
	disposition := ClassifyPath(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, readError(err)
	}

	if disposition.Binary {
		s.logger.Debug("Read binary file", zap.String("path", path), zap.Int("size", len(data)))
		return &FileContent{
			Payload:        base64.StdEncoding.EncodeToString(data),
			Representation: BinaryTag,
		}, nil
	}

	if !utf8.Valid(data) {
		return nil, readError(fmt.Errorf("%s: %w", path, ErrInvalidUTF8))
	}

	s.logger.Debug("Read text file",
		zap.String("path", path),
		zap.String("language", disposition.Language),
		zap.Int("size", len(data)),
	)

	return &FileContent{
		Payload:        string(data),
		Representation: disposition.Language,
	}, nil
}
