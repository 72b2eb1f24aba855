package workspace

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-enry/go-enry/v2"
	"github.com/saintfish/chardet"
	"go.uber.org/zap"
)

// sampleSize bounds the bytes read for charset and linguist detection
const sampleSize = 8 * 1024

// Inspect reports metadata for path without loading the whole file
func (s *Service) Inspect(path string) (*PathInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, readError(err)
	}

	result := &PathInfo{
		Name:     info.Name(),
		Path:     path,
		Size:     info.Size(),
		IsDir:    info.IsDir(),
		Mode:     info.Mode().String(),
		Modified: info.ModTime(),
	}
	if info.IsDir() {
		return result, nil
	}

	ext := Extension(path)
	disposition := Classify(ext)
	result.Extension = ext
	result.Language = disposition.Tag()
	result.Disposition = "text"
	if disposition.Binary {
		result.Disposition = BinaryTag
	}

	mime, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, readError(err)
	}
	result.MIMEType = mime.String()

	sample, err := readSample(path)
	if err != nil {
		return nil, readError(err)
	}

	if lang := enry.GetLanguage(filepath.Base(path), sample); lang != "" {
		result.Linguist = lang
		result.LinguistType = languageTypeToString(enry.GetLanguageType(lang))
	}

	if !disposition.Binary && len(sample) > 0 {
		detected, err := chardet.NewTextDetector().DetectBest(sample)
		if err != nil {
			s.logger.Debug("Charset detection failed", zap.String("path", path), zap.Error(err))
		} else {
			result.Charset = detected.Charset
			result.CharsetConfidence = detected.Confidence
		}
	}

	return result, nil
}

func readSample(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, sampleSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf[:n], nil
}

// languageTypeToString converts enry.Type to string (programming, data, markup, prose)
func languageTypeToString(t enry.Type) string {
	switch t {
	case enry.Programming:
		return "programming"
	case enry.Data:
		return "data"
	case enry.Markup:
		return "markup"
	case enry.Prose:
		return "prose"
	default:
		return "unknown"
	}
}
