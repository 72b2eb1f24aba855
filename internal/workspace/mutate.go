package workspace

import (
	"os"

	"go.uber.org/zap"
)

const (
	fileMode = 0o644
	dirMode  = 0o755
)

// Write replaces the contents of path, creating the file when missing
func (s *Service) Write(path, content string) error {
	if err := os.WriteFile(path, []byte(content), fileMode); err != nil {
		return operationError(CodeWrite, err)
	}
	s.logger.Debug("Wrote file", zap.String("path", path), zap.Int("size", len(content)))
	return nil
}

// CreateFile creates an empty file at path, truncating any existing one
func (s *Service) CreateFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return operationError(CodeCreate, err)
	}
	if err := f.Close(); err != nil {
		return operationError(CodeCreate, err)
	}
	s.logger.Debug("Created file", zap.String("path", path))
	return nil
}

// CreateDirectory creates path and any missing parents. It succeeds when
// the directory already exists.
func (s *Service) CreateDirectory(path string) error {
	if err := os.MkdirAll(path, dirMode); err != nil {
		return operationError(CodeCreateDir, err)
	}
	s.logger.Debug("Created directory", zap.String("path", path))
	return nil
}

// Delete removes a file, or a directory together with everything below it.
//
// The directory probe and the removal are separate syscalls. If path is
// replaced in between, the removal may take the wrong branch and fail; the
// failure is reported, not retried.
func (s *Service) Delete(path string) error {
	info, statErr := os.Stat(path)

	var err error
	if statErr == nil && info.IsDir() {
		err = os.RemoveAll(path)
	} else {
		err = os.Remove(path)
	}
	if err != nil {
		return operationError(CodeDelete, err)
	}

	s.logger.Debug("Deleted path", zap.String("path", path))
	return nil
}
