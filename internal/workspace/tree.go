package workspace

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	"go.uber.org/zap"
)

// HiddenMarker prefixes names excluded from enumeration
const HiddenMarker = "."

// IsHidden reports whether a file or directory name carries the hidden marker
func IsHidden(name string) bool {
	return strings.HasPrefix(name, HiddenMarker)
}

// ListTree enumerates every visible node strictly below root.
//
// Hidden directories are pruned, so nothing beneath them is reported even
// when a descendant's own name is visible. Entries whose metadata cannot be
// read (for example, removed mid-walk) are dropped instead of failing the
// listing. The result is sorted by relative path.
func (s *Service) ListTree(ctx context.Context, root string) ([]DirectoryEntry, error) {
	root = filepath.Clean(root)

	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ReadError{Message: fmt.Sprintf("path does not exist: %s", root), Err: err}
		}
		return nil, readError(err)
	}

	entries := []DirectoryEntry{}
	if !info.IsDir() {
		return entries, nil
	}

	var mu sync.Mutex
	conf := fastwalk.Config{Follow: false}

	err = fastwalk.Walk(&conf, root, func(p string, d fs.DirEntry, err error) error {
		// Check for context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil || p == root {
			return nil
		}

		name := d.Name()
		if IsHidden(name) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return nil
		}

		if s.excluded(relPath) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		stat, statErr := os.Stat(p)
		if statErr != nil {
			s.logger.Debug("Dropping unreadable entry", zap.String("path", p), zap.Error(statErr))
			return nil
		}

		kind := KindFile
		if stat.IsDir() {
			kind = KindDirectory
		}

		mu.Lock()
		entries = append(entries, DirectoryEntry{
			Name:         name,
			RelativePath: relPath,
			Kind:         kind,
		})
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, readError(err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].RelativePath < entries[j].RelativePath
	})

	return entries, nil
}

func (s *Service) excluded(relPath string) bool {
	slashed := filepath.ToSlash(relPath)
	for _, pattern := range s.exclude {
		if ok, _ := doublestar.Match(pattern, slashed); ok {
			return true
		}
	}
	return false
}
