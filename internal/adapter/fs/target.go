package fs

import (
	"fmt"
	"os"
	"path/filepath"

	"bookcheck/internal/domain"
	"bookcheck/internal/port"
)

// ResolveTarget turns a command-line path into the ordered list of files to
// analyze. A directory is walked recursively; a file must itself match the
// walker's patterns. Anything else wraps domain.ErrInvalidTarget.
func ResolveTarget(path string, walker port.FileWalker) ([]port.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidTarget, err)
	}

	if info.IsDir() {
		files, err := walker.Walk(path)
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", path, err)
		}
		return files, nil
	}

	if info.Mode().IsRegular() && walker.Matches(filepath.Base(path)) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}
		return []port.FileInfo{{
			Path:    abs,
			ModTime: info.ModTime().UnixNano(),
			Size:    info.Size(),
		}}, nil
	}

	return nil, fmt.Errorf("%w: %s is not a qualifying file or directory", domain.ErrInvalidTarget, path)
}
