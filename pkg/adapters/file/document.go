package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aretw0/unixtime/pkg/domain"
)

// ParseRange parses "start:end" byte offsets. A single offset "n" means an
// empty range at n.
func ParseRange(s string) (domain.Range, error) {
	startStr, endStr, found := strings.Cut(strings.TrimSpace(s), ":")
	start, err := strconv.Atoi(startStr)
	if err != nil {
		return domain.Range{}, fmt.Errorf("invalid range %q: %w", s, err)
	}
	end := start
	if found {
		if end, err = strconv.Atoi(endStr); err != nil {
			return domain.Range{}, fmt.Errorf("invalid range %q: %w", s, err)
		}
	}
	if start < 0 || end < start {
		return domain.Range{}, fmt.Errorf("invalid range %q: want 0 <= start <= end", s)
	}
	return domain.Range{Start: start, End: end}, nil
}

// writeAtomic replaces path with data via a temp file in the same directory.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	// Same directory so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // no-op once renamed
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
