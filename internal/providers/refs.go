package providers

import (
	"fmt"
	"os"
	"path/filepath"
)

// LoadReferences reads each reference image into memory, preserving input
// order. It fails fast on the first missing path and rejects more than
// MaxReferences entries outright rather than silently truncating. Runs
// before any network I/O.
func LoadReferences(paths []string) ([]FileInput, error) {
	if len(paths) > MaxReferences {
		return nil, ErrTooManyReferences
	}

	references := make([]FileInput, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("reference image not found: %s: %w", path, err)
			}
			return nil, fmt.Errorf("failed to read reference image %s: %w", path, err)
		}
		references = append(references, FileInput{
			Data:     data,
			Filename: filepath.Base(path),
		})
	}
	return references, nil
}
