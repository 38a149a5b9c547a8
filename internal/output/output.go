// Package output derives output paths for generated images and writes them
// to disk. Path resolution is pure; the filesystem is only touched in Write.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultDir receives generated images when no explicit output path is given.
const DefaultDir = "generated"

const maxSlugLen = 50 // runes

var (
	// Letters and digits in any script survive, not just ASCII.
	stripPattern    = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	collapsePattern = regexp.MustCompile(`[-\s]+`)
)

// Slug derives a filesystem-safe, lowercase, hyphenated name from free text.
// Deterministic: the same prompt always yields the same slug.
func Slug(text string) string {
	s := stripPattern.ReplaceAllString(text, "")
	s = strings.ToLower(strings.TrimSpace(s))
	s = collapsePattern.ReplaceAllString(s, "-")
	if r := []rune(s); len(r) > maxSlugLen {
		s = string(r[:maxSlugLen])
	}
	s = strings.Trim(s, "-")
	if s == "" {
		return "untitled"
	}
	return s
}

// Resolve picks the output path. An explicit path is used verbatim;
// otherwise the prompt slug plus the detected extension lands under
// DefaultDir. No filesystem access happens here.
func Resolve(explicit, prompt, ext string) string {
	if explicit != "" {
		return explicit
	}
	return filepath.Join(DefaultDir, Slug(prompt)+ext)
}

// Write creates parent directories as needed and writes the image bytes,
// silently overwriting an existing file.
func Write(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	return nil
}
