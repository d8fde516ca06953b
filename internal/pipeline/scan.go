package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanVideos lists files in dir whose extension matches ext, sorted by name.
// Hidden files and directories are ignored.
func ScanVideos(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputDir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if IsVideo(e.Name(), ext) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}

// IsVideo reports whether name carries the container extension ext.
func IsVideo(name, ext string) bool {
	return strings.EqualFold(filepath.Ext(name), ext)
}

// CountVideos is ScanVideos for callers that only need the number.
func CountVideos(dir, ext string) int {
	files, err := ScanVideos(dir, ext)
	if err != nil {
		return 0
	}
	return len(files)
}
