package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// TimestampLayout is the minute-resolution stamp used in output names.
const TimestampLayout = "060102_1504"

const maxRunFolderAttempts = 1000

// RunFolder is the output directory of one run.
type RunFolder struct {
	Path        string
	Screenshots string
}

// CreateRunFolder claims run_<stamp> under base. When that name is taken in
// the same minute, _2, _3, ... is appended so runs never share a folder.
func CreateRunFolder(base string, now time.Time) (RunFolder, error) {
	if err := os.MkdirAll(base, 0755); err != nil {
		return RunFolder{}, fmt.Errorf("create output base: %w", err)
	}

	name := "run_" + now.Format(TimestampLayout)
	for n := 1; n <= maxRunFolderAttempts; n++ {
		candidate := name
		if n > 1 {
			candidate = fmt.Sprintf("%s_%d", name, n)
		}
		path := filepath.Join(base, candidate)

		err := os.Mkdir(path, 0755)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return RunFolder{}, fmt.Errorf("create run folder: %w", err)
		}

		shots := filepath.Join(path, "screenshots")
		if err := os.Mkdir(shots, 0755); err != nil {
			return RunFolder{}, fmt.Errorf("create screenshots folder: %w", err)
		}
		return RunFolder{Path: path, Screenshots: shots}, nil
	}

	return RunFolder{}, fmt.Errorf("create run folder: %s already used %d times", name, maxRunFolderAttempts)
}
