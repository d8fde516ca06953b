package generator

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// LoadExamples reads one reference caption per line, dropping blank lines.
// A missing file yields no examples and no error.
func LoadExamples(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read examples: %w", err)
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if t := strings.TrimSpace(line); t != "" {
			lines = append(lines, t)
		}
	}
	return lines, nil
}

// sample picks up to n distinct examples.
func (g *implGenerator) sample(examples []string, n int) []string {
	if n > len(examples) {
		n = len(examples)
	}
	out := make([]string, 0, n)
	for _, i := range g.rng.Perm(len(examples))[:n] {
		out = append(out, examples[i])
	}
	return out
}
