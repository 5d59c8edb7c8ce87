// Package markdown writes the collected dataset links of a run to disk.
package markdown

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var nameReplacer = strings.NewReplacer("/", "_", "\\", "_")

// FileName returns the artifact name for industry. Path separators are
// replaced so the file always lands in the output directory.
func FileName(industry string) string {
	return nameReplacer.Replace(industry) + "_resources.md"
}

// Save truncates (or creates) {industry}_resources.md in dir and writes a
// heading followed by one bullet per link. It returns the written path.
func Save(dir, industry string, links []string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(dir, FileName(industry))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "# Resource Links for %s\n\n", industry)
	for _, link := range links {
		fmt.Fprintf(w, "- %s\n", link)
	}
	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}
