package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultDirectory is where reports land unless configured otherwise.
const DefaultDirectory = "result"

// Write persists the report body under dir, creating the directory if
// needed, and returns the written path. Persistence is the one failure
// that surfaces to the caller instead of degrading into the document.
func Write(rep *Report, dir string) (string, error) {
	if dir == "" {
		dir = DefaultDirectory
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}

	filename := fmt.Sprintf("hardware_report_%s_%s.md",
		sanitizeLabel(rep.MachineLabel), rep.GeneratedAt.Format("20060102_150405"))
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(rep.Body), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// sanitizeLabel makes a machine label safe for a filename: whitespace
// and path separators become underscores, an empty label becomes
// "unnamed_pc".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unnamed_pc"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '/', '\\', ':':
			return '_'
		}
		return r
	}, label)
}
