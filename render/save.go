package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// OutputFileName derives the export file name from the period, e.g.
// "weekly_report_5_9_May_2025.html".
func OutputFileName(dateRange, ext string) string {
	sanitized := strings.NewReplacer(" ", "_", "-", "_").Replace(dateRange)
	return fmt.Sprintf("weekly_report_%s.%s", sanitized, ext)
}

// SaveDocument writes the HTML document into dir, creating it if needed, and
// returns the written path.
func SaveDocument(dir, dateRange, html string) (string, error) {
	return save(dir, OutputFileName(dateRange, "html"), html)
}

// SaveText writes the plain-text export. It embeds the same table markup so
// the file can be pasted into the chat client directly.
func SaveText(dir, dateRange, html string) (string, error) {
	return save(dir, OutputFileName(dateRange, "txt"), html)
}

func save(dir, name, content string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write export %s: %w", path, err)
	}
	return path, nil
}
