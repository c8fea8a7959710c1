package spreadsheet

import "strings"

const (
	DefaultBackground = "#FFFFFF"
	DefaultFontColor  = "#000000"
)

// CellStyle is the resolved visual state of a single cell: hex colors with a
// leading '#' and the bold flag. Unstyled cells resolve to a white background
// with black regular text.
type CellStyle struct {
	Background string
	FontColor  string
	Bold       bool
}

// ParseColor normalizes an excelize color string to "#RRGGBB". Excelize
// reports colors as 6-digit RGB or 8-digit ARGB, with or without a leading
// '#'; anything else falls back to the given default.
func ParseColor(raw, fallback string) string {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "#")
	if len(raw) == 8 {
		raw = raw[2:]
	}
	if len(raw) != 6 || !isHex(raw) {
		return fallback
	}
	return "#" + strings.ToUpper(raw)
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
