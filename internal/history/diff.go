package history

import (
	"strings"

	udiff "github.com/aymanbagabas/go-udiff"
)

// Diff renders a unified diff of two runs' canvases. It returns "" when the
// canvases are identical.
func Diff(prev, cur Entry) string {
	left := ensureTrailingNewline(prev.Canvas)
	right := ensureTrailingNewline(cur.Canvas)
	if left == right {
		return ""
	}
	return udiff.Unified(diffLabel(prev), diffLabel(cur), left, right)
}

func diffLabel(e Entry) string {
	label := e.File
	if label == "" {
		label = "canvas"
	}
	if !e.ExecutedAt.IsZero() {
		label += " @ " + e.ExecutedAt.Format("2006-01-02 15:04:05")
	}
	return label
}

func ensureTrailingNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
