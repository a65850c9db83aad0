package session

import (
	"github.com/unkn0wn-root/walle/internal/history"
	"github.com/unkn0wn-root/walle/internal/render"
)

// Entry converts a finished run into a history record for file.
func (r Result) Entry(file string) history.Entry {
	diags := make([]string, len(r.Diagnostics))
	copy(diags, r.Diagnostics)
	return history.Entry{
		File:        file,
		Size:        r.Grid.Size,
		Status:      string(r.Status),
		Diagnostics: diags,
		Steps:       r.Steps,
		Statements:  r.Statements,
		Duration:    r.Duration,
		Canvas:      render.ASCII(r.Grid),
	}
}
