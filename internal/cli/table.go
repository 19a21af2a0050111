package cli

import (
	"fmt"
	"strings"

	"github.com/roach88/boostcard/internal/engine"
	"github.com/roach88/boostcard/internal/selection"
)

// TableWidths sets the column widths of the selection table.
type TableWidths struct {
	Selection int
	Order     int
	Mono      int
}

// DefaultTableWidths is used when RootOptions.Widths is zero.
var DefaultTableWidths = TableWidths{Selection: 20, Order: 7, Mono: 6}

// Header returns the table header line.
func (w TableWidths) Header() string {
	return fmt.Sprintf("%-*s|%s|%s| %s",
		w.Selection, "SELECTION",
		center("ORDER", w.Order),
		center("MONO", w.Mono),
		"FILL",
	)
}

// Row renders one fitted selection. Only intervals carry a monotonicity;
// the column is blank for other kinds.
func (w TableWidths) Row(f engine.Fitted) string {
	mono := ""
	if iv, ok := selection.Deref(f.Selection).(selection.Interval); ok {
		mono = fmt.Sprint(int(iv.Monotonicity()))
	}
	return fmt.Sprintf("%-*s|%s|%s| %s",
		w.Selection, f.Selection.String(),
		center(fmt.Sprint(f.Selection.Order()), w.Order),
		center(mono, w.Mono),
		f.Fill.String(),
	)
}

// Table renders fs, one row per selection, under a header.
func (w TableWidths) Table(fs []engine.Fitted) string {
	var b strings.Builder
	b.WriteString(w.Header())
	for _, f := range fs {
		b.WriteByte('\n')
		b.WriteString(w.Row(f))
	}
	return b.String()
}

// center pads s on both sides to width; extra padding goes to the right.
func center(s string, width int) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
