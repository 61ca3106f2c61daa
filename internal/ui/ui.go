package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Brand colors
var (
	Brand  = color.New(color.FgHiGreen, color.Bold)
	Subtle = color.New(color.FgHiBlack)
	Warn   = color.New(color.FgYellow)
	Info   = color.New(color.FgCyan)
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
)

// Relation colors follow the legend of the graph view.
var relationColors = map[string]*color.Color{
	"polysemi":      color.New(color.FgHiYellow),
	"instantiation": color.New(color.FgHiBlue),
	"subpart":       color.New(color.FgHiGreen),
}

// Selected marks the selected construction.
var Selected = color.New(color.FgHiRed, color.Bold)

// Glyph marks the selected construction in terminal output.
const Glyph = "◉"

// Out is where Banner and Table write.
var Out io.Writer = os.Stdout

// SetColor turns colored output on or off.
func SetColor(enabled bool) {
	color.NoColor = !enabled
}

// Relation colors a relation name.
func Relation(name string) string {
	if c, ok := relationColors[name]; ok {
		return c.Sprint(name)
	}
	return name
}

// Banner prints the cxgraph banner.
func Banner(subtitle string) {
	fmt.Fprintf(Out, "%s %s — %s\n\n", Glyph, Brand.Sprint("cxgraph"), subtitle)
}

// Table prints a simple aligned table.
func Table(headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	// Calculate column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var header, sep strings.Builder
	header.WriteString("  ")
	sep.WriteString("  ")
	for i, h := range headers {
		fmt.Fprintf(&header, "%-*s  ", widths[i], h)
		sep.WriteString(strings.Repeat("─", widths[i]) + "  ")
	}
	Subtle.Fprintln(Out, strings.TrimRight(header.String(), " "))
	Subtle.Fprintln(Out, strings.TrimRight(sep.String(), " "))

	for _, row := range rows {
		var line strings.Builder
		line.WriteString("  ")
		for i, cell := range row {
			if i < len(widths) {
				fmt.Fprintf(&line, "%-*s  ", widths[i], cell)
			}
		}
		fmt.Fprintln(Out, strings.TrimRight(line.String(), " "))
	}
}

// StatusIcon returns a status icon string.
func StatusIcon(ok bool) string {
	if ok {
		return Good.Sprint("✓")
	}
	return Bad.Sprint("✗")
}

// WarnIcon returns a warning icon.
func WarnIcon() string {
	return Warn.Sprint("⚠")
}
