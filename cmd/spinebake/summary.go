package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"spine-mesh-baker/internal/batch"
)

var (
	accent = lipgloss.Color("#7C3AED")
	okFg   = lipgloss.Color("#22C55E")
	errFg  = lipgloss.Color("#EF4444")
	warnFg = lipgloss.Color("#F59E0B")
	dimFg  = lipgloss.Color("#6B7280")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	ruleStyle  = lipgloss.NewStyle().Foreground(dimFg)
	okStyle    = lipgloss.NewStyle().Foreground(okFg)
	errStyle   = lipgloss.NewStyle().Foreground(errFg)
	warnStyle  = lipgloss.NewStyle().Foreground(warnFg)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 1)
)

// summary renders one line per job plus totals inside a box.
func summary(results []batch.Result, elapsed time.Duration) string {
	var b strings.Builder
	baked, surfaces := 0, 0
	for _, r := range results {
		if !r.Success {
			fmt.Fprintf(&b, "%s %s: %s\n", errStyle.Render("FAIL"), r.Name, r.Error)
			continue
		}
		baked++
		n := len(r.Report.Surfaces)
		surfaces += n
		line := fmt.Sprintf("%s %s: %d surfaces, %d verts, %d faces (%s)",
			okStyle.Render("OK  "), r.Name, n, r.Vertices, r.Faces, r.Duration.Round(time.Millisecond))
		if len(r.Report.Skipped) > 0 {
			line += warnStyle.Render(fmt.Sprintf(" skipped %d", len(r.Report.Skipped)))
		}
		b.WriteString(line + "\n")
	}
	fmt.Fprintf(&b, "\nBaked %d/%d jobs, %d surfaces in %.1fs", baked, len(results), surfaces, elapsed.Seconds())
	return boxStyle.Render(b.String())
}
