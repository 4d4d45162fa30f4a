package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rondas-org/rondas/engine"
	"github.com/rondas-org/rondas/normalize"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// renderText writes a terminal summary of one aggregate snapshot.
func renderText(set *engine.AggregateSet, clusters []engine.Cluster) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Registros por mes") + "\n")
	if len(set.CountByMonth.Rows) == 0 {
		b.WriteString(dimStyle.Render("  (sin datos)") + "\n")
	}
	for _, row := range set.CountByMonth.Rows {
		pct := float64(row.Count) * 100 / float64(set.CountByMonth.Total)
		fmt.Fprintf(&b, "  %s  %s\n",
			labelStyle.Render(fmt.Sprintf("%-14s", normalize.MonthLabel(row.Month))),
			valueStyle.Render(fmt.Sprintf("%6d  (%.1f%%)", row.Count, pct)))
	}

	b.WriteString("\n" + headerStyle.Render("Registros por sector") + "\n")
	for i, s := range set.CountBySector.Sectors {
		fmt.Fprintf(&b, "  %s  %s\n",
			labelStyle.Render(fmt.Sprintf("%-14s", string(s))),
			valueStyle.Render(fmt.Sprintf("%6d", set.CountBySector.Counts[i])))
	}

	b.WriteString("\n" + headerStyle.Render(engine.RankingTitle(set.Entity)) + "\n")
	if len(set.Ranking) == 0 {
		b.WriteString(dimStyle.Render("  (sin datos)") + "\n")
	}
	for i, e := range set.Ranking {
		name := e.Label
		if name == "" {
			name = e.Key
		}
		fmt.Fprintf(&b, "  %s  %s\n",
			labelStyle.Render(fmt.Sprintf("%2d. %-28s", i+1, name)),
			valueStyle.Render(fmt.Sprintf("%6d", e.Count)))
	}

	b.WriteString("\n" + headerStyle.Render("Puntos de concentración") + "\n")
	if len(clusters) == 0 {
		b.WriteString(dimStyle.Render("  (ninguno)") + "\n")
	}
	for i, c := range clusters {
		fmt.Fprintf(&b, "  %s  %s\n",
			labelStyle.Render(fmt.Sprintf("%2d. %.6f, %.6f", i+1, c.Centroid.Lat, c.Centroid.Lng)),
			valueStyle.Render(fmt.Sprintf("%d registros", c.Size)))
	}

	return b.String()
}
