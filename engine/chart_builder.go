package engine

import (
	"fmt"
	"strconv"

	"github.com/rondas-org/rondas/normalize"
)

// ============================================================================
// CHART BUILDER — AggregateSets → renderer-ready chart data
// ============================================================================
// Pure presentation adapters: labels become human text (Spanish month names,
// shift spellings, rank numbers) and counts become plain value slices. The
// renderer never touches an AggregateSet directly.
// ============================================================================

// Default color palette for chart series.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// ChartData is one single-series chart: parallel labels and values.
type ChartData struct {
	Title  string   `json:"title"`
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
	Colors []string `json:"colors"`
}

// ChartSeries is one named line/bar in a multi-series chart.
type ChartSeries struct {
	Name   string `json:"name"`
	Values []int  `json:"values"`
	Color  string `json:"color"`
}

// MultiChartData is one multi-series chart over a shared label axis.
type MultiChartData struct {
	Title  string        `json:"title"`
	Labels []string      `json:"labels"`
	Series []ChartSeries `json:"series"`
}

func assignColors(n int) []string {
	colors := make([]string, n)
	for i := range colors {
		colors[i] = defaultColors[i%len(defaultColors)]
	}
	return colors
}

// ============================================================================
// PER-TABLE ADAPTERS
// ============================================================================

// MonthPie renders CountByMonth as a pie: Spanish month labels annotated
// with a one-decimal share of the total.
func MonthPie(t *MonthTable) *ChartData {
	chart := &ChartData{
		Title:  "Registros por mes",
		Labels: make([]string, 0, len(t.Rows)),
		Values: make([]int, 0, len(t.Rows)),
	}
	for _, row := range t.Rows {
		pct := float64(row.Count) * 100 / float64(t.Total)
		chart.Labels = append(chart.Labels,
			fmt.Sprintf("%s (%.1f%%)", normalize.MonthLabel(row.Month), pct))
		chart.Values = append(chart.Values, row.Count)
	}
	chart.Colors = assignColors(len(chart.Labels))
	return chart
}

// SectorBars renders CountBySector as a fixed-axis bar chart.
func SectorBars(t *SectorTable) *ChartData {
	chart := &ChartData{
		Title:  "Registros por sector",
		Labels: make([]string, 0, len(t.Sectors)),
		Values: append([]int(nil), t.Counts...),
	}
	for _, s := range t.Sectors {
		chart.Labels = append(chart.Labels, string(s))
	}
	chart.Colors = assignColors(len(chart.Labels))
	return chart
}

// RankingBars renders the entity ranking, numbering each label with its
// rank so truncated axis text still reads.
func RankingBars(ranking []EntityCount, title string) *ChartData {
	chart := &ChartData{
		Title:  title,
		Labels: make([]string, 0, len(ranking)),
		Values: make([]int, 0, len(ranking)),
	}
	for i, e := range ranking {
		label := e.Label
		if label == "" {
			label = e.Key
		}
		chart.Labels = append(chart.Labels, fmt.Sprintf("%d. %s", i+1, label))
		chart.Values = append(chart.Values, e.Count)
	}
	chart.Colors = assignColors(len(chart.Labels))
	return chart
}

// RolePie renders the job-role counts.
func RolePie(rows []RoleCount) *ChartData {
	chart := &ChartData{
		Title:  "Registros por cargo",
		Labels: make([]string, 0, len(rows)),
		Values: make([]int, 0, len(rows)),
	}
	for _, row := range rows {
		chart.Labels = append(chart.Labels, row.Role)
		chart.Values = append(chart.Values, row.Count)
	}
	chart.Colors = assignColors(len(chart.Labels))
	return chart
}

// DailyLine renders one entity's (or the summed) day-by-day series.
func DailyLine(set *AggregateSet, entityID string) *ChartData {
	title := "Registros por día"
	if entityID != "" && entityID != AllToken {
		if name := set.EntityName(entityID); name != "" {
			title = "Registros por día – " + name
		}
	}
	return &ChartData{
		Title:  title,
		Labels: append([]string(nil), set.Dates...),
		Values: set.DailySeries(entityID),
		Colors: assignColors(1),
	}
}

// ShiftChart renders a shift table as one series per shift, each named with
// its display spelling and total, e.g. "TI (41)".
func ShiftChart(t *ShiftTable, title string) *MultiChartData {
	chart := &MultiChartData{
		Title:  title,
		Labels: make([]string, 0, len(t.Rows)),
	}
	for _, row := range t.Rows {
		chart.Labels = append(chart.Labels, row.Bucket)
	}

	for i, shift := range normalize.Shifts() {
		values := make([]int, 0, len(t.Rows))
		for _, row := range t.Rows {
			values = append(values, row.Counts[i])
		}
		chart.Series = append(chart.Series, ChartSeries{
			Name:   fmt.Sprintf("%s (%d)", shift.Label(), t.Totals[i]),
			Values: values,
			Color:  defaultColors[i%len(defaultColors)],
		})
	}
	return chart
}

// HourBars renders the 24-slot hour histogram with zero-padded labels.
func HourBars(hist [24]int) *ChartData {
	chart := &ChartData{
		Title:  "Registros por hora",
		Labels: make([]string, 24),
		Values: hist[:],
	}
	for h := 0; h < 24; h++ {
		chart.Labels[h] = fmt.Sprintf("%02d", h)
	}
	chart.Colors = assignColors(24)
	return chart
}

// WeekdayBars renders the Monday-first weekday histogram.
func WeekdayBars(hist [7]int) *ChartData {
	return &ChartData{
		Title:  "Registros por día de semana",
		Labels: append([]string(nil), normalize.WeekdayLabels...),
		Values: hist[:],
		Colors: assignColors(7),
	}
}

// DayOfMonthBars renders the variable-width day-of-month histogram.
func DayOfMonthBars(hist *DayHistogram) *ChartData {
	chart := &ChartData{
		Title:  "Registros por día del mes",
		Labels: make([]string, len(hist.Counts)),
		Values: append([]int(nil), hist.Counts...),
	}
	for i := range hist.Counts {
		chart.Labels[i] = strconv.Itoa(hist.MinDay + i)
	}
	chart.Colors = assignColors(len(chart.Labels))
	return chart
}

// RankingTitle names the ranking chart after the entity kind.
func RankingTitle(kind EntityKind) string {
	switch kind {
	case EntityLocation:
		return "Ranking de locales"
	case EntitySupervisor:
		return "Ranking de supervisores"
	}
	return "Ranking"
}

// MonthOptions lists the month selector values with display labels,
// ALL first.
func MonthOptions(t *MonthTable) (values, labels []string) {
	values = []string{AllToken}
	labels = []string{"Todos"}
	for _, row := range t.Rows {
		values = append(values, row.Month)
		labels = append(labels, normalize.MonthLabel(row.Month))
	}
	return values, labels
}
