package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"time"

	"github.com/google/uuid"

	"github.com/rondas-org/rondas/engine"
)

// ============================================================================
// HTML REPORT — self-contained Chart.js dashboard from one AggregateSet
// ============================================================================
// The output is a single file: styles inline, Chart.js from the CDN, chart
// data embedded as JSON. It renders offline copies of what the live server
// shows, so field staff can mail a snapshot around.
// ============================================================================

type htmlData struct {
	Title       string
	ReportID    string
	GeneratedAt string
	EntityLabel string

	TotalRecords int
	MonthCount   int
	EntityCount  int
	ClusterCount int

	Charts   template.JS // JSON array of single-series charts
	Shifts   template.JS // JSON multi-series shift chart
	Clusters template.JS // JSON cluster list for the table
}

// Generate renders the dashboard HTML for one aggregate snapshot.
func Generate(set *engine.AggregateSet, clusters []engine.Cluster, title string) (string, error) {
	charts := []*engine.ChartData{
		engine.MonthPie(set.CountByMonth),
		engine.SectorBars(set.CountBySector),
		engine.RankingBars(set.Ranking, engine.RankingTitle(set.Entity)),
		engine.DailyLine(set, engine.AllToken),
		engine.HourBars(set.HourHistogram),
		engine.WeekdayBars(set.WeekdayHistogram),
		engine.DayOfMonthBars(set.DayOfMonth),
		engine.RolePie(set.CountByRole),
	}

	chartsJSON, err := json.Marshal(charts)
	if err != nil {
		return "", fmt.Errorf("marshal charts: %w", err)
	}

	shift := set.ShiftByMonth
	shiftTitle := "Turnos por mes"
	if set.ShiftByDay != nil {
		shift = set.ShiftByDay
		shiftTitle = "Turnos por día"
	}
	shiftJSON, err := json.Marshal(engine.ShiftChart(shift, shiftTitle))
	if err != nil {
		return "", fmt.Errorf("marshal shift chart: %w", err)
	}

	if clusters == nil {
		clusters = []engine.Cluster{}
	}
	clustersJSON, err := json.Marshal(clusters)
	if err != nil {
		return "", fmt.Errorf("marshal clusters: %w", err)
	}

	total := 0
	for _, row := range set.CountByMonth.Rows {
		total += row.Count
	}

	data := htmlData{
		Title:        title,
		ReportID:     uuid.NewString(),
		GeneratedAt:  time.Now().Format("2006-01-02 15:04:05"),
		EntityLabel:  engine.RankingTitle(set.Entity),
		TotalRecords: total,
		MonthCount:   len(set.CountByMonth.Rows),
		EntityCount:  len(set.Ranking),
		ClusterCount: len(clusters),
		Charts:       template.JS(chartsJSON),
		Shifts:       template.JS(shiftJSON),
		Clusters:     template.JS(clustersJSON),
	}

	tmpl, err := template.New("report").Parse(htmlTemplate)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<script src="https://cdn.jsdelivr.net/npm/chart.js"></script>
<style>
  body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 0; background: #f3f4f6; color: #111827; }
  header { background: #1e3a8a; color: #fff; padding: 20px 28px; }
  header h1 { margin: 0 0 4px; font-size: 22px; }
  header .meta { font-size: 12px; opacity: .75; }
  .stats { display: grid; grid-template-columns: repeat(auto-fit, minmax(160px, 1fr)); gap: 12px; padding: 20px 28px 0; }
  .stat { background: #fff; border-radius: 8px; padding: 14px 16px; box-shadow: 0 1px 2px rgba(0,0,0,.06); }
  .stat .value { font-size: 26px; font-weight: 700; color: #1e3a8a; }
  .stat .label { font-size: 12px; color: #6b7280; }
  .grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(420px, 1fr)); gap: 16px; padding: 20px 28px; }
  .card { background: #fff; border-radius: 8px; padding: 16px; box-shadow: 0 1px 2px rgba(0,0,0,.06); }
  .card h2 { margin: 0 0 12px; font-size: 15px; color: #374151; }
  canvas { width: 100% !important; }
  table { width: 100%; border-collapse: collapse; font-size: 13px; }
  th, td { text-align: left; padding: 6px 8px; border-bottom: 1px solid #e5e7eb; }
  th { color: #6b7280; font-weight: 600; }
</style>
</head>
<body>
<header>
  <h1>{{.Title}}</h1>
  <div class="meta">Reporte {{.ReportID}} · generado {{.GeneratedAt}}</div>
</header>

<div class="stats">
  <div class="stat"><div class="value">{{.TotalRecords}}</div><div class="label">Registros</div></div>
  <div class="stat"><div class="value">{{.MonthCount}}</div><div class="label">Meses</div></div>
  <div class="stat"><div class="value">{{.EntityCount}}</div><div class="label">{{.EntityLabel}}</div></div>
  <div class="stat"><div class="value">{{.ClusterCount}}</div><div class="label">Puntos de concentración</div></div>
</div>

<div class="grid">
  <div class="card"><h2 id="title-0"></h2><canvas id="chart-0"></canvas></div>
  <div class="card"><h2 id="title-1"></h2><canvas id="chart-1"></canvas></div>
  <div class="card"><h2 id="title-2"></h2><canvas id="chart-2"></canvas></div>
  <div class="card"><h2 id="title-3"></h2><canvas id="chart-3"></canvas></div>
  <div class="card"><h2 id="title-4"></h2><canvas id="chart-4"></canvas></div>
  <div class="card"><h2 id="title-5"></h2><canvas id="chart-5"></canvas></div>
  <div class="card"><h2 id="title-6"></h2><canvas id="chart-6"></canvas></div>
  <div class="card"><h2 id="title-7"></h2><canvas id="chart-7"></canvas></div>
  <div class="card"><h2 id="shift-title"></h2><canvas id="chart-shifts"></canvas></div>
  <div class="card">
    <h2>Puntos de concentración</h2>
    <table id="cluster-table">
      <thead><tr><th>#</th><th>Lat</th><th>Lng</th><th>Registros</th></tr></thead>
      <tbody></tbody>
    </table>
  </div>
</div>

<script>
const charts = {{.Charts}};
const shifts = {{.Shifts}};
const clusters = {{.Clusters}};

const kinds = ["pie", "bar", "bar", "line", "bar", "bar", "bar", "pie"];

charts.forEach((c, i) => {
  document.getElementById("title-" + i).textContent = c.title;
  new Chart(document.getElementById("chart-" + i), {
    type: kinds[i],
    data: {
      labels: c.labels,
      datasets: [{
        data: c.values,
        backgroundColor: kinds[i] === "line" ? c.colors[0] : c.colors,
        borderColor: c.colors[0],
        fill: false,
        tension: 0.25
      }]
    },
    options: {
      plugins: { legend: { display: kinds[i] === "pie" } },
      scales: kinds[i] === "pie" ? {} : { y: { beginAtZero: true } }
    }
  });
});

document.getElementById("shift-title").textContent = shifts.title;
new Chart(document.getElementById("chart-shifts"), {
  type: "bar",
  data: {
    labels: shifts.labels,
    datasets: (shifts.series || []).map(s => ({
      label: s.name,
      data: s.values,
      backgroundColor: s.color
    }))
  },
  options: { scales: { y: { beginAtZero: true } } }
});

const tbody = document.querySelector("#cluster-table tbody");
clusters.forEach((c, i) => {
  const tr = document.createElement("tr");
  tr.innerHTML = "<td>" + (i + 1) + "</td><td>" + c.centroid.lat.toFixed(6) +
    "</td><td>" + c.centroid.lng.toFixed(6) + "</td><td>" + c.size + "</td>";
  tbody.appendChild(tr);
});
</script>
</body>
</html>
`
