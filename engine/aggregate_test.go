package engine

import (
	"testing"

	"github.com/rondas-org/rondas/normalize"
	"github.com/rondas-org/rondas/schema"
)

// buildFixture normalizes a small two-month supervisor sheet used across
// the aggregation tests.
func buildFixture(t *testing.T) []ScanRecord {
	t.Helper()
	b := NewBuilder(schema.Serenos())
	rows := []schema.Row{
		{"Fecha": "01/03/2024", "Hora": "08:00", "sector": "01", "Turno": "TI", "Supervisor DNI": "111", "Supervisor": "Ana"},
		{"Fecha": "01/03/2024", "Hora": "09:00", "sector": "01", "Turno": "T2", "Supervisor DNI": "111", "Supervisor": "Ana"},
		{"Fecha": "02/03/2024", "Hora": "10:00", "sector": "02", "Turno": "T2", "Supervisor DNI": "222", "Supervisor": "Luis"},
		{"Fecha": "02/03/2024", "Hora": "22:00", "sector": "fuera", "Turno": "T3", "Supervisor DNI": "111", "Supervisor": "Ana"},
		{"Fecha": "15/04/2024", "Hora": "08:00", "sector": "03", "Turno": "TI", "Supervisor DNI": "222", "Supervisor": "Luis"},
		{"Fecha": "15/04/2024", "Hora": "08:00", "sector": "03", "Turno": "TI", "Supervisor DNI": "333", "Supervisor": "Eva"},
	}
	records := b.BuildAll(rows)
	if len(records) != len(rows) {
		t.Fatalf("fixture lost rows: got %d, want %d", len(records), len(rows))
	}
	return records
}

func TestCountByMonthSpansAllRecords(t *testing.T) {
	records := buildFixture(t)

	// The month table ignores the month filter: it feeds the selector.
	set := Aggregate(records, Filters{Month: "2024-03"})

	table := set.CountByMonth
	if len(table.Rows) != 2 {
		t.Fatalf("got %d month rows, want 2", len(table.Rows))
	}
	if table.Rows[0].Month != "2024-03" || table.Rows[0].Count != 4 {
		t.Errorf("row 0 = %+v, want 2024-03 x4", table.Rows[0])
	}
	if table.Rows[1].Month != "2024-04" || table.Rows[1].Count != 2 {
		t.Errorf("row 1 = %+v, want 2024-04 x2", table.Rows[1])
	}
	if table.Total != len(records) {
		t.Errorf("total = %d, want %d", table.Total, len(records))
	}
}

func TestCountBySectorZeroFilled(t *testing.T) {
	records := buildFixture(t)
	set := Aggregate(records, Filters{})

	table := set.CountBySector
	if len(table.Sectors) != 6 || len(table.Counts) != 6 {
		t.Fatalf("sector table has %d/%d columns, want 6", len(table.Sectors), len(table.Counts))
	}
	if got := table.Count(normalize.Sector01); got != 2 {
		t.Errorf("Sector 01 = %d, want 2", got)
	}
	if got := table.Count(normalize.SectorFZ); got != 1 {
		t.Errorf("FZ = %d, want 1", got)
	}
	if got := table.Count(normalize.Sector04); got != 0 {
		t.Errorf("Sector 04 = %d, want 0 (zero-filled)", got)
	}
}

func TestRankingOrderAndTies(t *testing.T) {
	records := buildFixture(t)
	set := Aggregate(records, Filters{})

	ranking := set.Ranking
	if len(ranking) != 3 {
		t.Fatalf("ranking has %d rows, want 3", len(ranking))
	}
	if ranking[0].Key != "111" || ranking[0].Count != 3 {
		t.Errorf("rank 1 = %+v, want 111 x3", ranking[0])
	}
	if ranking[1].Key != "222" || ranking[1].Count != 2 {
		t.Errorf("rank 2 = %+v, want 222 x2", ranking[1])
	}
	if ranking[2].Key != "333" {
		t.Errorf("rank 3 = %+v, want 333", ranking[2])
	}
}

func TestRankingStableTies(t *testing.T) {
	b := NewBuilder(schema.Serenos())
	rows := []schema.Row{
		{"Fecha": "01/03/2024", "sector": "01", "Supervisor DNI": "aaa", "Supervisor": "A"},
		{"Fecha": "01/03/2024", "sector": "01", "Supervisor DNI": "bbb", "Supervisor": "B"},
		{"Fecha": "01/03/2024", "sector": "01", "Supervisor DNI": "ccc", "Supervisor": "C"},
	}
	set := Aggregate(b.BuildAll(rows), Filters{})

	// Equal counts keep first-appearance order.
	want := []string{"aaa", "bbb", "ccc"}
	for i, w := range want {
		if set.Ranking[i].Key != w {
			t.Errorf("rank %d = %q, want %q", i+1, set.Ranking[i].Key, w)
		}
	}
}

func TestTopNCapsRankingAndBreakdown(t *testing.T) {
	records := buildFixture(t)
	set := Aggregate(records, Filters{}, WithTopN(2))

	if len(set.Ranking) != 2 {
		t.Errorf("ranking has %d rows, want 2", len(set.Ranking))
	}
	if len(set.SectorBreakdown) != 2 {
		t.Errorf("breakdown has %d rows, want 2", len(set.SectorBreakdown))
	}
}

func TestSectorBreakdownParallel(t *testing.T) {
	records := buildFixture(t)
	set := Aggregate(records, Filters{})

	row := set.SectorBreakdown[0] // entity 111
	if row.Key != "111" {
		t.Fatalf("breakdown row 0 key = %q, want 111", row.Key)
	}
	// 111 scanned Sector 01 twice and FZ once.
	if row.Counts[0] != 2 {
		t.Errorf("111 Sector 01 = %d, want 2", row.Counts[0])
	}
	if row.Counts[5] != 1 {
		t.Errorf("111 FZ = %d, want 1", row.Counts[5])
	}
}

func TestCountByRole(t *testing.T) {
	b := NewBuilder(schema.Serenos())
	rows := []schema.Row{
		{"Fecha": "01/03/2024", "sector": "01", "Supervisor DNI": "1", "Cargo": "Sereno"},
		{"Fecha": "01/03/2024", "sector": "01", "Supervisor DNI": "2", "Cargo": "Supervisor"},
		{"Fecha": "02/03/2024", "sector": "01", "Supervisor DNI": "3", "Cargo": " Sereno "},
		{"Fecha": "02/03/2024", "sector": "01", "Supervisor DNI": "4"}, // blank role excluded
	}
	set := Aggregate(b.BuildAll(rows), Filters{})

	roles := set.CountByRole
	if len(roles) != 2 {
		t.Fatalf("roles = %+v, want 2 distinct", roles)
	}
	if roles[0].Role != "Sereno" || roles[0].Count != 2 {
		t.Errorf("role 0 = %+v, want Sereno x2 (trimmed verbatim)", roles[0])
	}
	if roles[1].Role != "Supervisor" || roles[1].Count != 1 {
		t.Errorf("role 1 = %+v", roles[1])
	}
}

func TestDailySeries(t *testing.T) {
	records := buildFixture(t)
	set := Aggregate(records, Filters{Month: "2024-03"})

	if len(set.Dates) != 2 {
		t.Fatalf("dates = %v, want 2 days of March", set.Dates)
	}
	if set.Dates[0] != "2024-03-01" || set.Dates[1] != "2024-03-02" {
		t.Fatalf("dates = %v", set.Dates)
	}

	all := set.DailySeries(AllToken)
	if all[0] != 2 || all[1] != 2 {
		t.Errorf("ALL series = %v, want [2 2]", all)
	}

	ana := set.DailySeries("111")
	if ana[0] != 2 || ana[1] != 1 {
		t.Errorf("111 series = %v, want [2 1]", ana)
	}

	unknown := set.DailySeries("zzz")
	if unknown[0] != 0 || unknown[1] != 0 {
		t.Errorf("unknown entity series = %v, want zeros", unknown)
	}
}

func TestEntityFilterScopesTables(t *testing.T) {
	records := buildFixture(t)
	set := Aggregate(records, Filters{EntityID: "222"})

	// Sector counts cover only the selected supervisor.
	if got := set.CountBySector.Count(normalize.Sector02); got != 1 {
		t.Errorf("Sector 02 = %d, want 1", got)
	}
	if got := set.CountBySector.Count(normalize.Sector01); got != 0 {
		t.Errorf("Sector 01 = %d, want 0", got)
	}

	// The ranking still covers everyone.
	if len(set.Ranking) != 3 {
		t.Errorf("ranking has %d rows, want 3", len(set.Ranking))
	}
}

func TestShiftTables(t *testing.T) {
	records := buildFixture(t)

	set := Aggregate(records, Filters{})
	if set.ShiftByDay != nil {
		t.Error("ShiftByDay should be nil without a month selection")
	}
	if set.ShiftByMonth.Totals != [3]int{3, 2, 1} {
		t.Errorf("shift totals = %v, want [3 2 1]", set.ShiftByMonth.Totals)
	}

	set = Aggregate(records, Filters{Month: "2024-03"})
	if set.ShiftByDay == nil {
		t.Fatal("ShiftByDay should be built for a selected month")
	}
	rows := set.ShiftByDay.Rows
	if len(rows) != 2 || rows[0].Bucket != "1" || rows[1].Bucket != "2" {
		t.Fatalf("ShiftByDay rows = %+v", rows)
	}
	if rows[0].Counts != [3]int{1, 1, 0} {
		t.Errorf("day 1 counts = %v, want [1 1 0]", rows[0].Counts)
	}
	if rows[1].Counts != [3]int{0, 1, 1} {
		t.Errorf("day 2 counts = %v, want [0 1 1]", rows[1].Counts)
	}
}

func TestHistograms(t *testing.T) {
	records := buildFixture(t)
	set := Aggregate(records, Filters{Month: "2024-03"})

	if set.HourHistogram[8] != 1 || set.HourHistogram[22] != 1 {
		t.Errorf("hour histogram = %v", set.HourHistogram)
	}
	// 2024-03-01 is a Friday (index 4), 2024-03-02 a Saturday (index 5).
	if set.WeekdayHistogram[4] != 2 || set.WeekdayHistogram[5] != 2 {
		t.Errorf("weekday histogram = %v", set.WeekdayHistogram)
	}

	if set.DayOfMonth.MinDay != 1 {
		t.Errorf("min day = %d, want 1", set.DayOfMonth.MinDay)
	}
	if len(set.DayOfMonth.Counts) != 2 {
		t.Fatalf("day-of-month width = %d, want 2", len(set.DayOfMonth.Counts))
	}
	if set.DayOfMonth.Counts[0] != 2 || set.DayOfMonth.Counts[1] != 2 {
		t.Errorf("day-of-month counts = %v", set.DayOfMonth.Counts)
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	set := Aggregate(nil, Filters{})

	if set.CountByMonth.Total != 1 {
		t.Errorf("empty total = %d, want 1", set.CountByMonth.Total)
	}
	if len(set.CountByMonth.Rows) != 0 {
		t.Errorf("empty month rows = %v", set.CountByMonth.Rows)
	}
	if len(set.CountBySector.Sectors) != 6 {
		t.Errorf("sector table should stay zero-filled, got %d columns", len(set.CountBySector.Sectors))
	}
	for _, c := range set.CountBySector.Counts {
		if c != 0 {
			t.Errorf("sector counts = %v, want zeros", set.CountBySector.Counts)
		}
	}
	if len(set.Ranking) != 0 || len(set.Dates) != 0 {
		t.Error("empty input should yield empty ranking and date domain")
	}
	if set.DayOfMonth == nil || len(set.DayOfMonth.Counts) != 0 {
		t.Errorf("day-of-month = %+v, want empty histogram", set.DayOfMonth)
	}
	if got := set.DailySeries(AllToken); len(got) != 0 {
		t.Errorf("daily series = %v, want empty", got)
	}
}

func TestUnknownMonthMatchesNothing(t *testing.T) {
	records := buildFixture(t)
	set := Aggregate(records, Filters{Month: "2030-01"})

	if len(set.Dates) != 0 || len(set.Ranking) != 0 {
		t.Error("unknown month should filter everything out")
	}
	// The selector table is still complete.
	if set.CountByMonth.Total != len(records) {
		t.Errorf("month total = %d, want %d", set.CountByMonth.Total, len(records))
	}
}

func TestEntityNameLastSeenWins(t *testing.T) {
	b := NewBuilder(schema.Serenos())
	rows := []schema.Row{
		{"Fecha": "01/03/2024", "sector": "01", "Supervisor DNI": "111", "Supervisor": "A. Quispe"},
		{"Fecha": "02/03/2024", "sector": "01", "Supervisor DNI": "111", "Supervisor": "Ana Quispe"},
	}
	set := Aggregate(b.BuildAll(rows), Filters{})

	if got := set.EntityName("111"); got != "Ana Quispe" {
		t.Errorf("entity name = %q, want latest spelling", got)
	}
}

func TestLocationGrouping(t *testing.T) {
	b := NewBuilder(schema.Locales())
	rows := []schema.Row{
		{"Fecha": "01/03/2024", "Sector": "01", "ID Local": "7", "Nombre": "Bodega Sur"},
		{"Fecha": "02/03/2024", "Sector": "01", "ID Local": "7", "Nombre": "Bodega Sur"},
		{"Fecha": "02/03/2024", "Sector": "02", "ID Local": "7", "Nombre": "Bodega Norte"},
	}
	set := Aggregate(b.BuildAll(rows), Filters{}, WithEntityKind(EntityLocation))

	// Same id, different name → distinct keys.
	if len(set.Ranking) != 2 {
		t.Fatalf("ranking has %d rows, want 2", len(set.Ranking))
	}
	if set.Ranking[0].Key != "7 – Bodega Sur" || set.Ranking[0].Count != 2 {
		t.Errorf("rank 1 = %+v", set.Ranking[0])
	}
}
