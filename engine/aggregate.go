package engine

import (
	"sort"
	"strconv"

	"github.com/rondas-org/rondas/normalize"
)

// ============================================================================
// AGGREGATION ENGINE — records + filters → AggregateSet
// ============================================================================
// One synchronous pass model: every filter change recomputes everything
// from the full normalized collection (a few tens of thousands of rows at
// most). All orderings are explicit — months and dates ascend, rankings
// descend with first-seen ties — so identical input always yields
// byte-identical output.
//
// Filtering policy:
//   - Month filter applies to every table except CountByMonth, which always
//     spans the full record set (it feeds the month selector itself).
//   - Entity filter applies only to entity-scoped tables (daily series,
//     sector counts, histograms); the ranking always covers all entities.
// ============================================================================

// Aggregate computes every report table for one filter state.
func Aggregate(records []ScanRecord, f Filters, opts ...Option) *AggregateSet {
	cfg := applyOptions(opts)

	set := &AggregateSet{
		Entity:        cfg.entity,
		dailyByEntity: make(map[string]map[string]int),
		dailyAll:      make(map[string]int),
		names:         make(map[string]string),
	}

	set.CountByMonth = countByMonth(records)

	// Month-filtered working set for everything else.
	monthly := make([]ScanRecord, 0, len(records))
	for _, r := range records {
		if f.MatchMonth(r) {
			monthly = append(monthly, r)
		}
	}

	set.Ranking, set.SectorBreakdown = rankEntities(monthly, cfg.entity, cfg.topN)
	buildDaily(set, monthly, cfg.entity)

	// Entity-scoped subset for the sector counts and histograms.
	scoped := monthly
	if f.HasEntity() {
		scoped = make([]ScanRecord, 0, len(monthly))
		for _, r := range monthly {
			if r.EntityKey(cfg.entity) == f.EntityID {
				scoped = append(scoped, r)
			}
		}
	}

	set.CountBySector = countBySector(scoped)
	set.CountByRole = countByRole(scoped)
	set.ShiftByMonth = shiftByMonth(scoped)
	if f.HasMonth() {
		set.ShiftByDay = shiftByDay(scoped)
	}
	buildHistograms(set, scoped)

	return set
}

// ============================================================================
// COUNT BY MONTH
// ============================================================================

func countByMonth(records []ScanRecord) *MonthTable {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Month()]++
	}

	months := make([]string, 0, len(counts))
	for m := range counts {
		months = append(months, m)
	}
	sort.Strings(months)

	table := &MonthTable{Rows: make([]MonthCount, 0, len(months))}
	for _, m := range months {
		table.Rows = append(table.Rows, MonthCount{Month: m, Count: counts[m]})
		table.Total += counts[m]
	}
	if table.Total == 0 {
		table.Total = 1 // keeps consumer percentage math defined on empty sets
	}
	return table
}

// ============================================================================
// COUNT BY SECTOR
// ============================================================================

func countBySector(records []ScanRecord) *SectorTable {
	sectors := normalize.DisplaySectors()
	index := make(map[normalize.SectorCode]int, len(sectors))
	for i, s := range sectors {
		index[s] = i
	}

	table := &SectorTable{
		Sectors: sectors,
		Counts:  make([]int, len(sectors)),
	}
	for _, r := range records {
		if i, ok := index[r.Sector]; ok {
			table.Counts[i]++
		}
		// Otros has no displayed column; such records are excluded from
		// this dimension only.
	}
	return table
}

// ============================================================================
// COUNT BY ROLE
// ============================================================================

// countByRole counts records per verbatim job-role text, descending with
// first-seen stable ties. Blank roles are excluded from this dimension only.
func countByRole(records []ScanRecord) []RoleCount {
	counts := make(map[string]int)
	order := make([]string, 0)

	for _, r := range records {
		if r.Role == "" {
			continue
		}
		if _, seen := counts[r.Role]; !seen {
			order = append(order, r.Role)
		}
		counts[r.Role]++
	}

	rows := make([]RoleCount, 0, len(order))
	for _, role := range order {
		rows = append(rows, RoleCount{Role: role, Count: counts[role]})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Count > rows[j].Count })
	return rows
}

// ============================================================================
// ENTITY RANKING + SECTOR BREAKDOWN
// ============================================================================

func rankEntities(records []ScanRecord, kind EntityKind, topN int) ([]EntityCount, []EntitySectorRow) {
	sectors := normalize.DisplaySectors()
	sectorIndex := make(map[normalize.SectorCode]int, len(sectors))
	for i, s := range sectors {
		sectorIndex[s] = i
	}

	counts := make(map[string]int)
	names := make(map[string]string)
	perSector := make(map[string][]int)
	order := make([]string, 0)

	for _, r := range records {
		key := r.EntityKey(kind)
		if key == "" {
			continue // excluded from this dimension only
		}
		if _, seen := counts[key]; !seen {
			order = append(order, key)
			perSector[key] = make([]int, len(sectors))
		}
		counts[key]++
		names[key] = r.EntityLabel(kind) // last-seen display name wins
		if i, ok := sectorIndex[r.Sector]; ok {
			perSector[key][i]++
		}
	}

	ranking := make([]EntityCount, 0, len(order))
	for _, key := range order {
		ranking = append(ranking, EntityCount{Key: key, Label: names[key], Count: counts[key]})
	}
	// Stable: equal counts keep first-seen input order.
	sort.SliceStable(ranking, func(i, j int) bool { return ranking[i].Count > ranking[j].Count })

	if topN > 0 && len(ranking) > topN {
		ranking = ranking[:topN]
	}

	breakdown := make([]EntitySectorRow, 0, len(ranking))
	for _, e := range ranking {
		breakdown = append(breakdown, EntitySectorRow{
			Key:    e.Key,
			Label:  e.Label,
			Counts: perSector[e.Key],
		})
	}
	return ranking, breakdown
}

// ============================================================================
// DAILY SERIES
// ============================================================================

func buildDaily(set *AggregateSet, records []ScanRecord, kind EntityKind) {
	dateSet := make(map[string]bool)

	for _, r := range records {
		d := r.DateKey()
		dateSet[d] = true
		set.dailyAll[d]++

		key := r.EntityKey(kind)
		if key == "" {
			continue
		}
		per := set.dailyByEntity[key]
		if per == nil {
			per = make(map[string]int)
			set.dailyByEntity[key] = per
		}
		per[d]++
		set.names[key] = r.EntityLabel(kind)
	}

	set.Dates = make([]string, 0, len(dateSet))
	for d := range dateSet {
		set.Dates = append(set.Dates, d)
	}
	sort.Strings(set.Dates)
}

// ============================================================================
// SHIFT TABLES
// ============================================================================

func shiftIndex(s normalize.ShiftCode) int {
	switch s {
	case normalize.ShiftT1:
		return 0
	case normalize.ShiftT2:
		return 1
	case normalize.ShiftT3:
		return 2
	}
	return -1
}

func shiftByMonth(records []ScanRecord) *ShiftTable {
	return shiftTable(records, func(r ScanRecord) string { return r.Month() }, sort.Strings)
}

func shiftByDay(records []ScanRecord) *ShiftTable {
	numeric := func(keys []string) {
		sort.Slice(keys, func(i, j int) bool {
			a, _ := strconv.Atoi(keys[i])
			b, _ := strconv.Atoi(keys[j])
			return a < b
		})
	}
	return shiftTable(records, func(r ScanRecord) string { return strconv.Itoa(r.Date.Day()) }, numeric)
}

func shiftTable(records []ScanRecord, bucket func(ScanRecord) string, sortKeys func([]string)) *ShiftTable {
	buckets := make(map[string]*[3]int)
	keys := make([]string, 0)

	table := &ShiftTable{}
	for _, r := range records {
		if !r.HasShift {
			continue // no recognizable code → out of shift aggregates only
		}
		i := shiftIndex(r.Shift)
		if i < 0 {
			continue
		}
		k := bucket(r)
		row, ok := buckets[k]
		if !ok {
			row = &[3]int{}
			buckets[k] = row
			keys = append(keys, k)
		}
		row[i]++
		table.Totals[i]++
	}

	sortKeys(keys)
	table.Rows = make([]ShiftRow, 0, len(keys))
	for _, k := range keys {
		table.Rows = append(table.Rows, ShiftRow{Bucket: k, Counts: *buckets[k]})
	}
	return table
}

// ============================================================================
// HISTOGRAMS
// ============================================================================

func buildHistograms(set *AggregateSet, records []ScanRecord) {
	set.DayOfMonth = &DayHistogram{}
	if len(records) == 0 {
		return
	}

	minDay, maxDay := 32, 0
	for _, r := range records {
		set.HourHistogram[r.Hour]++
		set.WeekdayHistogram[r.Weekday]++
		d := r.Date.Day()
		if d < minDay {
			minDay = d
		}
		if d > maxDay {
			maxDay = d
		}
	}

	set.DayOfMonth.MinDay = minDay
	set.DayOfMonth.Counts = make([]int, maxDay-minDay+1)
	for _, r := range records {
		set.DayOfMonth.Counts[r.Date.Day()-minDay]++
	}
}
