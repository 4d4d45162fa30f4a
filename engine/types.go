package engine

import (
	"time"

	"github.com/rondas-org/rondas/normalize"
)

// ============================================================================
// ENGINE TYPES — normalized records, filters, aggregate tables
// ============================================================================
// ScanRecords are built once per load and held read-only; every filter
// change recomputes a fresh AggregateSet from the full collection. Nothing
// here mutates after construction, so consumers can hand tables straight to
// a renderer.
// ============================================================================

// ScanRecord is one normalized patrol/attendance observation.
type ScanRecord struct {
	Date    time.Time // midnight UTC
	Hour    int       // 0..23
	Weekday int       // Monday=0..Sunday=6

	Sector normalize.SectorCode

	SupervisorID   string
	SupervisorName string
	Role           string

	LocationID   string
	LocationName string

	Shift    normalize.ShiftCode // meaningful only when HasShift
	HasShift bool

	Lat    float64
	Lng    float64
	HasGeo bool
}

// Month returns the canonical "YYYY-MM" key.
func (r ScanRecord) Month() string { return r.Date.Format("2006-01") }

// DateKey returns the canonical "YYYY-MM-DD" key.
func (r ScanRecord) DateKey() string { return r.Date.Format("2006-01-02") }

// EntityKey returns the grouping key for the given entity kind.
// Locations key on id + name because store ids repeat across districts.
func (r ScanRecord) EntityKey(kind EntityKind) string {
	switch kind {
	case EntitySupervisor:
		return r.SupervisorID
	case EntityLocation:
		if r.LocationID == "" {
			return ""
		}
		return r.LocationID + " – " + r.LocationName
	}
	return ""
}

// EntityLabel returns the display name for the given entity kind.
func (r ScanRecord) EntityLabel(kind EntityKind) string {
	switch kind {
	case EntitySupervisor:
		return r.SupervisorName
	case EntityLocation:
		return r.LocationName
	}
	return ""
}

// EntityKind selects the ranking/time-series grouping subject.
type EntityKind int

const (
	EntityNone EntityKind = iota
	EntitySupervisor
	EntityLocation
)

// ============================================================================
// FILTERS
// ============================================================================

// AllToken is the distinguished "no filter" selector value.
const AllToken = "ALL"

// Filters are the active page selectors. Month is canonical "YYYY-MM";
// EntityID is a supervisor id or location key. Empty or AllToken means
// unfiltered for that dimension. Unknown values simply match nothing.
type Filters struct {
	Month    string
	EntityID string
}

// HasMonth reports whether a single month is selected.
func (f Filters) HasMonth() bool {
	return f.Month != "" && f.Month != AllToken
}

// HasEntity reports whether a single entity is selected.
func (f Filters) HasEntity() bool {
	return f.EntityID != "" && f.EntityID != AllToken
}

// MatchMonth reports whether a record passes the month filter.
func (f Filters) MatchMonth(r ScanRecord) bool {
	return !f.HasMonth() || r.Month() == f.Month
}

// ============================================================================
// AGGREGATE TABLES
// ============================================================================

// MonthCount is one CountByMonth row.
type MonthCount struct {
	Month string `json:"month"` // "YYYY-MM"
	Count int    `json:"count"`
}

// MonthTable counts records per month over the full record set.
type MonthTable struct {
	Rows  []MonthCount `json:"rows"`  // months ascending
	Total int          `json:"total"` // sum of counts, floored at 1 so percentages stay defined
}

// SectorTable counts records per displayed sector, always zero-filled.
type SectorTable struct {
	Sectors []normalize.SectorCode `json:"sectors"` // fixed display order
	Counts  []int                  `json:"counts"`  // parallel to Sectors
}

// Count returns the count for one sector, 0 when not displayed.
func (t *SectorTable) Count(s normalize.SectorCode) int {
	for i, sec := range t.Sectors {
		if sec == s {
			return t.Counts[i]
		}
	}
	return 0
}

// RoleCount is one job-role row. Roles group by their trimmed text
// verbatim.
type RoleCount struct {
	Role  string `json:"role"`
	Count int    `json:"count"`
}

// EntityCount is one ranking row.
type EntityCount struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// EntitySectorRow is one cross-tabulation row: an entity's counts across
// the displayed sectors.
type EntitySectorRow struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Counts []int  `json:"counts"` // parallel to DisplaySectors order
}

// ShiftRow is one bucket (a month or a day-of-month) of shift counts.
type ShiftRow struct {
	Bucket string `json:"bucket"` // "YYYY-MM" or day-of-month as text
	Counts [3]int `json:"counts"` // T1, T2, T3
}

// ShiftTable buckets shift counts by month, or by day within the selected
// month.
type ShiftTable struct {
	Rows   []ShiftRow `json:"rows"`
	Totals [3]int     `json:"totals"`
}

// DayHistogram is the variable-width day-of-month frequency table.
type DayHistogram struct {
	MinDay int   `json:"minDay"`
	Counts []int `json:"counts"` // width = max day − min day + 1; empty when no records
}

// AggregateSet is everything one recompute produces. It is owned by the
// Aggregate call that built it and never patched incrementally.
type AggregateSet struct {
	Entity EntityKind `json:"-"`

	CountByMonth    *MonthTable       `json:"countByMonth"`
	CountBySector   *SectorTable      `json:"countBySector"`
	CountByRole     []RoleCount       `json:"countByRole"`
	Ranking         []EntityCount     `json:"ranking"`
	SectorBreakdown []EntitySectorRow `json:"sectorBreakdown"`

	Dates []string `json:"dates"` // month-filtered date domain, ascending

	ShiftByMonth *ShiftTable `json:"shiftByMonth"`
	ShiftByDay   *ShiftTable `json:"shiftByDay,omitempty"` // nil unless a single month is selected

	HourHistogram    [24]int       `json:"hourHistogram"`
	WeekdayHistogram [7]int        `json:"weekdayHistogram"`
	DayOfMonth       *DayHistogram `json:"dayOfMonth"`

	dailyByEntity map[string]map[string]int // entity key → date key → count
	dailyAll      map[string]int
	names         map[string]string // entity key → display label
}

// DailySeries returns the counts over Dates for one entity, or summed
// across all entities for AllToken / "".
func (s *AggregateSet) DailySeries(entityID string) []int {
	out := make([]int, len(s.Dates))
	if entityID == "" || entityID == AllToken {
		for i, d := range s.Dates {
			out[i] = s.dailyAll[d]
		}
		return out
	}
	per := s.dailyByEntity[entityID]
	for i, d := range s.Dates {
		out[i] = per[d]
	}
	return out
}

// EntityName returns the display label recorded for an entity key.
func (s *AggregateSet) EntityName(entityID string) string {
	return s.names[entityID]
}

// ============================================================================
// SPATIAL TYPES
// ============================================================================

// GeoPoint is a raw-coordinate scan position.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Cluster is a reported co-location hotspot: three or more mutually
// proximate scan points collapsed into a centroid.
type Cluster struct {
	Centroid GeoPoint `json:"centroid"`
	Size     int      `json:"size"`
}
