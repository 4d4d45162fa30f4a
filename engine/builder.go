package engine

import (
	"math"
	"strconv"
	"strings"

	"github.com/rondas-org/rondas/normalize"
	"github.com/rondas-org/rondas/schema"
)

// ============================================================================
// RECORD BUILDER — raw rows → ScanRecords
// ============================================================================
// One builder per loaded sheet. A row is kept only if its date parses and,
// when the profile requires one, its entity key is non-blank; everything
// else degrades to a safe default. Dropped rows are not errors — the sheets
// routinely carry blank trailing rows and hand-typed garbage.
// ============================================================================

// Builder converts raw spreadsheet rows into ScanRecords using a profile's
// column mapping.
type Builder struct {
	p schema.Profile
}

// NewBuilder creates a Builder for one sheet profile.
func NewBuilder(p schema.Profile) *Builder {
	return &Builder{p: p}
}

// Kind returns the entity kind the profile ranks by.
func (b *Builder) Kind() EntityKind {
	switch b.p.Entity {
	case schema.EntitySupervisor:
		return EntitySupervisor
	case schema.EntityLocation:
		return EntityLocation
	}
	return EntityNone
}

// Build normalizes one row. ok=false means the row is skipped silently.
func (b *Builder) Build(row schema.Row) (ScanRecord, bool) {
	date, ok := normalize.Date(row[b.p.DateColumn])
	if !ok {
		return ScanRecord{}, false
	}

	r := ScanRecord{
		Date:    date,
		Weekday: normalize.WeekdayMondayFirst(date),
		Sector:  normalize.Sector(row[b.p.SectorColumn], b.p.SectorFB),

		SupervisorID:   strings.TrimSpace(row[b.p.SupervisorIDColumn]),
		SupervisorName: strings.TrimSpace(row[b.p.SupervisorNameColumn]),
		Role:           strings.TrimSpace(row[b.p.RoleColumn]),

		LocationID:   strings.TrimSpace(row[b.p.LocationIDColumn]),
		LocationName: strings.TrimSpace(row[b.p.LocationNameColumn]),
	}

	if b.p.HourColumn != "" {
		r.Hour = normalize.Hour(row[b.p.HourColumn])
	}
	if b.p.ShiftColumn != "" {
		r.Shift, r.HasShift = normalize.Shift(row[b.p.ShiftColumn])
	}
	if b.p.LatColumn != "" && b.p.LngColumn != "" {
		r.Lat, r.Lng, r.HasGeo = parseGeo(row[b.p.LatColumn], row[b.p.LngColumn])
	}

	if b.p.RequireEntity && r.EntityKey(b.Kind()) == "" {
		return ScanRecord{}, false
	}

	return r, true
}

// BuildAll normalizes a whole sheet, dropping rows Build rejects.
func (b *Builder) BuildAll(rows []schema.Row) []ScanRecord {
	records := make([]ScanRecord, 0, len(rows))
	for _, row := range rows {
		if r, ok := b.Build(row); ok {
			records = append(records, r)
		}
	}
	return records
}

// parseGeo parses a coordinate pair. Missing, unparseable, non-finite or
// zero coordinates exclude the record from spatial aggregation — zero is
// how the capture devices report "no fix".
func parseGeo(latRaw, lngRaw string) (lat, lng float64, ok bool) {
	lat, errLat := strconv.ParseFloat(strings.TrimSpace(latRaw), 64)
	lng, errLng := strconv.ParseFloat(strings.TrimSpace(lngRaw), 64)
	if errLat != nil || errLng != nil {
		return 0, 0, false
	}
	if lat == 0 || lng == 0 ||
		math.IsNaN(lat) || math.IsNaN(lng) ||
		math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return 0, 0, false
	}
	return lat, lng, true
}
