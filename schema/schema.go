package schema

import (
	"fmt"
	"strings"

	"github.com/rondas-org/rondas/normalize"
)

// ============================================================================
// SCHEMA — describes the shape of a source spreadsheet
// ============================================================================
// Column names are matched by exact header text: the sheets are maintained
// by hand and their casing is part of the contract ("sector" on the patrol
// sheet, "Sector" on the store sheet). A profile names the columns a
// dashboard needs, which entity it ranks by, and which sector fallback its
// sheet expects.
// ============================================================================

// Row is one raw spreadsheet row: exact header text → raw cell text.
type Row map[string]string

// EntityKind selects the ranking/time-series grouping subject.
type EntityKind int

const (
	EntityNone EntityKind = iota
	EntitySupervisor
	EntityLocation
)

func (k EntityKind) String() string {
	switch k {
	case EntitySupervisor:
		return "supervisor"
	case EntityLocation:
		return "location"
	}
	return "none"
}

// Profile maps a sheet's columns onto the normalized record fields.
// Optional columns may be empty; the builder then leaves the field at its
// safe default.
type Profile struct {
	Name string

	DateColumn   string // required
	HourColumn   string
	SectorColumn string
	ShiftColumn  string

	SupervisorIDColumn   string
	SupervisorNameColumn string
	RoleColumn           string

	LocationIDColumn   string
	LocationNameColumn string

	LatColumn string
	LngColumn string

	Entity        EntityKind
	RequireEntity bool
	SectorFB      normalize.Fallback
}

// Serenos is the patrol-scan sheet: supervisor-keyed, geo-tagged, lenient
// sector fallback.
func Serenos() Profile {
	return Profile{
		Name:                 "serenos",
		DateColumn:           "Fecha",
		HourColumn:           "Hora",
		SectorColumn:         "sector",
		ShiftColumn:          "Turno",
		SupervisorIDColumn:   "Supervisor DNI",
		SupervisorNameColumn: "Supervisor",
		RoleColumn:           "Cargo",
		LocationNameColumn:   "Nombre",
		LatColumn:            "Lat",
		LngColumn:            "Lng",
		Entity:               EntitySupervisor,
		RequireEntity:        true,
		SectorFB:             normalize.FallbackOtros,
	}
}

// Locales is the store-location sheet: location-keyed, strict FZ fallback.
func Locales() Profile {
	return Profile{
		Name:               "locales",
		DateColumn:         "Fecha",
		HourColumn:         "Hora",
		SectorColumn:       "Sector",
		ShiftColumn:        "Turno",
		LocationIDColumn:   "ID Local",
		LocationNameColumn: "Nombre",
		Entity:             EntityLocation,
		RequireEntity:      true,
		SectorFB:           normalize.FallbackFZ,
	}
}

// MissingColumnError reports a required column absent from the header row.
// Per the load contract this is fatal for the whole run, unlike per-row
// noise which is skipped silently.
type MissingColumnError struct {
	Column  string
	Profile string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column %q not found (profile %s)", e.Column, e.Profile)
}

// Validate checks the header row against the profile's required columns.
func (p Profile) Validate(headers []string) error {
	have := make(map[string]bool, len(headers))
	for _, h := range headers {
		have[strings.TrimSpace(h)] = true
	}

	required := []string{p.DateColumn}
	if p.RequireEntity {
		switch p.Entity {
		case EntitySupervisor:
			required = append(required, p.SupervisorIDColumn)
		case EntityLocation:
			required = append(required, p.LocationIDColumn)
		}
	}

	for _, col := range required {
		if col == "" || !have[col] {
			return &MissingColumnError{Column: col, Profile: p.Name}
		}
	}
	return nil
}

// DetectProfile picks the built-in profile matching a header row.
// The supervisor-DNI column marks the patrol sheet, the local-ID column the
// store sheet. Ambiguous headers fail rather than guess a fallback policy.
func DetectProfile(headers []string) (Profile, error) {
	have := make(map[string]bool, len(headers))
	for _, h := range headers {
		have[strings.TrimSpace(h)] = true
	}

	switch {
	case have["Supervisor DNI"]:
		return Serenos(), nil
	case have["ID Local"]:
		return Locales(), nil
	}
	return Profile{}, fmt.Errorf("headers match no known profile (need %q or %q)", "Supervisor DNI", "ID Local")
}
