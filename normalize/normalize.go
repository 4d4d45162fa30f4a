package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ============================================================================
// FIELD NORMALIZERS — raw spreadsheet cells → canonical typed values
// ============================================================================
// Source sheets are operationally noisy: dates arrive as serials, native
// dates or D/M/Y text; sectors as free text; shifts with a legacy spelling.
// Every function here is pure and total — malformed input degrades to a
// default or a not-ok result, never a panic.
// ============================================================================

// SectorCode is one of the fixed zone categories a scan is classified into.
type SectorCode string

const (
	Sector01    SectorCode = "Sector 01"
	Sector02    SectorCode = "Sector 02"
	Sector03    SectorCode = "Sector 03"
	Sector04    SectorCode = "Sector 04"
	Sector05    SectorCode = "Sector 05"
	SectorFZ    SectorCode = "FZ" // fuera de zona
	SectorOtros SectorCode = "Otros"
)

// DisplaySectors is the fixed column/axis order of the sector tables and
// charts. Otros is a classification result but never a displayed column.
func DisplaySectors() []SectorCode {
	return []SectorCode{Sector01, Sector02, Sector03, Sector04, Sector05, SectorFZ}
}

// Fallback selects what unmatched sector text classifies as. The source
// sheets use both conventions on purpose: store-location reports expect FZ,
// patrol reports expect Otros.
type Fallback int

const (
	FallbackOtros Fallback = iota
	FallbackFZ
)

func (f Fallback) sector() SectorCode {
	if f == FallbackFZ {
		return SectorFZ
	}
	return SectorOtros
}

// ShiftCode is one of the three fixed work periods.
type ShiftCode string

const (
	ShiftT1 ShiftCode = "T1"
	ShiftT2 ShiftCode = "T2"
	ShiftT3 ShiftCode = "T3"
)

// Shifts returns the fixed shift order.
func Shifts() []ShiftCode {
	return []ShiftCode{ShiftT1, ShiftT2, ShiftT3}
}

// Label returns the code as the source sheets spell it. The first shift is
// entered as "TI" throughout the operational data.
func (s ShiftCode) Label() string {
	if s == ShiftT1 {
		return "TI"
	}
	return string(s)
}

// ============================================================================
// DATES
// ============================================================================

// serialEpoch is the spreadsheet day-zero (1899-12-30).
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Date converts a raw cell into a calendar date truncated to midnight UTC.
// Accepts a native time.Time, a spreadsheet serial (numeric or numeric
// text, fractional time-of-day ignored), or D/M/Y delimited text.
// Malformed input returns ok=false.
func Date(raw any) (time.Time, bool) {
	switch v := raw.(type) {
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return midnight(v), true
	case float64:
		return serialDate(v)
	case int:
		return serialDate(float64(v))
	case string:
		return textDate(v)
	}
	return time.Time{}, false
}

func serialDate(serial float64) (time.Time, bool) {
	if math.IsNaN(serial) || math.IsInf(serial, 0) || serial <= 0 {
		return time.Time{}, false
	}
	days := int(math.Floor(serial))
	return serialEpoch.AddDate(0, 0, days), true
}

func textDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	// Serials survive as numeric text when cells are read raw.
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return serialDate(f)
	}

	if t, err := time.Parse("2006-01-02", s); err == nil {
		return midnight(t), true
	}

	// D/M/Y text, the convention of the source sheets.
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	d, errD := strconv.Atoi(strings.TrimSpace(parts[0]))
	m, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
	y, errY := strconv.Atoi(strings.TrimSpace(parts[2]))
	if errD != nil || errM != nil || errY != nil || y < 1000 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	// Reject overflowed dates like 32/13/2024 that time.Date silently rolls.
	if t.Day() != d || int(t.Month()) != m || t.Year() != y {
		return time.Time{}, false
	}
	return t, true
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekdayMondayFirst remaps a date's day-of-week so Monday=0..Sunday=6.
func WeekdayMondayFirst(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// ============================================================================
// HOURS
// ============================================================================

var hourDigits = regexp.MustCompile(`(\d{1,2})`)

// Hour extracts a best-effort hour of day in [0,23]. Numeric input is a
// fraction of a day (0.5 → 12), as is fractional text; time values use
// their hour component; other text uses its first 1–2 digit run. Anything
// else is 0.
func Hour(raw any) int {
	switch v := raw.(type) {
	case float64:
		return fractionalHour(v)
	case int:
		return fractionalHour(float64(v))
	case time.Time:
		return v.Hour()
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0
		}
		// Raw serial times survive as fractional text ("0.75"); plain
		// digit text ("8", "08:30") is already an hour.
		if strings.Contains(s, ".") {
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return fractionalHour(f)
			}
		}
		if m := hourDigits.FindString(s); m != "" {
			if h, err := strconv.Atoi(m); err == nil && h >= 0 && h < 24 {
				return h
			}
		}
	}
	return 0
}

func fractionalHour(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	h := int(math.Floor(v*24)) % 24
	if h < 0 {
		return 0
	}
	return h
}

// ============================================================================
// SECTORS
// ============================================================================

var nonDigits = regexp.MustCompile(`[^0-9]`)

// Sector classifies free sector text into the fixed enumeration.
// An out-of-zone marker wins over any embedded digits; otherwise digits are
// extracted ("Sector 04", "04", "4", "SECTOR-2" all map), left-padded to two
// characters and matched against 01..05. Everything else is the fallback.
func Sector(raw string, fb Fallback) SectorCode {
	t := strings.ToLower(strings.TrimSpace(raw))
	if t == "" {
		return fb.sector()
	}
	if strings.Contains(t, "fz") || strings.Contains(t, "fuera") {
		return SectorFZ
	}

	digits := nonDigits.ReplaceAllString(strings.ReplaceAll(t, "sector", ""), "")
	if digits == "" || len(digits) > 2 {
		return fb.sector()
	}
	if len(digits) == 1 {
		digits = "0" + digits
	}
	switch digits {
	case "01":
		return Sector01
	case "02":
		return Sector02
	case "03":
		return Sector03
	case "04":
		return Sector04
	case "05":
		return Sector05
	}
	return fb.sector()
}

// ============================================================================
// SHIFTS
// ============================================================================

// Shift recognizes the literal shift codes used by the source sheets,
// including the legacy "TI" spelling of the first shift. Unrecognized
// input returns ok=false and the record stays out of shift aggregates.
func Shift(raw string) (ShiftCode, bool) {
	switch strings.TrimSpace(raw) {
	case "TI", "T1":
		return ShiftT1, true
	case "T2":
		return ShiftT2, true
	case "T3":
		return ShiftT3, true
	}
	return "", false
}

// ============================================================================
// LABELS
// ============================================================================

var monthNames = [13]string{
	"", "Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// MonthName returns the Spanish month name for 1..12, or "" out of range.
func MonthName(m int) string {
	if m < 1 || m > 12 {
		return ""
	}
	return monthNames[m]
}

// MonthLabel turns a canonical "YYYY-MM" key into "Marzo 2024".
// Unparseable keys pass through unchanged.
func MonthLabel(ym string) string {
	parts := strings.Split(ym, "-")
	if len(parts) != 2 {
		return ym
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || MonthName(m) == "" {
		return ym
	}
	return MonthName(m) + " " + parts[0]
}

// WeekdayLabels is the Monday-first axis used by the weekday histogram.
var WeekdayLabels = []string{"Lun", "Mar", "Mié", "Jue", "Vie", "Sáb", "Dom"}
