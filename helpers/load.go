package helpers

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/rondas-org/rondas/schema"
)

// ============================================================================
// SHEET LOADERS — spreadsheet/CSV files → schema.Rows + detected profile
// ============================================================================
// All three formats funnel through the same cell matrix shape: a header row
// followed by data rows. The header decides the profile; a missing required
// column is fatal for the run, while individual bad rows are left for the
// record builder to drop.
// ============================================================================

// maxXLSRows bounds legacy .xls reads; the binary reader needs an explicit
// row cap.
const maxXLSRows = 200000

// Load reads a source file, picking the reader from its extension
// (.xlsx, .xls, .csv).
func Load(path string) ([]schema.Row, schema.Profile, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return LoadXLSX(path)
	case ".xls":
		return LoadXLS(path)
	case ".csv":
		return LoadCSV(path)
	}
	return nil, schema.Profile{}, fmt.Errorf("unsupported file type %q (want .xlsx, .xls or .csv)", filepath.Ext(path))
}

// matrixToRows converts a raw cell matrix into keyed rows using the
// detected profile. Rows shorter than the header are padded implicitly;
// fully blank rows are dropped here so the builder never sees them.
func matrixToRows(matrix [][]string, source string) ([]schema.Row, schema.Profile, error) {
	if len(matrix) == 0 {
		return nil, schema.Profile{}, fmt.Errorf("%s: file is empty", source)
	}

	headers := make([]string, len(matrix[0]))
	for i, h := range matrix[0] {
		headers[i] = strings.TrimSpace(h)
	}

	profile, err := schema.DetectProfile(headers)
	if err != nil {
		return nil, schema.Profile{}, fmt.Errorf("%s: %w", source, err)
	}
	if err := profile.Validate(headers); err != nil {
		return nil, schema.Profile{}, fmt.Errorf("%s: %w", source, err)
	}

	rows := make([]schema.Row, 0, len(matrix)-1)
	for _, cells := range matrix[1:] {
		row := make(schema.Row, len(headers))
		blank := true
		for i, h := range headers {
			if h == "" || i >= len(cells) {
				continue
			}
			row[h] = cells[i]
			if strings.TrimSpace(cells[i]) != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		rows = append(rows, row)
	}

	log.Printf("📄 Loaded %d rows from %s (profile %s)", len(rows), source, profile.Name)
	return rows, profile, nil
}
