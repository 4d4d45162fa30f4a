package helpers

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/rondas-org/rondas/schema"
)

// LoadCSV reads a comma-separated export. Ragged rows are tolerated — the
// hand-maintained sheets often have trailing cells missing.
func LoadCSV(path string) ([]schema.Row, schema.Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, schema.Profile{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	matrix, err := reader.ReadAll()
	if err != nil {
		return nil, schema.Profile{}, fmt.Errorf("read %s: %w", path, err)
	}

	return matrixToRows(matrix, path)
}
