package helpers

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/rondas-org/rondas/schema"
)

// LoadXLSX reads the first worksheet of an .xlsx file. Cells are read raw
// so date serials arrive as numeric text instead of locale-formatted
// strings, which is what the date normalizer expects.
func LoadXLSX(path string) ([]schema.Row, schema.Profile, error) {
	f, err := excelize.OpenFile(path, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, schema.Profile{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, schema.Profile{}, fmt.Errorf("%s: no worksheet found", path)
	}

	matrix, err := f.GetRows(sheet)
	if err != nil {
		return nil, schema.Profile{}, fmt.Errorf("read %s!%s: %w", path, sheet, err)
	}

	return matrixToRows(matrix, path)
}
