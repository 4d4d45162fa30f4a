package helpers

import (
	"fmt"

	"github.com/extrame/xls"

	"github.com/rondas-org/rondas/schema"
)

// LoadXLS reads the first worksheet of a legacy binary .xls file. The old
// district exports still arrive in this format.
func LoadXLS(path string) ([]schema.Row, schema.Profile, error) {
	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, schema.Profile{}, fmt.Errorf("open %s: %w", path, err)
	}
	if wb.NumSheets() == 0 {
		return nil, schema.Profile{}, fmt.Errorf("%s: no worksheet found", path)
	}

	matrix := wb.ReadAllCells(maxXLSRows)
	return matrixToRows(matrix, path)
}
