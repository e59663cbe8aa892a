package fileio

import (
	"fmt"
	"io"

	excelize "github.com/xuri/excelize/v2"
)

// readXLSX берёт первый лист книги.
func readXLSX(r io.Reader) (string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return "", fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return "", fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rowsToTSV(rows), nil
}
