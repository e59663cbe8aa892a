// Парсер .xls: ширину таблицы фиксируем сами и читаем все ячейки до неё.
package fileio

import (
	"bytes"
	"errors"
	"io"

	xls "github.com/extrame/xls"
)

// вычисляем "реальную" ширину: пробегаем разумное число колонок и ищем непустые
func computeMaxCols(sheet *xls.WorkSheet) int {
	const probeMax = 256
	maxCols := 0
	for i := 0; i <= int(sheet.MaxRow); i++ {
		r := sheet.Row(i)
		if r == nil {
			continue
		}
		for j := probeMax - 1; j >= maxCols; j-- {
			if normalizeCell(r.Col(j)) != "" {
				maxCols = j + 1
				break
			}
		}
	}
	if maxCols == 0 {
		maxCols = 1
	}
	return maxCols
}

func readXLS(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	// .xls из 1С чаще всего cp1251, но иногда UTF-8/KOI8-R
	var wb *xls.WorkBook
	var lastErr error
	for _, ch := range []string{"windows-1251", "utf-8", "koi8-r"} {
		wb, err = xls.OpenReader(bytes.NewReader(b), ch)
		if err == nil && wb != nil {
			break
		}
		lastErr = err
	}
	if wb == nil {
		if lastErr == nil {
			lastErr = errors.New("xls: failed to open workbook")
		}
		return "", lastErr
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return "", errors.New("xls: workbook has no sheets")
	}

	// НЕ полагаемся на Row.LastCol(): у выгрузок 1С он часто врёт
	maxCols := computeMaxCols(sheet)
	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		cols := make([]string, maxCols)
		if row != nil {
			for j := 0; j < maxCols; j++ {
				cols[j] = row.Col(j)
			}
		}
		rows = append(rows, cols)
	}
	return rowsToTSV(rows), nil
}
