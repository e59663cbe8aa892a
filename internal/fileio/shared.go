package fileio

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ReadText выберет декодер по расширению и вернёт содержимое как UTF-8 текст
// с разделителями, пригодный для движка импорта. Таблицы (.xlsx/.xls)
// отдаются табами, первая строка содержит заголовки.
func ReadText(r io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx":
		return readXLSX(r)
	case ".xls":
		return readXLS(r)
	case ".csv", ".tsv", ".txt", "":
		return readDelimited(r)
	default:
		return "", fmt.Errorf("unsupported file: %s", filename)
	}
}

// cellReplacer: табы и переводы строк внутри ячейки сломали бы TSV
var cellReplacer = strings.NewReplacer("\t", " ", "\r\n", " ", "\n", " ", "\r", " ", "\u00A0", " ")

func normalizeCell(s string) string {
	return strings.TrimSpace(cellReplacer.Replace(s))
}

// rowsToTSV склеивает таблицу в текст, пропуская полностью пустые строки.
func rowsToTSV(rows [][]string) string {
	var b strings.Builder
	for _, rec := range rows {
		cells := make([]string, len(rec))
		empty := true
		for i, v := range rec {
			cells[i] = normalizeCell(v)
			if cells[i] != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		b.WriteString(strings.Join(cells, "\t"))
		b.WriteByte('\n')
	}
	return b.String()
}
