package fileio

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// readDelimited читает CSV/TSV как есть, только приводит кодировку к UTF-8.
// Разбор на колонки делает движок импорта: ему нужен сырой текст для определения разделителя.
func readDelimited(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return decodeText(b)
}

// decodeText: UTF-8 без изменений (BOM срезается), иначе KOI8-R, если так
// считает chardet, а всё прочее читается как Windows-1251 (выгрузки 1С и Excel).
func decodeText(b []byte) (string, error) {
	b = bytes.TrimPrefix(b, utf8BOM)
	if utf8.Valid(b) {
		return string(b), nil
	}

	var enc encoding.Encoding = charmap.Windows1251
	peek := b
	if len(peek) > 4096 {
		peek = peek[:4096]
	}
	if det, err := chardet.NewTextDetector().DetectBest(peek); err == nil && det != nil {
		if strings.EqualFold(det.Charset, "KOI8-R") {
			enc = charmap.KOI8R
		}
	}

	out, _, err := transform.Bytes(enc.NewDecoder(), b)
	if err != nil {
		return "", fmt.Errorf("decode text: %w", err)
	}
	return string(out), nil
}
