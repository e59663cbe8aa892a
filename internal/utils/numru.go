package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var rxKeepNums = regexp.MustCompile(`[^\d.,\-]`)

// ParseFloatRU парсит цены в русской и смешанной записи: "1 234,50", "1.234,50 ₽",
// "990 руб.", "12.5" (NBSP/NNBSP). Если есть и точка, и запятая, десятичный
// разделитель тот, что стоит правее.
func ParseFloatRU(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	// оставить только цифры, разделители и минус (валюта, пробелы, "руб")
	s = rxKeepNums.ReplaceAllString(s, "")
	s = strings.Trim(s, ".,")
	if s == "" || s == "-" {
		return 0, false
	}

	dot, comma := strings.LastIndexByte(s, '.'), strings.LastIndexByte(s, ',')
	switch {
	case dot >= 0 && comma >= 0 && comma > dot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case dot >= 0 && comma >= 0:
		s = strings.ReplaceAll(s, ",", "")
	default:
		s = strings.ReplaceAll(s, ",", ".")
	}

	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}
