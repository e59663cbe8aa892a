package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// DetectDelimiter выбирает разделитель по строке заголовков.
// Таб и ';' проверяются раньше запятой: в локалях с десятичной запятой
// выгрузки обычно идут через ';'.
func DetectDelimiter(header string) rune {
	switch {
	case strings.ContainsRune(header, '\t'):
		return '\t'
	case strings.ContainsRune(header, ';'):
		return ';'
	case len(strings.Split(header, ",")) > 1:
		return ','
	}
	for _, r := range header {
		if isWordRune(r) || unicode.IsSpace(r) || r == '"' {
			continue
		}
		return r
	}
	return ','
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Line: непустая строка входного текста с её физическим номером.
type Line struct {
	No   int
	Text string
}

// SplitLines снимает BOM, режет текст по строкам и выкидывает пустые.
func SplitLines(raw string) []Line {
	raw = strings.TrimPrefix(raw, "\uFEFF")
	parts := strings.Split(raw, "\n")
	out := make([]Line, 0, len(parts))
	for i, p := range parts {
		p = strings.TrimRight(p, "\r")
		if strings.TrimSpace(p) == "" {
			continue
		}
		out = append(out, Line{No: i + 1, Text: p})
	}
	return out
}

// ErrUnterminatedQuote: в строке нечётное число кавычек.
var ErrUnterminatedQuote = errors.New("unterminated quote")

// SplitFields режет одну строку по разделителю с учётом кавычек.
// Любая '"' в строке переключает режим "в кавычках", в нём разделитель считается
// текстом ("Chanel "No 5, Extra"" остаётся одним полем). Кавычки, обрамляющие
// всё поле, снимаются, "" внутри них даёт одну кавычку. Поля обрезаются по краям.
func SplitFields(line string, delim rune) ([]string, error) {
	var (
		out      []string
		cur      strings.Builder
		inQuotes bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			cur.WriteRune(r)
		case r == delim && !inQuotes:
			out = append(out, unquote(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if inQuotes {
		return nil, fmt.Errorf("split line: %w", ErrUnterminatedQuote)
	}
	return append(out, unquote(cur.String())), nil
}

func unquote(field string) string {
	field = strings.TrimSpace(field)
	if len(field) >= 2 && field[0] == '"' && field[len(field)-1] == '"' {
		field = strings.ReplaceAll(field[1:len(field)-1], `""`, `"`)
		field = strings.TrimSpace(field)
	}
	return field
}
