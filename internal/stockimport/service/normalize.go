package service

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// всё, что не буква/цифра/подчёркивание (любой алфавит)
var reNonWord = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// Normalize приводит строку к виду для нечёткого сравнения:
// NFC, нижний регистр, ё→е, без пробелов и пунктуации.
// Кириллица и латиница обрабатываются одинаково, без транслитерации.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFC.String(s)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "ё", "е")
	return reNonWord.ReplaceAllString(s, "")
}

// containsEither: двусторонняя проверка вхождения по нормализованным строкам.
// Пустые строки не совпадают ни с чем.
func containsEither(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
