package service

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var reKeepQty = regexp.MustCompile(`[^\d.,]`)

// ParseQuantity вытаскивает неотрицательное целое из "грязного" текста:
// "12", "12,5" (→13), " 7 шт ", "1.234.5". Мусор даёт 0.
func ParseQuantity(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	// быстрый путь: чистое число
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 && !math.IsInf(f, 0) {
		return roundQty(f)
	}

	s = reKeepQty.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, ",", ".")
	if i := strings.IndexByte(s, '.'); i >= 0 {
		// оставляем только первую десятичную точку
		s = s[:i+1] + strings.ReplaceAll(s[i+1:], ".", "")
	}
	if s == "" || s == "." {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return roundQty(f)
}

func roundQty(f float64) int {
	r := math.Round(f)
	if r <= 0 || math.IsNaN(r) {
		return 0
	}
	if r > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(r)
}
