package service

import (
	"regexp"
	"strings"

	"stock-import/internal/stockimport/model"
)

// Токены автофлакона/диффузора. Проверяются раньше чисел: "Авто 5мл" даёт car.
var carTokens = []string{"автофлакон", "авто", "car", "diffuser", "диффузор", "дифф"}

var reFirstInt = regexp.MustCompile(`\d+`)

var numericSizes = map[string]model.Size{
	"5":  model.Size5,
	"16": model.Size16,
	"20": model.Size20,
	"25": model.Size25,
	"30": model.Size30,
}

// NormalizeSize работает строго: нераспознанный объём даёт ok=false.
func NormalizeSize(raw string) (model.Size, bool) {
	n := Normalize(raw)
	if n == "" {
		return "", false
	}
	if hasCarToken(n) {
		return model.SizeCar, true
	}
	if m := reFirstInt.FindString(n); m != "" {
		if s, ok := numericSizes[m]; ok {
			return s, true
		}
	}
	return "", false
}

// MapSize работает мягко: всё нераспознанное считается 5 мл.
func MapSize(raw string) model.Size {
	if s, ok := NormalizeSize(raw); ok {
		return s
	}
	return model.Size5
}

func hasCarToken(n string) bool {
	for _, t := range carTokens {
		if strings.Contains(n, t) {
			return true
		}
	}
	return false
}

// заголовок вида "5", "5мл", "остаток 20 ml" (после Normalize пробелов уже нет)
var reSizeHeader = regexp.MustCompile(`(?:^|\D)(5|16|20|25|30)(?:мл|ml)?(?:\D|$)`)

// headerSize распознаёт заголовок колонки, который сам называет объём.
func headerSize(header string) (model.Size, bool) {
	n := Normalize(header)
	if n == "" {
		return "", false
	}
	if hasCarToken(n) {
		return model.SizeCar, true
	}
	if m := reSizeHeader.FindStringSubmatch(n); m != nil {
		return numericSizes[m[1]], true
	}
	return "", false
}
