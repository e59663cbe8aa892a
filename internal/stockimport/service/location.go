package service

import (
	"stock-import/internal/stockimport/model"
)

// ResolvedLocation: точка, к которой отнесена строка импорта.
type ResolvedLocation struct {
	ID   string
	Name string
}

// ResolveLocation ищет точку по тексту из файла: нормализованное имя точки
// входит в текст или текст входит в имя (сокращения и расширения).
// Порядок: порядок каталога, первое совпадение выигрывает.
// Если не нашли, ручная точка fallbackID (кроме UseFromFile).
func ResolveLocation(raw string, locations []model.Location, fallbackID string) (ResolvedLocation, bool) {
	if n := Normalize(raw); n != "" {
		for _, loc := range locations {
			if containsEither(Normalize(loc.Name), n) {
				return ResolvedLocation{ID: loc.ID, Name: loc.Name}, true
			}
		}
	}
	if fallbackID == "" || fallbackID == model.UseFromFile {
		return ResolvedLocation{}, false
	}
	for _, loc := range locations {
		if loc.ID == fallbackID {
			return ResolvedLocation{ID: loc.ID, Name: loc.Name}, true
		}
	}
	return ResolvedLocation{ID: fallbackID, Name: fallbackID}, true
}

// минимальная похожесть, при которой подсказываем ближайшую точку
const hintThreshold = 0.6

// closestLocation: подсказка для предупреждения, когда точка не распозналась.
func closestLocation(raw string, locations []model.Location) (model.Location, bool) {
	n := Normalize(raw)
	if n == "" {
		return model.Location{}, false
	}
	var (
		best  model.Location
		score = -1.0
	)
	for _, loc := range locations {
		if s := similarity(n, Normalize(loc.Name)); s > score {
			best, score = loc, s
		}
	}
	return best, score >= hintThreshold
}
