package service

import (
	"errors"
	"regexp"
	"strings"

	"stock-import/internal/stockimport/model"
)

var (
	ErrNoNameColumn = errors.New("name column not found")
	ErrNoQuantity   = errors.New("quantity columns not found")
)

const (
	sampleRows       = 5
	numericThreshold = 0.6
)

// ClassifyHeaders размечает шапку по цепочке правил:
//  1. роли по спискам синонимов (сначала точное совпадение, потом вхождение);
//  2. колонки, заголовок которых называет объём ("5мл", "Автофлакон");
//  3. если количества так и не нашлось, угадываем числовые колонки по первым строкам sample.
func ClassifyHeaders(headers []string, sample [][]string) (model.Classification, error) {
	cls := model.Classification{NameIdx: -1, SizeIdx: -1, TypeIdx: -1, LocationIdx: -1, QuantityIdx: -1, PriceIdx: -1}

	norm := make([]string, len(headers))
	for i, h := range headers {
		norm[i] = Normalize(h)
	}

	claimed := make(map[int]bool)

	// Колонки-объёмы не должны уйти в "количество" по слову "остаток 5мл".
	// Имя забирается до них: "Товар" с цифрой в названии всё равно колонка имени.
	cls.NameIdx = findRole(norm, RoleName, claimed)
	if cls.NameIdx < 0 {
		return cls, ErrNoNameColumn
	}
	claimed[cls.NameIdx] = true

	cls.SizeColumns = detectSizeColumns(headers, claimed)
	for _, sc := range cls.SizeColumns {
		claimed[sc.Index] = true
	}

	for _, role := range RoleOrder[1:] {
		idx := findRole(norm, role, claimed)
		if idx < 0 {
			continue
		}
		claimed[idx] = true
		switch role {
		case RoleQuantity:
			cls.QuantityIdx = idx
		case RolePrice:
			cls.PriceIdx = idx
		case RoleSize:
			cls.SizeIdx = idx
		case RoleType:
			cls.TypeIdx = idx
		case RoleLocation:
			cls.LocationIdx = idx
		}
	}

	if !cls.HasQuantity() {
		inferQuantity(&cls, len(headers), sample, claimed)
	}
	if !cls.HasQuantity() {
		return cls, ErrNoQuantity
	}
	return cls, nil
}

// findRole возвращает первую свободную колонку роли: сначала точное совпадение
// с синонимом, затем вхождение синонима в заголовок (для bidirectional, в обе стороны).
func findRole(norm []string, role Role, claimed map[int]bool) int {
	syns := make([]string, 0, len(Synonyms[role]))
	for _, s := range Synonyms[role] {
		syns = append(syns, Normalize(s))
	}

	for i, h := range norm {
		if claimed[i] || h == "" {
			continue
		}
		for _, s := range syns {
			if h == s {
				return i
			}
		}
	}
	for i, h := range norm {
		if claimed[i] || h == "" {
			continue
		}
		for _, s := range syns {
			if s == "" {
				continue
			}
			if strings.Contains(h, s) || (bidirectional[role] && strings.Contains(s, h)) {
				return i
			}
		}
	}
	return -1
}

// detectSizeColumns: по одной колонке на объём, первая встреченная выигрывает.
// Результат в каноничном порядке объёмов.
func detectSizeColumns(headers []string, claimed map[int]bool) []model.SizeColumn {
	found := make(map[model.Size]int)
	for i, h := range headers {
		if claimed[i] {
			continue
		}
		s, ok := headerSize(h)
		if !ok {
			continue
		}
		if _, dup := found[s]; !dup {
			found[s] = i
		}
	}
	var out []model.SizeColumn
	for _, s := range model.Sizes {
		if idx, ok := found[s]; ok {
			out = append(out, model.SizeColumn{Size: s, Index: idx})
		}
	}
	return out
}

var reNumericCell = regexp.MustCompile(`^[\d\s.,]*\d[\d\s.,]*$`)

// inferQuantity ищет среди неразмеченных колонок числовые (≥60% строк выборки).
// Одна такая колонка даёт общее количество, но только при найденной колонке объёма:
// без неё одиночное число ничем не отличается от артикула или цены.
// Несколько таких колонок идут объёмами по порядку 5,16,20,25,30,car.
func inferQuantity(cls *model.Classification, width int, sample [][]string, claimed map[int]bool) {
	if len(sample) > sampleRows {
		sample = sample[:sampleRows]
	}
	if len(sample) == 0 {
		return
	}

	var likely []int
	for col := 0; col < width; col++ {
		if claimed[col] {
			continue
		}
		hits := 0
		for _, row := range sample {
			if col < len(row) && reNumericCell.MatchString(strings.TrimSpace(row[col])) {
				hits++
			}
		}
		if float64(hits)/float64(len(sample)) >= numericThreshold {
			likely = append(likely, col)
		}
	}

	switch {
	case len(likely) == 1 && cls.SizeIdx >= 0:
		cls.QuantityIdx = likely[0]
		cls.Inferred = true
	case len(likely) > 1:
		for i, col := range likely {
			if i >= len(model.Sizes) {
				break
			}
			cls.SizeColumns = append(cls.SizeColumns, model.SizeColumn{Size: model.Sizes[i], Index: col})
		}
		cls.Inferred = true
	}
}
