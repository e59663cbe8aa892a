package service

import (
	"fmt"
	"strings"

	"stock-import/internal/stockimport/model"
	"stock-import/internal/utils"
)

// RowOptions: параметры построения строк импорта.
type RowOptions struct {
	Locations        []model.Location
	ManualLocationID string // ручная точка или model.UseFromFile
	StrictSizes      bool   // нераспознанный объём отклоняет строку вместо "5 мл"
}

// BuildRows превращает строки данных в позиции импорта: по одной на каждую
// заполненную колонку-объём или по одной на строку в режиме общего количества.
// Порядок сохраняется, дубли не схлопываются. Каждая отброшенная строка
// попадает в журнал и в счётчик skipped.
func BuildRows(lines []Line, delim rune, cls model.Classification, opts RowOptions) (rows []model.ImportRow, logs []model.LogItem, skipped int) {
	for _, ln := range lines {
		out, item := buildLine(ln, delim, cls, opts)
		if item != nil {
			logs = append(logs, *item)
		}
		if len(out) == 0 {
			skipped++
			continue
		}
		rows = append(rows, out...)
	}
	return rows, logs, skipped
}

// buildLine обрабатывает одну строку. Пустой результат всегда сопровождается записью журнала.
func buildLine(ln Line, delim rune, cls model.Classification, opts RowOptions) ([]model.ImportRow, *model.LogItem) {
	fields, err := SplitFields(ln.Text, delim)
	if err != nil {
		return nil, lineLog(model.LogError, ln, "не удалось разобрать строку", err.Error())
	}

	need := cls.NameIdx + 1
	if !cls.MultiSize() && cls.QuantityIdx+1 > need {
		need = cls.QuantityIdx + 1
	}
	if len(fields) < need {
		return nil, lineLog(model.LogWarning, ln,
			fmt.Sprintf("недостаточно колонок (нужно %d, есть %d)", need, len(fields)), ln.Text)
	}

	cell := func(idx int) string {
		if idx < 0 || idx >= len(fields) {
			return ""
		}
		return fields[idx]
	}

	name := cell(cls.NameIdx)
	if name == "" {
		return nil, lineLog(model.LogWarning, ln, "пустое название", ln.Text)
	}

	base := model.ImportRow{
		Line:  ln.No,
		Name:  name,
		Type:  resolveType(cell(cls.TypeIdx)),
		Price: parsePrice(cell(cls.PriceIdx)),
	}

	type sized struct {
		size model.Size
		qty  int
	}
	var items []sized

	if cls.MultiSize() {
		for _, sc := range cls.SizeColumns {
			v := cell(sc.Index)
			if v == "" {
				continue
			}
			if q := ParseQuantity(v); q > 0 {
				items = append(items, sized{sc.Size, q})
			}
		}
		if len(items) == 0 {
			return nil, lineLog(model.LogWarning, ln, "нет количества ни для одного объёма", ln.Text)
		}
	} else {
		size := model.Size5
		if cls.SizeIdx >= 0 {
			raw := cell(cls.SizeIdx)
			if opts.StrictSizes {
				s, ok := NormalizeSize(raw)
				if !ok {
					return nil, lineLog(model.LogWarning, ln,
						fmt.Sprintf("неподдерживаемый объём «%s» для «%s»", raw, name), ln.Text)
				}
				size = s
			} else {
				size = MapSize(raw)
			}
		}
		q := ParseQuantity(cell(cls.QuantityIdx))
		if q <= 0 {
			return nil, lineLog(model.LogWarning, ln,
				fmt.Sprintf("количество «%s» для «%s» не распознано или не больше нуля", cell(cls.QuantityIdx), name), ln.Text)
		}
		items = append(items, sized{size, q})
	}

	rawLoc := cell(cls.LocationIdx)
	loc, ok := ResolveLocation(rawLoc, opts.Locations, opts.ManualLocationID)
	if !ok {
		msg := fmt.Sprintf("точка «%s» для «%s» не найдена и не выбрана вручную", rawLoc, name)
		if hint, found := closestLocation(rawLoc, opts.Locations); found {
			msg += fmt.Sprintf(" (возможно, «%s»)", hint.Name)
		}
		return nil, lineLog(model.LogWarning, ln, msg, ln.Text)
	}
	base.LocationID, base.LocationName = loc.ID, loc.Name

	out := make([]model.ImportRow, 0, len(items))
	for _, it := range items {
		r := base
		r.Size, r.Quantity = it.size, it.qty
		out = append(out, r)
	}
	return out, nil
}

func resolveType(raw string) model.ProductType {
	n := Normalize(raw)
	for _, t := range otherTypeTokens {
		if strings.Contains(n, t) {
			return model.TypeOther
		}
	}
	return model.TypePerfume
}

func parsePrice(raw string) *float64 {
	f, ok := utils.ParseFloatRU(raw)
	if !ok || f < 0 {
		return nil
	}
	return &f
}

func lineLog(t model.LogType, ln Line, msg, details string) *model.LogItem {
	return &model.LogItem{Type: t, Message: fmt.Sprintf("Строка %d: %s", ln.No, msg), Details: details}
}
