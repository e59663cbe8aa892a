package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"stock-import/internal/stockimport/model"
)

var ErrNoTargetLocation = errors.New("target location is required for zero-fill")

// newID это генератор суррогатных id; подменяется в тестах.
var newID = uuid.NewString

// Reconciliation содержит новый каталог, список операций над ним и отчёт.
// Входной каталог не меняется.
type Reconciliation struct {
	Catalog []model.Product
	Changes []model.Change
	Result  model.ImportResult
}

// productKey: составной ключ позиции каталога.
type productKey struct {
	name     string
	size     model.Size
	typ      model.ProductType
	location string
}

// zeroKey: ключ кандидата на обнуление (без типа).
type zeroKey struct {
	name     string
	size     model.Size
	location string
}

func keyOf(p model.Product) productKey {
	return productKey{Normalize(p.Name), p.Size, p.Type, p.LocationID}
}

// Reconcile сводит строки импорта с каталогом: совпадение по (имя, объём, тип, точка)
// перезаписывает количество, иначе создаётся новая позиция. При zeroNonExisting
// позиции целевой точки с остатком > 0, которых нет в файле, обнуляются (не удаляются).
func Reconcile(rows []model.ImportRow, catalog []model.Product, targetLocationID string, zeroNonExisting bool) Reconciliation {
	if zeroNonExisting && (targetLocationID == "" || targetLocationID == model.UseFromFile) {
		return Reconciliation{Catalog: cloneCatalog(catalog), Result: errorResult(ErrNoTargetLocation)}
	}

	out := cloneCatalog(catalog)
	index := make(map[productKey]int, len(out))
	for i, p := range out {
		index[keyOf(p)] = i
	}

	candidates := make(map[zeroKey]struct{})
	if zeroNonExisting {
		for _, p := range out {
			if p.LocationID == targetLocationID && p.Quantity > 0 {
				candidates[zeroKey{Normalize(p.Name), p.Size, p.LocationID}] = struct{}{}
			}
		}
	}

	rec := Reconciliation{Result: model.ImportResult{Logs: []model.LogItem{}}}
	res := &rec.Result

	for _, r := range rows {
		if msg := validateRow(r); msg != "" {
			res.SkippedCount++
			res.Logs = append(res.Logs, model.LogItem{Type: model.LogWarning, Message: rowPrefix(r) + msg})
			continue
		}
		if r.Type == "" {
			r.Type = model.TypePerfume
		}
		delete(candidates, zeroKey{Normalize(r.Name), r.Size, r.LocationID})

		k := productKey{Normalize(r.Name), r.Size, r.Type, r.LocationID}
		if i, ok := index[k]; ok {
			prev := out[i].Quantity
			out[i].Quantity = r.Quantity
			if r.Price != nil {
				out[i].Price = r.Price
			}
			rec.Changes = append(rec.Changes, model.Change{Kind: model.ChangeUpdate, Product: out[i]})
			res.UpdatedItemsCount++
			res.ImportedCount++
			res.Logs = append(res.Logs, model.LogItem{
				Type:    model.LogSuccess,
				Message: fmt.Sprintf("%sобновлено «%s» %s (%s): %d → %d", rowPrefix(r), out[i].Name, r.Size.Label(), locationLabel(r), prev, r.Quantity),
			})
			continue
		}

		p := model.Product{
			ID:         newID(),
			Name:       r.Name,
			Size:       r.Size,
			Type:       r.Type,
			LocationID: r.LocationID,
			Quantity:   r.Quantity,
			Price:      r.Price,
		}
		index[k] = len(out)
		out = append(out, p)
		rec.Changes = append(rec.Changes, model.Change{Kind: model.ChangeInsert, Product: p})
		res.NewItemsCount++
		res.ImportedCount++
		res.Logs = append(res.Logs, model.LogItem{
			Type:    model.LogSuccess,
			Message: fmt.Sprintf("%sдобавлено «%s» %s (%s): %d шт.", rowPrefix(r), p.Name, r.Size.Label(), locationLabel(r), r.Quantity),
		})
	}

	if zeroNonExisting {
		// обходим каталог, а не map: порядок журнала детерминирован
		for i := range out {
			p := &out[i]
			if _, ok := candidates[zeroKey{Normalize(p.Name), p.Size, p.LocationID}]; !ok || p.Quantity == 0 {
				continue
			}
			prev := p.Quantity
			p.Quantity = 0
			rec.Changes = append(rec.Changes, model.Change{Kind: model.ChangeZero, Product: *p})
			res.ZeroedItemsCount++
			res.Logs = append(res.Logs, model.LogItem{
				Type:    model.LogWarning,
				Message: fmt.Sprintf("обнулено «%s» %s: нет в файле (было %d)", p.Name, p.Size.Label(), prev),
			})
		}
	}

	rec.Catalog = out
	return rec
}

func validateRow(r model.ImportRow) string {
	switch {
	case r.Name == "" || r.LocationID == "":
		return "не указано название или точка"
	case !r.Size.Valid():
		return fmt.Sprintf("неподдерживаемый объём «%s»", r.Size)
	case r.Quantity <= 0:
		return fmt.Sprintf("некорректное количество %d", r.Quantity)
	}
	return ""
}

func rowPrefix(r model.ImportRow) string {
	if r.Line > 0 {
		return fmt.Sprintf("Строка %d: ", r.Line)
	}
	return ""
}

func locationLabel(r model.ImportRow) string {
	if r.LocationName != "" {
		return r.LocationName
	}
	return r.LocationID
}

func cloneCatalog(c []model.Product) []model.Product {
	out := make([]model.Product, len(c))
	copy(out, c)
	return out
}

func errorResult(err error) model.ImportResult {
	return model.ImportResult{Logs: []model.LogItem{{Type: model.LogError, Message: errorMessage(err)}}}
}
