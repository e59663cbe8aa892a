package service

import (
	"stock-import/internal/stockimport/model"
)

// RestoreProducts сводит позиции бэкапа с каталогом по составному ключу.
// Совпавшая с каталогом позиция перезаписывается под её прежним id, повторы
// внутри бэкапа сливаются (побеждает последний). Невалидные позиции пропускаются.
// id из бэкапа сохраняется, только если он не занят позицией с другим ключом.
func RestoreProducts(catalog, items []model.Product) ([]model.Change, int) {
	byKey := make(map[productKey]string, len(catalog))
	idKey := make(map[string]productKey, len(catalog))
	for _, p := range catalog {
		k := keyOf(p)
		byKey[k] = p.ID
		idKey[p.ID] = k
	}

	var (
		changes []model.Change
		pos     = make(map[productKey]int)
		skipped int
	)
	for _, p := range items {
		if err := checkProduct(&p); err != nil {
			skipped++
			continue
		}
		k := keyOf(p)

		if i, ok := pos[k]; ok {
			p.ID = changes[i].Product.ID
			changes[i].Product = p
			continue
		}

		kind := model.ChangeInsert
		if id, ok := byKey[k]; ok {
			p.ID = id
			kind = model.ChangeUpdate
		} else if owner, taken := idKey[p.ID]; p.ID == "" || (taken && owner != k) {
			p.ID = newID()
		}
		byKey[k] = p.ID
		idKey[p.ID] = k
		pos[k] = len(changes)
		changes = append(changes, model.Change{Kind: kind, Product: p})
	}
	return changes, skipped
}
