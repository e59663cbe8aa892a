package service

import (
	"bytes"
	"encoding/json"
	"fmt"

	"stock-import/internal/stockimport/model"
)

// признаки по наличию полей в первом объекте массива
var kindProbes = []struct {
	kind   model.DataKind
	fields []string
}{
	{model.DataSales, []string{"saleDate", "soldAt", "items", "total", "sellerId"}},
	{model.DataInventory, []string{"quantity", "size", "locationId"}},
	{model.DataLocations, []string{"address", "contact"}},
}

// DetectDataKind определяет, что лежит в JSON-бэкапе: товары, точки или продажи.
// Пустой массив и непонятная форма дают DataUnknown.
func DetectDataKind(data []byte) (model.DataKind, error) {
	data = bytes.TrimSpace(data)
	var items []map[string]json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return model.DataUnknown, fmt.Errorf("detect data kind: %w", err)
	}
	if len(items) == 0 {
		return model.DataUnknown, nil
	}
	first := items[0]

	for _, probe := range kindProbes {
		for _, f := range probe.fields {
			if _, ok := first[f]; ok {
				return probe.kind, nil
			}
		}
	}
	// точка без адреса и контакта: только id + name
	_, hasID := first["id"]
	_, hasName := first["name"]
	if hasID && hasName && len(first) == 2 {
		return model.DataLocations, nil
	}
	return model.DataUnknown, nil
}
