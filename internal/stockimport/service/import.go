package service

import (
	"errors"
	"fmt"
	"strings"

	"stock-import/internal/stockimport/model"
)

var (
	ErrEmptyInput = errors.New("input is empty")
	ErrNoData     = errors.New("no data rows after header")
)

// DefaultPreviewRows: сколько строк отдаётся в предпросмотр.
const DefaultPreviewRows = 10

type ParseOptions struct {
	Locations        []model.Location
	ManualLocationID string
	StrictSizes      bool
	PreviewRows      int // <= 0 → DefaultPreviewRows
}

type ImportOptions struct {
	Locations        []model.Location
	TargetLocationID string
	ZeroNonExisting  bool
}

// errorMessage: текст фатальной ошибки для журнала импорта.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, ErrEmptyInput):
		return "Файл пуст"
	case errors.Is(err, ErrNoData):
		return "В файле только заголовок, нет строк с данными"
	case errors.Is(err, ErrNoNameColumn):
		return "Не найдена колонка с названием товара (ожидается «Название», «Наименование», «Name» и т.п.)"
	case errors.Is(err, ErrNoQuantity):
		return "Не найдены колонки с количеством: ни общей колонки, ни колонок по объёмам"
	case errors.Is(err, ErrNoTargetLocation):
		return "Для обнуления отсутствующих позиций нужно выбрать точку"
	}
	return err.Error()
}

type parsed struct {
	delim   rune
	headers []string
	cls     model.Classification
	rows    []model.ImportRow
	logs    []model.LogItem
	skipped int
}

func parse(raw string, opts RowOptions) (parsed, error) {
	var p parsed
	if strings.TrimSpace(strings.TrimPrefix(raw, "\uFEFF")) == "" {
		return p, ErrEmptyInput
	}
	lines := SplitLines(raw)
	if len(lines) < 2 {
		return p, ErrNoData
	}

	p.delim = DetectDelimiter(lines[0].Text)
	headers, err := SplitFields(lines[0].Text, p.delim)
	if err != nil {
		return p, fmt.Errorf("header: %w", err)
	}
	p.headers = headers

	data := lines[1:]
	sample := make([][]string, 0, sampleRows)
	for _, ln := range data {
		if len(sample) == sampleRows {
			break
		}
		if f, err := SplitFields(ln.Text, p.delim); err == nil {
			sample = append(sample, f)
		}
	}

	p.cls, err = ClassifyHeaders(headers, sample)
	if err != nil {
		return p, err
	}
	p.rows, p.logs, p.skipped = BuildRows(data, p.delim, p.cls, opts)
	return p, nil
}

// Parse разбирает текст без изменения каталога (предпросмотр перед импортом).
// Ошибки входных данных возвращаются в Error и журнале, а не паникой.
func Parse(raw string, opts ParseOptions) model.ParseResult {
	p, err := parse(raw, RowOptions{
		Locations:        opts.Locations,
		ManualLocationID: opts.ManualLocationID,
		StrictSizes:      opts.StrictSizes,
	})
	if err != nil {
		msg := errorMessage(err)
		return model.ParseResult{
			Headers:  p.headers,
			Preview:  []model.ImportRow{},
			FullData: []model.ImportRow{},
			Logs:     []model.LogItem{{Type: model.LogError, Message: msg}},
			Error:    msg,
		}
	}

	limit := opts.PreviewRows
	if limit <= 0 {
		limit = DefaultPreviewRows
	}
	rows := p.rows
	if rows == nil {
		rows = []model.ImportRow{}
	}
	logs := p.logs
	if logs == nil {
		logs = []model.LogItem{}
	}
	cls := p.cls
	return model.ParseResult{
		Delimiter:      string(p.delim),
		Headers:        p.headers,
		Classification: &cls,
		Preview:        rows[:min(limit, len(rows))],
		FullData:       rows,
		SkippedCount:   p.skipped,
		Logs:           logs,
	}
}

// Import выполняет полный цикл: разбор (строгий по объёмам) и сверка с каталогом.
// Точка импорта служит и ручной точкой для строк без распознанной точки.
func Import(raw string, catalog []model.Product, opts ImportOptions) Reconciliation {
	if opts.ZeroNonExisting && (opts.TargetLocationID == "" || opts.TargetLocationID == model.UseFromFile) {
		return Reconciliation{Catalog: cloneCatalog(catalog), Result: errorResult(ErrNoTargetLocation)}
	}

	p, err := parse(raw, RowOptions{
		Locations:        opts.Locations,
		ManualLocationID: opts.TargetLocationID,
		StrictSizes:      true,
	})
	if err != nil {
		return Reconciliation{Catalog: cloneCatalog(catalog), Result: errorResult(err)}
	}

	rec := Reconcile(p.rows, catalog, opts.TargetLocationID, opts.ZeroNonExisting)
	rec.Result.SkippedCount += p.skipped
	rec.Result.Logs = append(p.logs, rec.Result.Logs...)
	return rec
}
