package model

import "fmt"

// Size задаёт каноничный объём флакона. Закрытый список, см. Sizes.
type Size string

const (
	Size5   Size = "5"
	Size16  Size = "16"
	Size20  Size = "20"
	Size25  Size = "25"
	Size30  Size = "30"
	SizeCar Size = "car"
)

// Sizes в каноничном порядке (он же порядок позиционного маппинга колонок).
var Sizes = []Size{Size5, Size16, Size20, Size25, Size30, SizeCar}

var sizeLabels = map[Size]string{
	Size5:   "5 мл",
	Size16:  "16 мл",
	Size20:  "20 мл",
	Size25:  "25 мл",
	Size30:  "30 мл",
	SizeCar: "Автофлакон",
}

// Label возвращает отображаемое название объёма ("5 мл", "Автофлакон").
func (s Size) Label() string {
	if l, ok := sizeLabels[s]; ok {
		return l
	}
	return string(s)
}

func (s Size) Valid() bool {
	_, ok := sizeLabels[s]
	return ok
}

// UnmarshalText принимает и короткий ключ ("car"), и подпись ("Автофлакон").
func (s *Size) UnmarshalText(b []byte) error {
	v := Size(b)
	if v.Valid() {
		*s = v
		return nil
	}
	for k, l := range sizeLabels {
		if l == string(b) {
			*s = k
			return nil
		}
	}
	return fmt.Errorf("unsupported size %q", string(b))
}

type ProductType string

const (
	TypePerfume ProductType = "perfume"
	TypeOther   ProductType = "other"
)

// UseFromFile как значение ручной точки, означающее "брать точку из файла".
const UseFromFile = "use-from-file"

type Product struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Size       Size        `json:"size"`
	Type       ProductType `json:"type"`
	LocationID string      `json:"locationId"`
	Quantity   int         `json:"quantity"`
	Price      *float64    `json:"price,omitempty"`
}

type Location struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Contact string `json:"contact,omitempty"`
}

// ImportRow описывает одну нормализованную позиция импорта, живёт только в рамках одного вызова.
type ImportRow struct {
	Line         int         `json:"line"` // физический номер строки файла (1-based, шапка = 1)
	Name         string      `json:"name"`
	Size         Size        `json:"size"`
	Type         ProductType `json:"type"`
	LocationID   string      `json:"locationId"`
	LocationName string      `json:"locationName"`
	Quantity     int         `json:"quantity"`
	Price        *float64    `json:"price,omitempty"`
}

type LogType string

const (
	LogSuccess LogType = "success"
	LogWarning LogType = "warning"
	LogError   LogType = "error"
)

type LogItem struct {
	Type    LogType `json:"type"`
	Message string  `json:"message"`
	Details string  `json:"details,omitempty"`
}

type ImportResult struct {
	ImportedCount     int       `json:"importedCount"`
	SkippedCount      int       `json:"skippedCount"`
	NewItemsCount     int       `json:"newItemsCount"`
	UpdatedItemsCount int       `json:"updatedItemsCount"`
	ZeroedItemsCount  int       `json:"zeroedItemsCount"`
	Logs              []LogItem `json:"logs"`
}

// SizeColumn: колонка, заголовок которой сам называет объём ("20мл").
type SizeColumn struct {
	Size  Size `json:"size"`
	Index int  `json:"index"`
}

// Classification: результат разметки шапки. -1 означает "колонки нет".
type Classification struct {
	NameIdx     int          `json:"nameIdx"`
	SizeIdx     int          `json:"sizeIdx"`
	TypeIdx     int          `json:"typeIdx"`
	LocationIdx int          `json:"locationIdx"`
	QuantityIdx int          `json:"quantityIdx"`
	PriceIdx    int          `json:"priceIdx"`
	SizeColumns []SizeColumn `json:"sizeColumns,omitempty"`
	Inferred    bool         `json:"inferred"` // количество найдено по числовой выборке, а не по заголовкам
}

// MultiSize сообщает про режим "одна колонка на объём".
func (c Classification) MultiSize() bool { return len(c.SizeColumns) > 0 }

func (c Classification) HasQuantity() bool { return c.MultiSize() || c.QuantityIdx >= 0 }

type ChangeKind string

const (
	ChangeInsert ChangeKind = "insert"
	ChangeUpdate ChangeKind = "update"
	ChangeZero   ChangeKind = "zero"
)

// Change описывает одну операцию над каталогом, применяет её вызывающая сторона.
type Change struct {
	Kind    ChangeKind `json:"kind"`
	Product Product    `json:"product"`
}

// ParseResult хранит итог разбора без записи в каталог (режим предпросмотра).
type ParseResult struct {
	Delimiter      string          `json:"delimiter,omitempty"`
	Headers        []string        `json:"headers,omitempty"`
	Classification *Classification `json:"classification,omitempty"`
	Preview        []ImportRow     `json:"preview"`
	FullData       []ImportRow     `json:"fullData"`
	SkippedCount   int             `json:"skippedCount"`
	Logs           []LogItem       `json:"logs"`
	Error          string          `json:"error,omitempty"`
}

// DataKind говорит, что лежит в загруженном JSON-бэкапе.
type DataKind string

const (
	DataUnknown   DataKind = "unknown"
	DataInventory DataKind = "inventory"
	DataLocations DataKind = "locations"
	DataSales     DataKind = "sales"
)
