package service

// Role: смысловая роль колонки.
type Role string

const (
	RoleName     Role = "name"
	RoleQuantity Role = "quantity"
	RolePrice    Role = "price"
	RoleSize     Role = "size"
	RoleType     Role = "type"
	RoleLocation Role = "location"
)

// RoleOrder: порядок, в котором роли забирают колонки.
// Колонка, занятая ролью раньше, другим ролям уже не достаётся.
var RoleOrder = []Role{RoleName, RoleQuantity, RolePrice, RoleSize, RoleType, RoleLocation}

// Synonyms содержит известные варианты заголовков (RU + EN). Расширяется без правки кода классификатора.
var Synonyms = map[Role][]string{
	RoleName:     {"название", "наименование", "товар", "продукт", "аромат", "name", "product", "title", "item"},
	RoleQuantity: {"количество", "остаток", "кол-во", "колво", "число", "штук", "quantity", "amount", "count", "qty", "pcs", "stock"},
	RolePrice:    {"цена", "стоимость", "price", "cost"},
	RoleSize:     {"объем", "объём", "размер", "size", "volume", "capacity"},
	RoleType:     {"тип", "вид", "type", "category", "kind"},
	RoleLocation: {"точка", "магазин", "место", "расположение", "location", "store", "shop", "place"},
}

// bidirectional: роли, где заголовок может быть и короче синонима ("маг" ⊂ "магазин").
var bidirectional = map[Role]bool{RoleLocation: true}

// Значения колонки "тип", которые означают не парфюм. Всё остальное считается парфюмом.
var otherTypeTokens = []string{"друг", "проч", "аксессуар", "other", "misc", "accessor"}
