package service

import (
	"errors"
	"fmt"
	"strings"

	"stock-import/internal/stockimport/model"
)

var ErrInvalidProduct = errors.New("invalid product")

// AddProduct: ручное добавление одной позиции. В отличие от импорта,
// при совпадении составного ключа количество СКЛАДЫВАЕТСЯ.
func AddProduct(catalog []model.Product, p model.Product) ([]model.Product, model.Change, error) {
	if err := checkProduct(&p); err != nil {
		return catalog, model.Change{}, err
	}

	out := cloneCatalog(catalog)
	k := keyOf(p)
	for i := range out {
		if keyOf(out[i]) != k {
			continue
		}
		out[i].Quantity += p.Quantity
		if p.Price != nil {
			out[i].Price = p.Price
		}
		return out, model.Change{Kind: model.ChangeUpdate, Product: out[i]}, nil
	}

	p.ID = newID()
	out = append(out, p)
	return out, model.Change{Kind: model.ChangeInsert, Product: p}, nil
}

// checkProduct обрезает имя, проставляет тип по умолчанию и проверяет поля.
func checkProduct(p *model.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Type == "" {
		p.Type = model.TypePerfume
	}
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidProduct)
	case p.LocationID == "":
		return fmt.Errorf("%w: empty location", ErrInvalidProduct)
	case !p.Size.Valid():
		return fmt.Errorf("%w: unsupported size %q", ErrInvalidProduct, p.Size)
	case p.Type != model.TypePerfume && p.Type != model.TypeOther:
		return fmt.Errorf("%w: unsupported type %q", ErrInvalidProduct, p.Type)
	case p.Quantity < 0:
		return fmt.Errorf("%w: negative quantity", ErrInvalidProduct)
	}
	return nil
}
