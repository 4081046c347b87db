package cart

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
)

// Product entrada de catálogo vendible.
type Product struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	SellingPrice decimal.Decimal `json:"selling_price"`
}

// Service entrada de catálogo de servicios.
type Service struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	BasePrice decimal.Decimal `json:"base_price"`
}

// Catalog snapshot de productos y servicios contra el que se arma el carrito.
type Catalog struct {
	products map[int64]Product
	services map[int64]Service
}

// NewCatalog construye el snapshot. Con IDs repetidos gana el último.
func NewCatalog(products []Product, services []Service) *Catalog {
	c := &Catalog{
		products: make(map[int64]Product, len(products)),
		services: make(map[int64]Service, len(services)),
	}
	for _, p := range products {
		c.products[p.ID] = p
	}
	for _, s := range services {
		c.services[s.ID] = s
	}
	return c
}

// CatalogFromEntities arma el snapshot desde las entidades del catálogo.
func CatalogFromEntities(products []*entity.Product, services []*entity.Service) *Catalog {
	ps := make([]Product, 0, len(products))
	for _, p := range products {
		ps = append(ps, Product{ID: p.ID, Name: p.Name, Unit: p.Unit, SellingPrice: p.SellingPrice})
	}
	ss := make([]Service, 0, len(services))
	for _, s := range services {
		ss = append(ss, Service{ID: s.ID, Name: s.Name, BasePrice: s.BasePrice})
	}
	return NewCatalog(ps, ss)
}

// Product busca un producto por id.
func (c *Catalog) Product(id int64) (Product, bool) {
	if c == nil {
		return Product{}, false
	}
	p, ok := c.products[id]
	return p, ok
}

// Service busca un servicio por id.
func (c *Catalog) Service(id int64) (Service, bool) {
	if c == nil {
		return Service{}, false
	}
	s, ok := c.services[id]
	return s, ok
}

// Products entradas de productos ordenadas por nombre.
func (c *Catalog) Products() []Product {
	if c == nil {
		return nil
	}
	out := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Services entradas de servicios ordenadas por nombre.
func (c *Catalog) Services() []Service {
	if c == nil {
		return nil
	}
	out := make([]Service, 0, len(c.services))
	for _, s := range c.services {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out
}
