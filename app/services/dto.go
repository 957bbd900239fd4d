package services

import (
	"github.com/cleanarchmvc/catalog/domain"
	"github.com/shopspring/decimal"
)

type CategoryDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type ProductDTO struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Image       string          `json:"image,omitempty"`
	CategoryID  int             `json:"category_id"`
	Category    *CategoryDTO    `json:"category,omitempty"`
}

// ProductPage is one page of a product listing.
type ProductPage struct {
	Total    int64
	Products []ProductDTO
}

func toCategoryDTO(c *domain.Category) CategoryDTO {
	return CategoryDTO{ID: c.ID(), Name: c.Name()}
}

func toProductDTO(p *domain.Product) ProductDTO {
	dto := ProductDTO{
		ID:          p.ID(),
		Name:        p.Name(),
		Description: p.Description(),
		Price:       p.Price(),
		Stock:       p.Stock(),
		Image:       p.Image(),
		CategoryID:  p.CategoryID(),
	}
	if c := p.Category(); c != nil {
		category := toCategoryDTO(c)
		dto.Category = &category
	}
	return dto
}
