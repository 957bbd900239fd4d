package models

import (
	"github.com/cleanarchmvc/catalog/domain"
	"github.com/shopspring/decimal"
)

// Product is the persisted form of domain.Product.
type Product struct {
	ID          int             `gorm:"primaryKey"`
	Name        string          `gorm:"type:varchar(100);not null"`
	Description string          `gorm:"type:varchar(200)"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock       int             `gorm:"not null"`
	Image       string          `gorm:"type:varchar(250)"`
	CategoryID  int             `gorm:"not null;index"`
	Category    *Category       `gorm:"foreignKey:CategoryID"`
}

func (p *Product) TableName() string {
	return "products"
}

// ToDomain rebuilds the entity and attaches the category when it was preloaded.
func (p *Product) ToDomain() (*domain.Product, error) {
	product, err := domain.NewProductWithID(p.ID, p.Name, p.Description, p.Price, p.Stock, p.Image)
	if err != nil {
		return nil, err
	}
	product.SetCategoryID(p.CategoryID)

	if p.Category != nil {
		category, err := p.Category.ToDomain()
		if err != nil {
			return nil, err
		}
		product.AssignCategory(category)
	}
	return product, nil
}

func (p *Product) FromDomain(product *domain.Product) {
	p.ID = product.ID()
	p.Name = product.Name()
	p.Description = product.Description()
	p.Price = product.Price()
	p.Stock = product.Stock()
	p.Image = product.Image()
	p.CategoryID = product.CategoryID()
}

// updates lists the columns written by an update, zero values included.
func (p *Product) updates() map[string]interface{} {
	return map[string]interface{}{
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"stock":       p.Stock,
		"image":       p.Image,
		"category_id": p.CategoryID,
	}
}
