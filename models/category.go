package models

import "github.com/cleanarchmvc/catalog/domain"

// Category is the persisted form of domain.Category.
type Category struct {
	ID   int    `gorm:"primaryKey"`
	Name string `gorm:"type:varchar(100);not null"`
}

func (c *Category) TableName() string {
	return "categories"
}

// ToDomain rebuilds the entity, so rows that break its rules are reported
// instead of loaded.
func (c *Category) ToDomain() (*domain.Category, error) {
	return domain.NewCategoryWithID(c.ID, c.Name)
}

func (c *Category) FromDomain(category *domain.Category) {
	c.ID = category.ID()
	c.Name = category.Name()
}
