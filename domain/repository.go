package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrCategoryNotFound is returned when a category does not exist.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrProductNotFound is returned when a product does not exist.
	ErrProductNotFound = errors.New("product not found")
	// ErrCategoryInUse is returned when removing a category that still has products.
	ErrCategoryInUse = errors.New("category has products")
)

// ProductFilter narrows and pages a product listing.
type ProductFilter struct {
	Offset        int
	Limit         int
	CategoryID    *int
	PriceLessThan *decimal.Decimal
}

type CategoryRepository interface {
	GetCategories(ctx context.Context) ([]*Category, error)
	GetByID(ctx context.Context, id int) (*Category, error)
	Create(ctx context.Context, category *Category) (*Category, error)
	Update(ctx context.Context, category *Category) (*Category, error)
	Remove(ctx context.Context, id int) error
}

type ProductRepository interface {
	// GetProducts returns the requested page and the number of products
	// matching the filter before paging.
	GetProducts(ctx context.Context, filter ProductFilter) ([]*Product, int64, error)
	GetByID(ctx context.Context, id int) (*Product, error)
	// GetProductCategory returns the product with its category loaded.
	GetProductCategory(ctx context.Context, id int) (*Product, error)
	Create(ctx context.Context, product *Product) (*Product, error)
	Update(ctx context.Context, product *Product) (*Product, error)
	Remove(ctx context.Context, id int) error
}
