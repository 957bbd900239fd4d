package domain

import (
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	msgProductNameTooShort = "Name is too short, minimum 3 characters"
	msgImageTooLong        = "Invalid image name, too long, maximum 250 characters"

	maxImageLength = 250
)

// Product is a catalog item. An empty image means the product has none.
type Product struct {
	id          int
	name        string
	description string
	price       decimal.Decimal
	stock       int
	image       string
	categoryID  int
	category    *Category
}

// NewProduct creates a product that has not been persisted yet.
func NewProduct(name, description string, price decimal.Decimal, stock int, image string) (*Product, error) {
	return NewProductWithID(0, name, description, price, stock, image)
}

func NewProductWithID(id int, name, description string, price decimal.Decimal, stock int, image string) (*Product, error) {
	if err := validateProduct(id, name, image); err != nil {
		return nil, err
	}
	return &Product{
		id:          id,
		name:        name,
		description: description,
		price:       price,
		stock:       stock,
		image:       image,
	}, nil
}

func (p *Product) ID() int                { return p.id }
func (p *Product) Name() string           { return p.name }
func (p *Product) Description() string    { return p.description }
func (p *Product) Price() decimal.Decimal { return p.price }
func (p *Product) Stock() int             { return p.stock }
func (p *Product) Image() string          { return p.image }
func (p *Product) CategoryID() int        { return p.categoryID }

// Category returns the associated category, or nil when it was not loaded.
func (p *Product) Category() *Category { return p.category }

// Update replaces every mutable field. The product is left untouched on error.
// Changing the category id drops a loaded category that no longer matches.
func (p *Product) Update(name, description string, price decimal.Decimal, stock int, image string, categoryID int) error {
	if err := validateProduct(p.id, name, image); err != nil {
		return err
	}
	p.name = name
	p.description = description
	p.price = price
	p.stock = stock
	p.image = image
	if p.category != nil && p.category.ID() != categoryID {
		p.category = nil
	}
	p.categoryID = categoryID
	return nil
}

// AssignCategory links the product to c.
func (p *Product) AssignCategory(c *Category) {
	if c == nil {
		return
	}
	p.category = c
	p.categoryID = c.ID()
}

// SetCategoryID links the product to a category by id only.
func (p *Product) SetCategoryID(id int) {
	if p.category != nil && p.category.ID() != id {
		p.category = nil
	}
	p.categoryID = id
}

func validateProduct(id int, name, image string) error {
	return check(
		rule{id < 0, msgInvalidID},
		rule{name == "", msgNameRequired},
		rule{utf8.RuneCountInString(name) < minNameLength, msgProductNameTooShort},
		rule{utf8.RuneCountInString(image) > maxImageLength, msgImageTooLong},
	)
}
