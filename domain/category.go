package domain

import "unicode/utf8"

const (
	msgInvalidID            = "Invalid Id value"
	msgNameRequired         = "Invalid Name. Name is required"
	msgCategoryNameTooShort = "Invalid name, too short, minimum 3 characters"

	minNameLength = 3
)

// Category groups products. Its fields can only change through Update,
// which applies the same rules as the constructors.
type Category struct {
	id   int
	name string
}

// NewCategory creates a category that has not been persisted yet.
func NewCategory(name string) (*Category, error) {
	return NewCategoryWithID(0, name)
}

func NewCategoryWithID(id int, name string) (*Category, error) {
	if err := validateCategory(id, name); err != nil {
		return nil, err
	}
	return &Category{id: id, name: name}, nil
}

func (c *Category) ID() int      { return c.id }
func (c *Category) Name() string { return c.name }

// Update renames the category. The category is left untouched on error.
func (c *Category) Update(name string) error {
	if err := validateCategory(c.id, name); err != nil {
		return err
	}
	c.name = name
	return nil
}

func validateCategory(id int, name string) error {
	return check(
		rule{id < 0, msgInvalidID},
		rule{name == "", msgNameRequired},
		rule{utf8.RuneCountInString(name) < minNameLength, msgCategoryNameTooShort},
	)
}
