package models

import (
	"context"
	"errors"
	"fmt"

	"github.com/cleanarchmvc/catalog/domain"
	"gorm.io/gorm"
)

type CategoriesRepository struct {
	db *gorm.DB
}

func NewCategoriesRepository(db *gorm.DB) *CategoriesRepository {
	return &CategoriesRepository{db: db}
}

func (r *CategoriesRepository) GetCategories(ctx context.Context) ([]*domain.Category, error) {
	var categories []Category
	if err := r.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	result := make([]*domain.Category, 0, len(categories))
	for i := range categories {
		c, err := categories[i].ToDomain()
		if err != nil {
			return nil, fmt.Errorf("category %d: %w", categories[i].ID, err)
		}
		result = append(result, c)
	}
	return result, nil
}

func (r *CategoriesRepository) GetByID(ctx context.Context, id int) (*domain.Category, error) {
	var category Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}
	return category.ToDomain()
}

func (r *CategoriesRepository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	var model Category
	model.FromDomain(category)

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return model.ToDomain()
}

func (r *CategoriesRepository) Update(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	var model Category
	model.FromDomain(category)

	res := r.db.WithContext(ctx).
		Model(&Category{}).
		Where("id = ?", model.ID).
		Update("name", model.Name)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrCategoryNotFound
	}
	return model.ToDomain()
}

// Remove deletes a category that no product references.
func (r *CategoriesRepository) Remove(ctx context.Context, id int) error {
	var products int64
	if err := r.db.WithContext(ctx).Model(&Product{}).Where("category_id = ?", id).Count(&products).Error; err != nil {
		return fmt.Errorf("failed to count category products: %w", err)
	}
	if products > 0 {
		return domain.ErrCategoryInUse
	}

	res := r.db.WithContext(ctx).Delete(&Category{}, id)
	if errors.Is(res.Error, gorm.ErrForeignKeyViolated) {
		return domain.ErrCategoryInUse
	}
	if res.Error != nil {
		return fmt.Errorf("failed to remove category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}
