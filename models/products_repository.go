package models

import (
	"context"
	"errors"
	"fmt"

	"github.com/cleanarchmvc/catalog/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductsRepository struct {
	db *gorm.DB
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

func (r *ProductsRepository) GetProducts(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, int64, error) {
	var products []Product
	var total int64

	query := r.db.WithContext(ctx).Model(&Product{})

	// Filter
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.PriceLessThan != nil {
		query = query.Where("price < ?", *filter.PriceLessThan)
	}

	// Count total after filtering
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	// Apply pagination
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if err := query.Order("id").Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	result, err := productsToDomain(products)
	if err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (r *ProductsRepository) GetByID(ctx context.Context, id int) (*domain.Product, error) {
	var product Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, productLookupError(err)
	}
	return product.ToDomain()
}

func (r *ProductsRepository) GetProductCategory(ctx context.Context, id int) (*domain.Product, error) {
	var product Product
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ?", id).
		First(&product).Error; err != nil {
		return nil, productLookupError(err)
	}
	return product.ToDomain()
}

func (r *ProductsRepository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	var model Product
	model.FromDomain(product)

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return model.ToDomain()
}

func (r *ProductsRepository) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	var model Product
	model.FromDomain(product)

	res := r.db.WithContext(ctx).
		Model(&Product{}).
		Where("id = ?", model.ID).
		Updates(model.updates())
	if errors.Is(res.Error, gorm.ErrForeignKeyViolated) {
		return nil, domain.ErrCategoryNotFound
	}
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrProductNotFound
	}
	return model.ToDomain()
}

func (r *ProductsRepository) Remove(ctx context.Context, id int) error {
	res := r.db.WithContext(ctx).Delete(&Product{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to remove product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func productLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrProductNotFound
	}
	return fmt.Errorf("failed to fetch product: %w", err)
}

func productsToDomain(products []Product) ([]*domain.Product, error) {
	result := make([]*domain.Product, 0, len(products))
	for i := range products {
		p, err := products[i].ToDomain()
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", products[i].ID, err)
		}
		result = append(result, p)
	}
	return result, nil
}
