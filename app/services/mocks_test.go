package services

import (
	"context"

	"github.com/cleanarchmvc/catalog/domain"
	"github.com/stretchr/testify/mock"
)

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) GetCategories(ctx context.Context) ([]*domain.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]*domain.Category)
	return categories, args.Error(1)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id int) (*domain.Category, error) {
	args := m.Called(ctx, id)
	category, _ := args.Get(0).(*domain.Category)
	return category, args.Error(1)
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	args := m.Called(ctx, category)
	created, _ := args.Get(0).(*domain.Category)
	return created, args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	args := m.Called(ctx, category)
	updated, _ := args.Get(0).(*domain.Category)
	return updated, args.Error(1)
}

func (m *MockCategoryRepository) Remove(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetProducts(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, int64, error) {
	args := m.Called(ctx, filter)
	products, _ := args.Get(0).([]*domain.Product)
	return products, args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id int) (*domain.Product, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*domain.Product)
	return product, args.Error(1)
}

func (m *MockProductRepository) GetProductCategory(ctx context.Context, id int) (*domain.Product, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*domain.Product)
	return product, args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	args := m.Called(ctx, product)
	created, _ := args.Get(0).(*domain.Product)
	return created, args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	args := m.Called(ctx, product)
	updated, _ := args.Get(0).(*domain.Product)
	return updated, args.Error(1)
}

func (m *MockProductRepository) Remove(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type recorderSpy struct {
	entities []string
}

func (r *recorderSpy) ValidationFailed(entity string) {
	r.entities = append(r.entities, entity)
}
