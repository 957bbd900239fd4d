package services

import (
	"context"
	"log/slog"

	"github.com/cleanarchmvc/catalog/domain"
)

type ProductService struct {
	products   domain.ProductRepository
	categories domain.CategoryRepository
	log        *slog.Logger
	recorder   ValidationRecorder
}

func NewProductService(products domain.ProductRepository, categories domain.CategoryRepository, log *slog.Logger, recorder ValidationRecorder) *ProductService {
	return &ProductService{
		products:   products,
		categories: categories,
		log:        log,
		recorder:   recorderOrNoop(recorder),
	}
}

func (s *ProductService) GetProducts(ctx context.Context, filter domain.ProductFilter) (*ProductPage, error) {
	products, total, err := s.products.GetProducts(ctx, filter)
	if err != nil {
		return nil, err
	}

	page := &ProductPage{
		Total:    total,
		Products: make([]ProductDTO, len(products)),
	}
	for i, p := range products {
		page.Products[i] = toProductDTO(p)
	}
	return page, nil
}

func (s *ProductService) GetByID(ctx context.Context, id int) (*ProductDTO, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toProductDTO(product)
	return &dto, nil
}

// GetProductCategory returns the product together with its category.
func (s *ProductService) GetProductCategory(ctx context.Context, id int) (*ProductDTO, error) {
	product, err := s.products.GetProductCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toProductDTO(product)
	return &dto, nil
}

// Add creates a product in an existing category. The id in input is ignored.
func (s *ProductService) Add(ctx context.Context, input ProductDTO) (*ProductDTO, error) {
	product, err := domain.NewProduct(input.Name, input.Description, input.Price, input.Stock, input.Image)
	if err != nil {
		s.recorder.ValidationFailed("product")
		return nil, err
	}

	category, err := s.categories.GetByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	product.AssignCategory(category)

	created, err := s.products.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	created.AssignCategory(category)

	s.log.InfoContext(ctx, "product created",
		slog.Int("product_id", created.ID()),
		slog.Int("category_id", category.ID()),
	)
	dto := toProductDTO(created)
	return &dto, nil
}

// Update replaces the fields of the product identified by input.ID.
func (s *ProductService) Update(ctx context.Context, input ProductDTO) (*ProductDTO, error) {
	product, err := s.products.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if err := product.Update(input.Name, input.Description, input.Price, input.Stock, input.Image, input.CategoryID); err != nil {
		s.recorder.ValidationFailed("product")
		return nil, err
	}

	category, err := s.categories.GetByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	product.AssignCategory(category)

	updated, err := s.products.Update(ctx, product)
	if err != nil {
		return nil, err
	}
	updated.AssignCategory(category)

	s.log.InfoContext(ctx, "product updated", slog.Int("product_id", updated.ID()))
	dto := toProductDTO(updated)
	return &dto, nil
}

func (s *ProductService) Remove(ctx context.Context, id int) error {
	if err := s.products.Remove(ctx, id); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "product removed", slog.Int("product_id", id))
	return nil
}
