package services

import (
	"context"
	"log/slog"

	"github.com/cleanarchmvc/catalog/domain"
)

type CategoryService struct {
	repo     domain.CategoryRepository
	log      *slog.Logger
	recorder ValidationRecorder
}

func NewCategoryService(repo domain.CategoryRepository, log *slog.Logger, recorder ValidationRecorder) *CategoryService {
	return &CategoryService{
		repo:     repo,
		log:      log,
		recorder: recorderOrNoop(recorder),
	}
}

func (s *CategoryService) GetCategories(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.repo.GetCategories(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]CategoryDTO, len(categories))
	for i, c := range categories {
		result[i] = toCategoryDTO(c)
	}
	return result, nil
}

func (s *CategoryService) GetByID(ctx context.Context, id int) (*CategoryDTO, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toCategoryDTO(category)
	return &dto, nil
}

// Add creates a category. The id in input is ignored.
func (s *CategoryService) Add(ctx context.Context, input CategoryDTO) (*CategoryDTO, error) {
	category, err := domain.NewCategory(input.Name)
	if err != nil {
		s.recorder.ValidationFailed("category")
		return nil, err
	}

	created, err := s.repo.Create(ctx, category)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "category created", slog.Int("category_id", created.ID()))
	dto := toCategoryDTO(created)
	return &dto, nil
}

// Update renames the category identified by input.ID.
func (s *CategoryService) Update(ctx context.Context, input CategoryDTO) (*CategoryDTO, error) {
	category, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if err := category.Update(input.Name); err != nil {
		s.recorder.ValidationFailed("category")
		return nil, err
	}

	updated, err := s.repo.Update(ctx, category)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "category updated", slog.Int("category_id", updated.ID()))
	dto := toCategoryDTO(updated)
	return &dto, nil
}

func (s *CategoryService) Remove(ctx context.Context, id int) error {
	if err := s.repo.Remove(ctx, id); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "category removed", slog.Int("category_id", id))
	return nil
}
