package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cleanarchmvc/catalog/domain"
	"github.com/shopspring/decimal"
)

// ProductRepository caches product-with-category reads in front of another
// domain.ProductRepository. Writes go through and evict the product's entry.
// Cache failures are logged and treated as misses.
//
// A renamed category shows up in cached reads once the entry expires.
type ProductRepository struct {
	domain.ProductRepository

	store Store
	ttl   time.Duration
	log   *slog.Logger
}

func NewProductRepository(next domain.ProductRepository, store Store, ttl time.Duration, log *slog.Logger) *ProductRepository {
	return &ProductRepository{
		ProductRepository: next,
		store:             store,
		ttl:               ttl,
		log:               log,
	}
}

type categoryEntry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type productEntry struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Image       string          `json:"image"`
	CategoryID  int             `json:"category_id"`
	Category    *categoryEntry  `json:"category,omitempty"`
}

func (r *ProductRepository) GetProductCategory(ctx context.Context, id int) (*domain.Product, error) {
	key := productKey(id)

	if product, ok := r.lookup(ctx, key, id); ok {
		return product, nil
	}

	product, err := r.ProductRepository.GetProductCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(toEntry(product))
	if err != nil {
		r.log.WarnContext(ctx, "failed to encode product for cache", slog.Int("product_id", id), slog.Any("error", err))
		return product, nil
	}
	if err := r.store.Set(ctx, key, data, r.ttl); err != nil {
		r.log.WarnContext(ctx, "cache write failed", slog.String("key", key), slog.Any("error", err))
	}
	return product, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	updated, err := r.ProductRepository.Update(ctx, product)
	r.evict(ctx, product.ID())
	return updated, err
}

func (r *ProductRepository) Remove(ctx context.Context, id int) error {
	err := r.ProductRepository.Remove(ctx, id)
	r.evict(ctx, id)
	return err
}

func (r *ProductRepository) lookup(ctx context.Context, key string, id int) (*domain.Product, bool) {
	data, err := r.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			r.log.WarnContext(ctx, "cache read failed", slog.String("key", key), slog.Any("error", err))
		}
		return nil, false
	}

	var entry productEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		r.log.WarnContext(ctx, "dropping undecodable cache entry", slog.String("key", key), slog.Any("error", err))
		r.evict(ctx, id)
		return nil, false
	}
	if entry.ID != id {
		r.log.WarnContext(ctx, "cache id mismatch", slog.Int("key_id", id), slog.Int("entry_id", entry.ID))
		r.evict(ctx, id)
		return nil, false
	}

	product, err := entry.toDomain()
	if err != nil {
		r.log.WarnContext(ctx, "dropping invalid cache entry", slog.String("key", key), slog.Any("error", err))
		r.evict(ctx, id)
		return nil, false
	}
	return product, true
}

func (r *ProductRepository) evict(ctx context.Context, id int) {
	if err := r.store.Delete(ctx, productKey(id)); err != nil {
		r.log.WarnContext(ctx, "cache eviction failed", slog.Int("product_id", id), slog.Any("error", err))
	}
}

func productKey(id int) string {
	return fmt.Sprintf("product:%d:category", id)
}

func toEntry(p *domain.Product) productEntry {
	entry := productEntry{
		ID:          p.ID(),
		Name:        p.Name(),
		Description: p.Description(),
		Price:       p.Price(),
		Stock:       p.Stock(),
		Image:       p.Image(),
		CategoryID:  p.CategoryID(),
	}
	if c := p.Category(); c != nil {
		entry.Category = &categoryEntry{ID: c.ID(), Name: c.Name()}
	}
	return entry
}

func (e productEntry) toDomain() (*domain.Product, error) {
	product, err := domain.NewProductWithID(e.ID, e.Name, e.Description, e.Price, e.Stock, e.Image)
	if err != nil {
		return nil, err
	}
	product.SetCategoryID(e.CategoryID)
	if e.Category != nil {
		category, err := domain.NewCategoryWithID(e.Category.ID, e.Category.Name)
		if err != nil {
			return nil, err
		}
		product.AssignCategory(category)
	}
	return product, nil
}
