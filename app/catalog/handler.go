package catalog

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cleanarchmvc/catalog/app/api"
	"github.com/cleanarchmvc/catalog/app/services"
	"github.com/cleanarchmvc/catalog/domain"
	"github.com/shopspring/decimal"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

type Response struct {
	Total    int64     `json:"total"`
	Products []Product `json:"products"`
}

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Image       string    `json:"image,omitempty"`
	CategoryID  int       `json:"category_id"`
	Category    *Category `json:"category,omitempty"`
}

// ProductRequest is the body of create and update calls.
type ProductRequest struct {
	Name        string          `json:"name" validate:"max=100"`
	Description string          `json:"description" validate:"max=200"`
	Price       decimal.Decimal `json:"price" validate:"nonnegative,decimal_lt=100000000"`
	Stock       int             `json:"stock" validate:"nonnegative"`
	Image       string          `json:"image"`
	CategoryID  int             `json:"category_id" validate:"nonnegative"`
}

type ProductProvider interface {
	GetProducts(ctx context.Context, filter domain.ProductFilter) (*services.ProductPage, error)
	GetByID(ctx context.Context, id int) (*services.ProductDTO, error)
	GetProductCategory(ctx context.Context, id int) (*services.ProductDTO, error)
	Add(ctx context.Context, input services.ProductDTO) (*services.ProductDTO, error)
	Update(ctx context.Context, input services.ProductDTO) (*services.ProductDTO, error)
	Remove(ctx context.Context, id int) error
}

type CatalogHandler struct {
	products ProductProvider
	log      *slog.Logger
}

func NewCatalogHandler(p ProductProvider, log *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		products: p,
		log:      log,
	}
}

func toProduct(p services.ProductDTO) Product {
	product := Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		Stock:       p.Stock,
		Image:       p.Image,
		CategoryID:  p.CategoryID,
	}
	if p.Category != nil {
		product.Category = &Category{ID: p.Category.ID, Name: p.Category.Name}
	}
	return product
}

// parseFilter reads pagination and filters from the query string. Values
// that do not parse are ignored.
func parseFilter(r *http.Request) domain.ProductFilter {
	q := r.URL.Query()
	filter := domain.ProductFilter{Offset: 0, Limit: defaultLimit}

	if oStr := q.Get("offset"); oStr != "" {
		if o, err := strconv.Atoi(oStr); err == nil && o >= 0 {
			filter.Offset = o
		}
	}

	if lStr := q.Get("limit"); lStr != "" {
		if l, err := strconv.Atoi(lStr); err == nil {
			filter.Limit = min(max(l, 1), maxLimit)
		}
	}

	if cStr := q.Get("category_id"); cStr != "" {
		if c, err := strconv.Atoi(cStr); err == nil && c > 0 {
			filter.CategoryID = &c
		}
	}

	if priceStr := q.Get("price_lt"); priceStr != "" {
		if val, err := decimal.NewFromString(priceStr); err == nil {
			filter.PriceLessThan = &val
		}
	}

	return filter
}

func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	page, err := h.products.GetProducts(r.Context(), parseFilter(r))
	if err != nil {
		h.fail(w, r, err, "Failed to fetch products")
		return
	}

	products := make([]Product, len(page.Products))
	for i, p := range page.Products {
		products[i] = toProduct(p)
	}

	api.OKResponse(w, http.StatusOK, Response{
		Total:    page.Total,
		Products: products,
	})
}

func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	h.getOne(w, r, h.products.GetByID)
}

// HandleGetProductCategory answers with the product and its category.
func (h *CatalogHandler) HandleGetProductCategory(w http.ResponseWriter, r *http.Request) {
	h.getOne(w, r, h.products.GetProductCategory)
}

func (h *CatalogHandler) getOne(w http.ResponseWriter, r *http.Request, load func(context.Context, int) (*services.ProductDTO, error)) {
	id, ok := api.PathID(r)
	if !ok {
		api.ErrorResponse(w, http.StatusBadRequest, api.MsgInvalidID)
		return
	}

	product, err := load(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "Failed to retrieve product")
		return
	}
	api.OKResponse(w, http.StatusOK, toProduct(*product))
}

func (h *CatalogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	input, ok := h.readRequest(w, r)
	if !ok {
		return
	}

	created, err := h.products.Add(r.Context(), input)
	if err != nil {
		h.fail(w, r, err, "Failed to create product")
		return
	}
	api.OKResponse(w, http.StatusCreated, toProduct(*created))
}

func (h *CatalogHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r)
	if !ok {
		api.ErrorResponse(w, http.StatusBadRequest, api.MsgInvalidID)
		return
	}

	input, ok := h.readRequest(w, r)
	if !ok {
		return
	}
	input.ID = id

	updated, err := h.products.Update(r.Context(), input)
	if err != nil {
		h.fail(w, r, err, "Failed to update product")
		return
	}
	api.OKResponse(w, http.StatusOK, toProduct(*updated))
}

func (h *CatalogHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r)
	if !ok {
		api.ErrorResponse(w, http.StatusBadRequest, api.MsgInvalidID)
		return
	}

	if err := h.products.Remove(r.Context(), id); err != nil {
		h.fail(w, r, err, "Failed to delete product")
		return
	}
	api.NoContent(w)
}

func (h *CatalogHandler) readRequest(w http.ResponseWriter, r *http.Request) (services.ProductDTO, bool) {
	var req ProductRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, api.MsgInvalidJSON)
		return services.ProductDTO{}, false
	}
	if err := api.Validate(req); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return services.ProductDTO{}, false
	}

	return services.ProductDTO{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Image:       req.Image,
		CategoryID:  req.CategoryID,
	}, true
}

// fail maps errors for product routes. A missing category on create or
// update is reported as 404 too.
func (h *CatalogHandler) fail(w http.ResponseWriter, r *http.Request, err error, msg string) {
	if errors.Is(err, domain.ErrCategoryNotFound) {
		api.ErrorResponse(w, http.StatusNotFound, "Category not found")
		return
	}
	api.Failure(w, r, h.log, err, domain.ErrProductNotFound, "Product not found", msg)
}
