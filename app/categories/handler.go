package categories

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cleanarchmvc/catalog/app/api"
	"github.com/cleanarchmvc/catalog/app/services"
	"github.com/cleanarchmvc/catalog/domain"
)

type CategoryResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type CategoryRequest struct {
	Name string `json:"name" validate:"max=100"`
}

type CategoryProvider interface {
	GetCategories(ctx context.Context) ([]services.CategoryDTO, error)
	GetByID(ctx context.Context, id int) (*services.CategoryDTO, error)
	Add(ctx context.Context, input services.CategoryDTO) (*services.CategoryDTO, error)
	Update(ctx context.Context, input services.CategoryDTO) (*services.CategoryDTO, error)
	Remove(ctx context.Context, id int) error
}

type CategoryHandler struct {
	categories CategoryProvider
	log        *slog.Logger
}

func NewCategoryHandler(p CategoryProvider, log *slog.Logger) *CategoryHandler {
	return &CategoryHandler{categories: p, log: log}
}

func toResponse(c services.CategoryDTO) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name}
}

func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.GetCategories(r.Context())
	if err != nil {
		h.fail(w, r, err, "Failed to fetch categories")
		return
	}

	response := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		response[i] = toResponse(c)
	}
	api.OKResponse(w, http.StatusOK, response)
}

func (h *CategoryHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r)
	if !ok {
		api.ErrorResponse(w, http.StatusBadRequest, api.MsgInvalidID)
		return
	}

	category, err := h.categories.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "Failed to retrieve category")
		return
	}
	api.OKResponse(w, http.StatusOK, toResponse(*category))
}

func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input CategoryRequest
	if !readRequest(w, r, &input) {
		return
	}

	created, err := h.categories.Add(r.Context(), services.CategoryDTO{Name: input.Name})
	if err != nil {
		h.fail(w, r, err, "Failed to create category")
		return
	}
	api.OKResponse(w, http.StatusCreated, toResponse(*created))
}

func (h *CategoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r)
	if !ok {
		api.ErrorResponse(w, http.StatusBadRequest, api.MsgInvalidID)
		return
	}

	var input CategoryRequest
	if !readRequest(w, r, &input) {
		return
	}

	updated, err := h.categories.Update(r.Context(), services.CategoryDTO{ID: id, Name: input.Name})
	if err != nil {
		h.fail(w, r, err, "Failed to update category")
		return
	}
	api.OKResponse(w, http.StatusOK, toResponse(*updated))
}

func (h *CategoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r)
	if !ok {
		api.ErrorResponse(w, http.StatusBadRequest, api.MsgInvalidID)
		return
	}

	if err := h.categories.Remove(r.Context(), id); err != nil {
		h.fail(w, r, err, "Failed to delete category")
		return
	}
	api.NoContent(w)
}

func readRequest(w http.ResponseWriter, r *http.Request, input *CategoryRequest) bool {
	if err := api.DecodeJSON(r, input); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, api.MsgInvalidJSON)
		return false
	}
	if err := api.Validate(input); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func (h *CategoryHandler) fail(w http.ResponseWriter, r *http.Request, err error, msg string) {
	if errors.Is(err, domain.ErrCategoryInUse) {
		api.ErrorResponse(w, http.StatusConflict, "Category has products")
		return
	}
	api.Failure(w, r, h.log, err, domain.ErrCategoryNotFound, "Category not found", msg)
}
