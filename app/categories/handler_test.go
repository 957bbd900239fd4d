package categories

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cleanarchmvc/catalog/app/logging"
	"github.com/cleanarchmvc/catalog/app/services"
	"github.com/cleanarchmvc/catalog/domain"
	"github.com/stretchr/testify/assert"
)

// --- Mock Service ---

type MockCategoryService struct {
	Categories []services.CategoryDTO
	Err        error
	LastSaved  *services.CategoryDTO
	LastID     int
}

func (m *MockCategoryService) GetCategories(ctx context.Context) ([]services.CategoryDTO, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Categories, nil
}

func (m *MockCategoryService) GetByID(ctx context.Context, id int) (*services.CategoryDTO, error) {
	m.LastID = id
	if m.Err != nil {
		return nil, m.Err
	}
	for _, c := range m.Categories {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

func (m *MockCategoryService) Add(ctx context.Context, input services.CategoryDTO) (*services.CategoryDTO, error) {
	m.LastSaved = &input
	if m.Err != nil {
		return nil, m.Err
	}
	if _, err := domain.NewCategory(input.Name); err != nil {
		return nil, err
	}
	created := input
	created.ID = 42
	return &created, nil
}

func (m *MockCategoryService) Update(ctx context.Context, input services.CategoryDTO) (*services.CategoryDTO, error) {
	m.LastSaved = &input
	if m.Err != nil {
		return nil, m.Err
	}
	return &input, nil
}

func (m *MockCategoryService) Remove(ctx context.Context, id int) error {
	m.LastID = id
	return m.Err
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var errResp map[string]string
	err := json.NewDecoder(rec.Body).Decode(&errResp)
	assert.NoError(t, err)
	return errResp["error"]
}

// --- Tests: GET /categories ---

func TestHandleGetAll(t *testing.T) {
	testCases := []struct {
		name               string
		mockSetup          func() *MockCategoryService
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "Success with multiple categories",
			mockSetup: func() *MockCategoryService {
				return &MockCategoryService{
					Categories: []services.CategoryDTO{
						{ID: 1, Name: "Clothing"},
						{ID: 2, Name: "Shoes"},
					},
				}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp []CategoryResponse
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Len(t, resp, 2)
				assert.Equal(t, 1, resp[0].ID)
				assert.Equal(t, "Shoes", resp[1].Name)
			},
		},
		{
			name: "Success with empty list",
			mockSetup: func() *MockCategoryService {
				return &MockCategoryService{Categories: []services.CategoryDTO{}}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp []CategoryResponse
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Len(t, resp, 0)
			},
		},
		{
			name: "Service error",
			mockSetup: func() *MockCategoryService {
				return &MockCategoryService{Err: errors.New("db connection failed")}
			},
			expectedStatusCode: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "Failed to fetch categories", decodeError(t, rec))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			handler := NewCategoryHandler(tc.mockSetup(), logging.Discard())
			req := httptest.NewRequest("GET", "/categories", nil)
			rec := httptest.NewRecorder()

			// Act
			handler.HandleGetAll(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
		})
	}
}

// --- Tests: GET /categories/{id} ---

func TestHandleGet(t *testing.T) {
	testCases := []struct {
		name               string
		id                 string
		mockSetup          func() *MockCategoryService
		expectedStatusCode int
		expectedError      string
	}{
		{
			name: "Success",
			id:   "2",
			mockSetup: func() *MockCategoryService {
				return &MockCategoryService{Categories: []services.CategoryDTO{{ID: 2, Name: "Shoes"}}}
			},
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "Not found",
			id:                 "9",
			mockSetup:          func() *MockCategoryService { return &MockCategoryService{} },
			expectedStatusCode: http.StatusNotFound,
			expectedError:      "Category not found",
		},
		{
			name:               "Invalid id",
			id:                 "abc",
			mockSetup:          func() *MockCategoryService { return &MockCategoryService{} },
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "Invalid id",
		},
		{
			name: "Service error",
			id:   "2",
			mockSetup: func() *MockCategoryService {
				return &MockCategoryService{Err: errors.New("timeout")}
			},
			expectedStatusCode: http.StatusInternalServerError,
			expectedError:      "Failed to retrieve category",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewCategoryHandler(tc.mockSetup(), logging.Discard())
			req := httptest.NewRequest("GET", "/categories/"+tc.id, nil)
			req.SetPathValue("id", tc.id)
			rec := httptest.NewRecorder()

			handler.HandleGet(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.expectedError != "" {
				assert.Equal(t, tc.expectedError, decodeError(t, rec))
				return
			}
			var resp CategoryResponse
			assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, CategoryResponse{ID: 2, Name: "Shoes"}, resp)
		})
	}
}

// --- Tests: POST /categories ---

func TestHandleCreate(t *testing.T) {
	testCases := []struct {
		name               string
		requestBody        string
		mockSetup          func() *MockCategoryService
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
		checkServiceCall   func(t *testing.T, svc *MockCategoryService)
	}{
		{
			name:               "Success",
			requestBody:        `{"name":"Accessories"}`,
			mockSetup:          func() *MockCategoryService { return &MockCategoryService{} },
			expectedStatusCode: http.StatusCreated,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp CategoryResponse
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, CategoryResponse{ID: 42, Name: "Accessories"}, resp)
			},
			checkServiceCall: func(t *testing.T, svc *MockCategoryService) {
				assert.NotNil(t, svc.LastSaved)
				assert.Equal(t, "Accessories", svc.LastSaved.Name)
			},
		},
		{
			name:               "Invalid JSON body",
			requestBody:        `{invalid json`,
			mockSetup:          func() *MockCategoryService { return &MockCategoryService{} },
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "Invalid JSON body", decodeError(t, rec))
			},
			checkServiceCall: func(t *testing.T, svc *MockCategoryService) {
				assert.Nil(t, svc.LastSaved, "Add should not be called with invalid JSON")
			},
		},
		{
			name:               "Name missing",
			requestBody:        `{}`,
			mockSetup:          func() *MockCategoryService { return &MockCategoryService{} },
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "Invalid Name. Name is required", decodeError(t, rec))
			},
		},
		{
			name:               "Name too short",
			requestBody:        `{"name":"Ca"}`,
			mockSetup:          func() *MockCategoryService { return &MockCategoryService{} },
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "Invalid name, too short, minimum 3 characters", decodeError(t, rec))
			},
		},
		{
			name:               "Name too long",
			requestBody:        `{"name":"` + strings.Repeat("x", 101) + `"}`,
			mockSetup:          func() *MockCategoryService { return &MockCategoryService{} },
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "Invalid name: maximum 100 characters", decodeError(t, rec))
			},
			checkServiceCall: func(t *testing.T, svc *MockCategoryService) {
				assert.Nil(t, svc.LastSaved, "Add should not be called with an oversized name")
			},
		},
		{
			name:        "Service error on create",
			requestBody: `{"name":"Toys"}`,
			mockSetup: func() *MockCategoryService {
				return &MockCategoryService{Err: errors.New("insert failed")}
			},
			expectedStatusCode: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "Failed to create category", decodeError(t, rec))
			},
			checkServiceCall: func(t *testing.T, svc *MockCategoryService) {
				assert.NotNil(t, svc.LastSaved, "Add should have been called")
				assert.Equal(t, "Toys", svc.LastSaved.Name)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			svc := tc.mockSetup()
			handler := NewCategoryHandler(svc, logging.Discard())
			req := httptest.NewRequest("POST", "/categories", strings.NewReader(tc.requestBody))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			// Act
			handler.HandleCreate(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)

			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}

			if tc.checkServiceCall != nil {
				tc.checkServiceCall(t, svc)
			}
		})
	}
}

// --- Tests: PUT /categories/{id} ---

func TestHandleUpdate(t *testing.T) {
	t.Run("Passes the path id to the service", func(t *testing.T) {
		svc := &MockCategoryService{}
		handler := NewCategoryHandler(svc, logging.Discard())
		req := httptest.NewRequest("PUT", "/categories/5", strings.NewReader(`{"name":"Games"}`))
		req.SetPathValue("id", "5")
		rec := httptest.NewRecorder()

		handler.HandleUpdate(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, &services.CategoryDTO{ID: 5, Name: "Games"}, svc.LastSaved)
	})

	t.Run("Not found", func(t *testing.T) {
		svc := &MockCategoryService{Err: domain.ErrCategoryNotFound}
		handler := NewCategoryHandler(svc, logging.Discard())
		req := httptest.NewRequest("PUT", "/categories/5", strings.NewReader(`{"name":"Games"}`))
		req.SetPathValue("id", "5")
		rec := httptest.NewRecorder()

		handler.HandleUpdate(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Category not found", decodeError(t, rec))
	})

	t.Run("Name too long", func(t *testing.T) {
		svc := &MockCategoryService{}
		handler := NewCategoryHandler(svc, logging.Discard())
		req := httptest.NewRequest("PUT", "/categories/5", strings.NewReader(`{"name":"`+strings.Repeat("x", 101)+`"}`))
		req.SetPathValue("id", "5")
		rec := httptest.NewRecorder()

		handler.HandleUpdate(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Nil(t, svc.LastSaved)
	})

	t.Run("Invalid id", func(t *testing.T) {
		svc := &MockCategoryService{}
		handler := NewCategoryHandler(svc, logging.Discard())
		req := httptest.NewRequest("PUT", "/categories/x", strings.NewReader(`{"name":"Games"}`))
		req.SetPathValue("id", "x")
		rec := httptest.NewRecorder()

		handler.HandleUpdate(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Nil(t, svc.LastSaved)
	})
}

// --- Tests: DELETE /categories/{id} ---

func TestHandleDelete(t *testing.T) {
	testCases := []struct {
		name               string
		err                error
		expectedStatusCode int
	}{
		{name: "Success", expectedStatusCode: http.StatusNoContent},
		{name: "Not found", err: domain.ErrCategoryNotFound, expectedStatusCode: http.StatusNotFound},
		{name: "Category still has products", err: domain.ErrCategoryInUse, expectedStatusCode: http.StatusConflict},
		{name: "Service error", err: errors.New("constraint"), expectedStatusCode: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &MockCategoryService{Err: tc.err}
			handler := NewCategoryHandler(svc, logging.Discard())
			req := httptest.NewRequest("DELETE", "/categories/3", nil)
			req.SetPathValue("id", "3")
			rec := httptest.NewRecorder()

			handler.HandleDelete(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			assert.Equal(t, 3, svc.LastID)
		})
	}
}
