package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	templateapp "github.com/labelgen/backend/internal/application/template"
	"github.com/labelgen/backend/internal/domain/label"
	"github.com/labelgen/backend/internal/domain/printing"
	"github.com/labelgen/backend/internal/domain/shared"
	"github.com/labelgen/backend/internal/domain/template"
	"github.com/labelgen/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTemplateRepository implements template.Repository for testing
type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (*template.LabelTemplate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*template.LabelTemplate), args.Error(1)
}

func (m *MockTemplateRepository) FindByName(ctx context.Context, name string) (*template.LabelTemplate, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*template.LabelTemplate), args.Error(1)
}

func (m *MockTemplateRepository) FindAll(ctx context.Context, filter shared.Filter) ([]template.LabelTemplate, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]template.LabelTemplate), args.Error(1)
}

func (m *MockTemplateRepository) Save(ctx context.Context, tmpl *template.LabelTemplate) error {
	args := m.Called(ctx, tmpl)
	return args.Error(0)
}

func (m *MockTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTemplateRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTemplateRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

// MockLabelRepository implements label.Repository for testing
type MockLabelRepository struct {
	mock.Mock
}

func (m *MockLabelRepository) FindByID(ctx context.Context, id uuid.UUID) (*label.Label, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*label.Label), args.Error(1)
}

func (m *MockLabelRepository) FindAll(ctx context.Context, filter shared.Filter) ([]label.Label, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]label.Label), args.Error(1)
}

func (m *MockLabelRepository) FindByTemplate(ctx context.Context, templateID uuid.UUID) ([]label.Label, error) {
	args := m.Called(ctx, templateID)
	return args.Get(0).([]label.Label), args.Error(1)
}

func (m *MockLabelRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]label.Label, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]label.Label), args.Error(1)
}

func (m *MockLabelRepository) Save(ctx context.Context, lbl *label.Label) error {
	args := m.Called(ctx, lbl)
	return args.Error(0)
}

func (m *MockLabelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLabelRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLabelRepository) CountByTemplate(ctx context.Context, templateID uuid.UUID) (int64, error) {
	args := m.Called(ctx, templateID)
	return args.Get(0).(int64), args.Error(1)
}

// stubPreviewer returns fixed HTML for preview tests
type stubPreviewer struct{}

func (stubPreviewer) PreviewCell(ctx context.Context, cell printing.Cell) (string, error) {
	return "<html><body>preview</body></html>", nil
}

// Test setup helpers

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func setupTemplateHandler(templateRepo *MockTemplateRepository, labelRepo *MockLabelRepository) *TemplateHandler {
	service := templateapp.NewService(templateRepo, labelRepo, stubPreviewer{}, nil)
	return NewTemplateHandler(service)
}

func newStoredTemplate(t *testing.T, name string) *template.LabelTemplate {
	t.Helper()
	tmpl, err := template.NewLabelTemplate(name, "Standard shelf label", 1, true)
	require.NoError(t, err)
	return tmpl
}

// Tests

func TestTemplateHandler_Create_Success(t *testing.T) {
	templateRepo := new(MockTemplateRepository)
	labelRepo := new(MockLabelRepository)
	handler := setupTemplateHandler(templateRepo, labelRepo)

	templateRepo.On("ExistsByName", mock.Anything, "Classic Shelf", (*uuid.UUID)(nil)).Return(false, nil)
	templateRepo.On("Save", mock.Anything, mock.AnythingOfType("*template.LabelTemplate")).Return(nil)

	router := setupTestRouter()
	router.POST("/templates", handler.Create)

	body, _ := json.Marshal(templateapp.CreateTemplateRequest{
		Name:        "Classic Shelf",
		Description: "Standard shelf label",
		AccentColor: "#0a3d62",
	})

	req := httptest.NewRequest(http.MethodPost, "/templates", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	templateRepo.AssertExpectations(t)
}

func TestTemplateHandler_Create_DuplicateName(t *testing.T) {
	templateRepo := new(MockTemplateRepository)
	labelRepo := new(MockLabelRepository)
	handler := setupTemplateHandler(templateRepo, labelRepo)

	templateRepo.On("ExistsByName", mock.Anything, "Classic Shelf", (*uuid.UUID)(nil)).Return(true, nil)

	router := setupTestRouter()
	router.POST("/templates", handler.Create)

	body, _ := json.Marshal(templateapp.CreateTemplateRequest{Name: "Classic Shelf"})

	req := httptest.NewRequest(http.MethodPost, "/templates", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeAlreadyExists, resp.Error.Code)
	templateRepo.AssertExpectations(t)
}

func TestTemplateHandler_Create_InvalidAccentColor(t *testing.T) {
	templateRepo := new(MockTemplateRepository)
	labelRepo := new(MockLabelRepository)
	handler := setupTemplateHandler(templateRepo, labelRepo)

	templateRepo.On("ExistsByName", mock.Anything, "Classic Shelf", (*uuid.UUID)(nil)).Return(false, nil)

	router := setupTestRouter()
	router.POST("/templates", handler.Create)

	body, _ := json.Marshal(templateapp.CreateTemplateRequest{
		Name:        "Classic Shelf",
		AccentColor: "not-a-color",
	})

	req := httptest.NewRequest(http.MethodPost, "/templates", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeInvalidInput, resp.Error.Code)
}

func TestTemplateHandler_Create_InvalidJSON(t *testing.T) {
	templateRepo := new(MockTemplateRepository)
	labelRepo := new(MockLabelRepository)
	handler := setupTemplateHandler(templateRepo, labelRepo)

	router := setupTestRouter()
	router.POST("/templates", handler.Create)

	req := httptest.NewRequest(http.MethodPost, "/templates", bytes.NewBufferString("invalid json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTemplateHandler_GetByID_Success(t *testing.T) {
	templateRepo := new(MockTemplateRepository)
	labelRepo := new(MockLabelRepository)
	handler := setupTemplateHandler(templateRepo, labelRepo)

	tmpl := newStoredTemplate(t, "Classic Shelf")

	templateRepo.On("FindByID", mock.Anything, tmpl.ID).Return(tmpl, nil)
	labelRepo.On("CountByTemplate", mock.Anything, tmpl.ID).Return(int64(3), nil)

	router := setupTestRouter()
	router.GET("/templates/:id", handler.GetByID)

	req := httptest.NewRequest(http.MethodGet, "/templates/"+tmpl.ID.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"label_count":3`)
	templateRepo.AssertExpectations(t)
}

func TestTemplateHandler_GetByID_NotFound(t *testing.T) {
	templateRepo := new(MockTemplateRepository)
	labelRepo := new(MockLabelRepository)
	handler := setupTemplateHandler(templateRepo, labelRepo)

	id := uuid.New()
	templateRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	router := setupTestRouter()
	router.GET("/templates/:id", handler.GetByID)

	req := httptest.NewRequest(http.MethodGet, "/templates/"+id.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	templateRepo.AssertExpectations(t)
}

func TestTemplateHandler_GetByID_InvalidID(t *testing.T) {
	templateRepo := new(MockTemplateRepository)
	labelRepo := new(MockLabelRepository)
	handler := setupTemplateHandler(templateRepo, labelRepo)

	router := setupTestRouter()
	router.GET("/templates/:id", handler.GetByID)

	req := httptest.NewRequest(http.MethodGet, "/templates/not-a-uuid", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTemplateHandler_List_Success(t *testing.T) {
	templateRepo := new(MockTemplateRepository)
	labelRepo := new(MockLabelRepository)
	handler := setupTemplateHandler(templateRepo, labelRepo)

	first := newStoredTemplate(t, "Classic Shelf")
	second := newStoredTemplate(t, "Poster")

	templateRepo.On("FindAll", mock.Anything, mock.Anything).Return([]template.LabelTemplate{*first, *second}, nil)
	templateRepo.On("Count", mock.Anything, mock.Anything).Return(int64(2), nil)
	labelRepo.On("CountByTemplate", mock.Anything, mock.Anything).Return(int64(0), nil)

	router := setupTestRouter()
	router.GET("/templates", handler.List)

	req := httptest.NewRequest(http.MethodGet, "/templates?page=1&page_size=20", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(2), resp.Meta.Total)
	templateRepo.AssertExpectations(t)
}

func TestTemplateHandler_Update_Success(t *testing.T) {
	templateRepo := new(MockTemplateRepository)
	labelRepo := new(MockLabelRepository)
	handler := setupTemplateHandler(templateRepo, labelRepo)

	tmpl := newStoredTemplate(t, "Classic Shelf")

	templateRepo.On("FindByID", mock.Anything, tmpl.ID).Return(tmpl, nil)
	templateRepo.On("Save", mock.Anything, mock.AnythingOfType("*template.LabelTemplate")).Return(nil)
	labelRepo.On("CountByTemplate", mock.Anything, tmpl.ID).Return(int64(0), nil)

	router := setupTestRouter()
	router.PUT("/templates/:id", handler.Update)

	newColor := "#b33939"
	body, _ := json.Marshal(templateapp.UpdateTemplateRequest{AccentColor: &newColor})

	req := httptest.NewRequest(http.MethodPut, "/templates/"+tmpl.ID.String(), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"accent_color":"#b33939"`)
	templateRepo.AssertExpectations(t)
}

func TestTemplateHandler_Delete_Success(t *testing.T) {
	templateRepo := new(MockTemplateRepository)
	labelRepo := new(MockLabelRepository)
	handler := setupTemplateHandler(templateRepo, labelRepo)

	tmpl := newStoredTemplate(t, "Classic Shelf")

	templateRepo.On("FindByID", mock.Anything, tmpl.ID).Return(tmpl, nil)
	labelRepo.On("CountByTemplate", mock.Anything, tmpl.ID).Return(int64(0), nil)
	templateRepo.On("Delete", mock.Anything, tmpl.ID).Return(nil)

	router := setupTestRouter()
	router.DELETE("/templates/:id", handler.Delete)

	req := httptest.NewRequest(http.MethodDelete, "/templates/"+tmpl.ID.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	templateRepo.AssertExpectations(t)
}

func TestTemplateHandler_Delete_StillReferenced(t *testing.T) {
	templateRepo := new(MockTemplateRepository)
	labelRepo := new(MockLabelRepository)
	handler := setupTemplateHandler(templateRepo, labelRepo)

	tmpl := newStoredTemplate(t, "Classic Shelf")

	templateRepo.On("FindByID", mock.Anything, tmpl.ID).Return(tmpl, nil)
	labelRepo.On("CountByTemplate", mock.Anything, tmpl.ID).Return(int64(4), nil)

	router := setupTestRouter()
	router.DELETE("/templates/:id", handler.Delete)

	req := httptest.NewRequest(http.MethodDelete, "/templates/"+tmpl.ID.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeReferenceInUse, resp.Error.Code)
	templateRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestTemplateHandler_Preview_Success(t *testing.T) {
	templateRepo := new(MockTemplateRepository)
	labelRepo := new(MockLabelRepository)
	handler := setupTemplateHandler(templateRepo, labelRepo)

	tmpl := newStoredTemplate(t, "Classic Shelf")
	templateRepo.On("FindByID", mock.Anything, tmpl.ID).Return(tmpl, nil)

	router := setupTestRouter()
	router.GET("/templates/:id/preview", handler.Preview)

	req := httptest.NewRequest(http.MethodGet, "/templates/"+tmpl.ID.String()+"/preview", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "preview")
	templateRepo.AssertExpectations(t)
}

func TestTemplateHandler_ListFields(t *testing.T) {
	templateRepo := new(MockTemplateRepository)
	labelRepo := new(MockLabelRepository)
	handler := setupTemplateHandler(templateRepo, labelRepo)

	router := setupTestRouter()
	router.GET("/templates/fields", handler.ListFields)

	req := httptest.NewRequest(http.MethodGet, "/templates/fields", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "part_number")
	assert.Contains(t, w.Body.String(), "bin_location")
}
