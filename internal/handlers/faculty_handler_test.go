package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/csdept/deptsite-api/internal/handlers"
	"github.com/csdept/deptsite-api/internal/models"
	apperrors "github.com/csdept/deptsite-api/pkg/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func facultyRouter(service *MockDirectoryService) *gin.Engine {
	handler := handlers.NewFacultyHandler(service)
	router := gin.New()
	router.GET("/faculty", handler.Search)
	router.GET("/faculty/categories", handler.Categories)
	router.GET("/faculty/:id", handler.Get)
	return router
}

func TestFacultyHandler_Search(t *testing.T) {
	service := new(MockDirectoryService)
	expected := &models.DirectoryResult{
		Query:      models.FilterQuery{SearchText: "ada", Category: "ai"},
		Visibility: models.VisibilitySet{true, false},
		Entries:    []models.FacultyMember{{ID: "ada", Name: "Ada Lovelace", Specialization: "ai"}},
		Total:      2,
		Visible:    1,
	}
	service.On("Search", mock.Anything, models.FilterQuery{SearchText: "ada", Category: "ai"}).Return(expected, nil)

	w := httptest.NewRecorder()
	facultyRouter(service).ServeHTTP(w, httptest.NewRequest("GET", "/faculty?q=ada&category=ai", http.NoBody))

	require.Equal(t, http.StatusOK, w.Code)
	var body models.DirectoryResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Visible)
	assert.False(t, body.NoResults)
	assert.Equal(t, "ada", body.Entries[0].ID)
	assert.Equal(t, "public, max-age=60", w.Header().Get("Cache-Control"))
	service.AssertExpectations(t)
}

func TestFacultyHandler_Search_TooLong(t *testing.T) {
	service := new(MockDirectoryService)

	w := httptest.NewRecorder()
	url := "/faculty?q=" + strings.Repeat("a", 201)
	facultyRouter(service).ServeHTTP(w, httptest.NewRequest("GET", url, http.NoBody))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "SearchText must not exceed 200")
	service.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestFacultyHandler_Search_RosterUnavailable(t *testing.T) {
	service := new(MockDirectoryService)
	service.On("Search", mock.Anything, mock.Anything).Return(nil, apperrors.UnavailableError("faculty cache not initialized"))

	w := httptest.NewRecorder()
	facultyRouter(service).ServeHTTP(w, httptest.NewRequest("GET", "/faculty", http.NoBody))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestFacultyHandler_Categories(t *testing.T) {
	service := new(MockDirectoryService)
	service.On("Categories", mock.Anything).Return([]models.Category{
		{Key: "ai", Label: "Artificial Intelligence", Count: 2},
	}, nil)

	w := httptest.NewRecorder()
	facultyRouter(service).ServeHTTP(w, httptest.NewRequest("GET", "/faculty/categories", http.NoBody))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"categories":[{"key":"ai","label":"Artificial Intelligence","count":2}]}`, w.Body.String())
}

func TestFacultyHandler_Get(t *testing.T) {
	service := new(MockDirectoryService)
	service.On("Get", mock.Anything, "ada-lovelace-1").Return(&models.FacultyMember{
		ID: "ada-lovelace-1", Name: "Ada Lovelace", Specialization: "ai",
	}, nil)

	w := httptest.NewRecorder()
	facultyRouter(service).ServeHTTP(w, httptest.NewRequest("GET", "/faculty/ada-lovelace-1", http.NoBody))

	require.Equal(t, http.StatusOK, w.Code)
	var member models.FacultyMember
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &member))
	assert.Equal(t, "Ada Lovelace", member.Name)
	assert.Equal(t, "public, max-age=60", w.Header().Get("Cache-Control"))
}

func TestFacultyHandler_Get_NotFound(t *testing.T) {
	service := new(MockDirectoryService)
	service.On("Get", mock.Anything, "nobody").Return(nil, apperrors.NotFoundError("faculty member nobody"))

	w := httptest.NewRecorder()
	facultyRouter(service).ServeHTTP(w, httptest.NewRequest("GET", "/faculty/nobody", http.NoBody))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFacultyHandler_CategoriesRouteNotShadowedByID(t *testing.T) {
	service := new(MockDirectoryService)
	service.On("Categories", mock.Anything).Return([]models.Category{}, nil)

	w := httptest.NewRecorder()
	facultyRouter(service).ServeHTTP(w, httptest.NewRequest("GET", "/faculty/categories", http.NoBody))

	assert.Equal(t, http.StatusOK, w.Code)
	service.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}
