package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"feed-planner/pkg/logger"
	"feed-planner/services/upload/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockUploadUseCase is a mock implementation of UploadUseCase
type MockUploadUseCase struct {
	mock.Mock
}

func (m *MockUploadUseCase) Forward(ctx context.Context, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, contentType, body)
	return args.String(0), args.Error(1)
}

func (m *MockUploadUseCase) Store(ctx context.Context, filename string, file io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, filename, file, contentType)
	return args.String(0), args.Error(1)
}

var _ usecase.UploadUseCase = (*MockUploadUseCase)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func multipartRequest(t *testing.T, filename string) *http.Request {
	t.Helper()
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	part, err := writer.CreateFormFile("fileToUpload", filename)
	assert.NoError(t, err)
	_, err = part.Write([]byte("jpegdata"))
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	req, _ := http.NewRequest("POST", "/upload", buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUpload_ForwardSuccess(t *testing.T) {
	mockUseCase := new(MockUploadUseCase)
	logger := logger.New()
	handler := NewUploadHandler(mockUseCase, "forward", logger)

	router := setupTestRouter()
	router.POST("/upload", handler.Upload)

	mockUseCase.On("Forward", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return("https://files.catbox.moe/abc123.jpg", nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, "candy.jpg"))

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, true, response["success"])
	assert.Equal(t, "https://files.catbox.moe/abc123.jpg", response["url"])

	mockUseCase.AssertExpectations(t)
}

func TestUpload_ForwardFailure(t *testing.T) {
	mockUseCase := new(MockUploadUseCase)
	logger := logger.New()
	handler := NewUploadHandler(mockUseCase, "forward", logger)

	router := setupTestRouter()
	router.POST("/upload", handler.Upload)

	mockUseCase.On("Forward", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return("", errors.New("upload failed: host down"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, "candy.jpg"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, false, response["success"])

	mockUseCase.AssertExpectations(t)
}

func TestUpload_StorageBackendSuccess(t *testing.T) {
	mockUseCase := new(MockUploadUseCase)
	logger := logger.New()
	handler := NewUploadHandler(mockUseCase, "s3", logger)

	router := setupTestRouter()
	router.POST("/upload", handler.Upload)

	mockUseCase.On("Store", mock.Anything, "candy.jpg", mock.Anything, mock.AnythingOfType("string")).
		Return("https://bucket.s3.amazonaws.com/uploads/abc.jpg", nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, "candy.jpg"))

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "https://bucket.s3.amazonaws.com/uploads/abc.jpg", response["url"])

	mockUseCase.AssertExpectations(t)
}

func TestUpload_StorageBackendMissingFile(t *testing.T) {
	mockUseCase := new(MockUploadUseCase)
	logger := logger.New()
	handler := NewUploadHandler(mockUseCase, "s3", logger)

	router := setupTestRouter()
	router.POST("/upload", handler.Upload)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/upload", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "fileToUpload is required", response["error"])

	mockUseCase.AssertNotCalled(t, "Store")
}

func TestNewUploadHandler(t *testing.T) {
	mockUseCase := new(MockUploadUseCase)
	logger := logger.New()
	handler := NewUploadHandler(mockUseCase, "forward", logger)

	assert.NotNil(t, handler)
}
