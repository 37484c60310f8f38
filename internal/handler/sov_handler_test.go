package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sovbridge/internal/domain"
	"sovbridge/internal/handler"
	"sovbridge/internal/service"
	"sovbridge/internal/sov"
	"sovbridge/mocks"
)

func multipartBody(t *testing.T, filename string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("PK\x03\x04 fake workbook"))
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestSOVHandler_Parse_Success(t *testing.T) {
	mockSvc := new(mocks.MockFileService)
	h := handler.NewSOVHandler(mockSvc)

	fileID := uuid.New()
	meta := &domain.SOVFile{
		ID:           fileID,
		OriginalName: "portfolio.xlsx",
		Mode:         domain.ModeHybrid,
		Status:       domain.FileStatusCompleted,
	}
	result := &service.ExtractionResult{
		Records:    &sov.ResultSet{},
		SheetCount: 2,
	}

	mockSvc.On("ParseUpload", mock.Anything, mock.MatchedBy(func(in service.FileUploadInput) bool {
		return in.Header.Filename == "portfolio.xlsx" && in.Mode == domain.ModeHybrid
	})).Return(meta, result, nil)

	body, contentType := multipartBody(t, "portfolio.xlsx", map[string]string{"mode": "hybrid"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/sov/parse", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.Parse(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	mockSvc.AssertExpectations(t)
}

func TestSOVHandler_Parse_NoFile(t *testing.T) {
	mockSvc := new(mocks.MockFileService)
	h := handler.NewSOVHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/sov/parse", nil)

	h.Parse(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSOVHandler_Parse_UnsupportedType(t *testing.T) {
	mockSvc := new(mocks.MockFileService)
	h := handler.NewSOVHandler(mockSvc)

	mockSvc.On("ParseUpload", mock.Anything, mock.AnythingOfType("service.FileUploadInput")).
		Return(nil, nil, domain.ErrUnsupportedFileType)

	body, contentType := multipartBody(t, "notes.pdf", nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/sov/parse", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.Parse(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "UNSUPPORTED_FILE_TYPE", resp.Error.Code)
}

func TestSOVHandler_ReExtract_InvalidMode(t *testing.T) {
	mockSvc := new(mocks.MockFileService)
	h := handler.NewSOVHandler(mockSvc)

	fileID := uuid.New()
	mockSvc.On("ReExtract", mock.Anything, fileID, domain.ExtractionMode("psychic")).
		Return(nil, nil, domain.ErrInvalidMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/sov/files/"+fileID.String()+"/extract?mode=psychic", nil)
	c.Params = gin.Params{{Key: "id", Value: fileID.String()}}

	h.ReExtract(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_MODE", resp.Error.Code)
}

func TestSOVHandler_GetByID_NotFound(t *testing.T) {
	mockSvc := new(mocks.MockFileService)
	h := handler.NewSOVHandler(mockSvc)

	fileID := uuid.New()
	mockSvc.On("GetByID", mock.Anything, fileID).Return(nil, domain.ErrNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/sov/files/"+fileID.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: fileID.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSOVHandler_GetByID_InvalidID(t *testing.T) {
	mockSvc := new(mocks.MockFileService)
	h := handler.NewSOVHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/sov/files/not-a-uuid", nil)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSOVHandler_List_ClampsLimit(t *testing.T) {
	mockSvc := new(mocks.MockFileService)
	h := handler.NewSOVHandler(mockSvc)

	mockSvc.On("List", mock.Anything, 0, 20).
		Return([]domain.SOVFile{{ID: uuid.New()}}, 1, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/sov/files?offset=-5&limit=500", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 20, resp.Meta.Limit)
	assert.Equal(t, 0, resp.Meta.Offset)
	mockSvc.AssertExpectations(t)
}

func TestSOVHandler_Records_Success(t *testing.T) {
	mockSvc := new(mocks.MockFileService)
	h := handler.NewSOVHandler(mockSvc)

	fileID := uuid.New()
	rs := &sov.ResultSet{
		Buildings: []*sov.BuildingRecord{{SourceFile: "portfolio.xlsx", SheetName: "Buildings"}},
	}
	mockSvc.On("Records", mock.Anything, fileID).Return(rs, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/sov/files/"+fileID.String()+"/records", nil)
	c.Params = gin.Params{{Key: "id", Value: fileID.String()}}

	h.Records(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestSOVHandler_Export_CSV(t *testing.T) {
	mockSvc := new(mocks.MockFileService)
	h := handler.NewSOVHandler(mockSvc)

	fileID := uuid.New()
	addr := "123 Main St"
	meta := &domain.SOVFile{ID: fileID, OriginalName: "portfolio.xlsx"}
	rs := &sov.ResultSet{
		Buildings: []*sov.BuildingRecord{{
			SourceFile:      "portfolio.xlsx",
			SheetName:       "Buildings",
			LocationAddress: &addr,
		}},
	}
	mockSvc.On("GetByID", mock.Anything, fileID).Return(meta, nil)
	mockSvc.On("Records", mock.Anything, fileID).Return(rs, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/sov/files/"+fileID.String()+"/export", nil)
	c.Params = gin.Params{{Key: "id", Value: fileID.String()}}

	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "portfolio_buildings")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte{0xEF, 0xBB, 0xBF}))
	assert.Contains(t, w.Body.String(), "location_address")
	assert.Contains(t, w.Body.String(), "123 Main St")
	mockSvc.AssertExpectations(t)
}

func TestSOVHandler_Export_InvalidKind(t *testing.T) {
	mockSvc := new(mocks.MockFileService)
	h := handler.NewSOVHandler(mockSvc)

	fileID := uuid.New()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/sov/files/"+fileID.String()+"/export?kind=floors", nil)
	c.Params = gin.Params{{Key: "id", Value: fileID.String()}}

	h.Export(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSOVHandler_Delete_Success(t *testing.T) {
	mockSvc := new(mocks.MockFileService)
	h := handler.NewSOVHandler(mockSvc)

	fileID := uuid.New()
	mockSvc.On("Delete", mock.Anything, fileID).Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodDelete, "/api/v1/sov/files/"+fileID.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: fileID.String()}}

	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}
