package handler

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sovbridge/internal/csvexport"
	"sovbridge/internal/domain"
	"sovbridge/internal/service"
)

// SOVHandler handles SOV workbook upload, extraction, and record endpoints.
type SOVHandler struct {
	fileService service.FileService
}

// NewSOVHandler creates a new SOVHandler.
func NewSOVHandler(fileService service.FileService) *SOVHandler {
	return &SOVHandler{fileService: fileService}
}

// extractionResponse is the wire shape for a completed extraction run.
type extractionResponse struct {
	File        *domain.SOVFile     `json:"file"`
	Records     interface{}         `json:"records"`
	SheetCount  int                 `json:"sheet_count"`
	SheetErrors []domain.SheetError `json:"sheet_errors,omitempty"`
}

// Parse handles POST /api/v1/sov/parse
func (h *SOVHandler) Parse(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	input := service.FileUploadInput{
		File:   file,
		Header: header,
		Mode:   domain.ExtractionMode(c.PostForm("mode")),
	}

	meta, result, err := h.fileService.ParseUpload(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, extractionResponse{
		File:        meta,
		Records:     result.Records,
		SheetCount:  result.SheetCount,
		SheetErrors: result.SheetErrors,
	})
}

// ReExtract handles POST /api/v1/sov/files/:id/extract
func (h *SOVHandler) ReExtract(c *gin.Context) {
	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid file ID")
		return
	}

	mode := domain.ExtractionMode(c.Query("mode"))

	meta, result, err := h.fileService.ReExtract(c.Request.Context(), fileID, mode)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, extractionResponse{
		File:        meta,
		Records:     result.Records,
		SheetCount:  result.SheetCount,
		SheetErrors: result.SheetErrors,
	})
}

// GetByID handles GET /api/v1/sov/files/:id
func (h *SOVHandler) GetByID(c *gin.Context) {
	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid file ID")
		return
	}

	meta, err := h.fileService.GetByID(c.Request.Context(), fileID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, meta)
}

// List handles GET /api/v1/sov/files
func (h *SOVHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	files, total, err := h.fileService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, files, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Records handles GET /api/v1/sov/files/:id/records
func (h *SOVHandler) Records(c *gin.Context) {
	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid file ID")
		return
	}

	records, err := h.fileService.Records(c.Request.Context(), fileID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, records)
}

// Export handles GET /api/v1/sov/files/:id/export
// Streams building records (default) or property records as CSV. The kind
// query parameter selects the table.
func (h *SOVHandler) Export(c *gin.Context) {
	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid file ID")
		return
	}

	kind := c.DefaultQuery("kind", "buildings")
	if kind != "buildings" && kind != "properties" {
		RespondError(c, http.StatusBadRequest, "INVALID_KIND", "kind must be buildings or properties")
		return
	}

	meta, err := h.fileService.GetByID(c.Request.Context(), fileID)
	if err != nil {
		HandleError(c, err)
		return
	}

	records, err := h.fileService.Records(c.Request.Context(), fileID)
	if err != nil {
		HandleError(c, err)
		return
	}

	base := strings.TrimSuffix(meta.OriginalName, ".xlsx")
	filename := csvexport.BuildFilename(base + "_" + kind)

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Writer.WriteHeader(http.StatusOK)

	if _, err := c.Writer.Write(csvexport.BOM); err != nil {
		return
	}

	w := csvexport.NewWriter(c.Writer)
	if kind == "properties" {
		err = w.WriteProperties(records.Properties)
	} else {
		err = w.WriteBuildings(records.Buildings)
	}
	if err == nil {
		w.Flush()
		err = w.Error()
	}
	if err != nil {
		// Headers are already sent; the client gets a truncated body.
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] csv export for %s failed mid-stream: %v", requestID, fileID, err)
	}
}

// Delete handles DELETE /api/v1/sov/files/:id
func (h *SOVHandler) Delete(c *gin.Context) {
	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid file ID")
		return
	}

	if err := h.fileService.Delete(c.Request.Context(), fileID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "file deleted"})
}
