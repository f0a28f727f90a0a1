package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"flotta/internal/acquire"
	"flotta/internal/domain"
	"flotta/internal/export"
	"flotta/internal/service"
)

// ExtractHandler handles document extraction endpoints.
type ExtractHandler struct {
	extractionService service.ExtractionService
}

// NewExtractHandler creates a new ExtractHandler.
func NewExtractHandler(extractionService service.ExtractionService) *ExtractHandler {
	return &ExtractHandler{extractionService: extractionService}
}

// Document handles POST /api/v1/extract/document
// @Summary Extract a fuel invoice or delivery note
// @Description Run the extraction pipeline on a scanned/photographed document and return the normalized record
// @Tags extract
// @Accept json
// @Produce json
// @Router /extract/document [post]
func (h *ExtractHandler) Document(c *gin.Context) {
	var req struct {
		FileURL    string `json:"fileUrl"`
		FileBase64 string `json:"fileBase64"`
		MimeType   string `json:"mimeType"`
		NomeFile   string `json:"nomeFile"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "invalid JSON body")
		return
	}
	if req.FileURL == "" && req.FileBase64 == "" {
		RespondBadRequest(c, domain.ErrMissingInput.Error())
		return
	}

	doc, err := h.extractionService.ExtractDocument(c.Request.Context(), acquire.Input{
		Base64:       req.FileBase64,
		RemoteURL:    req.FileURL,
		MimeHint:     req.MimeType,
		FileNameHint: req.NomeFile,
	})
	if err != nil {
		RespondFailure(c, err)
		return
	}

	RespondOK(c, doc)
}

// Logbook handles POST /api/v1/extract/logbook
// @Summary Extract a handwritten fuel-log table
// @Description Run the logbook extraction pipeline on a photographed page and return the normalized rows
// @Tags extract
// @Accept json
// @Produce json
// @Router /extract/logbook [post]
func (h *ExtractHandler) Logbook(c *gin.Context) {
	fileURL, ok := h.bindLogbookRequest(c)
	if !ok {
		return
	}

	result, err := h.extractionService.ExtractLogbook(c.Request.Context(), fileURL)
	if err != nil {
		RespondFailure(c, err)
		return
	}

	RespondOK(c, result)
}

// LogbookExport handles POST /api/v1/extract/logbook/export
// @Summary Extract a fuel-log table and download it as CSV or XLSX
// @Tags extract
// @Accept json
// @Produce application/octet-stream
// @Param format query string false "csv (default) or xlsx"
// @Router /extract/logbook/export [post]
func (h *ExtractHandler) LogbookExport(c *gin.Context) {
	fileURL, ok := h.bindLogbookRequest(c)
	if !ok {
		return
	}

	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		RespondBadRequest(c, "format must be 'csv' or 'xlsx'")
		return
	}

	result, err := h.extractionService.ExtractLogbook(c.Request.Context(), fileURL)
	if err != nil {
		RespondFailure(c, err)
		return
	}

	stamp := time.Now().Format("2006-01-02")
	if format == "xlsx" {
		wb, err := export.Workbook(result)
		if err != nil {
			RespondFailure(c, err)
			return
		}
		defer func() { _ = wb.Close() }()

		var buf bytes.Buffer
		if err := wb.Write(&buf); err != nil {
			RespondFailure(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=logbook-%s.xlsx", stamp))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
		return
	}

	var buf bytes.Buffer
	buf.Write(export.BOM)
	w := export.NewCSVWriter(&buf)
	if err := w.WriteHeader(); err != nil {
		RespondFailure(c, err)
		return
	}
	if err := w.WriteRows(result.Rows); err != nil {
		RespondFailure(c, err)
		return
	}
	w.Flush()
	if err := w.Error(); err != nil {
		RespondFailure(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=logbook-%s.csv", stamp))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *ExtractHandler) bindLogbookRequest(c *gin.Context) (string, bool) {
	var req struct {
		FileURL string `json:"fileUrl"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "invalid JSON body")
		return "", false
	}
	if req.FileURL == "" {
		RespondBadRequest(c, "fileUrl is required")
		return "", false
	}
	return req.FileURL, true
}
