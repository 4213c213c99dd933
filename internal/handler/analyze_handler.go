package handler

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"medscribe/internal/config"
	"medscribe/internal/domain"
	"medscribe/internal/port"
	"medscribe/internal/service"
)

// AnalyzeHandler serves the document analysis endpoint.
type AnalyzeHandler struct {
	analysis service.AnalysisService
	storage  port.ObjectStorage
	llmCfg   config.LLMConfig
	maxBytes int64
}

// NewAnalyzeHandler creates a new AnalyzeHandler.
func NewAnalyzeHandler(analysis service.AnalysisService, storage port.ObjectStorage, llmCfg config.LLMConfig, maxFileSizeMB int64) *AnalyzeHandler {
	return &AnalyzeHandler{
		analysis: analysis,
		storage:  storage,
		llmCfg:   llmCfg,
		maxBytes: maxFileSizeMB * 1024 * 1024,
	}
}

// Analyze handles POST /api/v1/documents/analyze. It accepts a multipart
// document plus provider/model/api_key form fields, runs the extraction and
// reasoning pipeline, and returns the structured record with its analysis.
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "multipart field 'file' is required")
		return
	}
	if fileHeader.Size > h.maxBytes {
		status, code, msg := MapDomainError(domain.ErrFileTooLarge)
		RespondError(c, status, code, msg)
		return
	}

	sel := h.modelSelection(c)

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	tmp, err := os.CreateTemp("", "medscribe-*"+ext)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "could not store upload")
		return
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()
	defer func() { _ = os.Remove(tmpPath) }()

	if err := c.SaveUploadedFile(fileHeader, tmpPath); err != nil {
		RespondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "could not store upload")
		return
	}

	out, err := h.analysis.AnalyzeDocument(c.Request.Context(), tmpPath, sel)
	if err != nil {
		status, code, msg := MapDomainError(err)
		RespondError(c, status, code, msg)
		return
	}

	// Archive the original so reviewers can view the source document.
	// Best effort: an archive failure does not void the analysis.
	key := "uploads/" + uuid.New().String() + ext
	if f, err := os.Open(tmpPath); err == nil {
		contentType := domain.AllowedFileTypes[domain.AllowedExtensions[strings.TrimPrefix(ext, ".")]]
		if err := h.storage.Upload(c.Request.Context(), key, contentType, f); err != nil {
			log.Printf("archiving upload failed: %v", err)
			key = ""
		}
		_ = f.Close()
	} else {
		key = ""
	}
	out.StorageKey = key

	RespondOK(c, out)
}

func (h *AnalyzeHandler) modelSelection(c *gin.Context) domain.ModelSelection {
	return domain.ModelSelection{
		Provider: domain.Provider(c.DefaultPostForm("provider", h.llmCfg.DefaultProvider)),
		Model:    c.DefaultPostForm("model", h.llmCfg.DefaultModel),
		APIKey:   c.PostForm("api_key"),
	}
}
