package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"medscribe/internal/config"
	"medscribe/internal/domain"
	"medscribe/internal/service"
)

// InsuranceHandler serves the eligibility check endpoint.
type InsuranceHandler struct {
	reasoning service.ReasoningService
	llmCfg    config.LLMConfig
}

// NewInsuranceHandler creates a new InsuranceHandler.
func NewInsuranceHandler(reasoning service.ReasoningService, llmCfg config.LLMConfig) *InsuranceHandler {
	return &InsuranceHandler{reasoning: reasoning, llmCfg: llmCfg}
}

// Check handles POST /api/v1/insurance/check. It accepts a multipart policy
// document and the structured medical data as a JSON form field. Policy
// documents that are not valid UTF-8 text get a fixed placeholder instead of
// OCR; the eligibility pass treats either as opaque policy text.
func (h *InsuranceHandler) Check(c *gin.Context) {
	policyHeader, err := c.FormFile("policy_file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "multipart field 'policy_file' is required")
		return
	}

	f, err := policyHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read policy file")
		return
	}
	defer func() { _ = f.Close() }()

	content, err := io.ReadAll(f)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read policy file")
		return
	}
	policyText := service.DecodePolicyText(content)

	medicalJSON := c.PostForm("medical_json")
	var record domain.MedicalRecord
	if err := json.Unmarshal([]byte(medicalJSON), &record); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_MEDICAL_JSON", "form field 'medical_json' must be a medical record JSON object")
		return
	}

	sel := domain.ModelSelection{
		Provider: domain.Provider(c.DefaultPostForm("provider", h.llmCfg.DefaultProvider)),
		Model:    c.DefaultPostForm("model", h.llmCfg.DefaultModel),
		APIKey:   c.PostForm("api_key"),
	}

	result := h.reasoning.CheckEligibility(c.Request.Context(), &record, policyText, sel)
	RespondOK(c, result)
}
