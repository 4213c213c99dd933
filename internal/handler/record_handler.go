package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"medscribe/internal/domain"
	"medscribe/internal/service"
)

// RecordHandler serves the confirmed-record endpoints.
type RecordHandler struct {
	records service.RecordService
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(records service.RecordService) *RecordHandler {
	return &RecordHandler{records: records}
}

// Confirm handles POST /api/v1/records/confirm. Called after a human reviewer
// validates (and possibly edits) the extracted record; every confirm is a
// fresh insert.
func (h *RecordHandler) Confirm(c *gin.Context) {
	var record domain.MedicalRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_RECORD", "request body must be a medical record JSON object")
		return
	}

	if err := h.records.Confirm(c.Request.Context(), &record); err != nil {
		status, code, msg := MapDomainError(err)
		RespondError(c, status, code, msg)
		return
	}
	RespondCreated(c, gin.H{"status": "saved"})
}

// History handles GET /api/v1/records/:mrn/history, returning the most recent
// prior record for the patient.
func (h *RecordHandler) History(c *gin.Context) {
	mrn := c.Param("mrn")

	record, err := h.records.LatestByMRN(c.Request.Context(), mrn)
	if err != nil {
		status, code, msg := MapDomainError(err)
		RespondError(c, status, code, msg)
		return
	}
	RespondOK(c, record)
}

// ExportCSV handles GET /api/v1/records/:mrn/export, streaming all of the
// patient's confirmed records as CSV.
func (h *RecordHandler) ExportCSV(c *gin.Context) {
	mrn := c.Param("mrn")

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="records_%s.csv"`, mrn))

	if err := h.records.ExportCSV(c.Request.Context(), mrn, c.Writer); err != nil {
		status, code, msg := MapDomainError(err)
		RespondError(c, status, code, msg)
		return
	}
}
