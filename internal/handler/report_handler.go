package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"enrolpay/internal/domain"
	"enrolpay/internal/service"
)

// ReportHandler exposes read-only engine state to reporting collaborators.
type ReportHandler struct {
	reporting  service.ReportingService
	commission service.CommissionService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reporting service.ReportingService, commission service.CommissionService) *ReportHandler {
	return &ReportHandler{reporting: reporting, commission: commission}
}

func parseAgencyID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid agency id")
		return uuid.Nil, false
	}
	return id, true
}

// ListInstallments handles GET /api/v1/agencies/:id/installments
func (h *ReportHandler) ListInstallments(c *gin.Context) {
	agencyID, ok := parseAgencyID(c)
	if !ok {
		return
	}
	offset, limit := paginationParams(c)
	status := domain.InstallmentStatus(c.Query("status"))

	installments, total, err := h.reporting.ListInstallments(c.Request.Context(), agencyID, status, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, installments, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// ListDueSoon handles GET /api/v1/agencies/:id/installments/due-soon
func (h *ReportHandler) ListDueSoon(c *gin.Context) {
	agencyID, ok := parseAgencyID(c)
	if !ok {
		return
	}

	installments, err := h.reporting.ListDueSoon(c.Request.Context(), agencyID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, installments)
}

// ListNotifications handles GET /api/v1/agencies/:id/notifications
func (h *ReportHandler) ListNotifications(c *gin.Context) {
	agencyID, ok := parseAgencyID(c)
	if !ok {
		return
	}
	offset, limit := paginationParams(c)

	records, total, err := h.reporting.ListNotifications(c.Request.Context(), agencyID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, records, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// ListAuditEntries handles GET /api/v1/agencies/:id/activity
func (h *ReportHandler) ListAuditEntries(c *gin.Context) {
	agencyID, ok := parseAgencyID(c)
	if !ok {
		return
	}
	offset, limit := paginationParams(c)

	entries, total, err := h.reporting.ListAuditEntries(c.Request.Context(), agencyID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, entries, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// ListJobRuns handles GET /api/v1/job-runs
func (h *ReportHandler) ListJobRuns(c *gin.Context) {
	offset, limit := paginationParams(c)

	runs, total, err := h.reporting.ListJobRuns(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, runs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// PlanCommission handles GET /api/v1/plans/:id/commission
func (h *ReportHandler) PlanCommission(c *gin.Context) {
	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid plan id")
		return
	}

	breakdown, err := h.commission.PlanCommission(c.Request.Context(), planID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, breakdown)
}
