package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/fynbooks/fynbooks_backend/internal/core/ports/services"
	"github.com/fynbooks/fynbooks_backend/internal/dto"
	"github.com/fynbooks/fynbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// vatHandler handles HTTP requests for the VAT/PAYE reconciliation workflow.
type vatHandler struct {
	vatService portssvc.VATSvcFacade
}

func newVATHandler(vatService portssvc.VATSvcFacade) *vatHandler {
	return &vatHandler{
		vatService: vatService,
	}
}

// getOrCreatePeriod godoc
// @Summary Get or create a filing period
// @Description Idempotently resolves a VAT/PAYE period by its period key
// @Tags vat
// @Accept  json
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   period body dto.CreateVATPeriodRequest true "Period"
// @Success 200 {object} domain.VATPeriod
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /companies/{companyID}/vat/periods [post]
func (h *vatHandler) getOrCreatePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	identity, ok := requireCompany(c)
	if !ok {
		return
	}

	var req dto.CreateVATPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for getOrCreatePeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	period, err := h.vatService.GetOrCreatePeriod(c.Request.Context(), identity.CompanyID, req, identity.Actor())
	if err != nil {
		respondServiceError(c, err, "Failed to resolve period")
		return
	}
	c.JSON(http.StatusOK, period)
}

// listPeriods godoc
// @Summary List filing periods
// @Tags vat
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   limit query int false "Page size (default 50)"
// @Param   offset query int false "Page offset"
// @Success 200 {array} domain.VATPeriod
// @Router /companies/{companyID}/vat/periods [get]
func (h *vatHandler) listPeriods(c *gin.Context) {
	identity, ok := requireCompany(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	periods, err := h.vatService.ListPeriods(c.Request.Context(), identity.CompanyID, limit, offset)
	if err != nil {
		respondServiceError(c, err, "Failed to list periods")
		return
	}
	c.JSON(http.StatusOK, periods)
}

// getPeriodDetail godoc
// @Summary Get a period with its latest reconciliation
// @Tags vat
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   periodID path string true "Period ID"
// @Success 200 {object} dto.VATPeriodDetail
// @Failure 404 {object} map[string]string "Period not found"
// @Router /companies/{companyID}/vat/periods/{periodID} [get]
func (h *vatHandler) getPeriodDetail(c *gin.Context) {
	identity, ok := requireCompany(c)
	if !ok {
		return
	}

	detail, err := h.vatService.GetPeriodDetail(c.Request.Context(), identity.CompanyID, c.Param("periodID"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve period")
		return
	}
	c.JSON(http.StatusOK, detail)
}

// saveDraftReconciliation godoc
// @Summary Save the period's draft reconciliation
// @Description Upserts the draft, fully replacing its lines; new versions get max+1
// @Tags vat
// @Accept  json
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   reconciliation body dto.SaveVATReconciliationRequest true "Reconciliation"
// @Success 200 {object} domain.VATReconciliation
// @Failure 409 {object} map[string]string "Period is locked"
// @Router /companies/{companyID}/vat/reconciliations [post]
func (h *vatHandler) saveDraftReconciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	identity, ok := requireCompany(c)
	if !ok {
		return
	}

	var req dto.SaveVATReconciliationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for saveDraftReconciliation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	recon, err := h.vatService.SaveDraftReconciliation(c.Request.Context(), identity.CompanyID, req, identity.Actor())
	if err != nil {
		respondServiceError(c, err, "Failed to save reconciliation")
		return
	}
	c.JSON(http.StatusOK, recon)
}

// authorizeDifference godoc
// @Summary Record the difference sign-off
// @Tags vat
// @Accept  json
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   reconID path string true "Reconciliation ID"
// @Param   authorization body dto.AuthorizeReconciliationRequest true "Sign-off initials"
// @Success 200 {object} domain.VATReconciliation
// @Router /companies/{companyID}/vat/reconciliations/{reconID}/authorize-difference [post]
func (h *vatHandler) authorizeDifference(c *gin.Context) {
	h.authorize(c, false)
}

// authorizeSOA godoc
// @Summary Record the statement-of-account sign-off
// @Tags vat
// @Accept  json
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   reconID path string true "Reconciliation ID"
// @Param   authorization body dto.AuthorizeReconciliationRequest true "Sign-off initials"
// @Success 200 {object} domain.VATReconciliation
// @Router /companies/{companyID}/vat/reconciliations/{reconID}/authorize-soa [post]
func (h *vatHandler) authorizeSOA(c *gin.Context) {
	h.authorize(c, true)
}

func (h *vatHandler) authorize(c *gin.Context, soa bool) {
	identity, ok := requireCompany(c)
	if !ok {
		return
	}

	var req dto.AuthorizeReconciliationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Authorizer initials are required"})
		return
	}

	reconID := c.Param("reconID")
	var recon any
	var err error
	if soa {
		recon, err = h.vatService.AuthorizeSOADifference(c.Request.Context(), identity.CompanyID, reconID, req.Initials, identity.Actor())
	} else {
		recon, err = h.vatService.AuthorizeDifference(c.Request.Context(), identity.CompanyID, reconID, req.Initials, identity.Actor())
	}
	if err != nil {
		respondServiceError(c, err, "Failed to record authorization")
		return
	}
	c.JSON(http.StatusOK, recon)
}

// approveReconciliation godoc
// @Summary Approve a draft reconciliation
// @Tags vat
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   reconID path string true "Reconciliation ID"
// @Success 200 {object} domain.VATReconciliation
// @Failure 409 {object} map[string]string "Reconciliation is not a draft"
// @Router /companies/{companyID}/vat/reconciliations/{reconID}/approve [post]
func (h *vatHandler) approveReconciliation(c *gin.Context) {
	identity, ok := requireCompany(c)
	if !ok {
		return
	}

	recon, err := h.vatService.ApproveReconciliation(c.Request.Context(), identity.CompanyID, c.Param("reconID"), identity.Actor())
	if err != nil {
		respondServiceError(c, err, "Failed to approve reconciliation")
		return
	}
	c.JSON(http.StatusOK, recon)
}

// submitPeriod godoc
// @Summary Submit a period to SARS and lock it
// @Description Records the filing and locks the reconciliation, period and snapshots atomically
// @Tags vat
// @Accept  json
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   periodID path string true "Period ID"
// @Param   submission body dto.SubmitVATRequest true "Submission"
// @Success 201 {object} domain.VATSubmission
// @Failure 409 {object} map[string]string "Latest reconciliation is not approved"
// @Router /companies/{companyID}/vat/periods/{periodID}/submit [post]
func (h *vatHandler) submitPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	identity, ok := requireCompany(c)
	if !ok {
		return
	}

	var req dto.SubmitVATRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	periodID := c.Param("periodID")
	submission, err := h.vatService.SubmitToSARS(c.Request.Context(), identity.CompanyID, periodID, req, identity.Actor())
	if err != nil {
		respondServiceError(c, err, "Failed to submit period")
		return
	}

	logger.Info("Period submitted", slog.String("period_id", periodID), slog.String("submission_id", submission.VATSubmissionID))
	c.JSON(http.StatusCreated, submission)
}

// listSubmissions godoc
// @Summary List a period's submissions
// @Tags vat
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   periodID path string true "Period ID"
// @Success 200 {array} domain.VATSubmission
// @Router /companies/{companyID}/vat/periods/{periodID}/submissions [get]
func (h *vatHandler) listSubmissions(c *gin.Context) {
	identity, ok := requireCompany(c)
	if !ok {
		return
	}

	submissions, err := h.vatService.ListSubmissions(c.Request.Context(), identity.CompanyID, c.Param("periodID"))
	if err != nil {
		respondServiceError(c, err, "Failed to list submissions")
		return
	}
	c.JSON(http.StatusOK, submissions)
}

// generateSnapshot godoc
// @Summary Generate a VAT201-style report snapshot
// @Tags vat
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   periodID path string true "Period ID"
// @Success 201 {object} domain.VATReportSnapshot
// @Failure 409 {object} map[string]string "Period is locked or has no reconciliation"
// @Router /companies/{companyID}/vat/periods/{periodID}/report [post]
func (h *vatHandler) generateSnapshot(c *gin.Context) {
	identity, ok := requireCompany(c)
	if !ok {
		return
	}

	snapshot, err := h.vatService.GenerateReportSnapshot(c.Request.Context(), identity.CompanyID, c.Param("periodID"), identity.Actor())
	if err != nil {
		respondServiceError(c, err, "Failed to generate report snapshot")
		return
	}
	c.JSON(http.StatusCreated, snapshot)
}

// registerVATRoutes registers VAT workflow routes.
func registerVATRoutes(group *gin.RouterGroup, vatService portssvc.VATSvcFacade) {
	h := newVATHandler(vatService)

	vat := group.Group("/vat")
	{
		vat.POST("/periods", h.getOrCreatePeriod)
		vat.GET("/periods", h.listPeriods)
		vat.GET("/periods/:periodID", h.getPeriodDetail)
		vat.POST("/periods/:periodID/submit", h.submitPeriod)
		vat.GET("/periods/:periodID/submissions", h.listSubmissions)
		vat.POST("/periods/:periodID/report", h.generateSnapshot)
		vat.POST("/reconciliations", h.saveDraftReconciliation)
		vat.POST("/reconciliations/:reconID/authorize-difference", h.authorizeDifference)
		vat.POST("/reconciliations/:reconID/authorize-soa", h.authorizeSOA)
		vat.POST("/reconciliations/:reconID/approve", h.approveReconciliation)
	}
}
