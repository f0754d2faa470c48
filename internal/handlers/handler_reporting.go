package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/fynbooks/fynbooks_backend/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

const reportDateLayout = "2006-01-02"

// reportingHandler handles HTTP requests for the read-side reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(reportingService portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: reportingService,
	}
}

// trialBalance godoc
// @Summary Trial balance report
// @Description Aggregates posted debit/credit per account over the range, bucketed by type
// @Tags reports
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   fromDate query string true "Inclusive lower bound (YYYY-MM-DD)"
// @Param   toDate query string true "Inclusive upper bound (YYYY-MM-DD)"
// @Success 200 {object} domain.TrialBalanceReport
// @Failure 400 {object} map[string]string "Invalid date range"
// @Router /companies/{companyID}/reports/trial-balance [get]
func (h *reportingHandler) trialBalance(c *gin.Context) {
	identity, ok := requireCompany(c)
	if !ok {
		return
	}

	fromDate, ok := parseReportDate(c, "fromDate", true)
	if !ok {
		return
	}
	toDate, ok := parseReportDate(c, "toDate", true)
	if !ok {
		return
	}

	report, err := h.reportingService.TrialBalance(c.Request.Context(), identity.CompanyID, *fromDate, *toDate)
	if err != nil {
		respondServiceError(c, err, "Failed to build trial balance")
		return
	}
	c.JSON(http.StatusOK, report)
}

// generalLedger godoc
// @Summary General ledger report for one account
// @Description Walks an account's posted lines with a running balance
// @Tags reports
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   accountID path string true "Account ID"
// @Param   fromDate query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param   toDate query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Success 200 {object} domain.GeneralLedgerReport
// @Failure 404 {object} map[string]string "Account not found"
// @Router /companies/{companyID}/reports/general-ledger/{accountID} [get]
func (h *reportingHandler) generalLedger(c *gin.Context) {
	identity, ok := requireCompany(c)
	if !ok {
		return
	}

	fromDate, ok := parseReportDate(c, "fromDate", false)
	if !ok {
		return
	}
	toDate, ok := parseReportDate(c, "toDate", false)
	if !ok {
		return
	}

	report, err := h.reportingService.GeneralLedger(c.Request.Context(), identity.CompanyID, c.Param("accountID"), fromDate, toDate)
	if err != nil {
		respondServiceError(c, err, "Failed to build general ledger")
		return
	}
	c.JSON(http.StatusOK, report)
}

// bankReconciliation godoc
// @Summary Bank reconciliation report
// @Description Derives the statement-vs-ledger delta for a bank account as of a date
// @Tags reports
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   bankAccountID path string true "Bank account ID"
// @Param   asOfDate query string true "As-of date (YYYY-MM-DD)"
// @Success 200 {object} domain.BankReconciliationReport
// @Failure 404 {object} map[string]string "Bank account not found"
// @Router /companies/{companyID}/reports/bank-reconciliation/{bankAccountID} [get]
func (h *reportingHandler) bankReconciliation(c *gin.Context) {
	identity, ok := requireCompany(c)
	if !ok {
		return
	}

	asOfDate, ok := parseReportDate(c, "asOfDate", true)
	if !ok {
		return
	}

	report, err := h.reportingService.BankReconciliation(c.Request.Context(), identity.CompanyID, c.Param("bankAccountID"), *asOfDate)
	if err != nil {
		respondServiceError(c, err, "Failed to build bank reconciliation")
		return
	}
	c.JSON(http.StatusOK, report)
}

// parseReportDate parses a YYYY-MM-DD query parameter. Missing optional
// parameters yield a nil date.
func parseReportDate(c *gin.Context, name string, required bool) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		if required {
			c.JSON(http.StatusBadRequest, gin.H{"error": name + " query parameter is required"})
			return nil, false
		}
		return nil, true
	}
	parsed, err := time.Parse(reportDateLayout, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be formatted YYYY-MM-DD"})
		return nil, false
	}
	return &parsed, true
}

// registerReportingRoutes registers report routes.
func registerReportingRoutes(group *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := group.Group("/reports")
	{
		reports.GET("/trial-balance", h.trialBalance)
		reports.GET("/general-ledger/:accountID", h.generalLedger)
		reports.GET("/bank-reconciliation/:bankAccountID", h.bankReconciliation)
	}
}
