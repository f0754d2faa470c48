package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/fynbooks/fynbooks_backend/internal/core/ports/services"
	"github.com/fynbooks/fynbooks_backend/internal/dto"
	"github.com/fynbooks/fynbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests related to journals.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: journalService,
	}
}

// createJournal godoc
// @Summary Create a draft journal
// @Description Creates a new draft journal with its lines; debits must equal credits
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   journal body dto.CreateJournalRequest true "Journal and lines"
// @Success 201 {object} domain.Journal
// @Failure 400 {object} map[string]string "Invalid request format or unbalanced lines"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /companies/{companyID}/journals [post]
func (h *journalHandler) createJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	identity, ok := requireCompany(c)
	if !ok {
		return
	}

	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	journal, err := h.journalService.CreateDraftJournal(c.Request.Context(), identity.CompanyID, req, identity.Actor())
	if err != nil {
		respondServiceError(c, err, "Failed to create journal")
		return
	}

	logger.Info("Journal created", slog.String("journal_id", journal.JournalID))
	c.JSON(http.StatusCreated, journal)
}

// getJournal godoc
// @Summary Get a journal and its lines
// @Tags journals
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   journalID path string true "Journal ID"
// @Success 200 {object} domain.Journal
// @Failure 404 {object} map[string]string "Journal not found"
// @Router /companies/{companyID}/journals/{journalID} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	identity, ok := requireCompany(c)
	if !ok {
		return
	}

	journal, err := h.journalService.GetJournalWithLines(c.Request.Context(), identity.CompanyID, c.Param("journalID"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve journal")
		return
	}
	c.JSON(http.StatusOK, journal)
}

// listJournals godoc
// @Summary List journals
// @Description Retrieves a filtered page of journals ordered by date desc
// @Tags journals
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   status query string false "Filter by status (DRAFT, POSTED, REVERSED)"
// @Param   sourceType query string false "Filter by source type"
// @Param   fromDate query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param   toDate query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Param   limit query int false "Page size (default 50)"
// @Param   offset query int false "Page offset"
// @Success 200 {object} dto.ListJournalsResponse
// @Router /companies/{companyID}/journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	identity, ok := requireCompany(c)
	if !ok {
		return
	}

	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for listJournals", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	journals, err := h.journalService.ListJournals(c.Request.Context(), identity.CompanyID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list journals")
		return
	}

	c.JSON(http.StatusOK, dto.ListJournalsResponse{
		Journals: journals,
		Limit:    params.Limit,
		Offset:   params.Offset,
	})
}

// postJournal godoc
// @Summary Post a draft journal
// @Description Transitions a draft journal to POSTED after re-validating balance
// @Tags journals
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   journalID path string true "Journal ID"
// @Success 200 {object} domain.Journal
// @Failure 409 {object} map[string]string "Journal is not a draft"
// @Router /companies/{companyID}/journals/{journalID}/post [post]
func (h *journalHandler) postJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	identity, ok := requireCompany(c)
	if !ok {
		return
	}

	journalID := c.Param("journalID")
	journal, err := h.journalService.PostJournal(c.Request.Context(), identity.CompanyID, journalID, identity.Actor())
	if err != nil {
		respondServiceError(c, err, "Failed to post journal")
		return
	}

	logger.Info("Journal posted", slog.String("journal_id", journalID))
	c.JSON(http.StatusOK, journal)
}

// reverseJournal godoc
// @Summary Reverse a posted journal
// @Description Creates a posted reversal journal with debit/credit swapped per line
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   journalID path string true "Journal ID"
// @Param   reversal body dto.ReverseJournalRequest true "Reversal reason"
// @Success 201 {object} domain.Journal "The reversal journal"
// @Failure 409 {object} map[string]string "Journal is not posted"
// @Router /companies/{companyID}/journals/{journalID}/reverse [post]
func (h *journalHandler) reverseJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	identity, ok := requireCompany(c)
	if !ok {
		return
	}

	var req dto.ReverseJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reversal reason is required"})
		return
	}

	journalID := c.Param("journalID")
	reversal, err := h.journalService.ReverseJournal(c.Request.Context(), identity.CompanyID, journalID, req.Reason, identity.Actor())
	if err != nil {
		respondServiceError(c, err, "Failed to reverse journal")
		return
	}

	logger.Info("Journal reversed",
		slog.String("journal_id", journalID),
		slog.String("reversal_journal_id", reversal.JournalID))
	c.JSON(http.StatusCreated, reversal)
}

// deleteJournal godoc
// @Summary Delete a draft journal
// @Tags journals
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   journalID path string true "Journal ID"
// @Success 204 "Deleted"
// @Failure 409 {object} map[string]string "Journal is not a draft"
// @Router /companies/{companyID}/journals/{journalID} [delete]
func (h *journalHandler) deleteJournal(c *gin.Context) {
	identity, ok := requireCompany(c)
	if !ok {
		return
	}

	if err := h.journalService.DeleteJournal(c.Request.Context(), identity.CompanyID, c.Param("journalID"), identity.Actor()); err != nil {
		respondServiceError(c, err, "Failed to delete journal")
		return
	}
	c.Status(http.StatusNoContent)
}

// registerJournalRoutes registers journal specific routes.
func registerJournalRoutes(group *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journals := group.Group("/journals")
	{
		journals.POST("", h.createJournal)
		journals.GET("", h.listJournals)
		journals.GET("/:journalID", h.getJournal)
		journals.POST("/:journalID/post", h.postJournal)
		journals.POST("/:journalID/reverse", h.reverseJournal)
		journals.DELETE("/:journalID", h.deleteJournal)
	}
}
