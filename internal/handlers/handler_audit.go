package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/fynbooks/fynbooks_backend/internal/core/ports/services"
	"github.com/fynbooks/fynbooks_backend/internal/dto"
	"github.com/fynbooks/fynbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// auditHandler exposes the forensic read over the append-only audit log.
type auditHandler struct {
	auditService portssvc.AuditSvcFacade
}

func newAuditHandler(auditService portssvc.AuditSvcFacade) *auditHandler {
	return &auditHandler{
		auditService: auditService,
	}
}

// queryAuditLogs godoc
// @Summary Query audit log entries
// @Description Retrieves a filtered page of audit entries, newest first
// @Tags audit
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   entityType query string false "Filter by entity type"
// @Param   entityID query string false "Filter by entity id"
// @Param   actorType query string false "Filter by actor type (USER, AI, SYSTEM)"
// @Param   actionType query string false "Filter by action type"
// @Param   fromDate query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param   toDate query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Param   limit query int false "Page size (default 100)"
// @Param   offset query int false "Page offset"
// @Success 200 {array} domain.AuditLogEntry
// @Router /companies/{companyID}/audit-logs [get]
func (h *auditHandler) queryAuditLogs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	identity, ok := requireCompany(c)
	if !ok {
		return
	}

	var params dto.AuditQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for queryAuditLogs", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	entries, err := h.auditService.Query(c.Request.Context(), identity.CompanyID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to query audit logs")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// registerAuditRoutes registers audit log routes.
func registerAuditRoutes(group *gin.RouterGroup, auditService portssvc.AuditSvcFacade) {
	h := newAuditHandler(auditService)
	group.GET("/audit-logs", h.queryAuditLogs)
}
