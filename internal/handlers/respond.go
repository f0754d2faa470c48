package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fynbooks/fynbooks_backend/internal/apperrors"
	"github.com/fynbooks/fynbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// requireCompany resolves the request identity and rejects callers whose token
// is not scoped to the companyID in the path. The path segment exists for
// addressability; the token is the source of truth.
func requireCompany(c *gin.Context) (middleware.Identity, bool) {
	identity, ok := middleware.GetIdentityFromCtx(c.Request.Context())
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return middleware.Identity{}, false
	}
	if pathCompany := c.Param("companyID"); pathCompany != "" && pathCompany != identity.CompanyID {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Token is not scoped to this company"})
		return middleware.Identity{}, false
	}
	return identity, true
}

// respondServiceError maps the error taxonomy onto HTTP statuses. Sentinels map
// to 4xx with the service's message; everything else is a 500 with a generic
// message so internals never leak.
func respondServiceError(c *gin.Context, err error, internalMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidState), errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		logger.Error(internalMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalMsg})
	}
}
