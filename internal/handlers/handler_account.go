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

// accountHandler handles HTTP requests for the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

func newAccountHandler(accountService portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: accountService,
	}
}

// createAccount godoc
// @Summary Create an account
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   account body dto.CreateAccountRequest true "Account"
// @Success 201 {object} domain.Account
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 409 {object} map[string]string "Account code already exists"
// @Router /companies/{companyID}/accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	identity, ok := requireCompany(c)
	if !ok {
		return
	}

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), identity.CompanyID, req, identity.Actor())
	if err != nil {
		respondServiceError(c, err, "Failed to create account")
		return
	}
	c.JSON(http.StatusCreated, account)
}

// getAccount godoc
// @Summary Get an account
// @Tags accounts
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   accountID path string true "Account ID"
// @Success 200 {object} domain.Account
// @Failure 404 {object} map[string]string "Account not found"
// @Router /companies/{companyID}/accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	identity, ok := requireCompany(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), identity.CompanyID, c.Param("accountID"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, account)
}

// listAccounts godoc
// @Summary List accounts
// @Tags accounts
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   onlyActive query bool false "Only active accounts"
// @Param   limit query int false "Page size (default 100)"
// @Param   offset query int false "Page offset"
// @Success 200 {array} domain.Account
// @Router /companies/{companyID}/accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	identity, ok := requireCompany(c)
	if !ok {
		return
	}

	onlyActive, _ := strconv.ParseBool(c.DefaultQuery("onlyActive", "false"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), identity.CompanyID, onlyActive, limit, offset)
	if err != nil {
		respondServiceError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, accounts)
}

// updateAccount godoc
// @Summary Update an account
// @Description Updates name/description/isActive; account type is immutable
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   accountID path string true "Account ID"
// @Param   account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} domain.Account
// @Failure 404 {object} map[string]string "Account not found"
// @Router /companies/{companyID}/accounts/{accountID} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	identity, ok := requireCompany(c)
	if !ok {
		return
	}

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), identity.CompanyID, c.Param("accountID"), req, identity.Actor())
	if err != nil {
		respondServiceError(c, err, "Failed to update account")
		return
	}
	c.JSON(http.StatusOK, account)
}

// registerAccountRoutes registers chart-of-accounts routes.
func registerAccountRoutes(group *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := group.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccount)
		accounts.PUT("/:accountID", h.updateAccount)
	}
}
