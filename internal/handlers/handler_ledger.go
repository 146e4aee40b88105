package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/project_ledger/internal/core/ports/services"
	"github.com/SscSPs/project_ledger/internal/dto"
	"github.com/SscSPs/project_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler serves one project's transactions. Every response carries the
// whole refreshed ledger so clients never merge locally.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// registerLedgerRoutes registers ledger routes below a /projects/:project_id group.
func registerLedgerRoutes(projects *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := &ledgerHandler{ledgerService: ledgerService}

	project := projects.Group("/:project_id")
	{
		project.GET("/ledger", h.getLedger)
		project.POST("/transactions", h.addTransaction)
		project.DELETE("/transactions/:transaction_id", h.deleteTransaction)
		project.GET("/transactions/:transaction_id/link", h.copyTransactionID)
		project.GET("/transactions/:transaction_id/highlight", h.highlightLinked)
	}
}

// getLedger godoc
// @Summary Get a project's ledger
// @Description Returns the project, its transactions (newest first), the categories, the accounts and the balance. Parts that failed to load are listed in errors.
// @Tags ledger
// @Produce json
// @Param project_id path string true "Project ID"
// @Success 200 {object} dto.LedgerResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{project_id}/ledger [get]
func (h *ledgerHandler) getLedger(c *gin.Context) {
	projectID := c.Param("project_id")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("project_id", projectID))

	res, err := h.ledgerService.GetLedger(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, logger, err, "Failed to load ledger")
		return
	}
	if len(res.Errors) > 0 {
		logger.Warn("Ledger loaded partially", slog.Any("errors", res.Errors))
	}
	c.JSON(http.StatusOK, res)
}

// addTransaction godoc
// @Summary Add a transaction
// @Description Stores a transaction; the amount is a non-negative magnitude signed by its type. Returns the refreshed ledger.
// @Tags ledger
// @Accept json
// @Produce json
// @Param project_id path string true "Project ID"
// @Param transaction body dto.AddTransactionRequest true "Transaction details"
// @Success 201 {object} dto.LedgerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse "Write outcome unknown"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{project_id}/transactions [post]
func (h *ledgerHandler) addTransaction(c *gin.Context) {
	projectID := c.Param("project_id")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("project_id", projectID))

	var req dto.AddTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	session, _ := middleware.GetSessionFromCtx(c.Request.Context())
	res, err := h.ledgerService.AddTransaction(c.Request.Context(), projectID, req, session)
	if err != nil {
		respondError(c, logger, err, "Failed to add transaction")
		return
	}
	c.JSON(http.StatusCreated, res)
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Removes a transaction. Links pointing at it are left as they are. Returns the refreshed ledger.
// @Tags ledger
// @Produce json
// @Param project_id path string true "Project ID"
// @Param transaction_id path string true "Transaction ID"
// @Success 200 {object} dto.LedgerResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{project_id}/transactions/{transaction_id} [delete]
func (h *ledgerHandler) deleteTransaction(c *gin.Context) {
	projectID, transactionID := c.Param("project_id"), c.Param("transaction_id")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(
		slog.String("project_id", projectID), slog.String("transaction_id", transactionID))

	session, _ := middleware.GetSessionFromCtx(c.Request.Context())
	res, err := h.ledgerService.DeleteTransaction(c.Request.Context(), projectID, transactionID, session)
	if err != nil {
		respondError(c, logger, err, "Failed to delete transaction")
		return
	}
	c.JSON(http.StatusOK, res)
}

// copyTransactionID godoc
// @Summary Copy a transaction ID
// @Description Returns the ID of a listed transaction, for use as another transaction's link.
// @Tags ledger
// @Produce json
// @Param project_id path string true "Project ID"
// @Param transaction_id path string true "Transaction ID"
// @Success 200 {object} dto.CopyIDResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{project_id}/transactions/{transaction_id}/link [get]
func (h *ledgerHandler) copyTransactionID(c *gin.Context) {
	projectID := c.Param("project_id")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("project_id", projectID))

	id, err := h.ledgerService.CopyTransactionID(c.Request.Context(), projectID, c.Param("transaction_id"))
	if err != nil {
		respondError(c, logger, err, "Failed to copy transaction ID")
		return
	}
	c.JSON(http.StatusOK, dto.CopyIDResponse{TransactionID: id})
}

// highlightLinked godoc
// @Summary Follow a transaction link
// @Description Lists the transactions to highlight for a link target. The list is empty when the target no longer exists.
// @Tags ledger
// @Produce json
// @Param project_id path string true "Project ID"
// @Param transaction_id path string true "Link target ID"
// @Success 200 {object} dto.HighlightResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{project_id}/transactions/{transaction_id}/highlight [get]
func (h *ledgerHandler) highlightLinked(c *gin.Context) {
	projectID, targetID := c.Param("project_id"), c.Param("transaction_id")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("project_id", projectID))

	ids, err := h.ledgerService.HighlightLinked(c.Request.Context(), projectID, targetID)
	if err != nil {
		respondError(c, logger, err, "Failed to resolve link")
		return
	}
	if ids == nil {
		ids = []string{}
	}
	c.JSON(http.StatusOK, dto.HighlightResponse{TargetID: targetID, Highlighted: ids})
}
