package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ledgerlink/reconcile-backend/internal/api/dto"
	"github.com/ledgerlink/reconcile-backend/internal/infrastructure/storage"
)

// TransactionsHandler handles bank transaction record requests.
type TransactionsHandler struct {
	repo storage.Repository
}

// NewTransactionsHandler creates a new transactions handler.
func NewTransactionsHandler(repo storage.Repository) *TransactionsHandler {
	return &TransactionsHandler{repo: repo}
}

// Import handles POST /api/transactions/import - stores a batch of
// transactions under a fresh batch id.
func (h *TransactionsHandler) Import(c *gin.Context) {
	var req dto.ImportTransactionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError("invalid request body: "+err.Error()))
		return
	}
	if len(req.Transactions) == 0 {
		c.JSON(http.StatusBadRequest, dto.BadRequestError("transactions must not be empty"))
		return
	}

	batchID := uuid.NewString()
	if err := h.repo.SaveTransactions(batchID, req.Transactions); err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	c.JSON(http.StatusCreated, dto.ImportResponse{
		BatchID: batchID,
		Count:   len(req.Transactions),
	})
}

// List handles GET /api/transactions.
func (h *TransactionsHandler) List(c *gin.Context) {
	txs, err := h.repo.ListTransactions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	c.JSON(http.StatusOK, dto.TransactionListResponse{
		Transactions: txs,
		Count:        len(txs),
	})
}

// Get handles GET /api/transactions/:id.
func (h *TransactionsHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	tx, err := h.repo.GetTransaction(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	if tx == nil {
		c.JSON(http.StatusNotFound, dto.NotFoundError("transaction"))
		return
	}

	c.JSON(http.StatusOK, tx)
}

// parseIDParam parses the :id path parameter, writing a 400 response on
// failure.
func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError("id must be an integer"))
		return 0, false
	}
	return id, true
}
