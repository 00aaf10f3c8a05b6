package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerlink/reconcile-backend/internal/api/dto"
	"github.com/ledgerlink/reconcile-backend/internal/application/service"
)

// MatchHandler exposes the matching engine, both over stored records and
// over candidate lists supplied in the request body.
type MatchHandler struct {
	svc *service.ReconcileService
}

// NewMatchHandler creates a new match handler.
func NewMatchHandler(svc *service.ReconcileService) *MatchHandler {
	return &MatchHandler{svc: svc}
}

// FindAttachment handles GET /api/transactions/:id/attachment - finds the
// best attachment for a stored transaction. A no-match is a valid outcome
// and returns 200 with matched=false.
func (h *MatchHandler) FindAttachment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	att, err := h.svc.FindAttachmentForTransaction(id)
	if errors.Is(err, service.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, dto.NotFoundError("transaction"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	c.JSON(http.StatusOK, dto.MatchAttachmentResponse{
		Matched:    att != nil,
		Attachment: att,
	})
}

// FindTransaction handles GET /api/attachments/:id/transaction - finds the
// best transaction for a stored attachment.
func (h *MatchHandler) FindTransaction(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	tx, err := h.svc.FindTransactionForAttachment(id)
	if errors.Is(err, service.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, dto.NotFoundError("attachment"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	c.JSON(http.StatusOK, dto.MatchTransactionResponse{
		Matched:     tx != nil,
		Transaction: tx,
	})
}

// MatchAttachment handles POST /api/match/attachment - runs the engine over
// a transaction and candidate attachments carried entirely in the request
// body, without touching the store.
func (h *MatchHandler) MatchAttachment(c *gin.Context) {
	var req dto.MatchAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError("invalid request body: "+err.Error()))
		return
	}

	att := h.svc.Matcher().FindAttachment(req.Transaction, req.Attachments)

	c.JSON(http.StatusOK, dto.MatchAttachmentResponse{
		Matched:    att != nil,
		Attachment: att,
	})
}

// MatchTransaction handles POST /api/match/transaction - the symmetric
// stateless counterpart.
func (h *MatchHandler) MatchTransaction(c *gin.Context) {
	var req dto.MatchTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError("invalid request body: "+err.Error()))
		return
	}

	tx := h.svc.Matcher().FindTransaction(req.Attachment, req.Transactions)

	c.JSON(http.StatusOK, dto.MatchTransactionResponse{
		Matched:     tx != nil,
		Transaction: tx,
	})
}
