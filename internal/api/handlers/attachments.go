package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ledgerlink/reconcile-backend/internal/api/dto"
	"github.com/ledgerlink/reconcile-backend/internal/infrastructure/storage"
)

// AttachmentsHandler handles invoice/receipt attachment record requests.
type AttachmentsHandler struct {
	repo storage.Repository
}

// NewAttachmentsHandler creates a new attachments handler.
func NewAttachmentsHandler(repo storage.Repository) *AttachmentsHandler {
	return &AttachmentsHandler{repo: repo}
}

// Import handles POST /api/attachments/import - stores a batch of
// attachments under a fresh batch id.
func (h *AttachmentsHandler) Import(c *gin.Context) {
	var req dto.ImportAttachmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError("invalid request body: "+err.Error()))
		return
	}
	if len(req.Attachments) == 0 {
		c.JSON(http.StatusBadRequest, dto.BadRequestError("attachments must not be empty"))
		return
	}

	batchID := uuid.NewString()
	if err := h.repo.SaveAttachments(batchID, req.Attachments); err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	c.JSON(http.StatusCreated, dto.ImportResponse{
		BatchID: batchID,
		Count:   len(req.Attachments),
	})
}

// List handles GET /api/attachments.
func (h *AttachmentsHandler) List(c *gin.Context) {
	atts, err := h.repo.ListAttachments()
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	c.JSON(http.StatusOK, dto.AttachmentListResponse{
		Attachments: atts,
		Count:       len(atts),
	})
}

// Get handles GET /api/attachments/:id.
func (h *AttachmentsHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	att, err := h.repo.GetAttachment(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	if att == nil {
		c.JSON(http.StatusNotFound, dto.NotFoundError("attachment"))
		return
	}

	c.JSON(http.StatusOK, att)
}
