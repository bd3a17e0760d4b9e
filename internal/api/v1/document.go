package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paperstack/paperstack/internal/api/dto"
	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/paperstack/paperstack/internal/logger"
	"github.com/paperstack/paperstack/internal/service"
	"github.com/paperstack/paperstack/internal/types"
)

type DocumentHandler struct {
	documentService   service.DocumentService
	conversionService service.ConversionService
	pdfService        service.PdfService
	emailService      service.EmailService
	syncService       service.SyncService
	logger            *logger.Logger
}

func NewDocumentHandler(
	documentService service.DocumentService,
	conversionService service.ConversionService,
	pdfService service.PdfService,
	emailService service.EmailService,
	syncService service.SyncService,
	logger *logger.Logger,
) *DocumentHandler {
	return &DocumentHandler{
		documentService:   documentService,
		conversionService: conversionService,
		pdfService:        pdfService,
		emailService:      emailService,
		syncService:       syncService,
		logger:            logger,
	}
}

// @Summary Create document
// @Description Create a document. Unauthenticated requests create a guest document tied to the caller's address.
// @Tags Documents
// @Accept json
// @Produce json
// @Param document body dto.CreateDocumentRequest true "Document"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /documents [post]
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.documentService.CreateDocument(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get document
// @Tags Documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /documents/{id} [get]
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("document ID is required").
			WithHint("Document ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.documentService.GetDocument(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update document
// @Description Replace the editable fields of a document. Totals are recomputed.
// @Tags Documents
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param document body dto.UpdateDocumentRequest true "Document"
// @Success 200 {object} dto.DocumentResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /documents/{id} [put]
func (h *DocumentHandler) UpdateDocument(c *gin.Context) {
	id := c.Param("id")

	var req dto.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.documentService.UpdateDocument(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete document
// @Tags Documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} dto.DeleteDocumentResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /documents/{id} [delete]
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	id := c.Param("id")

	if err := h.documentService.DeleteDocument(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.DeleteDocumentResponse{Message: "Document deleted successfully"})
}

// @Summary List my documents
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param filter query types.DocumentFilter false "Filter"
// @Success 200 {object} dto.ListDocumentsResponse
// @Failure 401 {object} ierr.ErrorResponse
// @Router /documents/user [get]
func (h *DocumentHandler) ListUserDocuments(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	resp, err := h.documentService.ListUserDocuments(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List guest documents
// @Description List unowned documents created from the caller's address
// @Tags Documents
// @Produce json
// @Param filter query types.DocumentFilter false "Filter"
// @Success 200 {object} dto.ListDocumentsResponse
// @Router /documents/guest [get]
func (h *DocumentHandler) ListGuestDocuments(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	resp, err := h.documentService.ListGuestDocuments(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *DocumentHandler) bindFilter(c *gin.Context) (*types.DocumentFilter, bool) {
	filter := types.NewDocumentFilter()
	if err := c.ShouldBindQuery(filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return nil, false
	}
	return filter, true
}

// @Summary Convert document
// @Description Convert a quotation into an invoice, or an invoice into a receipt
// @Tags Documents
// @Accept json
// @Produce json
// @Param request body dto.ConvertDocumentRequest true "Conversion"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /documents/convert [post]
func (h *DocumentHandler) ConvertDocument(c *gin.Context) {
	var req dto.ConvertDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.conversionService.ConvertDocument(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Download document pdf
// @Tags Documents
// @Produce application/pdf
// @Param id path string true "Document ID"
// @Success 200 {file} file
// @Failure 403 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /documents/{id}/pdf [get]
func (h *DocumentHandler) GetDocumentPdf(c *gin.Context) {
	id := c.Param("id")

	rendered, err := h.pdfService.RenderDocument(c.Request.Context(), id)
	if err != nil {
		h.logger.Errorw("failed to render document pdf", "error", err, "document_id", id)
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rendered.Filename))
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
	c.Data(http.StatusOK, "application/pdf", rendered.Content)
}

// @Summary Email document
// @Description Render the document and send it as a pdf attachment
// @Tags Documents
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param request body dto.EmailDocumentRequest true "Email"
// @Success 200 {object} dto.EmailDocumentResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 502 {object} ierr.ErrorResponse
// @Router /documents/{id}/email [post]
func (h *DocumentHandler) EmailDocument(c *gin.Context) {
	id := c.Param("id")

	var req dto.EmailDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.emailService.SendDocument(c.Request.Context(), id, &req)
	if err != nil {
		h.logger.Errorw("failed to email document", "error", err, "document_id", id)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Sync local documents
// @Description Persist documents created offline. Entries already synced under the same local id are acknowledged without a new insert.
// @Tags Documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SyncLocalRequest true "Batch"
// @Success 200 {object} dto.SyncLocalResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 401 {object} ierr.ErrorResponse
// @Router /documents/sync-local [post]
func (h *DocumentHandler) SyncLocalDocuments(c *gin.Context) {
	var req dto.SyncLocalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.syncService.SyncLocal(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
