package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "govsite/internal/errors"
	"govsite/internal/model"
	"govsite/internal/service"
	"govsite/internal/upload"
)

// DocumentHandler serves /api/documents.
type DocumentHandler struct {
	svc service.DocumentService
	log *zap.Logger
}

// NewDocumentHandler creates a documents handler.
func NewDocumentHandler(svc service.DocumentService, log *zap.Logger) *DocumentHandler {
	return &DocumentHandler{svc: svc, log: log}
}

// UploadRequest is the metadata sent alongside the file in POST /documents/upload.
type UploadRequest struct {
	Title       string   `form:"title" validate:"required,max=255"`
	Description string   `form:"description"`
	Category    string   `form:"category" validate:"required,max=100"`
	Tags        []string `form:"tags" validate:"omitempty,dive,min=1,max=50"`
	UploadedBy  uint     `form:"uploadedBy" validate:"required"`
	IsPublic    string   `form:"isPublic" validate:"omitempty,oneof=true false"`
	Language    string   `form:"language" validate:"omitempty,lang"`
}

func (r UploadRequest) toInput() model.DocumentInput {
	in := model.DocumentInput{
		Title:      r.Title,
		Category:   r.Category,
		Tags:       r.Tags,
		UploadedBy: r.UploadedBy,
		Language:   r.Language,
	}
	if r.Description != "" {
		in.Description = &r.Description
	}
	if r.IsPublic != "" {
		public := r.IsPublic == "true"
		in.IsPublic = &public
	}
	return in
}

// List godoc
// @Summary List public documents
// @Tags documents
// @Produce json
// @Param category query string false "Category"
// @Param lang query string false "Language" default(en)
// @Success 200 {array} model.Document
// @Failure 500 {object} errors.ErrorResponse
// @Router /documents [get]
func (h *DocumentHandler) List(c echo.Context) error {
	items, err := h.svc.ListDocuments(c.Request().Context(), c.QueryParam("category"), c.QueryParam("lang"))
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, items)
}

// Get godoc
// @Summary Get public document by id
// @Tags documents
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} model.Document
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /documents/{id} [get]
func (h *DocumentHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, h.log, err)
	}
	doc, err := h.svc.GetDocument(c.Request().Context(), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, doc)
}

// Create godoc
// @Summary Register a document hosted elsewhere
// @Tags documents
// @Accept json
// @Produce json
// @Param document body model.DocumentInput true "Document payload"
// @Success 201 {object} CreatedResponse
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /documents [post]
func (h *DocumentHandler) Create(c echo.Context) error {
	var in model.DocumentInput
	if err := bind(c, &in); err != nil {
		return err
	}
	created, err := h.svc.CreateDocument(c.Request().Context(), in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, CreatedResponse{Message: "Document created successfully", ID: created.ID})
}

// Upload godoc
// @Summary Upload a document file
// @Description Stores the file in object storage and creates the document record.
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document file"
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param category formData string true "Category"
// @Param tags formData []string false "Tags"
// @Param uploadedBy formData int true "Uploader user ID"
// @Param isPublic formData bool false "Public" default(true)
// @Param language formData string false "Language" default(en)
// @Success 201 {object} CreatedResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 413 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /documents/upload [post]
func (h *DocumentHandler) Upload(c echo.Context) error {
	var req UploadRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	fh, err := c.FormFile("file")
	if err != nil {
		e := apperrors.NewHTTPError(http.StatusBadRequest, "Validation error", "VALIDATION_ERROR")
		e.Fields = []apperrors.FieldError{{Field: "file", Rule: "required", Message: "file is required"}}
		return echo.NewHTTPError(e.StatusCode, e.ToErrorResponse())
	}
	f, err := fh.Open()
	if err != nil {
		return fail(c, h.log, err)
	}
	defer f.Close()

	created, err := h.svc.UploadDocument(c.Request().Context(), req.toInput(), fh.Filename, f)
	if errors.Is(err, upload.ErrTooLarge) {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, apperrors.ErrorResponse{
			Message: "File is too large",
			Code:    "FILE_TOO_LARGE",
		})
	}
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, CreatedResponse{Message: "Document uploaded successfully", ID: created.ID})
}

// Update godoc
// @Summary Update document
// @Tags documents
// @Accept json
// @Produce json
// @Param id path int true "Document ID"
// @Param document body model.DocumentPatch true "Fields to change"
// @Success 200 {object} model.Document
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /documents/{id} [put]
func (h *DocumentHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, h.log, err)
	}
	var patch model.DocumentPatch
	if err := bind(c, &patch); err != nil {
		return err
	}
	doc, err := h.svc.UpdateDocument(c.Request().Context(), id, patch)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, doc)
}

// Delete godoc
// @Summary Delete document
// @Tags documents
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, h.log, err)
	}
	if err := h.svc.DeleteDocument(c.Request().Context(), id); err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Document deleted successfully"})
}
