package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"govsite/internal/model"
	"govsite/internal/service"
)

// ContactHandler serves the public contact form and the admin inbox.
type ContactHandler struct {
	svc service.ContactService
	log *zap.Logger
}

// NewContactHandler creates a contact handler.
func NewContactHandler(svc service.ContactService, log *zap.Logger) *ContactHandler {
	return &ContactHandler{svc: svc, log: log}
}

// Submit godoc
// @Summary Submit the contact form
// @Tags contact
// @Accept json
// @Produce json
// @Param contact body model.ContactInput true "Contact form"
// @Success 201 {object} CreatedResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /contact [post]
func (h *ContactHandler) Submit(c echo.Context) error {
	var in model.ContactInput
	if err := bind(c, &in); err != nil {
		return err
	}
	created, err := h.svc.SubmitContact(c.Request().Context(), in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, CreatedResponse{Message: "Contact form submitted successfully", ID: created.ID})
}

// List godoc
// @Summary List contact submissions
// @Description Newest first.
// @Tags admin
// @Produce json
// @Success 200 {array} model.Contact
// @Security BearerAuth
// @Router /admin/contacts [get]
func (h *ContactHandler) List(c echo.Context) error {
	items, err := h.svc.ListContacts(c.Request().Context())
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, items)
}

// Get godoc
// @Summary Get contact submission
// @Tags admin
// @Produce json
// @Param id path int true "Contact ID"
// @Success 200 {object} model.Contact
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/contacts/{id} [get]
func (h *ContactHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, h.log, err)
	}
	item, err := h.svc.GetContact(c.Request().Context(), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, item)
}

// Update godoc
// @Summary Triage contact submission
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Contact ID"
// @Param contact body model.ContactPatch true "Fields to change, usually isRead"
// @Success 200 {object} model.Contact
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/contacts/{id} [patch]
func (h *ContactHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, h.log, err)
	}
	var patch model.ContactPatch
	if err := bind(c, &patch); err != nil {
		return err
	}
	item, err := h.svc.UpdateContact(c.Request().Context(), id, patch)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, item)
}

// Delete godoc
// @Summary Delete contact submission
// @Tags admin
// @Produce json
// @Param id path int true "Contact ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/contacts/{id} [delete]
func (h *ContactHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, h.log, err)
	}
	if err := h.svc.DeleteContact(c.Request().Context(), id); err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Contact deleted successfully"})
}
