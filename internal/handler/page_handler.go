package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"govsite/internal/model"
	"govsite/internal/service"
)

// PageHandler serves /api/pages.
type PageHandler struct {
	svc service.PageService
	log *zap.Logger
}

// NewPageHandler creates a pages handler.
func NewPageHandler(svc service.PageService, log *zap.Logger) *PageHandler {
	return &PageHandler{svc: svc, log: log}
}

// List godoc
// @Summary List published pages
// @Tags pages
// @Produce json
// @Param lang query string false "Language" default(en)
// @Success 200 {array} model.Page
// @Router /pages [get]
func (h *PageHandler) List(c echo.Context) error {
	items, err := h.svc.ListPages(c.Request().Context(), c.QueryParam("lang"))
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, items)
}

// GetBySlug godoc
// @Summary Get published page by slug and language
// @Tags pages
// @Produce json
// @Param slug path string true "Slug"
// @Param lang query string false "Language" default(en)
// @Success 200 {object} model.Page
// @Failure 404 {object} errors.ErrorResponse
// @Router /pages/{slug} [get]
func (h *PageHandler) GetBySlug(c echo.Context) error {
	page, err := h.svc.GetPageBySlug(c.Request().Context(), c.Param("slug"), c.QueryParam("lang"))
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, page)
}

// Create godoc
// @Summary Create page
// @Description Content is sanitised HTML; the slug is derived from the title when omitted.
// @Tags pages
// @Accept json
// @Produce json
// @Param page body model.PageInput true "Page payload"
// @Success 201 {object} CreatedResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /pages [post]
func (h *PageHandler) Create(c echo.Context) error {
	var in model.PageInput
	if err := bind(c, &in); err != nil {
		return err
	}
	created, err := h.svc.CreatePage(c.Request().Context(), in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, CreatedResponse{Message: "Page created successfully", ID: created.ID})
}

// Update godoc
// @Summary Update page
// @Tags pages
// @Accept json
// @Produce json
// @Param id path int true "Page ID"
// @Param page body model.PagePatch true "Fields to change"
// @Success 200 {object} model.Page
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /pages/{id} [put]
func (h *PageHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, h.log, err)
	}
	var patch model.PagePatch
	if err := bind(c, &patch); err != nil {
		return err
	}
	page, err := h.svc.UpdatePage(c.Request().Context(), id, patch)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, page)
}

// Delete godoc
// @Summary Delete page
// @Tags pages
// @Produce json
// @Param id path int true "Page ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /pages/{id} [delete]
func (h *PageHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, h.log, err)
	}
	if err := h.svc.DeletePage(c.Request().Context(), id); err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Page deleted successfully"})
}
