package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"govsite/internal/model"
	"govsite/internal/service"
)

// ServiceHandler serves /api/services.
type ServiceHandler struct {
	svc service.CatalogService
	log *zap.Logger
}

// NewServiceHandler creates a services handler.
func NewServiceHandler(svc service.CatalogService, log *zap.Logger) *ServiceHandler {
	return &ServiceHandler{svc: svc, log: log}
}

// List godoc
// @Summary List active services
// @Tags services
// @Produce json
// @Param lang query string false "Language" default(en)
// @Success 200 {array} model.Service
// @Failure 500 {object} errors.ErrorResponse
// @Router /services [get]
func (h *ServiceHandler) List(c echo.Context) error {
	items, err := h.svc.ListServices(c.Request().Context(), c.QueryParam("lang"))
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, items)
}

// GetBySlug godoc
// @Summary Get service by slug
// @Tags services
// @Produce json
// @Param slug path string true "Slug"
// @Success 200 {object} model.Service
// @Failure 404 {object} errors.ErrorResponse
// @Router /services/{slug} [get]
func (h *ServiceHandler) GetBySlug(c echo.Context) error {
	item, err := h.svc.GetServiceBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, item)
}

// Create godoc
// @Summary Create service
// @Tags services
// @Accept json
// @Produce json
// @Param service body model.ServiceInput true "Service payload"
// @Success 201 {object} CreatedResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /services [post]
func (h *ServiceHandler) Create(c echo.Context) error {
	var in model.ServiceInput
	if err := bind(c, &in); err != nil {
		return err
	}
	created, err := h.svc.CreateService(c.Request().Context(), in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, CreatedResponse{Message: "Service created successfully", ID: created.ID})
}

// Update godoc
// @Summary Update service
// @Tags services
// @Accept json
// @Produce json
// @Param id path int true "Service ID"
// @Param service body model.ServicePatch true "Fields to change"
// @Success 200 {object} model.Service
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /services/{id} [put]
func (h *ServiceHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, h.log, err)
	}
	var patch model.ServicePatch
	if err := bind(c, &patch); err != nil {
		return err
	}
	item, err := h.svc.UpdateService(c.Request().Context(), id, patch)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, item)
}

// Delete godoc
// @Summary Delete service
// @Tags services
// @Produce json
// @Param id path int true "Service ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /services/{id} [delete]
func (h *ServiceHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, h.log, err)
	}
	if err := h.svc.DeleteService(c.Request().Context(), id); err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Service deleted successfully"})
}
