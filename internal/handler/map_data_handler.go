package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"govsite/internal/model"
	"govsite/internal/service"
)

// MapDataHandler serves /api/map-data.
type MapDataHandler struct {
	svc service.MapDataService
	log *zap.Logger
}

// NewMapDataHandler creates a map data handler.
func NewMapDataHandler(svc service.MapDataService, log *zap.Logger) *MapDataHandler {
	return &MapDataHandler{svc: svc, log: log}
}

// List godoc
// @Summary List active map layers
// @Tags map-data
// @Produce json
// @Param layerType query string false "Layer type"
// @Success 200 {array} model.MapData
// @Router /map-data [get]
func (h *MapDataHandler) List(c echo.Context) error {
	items, err := h.svc.ListMapData(c.Request().Context(), c.QueryParam("layerType"))
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, items)
}

// Create godoc
// @Summary Create map layer
// @Tags map-data
// @Accept json
// @Produce json
// @Param layer body model.MapDataInput true "Layer payload"
// @Success 201 {object} CreatedResponse
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /map-data [post]
func (h *MapDataHandler) Create(c echo.Context) error {
	var in model.MapDataInput
	if err := bind(c, &in); err != nil {
		return err
	}
	created, err := h.svc.CreateMapData(c.Request().Context(), in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, CreatedResponse{Message: "Map data created successfully", ID: created.ID})
}

// Update godoc
// @Summary Update map layer
// @Tags map-data
// @Accept json
// @Produce json
// @Param id path int true "Layer ID"
// @Param layer body model.MapDataPatch true "Fields to change"
// @Success 200 {object} model.MapData
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /map-data/{id} [put]
func (h *MapDataHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, h.log, err)
	}
	var patch model.MapDataPatch
	if err := bind(c, &patch); err != nil {
		return err
	}
	layer, err := h.svc.UpdateMapData(c.Request().Context(), id, patch)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, layer)
}

// Delete godoc
// @Summary Delete map layer
// @Tags map-data
// @Produce json
// @Param id path int true "Layer ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /map-data/{id} [delete]
func (h *MapDataHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, h.log, err)
	}
	if err := h.svc.DeleteMapData(c.Request().Context(), id); err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Map data deleted successfully"})
}
