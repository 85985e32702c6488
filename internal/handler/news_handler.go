package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"govsite/internal/model"
	"govsite/internal/service"
)

// NewsHandler serves /api/news.
type NewsHandler struct {
	svc service.NewsService
	log *zap.Logger
}

// NewNewsHandler creates a news handler.
func NewNewsHandler(svc service.NewsService, log *zap.Logger) *NewsHandler {
	return &NewsHandler{svc: svc, log: log}
}

// List godoc
// @Summary List published news
// @Description Newest first. An unparsable limit is ignored.
// @Tags news
// @Produce json
// @Param lang query string false "Language" default(en)
// @Param limit query int false "Maximum number of items"
// @Success 200 {array} model.News
// @Failure 500 {object} errors.ErrorResponse
// @Router /news [get]
func (h *NewsHandler) List(c echo.Context) error {
	items, err := h.svc.ListNews(c.Request().Context(), c.QueryParam("lang"), queryLimit(c))
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, items)
}

// GetBySlug godoc
// @Summary Get news item by slug
// @Tags news
// @Produce json
// @Param slug path string true "Slug"
// @Success 200 {object} model.News
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /news/{slug} [get]
func (h *NewsHandler) GetBySlug(c echo.Context) error {
	item, err := h.svc.GetNewsBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, item)
}

// Create godoc
// @Summary Create news item
// @Description The slug is derived from the title when omitted.
// @Tags news
// @Accept json
// @Produce json
// @Param news body model.NewsInput true "News payload"
// @Success 201 {object} CreatedResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /news [post]
func (h *NewsHandler) Create(c echo.Context) error {
	var in model.NewsInput
	if err := bind(c, &in); err != nil {
		return err
	}
	created, err := h.svc.CreateNews(c.Request().Context(), in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, CreatedResponse{Message: "News created successfully", ID: created.ID})
}

// Update godoc
// @Summary Update news item
// @Description Partial update; omitted fields are unchanged.
// @Tags news
// @Accept json
// @Produce json
// @Param id path int true "News ID"
// @Param news body model.NewsPatch true "Fields to change"
// @Success 200 {object} model.News
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /news/{id} [put]
func (h *NewsHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, h.log, err)
	}
	var patch model.NewsPatch
	if err := bind(c, &patch); err != nil {
		return err
	}
	item, err := h.svc.UpdateNews(c.Request().Context(), id, patch)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, item)
}

// Delete godoc
// @Summary Delete news item
// @Tags news
// @Produce json
// @Param id path int true "News ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /news/{id} [delete]
func (h *NewsHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, h.log, err)
	}
	if err := h.svc.DeleteNews(c.Request().Context(), id); err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "News deleted successfully"})
}
