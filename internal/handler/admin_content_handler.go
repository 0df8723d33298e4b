package handler

import (
	"net/http"
	"strconv"

	"marketplace/internal/config"
	"marketplace/internal/middleware"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin/shipping-methods, /admin/payment-methods, /admin/pages
type AdminContentHandler struct {
	uc *usecase.ContentUsecase
}

// DI
func NewAdminContentHandler(uc *usecase.ContentUsecase) *AdminContentHandler {
	return &AdminContentHandler{uc: uc}
}

type SaveShippingMethodRequest struct {
	Name     string `json:"name"`
	FeeMinor int64  `json:"fee_minor"`
	EtaDays  int64  `json:"eta_days"`
	IsActive bool   `json:"is_active"`
}

type SavePaymentMethodRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type SavePageRequest struct {
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	Language string `json:"language"`
}

func (h *AdminContentHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())

	g.POST("/shipping-methods", h.createShippingMethod)
	g.PUT("/shipping-methods/:id", h.updateShippingMethod)
	g.DELETE("/shipping-methods/:id", h.deleteShippingMethod)

	g.POST("/payment-methods", h.createPaymentMethod)
	g.PATCH("/payment-methods/:id/active", h.setPaymentMethodActive)

	g.PUT("/pages", h.upsertPage)
	g.DELETE("/pages/:slug", h.deletePage)
}

func (h *AdminContentHandler) createShippingMethod(c echo.Context) error {
	var req SaveShippingMethodRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CreateShippingMethod(c.Request().Context(), usecase.SaveShippingMethodInput{
		Name:     req.Name,
		FeeMinor: req.FeeMinor,
		EtaDays:  req.EtaDays,
		IsActive: req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *AdminContentHandler) updateShippingMethod(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req SaveShippingMethodRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.UpdateShippingMethod(c.Request().Context(), id, usecase.SaveShippingMethodInput{
		Name:     req.Name,
		FeeMinor: req.FeeMinor,
		EtaDays:  req.EtaDays,
		IsActive: req.IsActive,
	}); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *AdminContentHandler) deleteShippingMethod(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.DeleteShippingMethod(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *AdminContentHandler) createPaymentMethod(c echo.Context) error {
	var req SavePaymentMethodRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CreatePaymentMethod(c.Request().Context(), usecase.SavePaymentMethodInput{
		Code: req.Code,
		Name: req.Name,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *AdminContentHandler) setPaymentMethodActive(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req SetActiveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.SetPaymentMethodActive(c.Request().Context(), id, req.IsActive); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *AdminContentHandler) upsertPage(c echo.Context) error {
	var req SavePageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpsertPage(c.Request().Context(), usecase.SavePageInput{
		Slug:     req.Slug,
		Title:    req.Title,
		Body:     req.Body,
		Language: req.Language,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AdminContentHandler) deletePage(c echo.Context) error {
	if err := h.uc.DeletePage(c.Request().Context(), c.Param("slug"), c.QueryParam("lang")); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
