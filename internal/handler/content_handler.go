package handler

import (
	"net/http"

	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 配送方法・決済手段・ページ本文の公開API
type ContentHandler struct {
	uc *usecase.ContentUsecase
}

// DI
func NewContentHandler(uc *usecase.ContentUsecase) *ContentHandler {
	return &ContentHandler{uc: uc}
}

func (h *ContentHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/shipping-methods", h.shippingMethods)
	e.GET("/payment-methods", h.paymentMethods)
	e.GET("/pages/:slug", h.page)
}

func (h *ContentHandler) shippingMethods(c echo.Context) error {
	out, err := h.uc.ListShippingMethods(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ContentHandler) paymentMethods(c echo.Context) error {
	out, err := h.uc.ListPaymentMethods(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ContentHandler) page(c echo.Context) error {
	out, err := h.uc.GetPage(c.Request().Context(), c.Param("slug"), c.QueryParam("lang"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
