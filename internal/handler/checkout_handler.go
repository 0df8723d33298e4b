package handler

import (
	"net/http"

	"marketplace/internal/config"
	"marketplace/internal/middleware"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /checkout と決済履歴
type CheckoutHandler struct {
	uc       *usecase.CheckoutUsecase
	payments *usecase.PaymentsUsecase
}

// DI
func NewCheckoutHandler(uc *usecase.CheckoutUsecase, payments *usecase.PaymentsUsecase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc, payments: payments}
}

type CheckoutRequest struct {
	IdempotencyKey string `json:"idempotency_key"`
	Method         string `json:"method"`
	BankName       string `json:"bank_name"`
	AccountNumber  string `json:"account_number"`
	Currency       string `json:"currency"`
}

func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("/checkout", h.checkout)
	g.GET("/payments", h.listPayments)
}

func (h *CheckoutHandler) checkout(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Checkout(c.Request().Context(), userID, usecase.CheckoutInput{
		IdempotencyKey: req.IdempotencyKey,
		Method:         req.Method,
		BankName:       req.BankName,
		AccountNumber:  req.AccountNumber,
		Currency:       req.Currency,
	})
	if err != nil {
		return writeError(c, err)
	}

	//確認待ちは202で返す
	if out.Status == "pending" {
		return c.JSON(http.StatusAccepted, out)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CheckoutHandler) listPayments(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.payments.ListMyPayments(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
