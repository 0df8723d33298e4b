package handler

import (
	"net/http"

	"marketplace/internal/config"
	"marketplace/internal/middleware"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ProfileHandler struct {
	uc *usecase.ProfileUsecase
}

// DI
func NewProfileHandler(uc *usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

type UpdateProfileRequest struct {
	DisplayName       string `json:"display_name"`
	AvatarURL         string `json:"avatar_url"`
	WalletAddress     string `json:"wallet_address"`
	PreferredCurrency string `json:"preferred_currency"`
}

func (h *ProfileHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/profile")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("", h.getProfile)
	g.PUT("", h.updateProfile)
}

func (h *ProfileHandler) getProfile(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.GetMyProfile(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ProfileHandler) updateProfile(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateMyProfile(c.Request().Context(), userID, usecase.UpdateProfileInput{
		DisplayName:       req.DisplayName,
		AvatarURL:         req.AvatarURL,
		WalletAddress:     req.WalletAddress,
		PreferredCurrency: req.PreferredCurrency,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
