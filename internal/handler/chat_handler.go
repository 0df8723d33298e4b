package handler

import (
	"net/http"

	"marketplace/internal/chat"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /chat（生成APIへのプロキシ）
type ChatHandler struct {
	uc *usecase.ChatUsecase
}

// DI
func NewChatHandler(uc *usecase.ChatUsecase) *ChatHandler {
	return &ChatHandler{uc: uc}
}

type ChatRequest struct {
	Messages []chat.Message `json:"messages"`
	Language string         `json:"language"`
	Page     string         `json:"page"`
}

func (h *ChatHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/chat", h.chat)
}

func (h *ChatHandler) chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Chat(c.Request().Context(), usecase.ChatInput{
		Messages: req.Messages,
		Language: req.Language,
		Page:     req.Page,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
