package usecase

import (
	"context"
	"net/http"
	"strings"

	"marketplace/internal/chat"
)

// 生成APIの約束（実体は internal/chat）
type ChatClient interface {
	Reply(ctx context.Context, messages []chat.Message, language string, page string) (string, error)
}

// ChatUsecase は会話を上流へそのまま中継する。状態は持たない。
type ChatUsecase struct {
	client ChatClient
}

// DI
func NewChatUsecase(client ChatClient) *ChatUsecase {
	return &ChatUsecase{client: client}
}

type ChatInput struct {
	Messages []chat.Message
	Language string
	Page     string
}

type ChatOutput struct {
	Reply string `json:"reply"`
}

func (u *ChatUsecase) Chat(ctx context.Context, in ChatInput) (ChatOutput, error) {
	if len(in.Messages) == 0 {
		return ChatOutput{}, NewHTTPError(http.StatusBadRequest, "messages required")
	}
	for _, m := range in.Messages {
		if strings.TrimSpace(m.Content) == "" {
			return ChatOutput{}, NewHTTPError(http.StatusBadRequest, "empty message")
		}
	}

	reply, err := u.client.Reply(ctx, in.Messages, in.Language, in.Page)
	if err != nil {
		//リトライはしない
		return ChatOutput{}, NewHTTPError(http.StatusBadGateway, "chat unavailable")
	}

	return ChatOutput{Reply: reply}, nil
}
