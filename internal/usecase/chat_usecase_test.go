package usecase

import (
	"context"
	"testing"

	"marketplace/internal/chat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type ChatClientMock struct{ mock.Mock }

func (m *ChatClientMock) Reply(ctx context.Context, messages []chat.Message, language string, page string) (string, error) {
	args := m.Called(ctx, messages, language, page)
	return args.String(0), args.Error(1)
}

func TestChatUsecase_Success(t *testing.T) {
	client := new(ChatClientMock)
	client.On("Reply", mock.Anything, mock.Anything, "ja", "/products/1").
		Return("こんにちは", nil)

	uc := NewChatUsecase(client)

	out, err := uc.Chat(context.Background(), ChatInput{
		Messages: []chat.Message{{Role: "user", Content: "hi"}},
		Language: "ja",
		Page:     "/products/1",
	})

	assert.NoError(t, err)
	assert.Equal(t, "こんにちは", out.Reply)
}

func TestChatUsecase_EmptyMessages_Rejected(t *testing.T) {
	client := new(ChatClientMock)
	uc := NewChatUsecase(client)

	_, err := uc.Chat(context.Background(), ChatInput{})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
	client.AssertNotCalled(t, "Reply", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestChatUsecase_BlankMessage_Rejected(t *testing.T) {
	uc := NewChatUsecase(new(ChatClientMock))

	_, err := uc.Chat(context.Background(), ChatInput{
		Messages: []chat.Message{{Role: "user", Content: "   "}},
	})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
}

func TestChatUsecase_UpstreamFailure_BadGateway(t *testing.T) {
	client := new(ChatClientMock)
	client.On("Reply", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", assert.AnError)

	uc := NewChatUsecase(client)

	_, err := uc.Chat(context.Background(), ChatInput{
		Messages: []chat.Message{{Role: "user", Content: "hi"}},
	})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 502, he.Status)
	assert.Equal(t, "chat unavailable", he.Message)
}
