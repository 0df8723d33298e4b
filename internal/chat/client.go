package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client は生成APIへの薄いプロキシ。リトライ・バックオフはしない。
type Client struct {
	endpoint string
	apiKey   string
	hc       *http.Client
}

func NewClient(endpoint string, apiKey string) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		hc:       &http.Client{Timeout: 30 * time.Second},
	}
}

type upstreamRequest struct {
	Messages []Message `json:"messages"`
	Language string    `json:"language"`
	Page     string    `json:"page"`
}

type upstreamResponse struct {
	Reply string `json:"reply"`
}

// Reply は会話をそのまま転送して応答テキストを返す。
func (c *Client) Reply(ctx context.Context, messages []Message, language string, page string) (string, error) {
	body, err := json.Marshal(upstreamRequest{
		Messages: messages,
		Language: language,
		Page:     page,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat upstream returned %d", res.StatusCode)
	}

	var out upstreamResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", err
	}

	return out.Reply, nil
}
