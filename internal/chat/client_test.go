package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClient_Reply_ForwardsConversation(t *testing.T) {
	var got upstreamRequest
	var gotAuthz string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuthz = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(upstreamResponse{Reply: "answer"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret-key")

	reply, err := c.Reply(context.Background(), []Message{
		{Role: "user", Content: "サイズは？"},
	}, "ja", "/products/3")

	assert.NoError(t, err)
	assert.Equal(t, "answer", reply)
	assert.Equal(t, "Bearer secret-key", gotAuthz)
	assert.Equal(t, "ja", got.Language)
	assert.Equal(t, "/products/3", got.Page)
	assert.Len(t, got.Messages, 1)
}

func TestClient_Reply_NoAPIKey_NoAuthHeader(t *testing.T) {
	var gotAuthz string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuthz = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(upstreamResponse{Reply: "ok"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")

	_, err := c.Reply(context.Background(), []Message{{Role: "user", Content: "hi"}}, "en", "/")

	assert.NoError(t, err)
	assert.Empty(t, gotAuthz)
}

func TestClient_Reply_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")

	_, err := c.Reply(context.Background(), []Message{{Role: "user", Content: "hi"}}, "en", "/")

	assert.Error(t, err)
}
