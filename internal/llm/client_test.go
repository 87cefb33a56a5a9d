package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPClientGenerate_Success(t *testing.T) {
	var gotAuth, gotPrompt string
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("unexpected request body: %v", err)
			return
		}
		if len(req.Messages) == 1 {
			gotPrompt = req.Messages[0].Content
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "hello from model"}},
			},
		})
	})

	client := NewHTTPClient(srv.URL, "sk-test", "test-model", nil)
	text, err := client.Generate(context.Background(), "say hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "hello from model" {
		t.Fatalf("unexpected text %q", text)
	}
	if gotAuth != "Bearer sk-test" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotPrompt != "say hi" {
		t.Fatalf("unexpected prompt %q", gotPrompt)
	}
}

func TestHTTPClientGenerate_ErrorStatus(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	})

	client := NewHTTPClient(srv.URL, "sk-test", "test-model", nil)
	if _, err := client.Generate(context.Background(), "say hi"); !errors.Is(err, ErrHTTPStatus) {
		t.Fatalf("expected ErrHTTPStatus, got %v", err)
	}
}

func TestHTTPClientGenerate_MalformedBody(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json"))
	})

	client := NewHTTPClient(srv.URL, "sk-test", "test-model", nil)
	if _, err := client.Generate(context.Background(), "say hi"); !errors.Is(err, ErrBadResponse) {
		t.Fatalf("expected ErrBadResponse, got %v", err)
	}
}

func TestHTTPClientGenerate_APIError(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "quota exceeded"},
		})
	})

	client := NewHTTPClient(srv.URL, "sk-test", "test-model", nil)
	if _, err := client.Generate(context.Background(), "say hi"); !errors.Is(err, ErrBadResponse) {
		t.Fatalf("expected ErrBadResponse, got %v", err)
	}
}

func TestHTTPClientGenerate_EmptyChoices(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	})

	client := NewHTTPClient(srv.URL, "sk-test", "test-model", nil)
	if _, err := client.Generate(context.Background(), "say hi"); !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestHTTPClientGenerate_ContextCancelled(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewHTTPClient(srv.URL, "sk-test", "test-model", nil)
	if _, err := client.Generate(ctx, "say hi"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
