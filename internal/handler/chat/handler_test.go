package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/youthmindhub/backend/internal/model/content"
)

type fakeGenerator struct {
	text      string
	err       error
	prompt    string
	selection content.Selection
	calls     int
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string, selection content.Selection) (string, error) {
	f.calls++
	f.prompt = prompt
	f.selection = selection
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type fakeRetriever struct {
	selection content.Selection
	query     string
}

func (f *fakeRetriever) Context(_ context.Context, prompt string) content.Selection {
	f.query = prompt
	return f.selection
}

func setupRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func postChat(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestChatHappyPath(t *testing.T) {
	generator := &fakeGenerator{text: "Take a slow breath."}
	retriever := &fakeRetriever{selection: content.Selection{
		Resources: []content.ResourceDigest{{ID: "r1", Title: "Grounding exercises"}},
	}}
	r := setupRouter(New(generator, retriever))

	resp := postChat(r, `{"prompt":"I feel anxious"}`)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var payload map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if payload["text"] != "Take a slow breath." {
		t.Fatalf("unexpected text %q", payload["text"])
	}
	if retriever.query != "I feel anxious" {
		t.Fatalf("retriever got query %q", retriever.query)
	}
	if generator.prompt != "I feel anxious" {
		t.Fatalf("generator got prompt %q", generator.prompt)
	}
	if len(generator.selection.Resources) != 1 {
		t.Fatalf("expected grounding selection to reach the generator")
	}
}

func TestChatMissingPrompt(t *testing.T) {
	generator := &fakeGenerator{}
	r := setupRouter(New(generator, &fakeRetriever{}))

	resp := postChat(r, `{}`)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	var payload map[string]string
	_ = json.Unmarshal(resp.Body.Bytes(), &payload)
	if payload["error"] != "Missing prompt" {
		t.Fatalf("expected Missing prompt, got %q", payload["error"])
	}
	if generator.calls != 0 {
		t.Fatalf("expected no generation call")
	}
}

func TestChatInvalidBody(t *testing.T) {
	r := setupRouter(New(&fakeGenerator{}, &fakeRetriever{}))

	resp := postChat(r, `{"prompt":`)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestChatModelNotConfigured(t *testing.T) {
	r := setupRouter(New(nil, &fakeRetriever{}))

	resp := postChat(r, `{"prompt":"hello"}`)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	var payload map[string]string
	_ = json.Unmarshal(resp.Body.Bytes(), &payload)
	if payload["error"] != "chat model not configured" {
		t.Fatalf("unexpected error %q", payload["error"])
	}
}

func TestChatGenerationFailure(t *testing.T) {
	generator := &fakeGenerator{err: errors.New("model quota exceeded")}
	r := setupRouter(New(generator, &fakeRetriever{}))

	resp := postChat(r, `{"prompt":"hello"}`)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}

func TestChatWithoutRetrieverStillAnswers(t *testing.T) {
	generator := &fakeGenerator{text: "Hi there."}
	r := setupRouter(New(generator, nil))

	resp := postChat(r, `{"prompt":"hello"}`)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !generator.selection.Empty() {
		t.Fatalf("expected empty selection without a retriever")
	}
}

func TestChatMethodNotAllowed(t *testing.T) {
	r := setupRouter(New(&fakeGenerator{}, &fakeRetriever{}))

	req := httptest.NewRequest(http.MethodGet, "/chat", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.Code)
	}
}
