// Package chat exposes the AI chat endpoint.
package chat

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/youthmindhub/backend/internal/model/content"
	"github.com/youthmindhub/backend/internal/service/ai"
	"github.com/youthmindhub/backend/pkg/utils"
)

// Retriever supplies the ranked grounding selection for a prompt.
type Retriever interface {
	Context(ctx context.Context, prompt string) content.Selection
}

// Handler proxies prompts to the generation service, grounding them in
// retrieved content first. The endpoint is unauthenticated: anonymous
// visitors may use the support chat.
type Handler struct {
	generator ai.Generator
	retriever Retriever
}

// New creates the chat handler. A nil generator means the model is not
// configured and every chat request fails with a configuration error; a nil
// retriever only disables grounding.
func New(generator ai.Generator, retriever Retriever) *Handler {
	return &Handler{generator: generator, retriever: retriever}
}

// RegisterRoutes mounts the chat route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.generator == nil {
		utils.RespondError(w, http.StatusInternalServerError, "chat model not configured")
		return
	}

	var payload struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Prompt == "" {
		utils.RespondError(w, http.StatusBadRequest, "Missing prompt")
		return
	}

	var selection content.Selection
	if h.retriever != nil {
		selection = h.retriever.Context(ctx, payload.Prompt)
	}

	text, err := h.generator.Generate(ctx, payload.Prompt, selection)
	if err != nil {
		log.Printf("[chat] generation failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"text": text})
}
