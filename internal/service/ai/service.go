// Package ai proxies chat prompts to the configured generation model,
// optionally grounded in a ranked content selection.
package ai

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	log "github.com/sirupsen/logrus"

	"github.com/youthmindhub/backend/internal/config"
	"github.com/youthmindhub/backend/internal/model/content"
)

// NoResponse is returned when the model yields no extractable text. The
// provider producing an empty message is a defined outcome, not an error.
const NoResponse = "No response"

// Generator is what the chat handler depends on; it lets tests substitute a
// fake for the model-backed service.
type Generator interface {
	Generate(ctx context.Context, prompt string, selection content.Selection) (string, error)
}

// Service runs prompts through a compiled eino chain.
type Service struct {
	chatModel model.ChatModel
	chain     compose.Runnable[map[string]any, *schema.Message]
}

// NewService creates the chat model from configuration and compiles the
// prompt chain once.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{chatModel: chatModel, chain: runnable}, nil
}

// Generate runs one prompt through the chain. A non-empty selection is
// serialized into the system prompt so the model answers from the app's own
// resources and services.
func (s *Service) Generate(ctx context.Context, userPrompt string, selection content.Selection) (string, error) {
	input := map[string]any{
		"system": buildSystemPrompt(selection),
		"query":  userPrompt,
	}

	response, err := s.chain.Invoke(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to run chat chain: %w", err)
	}

	if response == nil || response.Content == "" {
		log.Printf("[ai] model returned no extractable text, using sentinel")
		return NoResponse, nil
	}

	log.Printf("[ai] generated response, grounded=%t, length=%d", !selection.Empty(), len(response.Content))
	return response.Content, nil
}
