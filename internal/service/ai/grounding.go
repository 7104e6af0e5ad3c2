package ai

import (
	"fmt"
	"strings"

	"github.com/youthmindhub/backend/internal/model/content"
)

const basePrompt = "You are a supportive assistant for a youth mental health hub. " +
	"Answer briefly and kindly. You are not a substitute for professional help; " +
	"when a question needs a clinician, say so and point to the listed services."

// buildSystemPrompt renders the grounding selection into the system prompt.
// Serialization is deterministic: resources first, then services, each in
// ranked order, so a fixed selection always produces the same prompt.
func buildSystemPrompt(selection content.Selection) string {
	if selection.Empty() {
		return basePrompt
	}

	var b strings.Builder
	b.WriteString(basePrompt)
	b.WriteString("\n\nUse the following app content when it is relevant.")

	if len(selection.Resources) > 0 {
		b.WriteString("\n\nResources:")
		for _, r := range selection.Resources {
			b.WriteString("\n- ")
			b.WriteString(r.Title)
			if len(r.Topics) > 0 {
				fmt.Fprintf(&b, " (topics: %s)", strings.Join(r.Topics, ", "))
			}
			if r.Snippet != "" {
				b.WriteString(": ")
				b.WriteString(r.Snippet)
			}
		}
	}

	if len(selection.Services) > 0 {
		b.WriteString("\n\nSupport services:")
		for _, s := range selection.Services {
			b.WriteString("\n- ")
			b.WriteString(s.Name)
			if s.Address != "" {
				b.WriteString(", ")
				b.WriteString(s.Address)
			}
			if s.Phone != "" {
				fmt.Fprintf(&b, ", phone %s", s.Phone)
			}
			if len(s.Tags) > 0 {
				fmt.Fprintf(&b, " (%s)", strings.Join(s.Tags, ", "))
			}
		}
	}

	return b.String()
}
