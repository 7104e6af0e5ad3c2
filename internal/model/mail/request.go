// Package mail defines the transactional email request shape accepted by the
// send-mail endpoint and its normalization rules.
package mail

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DefaultAttachmentType applies when an attachment carries no MIME type.
const DefaultAttachmentType = "application/octet-stream"

// ErrMissingFields reports a payload without recipients, subject or body.
// Its text is the wire-level error message.
var ErrMissingFields = errors.New("Missing to/subject/body")

// Attachment is a base64-encoded file attached to an outgoing message.
type Attachment struct {
	Filename string `json:"filename"`
	Type     string `json:"type,omitempty"`
	Content  string `json:"content"`
}

// Recipients accepts either a single address or a list of addresses on the
// wire and always holds a list in memory.
type Recipients []string

// UnmarshalJSON wraps a bare string into a one-element list.
func (r *Recipients) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*r = Recipients{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("to must be a string or a list of strings")
	}
	*r = Recipients(many)
	return nil
}

// EmailRequest is the normalized send-mail payload.
type EmailRequest struct {
	To          Recipients   `json:"to"`
	Subject     string       `json:"subject"`
	Text        string       `json:"text,omitempty"`
	HTML        string       `json:"html,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// ParseRequest decodes and normalizes a send-mail payload.
func ParseRequest(body io.Reader) (EmailRequest, error) {
	var req EmailRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return EmailRequest{}, fmt.Errorf("invalid request body: %w", err)
	}
	return req.Normalize()
}

// Normalize drops blank recipients, applies the default attachment type and
// enforces the required fields. Normalizing an already-normalized request
// yields the same result.
func (r EmailRequest) Normalize() (EmailRequest, error) {
	to := make(Recipients, 0, len(r.To))
	for _, addr := range r.To {
		if trimmed := strings.TrimSpace(addr); trimmed != "" {
			to = append(to, trimmed)
		}
	}
	r.To = to

	if len(r.To) == 0 || strings.TrimSpace(r.Subject) == "" || (r.Text == "" && r.HTML == "") {
		return EmailRequest{}, ErrMissingFields
	}

	if len(r.Attachments) > 0 {
		attachments := make([]Attachment, len(r.Attachments))
		for i, a := range r.Attachments {
			if a.Type == "" {
				a.Type = DefaultAttachmentType
			}
			attachments[i] = a
		}
		r.Attachments = attachments
	}

	return r, nil
}
