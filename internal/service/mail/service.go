// Package mail dispatches transactional email through SendGrid.
package mail

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	log "github.com/sirupsen/logrus"

	mailmodel "github.com/youthmindhub/backend/internal/model/mail"
)

const attachmentDisposition = "attachment"

// Sender is the provider port: one attempt, no retries.
type Sender interface {
	Send(ctx context.Context, message *sgmail.SGMailV3) (*rest.Response, error)
}

// DispatchError carries the provider's failure message across the handler
// boundary.
type DispatchError struct {
	Message string
}

func (e *DispatchError) Error() string {
	return e.Message
}

// SendGridSender dispatches through the SendGrid v3 API.
type SendGridSender struct {
	client *sendgrid.Client
}

// NewSendGridSender builds the provider client from an API key.
func NewSendGridSender(apiKey string) *SendGridSender {
	return &SendGridSender{client: sendgrid.NewSendClient(apiKey)}
}

// Send performs the provider call.
func (s *SendGridSender) Send(ctx context.Context, message *sgmail.SGMailV3) (*rest.Response, error) {
	return s.client.SendWithContext(ctx, message)
}

// SenderIdentity is the fixed from-line on every outgoing message.
type SenderIdentity struct {
	Email string
	Name  string
}

// Service builds provider messages from normalized requests and dispatches
// them with an audit trail.
type Service struct {
	sender Sender
	from   SenderIdentity
}

// NewService wires the sender port and the configured sender identity.
func NewService(sender Sender, from SenderIdentity) *Service {
	return &Service{sender: sender, from: from}
}

// Send dispatches one message. Any provider failure surfaces as a
// DispatchError; success emits the audit log entry.
func (s *Service) Send(ctx context.Context, req mailmodel.EmailRequest, actingSubject string) error {
	message := s.buildMessage(req)

	resp, err := s.sender.Send(ctx, message)
	if err != nil {
		return &DispatchError{Message: err.Error()}
	}
	if resp != nil && resp.StatusCode >= 400 {
		msg := strings.TrimSpace(resp.Body)
		if msg == "" {
			msg = fmt.Sprintf("mail provider returned status %d", resp.StatusCode)
		}
		return &DispatchError{Message: msg}
	}

	log.WithFields(log.Fields{
		"recipients": []string(req.To),
		"subject":    req.Subject,
		"by":         actingSubject,
		"dispatchID": uuid.NewString(),
	}).Info("[mail] email sent")
	return nil
}

func (s *Service) buildMessage(req mailmodel.EmailRequest) *sgmail.SGMailV3 {
	message := sgmail.NewV3Mail()
	message.SetFrom(sgmail.NewEmail(s.from.Name, s.from.Email))
	message.Subject = req.Subject

	personalization := sgmail.NewPersonalization()
	for _, to := range req.To {
		personalization.AddTos(sgmail.NewEmail("", to))
	}
	message.AddPersonalizations(personalization)

	if req.Text != "" {
		message.AddContent(sgmail.NewContent("text/plain", req.Text))
	}
	if req.HTML != "" {
		message.AddContent(sgmail.NewContent("text/html", req.HTML))
	}

	for _, a := range req.Attachments {
		attachment := sgmail.NewAttachment()
		attachment.SetFilename(a.Filename)
		attachment.SetType(a.Type)
		attachment.SetContent(a.Content)
		attachment.SetDisposition(attachmentDisposition)
		message.AddAttachment(attachment)
	}

	return message
}
