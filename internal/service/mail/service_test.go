package mail

import (
	"context"
	"errors"
	"testing"

	"github.com/sendgrid/rest"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mailmodel "github.com/youthmindhub/backend/internal/model/mail"
)

type fakeSender struct {
	message *sgmail.SGMailV3
	resp    *rest.Response
	err     error
	calls   int
}

func (f *fakeSender) Send(_ context.Context, message *sgmail.SGMailV3) (*rest.Response, error) {
	f.calls++
	f.message = message
	if f.err != nil {
		return nil, f.err
	}
	if f.resp != nil {
		return f.resp, nil
	}
	return &rest.Response{StatusCode: 202}, nil
}

func testRequest() mailmodel.EmailRequest {
	return mailmodel.EmailRequest{
		To:      mailmodel.Recipients{"a@x.com", "b@x.com"},
		Subject: "Hi",
		Text:    "Hello",
		HTML:    "<p>Hello</p>",
		Attachments: []mailmodel.Attachment{
			{Filename: "report.pdf", Type: mailmodel.DefaultAttachmentType, Content: "aGVsbG8="},
		},
	}
}

func TestSendBuildsProviderMessage(t *testing.T) {
	sender := &fakeSender{}
	svc := NewService(sender, SenderIdentity{Email: "no-reply@hub.test", Name: "Youth Mental Hub"})

	err := svc.Send(context.Background(), testRequest(), "admin-1")
	require.NoError(t, err)
	require.NotNil(t, sender.message)

	msg := sender.message
	assert.Equal(t, "no-reply@hub.test", msg.From.Address)
	assert.Equal(t, "Youth Mental Hub", msg.From.Name)
	assert.Equal(t, "Hi", msg.Subject)

	require.Len(t, msg.Personalizations, 1)
	tos := msg.Personalizations[0].To
	require.Len(t, tos, 2)
	assert.Equal(t, "a@x.com", tos[0].Address)
	assert.Equal(t, "b@x.com", tos[1].Address)

	require.Len(t, msg.Content, 2)
	assert.Equal(t, "text/plain", msg.Content[0].Type)
	assert.Equal(t, "text/html", msg.Content[1].Type)

	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "attachment", msg.Attachments[0].Disposition)
	assert.Equal(t, mailmodel.DefaultAttachmentType, msg.Attachments[0].Type)
}

func TestSendOmitsAbsentBodies(t *testing.T) {
	sender := &fakeSender{}
	svc := NewService(sender, SenderIdentity{Email: "no-reply@hub.test"})

	req := mailmodel.EmailRequest{To: mailmodel.Recipients{"a@x.com"}, Subject: "Hi", Text: "plain only"}
	require.NoError(t, svc.Send(context.Background(), req, "admin-1"))

	require.Len(t, sender.message.Content, 1)
	assert.Equal(t, "text/plain", sender.message.Content[0].Type)
}

func TestSendWrapsTransportFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("connection refused")}
	svc := NewService(sender, SenderIdentity{Email: "no-reply@hub.test"})

	err := svc.Send(context.Background(), testRequest(), "admin-1")

	var dispatchErr *DispatchError
	require.ErrorAs(t, err, &dispatchErr)
	assert.Equal(t, "connection refused", dispatchErr.Message)
	assert.Equal(t, 1, sender.calls)
}

func TestSendSurfacesProviderRejection(t *testing.T) {
	sender := &fakeSender{resp: &rest.Response{StatusCode: 401, Body: `{"errors":[{"message":"invalid api key"}]}`}}
	svc := NewService(sender, SenderIdentity{Email: "no-reply@hub.test"})

	err := svc.Send(context.Background(), testRequest(), "admin-1")

	var dispatchErr *DispatchError
	require.ErrorAs(t, err, &dispatchErr)
	assert.Contains(t, dispatchErr.Message, "invalid api key")
}

func TestSendSingleAttemptOnRejection(t *testing.T) {
	sender := &fakeSender{resp: &rest.Response{StatusCode: 429}}
	svc := NewService(sender, SenderIdentity{Email: "no-reply@hub.test"})

	err := svc.Send(context.Background(), testRequest(), "admin-1")
	require.Error(t, err)
	assert.Equal(t, 1, sender.calls)
}
