package relay

import (
	"context"
	"errors"
	"io"
	"net/textproto"
	"testing"

	"github.com/shandysiswandi/gomailer/internal/mailer/entity"
	"github.com/shandysiswandi/gomailer/internal/pkg/instrument"
	"github.com/shandysiswandi/gomailer/internal/pkg/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMail struct {
	err  error
	sent []mail.Message
}

func (f *fakeMail) Send(_ context.Context, msg mail.Message) error {
	f.sent = append(f.sent, msg)
	return f.err
}

func (f *fakeMail) Close() error { return nil }

type seqID struct{ n int }

func (s *seqID) Generate() string {
	s.n++
	return "id-" + string(rune('0'+s.n))
}

func newRelay(client mail.Mail) *Relay {
	return New(client, entity.MailCredentials{SenderAddress: "sender@example.com", AppPassword: "pw"}, &seqID{}, instrument.NewNoop())
}

func TestRelay_Send_Success(t *testing.T) {
	client := &fakeMail{}
	r := newRelay(client)

	first := r.Send(context.Background(), entity.Email{ReceiverEmail: "to@example.com", Subject: "Hi", BodyText: "Body"})
	second := r.Send(context.Background(), entity.Email{ReceiverEmail: "to@example.com", Subject: "Hi", BodyText: "Body"})

	assert.True(t, first.Success)
	assert.Equal(t, "Email sent successfully", first.Message)
	assert.Equal(t, "id-1", first.EmailID)
	assert.NotEqual(t, first.EmailID, second.EmailID)

	require.Len(t, client.sent, 2)
	assert.Equal(t, mail.Message{
		ID:       "id-1",
		From:     "sender@example.com",
		To:       []string{"to@example.com"},
		Subject:  "Hi",
		TextBody: "Body",
	}, client.sent[0])
}

func TestRelay_Send_Failures(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCat    entity.FailureCategory
		wantPrefix string
	}{
		{
			name:       "auth",
			err:        &mail.Error{Kind: mail.KindAuth, Stage: mail.StageAuth, Err: &textproto.Error{Code: 535, Msg: "bad credentials"}},
			wantCat:    entity.FailureAuth,
			wantPrefix: "SMTP Authentication failed. Check your credentials: ",
		},
		{
			name:       "recipient",
			err:        &mail.Error{Kind: mail.KindRecipient, Stage: mail.StageRcpt, Err: &textproto.Error{Code: 550, Msg: "no such user"}},
			wantCat:    entity.FailureRecipient,
			wantPrefix: "Invalid recipient email address: ",
		},
		{
			name:       "disconnected",
			err:        &mail.Error{Kind: mail.KindDisconnected, Stage: mail.StageMail, Err: io.EOF},
			wantCat:    entity.FailureConnection,
			wantPrefix: "SMTP server connection lost: ",
		},
		{
			name:       "protocol",
			err:        &mail.Error{Kind: mail.KindProtocol, Stage: mail.StageData, Err: &textproto.Error{Code: 554, Msg: "rejected"}},
			wantCat:    entity.FailureTransport,
			wantPrefix: "SMTP error occurred: ",
		},
		{
			name:       "dial",
			err:        &mail.Error{Kind: mail.KindUnknown, Stage: mail.StageDial, Err: errors.New("connection refused")},
			wantCat:    entity.FailureUnexpected,
			wantPrefix: "Unexpected error: ",
		},
		{
			name:       "not a transport error",
			err:        context.Canceled,
			wantCat:    entity.FailureUnexpected,
			wantPrefix: "Unexpected error: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := newRelay(&fakeMail{err: tt.err}).Send(context.Background(), entity.Email{ReceiverEmail: "to@example.com"})

			assert.False(t, res.Success)
			assert.Empty(t, res.EmailID)
			assert.Equal(t, tt.wantCat, res.Category)
			assert.Equal(t, tt.wantPrefix+tt.err.Error(), res.Message)
		})
	}
}
