// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/wneessen/go-mail"

	"github.com/wneessen/tour-mailer/internal/httpclient"
	"github.com/wneessen/tour-mailer/internal/logger"
)

var (
	// version is the version of the application (will be set at build time)
	version = "dev"

	// userAgent is the User-Agent that is set on outgoing SMTP messages
	userAgent = fmt.Sprintf("tour-mailer/%s // https://github.com/wneessen/tour-mailer", version)

	ErrProviderRejected = errors.New("email provider rejected the message")
	ErrMissingMessageID = errors.New("email provider did not return a message id")
)

// Email is one rendered HTML email addressed to a single recipient.
type Email struct {
	From     string
	To       string
	ReplyTo  string
	Subject  string
	HTMLBody string
}

// Sender delivers a single email and returns the provider's message id.
type Sender interface {
	Send(ctx context.Context, email Email) (string, error)
	// Configured reports whether the credentials needed for delivery are set.
	Configured() bool
}

// APISender delivers emails through a transactional-email HTTP API that
// authenticates with a bearer API key.
type APISender struct {
	client   *httpclient.Client
	endpoint string
	apiKey   string
}

func NewAPISender(client *httpclient.Client, endpoint, apiKey string) *APISender {
	return &APISender{client: client, endpoint: endpoint, apiKey: apiKey}
}

func (a *APISender) Configured() bool {
	return a.apiKey != ""
}

func (a *APISender) Send(ctx context.Context, email Email) (string, error) {
	type payload struct {
		From    string   `json:"from"`
		To      []string `json:"to"`
		Subject string   `json:"subject"`
		HTML    string   `json:"html"`
		ReplyTo string   `json:"reply_to,omitempty"`
	}
	type response struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Message string `json:"message"`
	}

	res := new(response)
	header := map[string]string{"Authorization": "Bearer " + a.apiKey}
	body := payload{
		From:    email.From,
		To:      []string{email.To},
		Subject: email.Subject,
		HTML:    email.HTMLBody,
		ReplyTo: email.ReplyTo,
	}
	code, err := a.client.PostJSON(ctx, a.endpoint, res, body, header)
	if err != nil {
		return "", fmt.Errorf("failed to send email via API: %w", err)
	}
	if code < http.StatusOK || code >= http.StatusMultipleChoices {
		return "", fmt.Errorf("%w: status %d: %s", ErrProviderRejected, code, res.Message)
	}
	if res.ID == "" {
		return "", ErrMissingMessageID
	}
	return res.ID, nil
}

// SMTPSender delivers emails through an SMTP relay.
type SMTPSender struct {
	Host     string
	Port     int
	Username string
	Password string
	ForceTLS bool
}

func (s *SMTPSender) Configured() bool {
	return s.Host != ""
}

func (s *SMTPSender) Send(ctx context.Context, email Email) (string, error) {
	opts := []mail.Option{mail.WithPort(s.Port), mail.WithTLSPolicy(mail.DefaultTLSPolicy)}
	if s.Username != "" {
		opts = append(opts, mail.WithSMTPAuth(mail.SMTPAuthAutoDiscover), mail.WithUsername(s.Username),
			mail.WithPassword(s.Password))
	}
	client, err := mail.NewClient(s.Host, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create mail client: %w", err)
	}
	if !s.ForceTLS {
		client.SetTLSPolicy(mail.TLSOpportunistic)
	}

	message := mail.NewMsg()
	if err = message.From(email.From); err != nil {
		return "", fmt.Errorf("failed to set sender address: %w", err)
	}
	if err = message.To(email.To); err != nil {
		return "", fmt.Errorf("failed to set recipient address: %w", err)
	}
	if email.ReplyTo != "" {
		if err = message.ReplyTo(email.ReplyTo); err != nil {
			return "", fmt.Errorf("failed to set reply-to address: %w", err)
		}
	}
	message.Subject(email.Subject)
	message.SetMessageID()
	message.SetUserAgent(userAgent)
	message.SetBodyString(mail.TypeTextHTML, email.HTMLBody)

	if err = client.DialAndSendWithContext(ctx, message); err != nil {
		return "", fmt.Errorf("failed to deliver mail: %w", err)
	}
	return message.GetMessageID(), nil
}

// DryRunSender only logs the emails it would have sent.
type DryRunSender struct {
	log *logger.Logger
}

func NewDryRunSender(log *logger.Logger) *DryRunSender {
	return &DryRunSender{log: log}
}

func (d *DryRunSender) Configured() bool {
	return true
}

func (d *DryRunSender) Send(_ context.Context, email Email) (string, error) {
	id := "dry-run-" + uuid.NewString()
	d.log.Info("dry-run mode enabled, skipping actual mail delivery", slog.String("message_id", id),
		logger.Email(email.To), slog.String("subject", email.Subject))
	return id, nil
}
