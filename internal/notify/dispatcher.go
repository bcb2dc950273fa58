// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package notify sends the operator notification and the submitter
// confirmation of a form submission and reduces both results into a single
// Outcome.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wneessen/tour-mailer/internal/forms"
	"github.com/wneessen/tour-mailer/internal/logger"
	"github.com/wneessen/tour-mailer/internal/metrics"
	"github.com/wneessen/tour-mailer/internal/templates"
)

// TimestampLayout is the long-form layout of the submission timestamp
const TimestampLayout = "Monday, January 2, 2006 at 3:04 PM MST"

const (
	recipientAdmin = "admin"
	recipientUser  = "user"
)

const (
	MessageSuccess = "Thank you! Your request has been submitted successfully. " +
		"A confirmation email is on its way to your inbox."
	MessageNotConfigured = "Thank you! Your request has been received. We could not send you a " +
		"confirmation email right now, but our team will get back to you shortly."
	messageFailed = "Your request was submitted, but we couldn't send the email notifications. " +
		"If you don't hear from us within 24 hours, please call us at %s."
)

var ErrSendPanicked = errors.New("email sender panicked")

// Request is a single dispatch request of a validated submission.
type Request struct {
	FormType   string
	Submission forms.Submission
	UserEmail  string
	UserName   string
}

// Outcome is the combined result of both sends. It is created once per
// submission attempt and never carries a raw error value.
type Outcome struct {
	Success        bool   `json:"success"`
	EmailSent      bool   `json:"emailSent"`
	Message        string `json:"message"`
	AdminMessageID string `json:"adminMessageId,omitempty"`
	UserMessageID  string `json:"userMessageId,omitempty"`
	Error          string `json:"error,omitempty"`
	ReferenceID    string `json:"referenceId"`
}

// Settings is the process-wide, read-only dispatch configuration.
type Settings struct {
	From     string
	Operator string
	Location *time.Location
}

type Dispatcher struct {
	sender   Sender
	renderer *templates.Renderer
	settings Settings
	log      *logger.Logger
	now      func() time.Time
}

func NewDispatcher(sender Sender, renderer *templates.Renderer, settings Settings, log *logger.Logger) *Dispatcher {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	return &Dispatcher{
		sender:   sender,
		renderer: renderer,
		settings: settings,
		log:      log.With(slog.String("component", "dispatcher")),
		now:      time.Now,
	}
}

// FallbackPhone is the phone number users are asked to call when the
// notifications could not be delivered.
func (d *Dispatcher) FallbackPhone() string {
	return d.renderer.Brand().Phone
}

// SendFormEmail renders both emails and sends them one after the other: the
// notification to the operator address first, then the confirmation to the
// submitter. The confirmation is attempted even if the notification failed.
// Every failure is reported through the returned Outcome.
func (d *Dispatcher) SendFormEmail(ctx context.Context, req Request) Outcome {
	outcome := Outcome{ReferenceID: uuid.NewString()}
	formType := req.FormType
	if formType == "" && req.Submission != nil {
		formType = req.Submission.Kind().Label()
	}
	kind := "unknown"
	if req.Submission != nil {
		kind = string(req.Submission.Kind())
	}
	log := d.log.With(slog.String("reference_id", outcome.ReferenceID), slog.String("form_type", formType))

	if d.sender == nil || !d.sender.Configured() {
		log.Warn("email delivery is not configured, skipping notifications")
		metrics.SubmissionsTotal.WithLabelValues(kind, metrics.ResultUnconfigured).Inc()
		outcome.Message = MessageNotConfigured
		return outcome
	}
	if req.Submission == nil {
		return d.failed(log, outcome, kind, errors.New("no submission provided"))
	}

	userName := strings.TrimSpace(req.UserName)
	if userName == "" {
		userName = req.Submission.Contact().Name
	}
	submittedAt := d.now().In(d.settings.Location).Format(TimestampLayout)
	adminBody, err := d.renderer.RenderAdmin(formType, req.Submission, submittedAt)
	if err != nil {
		return d.failed(log, outcome, kind, fmt.Errorf("failed to render admin notification: %w", err))
	}
	userBody, err := d.renderer.RenderUser(formType, req.Submission, userName, submittedAt)
	if err != nil {
		return d.failed(log, outcome, kind, fmt.Errorf("failed to render confirmation: %w", err))
	}

	// The sends must complete even when the submitting client went away.
	sendCtx := context.WithoutCancel(ctx)
	start := time.Now()
	var errList []error

	adminID, err := d.send(sendCtx, recipientAdmin, Email{
		From:     d.settings.From,
		To:       d.settings.Operator,
		ReplyTo:  req.UserEmail,
		Subject:  templates.AdminSubject(formType, userName),
		HTMLBody: adminBody,
	})
	if err != nil {
		errList = append(errList, fmt.Errorf("failed to send admin notification: %w", err))
	}
	outcome.AdminMessageID = adminID

	userID, err := d.send(sendCtx, recipientUser, Email{
		From:     d.settings.From,
		To:       req.UserEmail,
		ReplyTo:  d.settings.Operator,
		Subject:  templates.UserSubject(formType, d.renderer.Brand().Name),
		HTMLBody: userBody,
	})
	if err != nil {
		errList = append(errList, fmt.Errorf("failed to send confirmation: %w", err))
	}
	outcome.UserMessageID = userID
	metrics.DispatchDuration.Observe(time.Since(start).Seconds())

	if len(errList) > 0 {
		return d.failed(log, outcome, kind, errors.Join(errList...))
	}

	log.Info("form notifications sent", slog.String("admin_message_id", adminID),
		slog.String("user_message_id", userID), logger.Email(req.UserEmail))
	metrics.SubmissionsTotal.WithLabelValues(kind, metrics.ResultDelivered).Inc()
	outcome.Success = true
	outcome.EmailSent = true
	outcome.Message = MessageSuccess
	return outcome
}

// send calls the Sender and converts a panic into an error.
func (d *Dispatcher) send(ctx context.Context, recipient string, email Email) (id string, err error) {
	defer func() {
		if r := recover(); r != nil {
			id, err = "", fmt.Errorf("%w: %v", ErrSendPanicked, r)
		}
		result := "ok"
		if err != nil {
			result = "error"
		}
		metrics.EmailSendsTotal.WithLabelValues(recipient, result).Inc()
	}()
	return d.sender.Send(ctx, email)
}

func (d *Dispatcher) failed(log *logger.Logger, outcome Outcome, kind string, err error) Outcome {
	log.Error("failed to deliver form notifications", logger.Err(err))
	metrics.SubmissionsTotal.WithLabelValues(kind, metrics.ResultFailed).Inc()
	outcome.Success = false
	outcome.EmailSent = false
	outcome.Error = err.Error()
	outcome.Message = fmt.Sprintf(messageFailed, d.FallbackPhone())
	return outcome
}
