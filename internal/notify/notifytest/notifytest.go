// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package notifytest provides a recording notify.Sender and a ready to use
// Dispatcher for tests.
package notifytest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/wneessen/tour-mailer/internal/logger"
	"github.com/wneessen/tour-mailer/internal/notify"
	"github.com/wneessen/tour-mailer/internal/templates"
)

const (
	Operator      = "bookings@example.com"
	From          = "Test Safaris <no-reply@example.com>"
	FallbackPhone = "+250788000000"
)

// Sender records every email it is asked to send.
type Sender struct {
	// Unconfigured makes Configured report false.
	Unconfigured bool
	// Fn, if set, decides the result of the n-th call (starting at 1).
	Fn func(call int, email notify.Email) (string, error)

	mu     sync.Mutex
	emails []notify.Email
}

func (s *Sender) Configured() bool {
	return !s.Unconfigured
}

func (s *Sender) Send(_ context.Context, email notify.Email) (string, error) {
	s.mu.Lock()
	s.emails = append(s.emails, email)
	call := len(s.emails)
	s.mu.Unlock()

	if s.Fn != nil {
		return s.Fn(call, email)
	}
	return fmt.Sprintf("msg-%d", call), nil
}

// Calls returns the number of Send calls.
func (s *Sender) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.emails)
}

// Emails returns a copy of all emails that were sent.
func (s *Sender) Emails() []notify.Email {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]notify.Email{}, s.emails...)
}

// FailOn returns a Sender.Fn that fails the given call with err.
func FailOn(call int, err error) func(int, notify.Email) (string, error) {
	return func(n int, _ notify.Email) (string, error) {
		if n == call {
			return "", err
		}
		return fmt.Sprintf("msg-%d", n), nil
	}
}

// Brand is the agency branding used by test dispatchers.
func Brand() templates.Brand {
	return templates.Brand{
		Name:    "Test Safaris",
		Phone:   FallbackPhone,
		Email:   "info@example.com",
		Website: "https://example.com",
	}
}

// NewDispatcher returns a Dispatcher that delivers through sender.
func NewDispatcher(t *testing.T, sender notify.Sender) *notify.Dispatcher {
	t.Helper()
	renderer, err := templates.New(Brand())
	if err != nil {
		t.Fatalf("failed to create template renderer: %s", err)
	}
	log := logger.NewLogger(slog.LevelError, io.Discard, logger.Opts{Format: "text"})
	return notify.NewDispatcher(sender, renderer, notify.Settings{
		From:     From,
		Operator: Operator,
		Location: time.UTC,
	}, log)
}
