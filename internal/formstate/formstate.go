// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package formstate implements the submission state machine that every form
// of the website shares: editing -> submitting -> success | error.
package formstate

import (
	"context"
	"errors"
	"maps"
	"sync"
	"time"

	"github.com/wneessen/tour-mailer/internal/forms"
	"github.com/wneessen/tour-mailer/internal/notify"
	"github.com/wneessen/tour-mailer/internal/validation"
)

// DefaultDisplayDelay is how long the success state is shown before the form
// returns to editing
const DefaultDisplayDelay = 3 * time.Second

var ErrBusy = errors.New("a submission is already in progress")

type State int

const (
	Editing State = iota
	Submitting
	Success
	Error
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Notifier dispatches a validated submission.
type Notifier interface {
	SendFormEmail(ctx context.Context, req notify.Request) notify.Outcome
}

// View is a snapshot of a Machine for rendering.
type View struct {
	Kind          forms.Kind
	State         State
	Values        map[string]string
	Errors        validation.Errors
	Message       string
	FallbackPhone string
}

type Option func(*Machine)

// WithDisplayDelay sets how long the success state is kept. A delay <= 0
// keeps it until the next edit.
func WithDisplayDelay(delay time.Duration) Option {
	return func(m *Machine) { m.delay = delay }
}

// WithOnClose registers a callback that runs when the success state ends,
// e.g. to close a modal.
func WithOnClose(fn func()) Option {
	return func(m *Machine) { m.onClose = fn }
}

func WithFallbackPhone(phone string) Option {
	return func(m *Machine) { m.fallbackPhone = phone }
}

// Machine owns one form's submission and validation result. A Machine is
// safe for concurrent use.
type Machine struct {
	mu            sync.Mutex
	notifier      Notifier
	submission    forms.Submission
	state         State
	errors        validation.Errors
	message       string
	fallbackPhone string
	delay         time.Duration
	onClose       func()
	timer         *time.Timer
	generation    uint64
}

// New returns a Machine in the editing state that owns submission.
func New(submission forms.Submission, notifier Notifier, opts ...Option) *Machine {
	m := &Machine{
		notifier:   notifier,
		submission: submission,
		state:      Editing,
		errors:     make(validation.Errors),
		delay:      DefaultDisplayDelay,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Edit applies fn to the owned submission. Editing ends a success or error
// state.
func (m *Machine) Edit(fn func(forms.Submission)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Submitting {
		return ErrBusy
	}
	m.stopTimer()
	fn(m.submission)
	m.state = Editing
	m.message = ""
	return nil
}

// Set assigns a raw form value to the field with the given key.
func (m *Machine) Set(key, value string) error {
	var err error
	if busy := m.Edit(func(sub forms.Submission) { err = forms.Set(sub, key, value) }); busy != nil {
		return busy
	}
	return err
}

// Submit validates the submission and, if it is valid, dispatches it. An
// invalid submission keeps the machine in the editing state with a fresh
// error map and the notifier is not called. After a successful dispatch the
// fields are cleared, after a failed one they are kept for another attempt.
func (m *Machine) Submit(ctx context.Context) (View, error) {
	m.mu.Lock()
	if m.state == Submitting {
		m.mu.Unlock()
		return View{}, ErrBusy
	}
	m.stopTimer()
	m.message = ""
	m.errors = validation.Validate(m.submission)
	if !m.errors.Valid() {
		m.state = Editing
		view := m.view()
		m.mu.Unlock()
		return view, nil
	}

	contact := m.submission.Contact()
	req := notify.Request{
		FormType:   m.submission.Kind().Label(),
		Submission: m.submission,
		UserEmail:  contact.Email,
		UserName:   contact.Name,
	}
	m.state = Submitting
	generation := m.generation
	m.mu.Unlock()

	outcome := m.notifier.SendFormEmail(ctx, req)

	m.mu.Lock()
	defer m.mu.Unlock()
	if generation != m.generation {
		// closed while submitting, the result is no longer shown
		return m.view(), nil
	}
	m.message = outcome.Message
	if !outcome.Success {
		m.state = Error
		return m.view(), nil
	}

	m.state = Success
	m.submission.Reset()
	view := m.view()
	if m.delay > 0 {
		m.timer = time.AfterFunc(m.delay, func() { m.finishSuccess(generation) })
	}
	return view, nil
}

// Close discards the submission and returns to an empty editing state. The
// result of a dispatch that is still running is ignored.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopTimer()
	m.generation++
	if m.state == Submitting {
		// the running dispatch still reads the old record
		if fresh, err := forms.New(m.submission.Kind()); err == nil {
			m.submission = fresh
		}
	} else {
		m.submission.Reset()
	}
	m.errors = make(validation.Errors)
	m.message = ""
	m.state = Editing
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Machine) View() View {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view()
}

func (m *Machine) finishSuccess(generation uint64) {
	m.mu.Lock()
	if generation != m.generation || m.state != Success {
		m.mu.Unlock()
		return
	}
	m.state = Editing
	m.message = ""
	m.timer = nil
	onClose := m.onClose
	m.mu.Unlock()

	if onClose != nil {
		onClose()
	}
}

// stopTimer cancels a pending display delay. The generation changes as well,
// since a callback that already fired may still be waiting for the lock.
func (m *Machine) stopTimer() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
		m.generation++
	}
}

func (m *Machine) view() View {
	return View{
		Kind:          m.submission.Kind(),
		State:         m.state,
		Values:        Values(m.submission),
		Errors:        maps.Clone(m.errors),
		Message:       m.message,
		FallbackPhone: m.fallbackPhone,
	}
}

// Values returns the record of a submission keyed by field key.
func Values(submission forms.Submission) map[string]string {
	contact := submission.Contact()
	values := map[string]string{
		"name":  contact.Name,
		"email": contact.Email,
		"phone": contact.Phone,
	}
	for _, field := range submission.Details() {
		values[field.Key] = field.Value
	}
	return values
}
