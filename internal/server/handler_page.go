// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package server

import (
	"bytes"
	"embed"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/wneessen/tour-mailer/internal/catalog"
	"github.com/wneessen/tour-mailer/internal/forms"
	"github.com/wneessen/tour-mailer/internal/formstate"
	"github.com/wneessen/tour-mailer/internal/logger"
	"github.com/wneessen/tour-mailer/internal/metrics"
)

//go:embed pages/*.html
var pageFS embed.FS

type pageInput struct {
	forms.Input
	Value   string
	Error   string
	Checked bool
}

type pageData struct {
	BrandName     string
	Title         string
	Action        string
	State         string
	Message       string
	FallbackPhone string
	Refresh       int
	Inputs        []pageInput
	Honeypot      string
	Captcha       string
	SiteKey       string
}

// HandlerFormPageGet renders an empty form.
func (s *Server) HandlerFormPageGet(w http.ResponseWriter, r *http.Request) {
	sub, ok := s.pageSubmission(w, r)
	if !ok {
		return
	}
	machine := s.newMachine(sub)
	s.renderPage(w, r, machine.View(), http.StatusOK)
}

// HandlerFormPagePost runs a browser form submission through the submission
// state machine and renders the resulting state: inline errors, the success
// banner with cleared fields or the error banner with the fields kept.
func (s *Server) HandlerFormPagePost(w http.ResponseWriter, r *http.Request) {
	sub, ok := s.pageSubmission(w, r)
	if !ok {
		return
	}
	kind := string(sub.Kind())
	log := s.log.With(logger.RequestID(r), slog.String("form", kind))

	r.Body = http.MaxBytesReader(w, r.Body, formMaxBytes)
	if err := r.ParseForm(); err != nil {
		log.Warn("failed to parse form submission", logger.Err(err))
		http.Error(w, ErrFailedToParseForm.Error(), http.StatusBadRequest)
		return
	}

	machine := s.newMachine(sub)
	for _, input := range forms.Inputs(sub) {
		if err := machine.Set(input.Key, r.PostForm.Get(input.Key)); err != nil {
			log.Error("failed to assign form value", logger.Err(err), slog.String("field", input.Key))
			http.Error(w, ErrFailedToParseForm.Error(), http.StatusBadRequest)
			return
		}
	}

	if err := s.screen(r.Context(), formValues(r.PostForm), remoteIP(r)); err != nil {
		log.Warn("form submission did not pass screening", logger.Err(err))
		metrics.SubmissionsTotal.WithLabelValues(kind, metrics.ResultRejected).Inc()
		code := http.StatusForbidden
		if errors.Is(err, ErrHoneypotTriggered) {
			code = http.StatusBadRequest
		}
		http.Error(w, err.Error(), code)
		return
	}

	var key string
	var resolveErr error
	_ = machine.Edit(func(sub forms.Submission) { key, resolveErr = s.resolve(r.Context(), sub) })
	if resolveErr != nil {
		log.Warn("failed to resolve catalog entry", logger.Err(resolveErr))
		if !errors.Is(resolveErr, catalog.ErrNotFound) {
			http.Error(w, "failed to look up catalog entry", http.StatusInternalServerError)
			return
		}
		metrics.SubmissionsTotal.WithLabelValues(kind, metrics.ResultInvalid).Inc()
		view := machine.View()
		if view.Errors == nil {
			view.Errors = make(map[string]string)
		}
		view.Errors[key] = ErrEntityNotAvailable.Error()
		s.renderPage(w, r, view, http.StatusUnprocessableEntity)
		return
	}

	view, err := machine.Submit(r.Context())
	if err != nil {
		log.Error("failed to submit form", logger.Err(err))
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	code := http.StatusOK
	if view.State == formstate.Editing && len(view.Errors) > 0 {
		metrics.SubmissionsTotal.WithLabelValues(kind, metrics.ResultInvalid).Inc()
		code = http.StatusUnprocessableEntity
	}
	s.renderPage(w, r, view, code)
}

func (s *Server) pageSubmission(w http.ResponseWriter, r *http.Request) (forms.Submission, bool) {
	kind := forms.Kind(chi.URLParam(r, "kind"))
	sub, err := forms.New(kind)
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}
	return sub, true
}

// newMachine returns the state machine of a single browser request. The page
// itself returns to the empty form after the display delay, so the machine
// keeps its success state.
func (s *Server) newMachine(sub forms.Submission) *formstate.Machine {
	return formstate.New(sub, s.notifier,
		formstate.WithDisplayDelay(0),
		formstate.WithFallbackPhone(s.notifier.FallbackPhone()),
	)
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, view formstate.View, code int) {
	data := pageData{
		BrandName: s.config.Brand.Name,
		Title:     view.Kind.Label(),
		Action:    "/forms/" + string(view.Kind),
		State:     view.State.String(),
		Message:   view.Message,
		Honeypot:  s.config.Forms.Honeypot,
		Captcha:   s.config.Forms.Captcha.Provider,
		SiteKey:   s.config.Forms.Captcha.SiteKey,
	}
	if view.State == formstate.Error {
		data.FallbackPhone = view.FallbackPhone
	}
	if view.State == formstate.Success {
		data.Refresh = max(int(s.config.Forms.DisplayDelay.Seconds()), 1)
	}

	sub, err := forms.New(view.Kind)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	for _, input := range forms.Inputs(sub) {
		value := view.Values[input.Key]
		data.Inputs = append(data.Inputs, pageInput{
			Input:   input,
			Value:   value,
			Error:   view.Errors[input.Key],
			Checked: value == "true",
		})
	}

	buf := bytes.NewBuffer(nil)
	if err = s.pages.ExecuteTemplate(buf, "form", data); err != nil {
		s.log.Error("failed to render form page", logger.Err(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if _, err = w.Write(buf.Bytes()); err != nil {
		s.log.Error("failed to write form page", logger.Err(err))
	}
}

// formValues flattens parsed form values.
func formValues(values url.Values) map[string]string {
	flat := make(map[string]string, len(values))
	for key := range values {
		flat[key] = values.Get(key)
	}
	return flat
}
