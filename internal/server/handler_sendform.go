// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/wneessen/tour-mailer/internal/catalog"
	"github.com/wneessen/tour-mailer/internal/forms"
	"github.com/wneessen/tour-mailer/internal/logger"
	"github.com/wneessen/tour-mailer/internal/metrics"
	"github.com/wneessen/tour-mailer/internal/notify"
	"github.com/wneessen/tour-mailer/internal/validation"
)

const formMaxBytes = 1 << 20

var (
	ErrFailedToParseForm    = errors.New("failed to parse form submission")
	ErrHoneypotTriggered    = errors.New("submission was rejected")
	ErrEntityNotAvailable   = errors.New("selected catalog entry is not available")
	ErrCatalogNotConfigured = errors.New("catalog is not configured")
)

// FormInfo describes a form kind for clients.
type FormInfo struct {
	Kind     forms.Kind `json:"kind"`
	Label    string     `json:"label"`
	Endpoint string     `json:"endpoint"`
	Page     string     `json:"page"`
}

func (s *Server) HandlerAPIFormsGet(w http.ResponseWriter, r *http.Request) {
	list := make([]FormInfo, 0, len(forms.Kinds()))
	for _, kind := range forms.Kinds() {
		list = append(list, FormInfo{
			Kind:     kind,
			Label:    kind.Label(),
			Endpoint: "/api/forms/" + string(kind),
			Page:     "/forms/" + string(kind),
		})
	}
	if err := render.Render(w, r, NewResponse(http.StatusOK, "available forms", list)); err != nil {
		s.log.Error("failed to render form list", logger.Err(err))
	}
}

func (s *Server) HandlerAPIOptions(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// HandlerAPIFormPost accepts a JSON or url-encoded submission, validates it and
// sends the notification emails. A delivered submission is answered with 200,
// a submission that was received but could not be notified with 202.
func (s *Server) HandlerAPIFormPost(w http.ResponseWriter, r *http.Request) {
	kind := forms.Kind(chi.URLParam(r, "kind"))
	sub, err := forms.New(kind)
	if err != nil {
		_ = render.Render(w, r, ErrNotFound(fmt.Errorf("%w: %s", err, kind)))
		return
	}
	log := s.log.With(logger.RequestID(r), slog.String("form", string(kind)))

	r.Body = http.MaxBytesReader(w, r.Body, formMaxBytes)
	values, err := decodeSubmission(r, sub)
	if err != nil {
		log.Warn("failed to decode form submission", logger.Err(err))
		_ = render.Render(w, r, ErrBadRequest(ErrFailedToParseForm))
		return
	}

	if err = s.screen(r.Context(), values, remoteIP(r)); err != nil {
		log.Warn("form submission did not pass screening", logger.Err(err))
		metrics.SubmissionsTotal.WithLabelValues(string(kind), metrics.ResultRejected).Inc()
		switch {
		case errors.Is(err, ErrHoneypotTriggered):
			_ = render.Render(w, r, ErrBadRequest(err))
		default:
			_ = render.Render(w, r, ErrForbidden(err))
		}
		return
	}

	errs := validation.Validate(sub)
	if !errs.Valid() {
		log.Debug("form submission failed validation", logger.Err(errs.Err()))
		metrics.SubmissionsTotal.WithLabelValues(string(kind), metrics.ResultInvalid).Inc()
		_ = render.Render(w, r, ErrUnprocessable(validation.ErrValidationFailed, errs))
		return
	}
	if key, err := s.resolve(r.Context(), sub); err != nil {
		log.Warn("failed to resolve catalog entry", logger.Err(err))
		if !errors.Is(err, catalog.ErrNotFound) {
			_ = render.Render(w, r, ErrUnexpected(errors.New("failed to look up catalog entry")))
			return
		}
		metrics.SubmissionsTotal.WithLabelValues(string(kind), metrics.ResultInvalid).Inc()
		_ = render.Render(w, r, ErrUnprocessable(validation.ErrValidationFailed,
			map[string]string{key: ErrEntityNotAvailable.Error()}))
		return
	}

	contact := sub.Contact()
	outcome := s.notifier.SendFormEmail(r.Context(), notify.Request{
		FormType:   kind.Label(),
		Submission: sub,
		UserEmail:  contact.Email,
		UserName:   contact.Name,
	})
	log.Info("form submission processed", slog.Bool("success", outcome.Success),
		slog.String("reference_id", outcome.ReferenceID))

	resp := NewResponse(http.StatusOK, outcome.Message, outcome)
	if !outcome.Success {
		resp = NewResponse(http.StatusAccepted, outcome.Message, outcome)
		resp.Success = false
	}
	if err = render.Render(w, r, resp); err != nil {
		log.Error("failed to render form submission response", logger.Err(err))
	}
}

// screen runs the spam checks on the raw submitted values.
func (s *Server) screen(ctx context.Context, values map[string]string, remoteAddr string) error {
	if honeypot := s.config.Forms.Honeypot; honeypot != "" && failsHoneypot(honeypot, values) {
		return ErrHoneypotTriggered
	}
	if s.config.Forms.Captcha.Provider != "" {
		if err := s.validateCaptcha(ctx, values, remoteAddr); err != nil {
			return err
		}
	}
	return nil
}

// resolve fills in the entity name of booking forms from the catalog. On
// failure it returns the key of the offending field.
func (s *Server) resolve(ctx context.Context, sub forms.Submission) (string, error) {
	ref, ok := sub.(forms.EntityRef)
	if !ok || s.catalog == nil {
		return "", nil
	}
	entity, _ := ref.Entity()
	if err := s.catalog.Resolve(ctx, sub); err != nil {
		return entity + "_id", err
	}
	return "", nil
}

// failsHoneypot checks if the submitted values fail the honeypot validation.
func failsHoneypot(honeyField string, values map[string]string) bool {
	for key, val := range values {
		if strings.EqualFold(key, honeyField) && val != "" {
			return true
		}
	}
	return false
}

// decodeSubmission decodes a JSON, url-encoded or multipart request body into
// sub. It returns all top-level string values of the body, including those
// that are not part of the submission record, e.g. honeypot or captcha fields.
func decodeSubmission(r *http.Request, sub forms.Submission) (map[string]string, error) {
	contentType := r.Header.Get("Content-Type")
	switch {
	case strings.HasPrefix(contentType, "multipart/form-data"):
		if err := r.ParseMultipartForm(formMaxBytes); err != nil {
			return nil, err
		}
		return setValues(sub, r.MultipartForm.Value)
	case render.GetRequestContentType(r) == render.ContentTypeForm:
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		return setValues(sub, r.PostForm)
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if err = render.DecodeJSON(bytes.NewReader(body), sub); err != nil {
		return nil, err
	}
	raw := make(map[string]any)
	if err = json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	values := make(map[string]string, len(raw))
	for key, val := range raw {
		if str, ok := val.(string); ok {
			values[key] = str
		}
	}
	return values, nil
}

// setValues assigns all known form keys to sub and flattens the values.
func setValues(sub forms.Submission, values url.Values) (map[string]string, error) {
	flat := make(map[string]string, len(values))
	for key := range values {
		flat[key] = values.Get(key)
		if err := forms.Set(sub, key, flat[key]); err != nil && !errors.Is(err, forms.ErrUnknownField) {
			return nil, err
		}
	}
	return flat, nil
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
