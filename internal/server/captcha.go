// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/wneessen/tour-mailer/internal/config"
)

const (
	hCaptchaSolutionField  = "h-captcha-response"
	turnstileSolutionField = "cf-turnstile-response"
)

var (
	hCaptchaEndpoint  = "https://hcaptcha.com/siteverify"
	turnstileEndpoint = "https://challenges.cloudflare.com/turnstile/v0/siteverify"
)

var (
	ErrCaptchaMissing  = errors.New("missing captcha solution")
	ErrHCaptchaFailed  = errors.New("hCaptcha validation failed")
	ErrTurnstileFailed = errors.New("turnstile validation failed")
)

// siteverifyResponse is the answer of the hCaptcha and Turnstile siteverify
// endpoints. Both share the fields we rely on.
type siteverifyResponse struct {
	Success    bool     `json:"success"`
	Timestamp  string   `json:"challenge_ts"`
	Hostname   string   `json:"hostname"`
	ErrorCodes []string `json:"error-codes"`
}

func (s *Server) validateCaptcha(ctx context.Context, values map[string]string, remoteAddr string) error {
	secret := s.config.Forms.Captcha.SecretKey
	switch s.config.Forms.Captcha.Provider {
	case config.CaptchaHCaptcha:
		if err := s.siteverify(ctx, hCaptchaEndpoint, values[hCaptchaSolutionField], secret, remoteAddr); err != nil {
			return fmt.Errorf("%w: %w", ErrHCaptchaFailed, err)
		}
		s.log.Debug("hCaptcha validation succeeded")
	case config.CaptchaTurnstile:
		if err := s.siteverify(ctx, turnstileEndpoint, values[turnstileSolutionField], secret, remoteAddr); err != nil {
			return fmt.Errorf("%w: %w", ErrTurnstileFailed, err)
		}
		s.log.Debug("turnstile validation succeeded")
	}
	return nil
}

func (s *Server) siteverify(ctx context.Context, endpoint, solution, secret, remoteAddr string) error {
	if solution == "" {
		return ErrCaptchaMissing
	}

	data := url.Values{}
	data.Set("secret", secret)
	data.Set("response", solution)
	if remoteAddr != "" {
		data.Set("remoteip", remoteAddr)
	}

	res := new(siteverifyResponse)
	body := strings.NewReader(data.Encode())
	header := map[string]string{"Content-Type": "application/x-www-form-urlencoded"}
	code, err := s.httpClient.Post(ctx, endpoint, res, body, header)
	if err != nil {
		return fmt.Errorf("failed to verify captcha solution: %w", err)
	}
	if code != http.StatusOK {
		s.log.Error("captcha solution verification failed", slog.Int("status_code", code))
		return fmt.Errorf("verification endpoint returned status %d", code)
	}
	if !res.Success {
		s.log.Warn("captcha solution was rejected", slog.Any("error_codes", res.ErrorCodes))
		return fmt.Errorf("captcha solution was rejected: %s", strings.Join(res.ErrorCodes, ", "))
	}
	return nil
}
