// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package httpclient

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	stdhttp "net/http"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/wneessen/tour-mailer/internal/logger"
	"github.com/wneessen/tour-mailer/internal/testhelper"
)

type testType struct {
	String string  `json:"string"`
	Int    int     `json:"int"`
	Float  float64 `json:"float"`
	Bool   bool    `json:"bool"`
}

const testFile = "../../testdata/testtype.json"

func testLogger() *logger.Logger {
	return logger.NewLogger(slog.LevelInfo, io.Discard, logger.Opts{Format: "text"})
}

func fileResponder(t *testing.T) func(req *stdhttp.Request) (*stdhttp.Response, error) {
	t.Helper()
	return func(req *stdhttp.Request) (*stdhttp.Response, error) {
		data, err := os.Open(testFile)
		if err != nil {
			t.Fatalf("failed to open JSON response file: %s", err)
		}
		return &stdhttp.Response{
			StatusCode: 200,
			Body:       data,
			Header:     make(stdhttp.Header),
		}, nil
	}
}

func TestNew(t *testing.T) {
	client := New(testLogger())
	if client == nil {
		t.Fatal("expected client to be non-nil")
	}
	if client.Timeout != DefaultTimeout {
		t.Errorf("expected timeout to be %s, got %s", DefaultTimeout, client.Timeout)
	}
}

func TestClient_Get(t *testing.T) {
	t.Run("getting and serializing JSON should work", func(t *testing.T) {
		client := New(testLogger())
		client.Transport = testhelper.MockRoundTripper{Fn: fileResponder(t)}
		query := url.Values{}
		query.Add("key", "value")
		headers := make(map[string]string)
		headers["X-Custom-Header"] = "custom-value"

		target := new(testType)
		response, err := client.Get(t.Context(), "https://example.com", target, query, headers)
		if err != nil {
			t.Fatalf("failed to get JSON response: %s", err)
		}

		if response != 200 {
			t.Errorf("expected status code 200, got %d", response)
		}
		if target.String != "test" {
			t.Errorf("expected target string to be 'test', got %s", target.String)
		}
		if target.Int != 123 {
			t.Errorf("expected target int to be 123, got %d", target.Int)
		}
		if target.Float != 123.456 {
			t.Errorf("expected target float to be 123.456, got %f", target.Float)
		}
		if !target.Bool {
			t.Error("expected target bool to be true")
		}
	})
	t.Run("unmarshalling into non-pointer should fail", func(t *testing.T) {
		client := New(testLogger())
		var target testType
		_, err := client.Get(t.Context(), "https://example.com", target, nil, nil)
		if !errors.Is(err, ErrNonPointerTarget) {
			t.Errorf("expected error to be %s, got %s", ErrNonPointerTarget, err)
		}
	})
	t.Run("parsing an invalid url should fail", func(t *testing.T) {
		client := New(testLogger())
		target := new(testType)
		_, err := client.Get(t.Context(), "https://example.com/xyz%", target, nil, nil)
		if err == nil {
			t.Fatal("expected get to fail")
		}
		if !strings.Contains(err.Error(), "failed to parse URL") {
			t.Errorf("expected error to contain 'failed to parse URL', got %s", err)
		}
	})
	t.Run("get request fails", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			return nil, errors.New("intentionally failing")
		}
		client := New(testLogger())
		client.Transport = testhelper.MockRoundTripper{Fn: rtFn}

		target := new(testType)
		if _, err := client.Get(t.Context(), "https://example.com", target, nil, nil); err == nil {
			t.Fatal("expected get request to fail")
		}
	})
	t.Run("getting an undecodable response", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			return &stdhttp.Response{
				StatusCode: 200,
				Body:       &failReadCloser{},
				Header:     make(stdhttp.Header),
			}, nil
		}
		client := New(testLogger())
		client.Transport = testhelper.MockRoundTripper{Fn: rtFn}

		target := new(testType)
		if _, err := client.Get(t.Context(), "https://example.com", target, nil, nil); err == nil {
			t.Fatal("expected get request to fail")
		}
	})
}

func TestClient_Post(t *testing.T) {
	t.Run("post request succeeds", func(t *testing.T) {
		client := New(testLogger())
		client.Transport = testhelper.MockRoundTripper{Fn: fileResponder(t)}

		target := new(testType)
		if _, err := client.Post(t.Context(), testhelper.TestOnlineAPIURL, target, nil, nil); err != nil {
			t.Fatalf("post request failed: %s", err)
		}
	})
}

func TestClient_PostJSON(t *testing.T) {
	t.Run("payload and headers are sent", func(t *testing.T) {
		var gotPayload map[string]string
		var gotHeader stdhttp.Header
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			gotHeader = req.Header.Clone()
			if err := json.NewDecoder(req.Body).Decode(&gotPayload); err != nil {
				t.Errorf("failed to decode request payload: %s", err)
			}
			return fileResponder(t)(req)
		}
		client := New(testLogger())
		client.Transport = testhelper.MockRoundTripper{Fn: rtFn}

		target := new(testType)
		payload := map[string]string{"subject": "Hello"}
		headers := map[string]string{"Authorization": "Bearer secret"}
		code, err := client.PostJSON(t.Context(), "https://example.com/emails", target, payload, headers)
		if err != nil {
			t.Fatalf("post request failed: %s", err)
		}
		if code != 200 {
			t.Errorf("expected status code 200, got %d", code)
		}
		if gotPayload["subject"] != "Hello" {
			t.Errorf("expected subject to be sent, got %v", gotPayload)
		}
		if gotHeader.Get("Content-Type") != "application/json" {
			t.Errorf("expected JSON content type, got %s", gotHeader.Get("Content-Type"))
		}
		if gotHeader.Get("Authorization") != "Bearer secret" {
			t.Errorf("expected authorization header, got %s", gotHeader.Get("Authorization"))
		}
		if gotHeader.Get("User-Agent") != UserAgent {
			t.Errorf("expected user agent %s, got %s", UserAgent, gotHeader.Get("User-Agent"))
		}
	})
	t.Run("unencodable payload fails", func(t *testing.T) {
		client := New(testLogger())
		target := new(testType)
		_, err := client.PostJSON(t.Context(), "https://example.com", target, make(chan int), nil)
		if err == nil {
			t.Fatal("expected post to fail")
		}
	})
}

type failReadCloser struct{}

func (failReadCloser) Read(p []byte) (int, error) { return len(p), nil }
func (failReadCloser) Close() error               { return errors.New("failed to close") }
