// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package logger

import (
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
)

const (
	IPv4HideMask = 16
	IPv6HideMask = 48

	// KeyClientIP and KeyEmail are the attribute keys that are masked when
	// the corresponding privacy option is enabled.
	KeyClientIP = "client.ip"
	KeyEmail    = "email"
)

type Logger struct {
	*slog.Logger
}

type Opts struct {
	Format       string
	DontLogIP    bool
	DontLogEmail bool
}

func New(level slog.Level, opts Opts) *Logger {
	return NewLogger(level, os.Stderr, opts)
}

func NewLogger(level slog.Level, output io.Writer, opts Opts) *Logger {
	replaceattr := func(groups []string, a slog.Attr) slog.Attr {
		switch {
		case a.Key == KeyClientIP && opts.DontLogIP:
			return slog.String(KeyClientIP, MaskIP(a.Value.String()))
		case a.Key == KeyEmail && opts.DontLogEmail:
			return slog.String(KeyEmail, MaskEmail(a.Value.String()))
		}
		return a
	}

	handlerOpts := &slog.HandlerOptions{
		ReplaceAttr: replaceattr,
		Level:       level,
	}
	switch strings.ToLower(opts.Format) {
	case "text":
		return &Logger{slog.New(slog.NewTextHandler(output, handlerOpts))}
	default:
		return &Logger{slog.New(slog.NewJSONHandler(output, handlerOpts))}
	}
}

// With returns a Logger that includes the given attributes in each output
func (l *Logger) With(args ...any) *Logger {
	return &Logger{l.Logger.With(args...)}
}

// MaskIP hides the host part of an IP address.
func MaskIP(value string) string {
	ip := net.ParseIP(value)
	switch {
	case ip.To4() != nil:
		ip = ip.Mask(net.CIDRMask(IPv4HideMask, 32))
	case ip.To16() != nil:
		ip = ip.Mask(net.CIDRMask(IPv6HideMask, 128))
	default:
		ip = net.IPv4zero
	}
	return ip.String()
}

// MaskEmail keeps the first character of the local part and the domain of
// an email address.
func MaskEmail(value string) string {
	local, domain, ok := strings.Cut(value, "@")
	if !ok || local == "" {
		return "***"
	}
	return local[:1] + "***@" + domain
}

func Err(err error) slog.Attr {
	return slog.Any("error", err)
}

func RequestID(r *http.Request) slog.Attr {
	return slog.String("request_id", middleware.GetReqID(r.Context()))
}

func Email(address string) slog.Attr {
	return slog.String(KeyEmail, address)
}
