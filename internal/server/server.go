// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wneessen/tour-mailer/internal/catalog"
	"github.com/wneessen/tour-mailer/internal/config"
	"github.com/wneessen/tour-mailer/internal/forms"
	"github.com/wneessen/tour-mailer/internal/formstate"
	"github.com/wneessen/tour-mailer/internal/httpclient"
	"github.com/wneessen/tour-mailer/internal/logger"
)

// Notifier dispatches validated submissions.
type Notifier interface {
	formstate.Notifier
	FallbackPhone() string
}

// Catalog resolves the entities booking forms refer to.
type Catalog interface {
	Resolve(ctx context.Context, sub forms.Submission) error
	List(ctx context.Context, kind string) ([]catalog.Entry, error)
}

type Server struct {
	catalog    Catalog
	config     *config.Config
	httpClient *httpclient.Client
	httpSrv    *http.Server
	log        *logger.Logger
	mux        *chi.Mux
	notifier   Notifier
	pages      *template.Template
	version    string
}

type Option func(*Server)

// WithCatalog enables catalog lookups for booking forms.
func WithCatalog(c Catalog) Option {
	return func(s *Server) { s.catalog = c }
}

// WithHTTPClient replaces the HTTP client used for captcha verification.
func WithHTTPClient(client *httpclient.Client) Option {
	return func(s *Server) { s.httpClient = client }
}

func WithVersion(version string) Option {
	return func(s *Server) { s.version = version }
}

// New returns a new server instance
func New(conf *config.Config, log *logger.Logger, notifier Notifier, opts ...Option) *Server {
	mux := chi.NewMux()
	listenAddr := net.JoinHostPort(conf.Server.BindAddress, conf.Server.BindPort)

	server := &Server{
		config:     conf,
		httpClient: httpclient.New(log),
		httpSrv: &http.Server{
			Addr:              listenAddr,
			Handler:           mux,
			ReadTimeout:       conf.Server.Timeout,
			ReadHeaderTimeout: conf.Server.Timeout,
			// both emails are sent before the response is written
			WriteTimeout: conf.Server.Timeout * 2,
			IdleTimeout:  conf.Server.Timeout,
		},
		log:      log,
		mux:      mux,
		notifier: notifier,
		pages:    template.Must(template.New("pages").ParseFS(pageFS, "pages/*.html")),
		version:  "dev",
	}
	for _, opt := range opts {
		opt(server)
	}
	return server
}

// Start starts up the server and waits for a shutdown signal
func (s *Server) Start(ctx context.Context) error {
	ctxServer, cancelServer := context.WithCancel(ctx)
	defer cancelServer()

	s.log.Info("starting tour-mailer http server", slog.String("listen_addr", s.httpSrv.Addr))

	// Assign routes
	s.routes(ctxServer)

	// Start http server
	listenerFailed := false
	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("failed to start http listener", logger.Err(err))
			listenerFailed = true
		}
		cancelServer()
	}()
	<-ctxServer.Done()
	if listenerFailed {
		return fmt.Errorf("failed to start http listener")
	}

	// Shut down server and services
	s.log.Info("shutting down tour-mailer http server")
	ctxShutdown, cancelStop := context.WithTimeout(context.WithoutCancel(ctx), time.Second*5)
	defer cancelStop()
	if err := s.httpSrv.Shutdown(ctxShutdown); err != nil {
		s.log.Error("failed to shut down http server gracefully", logger.Err(err))
	}

	return nil
}
