// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package server

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) routes(_ context.Context) {
	logFormat := httplog.SchemaECS
	logSkipPath := []string{"/ping", "/metrics"}
	log := s.log.With(slog.String("service", "http"))
	logHandler := httplog.RequestLogger(
		log.Logger,
		&httplog.Options{
			Level: s.config.Log.Level,
			Skip: func(req *http.Request, code int) bool {
				for _, skip := range logSkipPath {
					if strings.HasPrefix(req.URL.Path, skip) && code == 200 {
						return true
					}
				}
				return false
			},
			Schema:        logFormat,
			RecoverPanics: true,
		},
	)

	// Register middleware
	s.mux.Use(middleware.RequestID)
	s.mux.Use(middleware.RealIP)
	s.mux.Use(middleware.StripSlashes)
	s.mux.Use(middleware.Compress(5))
	s.mux.Use(s.serverHeader)
	s.mux.Use(logHandler)

	// Register routes
	s.mux.Get("/ping", s.HandlerAPIPingGet)
	s.mux.Method(http.MethodGet, "/metrics", promhttp.Handler())
	s.mux.Route("/api", func(r chi.Router) {
		r.Use(s.preflightCheck)
		r.Options("/*", s.HandlerAPIOptions)
		r.Get("/forms", s.HandlerAPIFormsGet)
		r.Post("/forms/{kind}", s.HandlerAPIFormPost)
		r.Get("/catalog/{entity}", s.HandlerAPICatalogGet)
	})
	s.mux.Route("/forms/{kind}", func(r chi.Router) {
		r.Get("/", s.HandlerFormPageGet)
		r.Post("/", s.HandlerFormPagePost)
	})
}
