// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
)

const AccessControlMaxAge = "600"

// preflightCheck only lets cross-origin requests from the configured website
// domains through. Requests without an Origin header are same-origin or
// server-to-server and pass unchanged.
func (s *Server) preflightCheck(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}

		allowedDomain := false
		for _, domain := range s.config.Server.Domains {
			if strings.EqualFold(origin, fmt.Sprintf("https://%s", domain)) {
				allowedDomain = true
				break
			}
		}
		if !allowedDomain {
			s.log.Warn("origin not allowed", slog.String("origin", origin), slog.String("path", r.URL.Path))
			w.WriteHeader(http.StatusForbidden)
			return
		}

		// must be set for all CORS responses
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Vary", "Origin")

		// Set CORS headers for preflight requests
		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST")
			w.Header().Set("Access-Control-Allow-Headers", r.Header.Get("Access-Control-Request-Headers"))
			w.Header().Set("Access-Control-Max-Age", AccessControlMaxAge)
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
