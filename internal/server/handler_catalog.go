// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/wneessen/tour-mailer/internal/catalog"
	"github.com/wneessen/tour-mailer/internal/logger"
)

// HandlerAPICatalogGet lists the active catalog entries of an entity kind,
// e.g. to fill the tour selection of a booking form.
func (s *Server) HandlerAPICatalogGet(w http.ResponseWriter, r *http.Request) {
	if s.catalog == nil {
		_ = render.Render(w, r, ErrNotFound(ErrCatalogNotConfigured))
		return
	}
	entity := chi.URLParam(r, "entity")
	entries, err := s.catalog.List(r.Context(), entity)
	switch {
	case errors.Is(err, catalog.ErrUnknownKind):
		_ = render.Render(w, r, ErrNotFound(err))
		return
	case err != nil:
		s.log.Error("failed to list catalog entries", logger.Err(err), logger.RequestID(r))
		_ = render.Render(w, r, ErrUnexpected(errors.New("failed to list catalog entries")))
		return
	}
	if err = render.Render(w, r, NewResponse(http.StatusOK, "catalog entries", entries)); err != nil {
		s.log.Error("failed to render catalog entries", logger.Err(err))
	}
}
