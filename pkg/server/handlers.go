package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/exhibit/pkg/buildinfo"
	"github.com/matzehuels/exhibit/pkg/catalog"
	"github.com/matzehuels/exhibit/pkg/errors"
	"github.com/matzehuels/exhibit/pkg/exhibit"
)

// ArtworkResponse is the body of GET /artwork and every navigation call.
type ArtworkResponse struct {
	Index     int              `json:"index"`
	Total     int              `json:"total"`
	Artwork   *catalog.Artwork `json:"artwork"`
	Critiques []CritiqueView   `json:"critiques"`
}

// CritiqueView is a critique with its persona resolved.
type CritiqueView struct {
	catalog.Critique
	Persona *catalog.Persona `json:"persona,omitempty"`
}

// PointerResponse is the body of POST /pointer.
type PointerResponse struct {
	Hit    bool   `json:"hit"`
	Region string `json:"region,omitempty"`
}

// handleHealth reports liveness without touching the exhibit.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	var st exhibit.Status
	err := s.dispatch.Do(r.Context(), func(a *exhibit.App) error {
		st = a.Status()
		return nil
	})
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleArtwork(w http.ResponseWriter, r *http.Request) {
	s.respondArtwork(w, r, func(*exhibit.App) error { return nil })
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	s.respondArtwork(w, r, func(a *exhibit.App) error {
		a.Next()
		return nil
	})
}

func (s *Server) handlePrev(w http.ResponseWriter, r *http.Request) {
	s.respondArtwork(w, r, func(a *exhibit.App) error {
		a.Prev()
		return nil
	})
}

func (s *Server) handleGoTo(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeAppError(w, errors.New(errors.ErrCodeInvalidInput, "index must be an integer"))
		return
	}
	s.respondArtwork(w, r, func(a *exhibit.App) error {
		_, err := a.GoTo(index)
		return err
	})
}

func (s *Server) handleShow(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.respondArtwork(w, r, func(a *exhibit.App) error {
		_, err := a.Show(id)
		return err
	})
}

func (s *Server) handleHold(held bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var st exhibit.Status
		err := s.dispatch.Do(r.Context(), func(a *exhibit.App) error {
			a.SetHold(held)
			st = a.Status()
			return nil
		})
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}

func (s *Server) handlePointer(w http.ResponseWriter, r *http.Request) {
	x, errX := strconv.ParseFloat(r.URL.Query().Get("x"), 64)
	y, errY := strconv.ParseFloat(r.URL.Query().Get("y"), 64)
	if errX != nil || errY != nil {
		writeAppError(w, errors.New(errors.ErrCodeInvalidInput, "x and y query parameters must be numbers"))
		return
	}

	var resp PointerResponse
	err := s.dispatch.Do(r.Context(), func(a *exhibit.App) error {
		resp.Region, resp.Hit = a.Pointer(x, y)
		return nil
	})
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// respondArtwork runs fn and replies with the artwork on screen afterwards.
func (s *Server) respondArtwork(w http.ResponseWriter, r *http.Request, fn func(*exhibit.App) error) {
	var resp ArtworkResponse
	err := s.dispatch.Do(r.Context(), func(a *exhibit.App) error {
		if err := fn(a); err != nil {
			return err
		}
		resp = artworkResponse(a)
		return nil
	})
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func artworkResponse(a *exhibit.App) ArtworkResponse {
	snap := a.Current()
	resp := ArtworkResponse{
		Index:     snap.Index,
		Total:     a.Status().Total,
		Artwork:   snap.Artwork,
		Critiques: make([]CritiqueView, 0, len(snap.Critiques)),
	}
	for _, c := range snap.Critiques {
		view := CritiqueView{Critique: c}
		if p, ok := a.Persona(c.PersonaID); ok {
			view.Persona = p
		}
		resp.Critiques = append(resp.Critiques, view)
	}
	return resp
}
