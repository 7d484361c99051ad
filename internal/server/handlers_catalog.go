package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jonathan/party-optimizer/internal/types"
)

// nameParam returns the unescaped {name} path segment
func nameParam(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}

func (s *Server) handleListFriends(w http.ResponseWriter, _ *http.Request) {
	friends := s.store.ListFriends()
	jsonResponse(w, http.StatusOK, map[string]any{
		"friends": friends,
		"count":   len(friends),
	})
}

func (s *Server) handleGetFriend(w http.ResponseWriter, r *http.Request) {
	f, err := s.store.GetFriend(nameParam(r))
	if err != nil {
		writeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, f)
}

func (s *Server) handleCreateFriend(w http.ResponseWriter, r *http.Request) {
	var f types.Friend
	if err := decodeJSON(r, &f); err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.AddFriend(f); err != nil {
		writeError(w, err)
		return
	}
	stored, err := s.store.GetFriend(strings.TrimSpace(f.Name))
	if err != nil {
		writeError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, stored)
}

func (s *Server) handleDeleteFriend(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteFriend(nameParam(r)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListFoods(w http.ResponseWriter, r *http.Request) {
	foods := s.store.ListFoods()

	if c := r.URL.Query().Get("category"); c != "" {
		category, err := types.ParseCategory(c)
		if err != nil {
			writeError(w, &ErrValidation{Field: "category", Message: err.Error()})
			return
		}
		filtered := make([]types.Food, 0, len(foods))
		for _, f := range foods {
			if f.Category == category {
				filtered = append(filtered, f)
			}
		}
		foods = filtered
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"foods": foods,
		"count": len(foods),
	})
}

func (s *Server) handleGetFood(w http.ResponseWriter, r *http.Request) {
	f, err := s.store.GetFood(nameParam(r))
	if err != nil {
		writeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, f)
}

func (s *Server) handleCreateFood(w http.ResponseWriter, r *http.Request) {
	var f types.Food
	if err := decodeJSON(r, &f); err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.AddFood(f); err != nil {
		writeError(w, err)
		return
	}
	stored, err := s.store.GetFood(strings.TrimSpace(f.Name))
	if err != nil {
		writeError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, stored)
}

func (s *Server) handleDeleteFood(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteFood(nameParam(r)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleReload re-reads the catalog files, picking up edits made by the CLI
func (s *Server) handleReload(w http.ResponseWriter, _ *http.Request) {
	if err := s.store.Reload(); err != nil {
		writeError(w, err)
		return
	}
	c := s.store.Snapshot()
	jsonResponse(w, http.StatusOK, map[string]any{
		"friends": len(c.Friends),
		"foods":   len(c.Foods),
	})
}
