package api

import (
	"context"
	"net/http"

	"github.com/meur/harborline/internal/content"
)

// visitorView returns the loaded content with the visitor's own selection applied
func (s *Server) visitorView(w http.ResponseWriter, r *http.Request) content.View {
	view := s.loader.View()
	if mode, ok := s.session(w, r).GameMode(); ok {
		view = view.WithSelection(mode)
	}
	return view
}

// handleGetHome returns everything the home page renders
func (s *Server) handleGetHome(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.visitorView(w, r))
}

// handleGetGameModes returns game modes ordered by name
func (s *Server) handleGetGameModes(w http.ResponseWriter, r *http.Request) {
	modes := s.loader.View().GameModes
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items":       modes,
		"total_count": len(modes),
	})
}

// handleGetRules returns the rules for a game mode, or for the visitor's selection
func (s *Server) handleGetRules(w http.ResponseWriter, r *http.Request) {
	view := s.visitorView(w, r)
	if mode := r.URL.Query().Get("mode"); mode != "" {
		view = view.WithSelection(mode)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"game_mode_id": view.SelectedGameModeID,
		"items":        view.FilteredRules,
		"total_count":  len(view.FilteredRules),
	})
}

// handleGetSocialLinks returns social links in display order
func (s *Server) handleGetSocialLinks(w http.ResponseWriter, r *http.Request) {
	links := s.loader.View().SocialLinks
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items":       links,
		"total_count": len(links),
	})
}

type selectionRequest struct {
	GameModeID string `json:"game_mode_id"`
}

// handleSelectGameMode stores the visitor's game mode choice
func (s *Server) handleSelectGameMode(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.GameModeID == "" {
		respondError(w, http.StatusBadRequest, "game_mode_id is required")
		return
	}

	sess := s.session(w, r)
	sess.SelectGameMode(req.GameModeID)
	respondJSON(w, http.StatusOK, s.loader.View().WithSelection(req.GameModeID))
}

// handleReload reloads every content collection
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.loadTimeout)
	defer cancel()

	if err := s.loader.Load(ctx); err != nil {
		respondError(w, http.StatusBadGateway, "Failed to load content")
		return
	}
	respondJSON(w, http.StatusOK, s.loader.View())
}
