package api

import (
	"encoding/json"
	"net/http"

	"github.com/JustinTDCT/SkipVault/internal/models"
	"github.com/JustinTDCT/SkipVault/internal/synthesis"
)

// categoryInfo is the public shape of one built-in skip category.
type categoryInfo struct {
	Name     string   `json:"name"`
	Title    string   `json:"title"`
	Keywords []string `json:"keywords"`
	Phrases  []string `json:"phrases"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	names := synthesis.CategoryNames()
	categories := make([]categoryInfo, 0, len(names))
	for _, name := range names {
		cat := synthesis.Categories[name]
		categories = append(categories, categoryInfo{
			Name:     name,
			Title:    cat.Title,
			Keywords: cat.Keywords,
			Phrases:  cat.Phrases,
		})
	}
	s.respondJSON(w, http.StatusOK, Response{Success: true, Data: categories})
}

func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	cat, ok := synthesis.Categories[name]
	if !ok {
		s.respondError(w, http.StatusNotFound, "unknown category")
		return
	}
	s.respondJSON(w, http.StatusOK, Response{Success: true, Data: categoryInfo{
		Name:     name,
		Title:    cat.Title,
		Keywords: cat.Keywords,
		Phrases:  cat.Phrases,
	}})
}

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.prefRepo.GetByUser(s.getUserID(r))
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to load preferences")
		return
	}
	s.respondJSON(w, http.StatusOK, Response{Success: true, Data: prefs})
}

func (s *Server) handleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var prefs models.UserPreferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if prefs.Sensitivity == "" {
		prefs.Sensitivity = models.SensitivityMedium
	}
	if !prefs.Sensitivity.Valid() {
		s.respondError(w, http.StatusBadRequest, "sensitivity must be low, medium or high")
		return
	}
	for _, name := range prefs.SelectedCategories {
		if !synthesis.ValidCategory(name) {
			s.respondError(w, http.StatusBadRequest, "unknown category: "+name)
			return
		}
	}

	if err := s.prefRepo.Upsert(s.getUserID(r), &prefs); err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to save preferences")
		return
	}
	s.respondJSON(w, http.StatusOK, Response{Success: true, Data: prefs})
}
