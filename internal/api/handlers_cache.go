package api

import (
	"log"
	"net/http"
)

// handleClearCache drops every cached and stored result for one video.
func (s *Server) handleClearCache(w http.ResponseWriter, r *http.Request) {
	videoID := r.PathValue("videoId")
	if videoID == "" {
		s.respondError(w, http.StatusBadRequest, "video id is required")
		return
	}

	cached, err := s.cache.DeleteVideo(r.Context(), videoID)
	if err != nil {
		log.Printf("API: cache clear for %s failed: %v", videoID, err)
		s.respondError(w, http.StatusInternalServerError, "failed to clear cache")
		return
	}
	stored, err := s.resultRepo.DeleteByVideo(videoID)
	if err != nil {
		log.Printf("API: result delete for %s failed: %v", videoID, err)
		s.respondError(w, http.StatusInternalServerError, "failed to delete stored results")
		return
	}

	s.respondJSON(w, http.StatusOK, Response{Success: true, Data: map[string]int64{
		"cache_entries_removed":  cached,
		"stored_results_removed": stored,
	}})
}

// handleStats reports cache and result store totals.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.resultRepo.GetStats()
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to load stats")
		return
	}

	cached, err := s.cache.Count(r.Context())
	if err != nil {
		log.Printf("API: cache count failed: %v", err)
		cached = -1
	}

	s.respondJSON(w, http.StatusOK, Response{Success: true, Data: map[string]interface{}{
		"results":        stats,
		"cached_entries": cached,
		"ws_clients":     s.wsHub.ClientCount(),
	}})
}
