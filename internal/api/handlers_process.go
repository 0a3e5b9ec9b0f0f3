package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/JustinTDCT/SkipVault/internal/jobs"
	"github.com/JustinTDCT/SkipVault/internal/models"
	"github.com/JustinTDCT/SkipVault/internal/oracle"
	"github.com/JustinTDCT/SkipVault/internal/transcript"
)

type processRequest struct {
	VideoID     string                  `json:"video_id"`
	Preferences *models.UserPreferences `json:"user_preferences,omitempty"`
}

// handleProcessGet runs the pipeline synchronously with no preferences.
func (s *Server) handleProcessGet(w http.ResponseWriter, r *http.Request) {
	videoID := r.PathValue("videoId")
	if videoID == "" {
		s.respondError(w, http.StatusBadRequest, "video id is required")
		return
	}
	s.process(w, r, videoID, nil)
}

// handleProcessQuery is the query-string form of handleProcessGet.
func (s *Server) handleProcessQuery(w http.ResponseWriter, r *http.Request) {
	videoID := r.URL.Query().Get("video_id")
	if videoID == "" {
		s.respondError(w, http.StatusBadRequest, "video id is required")
		return
	}
	s.process(w, r, videoID, nil)
}

// handleProcessPost runs the pipeline synchronously with the preferences
// given in the request body.
func (s *Server) handleProcessPost(w http.ResponseWriter, r *http.Request) {
	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.VideoID == "" {
		s.respondError(w, http.StatusBadRequest, "video id is required")
		return
	}
	if req.Preferences != nil && req.Preferences.Sensitivity != "" && !req.Preferences.Sensitivity.Valid() {
		s.respondError(w, http.StatusBadRequest, "sensitivity must be low, medium or high")
		return
	}

	s.process(w, r, req.VideoID, req.Preferences)
}

func (s *Server) process(w http.ResponseWriter, r *http.Request, videoID string, prefs *models.UserPreferences) {
	result, err := s.engine.Process(r.Context(), videoID, prefs)
	if err != nil {
		switch {
		case errors.Is(err, transcript.ErrTranscriptsDisabled), errors.Is(err, transcript.ErrNoTranscript):
			s.respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, oracle.ErrUnavailable), errors.Is(err, oracle.ErrMalformedResponse):
			s.respondError(w, http.StatusBadGateway, "oracle request failed")
		default:
			log.Printf("API: process %s failed: %v", videoID, err)
			s.respondError(w, http.StatusInternalServerError, "processing failed")
		}
		return
	}
	s.respondJSON(w, http.StatusOK, result)
}

// handleProcessAsync enqueues background processing and returns immediately.
// The caller's stored preferences are applied unless the body overrides them.
func (s *Server) handleProcessAsync(w http.ResponseWriter, r *http.Request) {
	videoID := r.PathValue("videoId")
	if videoID == "" {
		s.respondError(w, http.StatusBadRequest, "video id is required")
		return
	}

	var body struct {
		Preferences *models.UserPreferences `json:"user_preferences,omitempty"`
	}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&body)
	}

	prefs := body.Preferences
	if prefs == nil {
		stored, err := s.prefRepo.GetByUser(s.getUserID(r))
		if err != nil {
			s.respondError(w, http.StatusInternalServerError, "failed to load preferences")
			return
		}
		prefs = stored
	}

	payload := jobs.ProcessVideoPayload{VideoID: videoID, Preferences: prefs}
	taskID, err := s.jobQueue.EnqueueUnique(jobs.TaskProcessVideo, payload, jobs.ProcessTaskID(videoID, prefs))
	if err != nil {
		log.Printf("API: enqueue %s failed: %v", videoID, err)
		s.respondError(w, http.StatusInternalServerError, "failed to enqueue processing")
		return
	}

	s.respondJSON(w, http.StatusAccepted, Response{Success: true, Data: map[string]string{
		"task_id":  taskID,
		"video_id": videoID,
	}})
}

// handleGetSegments returns stored results for a video.
func (s *Server) handleGetSegments(w http.ResponseWriter, r *http.Request) {
	videoID := r.PathValue("videoId")

	results, err := s.resultRepo.ListByVideo(videoID)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to load results")
		return
	}
	if len(results) == 0 {
		s.respondError(w, http.StatusNotFound, "no results for this video")
		return
	}
	s.respondJSON(w, http.StatusOK, Response{Success: true, Data: results})
}
