package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/hibiken/asynq"

	"github.com/JustinTDCT/SkipVault/internal/cache"
	"github.com/JustinTDCT/SkipVault/internal/engine"
	"github.com/JustinTDCT/SkipVault/internal/models"
	"github.com/JustinTDCT/SkipVault/internal/transcript"
)

// ProcessVideoPayload identifies one video and the preference set to apply.
type ProcessVideoPayload struct {
	VideoID     string                  `json:"video_id"`
	Preferences *models.UserPreferences `json:"preferences,omitempty"`
}

// EventNotifier pushes job progress events to connected clients.
type EventNotifier interface {
	Broadcast(event string, data interface{})
}

// ProcessTaskID builds the deterministic task ID for a video and preference
// set, so duplicate submissions collapse onto one queued job.
func ProcessTaskID(videoID string, prefs *models.UserPreferences) string {
	return "process:" + videoID + ":" + cache.PrefsHash(prefs)
}

type ProcessVideoHandler struct {
	engine   *engine.Engine
	notifier EventNotifier
}

func NewProcessVideoHandler(eng *engine.Engine, notifier EventNotifier) *ProcessVideoHandler {
	return &ProcessVideoHandler{engine: eng, notifier: notifier}
}

func (h *ProcessVideoHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var p ProcessVideoPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}

	taskID := ProcessTaskID(p.VideoID, p.Preferences)
	log.Printf("Job: processing video %s", p.VideoID)
	if h.notifier != nil {
		h.notifier.Broadcast("process:start", map[string]string{"video_id": p.VideoID})
		h.notifier.Broadcast("task:update", map[string]interface{}{
			"task_id": taskID, "task_type": TaskProcessVideo,
			"status": "running", "description": "Processing: " + p.VideoID,
		})
	}

	result, err := h.engine.Process(ctx, p.VideoID, p.Preferences)
	if err != nil {
		if h.notifier != nil {
			h.notifier.Broadcast("task:update", map[string]interface{}{
				"task_id": taskID, "task_type": TaskProcessVideo,
				"status": "failed", "description": err.Error(),
			})
		}
		// A video without captions will never succeed; do not retry.
		if errors.Is(err, transcript.ErrTranscriptsDisabled) || errors.Is(err, transcript.ErrNoTranscript) {
			log.Printf("Job: video %s has no usable transcript: %v", p.VideoID, err)
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		return fmt.Errorf("process video %s: %w", p.VideoID, err)
	}

	log.Printf("Job: video %s done, %d skip segments (%.1f%%)",
		p.VideoID, len(result.Remove), result.SkipPercentage)
	if h.notifier != nil {
		h.notifier.Broadcast("process:done", map[string]interface{}{
			"video_id":        p.VideoID,
			"segment_count":   len(result.Remove),
			"skip_percentage": result.SkipPercentage,
		})
		h.notifier.Broadcast("task:update", map[string]interface{}{
			"task_id": taskID, "task_type": TaskProcessVideo,
			"status": "completed", "description": "Processed: " + p.VideoID,
		})
	}
	return nil
}

// RegisterHandlers wires every task handler into the queue mux.
func RegisterHandlers(q *Queue, eng *engine.Engine, notifier EventNotifier) {
	q.RegisterHandler(TaskProcessVideo, NewProcessVideoHandler(eng, notifier))
}
