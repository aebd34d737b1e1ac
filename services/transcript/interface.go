package transcript

import (
	"context"

	"github.com/notetube/transcript-api/models"
)

// Service produces a best-effort transcript for a video ID. Fetch never
// fails: every outcome, including total exhaustion, is a TranscriptResult
// whose source tag names the stage that produced it.
type Service interface {
	Fetch(ctx context.Context, videoID string) models.TranscriptResult
}

// DefaultLanguages is the caption language priority order, used both for
// the primary API call and the timedtext fallback loop.
var DefaultLanguages = []string{"en", "en-US", "hi", "fr", "es", "de", "ne", "zh-Hans", "zh-Hant"}

type Config struct {
	// Languages overrides DefaultLanguages when non-empty.
	Languages []string `json:"languages"`
}
