package youtube

import (
	"context"
	"fmt"
	"strings"

	"github.com/horiagug/youtube-transcript-api-go/pkg/yt_transcript"
	"github.com/notetube/transcript-api/models"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// The transcript library reports failures as flat error values. They are
// classified into these three conditions; anything else is unrecognized and
// callers treat it as terminal.
var (
	ErrTranscriptsDisabled = errors.New("transcripts are disabled")
	ErrNoTranscriptFound   = errors.New("no transcript found")
	ErrRetrievalFailed     = errors.New("could not retrieve transcript")
)

// IsNoCaptions reports whether err is one of the three recognized
// no-captions conditions, the ones that allow falling back to timedtext.
func IsNoCaptions(err error) bool {
	return errors.Is(err, ErrTranscriptsDisabled) ||
		errors.Is(err, ErrNoTranscriptFound) ||
		errors.Is(err, ErrRetrievalFailed)
}

// APIClient fetches transcripts through the youtube-transcript-api library.
type APIClient struct {
	logger *logrus.Logger
}

func NewAPIClient(logger *logrus.Logger) *APIClient {
	return &APIClient{logger: logger}
}

// FetchTranscript asks the library for the best transcript among languages,
// in priority order. It returns the space-joined text and the language code
// of the chosen track. The library call has no context support, so it runs
// in a goroutine raced against ctx.
func (c *APIClient) FetchTranscript(ctx context.Context, videoID string, languages []string) (string, string, error) {
	type result struct {
		text string
		lang string
		err  error
	}

	resultCh := make(chan result, 1)

	go func() {
		client := yt_transcript.NewClient()
		transcripts, err := client.GetTranscripts(videoID, languages)
		if err != nil {
			resultCh <- result{err: classify(err)}
			return
		}
		if len(transcripts) == 0 || len(transcripts[0].Lines) == 0 {
			resultCh <- result{err: fmt.Errorf("%w: empty transcript list", ErrNoTranscriptFound)}
			return
		}

		track := transcripts[0]
		segments := make([]models.Segment, len(track.Lines))
		for i, line := range track.Lines {
			segments[i] = models.Segment{
				Text:     line.Text,
				Start:    line.Start,
				Duration: line.Duration,
			}
		}

		lang := track.LanguageCode
		if lang == "" {
			lang = "unknown"
		}

		resultCh <- result{text: models.JoinSegments(segments), lang: lang}
	}()

	select {
	case <-ctx.Done():
		c.logger.WithFields(logrus.Fields{
			"video_id": videoID,
		}).WithError(ctx.Err()).Warn("Transcript API call abandoned")
		return "", "", fmt.Errorf("%w: %v", ErrRetrievalFailed, ctx.Err())
	case res := <-resultCh:
		return res.text, res.lang, res.err
	}
}

// classify maps a library error onto the recognized conditions by message.
// Unmatched errors pass through untouched.
func classify(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "disabled"):
		return fmt.Errorf("%w: %v", ErrTranscriptsDisabled, err)
	case strings.Contains(msg, "no transcript"), strings.Contains(msg, "not found"):
		return fmt.Errorf("%w: %v", ErrNoTranscriptFound, err)
	case strings.Contains(msg, "could not retrieve"),
		strings.Contains(msg, "failed to"),
		strings.Contains(msg, "unable to"),
		strings.Contains(msg, "context canceled"),
		strings.Contains(msg, "context deadline exceeded"):
		return fmt.Errorf("%w: %v", ErrRetrievalFailed, err)
	}
	return err
}
