package transcript

import (
	"context"

	"github.com/notetube/transcript-api/models"
	"github.com/notetube/transcript-api/youtube"
	"github.com/sirupsen/logrus"
)

// APIFetcher is the primary transcript source, the third-party library
// wrapper.
type APIFetcher interface {
	FetchTranscript(ctx context.Context, videoID string, languages []string) (text, lang string, err error)
}

// TimedTextFetcher is the fallback source, the raw caption-XML scrape. An
// empty return means the language is unavailable.
type TimedTextFetcher interface {
	Fetch(ctx context.Context, videoID, lang, tlang string) string
}

type service struct {
	api       APIFetcher
	timedtext TimedTextFetcher
	config    Config
	logger    *logrus.Logger
}

func NewService(api APIFetcher, timedtext TimedTextFetcher, config Config, logger *logrus.Logger) Service {
	if len(config.Languages) == 0 {
		config.Languages = DefaultLanguages
	}
	return &service{
		api:       api,
		timedtext: timedtext,
		config:    config,
		logger:    logger,
	}
}

// strategy is one retrieval stage. A true second return means the result is
// final, whether it carries text or a terminal failure tag; false means the
// stage came up empty and the next one should run.
type strategy struct {
	name    string
	attempt func(ctx context.Context, videoID string) (models.TranscriptResult, bool)
}

func (s *service) Fetch(ctx context.Context, videoID string) models.TranscriptResult {
	const op = "TranscriptService.Fetch"
	logger := s.logger.WithFields(logrus.Fields{
		"operation": op,
		"video_id":  videoID,
	})

	strategies := []strategy{
		{name: "transcript_api", attempt: s.tryAPI},
		{name: "timedtext", attempt: s.tryTimedText},
		{name: "timedtext_translated", attempt: s.tryTranslated},
	}

	for _, st := range strategies {
		if result, done := st.attempt(ctx, videoID); done {
			return result
		}
		logger.WithField("strategy", st.name).Warn("Strategy yielded nothing, continuing")
	}

	logger.Warn("All transcript sources exhausted")
	return models.TranscriptResult{Source: models.SourceExhausted}
}

func (s *service) tryAPI(ctx context.Context, videoID string) (models.TranscriptResult, bool) {
	logger := s.logger.WithField("video_id", videoID)

	text, lang, err := s.api.FetchTranscript(ctx, videoID, s.config.Languages)
	if err == nil {
		logger.WithField("language", lang).Info("Transcript retrieved from API")
		return models.TranscriptResult{
			Text:         text,
			LanguageCode: lang,
			Source:       models.SourceAPI,
		}, true
	}

	if !youtube.IsNoCaptions(err) {
		// Unrecognized failure: terminal, no fallback.
		logger.WithError(err).Error("Transcript API failed unexpectedly")
		return models.TranscriptResult{Source: models.ErrorSource(err)}, true
	}

	logger.WithError(err).Warn("Transcript API has no captions, falling back to timedtext")
	return models.TranscriptResult{}, false
}

func (s *service) tryTimedText(ctx context.Context, videoID string) (models.TranscriptResult, bool) {
	for _, lang := range s.config.Languages {
		if text := s.timedtext.Fetch(ctx, videoID, lang, ""); text != "" {
			s.logger.WithFields(logrus.Fields{
				"video_id": videoID,
				"language": lang,
			}).Info("Transcript retrieved from timedtext")
			return models.TranscriptResult{
				Text:         text,
				LanguageCode: lang,
				Source:       models.SourceTimedText,
			}, true
		}
	}
	return models.TranscriptResult{}, false
}

func (s *service) tryTranslated(ctx context.Context, videoID string) (models.TranscriptResult, bool) {
	text := s.timedtext.Fetch(ctx, videoID, "auto", "en")
	if text == "" {
		return models.TranscriptResult{}, false
	}

	s.logger.WithField("video_id", videoID).Info("Transcript retrieved from translated timedtext")
	return models.TranscriptResult{
		Text:         text,
		LanguageCode: models.LanguageAutoTranslated,
		Source:       models.SourceTimedTextTranslated,
	}, true
}
