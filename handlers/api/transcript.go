package api

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/notetube/transcript-api/errors"
	"github.com/notetube/transcript-api/models"
	"github.com/notetube/transcript-api/services/transcript"
	"github.com/notetube/transcript-api/youtube"
	"github.com/sirupsen/logrus"
)

type TranscriptHandler struct {
	service transcript.Service
	logger  *logrus.Logger
}

func NewTranscriptHandler(service transcript.Service, logger *logrus.Logger) *TranscriptHandler {
	return &TranscriptHandler{
		service: service,
		logger:  logger,
	}
}

// transcriptRequest distinguishes an absent url key from a present one, so
// the two 400 messages stay distinct.
type transcriptRequest struct {
	URL *string `json:"url"`
}

func (h *TranscriptHandler) HandleGetTranscript(w http.ResponseWriter, r *http.Request) {
	const op = "TranscriptHandler.HandleGetTranscript"

	var req transcriptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == nil {
		respondError(w, r, h.logger, apperrors.InvalidInput(op, err, "Missing YouTube URL"), "")
		return
	}

	videoID, ok := youtube.ExtractVideoID(*req.URL)
	if !ok {
		respondError(w, r, h.logger, apperrors.InvalidInput(op, nil, "Invalid YouTube URL"), "")
		return
	}

	result := h.service.Fetch(r.Context(), videoID)
	if !result.HasText() {
		respondError(w, r, h.logger, apperrors.NotFound(op, nil, "Transcript not available"), result.Source)
		return
	}

	respondJSON(w, r, http.StatusOK, models.NewTranscriptResponse(result))
}
