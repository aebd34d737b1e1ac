package api

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/notetube/transcript-api/errors"
	"github.com/notetube/transcript-api/middleware"
	"github.com/notetube/transcript-api/models"
	"github.com/sirupsen/logrus"
)

// respondJSON writes v with the UTF-8 JSON content type. HTML escaping is
// off so transcript text, non-ASCII included, is written byte-for-byte.
func respondJSON(w http.ResponseWriter, r *http.Request, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		logrus.WithError(err).Error("Failed to encode response")
	}
}

// respondError maps err onto the wire: bad input goes out as plain text,
// everything else as the JSON error shape tagged with source.
func respondError(w http.ResponseWriter, r *http.Request, logger *logrus.Logger, err error, source models.Source) {
	appErr := apperrors.From(err)

	entry := logger.WithFields(logrus.Fields{
		"error":      err,
		"status":     appErr.Code,
		"request_id": middleware.RequestIDFromContext(r.Context()),
		"path":       r.URL.Path,
		"method":     r.Method,
	})

	switch {
	case appErr.Code == http.StatusBadRequest:
		// Caller mistakes are not failures worth alerting on.
		entry.Debug("Rejected request input")
		http.Error(w, appErr.Message, appErr.Code)
		return
	case appErr.Code >= http.StatusInternalServerError:
		entry.Error("Request error")
		source = models.SourceServerError
	default:
		entry.Info("Request completed without transcript")
	}

	respondJSON(w, r, appErr.Code, models.ErrorResponse{
		Error:  appErr.Message,
		Source: source,
	})
}
