package models

import "strings"

// Source identifies which retrieval stage produced (or failed to produce) a
// transcript. It is returned to the caller verbatim for diagnostics.
type Source string

const (
	// SourceAPI means the third-party transcript library answered.
	SourceAPI Source = "YouTubeTranscriptAPI"

	// SourceTimedText means the direct timedtext XML scrape answered.
	SourceTimedText Source = "YouTubeTimedText"

	// SourceTimedTextTranslated means the final auto→en translated scrape answered.
	SourceTimedTextTranslated Source = "YouTubeTimedTextTranslated"

	// SourceExhausted means every stage of the fallback chain came up empty.
	SourceExhausted Source = "YouTubeRequestFailed"

	// SourceServerError tags responses produced by the handler-level safety net.
	SourceServerError Source = "ServerError"
)

// LanguageAutoTranslated is the language label reported for the translated
// fallback, which requests source "auto" and target "en".
const LanguageAutoTranslated = "auto→en"

// ErrorSource builds the source tag for an unrecognized upstream failure.
func ErrorSource(err error) Source {
	return Source("Error: " + err.Error())
}

// Segment is a single timed fragment of caption text. Segments only exist
// while a transcript is being assembled; callers receive joined text.
type Segment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// JoinSegments concatenates segment texts in order, space-separated.
func JoinSegments(segments []Segment) string {
	texts := make([]string, len(segments))
	for i, s := range segments {
		texts[i] = s.Text
	}
	return strings.Join(texts, " ")
}

// TranscriptResult is the outcome of one fetch: transcript text, the language
// it was served in, and the source tag naming the stage that produced it.
// Text and Source are always set together: an empty Text carries a tag naming
// the failure, never a success tag.
type TranscriptResult struct {
	Text         string `json:"text,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
	Source       Source `json:"source"`
}

// HasText reports whether the fetch produced usable transcript text.
func (r TranscriptResult) HasText() bool { return r.Text != "" }

// TranscriptResponse is the success body of POST /transcript.
type TranscriptResponse struct {
	Transcript   string `json:"transcript"`
	LanguageCode string `json:"language_code"`
	Source       Source `json:"source"`
}

// ErrorResponse is the body of JSON error replies (404 and the 500 safety net).
type ErrorResponse struct {
	Error  string `json:"error"`
	Source Source `json:"source"`
}

// NewTranscriptResponse creates the API response for a successful result.
func NewTranscriptResponse(r TranscriptResult) TranscriptResponse {
	return TranscriptResponse{
		Transcript:   r.Text,
		LanguageCode: r.LanguageCode,
		Source:       r.Source,
	}
}
