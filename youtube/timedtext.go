package youtube

import (
	"bytes"
	"context"
	"encoding/xml"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/notetube/transcript-api/models"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const defaultTimedTextURL = "https://www.youtube.com/api/timedtext"

// Headers that make the scrape look like a browser. The endpoint serves
// empty responses to clients it does not like.
const (
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/127.0.0.0 Safari/537.36"
	acceptLanguage = "en-US,en;q=0.9"
	referer        = "https://www.youtube.com/"
)

// TimedTextClient scrapes caption XML from YouTube's internal timedtext
// endpoint. Every failure mode is swallowed: a fetch either yields text or
// it yields nothing, so callers can walk a language list without branching
// on error causes.
type TimedTextClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Logger
	baseURL    string
}

// NewTimedTextClient returns a client whose requests are bounded by timeout
// and paced by a small token bucket so language sweeps stay polite.
func NewTimedTextClient(timeout time.Duration, logger *logrus.Logger) *TimedTextClient {
	return &TimedTextClient{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Every(250*time.Millisecond), 4),
		logger:     logger,
		baseURL:    defaultTimedTextURL,
	}
}

// Fetch retrieves captions for videoID in lang, translated to tlang when
// tlang is non-empty. It returns the space-joined caption text, or "" when
// the language is unavailable for any reason.
func (c *TimedTextClient) Fetch(ctx context.Context, videoID, lang, tlang string) string {
	entry := c.logger.WithFields(logrus.Fields{
		"video_id": videoID,
		"lang":     lang,
	})
	if tlang != "" {
		entry = entry.WithField("tlang", tlang)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		entry.WithError(err).Debug("Timedtext request not attempted")
		return ""
	}

	body, err := c.get(ctx, videoID, lang, tlang)
	if err != nil {
		entry.WithError(err).Warn("Timedtext fetch failed")
		return ""
	}
	if len(bytes.TrimSpace(body)) == 0 {
		entry.Debug("Timedtext returned empty body")
		return ""
	}

	segments, err := parseTimedText(body)
	if err != nil {
		entry.WithError(err).Warn("Timedtext XML parse failed")
		return ""
	}

	texts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s.Text != "" {
			texts = append(texts, s.Text)
		}
	}
	if len(texts) == 0 {
		return ""
	}
	return strings.Join(texts, " ")
}

func (c *TimedTextClient) get(ctx context.Context, videoID, lang, tlang string) ([]byte, error) {
	params := url.Values{}
	params.Set("v", videoID)
	params.Set("lang", lang)
	if tlang != "" {
		params.Set("tlang", tlang)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "building timedtext request")
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept-Language", acceptLanguage)
	req.Header.Set("Referer", referer)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "requesting timedtext")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("timedtext returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading timedtext body")
	}
	return body, nil
}

type timedTextDocument struct {
	XMLName xml.Name        `xml:"transcript"` // <transcript> ... </transcript>
	Texts   []timedTextNode `xml:"text"`       // <text start="x" dur="y"> ... </text>
}

type timedTextNode struct {
	Start    float64 `xml:"start,attr"`
	Duration float64 `xml:"dur,attr"`
	Text     string  `xml:",chardata"`
}

// parseTimedText decodes the caption document. Entities are decoded twice:
// once by the XML decoder and once for the HTML escapes YouTube nests inside
// the character data.
func parseTimedText(body []byte) ([]models.Segment, error) {
	var doc timedTextDocument
	dec := xml.NewDecoder(bytes.NewReader(body))
	dec.Entity = xml.HTMLEntity
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decoding timedtext XML")
	}

	segments := make([]models.Segment, len(doc.Texts))
	for i, t := range doc.Texts {
		segments[i] = models.Segment{
			Text:     html.UnescapeString(t.Text),
			Start:    t.Start,
			Duration: t.Duration,
		}
	}
	return segments, nil
}
