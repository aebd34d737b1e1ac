// Package youtube talks to YouTube: it extracts video IDs from URLs and
// retrieves caption data, either through the transcript API library or by
// scraping the raw timedtext endpoint.
package youtube

import "regexp"

var videoIDPattern = regexp.MustCompile(`(?:v=|youtu\.be/)([0-9A-Za-z_-]{11})`)

// ExtractVideoID pulls the 11-character video ID out of a YouTube URL. It
// searches rather than anchors: any string containing v=<id> or youtu.be/<id>
// yields the first such ID. Strings without one report false, never an error.
func ExtractVideoID(url string) (string, bool) {
	m := videoIDPattern.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return m[1], true
}
