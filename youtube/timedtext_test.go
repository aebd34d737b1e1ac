package youtube

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testTimedTextClient(t *testing.T, handler http.HandlerFunc) *TimedTextClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewTimedTextClient(5*time.Second, testLogger())
	client.baseURL = srv.URL
	return client
}

func TestFetchJoinsSegments(t *testing.T) {
	var gotReq *http.Request
	client := testTimedTextClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotReq = r.Clone(r.Context())
		w.Write([]byte(`<transcript><text start="0" dur="1.5">Hello</text><text start="1.5" dur="2">world</text></transcript>`))
	})

	got := client.Fetch(context.Background(), "dQw4w9WgXcQ", "en", "")
	if got != "Hello world" {
		t.Fatalf("expected 'Hello world', got %q", got)
	}

	q := gotReq.URL.Query()
	if q.Get("v") != "dQw4w9WgXcQ" {
		t.Errorf("expected v=dQw4w9WgXcQ, got %q", q.Get("v"))
	}
	if q.Get("lang") != "en" {
		t.Errorf("expected lang=en, got %q", q.Get("lang"))
	}
	if q.Has("tlang") {
		t.Error("tlang must be absent when no translation is requested")
	}
	if ua := gotReq.Header.Get("User-Agent"); ua != browserUserAgent {
		t.Errorf("unexpected User-Agent %q", ua)
	}
	if al := gotReq.Header.Get("Accept-Language"); al != "en-US,en;q=0.9" {
		t.Errorf("unexpected Accept-Language %q", al)
	}
	if ref := gotReq.Header.Get("Referer"); ref != "https://www.youtube.com/" {
		t.Errorf("unexpected Referer %q", ref)
	}
}

func TestFetchSendsTranslationParam(t *testing.T) {
	var gotQuery string
	client := testTimedTextClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`<transcript><text start="0" dur="1">hola</text></transcript>`))
	})

	got := client.Fetch(context.Background(), "dQw4w9WgXcQ", "auto", "en")
	if got != "hola" {
		t.Fatalf("expected 'hola', got %q", got)
	}

	req := httptest.NewRequest("GET", "/?"+gotQuery, nil)
	q := req.URL.Query()
	if q.Get("lang") != "auto" {
		t.Errorf("expected lang=auto, got %q", q.Get("lang"))
	}
	if q.Get("tlang") != "en" {
		t.Errorf("expected tlang=en, got %q", q.Get("tlang"))
	}
}

func TestFetchUnavailable(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-200 status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", http.StatusNotFound)
			},
		},
		{
			name:    "empty body",
			handler: func(w http.ResponseWriter, r *http.Request) {},
		},
		{
			name: "whitespace body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("  \n  "))
			},
		},
		{
			name: "malformed XML",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`<transcript><text>broken`))
			},
		},
		{
			name: "document with no text elements",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`<transcript></transcript>`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := testTimedTextClient(t, tt.handler)
			if got := client.Fetch(context.Background(), "dQw4w9WgXcQ", "en", ""); got != "" {
				t.Errorf("expected empty result, got %q", got)
			}
		})
	}
}

func TestFetchDecodesEntities(t *testing.T) {
	client := testTimedTextClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<transcript><text start="0" dur="1">it&amp;#39;s &quot;fine&quot;</text></transcript>`))
	})

	got := client.Fetch(context.Background(), "dQw4w9WgXcQ", "en", "")
	if got != `it's "fine"` {
		t.Errorf(`expected decoded entities, got %q`, got)
	}
}

func TestFetchSkipsEmptySegments(t *testing.T) {
	client := testTimedTextClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<transcript><text start="0" dur="1">Hello</text><text start="1" dur="1"></text><text start="2" dur="1">world</text></transcript>`))
	})

	got := client.Fetch(context.Background(), "dQw4w9WgXcQ", "en", "")
	if got != "Hello world" {
		t.Errorf("expected empty segments skipped, got %q", got)
	}
}
