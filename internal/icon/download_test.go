package icon

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var pngBody = append(append([]byte{}, pngMagic...), []byte("fakepixels")...)

func newTestDownloader(t *testing.T, handler http.HandlerFunc) *Downloader {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &Downloader{
		http: &http.Client{Timeout: 2 * time.Second},
		gen: Generator{
			IconBase:    srv.URL + "/images/icons/",
			FaviconBase: srv.URL + "/faviconV2?url=",
		},
	}
}

func TestValidateImage(t *testing.T) {
	htmlPage := []byte("<!DOCTYPE HTML>\n<html><body>Not Found</body></html>")
	svgBody := []byte(`<?xml version="1.0"?><svg xmlns="..."><path/></svg>`)

	cases := []struct {
		name     string
		data     []byte
		filename string
		want     bool
	}{
		{"empty body", nil, "a.png", false},
		{"html page with png name", htmlPage, "a.png", false},
		{"html page with svg name", htmlPage, "a.svg", false},
		{"valid png", pngBody, "a.png", true},
		{"bad bytes for png", []byte("GIF89a..."), "a.png", false},
		{"valid jpeg", []byte{0xff, 0xd8, 0xff, 0xe0, 1, 2}, "a.jpg", true},
		{"truncated jpeg marker", []byte{0xff, 0xd8}, "a.jpeg", false},
		{"valid svg", svgBody, "a.svg", true},
		{"svg missing closing tag", []byte("<svg><path/>"), "a.svg", false},
		{"unknown extension passes", []byte("solid bytes"), "a.ico", true},
	}
	for _, tc := range cases {
		if got := validateImage(tc.data, tc.filename); got != tc.want {
			t.Fatalf("%s: validateImage = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestFetchStopsAtFirstValid(t *testing.T) {
	requests := 0
	d := newTestDownloader(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		// Curated Mistral.png plus the .svg heuristic both 404; the .jpg
		// heuristic would never be reached because the favicon candidate
		// for the curated domain comes earlier and succeeds.
		if strings.HasPrefix(r.URL.Path, "/faviconV2") || r.URL.RawQuery != "" {
			w.Write(pngBody)
			return
		}
		http.NotFound(w, r)
	})

	cacheDir := t.TempDir()
	entry := d.Fetch("Mistral", cacheDir)
	if entry.Status != StatusSuccess {
		t.Fatalf("expected success, got %#v", entry)
	}
	if entry.Filename != "Mistral.png" {
		t.Fatalf("unexpected filename %q", entry.Filename)
	}
	if entry.URL == "" || entry.Timestamp == 0 {
		t.Fatalf("success entry missing provenance: %#v", entry)
	}
	data, err := os.ReadFile(filepath.Join(cacheDir, "icons", entry.Filename))
	if err != nil {
		t.Fatalf("icon file not written: %v", err)
	}
	if string(data) != string(pngBody) {
		t.Fatal("icon file content mismatch")
	}
	// Candidate order: curated CDN (404), then the curated favicon hit.
	if requests != 2 {
		t.Fatalf("expected fetch to stop at first success, made %d requests", requests)
	}
}

func TestFetchRejectsHTMLErrorPage(t *testing.T) {
	d := newTestDownloader(t, func(w http.ResponseWriter, r *http.Request) {
		// A misbehaving server: 200 with an HTML body for every URL.
		w.Write([]byte("<html><body>404</body></html>"))
	})

	entry := d.Fetch("Mistral", t.TempDir())
	if entry.Status != StatusFailed {
		t.Fatalf("expected failure when every body is HTML, got %#v", entry)
	}
	if entry.Filename != "" || entry.URL != "" {
		t.Fatalf("failed entry must not carry filename/url: %#v", entry)
	}
}

func TestFetchAllBatches(t *testing.T) {
	d := newTestDownloader(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	results := d.FetchAll([]string{"Alpha", "Beta", "Gamma"}, t.TempDir())
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for name, entry := range results {
		if entry.Provider != name || entry.Status != StatusFailed {
			t.Fatalf("unexpected entry for %s: %#v", name, entry)
		}
	}
}

func TestFetchAllSingleProvider(t *testing.T) {
	d := newTestDownloader(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	results := d.FetchAll([]string{"Solo"}, t.TempDir())
	if len(results) != 1 || results["Solo"].Status != StatusFailed {
		t.Fatalf("unexpected results %#v", results)
	}
}
