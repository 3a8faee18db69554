package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/journey/internal/timeline"
)

var testNow = time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	timeNow = func() time.Time { return testNow }

	if err := loadJourney("", ""); err != nil {
		t.Fatalf("loadJourney: %v", err)
	}
	if err := initDB(":memory:"); err != nil {
		t.Fatalf("initDB: %v", err)
	}
	initAdminToken()
	initVisitorTracking()
	return setupRouter()
}

func get(r http.Handler, target string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	// keep test requests out of the visitor table
	req.Header.Set("DNT", "1")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postForm(r http.Handler, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("DNT", "1")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHomePageRendersTimelineForWidth(t *testing.T) {
	r := newTestServer(t)

	tests := []struct {
		name   string
		target string
		mode   string
		svg    bool
	}{
		{"desktop default", "/", "desktop", true},
		{"mobile query", "/?width=500", "mobile", false},
		{"breakpoint is mobile", "/?width=768", "mobile", false},
		{"just above breakpoint", "/?width=769", "desktop", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(r, tt.target)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}
			body := w.Body.String()
			if !strings.Contains(body, `id="journey-timeline"`) {
				t.Fatalf("page has no timeline container")
			}
			if !strings.Contains(body, `data-mode="`+tt.mode+`"`) {
				t.Errorf("expected data-mode %q in page", tt.mode)
			}
			if got := strings.Contains(body, "<svg"); got != tt.svg {
				t.Errorf("svg present = %v, want %v", got, tt.svg)
			}
			if !strings.Contains(body, "Presentation Expert") {
				t.Errorf("expected entry title in page")
			}
		})
	}
}

func TestTimelineFragmentUsesClientHint(t *testing.T) {
	r := newTestServer(t)

	w := get(r, "/timeline", "Sec-CH-Viewport-Width", "400")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := w.Header().Get("X-Timeline-Mode"); got != "mobile" {
		t.Errorf("X-Timeline-Mode = %q, want mobile", got)
	}
	if got := w.Header().Get("Accept-CH"); got != viewportHint {
		t.Errorf("Accept-CH = %q, want %q", got, viewportHint)
	}
	body := w.Body.String()
	if strings.Contains(body, "<html") {
		t.Errorf("fragment should not be a full page")
	}
	if !strings.HasPrefix(body, "<div") {
		t.Errorf("fragment should start with the container, got %.40q", body)
	}
}

func TestTimelineAPI(t *testing.T) {
	r := newTestServer(t)

	w := get(r, "/api/timeline?width=1440")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp struct {
		Mode   string `json:"mode"`
		Width  int    `json:"width"`
		Layout struct {
			Entries []struct {
				Lane     int           `json:"lane"`
				Overflow bool          `json:"overflow"`
				BranchX  float64       `json:"branchX"`
				Bounds   timeline.Rect `json:"bounds"`
				Entry   struct {
					Title string `json:"title"`
				} `json:"entry"`
			} `json:"entries"`
			CenterX float64 `json:"centerX"`
		} `json:"layout"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Mode != "desktop" || resp.Width != 1440 {
		t.Errorf("mode/width = %s/%d, want desktop/1440", resp.Mode, resp.Width)
	}
	if len(resp.Layout.Entries) != len(journey) {
		t.Fatalf("got %d layout entries, want %d", len(resp.Layout.Entries), len(journey))
	}
	entries := resp.Layout.Entries
	for i, a := range entries {
		if a.Lane == 0 {
			t.Errorf("%s placed on the main line", a.Entry.Title)
		}
		for _, b := range entries[i+1:] {
			if a.Overflow || b.Overflow {
				continue
			}
			if a.Bounds.Overlaps(b.Bounds, 0) {
				t.Errorf("%s (lane %d) overlaps %s (lane %d)", a.Entry.Title, a.Lane, b.Entry.Title, b.Lane)
			}
		}
	}

	w = get(r, "/api/timeline?width=320")
	var mobile struct {
		Mode    string            `json:"mode"`
		Entries []json.RawMessage `json:"entries"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &mobile); err != nil {
		t.Fatalf("decode mobile: %v", err)
	}
	if mobile.Mode != "mobile" || len(mobile.Entries) != len(journey) {
		t.Errorf("mobile response = %s with %d entries", mobile.Mode, len(mobile.Entries))
	}
}

func TestViewportWidth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name    string
		target  string
		headers map[string]string
		want    int
	}{
		{"default", "/", nil, defaultViewportWidth},
		{"query", "/?width=900", nil, 900},
		{"query wins over hint", "/?width=900", map[string]string{viewportHint: "300"}, 900},
		{"client hint", "/", map[string]string{viewportHint: "300"}, 300},
		{"legacy hint", "/", map[string]string{"Viewport-Width": "640"}, 640},
		{"garbage falls through", "/?width=wide", map[string]string{viewportHint: "512"}, 512},
		{"non-positive ignored", "/?width=0", nil, defaultViewportWidth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, tt.target, nil)
			for k, v := range tt.headers {
				c.Request.Header.Set(k, v)
			}
			if got := viewportWidth(c); got != tt.want {
				t.Errorf("viewportWidth = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLoadJourneyFromFiles(t *testing.T) {
	dir := t.TempDir()
	entries := filepath.Join(dir, "entries.yaml")
	layout := filepath.Join(dir, "layout.yaml")
	os.WriteFile(entries, []byte(`
- type: education
  startDate: "2019-09"
  endDate: "2023-05"
  title: Bachelor of Computer Science
  organization: Western Governors University
`), 0o644)
	os.WriteFile(layout, []byte("branch_spacing: 120\n"), 0o644)

	if err := loadJourney(entries, layout); err != nil {
		t.Fatalf("loadJourney: %v", err)
	}
	if len(journey) != 1 || journey[0].Title != "Bachelor of Computer Science" {
		t.Errorf("journey = %+v", journey)
	}
	if layoutConfig.BranchSpacing != 120 {
		t.Errorf("BranchSpacing = %v, want 120", layoutConfig.BranchSpacing)
	}

	if err := loadJourney(filepath.Join(dir, "missing.yaml"), ""); err == nil {
		t.Errorf("expected error for missing timeline file")
	}
}

func TestExportTimeline(t *testing.T) {
	timeNow = func() time.Time { return testNow }
	if err := loadJourney("", ""); err != nil {
		t.Fatalf("loadJourney: %v", err)
	}

	tests := []struct {
		name     string
		expanded bool
		want     []string
		absent   []string
	}{
		{
			name: "interactive",
			want: []string{`id="journey-timeline"`, "<svg", `data-mode="desktop"`, "static/timeline.css", "static/journey.js", `x-ref="tags"`, `data-state="collapsed"`},
		},
		{
			name:     "expanded",
			expanded: true,
			want:     []string{`id="journey-timeline"`, "<svg", `data-state="expanded"`},
			absent:   []string{"x-data", "static/journey.js", `data-state="collapsed"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "journey.html")
			if err := exportTimeline(path, 1280, tt.expanded); err != nil {
				t.Fatalf("exportTimeline: %v", err)
			}
			out, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read export: %v", err)
			}
			page := string(out)
			if !strings.HasPrefix(page, "<!DOCTYPE html>") {
				t.Errorf("export should start with a doctype")
			}
			for _, want := range tt.want {
				if !strings.Contains(page, want) {
					t.Errorf("export missing %s", want)
				}
			}
			for _, bad := range tt.absent {
				if strings.Contains(page, bad) {
					t.Errorf("export should not contain %s", bad)
				}
			}
		})
	}
}

func TestHomePageSwapsOnlyAcrossBreakpoint(t *testing.T) {
	r := newTestServer(t)

	body := get(r, "/").Body.String()
	for _, want := range []string{`hx-trigger="journey:breakpoint from:window"`, `data-breakpoint="768"`, "/static/journey.js"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %s", want)
		}
	}
	if strings.Contains(body, "resize from:window") {
		t.Error("timeline should not be refetched on every resize")
	}

	w := get(r, "/static/journey.js")
	if w.Code != http.StatusOK {
		t.Fatalf("journey.js status = %d", w.Code)
	}
	script := w.Body.String()
	for _, want := range []string{"journeyModeChanged", "journey:breakpoint", "attach: attach", "pause: pause"} {
		if !strings.Contains(script, want) {
			t.Errorf("journey.js missing %s", want)
		}
	}
}
