package cli

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/carousel/pkg/cache"
	"github.com/matzehuels/carousel/pkg/pipeline"
	"github.com/matzehuels/carousel/pkg/scene"
)

func newTestServer(t *testing.T) (*server, http.Handler) {
	t.Helper()
	sc, err := scene.Load(writeTestScene(t))
	if err != nil {
		t.Fatal(err)
	}
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(fc, cache.NewDefaultKeyer(), logger)
	t.Cleanup(func() { runner.Close() })

	srv, err := newServer(context.Background(), sc, runner, logger)
	if err != nil {
		t.Fatalf("newServer: %v", err)
	}
	return srv, srv.routes()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServeHealthz(t *testing.T) {
	_, h := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.HasPrefix(rec.Header().Get("Server"), "carousel/") {
		t.Errorf("Server header = %q", rec.Header().Get("Server"))
	}
}

func TestServeLayout(t *testing.T) {
	_, h := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/layout", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var got layoutResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Pass == "" {
		t.Error("pass id should be set")
	}
	if len(got.Targets) != 4 {
		t.Fatalf("got %d targets, want 4", len(got.Targets))
	}
	if got.Targets[0].X != 300 {
		t.Errorf("active item X = %v, want 300", got.Targets[0].X)
	}
}

func TestServeTap(t *testing.T) {
	srv, h := newTestServer(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantActive int
	}{
		{"right half", `{"x": 500, "y": 10}`, http.StatusOK, 1},
		{"left half", `{"x": 10}`, http.StatusOK, 0},
		{"wraps backwards", `{"x": 10}`, http.StatusOK, 3},
		{"no position", `{}`, http.StatusOK, 3},
		{"malformed", `{"x":`, http.StatusBadRequest, 3},
		{"unknown field", `{"z": 1}`, http.StatusBadRequest, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/tap", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body)
			}
			if got := srv.ctrl.ActiveItem(); got != tt.wantActive {
				t.Errorf("active = %d, want %d", got, tt.wantActive)
			}
		})
	}
}

func TestServeConfig(t *testing.T) {
	srv, h := newTestServer(t)

	rec := do(t, h, http.MethodPut, "/config", `{"inactive_scale": 0.5, "active_item": 2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	cfg := srv.ctrl.Config()
	if cfg.InactiveScale != 0.5 || cfg.ActiveItem != 2 {
		t.Errorf("config = %+v", cfg)
	}

	rec = do(t, h, http.MethodPut, "/config", `{"inactive_scale": 3}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid scale: status = %d, want 400", rec.Code)
	}
	var e errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil {
		t.Fatal(err)
	}
	if e.Code == "" {
		t.Error("error code should be set")
	}
	if got := srv.ctrl.Config().InactiveScale; got != 0.5 {
		t.Errorf("rejected update changed inactive scale to %v", got)
	}

	rec = do(t, h, http.MethodPut, "/config", `{"active_item": 9}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("out of range active item: status = %d, want 400", rec.Code)
	}
}

func TestServeRender(t *testing.T) {
	_, h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/render.svg", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q", ct)
	}
	if rec.Header().Get("X-Cache") != "miss" {
		t.Errorf("first render should miss the cache")
	}
	if !strings.HasPrefix(rec.Body.String(), "<svg") {
		t.Errorf("body is not svg: %.40s", rec.Body)
	}

	rec = do(t, h, http.MethodGet, "/render.svg", "")
	if rec.Header().Get("X-Cache") != "hit" {
		t.Errorf("second render should hit the cache")
	}

	do(t, h, http.MethodPost, "/tap", `{"x": 500}`)
	rec = do(t, h, http.MethodGet, "/render.svg?at=100ms&labels=false", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if rec.Header().Get("X-Cache") != "miss" {
		t.Errorf("render after tap should miss the cache")
	}
	if strings.Contains(rec.Body.String(), "Alpha") {
		t.Error("labels=false should omit labels")
	}

	rec = do(t, h, http.MethodGet, "/render.svg?at=soon", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad at: status = %d, want 400", rec.Code)
	}
}

func TestServeSize(t *testing.T) {
	srv, h := newTestServer(t)

	rec := do(t, h, http.MethodPut, "/size", `{"width": 800, "height": 300}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if w, hgt := srv.ctrl.Size(); w != 800 || hgt != 300 {
		t.Errorf("size = %vx%v, want 800x300", w, hgt)
	}
	if pass := srv.ctrl.LastPass(); pass.Targets[0].X != 400 {
		t.Errorf("active X after resize = %v, want 400", pass.Targets[0].X)
	}

	rec = do(t, h, http.MethodPut, "/size", `{"width": -1}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("negative size: status = %d, want 400", rec.Code)
	}
}

func TestStatusFor(t *testing.T) {
	_, h := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown route: status = %d, want 404", rec.Code)
	}
}

func TestServeRing(t *testing.T) {
	_, h := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/ring.svg", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), "Alpha") {
		t.Error("ring diagram should contain item labels")
	}
}
