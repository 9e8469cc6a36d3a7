package gameplay

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func newRouter() http.Handler {
	r := chi.NewRouter()
	r.Route("/leveling", NewHandler().Route)
	return r
}

func do(t *testing.T, method, path, body string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)

	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
	return rec.Code, out
}

func TestXPForLevelRoute(t *testing.T) {
	code, out := do(t, http.MethodGet, "/leveling/fast/xp/10", "")
	if code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if out["xp"] != float64(800) || out["curve"] != "fast" {
		t.Fatalf("unexpected body %v", out)
	}
}

func TestUnknownCurveDegradesToDefault(t *testing.T) {
	code, out := do(t, http.MethodGet, "/leveling/not-a-curve/xp/10", "")
	if code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if out["xp"] != float64(1000) || out["curve"] != "medium-fast" {
		t.Fatalf("unexpected body %v", out)
	}
}

func TestLevelForXPRoute(t *testing.T) {
	for xp, want := range map[string]float64{"999": 9, "1000": 10} {
		code, out := do(t, http.MethodGet, "/leveling/medium-fast/level/"+xp, "")
		if code != http.StatusOK {
			t.Fatalf("status %d", code)
		}
		if out["level"] != want {
			t.Fatalf("xp %s: got level %v, want %v", xp, out["level"], want)
		}
	}
}

func TestBadLevelParam(t *testing.T) {
	code, _ := do(t, http.MethodGet, "/leveling/fast/xp/ten", "")
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestGainRoute(t *testing.T) {
	code, out := do(t, http.MethodPost, "/leveling/gain", `{"level":1,"experience":0,"amount":250,"curve":"fast"}`)
	if code != http.StatusOK {
		t.Fatalf("status %d: %v", code, out)
	}
	if out["level"] != float64(2) || out["experience"] != float64(150) || out["levels_gained"] != float64(1) {
		t.Fatalf("unexpected body %v", out)
	}
	// fast curve threshold of level 3
	if out["next_level_xp"] != float64(21) {
		t.Fatalf("unexpected next level xp %v", out["next_level_xp"])
	}
}

func TestGainRejectsOutOfRange(t *testing.T) {
	bodies := map[string]string{
		"huge amount":     `{"level":1,"experience":0,"amount":9000000000000000000}`,
		"negative amount": `{"level":1,"experience":0,"amount":-5}`,
		"huge experience": `{"level":1,"experience":10000001,"amount":1}`,
		"level above cap": `{"level":101,"experience":0,"amount":1}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/leveling/gain", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			newRouter().ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}
