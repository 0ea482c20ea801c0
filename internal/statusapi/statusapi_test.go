package statusapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"

	"mapedit/internal/catalog"
	"mapedit/internal/geom"
	"mapedit/internal/mapstate"
	"mapedit/internal/session"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	return log
}

func TestHealthz(t *testing.T) {
	m := mapstate.New(geom.Vec3U8{X: 48, Y: 40, Z: 48}, catalog.MustLoad())
	sess := session.New(m, testLogger())
	srv := New(sess, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("expected status=ok, got %q", body["status"])
	}
}

func TestStatsReflectsMapCounters(t *testing.T) {
	m := mapstate.New(geom.Vec3U8{X: 48, Y: 40, Z: 48}, catalog.MustLoad())
	b := mapstate.Block{Model: mapstate.ModelID("PlatformBase"), Coord: geom.Vec3U8{X: 1, Y: 1, Z: 1}, Dir: geom.North}
	if err := m.PlaceBlock(b); err != nil {
		t.Fatalf("placing block: %v", err)
	}

	sess := session.New(m, testLogger())
	srv := New(sess, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var snap statsSnapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if snap.Blocks != 1 {
		t.Fatalf("expected 1 block, got %d", snap.Blocks)
	}
	if snap.Units != 4 {
		t.Fatalf("expected 4 units for PlatformBase's 2x2 footprint, got %d", snap.Units)
	}
}
