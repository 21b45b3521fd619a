package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	_ "modernc.org/sqlite"
)

func newTestServer(t *testing.T, migrate bool) *httptest.Server {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "sync.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	srv := New(db)
	if migrate {
		if err := srv.Migrate(context.Background()); err != nil {
			t.Fatalf("migrate: %v", err)
		}
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, body string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var out map[string]any
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			t.Fatalf("decode %q: %v", raw, err)
		}
	}
	return resp.StatusCode, out
}

func TestAuthAnonymous(t *testing.T) {
	ts := newTestServer(t, true)

	status, out := doJSON(t, http.MethodPost, ts.URL+"/auth/anonymous", "")
	if status != http.StatusOK {
		t.Fatalf("status=%d, want 200", status)
	}
	if id, _ := out["player_id"].(string); id == "" {
		t.Fatalf("response = %v, want a player_id", out)
	}
}

func TestRecordCRUD(t *testing.T) {
	ts := newTestServer(t, true)
	url := ts.URL + "/players/p1/records/arise_stats"

	// Missing record answers the NOT_FOUND envelope.
	status, out := doJSON(t, http.MethodGet, url, "")
	if status != http.StatusNotFound || out["code"] != "NOT_FOUND" {
		t.Fatalf("missing record = %d %v", status, out)
	}

	status, _ = doJSON(t, http.MethodPut, url, `{"level":3,"coins":50}`)
	if status != http.StatusOK {
		t.Fatalf("write status=%d", status)
	}

	status, out = doJSON(t, http.MethodGet, url, "")
	if status != http.StatusOK || out["level"].(float64) != 3 {
		t.Fatalf("read back = %d %v", status, out)
	}

	// Overwrite wins.
	if status, _ = doJSON(t, http.MethodPut, url, `{"level":4}`); status != http.StatusOK {
		t.Fatalf("overwrite status=%d", status)
	}
	_, out = doJSON(t, http.MethodGet, url, "")
	if out["level"].(float64) != 4 {
		t.Fatalf("overwrite lost: %v", out)
	}

	// Delete, then the record is gone. Deleting again is still OK.
	if status, _ = doJSON(t, http.MethodDelete, url, ""); status != http.StatusOK {
		t.Fatalf("delete status=%d", status)
	}
	if status, _ = doJSON(t, http.MethodGet, url, ""); status != http.StatusNotFound {
		t.Fatalf("deleted record still readable: %d", status)
	}
	if status, _ = doJSON(t, http.MethodDelete, url, ""); status != http.StatusOK {
		t.Fatalf("repeat delete status=%d", status)
	}
}

func TestRecordWriteRejectsInvalidJSON(t *testing.T) {
	ts := newTestServer(t, true)

	status, out := doJSON(t, http.MethodPut, ts.URL+"/players/p1/records/k", `{broken`)
	if status != http.StatusBadRequest || out["code"] != "BAD_REQUEST" {
		t.Fatalf("invalid JSON = %d %v", status, out)
	}
}

func TestRecordsIsolatedPerPlayer(t *testing.T) {
	ts := newTestServer(t, true)

	if status, _ := doJSON(t, http.MethodPut, ts.URL+"/players/p1/records/k", `"v1"`); status != http.StatusOK {
		t.Fatalf("write status=%d", status)
	}
	if status, _ := doJSON(t, http.MethodGet, ts.URL+"/players/p2/records/k", ""); status != http.StatusNotFound {
		t.Fatalf("p2 must not see p1's record: %d", status)
	}
}

func TestClearRecords(t *testing.T) {
	ts := newTestServer(t, true)

	for _, key := range []string{"a", "b"} {
		if status, _ := doJSON(t, http.MethodPut, ts.URL+"/players/p1/records/"+key, `1`); status != http.StatusOK {
			t.Fatalf("write %s status=%d", key, status)
		}
	}
	if status, _ := doJSON(t, http.MethodDelete, ts.URL+"/players/p1/records", ""); status != http.StatusOK {
		t.Fatal("clear failed")
	}
	for _, key := range []string{"a", "b"} {
		if status, _ := doJSON(t, http.MethodGet, ts.URL+"/players/p1/records/"+key, ""); status != http.StatusNotFound {
			t.Fatalf("record %s survived the clear: %d", key, status)
		}
	}
}

func TestWeightLogs(t *testing.T) {
	ts := newTestServer(t, true)
	url := ts.URL + "/players/p1/weight-logs"

	for _, w := range []float64{81, 80.2} {
		status, _ := doJSON(t, http.MethodPost, url, fmt.Sprintf(`{"weight":%v}`, w))
		if status != http.StatusOK {
			t.Fatalf("append %v status=%d", w, status)
		}
	}
	if status, out := doJSON(t, http.MethodPost, url, `{"weight":-1}`); status != http.StatusBadRequest || out["code"] != "BAD_REQUEST" {
		t.Fatalf("negative weight = %d %v", status, out)
	}

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	defer resp.Body.Close()
	var entries []struct {
		Date   string  `json:"date"`
		Weight float64 `json:"weight"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(entries) != 2 || entries[0].Weight != 81 || entries[1].Weight != 80.2 {
		t.Fatalf("entries = %+v, want oldest first", entries)
	}
	if entries[0].Date == "" {
		t.Fatal("entries must carry a date")
	}
}

func TestSchemaMissingBeforeMigrate(t *testing.T) {
	ts := newTestServer(t, false)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/auth/anonymous"},
		{http.MethodGet, "/players/p1/records/k"},
		{http.MethodPut, "/players/p1/records/k"},
		{http.MethodGet, "/players/p1/weight-logs"},
	} {
		body := ""
		if tc.method == http.MethodPut {
			body = `1`
		}
		status, out := doJSON(t, tc.method, ts.URL+tc.path, body)
		if status != http.StatusInternalServerError || out["code"] != "SCHEMA_MISSING" {
			t.Fatalf("%s %s = %d %v, want the SCHEMA_MISSING envelope", tc.method, tc.path, status, out)
		}
	}

	// Health stays up regardless.
	status, out := doJSON(t, http.MethodGet, ts.URL+"/health", "")
	if status != http.StatusOK || out["status"] != "ok" {
		t.Fatalf("health = %d %v", status, out)
	}
}

func TestMetricsExposed(t *testing.T) {
	ts := newTestServer(t, true)

	if status, _ := doJSON(t, http.MethodPost, ts.URL+"/auth/anonymous", ""); status != http.StatusOK {
		t.Fatalf("auth status=%d", status)
	}

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	if !strings.Contains(string(raw), "arise_api_requests_total") {
		t.Fatal("request counter missing from /metrics")
	}
}
