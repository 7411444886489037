package api

import (
	"context"
	"distance-compare-service/internal/adapters/mock"
	"distance-compare-service/internal/adapters/repositories"
	"distance-compare-service/internal/api/dto"
	"distance-compare-service/internal/domain"
	"distance-compare-service/internal/platform/db"
	"distance-compare-service/internal/services"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

var (
	coordA  = domain.Coordinate{X: "127.01", Y: "37.01"}
	coordD1 = domain.Coordinate{X: "127.10", Y: "37.10"}
	coordD2 = domain.Coordinate{X: "127.20", Y: "37.20"}
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	conn, err := db.Open(db.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := repositories.InitSchema(context.Background(), conn, repositories.DialectSQLite); err != nil {
		t.Fatalf("init schema: %v", err)
	}

	geo := mock.NewGeocoder(map[string]domain.Coordinate{
		"origin a": coordA,
		"dest 1":   coordD1,
		"dest 2":   coordD2,
	})
	eval := mock.NewRouteEvaluator([]mock.Pair{
		{From: coordA, To: coordD1, DistanceKm: 30.0, DurationMin: 20.0},
		{From: coordA, To: coordD2, DistanceKm: 10.0, DurationMin: 40.0},
	})

	agg := services.NewAggregator(services.NewResolver(geo), eval)
	repo := repositories.NewSQLComparisonRepository(conn, repositories.DialectSQLite)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	srv := httptest.NewServer(NewRouter(agg, repo, logger))
	t.Cleanup(srv.Close)
	return srv
}

func doRequest(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, b
}

const compareBody = `{
	"origins": [{"name": "A", "address": "origin a"}],
	"destinations": [
		{"name": "D1", "address": "dest 1"},
		{"name": "D2", "address": "dest 2"},
		{"name": "Lost", "address": "nowhere"}
	]
}`

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doRequest(t, http.MethodGet, srv.URL+"/health", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if strings.TrimSpace(string(body)) != `{"status":"ok"}` {
		t.Fatalf("body = %s", body)
	}
	if resp.Header.Get("X-Request-Id") == "" {
		t.Fatalf("missing X-Request-Id header")
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	srv := newTestServer(t)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	req.Header.Set("X-Request-Id", "abc123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	resp.Body.Close()

	if got := resp.Header.Get("X-Request-Id"); got != "abc123" {
		t.Fatalf("X-Request-Id = %q, want %q", got, "abc123")
	}
}

func TestCreateComparisonAndReadBack(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doRequest(t, http.MethodPost, srv.URL+"/comparisons", compareBody)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", resp.StatusCode, body)
	}

	var created dto.ComparisonResponse
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if created.Best != "D2" {
		t.Fatalf("best = %q, want D2", created.Best)
	}
	if len(created.Summaries) != 2 || created.Summaries[0].Destination != "D2" || created.Summaries[1].Destination != "D1" {
		t.Fatalf("summaries = %+v, want ranked [D2 D1]", created.Summaries)
	}
	if len(created.Details) != 2 {
		t.Fatalf("details = %+v, want 2 rows", created.Details)
	}
	if len(created.Errors) != 1 || created.Errors[0].Destination != "Lost" {
		t.Fatalf("errors = %+v, want one for Lost", created.Errors)
	}
	if created.ID == 0 {
		t.Fatalf("id = 0, want stored comparison")
	}

	resp, body = doRequest(t, http.MethodGet, fmt.Sprintf("%s/comparisons/%d", srv.URL, created.ID), "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d, want 200: %s", resp.StatusCode, body)
	}

	var fetched dto.ComparisonResponse
	if err := json.Unmarshal(body, &fetched); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if fetched.Best != "D2" || len(fetched.Summaries) != 2 || fetched.Summaries[0].TotalDistanceKm != 10.0 {
		t.Fatalf("fetched = %+v, want stored comparison", fetched)
	}

	resp, body = doRequest(t, http.MethodGet, srv.URL+"/comparisons?limit=5", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d, want 200: %s", resp.StatusCode, body)
	}

	var list dto.ListComparisonsResponse
	if err := json.Unmarshal(body, &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list.Comparisons) != 1 || list.Comparisons[0].ID != created.ID {
		t.Fatalf("list = %+v, want the created comparison", list.Comparisons)
	}
}

func TestCreateComparisonOmitsBestWhenEmpty(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doRequest(t, http.MethodPost, srv.URL+"/comparisons",
		`{"origins":[{"name":"A","address":"origin a"}],"destinations":[]}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", resp.StatusCode, body)
	}
	if strings.Contains(string(body), `"best"`) {
		t.Fatalf("body = %s, want no best field", body)
	}
}

func TestCreateComparisonBadRequests(t *testing.T) {
	srv := newTestServer(t)

	tooMany := func(field string, n int) string {
		rows := make([]string, n)
		for i := range rows {
			rows[i] = fmt.Sprintf(`{"name":"N%d","address":"x"}`, i)
		}
		return fmt.Sprintf(`{"%s":[%s]}`, field, strings.Join(rows, ","))
	}

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed", body: `{"origins":`},
		{name: "unknown field", body: `{"origins":[],"hub":"x"}`},
		{name: "trailing data", body: `{"origins":[]} {}`},
		{name: "too many origins", body: tooMany("origins", 5)},
		{name: "too many destinations", body: tooMany("destinations", 11)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doRequest(t, http.MethodPost, srv.URL+"/comparisons", tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400: %s", resp.StatusCode, body)
			}
		})
	}
}

func TestGetComparisonErrors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		path string
		want int
	}{
		{path: "/comparisons/abc", want: http.StatusBadRequest},
		{path: "/comparisons/0", want: http.StatusBadRequest},
		{path: "/comparisons/999", want: http.StatusNotFound},
		{path: "/comparisons?limit=0", want: http.StatusBadRequest},
		{path: "/comparisons?limit=101", want: http.StatusBadRequest},
		{path: "/nope", want: http.StatusNotFound},
	}

	for _, tt := range tests {
		resp, body := doRequest(t, http.MethodGet, srv.URL+tt.path, "")
		if resp.StatusCode != tt.want {
			t.Fatalf("GET %s status = %d, want %d: %s", tt.path, resp.StatusCode, tt.want, body)
		}
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doRequest(t, http.MethodDelete, srv.URL+"/health", "")
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", resp.StatusCode)
	}
	if resp.Header.Get("Allow") == "" {
		t.Fatalf("missing Allow header")
	}
}

func TestRecoverPanics(t *testing.T) {
	h := wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}), requestID, withLogger(slog.New(slog.NewTextHandler(io.Discard, nil))), accessLog, recoverPanics)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}
