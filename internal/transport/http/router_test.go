package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yhstat/internal/config"
	"yhstat/internal/dataset"
	"yhstat/internal/services"
	"yhstat/pkg/contracts/domain"
)

func testRouter(t *testing.T, snap *dataset.Snapshot) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.Default()
	cfg.RateLimit.Enabled = false
	return NewRouter(RouterDeps{
		Config: cfg,
		Logger: logger,
		Stats:  services.NewStatsService(snap, logger),
		Cohort: services.NewCohortService(snap, logger),
	})
}

func testSnapshot() *dataset.Snapshot {
	snap := dataset.NewSnapshot()
	snap.Base = dataset.NewFrame(domain.RequiredColumns, nil)
	snap.Records = []domain.ApplicationRecord{
		{Region: "Skåne", EducationArea: "Data/IT", Provider: "Anordnare A", Decision: domain.DecisionApproved, RequestedSeats: 30, GrantedSeats: 30},
		{Region: "Blekinge", EducationArea: "Teknik", Provider: "Anordnare B", Decision: domain.DecisionRejected, RequestedSeats: 20},
	}
	snap.Cohort = []domain.CohortRecord{
		{Gender: domain.GenderWomen, EducationArea: domain.TotalsSentinel, AgeGroup: domain.TotalsSentinel, YearCounts: map[int]float64{2020: 590, 2021: 700}},
		{Gender: domain.GenderMen, EducationArea: domain.TotalsSentinel, AgeGroup: domain.TotalsSentinel, YearCounts: map[int]float64{2020: 410, 2021: 300}},
	}
	snap.RegionCodes = map[string]string{"Skåne län": "12", "Blekinge län": "10"}
	return snap
}

func doGet(t *testing.T, h http.Handler, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var body map[string]any
	if rr.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	}
	return rr, body
}

func TestHealthz(t *testing.T) {
	rr, body := doGet(t, testRouter(t, testSnapshot()), "/healthz")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["snapshot_id"])
}

func TestMetricsEndpoint(t *testing.T) {
	h := testRouter(t, testSnapshot())

	// Drive one request so the counters exist, then scrape.
	doGet(t, h, "/healthz")
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "yhstat_http_requests_total")
}

func TestGetNationalStatistics(t *testing.T) {
	rr, body := doGet(t, testRouter(t, testSnapshot()), "/api/statistics/national")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "success", body["status"])

	data := body["data"].(map[string]any)
	stats := data["statistics"].(map[string]any)
	assert.Equal(t, "Sverige", stats["scope"])
	assert.InDelta(t, 2, stats["total_courses"], 1e-9)
	assert.Len(t, data["breakdown"], 2)
}

func TestGetCountyStatistics(t *testing.T) {
	h := testRouter(t, testSnapshot())

	t.Run("known county", func(t *testing.T) {
		rr, body := doGet(t, h, "/api/statistics/county/Blekinge")
		require.Equal(t, http.StatusOK, rr.Code)
		stats := body["data"].(map[string]any)["statistics"].(map[string]any)
		assert.Equal(t, "Blekinge", stats["scope"])
	})

	t.Run("unknown county is 404", func(t *testing.T) {
		rr, body := doGet(t, h, "/api/statistics/county/Atlantis")
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "not_found", body["type"])
	})
}

func TestGetCounties(t *testing.T) {
	rr, body := doGet(t, testRouter(t, testSnapshot()), "/api/statistics/counties")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.InDelta(t, 2, body["count"], 1e-9)
	assert.Equal(t, []any{"Blekinge", "Skåne"}, body["data"])
}

func TestGetProviders(t *testing.T) {
	h := testRouter(t, testSnapshot())

	rr, body := doGet(t, h, "/api/providers")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.InDelta(t, 2, body["count"], 1e-9)

	t.Run("single provider", func(t *testing.T) {
		rr, body := doGet(t, h, "/api/providers/Anordnare%20A")
		require.Equal(t, http.StatusOK, rr.Code)
		view := body["data"].(map[string]any)
		assert.Equal(t, "Anordnare A", view["provider"])
		assert.Equal(t, "1 av 2", view["rank_label"])
	})

	t.Run("unknown provider is 404", func(t *testing.T) {
		rr, _ := doGet(t, h, "/api/providers/Finns%20inte")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestGetRegionRoutes(t *testing.T) {
	h := testRouter(t, testSnapshot())

	rr, body := doGet(t, h, "/api/regions/codes")
	require.Equal(t, http.StatusOK, rr.Code)
	codes := body["data"].(map[string]any)
	assert.Equal(t, "12", codes["Skåne län"])

	rr, body = doGet(t, h, "/api/regions/matches")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.InDelta(t, 2, body["count"], 1e-9)
}

func TestCohortRoutes(t *testing.T) {
	h := testRouter(t, testSnapshot())

	t.Run("years", func(t *testing.T) {
		rr, body := doGet(t, h, "/api/cohort/years")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, []any{float64(2020), float64(2021)}, body["data"])
	})

	t.Run("gender ratio", func(t *testing.T) {
		rr, body := doGet(t, h, "/api/cohort/gender-ratio?year=2020")
		require.Equal(t, http.StatusOK, rr.Code)
		ratio := body["data"].(map[string]any)
		assert.Equal(t, "3:2", ratio["ratio"])
	})

	t.Run("growth", func(t *testing.T) {
		rr, body := doGet(t, h, "/api/cohort/growth?year=2021")
		require.Equal(t, http.StatusOK, rr.Code)
		growth := body["data"].(map[string]any)
		assert.Equal(t, "normal", growth["state"])
	})

	t.Run("missing year parameter is 400", func(t *testing.T) {
		rr, body := doGet(t, h, "/api/cohort/observations")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "bad_request", body["type"])
	})

	t.Run("non-integer year is 400", func(t *testing.T) {
		rr, _ := doGet(t, h, "/api/cohort/growth?year=tjugo")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown year is 404", func(t *testing.T) {
		rr, _ := doGet(t, h, "/api/cohort/gender-ratio?year=1999")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
