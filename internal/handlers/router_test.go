package handlers_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"vessels/db"
	"vessels/internal/handlers"
	"vessels/internal/metrics"
	"vessels/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiClient struct {
	t   *testing.T
	srv *httptest.Server
}

func (c apiClient) do(method, path, body string) (int, []byte) {
	c.t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, c.srv.URL+path, r)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.srv.Client().Do(req)
	require.NoError(c.t, err)
	defer res.Body.Close()
	out, err := io.ReadAll(res.Body)
	require.NoError(c.t, err)
	return res.StatusCode, out
}

func (c apiClient) create(path, body string) int64 {
	c.t.Helper()
	status, out := c.do(http.MethodPost, path, body)
	require.Equal(c.t, http.StatusCreated, status, string(out))
	var rec struct {
		ID int64 `json:"id"`
	}
	require.NoError(c.t, json.Unmarshal(out, &rec))
	return rec.ID
}

func newAPI(t *testing.T, now time.Time) (apiClient, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	log, _ := test.NewNullLogger()

	svc := service.New(db.NewMemoryStorage(),
		service.WithClock(func() time.Time { return now }),
		service.WithLogger(log),
		service.WithMetrics(m),
	)
	router := handlers.NewRouter(handlers.NewHandler(svc, log), m, metrics.Handler(reg))
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return apiClient{t: t, srv: srv}, reg
}

func TestRouter_HarbourDetailsFlow(t *testing.T) {
	now := time.Date(2026, time.May, 26, 10, 15, 30, 0, time.UTC)
	api, _ := newAPI(t, now)

	companyID := api.create("/api/companies", `{"name":"Stark Industries"}`)
	shipID := api.create("/api/ships", fmt.Sprintf(`{"company":%d,"name":"USS Quinjet","type":"submarine","year_built":"1998"}`, companyID))
	harbourID := api.create("/api/harbours", `{"name":"Sydney Harbour","city":"Sydney","country":"Australia"}`)
	api.create("/api/visits", fmt.Sprintf(`{"ship":%d,"harbour":%d,"entry_time":"%s","exit_time":"%s"}`,
		shipID, harbourID,
		now.Add(-4*24*time.Hour).Format(time.RFC3339),
		now.Add(2*24*time.Hour).Format(time.RFC3339)))

	status, body := api.do(http.MethodGet, fmt.Sprintf("/api/harbours/%d/details", harbourID), "")
	require.Equal(t, http.StatusOK, status)

	var details struct {
		Name         string `json:"name"`
		CurrentShips []struct {
			Name string `json:"name"`
			Age  int    `json:"age"`
		} `json:"current_ships"`
	}
	require.NoError(t, json.Unmarshal(body, &details))
	assert.Equal(t, "Sydney Harbour", details.Name)
	require.Len(t, details.CurrentShips, 1)
	assert.Equal(t, "USS Quinjet", details.CurrentShips[0].Name)
	assert.Equal(t, 28, details.CurrentShips[0].Age)

	status, body = api.do(http.MethodGet, "/api/harbours", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, fmt.Sprintf(`[{"id":%d,"name":"Sydney Harbour","max_berth_depth":null}]`, harbourID), string(body))

	status, body = api.do(http.MethodGet, fmt.Sprintf("/api/ships/%d/visits", shipID), "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"harbour_name":"Sydney Harbour"`)
}

func TestRouter_ErrorsAndCascade(t *testing.T) {
	api, reg := newAPI(t, time.Now())

	status, body := api.do(http.MethodPost, "/api/ships", `{"company":42}`)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), `"code":"reference"`)

	status, body = api.do(http.MethodGet, "/api/ships/42", "")
	require.Equal(t, http.StatusNotFound, status)
	assert.JSONEq(t, `{"error":"Ship not found"}`, string(body))

	companyID := api.create("/api/companies", `{"name":""}`)
	shipID := api.create("/api/ships", fmt.Sprintf(`{"company":%d,"name":"Quinjet"}`, companyID))

	status, body = api.do(http.MethodPatch, fmt.Sprintf("/api/ships/%d", shipID), `{"year_built":"abcd"}`)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), "abcd is not a valid number.")

	status, _ = api.do(http.MethodDelete, fmt.Sprintf("/api/companies/%d", companyID), "")
	require.Equal(t, http.StatusNoContent, status)

	status, body = api.do(http.MethodGet, "/api/ships", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))

	status, body = api.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `vtso_records_deleted_total{entity="Company"} 1`)
	assert.Contains(t, string(body), `route="/api/ships/{shipId}"`)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
