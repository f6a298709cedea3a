package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"revpulse.io/internal/revenue"
	"revpulse.io/internal/stream"
)

type apiClient struct {
	baseURL string
	client  *http.Client
	t       *testing.T
	sim     *revenue.Controller
}

// newTestAPI builds a paused simulation with inert long-delay timers so
// toggling over HTTP has deterministic, single-emission effects.
func newTestAPI(t *testing.T) *apiClient {
	t.Helper()

	t.Setenv("REVPULSE_AUTH_SECRET", "test-secret")

	cfg := revenue.DefaultConfig()
	cfg.TickInterval = time.Hour
	cfg.BurstSpacing = time.Hour
	cfg.DelayMin = time.Hour
	cfg.DelayMax = 2 * time.Hour

	sim, err := revenue.NewController(cfg, nil, revenue.NewGenerator(1), nil)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	t.Cleanup(sim.Close)

	api := New("test", sim, stream.New())
	api.rateBurst = 100
	api.ratePerSec = 100

	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)

	return &apiClient{
		baseURL: srv.URL,
		client:  srv.Client(),
		t:       t,
		sim:     sim,
	}
}

func (c *apiClient) post(path string, body any, headers map[string]string) *http.Response {
	c.t.Helper()
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			c.t.Fatalf("marshal body: %v", err)
		}
	}
	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		c.t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		c.t.Fatalf("do request: %v", err)
	}
	return resp
}

func (c *apiClient) get(path string, params url.Values) *http.Response {
	c.t.Helper()
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		c.t.Fatalf("parse url: %v", err)
	}
	if params != nil {
		u.RawQuery = params.Encode()
	}
	resp, err := c.client.Get(u.String())
	if err != nil {
		c.t.Fatalf("get request: %v", err)
	}
	return resp
}

func (c *apiClient) obtainToken(user string, roles []string) string {
	c.t.Helper()
	resp := c.post("/v1/auth/token", map[string]any{
		"user":  user,
		"roles": roles,
	}, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		c.t.Fatalf("unexpected token status: %d", resp.StatusCode)
	}
	payload := decode[tokenResponse](c.t, resp)
	if payload.Token == "" {
		c.t.Fatalf("empty token issued")
	}
	return payload.Token
}

func decode[T any](t *testing.T, r *http.Response) T {
	t.Helper()
	defer r.Body.Close()
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestHealthReadyInfo(t *testing.T) {
	c := newTestAPI(t)

	for _, path := range []string{"/healthz", "/readyz", "/v1/info"} {
		resp := c.get(path, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s status = %d", path, resp.StatusCode)
		}
		resp.Body.Close()
	}
}

func TestDashboardWhilePaused(t *testing.T) {
	c := newTestAPI(t)

	resp := c.get("/v1/dashboard", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("dashboard status = %d", resp.StatusCode)
	}
	dash := decode[revenue.Dashboard](t, resp)
	if dash.Live {
		t.Fatal("simulation reported live before start")
	}
	seed := float64(revenue.DefaultConfig().SeedTotal) / 100
	if dash.SettledTotal != seed || dash.DisplayedTotal != seed {
		t.Fatalf("paused dashboard = %+v, want both totals at %v", dash, seed)
	}

	resp = c.get("/v1/transactions", nil)
	feed := decode[transactionsResponse](t, resp)
	if len(feed.Items) != 0 {
		t.Fatalf("feed before start has %d items", len(feed.Items))
	}
}

func TestSimulationToggleAuthz(t *testing.T) {
	c := newTestAPI(t)

	resp := c.post("/v1/simulation/resume", nil, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous resume status = %d, want 401", resp.StatusCode)
	}
	resp.Body.Close()

	viewer := c.obtainToken("viewer-1", []string{"viewer"})
	resp = c.post("/v1/simulation/resume", nil, map[string]string{
		"Authorization": "Bearer " + viewer,
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("viewer resume status = %d, want 403", resp.StatusCode)
	}
	resp.Body.Close()

	operator := c.obtainToken("ops-1", []string{"operator"})
	resp = c.post("/v1/simulation/resume", nil, map[string]string{
		"Authorization": "Bearer " + operator,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("operator resume status = %d, want 200", resp.StatusCode)
	}
	state := decode[simulationResponse](t, resp)
	if !state.Live {
		t.Fatal("simulation not live after resume")
	}

	// The burst head is applied synchronously with the toggle.
	resp = c.get("/v1/dashboard", nil)
	dash := decode[revenue.Dashboard](t, resp)
	if dash.SettledMinor <= revenue.DefaultConfig().SeedTotal {
		t.Fatalf("settled total %d did not grow past the seed", dash.SettledMinor)
	}
	resp = c.get("/v1/transactions", nil)
	feed := decode[transactionsResponse](t, resp)
	if len(feed.Items) != 1 {
		t.Fatalf("feed after resume has %d items, want 1", len(feed.Items))
	}

	resp = c.post("/v1/simulation/pause", nil, map[string]string{
		"Authorization": "Bearer " + operator,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("operator pause status = %d, want 200", resp.StatusCode)
	}
	state = decode[simulationResponse](t, resp)
	if state.Live {
		t.Fatal("simulation live after pause")
	}
}

func TestTokenRequiresUser(t *testing.T) {
	c := newTestAPI(t)
	resp := c.post("/v1/auth/token", map[string]any{"roles": []string{"operator"}}, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("blank user status = %d, want 400", resp.StatusCode)
	}
}

func TestUnknownRouteIs404WithRequestID(t *testing.T) {
	c := newTestAPI(t)
	resp := c.get("/v1/nope", nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Fatal("missing X-Request-ID header")
	}
}
