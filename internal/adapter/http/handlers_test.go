package adapthttp_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	adapthttp "weighttrack/internal/adapter/http"
	"weighttrack/internal/adapter/memory"
	"weighttrack/internal/adapter/notify"
	"weighttrack/internal/app"
)

// ---------------------------------------------------------------------------
// Test-server helpers
// ---------------------------------------------------------------------------

type testClient struct {
	t    *testing.T
	base string
	http *http.Client
}

func newTestServer(t *testing.T) *testClient {
	t.Helper()

	db := memory.New()
	authSvc := app.NewAuthService(db, db.NewSessionRepo())
	accountSvc := app.NewAccountService(db)
	weightSvc := app.NewWeightService(db, db, notify.NewLogNotifier())
	summarySvc := app.NewSummaryService(db, db)

	srv := adapthttp.New(authSvc, accountSvc, weightSvc, summarySvc, adapthttp.OIDCConfig{})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return &testClient{
		t:    t,
		base: ts.URL,
		http: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (c *testClient) do(method, path string, payload any) (int, map[string]any) {
	c.t.Helper()

	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			c.t.Fatal(err)
		}
	}
	req, err := http.NewRequest(method, c.base+path, &body)
	if err != nil {
		c.t.Fatal(err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	var m map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&m)
	return resp.StatusCode, m
}

func (c *testClient) login(username, password string) {
	c.t.Helper()
	if code, body := c.do(http.MethodPost, "/api/auth/register", map[string]any{"username": username, "password": password}); code != http.StatusCreated {
		c.t.Fatalf("register: expected 201, got %d (%v)", code, body)
	}
	if code, body := c.do(http.MethodPost, "/api/auth/login", map[string]any{"username": username, "password": password}); code != http.StatusOK {
		c.t.Fatalf("login: expected 200, got %d (%v)", code, body)
	}
}

func weights(t *testing.T, body map[string]any) []float64 {
	t.Helper()
	items, ok := body["items"].([]any)
	if !ok {
		t.Fatalf("items missing: %v", body)
	}
	out := make([]float64, 0, len(items))
	for _, it := range items {
		out = append(out, it.(map[string]any)["weight"].(float64))
	}
	return out
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestHealthEndpoint(t *testing.T) {
	c := newTestServer(t)

	code, body := c.do(http.MethodGet, "/api/health", nil)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if body["ok"] != true {
		t.Fatalf("expected ok=true, got %v", body["ok"])
	}
}

func TestRegister(t *testing.T) {
	c := newTestServer(t)

	tests := []struct {
		name       string
		payload    map[string]any
		wantStatus int
	}{
		{"valid", map[string]any{"username": "alice", "password": "passw0rd!"}, http.StatusCreated},
		{"duplicate", map[string]any{"username": "alice", "password": "passw0rd!"}, http.StatusConflict},
		{"short username", map[string]any{"username": "al", "password": "passw0rd!"}, http.StatusBadRequest},
		{"weak password", map[string]any{"username": "bobby", "password": "password"}, http.StatusBadRequest},
		{"sso namespace", map[string]any{"username": "https://idp.example.com|alice", "password": "passw0rd!"}, http.StatusBadRequest},
		{"unknown field", map[string]any{"username": "carol", "password": "passw0rd!", "admin": true}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := c.do(http.MethodPost, "/api/auth/register", tt.payload)
			if code != tt.wantStatus {
				t.Fatalf("expected %d, got %d (%v)", tt.wantStatus, code, body)
			}
			if code == http.StatusCreated {
				if _, leaked := body["passwordHash"]; leaked {
					t.Error("password hash leaked in response")
				}
				if body["username"] != "alice" {
					t.Errorf("username = %v", body["username"])
				}
			}
		})
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	c := newTestServer(t)
	c.login("alice", "passw0rd!")

	code, _ := c.do(http.MethodPost, "/api/auth/login", map[string]any{"username": "alice", "password": "wr0ng-pass!"})
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	code, _ = c.do(http.MethodPost, "/api/auth/login", map[string]any{"username": "nobody", "password": "passw0rd!"})
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown user, got %d", code)
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	c := newTestServer(t)

	for _, path := range []string{"/api/me", "/api/entries", "/api/entries/latest", "/api/summary", "/api/account/goal"} {
		code, _ := c.do(http.MethodGet, path, nil)
		if code != http.StatusUnauthorized {
			t.Errorf("GET %s: expected 401, got %d", path, code)
		}
	}
}

func TestLogoutEndsSession(t *testing.T) {
	c := newTestServer(t)
	c.login("alice", "passw0rd!")

	if code, _ := c.do(http.MethodGet, "/api/me", nil); code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", code)
	}
	if code, _ := c.do(http.MethodPost, "/api/auth/logout", nil); code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", code)
	}
	if code, _ := c.do(http.MethodGet, "/api/me", nil); code != http.StatusUnauthorized {
		t.Fatalf("me after logout: expected 401, got %d", code)
	}
}

func TestEntriesFlow(t *testing.T) {
	c := newTestServer(t)
	c.login("alice", "passw0rd!")

	if code, body := c.do(http.MethodPut, "/api/account/goal", map[string]any{"goal": 150}); code != http.StatusOK {
		t.Fatalf("set goal: expected 200, got %d (%v)", code, body)
	}

	entries := []struct {
		date        string
		weight      float64
		goalCrossed bool
	}{
		{"2024-01-01", 150, false},
		{"2024-01-05", 148, true},
		{"2024-01-03", 152, false},
	}
	ids := make([]float64, 0, len(entries))
	for _, e := range entries {
		code, body := c.do(http.MethodPost, "/api/entries", map[string]any{"date": e.date, "weight": e.weight})
		if code != http.StatusCreated {
			t.Fatalf("add %s: expected 201, got %d (%v)", e.date, code, body)
		}
		if body["goalCrossed"] != e.goalCrossed {
			t.Errorf("add %s: goalCrossed = %v, want %v", e.date, body["goalCrossed"], e.goalCrossed)
		}
		ids = append(ids, body["id"].(float64))
	}

	sorts := map[string][]float64{
		"date_newest":        {148, 152, 150},
		"date_oldest":        {150, 152, 148},
		"weight_highest":     {152, 150, 148},
		"weight_lowest":      {148, 150, 152},
		"distance_from_goal": {150, 148, 152},
		"":                   {148, 152, 150},
	}
	for sort, want := range sorts {
		code, body := c.do(http.MethodGet, "/api/entries?sort="+sort, nil)
		if code != http.StatusOK {
			t.Fatalf("list %q: expected 200, got %d", sort, code)
		}
		got := weights(t, body)
		if len(got) != len(want) {
			t.Fatalf("list %q: got %v, want %v", sort, got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("list %q: got %v, want %v", sort, got, want)
				break
			}
		}
	}

	code, body := c.do(http.MethodGet, "/api/entries/latest", nil)
	if code != http.StatusOK {
		t.Fatalf("latest: expected 200, got %d", code)
	}
	if w := body["entry"].(map[string]any)["weight"]; w != 148.0 {
		t.Errorf("latest weight = %v, want 148", w)
	}

	code, body = c.do(http.MethodGet, "/api/summary", nil)
	if code != http.StatusOK {
		t.Fatalf("summary: expected 200, got %d", code)
	}
	if body["remaining"] != -2.0 || body["goalMet"] != true {
		t.Errorf("summary = %v", body)
	}

	code, body = c.do(http.MethodPost, "/api/entries/delete", map[string]any{"ids": ids[:2]})
	if code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", code)
	}
	if body["deleted"] != 2.0 {
		t.Errorf("deleted = %v, want 2", body["deleted"])
	}
	_, body = c.do(http.MethodGet, "/api/entries", nil)
	if got := weights(t, body); len(got) != 1 || got[0] != 152 {
		t.Errorf("after delete: %v, want [152]", got)
	}

	code, body = c.do(http.MethodPost, "/api/entries/delete", map[string]any{"ids": []int64{}})
	if code != http.StatusOK || body["deleted"] != 0.0 {
		t.Errorf("empty delete: %d %v", code, body)
	}
}

func TestEntriesDistanceWithoutGoal(t *testing.T) {
	c := newTestServer(t)
	c.login("alice", "passw0rd!")

	c.do(http.MethodPost, "/api/entries", map[string]any{"date": "2024-01-01", "weight": 150})
	c.do(http.MethodPost, "/api/entries", map[string]any{"date": "2024-01-02", "weight": 149})

	code, body := c.do(http.MethodGet, "/api/entries?sort=distance_from_goal", nil)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if body["goalMissing"] != true {
		t.Errorf("goalMissing = %v, want true", body["goalMissing"])
	}
	if body["sort"] != "date_newest" {
		t.Errorf("sort = %v, want date_newest", body["sort"])
	}
}

func TestEntriesValidation(t *testing.T) {
	c := newTestServer(t)
	c.login("alice", "passw0rd!")

	tests := []struct {
		name       string
		payload    map[string]any
		wantStatus int
	}{
		{"valid", map[string]any{"date": "2024-02-01", "weight": 180.5}, http.StatusCreated},
		{"zero weight", map[string]any{"date": "2024-02-01", "weight": 0}, http.StatusBadRequest},
		{"negative weight", map[string]any{"date": "2024-02-01", "weight": -5}, http.StatusBadRequest},
		{"bad date", map[string]any{"date": "02/01/2024", "weight": 180}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code, body := c.do(http.MethodPost, "/api/entries", tt.payload); code != tt.wantStatus {
				t.Fatalf("expected %d, got %d (%v)", tt.wantStatus, code, body)
			}
		})
	}
}

func TestAccountPhone(t *testing.T) {
	c := newTestServer(t)
	c.login("alice", "passw0rd!")

	code, body := c.do(http.MethodGet, "/api/account/phone", nil)
	if code != http.StatusOK || body["phone"] != nil {
		t.Fatalf("initial phone: %d %v", code, body)
	}
	code, body = c.do(http.MethodPut, "/api/account/phone", map[string]any{"phone": " +1 555-123-4567 "})
	if code != http.StatusOK || body["phone"] != "+1 555-123-4567" {
		t.Fatalf("set phone: %d %v", code, body)
	}
	if code, _ := c.do(http.MethodPut, "/api/account/phone", map[string]any{"phone": "abc"}); code != http.StatusBadRequest {
		t.Fatalf("bad phone: expected 400, got %d", code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	c := newTestServer(t)
	c.login("alice", "passw0rd!")

	tests := []struct {
		method, path string
	}{
		{http.MethodGet, "/api/auth/login"},
		{http.MethodDelete, "/api/entries"},
		{http.MethodGet, "/api/entries/delete"},
		{http.MethodPost, "/api/summary"},
	}
	for _, tt := range tests {
		if code, _ := c.do(tt.method, tt.path, nil); code != http.StatusMethodNotAllowed {
			t.Errorf("%s %s: expected 405, got %d", tt.method, tt.path, code)
		}
	}
}

func TestSSODisabled(t *testing.T) {
	c := newTestServer(t)

	code, body := c.do(http.MethodGet, "/api/auth/config", nil)
	if code != http.StatusOK || body["sso_enabled"] != false {
		t.Fatalf("config: %d %v", code, body)
	}
	if code, _ := c.do(http.MethodGet, "/api/auth/sso/login", nil); code != http.StatusNotFound {
		t.Fatalf("sso login: expected 404, got %d", code)
	}
}
