package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"skiftlonn/internal/app/server"
	"skiftlonn/internal/platform/config"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error any             `json:"error"`
}

func testConfig(dbURL string) config.Config {
	return config.Config{
		Addr:               ":0",
		DatabaseURL:        dbURL,
		JWTSecret:          "test-secret",
		FrontendDir:        "frontend/dist",
		Environment:        "test",
		SeedAdminEmail:     "admin@test.local",
		SeedAdminPassword:  "ChangeMe123!",
		AllowSelfSignup:    true,
		MigrationsDir:      "../../../../migrations",
		RunMigrations:      true,
		RunSeed:            true,
		MaxBodyBytes:       1048576,
		RateLimitPerMinute: 1000,
		FreeShiftLimit:     5,
		FreeEmployeeLimit:  2,
		CleanupInterval:    0,
		ReferenceYear:      2025,
	}
}

func TestShiftAndWageJourney(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(dbURL)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()
	client := ts.Client()

	email := fmt.Sprintf("journey-%d@example.com", time.Now().UnixNano())
	signup(t, client, ts.URL, email, "Passw0rd!long")
	token := login(t, client, ts.URL, email, "Passw0rd!long")

	saveSettings(t, client, ts.URL, token, map[string]any{
		"usePreset":      true,
		"tariffLevel":    3,
		"pauseDeduction": true,
	})

	shiftID := createShift(t, client, ts.URL, token, "2025-06-02", "08:00", "15:30")
	createShift(t, client, ts.URL, token, "2025-06-07", "10:00", "18:00")

	result := getData(t, client, ts.URL+"/api/v1/shifts/"+shiftID+"/calculation", token)
	var calc struct {
		Hours float64 `json:"hours"`
		Total float64 `json:"total"`
	}
	if err := json.Unmarshal(result, &calc); err != nil {
		t.Fatalf("failed to decode calculation: %v", err)
	}
	if calc.Hours != 7.0 {
		t.Fatalf("expected 7 paid hours after break deduction, got %v", calc.Hours)
	}
	if calc.Total <= 0 {
		t.Fatalf("expected positive total, got %v", calc.Total)
	}

	stats := getData(t, client, ts.URL+"/api/v1/stats/6", token)
	var month struct {
		ShiftCount int     `json:"shiftCount"`
		TotalHours float64 `json:"totalHours"`
	}
	if err := json.Unmarshal(stats, &month); err != nil {
		t.Fatalf("failed to decode month stats: %v", err)
	}
	if month.ShiftCount != 2 {
		t.Fatalf("expected 2 shifts in June, got %d", month.ShiftCount)
	}
	if month.TotalHours <= 0 {
		t.Fatal("expected positive total hours")
	}

	report := getData(t, client, ts.URL+"/api/v1/reports/6", token)
	var register struct {
		Rows []map[string]any `json:"rows"`
	}
	if err := json.Unmarshal(report, &register); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}
	if len(register.Rows) != 2 {
		t.Fatalf("expected 2 register rows, got %d", len(register.Rows))
	}
}

func TestFreeTierLimitsAndPaywall(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(dbURL)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()
	client := ts.Client()

	email := fmt.Sprintf("paywall-%d@example.com", time.Now().UnixNano())
	signup(t, client, ts.URL, email, "Passw0rd!long")
	token := login(t, client, ts.URL, email, "Passw0rd!long")

	for day := 1; day <= cfg.FreeShiftLimit; day++ {
		createShift(t, client, ts.URL, token, fmt.Sprintf("2025-06-%02d", day), "08:00", "16:00")
	}

	status, _ := postJSONStatus(t, client, ts.URL+"/api/v1/shifts", token, map[string]any{
		"date":      "2025-06-20",
		"startTime": "08:00",
		"endTime":   "16:00",
	})
	if status != http.StatusPaymentRequired {
		t.Fatalf("expected 402 past the free shift limit, got %d", status)
	}

	status, _ = getJSONStatus(t, client, ts.URL+"/api/v1/reports/6/export/csv", token)
	if status != http.StatusPaymentRequired {
		t.Fatalf("expected 402 for export on the free tier, got %d", status)
	}

	postJSON(t, client, ts.URL+"/api/v1/subscription/activate", token, map[string]any{})

	status, _ = postJSONStatus(t, client, ts.URL+"/api/v1/shifts", token, map[string]any{
		"date":      "2025-06-20",
		"startTime": "08:00",
		"endTime":   "16:00",
	})
	if status != http.StatusCreated {
		t.Fatalf("expected shift creation to succeed on premium, got %d", status)
	}

	status, _ = getJSONStatus(t, client, ts.URL+"/api/v1/reports/6/export/csv", token)
	if status != http.StatusOK {
		t.Fatalf("expected export to succeed on premium, got %d", status)
	}
}

func TestUsersCannotSeeEachOthersShifts(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(dbURL)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()
	client := ts.Client()

	suffix := time.Now().UnixNano()
	emailA := fmt.Sprintf("owner-%d@example.com", suffix)
	emailB := fmt.Sprintf("other-%d@example.com", suffix)
	signup(t, client, ts.URL, emailA, "Passw0rd!long")
	signup(t, client, ts.URL, emailB, "Passw0rd!long")
	tokenA := login(t, client, ts.URL, emailA, "Passw0rd!long")
	tokenB := login(t, client, ts.URL, emailB, "Passw0rd!long")

	shiftID := createShift(t, client, ts.URL, tokenA, "2025-06-02", "08:00", "16:00")

	status, _ := getJSONStatus(t, client, ts.URL+"/api/v1/shifts/"+shiftID, tokenB)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 for another user's shift, got %d", status)
	}
}

func signup(t *testing.T, client *http.Client, baseURL, email, password string) {
	t.Helper()
	postJSON(t, client, baseURL+"/api/v1/auth/signup", "", map[string]any{
		"email":    email,
		"password": password,
	})
}

func login(t *testing.T, client *http.Client, baseURL, email, password string) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/auth/login", "", map[string]any{
		"email":    email,
		"password": password,
	})
	var payload map[string]any
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	token, _ := payload["token"].(string)
	if token == "" {
		t.Fatal("expected token")
	}
	return token
}

func saveSettings(t *testing.T, client *http.Client, baseURL, token string, body map[string]any) {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal settings: %v", err)
	}
	req, err := http.NewRequest(http.MethodPut, baseURL+"/api/v1/settings", bytes.NewBuffer(raw))
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("settings request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("settings save failed with status %d: %s", resp.StatusCode, string(raw))
	}
}

func createShift(t *testing.T, client *http.Client, baseURL, token, date, start, end string) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/shifts", token, map[string]any{
		"date":      date,
		"startTime": start,
		"endTime":   end,
	})
	var payload map[string]any
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode shift response: %v", err)
	}
	id, _ := payload["id"].(string)
	if id == "" {
		t.Fatal("expected shift id")
	}
	return id
}

func getData(t *testing.T, client *http.Client, url, token string) json.RawMessage {
	t.Helper()
	status, env := getJSONStatus(t, client, url, token)
	if status >= 400 {
		t.Fatalf("unexpected status %d for %s", status, url)
	}
	return env.Data
}

func postJSON(t *testing.T, client *http.Client, url, token string, body any) envelope {
	t.Helper()
	status, env := postJSONStatus(t, client, url, token, body)
	if status >= 400 {
		t.Fatalf("unexpected status %d for %s", status, url)
	}
	return env
}

func postJSONStatus(t *testing.T, client *http.Client, url, token string, body any) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewBuffer(raw)
	}
	req, err := http.NewRequest(http.MethodPost, url, reader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return resp.StatusCode, env
}

func getJSONStatus(t *testing.T, client *http.Client, url, token string) (int, envelope) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	var env envelope
	if len(raw) > 0 && json.Valid(raw) {
		_ = json.Unmarshal(raw, &env)
	}
	return resp.StatusCode, env
}
