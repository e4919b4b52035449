// CohortPulse - Cohort Retention and Claims Payment Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cohortpulse

package api

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cohortpulse/internal/analytics"
	"github.com/tomtom215/cohortpulse/internal/config"
	"github.com/tomtom215/cohortpulse/internal/store"
)

const ordersCSV = "customer_id,order_amount,order_date\n" +
	"C1,100,2024-01-15\n" +
	"C1,50,2024-02-10\n" +
	"C2,200,2024-02-20\n"

const claimsCSV = "claim_id,payer,service_type,service_date,date_paid,billed_amount,amount_paid\n" +
	"A,Aetna,Imaging,2024-01-10,2024-02-05,1000,300\n" +
	"A,Aetna,Imaging,2024-01-10,2024-03-12,1000,200\n" +
	"B,Cigna,Lab,2024-02-20,2024-03-01,500,450\n"

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 3858, Timeout: 30 * time.Second},
		Upload: config.UploadConfig{MaxBytes: 1 << 20, TTL: time.Minute, MaxStored: 8},
		Security: config.SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitDisabled: true,
		},
		Insights: analytics.DefaultInsightThresholds(),
	}
}

func newTestHandler(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	st := store.New(cfg.Upload.TTL, cfg.Upload.MaxStored)
	t.Cleanup(st.Close)
	handler := NewHandler(st, analytics.NewAnalyzer(cfg.Insights), cfg)
	return NewRouter(handler, cfg).Setup()
}

func uploadRequest(t *testing.T, path, filename, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile() error: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

type responseEnvelope struct {
	Status string                 `json:"status"`
	Data   map[string]interface{} `json:"data"`
	Error  *struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Details map[string]interface{} `json:"details"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) responseEnvelope {
	t.Helper()
	var env responseEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response: %v\nbody: %s", err, rec.Body.String())
	}
	return env
}

func TestHealth(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, testConfig())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Status != "success" {
		t.Errorf("envelope status = %q", env.Status)
	}
	if env.Data["status"] != "healthy" {
		t.Errorf("health status = %v, want healthy", env.Data["status"])
	}
}

func TestAnalyze(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, testConfig())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, uploadRequest(t, "/api/v1/analyze", "orders.csv", ordersCSV))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if env.Status != "success" {
		t.Fatalf("envelope status = %q", env.Status)
	}

	summary, ok := env.Data["summary"].(map[string]interface{})
	if !ok {
		t.Fatalf("summary missing: %v", env.Data)
	}
	if summary["total_orders"].(float64) != 3 {
		t.Errorf("total_orders = %v, want 3", summary["total_orders"])
	}

	insights, ok := env.Data["insights"].([]interface{})
	if !ok || len(insights) != 6 {
		t.Errorf("insights = %v, want 6 entries", env.Data["insights"])
	}

	retention, ok := env.Data["retention_table"].(map[string]interface{})
	if !ok {
		t.Fatalf("retention_table missing: %v", env.Data)
	}
	jan, _ := retention["2024-01"].(map[string]interface{})
	if jan["Month 0"].(float64) != 100 {
		t.Errorf("2024-01 Month 0 = %v, want 100", jan["Month 0"])
	}
	feb, _ := retention["2024-02"].(map[string]interface{})
	if v, present := feb["Month 1"]; !present || v != nil {
		t.Errorf("2024-02 Month 1 = %v (present=%v), want null", v, present)
	}
}

func TestAnalyzeValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		content  string
		wantMsg  string
	}{
		{
			"missing columns",
			"orders.csv",
			"order_date,foo\n2024-01-15,x\n",
			"Missing required columns: customer_id, order_amount",
		},
		{
			"invalid dates",
			"orders.csv",
			"customer_id,order_amount,order_date\nC1,10,garbage\n",
			"Found 1 rows with invalid dates",
		},
		{
			"empty file",
			"orders.csv",
			"",
			"File is empty",
		},
		{
			"no data rows",
			"orders.csv",
			"customer_id,order_amount,order_date\n",
			"File contains no data rows",
		},
		{
			"wrong extension",
			"orders.txt",
			ordersCSV,
			"File must be a CSV",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := newTestHandler(t, testConfig())
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, uploadRequest(t, "/api/v1/analyze", tt.filename, tt.content))

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400\nbody: %s", rec.Code, rec.Body.String())
			}
			env := decodeEnvelope(t, rec)
			if env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
				t.Fatalf("error = %+v, want VALIDATION_ERROR", env.Error)
			}
			if env.Error.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", env.Error.Message, tt.wantMsg)
			}
		})
	}
}

func TestAnalyzeNoFile(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, testConfig())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader("not multipart"))
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Error == nil || env.Error.Message != "No file provided" {
		t.Errorf("error = %+v, want No file provided", env.Error)
	}
}

func TestAnalyzePayloadTooLarge(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Upload.MaxBytes = 64
	h := newTestHandler(t, cfg)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, uploadRequest(t, "/api/v1/analyze", "orders.csv", ordersCSV))

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413\nbody: %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if env.Error == nil || env.Error.Code != "PAYLOAD_TOO_LARGE" {
		t.Errorf("error = %+v, want PAYLOAD_TOO_LARGE", env.Error)
	}
}

func TestAnalyzeExportCSV(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, testConfig())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, uploadRequest(t, "/api/v1/analyze/export?format=csv", "orders.csv", ordersCSV))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content type = %q, want text/csv", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "cohort_retention.csv") {
		t.Errorf("content disposition = %q", cd)
	}
	if !strings.HasPrefix(rec.Body.String(), ",Month 0,Month 1") {
		t.Errorf("body starts %q, want pivot header", rec.Body.String()[:30])
	}
}

func TestAnalyzeExportBadFormat(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, testConfig())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, uploadRequest(t, "/api/v1/analyze/export?format=pdf", "orders.csv", ordersCSV))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("error = %+v, want VALIDATION_ERROR", env.Error)
	}
}

func TestClaimsUploadAndWaterfall(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, testConfig())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, uploadRequest(t, "/api/v1/claims/upload", "claims.csv", claimsCSV))
	if rec.Code != http.StatusOK {
		t.Fatalf("upload status = %d\nbody: %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if env.Data["message"] != "File uploaded successfully" {
		t.Errorf("message = %v", env.Data["message"])
	}
	if env.Data["rows"].(float64) != 3 {
		t.Errorf("rows = %v, want 3", env.Data["rows"])
	}
	uploadID, _ := env.Data["upload_id"].(string)
	if uploadID == "" {
		t.Fatal("upload_id missing")
	}
	if _, ok := env.Data["matrix"].([]interface{}); !ok {
		t.Fatalf("waterfall matrix missing: %v", env.Data)
	}
	if _, ok := env.Data["totals"].(map[string]interface{}); !ok {
		t.Fatalf("waterfall totals missing: %v", env.Data)
	}

	// Filtered waterfall query against the stored upload.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/v1/claims/"+uploadID+"/waterfall?payer=Cigna", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("waterfall status = %d\nbody: %s", rec.Code, rec.Body.String())
	}
	env = decodeEnvelope(t, rec)
	matrix, ok := env.Data["matrix"].([]interface{})
	if !ok || len(matrix) != 1 {
		t.Fatalf("filtered matrix = %v, want 1 row", env.Data["matrix"])
	}
	row := matrix[0].(map[string]interface{})
	if row["dos_month"] != "2024-02" {
		t.Errorf("dos_month = %v, want 2024-02", row["dos_month"])
	}
}

func TestClaimsWaterfallUnknownUpload(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, testConfig())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/v1/claims/8f14e45f-ceea-4e67-8f14-e45fceea4e67/waterfall", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Error == nil || env.Error.Code != "NOT_FOUND" {
		t.Errorf("error = %+v, want NOT_FOUND", env.Error)
	}
}

func TestClaimsWaterfallBadUploadID(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, testConfig())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/v1/claims/not-a-uuid/waterfall", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("error = %+v, want VALIDATION_ERROR", env.Error)
	}
}
