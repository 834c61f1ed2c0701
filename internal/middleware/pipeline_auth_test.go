package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	apperrors "apexfinance/internal/errors"
	"apexfinance/internal/logger"
)

const testPipelineKey = "snapshot-key"

func init() {
	gin.SetMode(gin.TestMode)
}

// newPipelineRouter mounts a snapshot endpoint behind the key check and
// reports whether the handler ran.
func newPipelineRouter(apiKey string, reached *bool) *gin.Engine {
	r := gin.New()
	r.Use(PipelineAuthMiddleware(apiKey))
	r.POST("/pipeline/snapshots", func(c *gin.Context) {
		*reached = true
		c.JSON(http.StatusOK, gin.H{"snapshots_recorded": 0})
	})
	return r
}

func postSnapshots(r *gin.Engine, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/pipeline/snapshots", http.NoBody)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response body: %v", err)
	}
	return result
}

func observePipelineLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.WarnLevel)
	t.Cleanup(logger.Replace(zap.New(core)))
	return logs
}

func TestPipelineAuthMiddleware_Envelope(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		header     map[string]string
		want       *apperrors.AppError
	}{
		{name: "accepted", configured: testPipelineKey, header: map[string]string{"X-API-Key": testPipelineKey}},
		{name: "header_name_is_case_insensitive", configured: testPipelineKey, header: map[string]string{"x-api-key": testPipelineKey}},
		{name: "wrong_key", configured: testPipelineKey, header: map[string]string{"X-API-Key": "nope"}, want: apperrors.ErrInvalidAPIKey},
		{name: "prefix_of_key", configured: testPipelineKey, header: map[string]string{"X-API-Key": "snapshot"}, want: apperrors.ErrInvalidAPIKey},
		{name: "key_in_wrong_header", configured: testPipelineKey, header: map[string]string{"Authorization": testPipelineKey}, want: apperrors.ErrInvalidAPIKey},
		{name: "no_key_configured", configured: "", header: map[string]string{"X-API-Key": ""}, want: apperrors.ErrPipelineNotConfigured},
		{name: "no_key_configured_any_header", configured: "", header: map[string]string{"X-API-Key": testPipelineKey}, want: apperrors.ErrPipelineNotConfigured},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reached bool
			rec := postSnapshots(newPipelineRouter(tt.configured, &reached), tt.header)

			if tt.want == nil {
				if rec.Code != http.StatusOK || !reached {
					t.Fatalf("expected handler to run, got %d: %s", rec.Code, rec.Body.String())
				}
				return
			}

			if reached {
				t.Fatal("handler ran for a rejected request")
			}
			if rec.Code != tt.want.StatusCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.want.StatusCode)
			}
			errObj, ok := parseBody(t, rec)["error"].(map[string]interface{})
			if !ok {
				t.Fatalf("expected error envelope, got %s", rec.Body.String())
			}
			if errObj["code"] != tt.want.Code || errObj["message"] != tt.want.Message {
				t.Errorf("error = %v, want %s / %s", errObj, tt.want.Code, tt.want.Message)
			}
		})
	}
}

func TestPipelineAuthMiddleware_LogsRejections(t *testing.T) {
	logs := observePipelineLogs(t)
	var reached bool
	router := newPipelineRouter(testPipelineKey, &reached)

	postSnapshots(router, map[string]string{"X-API-Key": testPipelineKey})
	if logs.Len() != 0 {
		t.Fatalf("accepted request logged %d entries", logs.Len())
	}

	postSnapshots(router, map[string]string{"X-API-Key": "stolen"})

	entries := logs.FilterMessage("rejected pipeline request").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 rejection entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.LoggerName != "pipeline" || entry.Level != zapcore.WarnLevel {
		t.Errorf("logged by %q at %s", entry.LoggerName, entry.Level)
	}
	fields := entry.ContextMap()
	if fields["path"] != "/pipeline/snapshots" {
		t.Errorf("path = %v", fields["path"])
	}
	if _, ok := fields["client_ip"]; !ok {
		t.Error("expected client_ip field")
	}
	for _, v := range fields {
		if v == "stolen" {
			t.Error("the presented key must not be logged")
		}
	}
}

func TestPipelineAuthMiddleware_UnconfiguredIsNotLoggedAsRejection(t *testing.T) {
	logs := observePipelineLogs(t)
	var reached bool

	postSnapshots(newPipelineRouter("", &reached), map[string]string{"X-API-Key": "anything"})

	if n := logs.FilterMessage("rejected pipeline request").Len(); n != 0 {
		t.Errorf("expected no rejection entries, got %d", n)
	}
}
