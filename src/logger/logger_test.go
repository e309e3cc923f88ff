package logger_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/lost-woods/randtest/src/logger"
)

func TestNew_RejectsUnknownLevel(t *testing.T) {
	if _, err := logger.New(logger.Config{Level: "loud"}); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNew_WritesToDestination(t *testing.T) {
	path := filepath.Join(t.TempDir(), "randtest.log")
	log, err := logger.New(logger.Config{Level: "warn", Destination: path, Encoding: "json"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	log.Infow("hidden")
	log.Warnw("visible", "test", "RUNS")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line written at warn level: %s", out)
	}
	if !strings.Contains(out, `"message":"visible"`) || !strings.Contains(out, `"test":"RUNS"`) {
		t.Fatalf("warn line missing: %s", out)
	}
}

func TestMiddleware_LogsRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "access.log")
	log, err := logger.New(logger.Config{Destination: path, Encoding: "json"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := gin.New()
	r.Use(logger.Middleware(log))
	r.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "OK") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"path":"/health"`) || !strings.Contains(string(data), `"status":200`) {
		t.Fatalf("request not logged: %s", data)
	}
}
