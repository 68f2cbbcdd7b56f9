package exporters

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/smazurov/gpioblink/internal/metrics"
)

func TestHTTPHandler(t *testing.T) {
	handler := HTTPHandler()
	if handler == nil {
		t.Fatal("expected non-nil handler")
	}

	// Record something so there's a series to export
	metrics.IncGPIOWrites(97)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}

	body := w.Body.String()
	if !strings.Contains(body, `gpioblink_gpio_writes_total{pin="97"}`) {
		t.Error("expected gpio writes counter in response")
	}
}

func TestServe(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	srv, err := Serve("127.0.0.1:0", logger)
	if err != nil {
		t.Fatalf("Serve failed: %v", err)
	}
	defer srv.Shutdown(context.Background())

	metrics.IncFlashToggles("test-serve")
	defer metrics.DeleteProgram("test-serve")

	resp, err := http.Get("http://" + srv.Addr() + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), `gpioblink_control_flash_toggles_total{program="test-serve"} 1`) {
		t.Error("expected flash toggle counter in response")
	}
}

func TestServeBadAddress(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if _, err := Serve("not-an-address", logger); err == nil {
		t.Fatal("expected error for invalid address")
	}
}
