//go:build e2e

package e2e_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/liamdatt/invoicegen/internal/adapter/postgres/testhelper"
	"github.com/liamdatt/invoicegen/internal/app"
	"github.com/liamdatt/invoicegen/internal/config"
)

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// ---------------------------------------------------------------------------
// fakeGateway records WhatsApp messages. Phones listed in reject get a 400.
// ---------------------------------------------------------------------------

type gatewayMessage struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

type fakeGateway struct {
	*httptest.Server

	mu     sync.Mutex
	sent   []gatewayMessage
	reject map[string]bool
}

func newFakeGateway(t *testing.T) *fakeGateway {
	t.Helper()

	g := &fakeGateway{reject: map[string]bool{}}
	g.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/send/message" {
			http.NotFound(w, r)
			return
		}
		var msg gatewayMessage
		if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		g.mu.Lock()
		defer g.mu.Unlock()
		if g.reject[msg.Phone] {
			http.Error(w, `{"message":"number not on whatsapp"}`, http.StatusBadRequest)
			return
		}
		g.sent = append(g.sent, msg)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"code":    "SUCCESS",
			"results": map[string]string{"message_id": "wamid." + msg.Phone},
		})
	}))
	t.Cleanup(g.Close)
	return g
}

func (g *fakeGateway) Reject(phone string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reject[phone] = true
}

func (g *fakeGateway) SentTo(phone string) []gatewayMessage {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []gatewayMessage
	for _, m := range g.sent {
		if m.Phone == phone {
			out = append(out, m)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// setupTestApp wires the full application against a real PostgreSQL
// container (shared via testhelper) and a fake WhatsApp gateway. No browser
// is configured, so rendering is unavailable.
// ---------------------------------------------------------------------------

type testApp struct {
	*app.App
	Gateway *fakeGateway
}

func setupTestApp(t *testing.T) *testApp {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	gateway := newFakeGateway(t)

	cfg := &config.Config{
		Log:     config.LogConfig{Level: "debug", Format: "text"},
		Billing: config.BillingConfig{TaxRateRaw: "0.15", DefaultCurrency: "JMD"},
		Storage: config.StorageConfig{Root: t.TempDir()},
		Renderer: config.RendererConfig{
			ChromePath: "/nonexistent/chromium",
			Timeout:    10 * time.Second,
		},
		WhatsApp: config.WhatsAppConfig{GatewayURL: gateway.URL, Timeout: 5 * time.Second},
		FollowUp: config.FollowUpConfig{Timezone: "UTC", SweepSchedule: "0 9 * * *"},
	}
	require.NoError(t, cfg.Validate())

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, &slog.HandlerOptions{Level: slog.LevelDebug}))
	a, err := app.Wire(cfg, logger, pool)
	require.NoError(t, err)

	return &testApp{App: a, Gateway: gateway}
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
