package google

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liamdatt/invoicegen/internal/config"
	"github.com/liamdatt/invoicegen/internal/domain"
)

type fakeSaver struct {
	mu     sync.Mutex
	tokens [][]byte
}

func (f *fakeSaver) SaveToken(_ context.Context, _ string, token []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, token)
	return nil
}

func (f *fakeSaver) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tokens)
}

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func storedToken(t *testing.T, access string, expiry time.Time) []byte {
	t.Helper()
	raw, err := json.Marshal(map[string]any{
		"access_token":  access,
		"token_type":    "Bearer",
		"refresh_token": "refresh-1",
		"expiry":        expiry,
	})
	require.NoError(t, err)
	return raw
}

func newTestClient(t *testing.T, srv *httptest.Server, token []byte, saver TokenSaver) *Client {
	t.Helper()
	c, err := NewClient(context.Background(), config.GoogleConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		TokenURL:     srv.URL + "/token",
		APIEndpoint:  srv.URL + "/",
		Timeout:      5 * time.Second,
	}, &domain.GoogleAccount{Email: "shop@example.com", Token: token}, saver, discard())
	require.NoError(t, err)
	return c
}

func TestNewClient_MissingConfiguration(t *testing.T) {
	t.Parallel()

	token := []byte(`{"access_token":"a"}`)
	tests := []struct {
		name    string
		cfg     config.GoogleConfig
		account *domain.GoogleAccount
	}{
		{"no client id", config.GoogleConfig{ClientSecret: "s"}, &domain.GoogleAccount{Token: token}},
		{"no client secret", config.GoogleConfig{ClientID: "c"}, &domain.GoogleAccount{Token: token}},
		{"no account", config.GoogleConfig{ClientID: "c", ClientSecret: "s"}, nil},
		{"no token", config.GoogleConfig{ClientID: "c", ClientSecret: "s"}, &domain.GoogleAccount{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewClient(context.Background(), tt.cfg, tt.account, &fakeSaver{}, discard())
			assert.ErrorIs(t, err, domain.ErrConfigurationMissing)
		})
	}
}

func TestClient_ListFolders(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer live", r.Header.Get("Authorization"))
		assert.True(t, strings.HasSuffix(r.URL.Path, "/files"), r.URL.Path)
		assert.Equal(t, folderQuery, r.URL.Query().Get("q"))
		assert.Equal(t, "name", r.URL.Query().Get("orderBy"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"files": []map[string]string{
				{"id": "f1", "name": "Archive"},
				{"id": "f2", "name": "Invoices"},
			},
		})
	}))
	defer srv.Close()

	saver := &fakeSaver{}
	c := newTestClient(t, srv, storedToken(t, "live", time.Now().Add(time.Hour)), saver)

	folders, err := c.ListFolders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.RemoteFolder{{ID: "f1", Name: "Archive"}, {ID: "f2", Name: "Invoices"}}, folders)
	assert.Zero(t, saver.count(), "unchanged token must not be persisted")
}

func TestClient_RefreshedTokenIsPersisted(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/token" {
			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "refresh_token", r.FormValue("grant_type"))
			_ = json.NewEncoder(w).Encode(map[string]any{
				"access_token": "fresh",
				"token_type":   "Bearer",
				"expires_in":   3600,
			})
			return
		}
		assert.Equal(t, "Bearer fresh", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{"files": []any{}})
	}))
	defer srv.Close()

	saver := &fakeSaver{}
	c := newTestClient(t, srv, storedToken(t, "stale", time.Now().Add(-time.Hour)), saver)

	_, err := c.ListFolders(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, saver.count())
	assert.Contains(t, string(saver.tokens[0]), `"access_token":"fresh"`)
}

func TestClient_Upload(t *testing.T) {
	t.Parallel()

	t.Run("create in folder", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.True(t, strings.HasSuffix(r.URL.Path, "/files"), r.URL.Path)
			body, _ := io.ReadAll(r.Body)
			assert.Contains(t, string(body), `"parents":["folder-1"]`)
			assert.Contains(t, string(body), "%PDF-test")

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]string{
				"id":             "file-9",
				"name":           "invoice-7-general.pdf",
				"webViewLink":    "https://drive.example/view/file-9",
				"webContentLink": "https://drive.example/dl/file-9",
			})
		}))
		defer srv.Close()

		c := newTestClient(t, srv, storedToken(t, "live", time.Now().Add(time.Hour)), &fakeSaver{})
		f, err := c.Upload(context.Background(), []byte("%PDF-test"), "invoice-7-general.pdf", "", "folder-1")
		require.NoError(t, err)
		assert.Equal(t, domain.RemoteFile{
			ID:           "file-9",
			Name:         "invoice-7-general.pdf",
			ViewLink:     "https://drive.example/view/file-9",
			DownloadLink: "https://drive.example/dl/file-9",
		}, f)
	})

	t.Run("update in place", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPatch, r.Method)
			assert.True(t, strings.HasSuffix(r.URL.Path, "/files/file-9"), r.URL.Path)

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]string{"id": "file-9", "name": "invoice-7-general.pdf"})
		}))
		defer srv.Close()

		c := newTestClient(t, srv, storedToken(t, "live", time.Now().Add(time.Hour)), &fakeSaver{})
		f, err := c.Upload(context.Background(), []byte("%PDF-test"), "invoice-7-general.pdf", "file-9", "folder-1")
		require.NoError(t, err)
		assert.Equal(t, "file-9", f.ID)
	})

	t.Run("api error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_, _ = io.WriteString(w, `{"error":{"code":403,"message":"insufficient permissions"}}`)
		}))
		defer srv.Close()

		c := newTestClient(t, srv, storedToken(t, "live", time.Now().Add(time.Hour)), &fakeSaver{})
		_, err := c.Upload(context.Background(), []byte("%PDF"), "x.pdf", "", "")
		assert.ErrorIs(t, err, domain.ErrRemoteSyncFailed)
	})
}

func TestClient_Download(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/files/file-9"), r.URL.Path)
		assert.Equal(t, "media", r.URL.Query().Get("alt"))
		_, _ = io.WriteString(w, "%PDF-remote")
	}))
	defer srv.Close()

	c := newTestClient(t, srv, storedToken(t, "live", time.Now().Add(time.Hour)), &fakeSaver{})
	data, err := c.Download(context.Background(), "file-9")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-remote", string(data))
}

func TestClient_SendMessage(t *testing.T) {
	t.Parallel()

	var raw string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/users/me/messages/send"), r.URL.Path)
		var msg struct {
			Raw string `json:"raw"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&msg))
		raw = msg.Raw

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "msg-1"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv, storedToken(t, "live", time.Now().Add(time.Hour)), &fakeSaver{})
	id, err := c.SendMessage(context.Background(), "client@example.com", "Invoice #7", "Please find attached invoice #7.",
		domain.Attachment{Filename: "invoice-7-general.pdf", Data: []byte("%PDF-test")})
	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)

	decoded, err := base64.URLEncoding.DecodeString(raw)
	require.NoError(t, err)
	msg := string(decoded)
	assert.Contains(t, msg, "From: shop@example.com\r\n")
	assert.Contains(t, msg, "To: client@example.com\r\n")
	assert.Contains(t, msg, "Subject: Invoice #7\r\n")
	assert.Contains(t, msg, `filename=invoice-7-general.pdf`)
	assert.Contains(t, msg, base64.StdEncoding.EncodeToString([]byte("%PDF-test")))
}
