// Package whatsapp sends follow-up messages through a WhatsApp HTTP
// gateway exposing POST /send/message.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/liamdatt/invoicegen/internal/config"
	"github.com/liamdatt/invoicegen/internal/domain"
)

const sendPath = "/send/message"

// Sender posts messages to the gateway.
type Sender struct {
	baseURL    string
	httpClient *http.Client
	retryDelay time.Duration
	log        *slog.Logger
}

// New creates a Sender for the configured gateway.
// Returns an error wrapping domain.ErrConfigurationMissing when no gateway
// URL is set.
func New(cfg config.WhatsAppConfig, logger *slog.Logger) (*Sender, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.GatewayURL), "/")
	if base == "" {
		return nil, domain.NewMissingConfigError("WHATSAPP_GATEWAY_URL")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Sender{
		baseURL:    base,
		httpClient: &http.Client{Timeout: timeout},
		retryDelay: 500 * time.Millisecond,
		log:        logger.With("adapter", "whatsapp"),
	}, nil
}

type sendRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

type sendResponse struct {
	ID      string `json:"id"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Results struct {
		MessageID string `json:"message_id"`
	} `json:"results"`
}

func (r sendResponse) messageID() string {
	if r.Results.MessageID != "" {
		return r.Results.MessageID
	}
	return r.ID
}

// Send delivers body to phone and returns the gateway message ID, which
// may be empty when the gateway does not report one.
func (s *Sender) Send(ctx context.Context, phone, body string) (string, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return "", domain.NewValidationError("phone", "required")
	}

	payload, err := json.Marshal(sendRequest{Phone: phone, Message: body})
	if err != nil {
		return "", fmt.Errorf("whatsapp: encode request: %w", err)
	}

	resp, err := s.doWithRetry(ctx, payload, phone)
	if err != nil {
		s.log.ErrorContext(ctx, "whatsapp request failed", slog.String("phone", phone), slog.String("error", err.Error()))
		return "", fmt.Errorf("whatsapp: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("whatsapp: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("whatsapp: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out sendResponse
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			s.log.WarnContext(ctx, "whatsapp response is not json", slog.String("phone", phone))
		}
	}

	s.log.DebugContext(ctx, "whatsapp message sent",
		slog.String("phone", phone),
		slog.Int("status", resp.StatusCode),
		slog.String("message_id", out.messageID()),
	)
	return out.messageID(), nil
}

// doWithRetry posts payload, retrying once when the gateway reports it is
// unavailable. Other failures are not retried to avoid duplicate messages.
func (s *Sender) doWithRetry(ctx context.Context, payload []byte, phone string) (*http.Response, error) {
	resp, err := s.post(ctx, payload)
	if err != nil || resp.StatusCode != http.StatusServiceUnavailable {
		return resp, err
	}
	if ctx.Err() != nil {
		return resp, nil
	}

	s.log.WarnContext(ctx, "whatsapp retry", slog.String("phone", phone), slog.Int("status", resp.StatusCode))
	resp.Body.Close()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(s.retryDelay):
	}
	return s.post(ctx, payload)
}

func (s *Sender) post(ctx context.Context, payload []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+sendPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return s.httpClient.Do(req)
}
