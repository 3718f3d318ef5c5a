package sender

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hostfacts-labs/hostfacts/internal/config"
	"github.com/hostfacts-labs/hostfacts/pkg/models"
)

// ErrUnauthorized is returned when authentication fails (401)
var ErrUnauthorized = errors.New("authentication failed: invalid or expired token")

// HTTPSender delivers reports via HTTP/HTTPS
type HTTPSender struct {
	serverURL string
	token     string
	client    *http.Client
}

// NewHTTPSender creates a new HTTP sender
func NewHTTPSender(serverURL, token string, timeout time.Duration) *HTTPSender {
	// HTTP client with connection pooling
	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	return &HTTPSender{
		serverURL: serverURL,
		token:     token,
		client:    client,
	}
}

// Send gzips the report as JSON and POSTs it to the endpoint
func (h *HTTPSender) Send(ctx context.Context, report *models.HardwareReport) error {
	if report == nil {
		return nil
	}

	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(data); err != nil {
		return fmt.Errorf("failed to compress report: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("failed to close gzip writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.serverURL, &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")
	req.Header.Set("User-Agent", fmt.Sprintf("hostfacts/%s", config.Version))
	req.Header.Set("X-Hostfacts-Version", config.Version)
	if h.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", h.token))
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		logrus.WithField("status", resp.StatusCode).Debug("report accepted")
		return nil
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusBadRequest:
		return fmt.Errorf("bad request: %s", string(respBody))
	case http.StatusTooManyRequests:
		return errors.New("rate limited")
	default:
		return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(respBody))
	}
}

// Close closes the HTTP client
func (h *HTTPSender) Close() error {
	h.client.CloseIdleConnections()
	return nil
}
