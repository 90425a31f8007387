// Package livingapps talks to the Living Apps REST API, the hosted record
// store the dashboard was originally built on. Each record kind lives in its
// own app; the client translates between the German remote field names and
// the canonical field keys used everywhere else.
package livingapps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/terraincognita07/healthdash/internal/models"
	"github.com/terraincognita07/healthdash/internal/services"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://my.living-apps.de/rest"
	DefaultTimeout = 15 * time.Second

	maxErrorBodyBytes = 4 << 10
)

var ErrUnknownApp = errors.New("no app configured for record kind")

// DefaultAppIDs returns the app of each record kind in the reference
// workspace.
func DefaultAppIDs() map[models.RecordKind]string {
	return map[models.RecordKind]string{
		models.KindMedication: "698492d7ef06076761e9c8ff",
		models.KindDaily:      "69858612b7a952d0ddc01987",
		models.KindSymptom:    "698492d20b8e72c3ec7888b3",
		models.KindMeal:       "698492d748e87e8fa3ef7811",
	}
}

type Config struct {
	BaseURL  string
	Username string
	Password string
	Timeout  time.Duration
	AppIDs   map[models.RecordKind]string
}

// Client is a services.RecordStore backed by one Living Apps account. The
// account is shared, so the user id passed by callers does not partition
// the data.
type Client struct {
	baseURL    string
	username   string
	password   string
	appIDs     map[models.RecordKind]string
	httpClient *http.Client
	logger     *zap.Logger
}

var _ services.RecordStore = (*Client)(nil)

func NewClient(config Config, logger *zap.Logger) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(config.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	appIDs := DefaultAppIDs()
	for kind, appID := range config.AppIDs {
		if trimmed := strings.TrimSpace(appID); trimmed != "" {
			appIDs[kind] = trimmed
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL:    baseURL,
		username:   config.Username,
		password:   config.Password,
		appIDs:     appIDs,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.Named("livingapps"),
	}
}

// APIError is a non-2xx answer from the remote API.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (apiErr *APIError) Error() string {
	body := strings.TrimSpace(apiErr.Body)
	if body == "" {
		return fmt.Sprintf("living apps %s %s: status %d", apiErr.Method, apiErr.Path, apiErr.StatusCode)
	}
	return fmt.Sprintf("living apps %s %s: status %d: %s", apiErr.Method, apiErr.Path, apiErr.StatusCode, body)
}

func (client *Client) recordsPath(kind models.RecordKind) (string, error) {
	appID, ok := client.appIDs[kind]
	if !ok || appID == "" {
		return "", fmt.Errorf("%w: %s", ErrUnknownApp, kind)
	}
	return "/apps/" + appID + "/records", nil
}

// do sends one request and returns the response body of a 2xx answer. A 404
// maps to services.ErrRecordNotFound, every other failure to
// services.ErrRecordStoreUnavailable.
func (client *Client) do(ctx context.Context, method string, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, client.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	request.Header.Set("Accept", "application/json")
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if client.username != "" {
		request.SetBasicAuth(client.username, client.password)
	}

	started := time.Now()
	response, err := client.httpClient.Do(request)
	if err != nil {
		client.logger.Warn("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("%w: %s %s: %w", services.ErrRecordStoreUnavailable, method, path, err)
	}
	defer response.Body.Close()

	client.logger.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", response.StatusCode),
		zap.Duration("elapsed", time.Since(started)),
	)

	if response.StatusCode < 200 || response.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBodyBytes))
		apiErr := &APIError{Method: method, Path: path, StatusCode: response.StatusCode, Body: string(raw)}
		if response.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %w", services.ErrRecordNotFound, apiErr)
		}
		client.logger.Warn("unexpected status", zap.String("method", method), zap.String("path", path), zap.Int("status", response.StatusCode))
		return nil, fmt.Errorf("%w: %w", services.ErrRecordStoreUnavailable, apiErr)
	}

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s %s: %w", services.ErrRecordStoreUnavailable, method, path, err)
	}
	return raw, nil
}
