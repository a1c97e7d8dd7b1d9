package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"avatar-studio/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var backendRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "avatar_studio_backend_request_duration_seconds",
	Help:    "Duration of requests to the content generation backend.",
	Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
}, []string{"endpoint", "outcome"})

type backendClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewBackendClient создает новый клиент для бэкенда генерации контента.
// timeout == 0 означает отсутствие таймаута: генерация может идти долго.
func NewBackendClient(baseURL string, timeout time.Duration, logger *zap.Logger) (BackendClient, error) {
	_, err := url.ParseRequestURI(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL for content backend: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &backendClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger.Named("BackendClient"),
	}, nil
}

// GetConfig загружает конфигурацию.
func (c *backendClient) GetConfig(ctx context.Context) (*models.Configuration, error) {
	var cfg models.Configuration
	if err := c.doJSON(ctx, "config", http.MethodGet, "/api/config", nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// CreateContent запускает генерацию.
func (c *backendClient) CreateContent(ctx context.Context, req models.ContentRequest) (*models.ContentCreation, error) {
	var out models.ContentCreation
	if err := c.doJSON(ctx, "create_content", http.MethodPost, "/api/create-content", req, &out); err != nil {
		return nil, err
	}
	if out.Result == nil {
		return nil, fmt.Errorf("invalid create content response: missing result")
	}
	return &out, nil
}

// UpdateChecklist меняет статус пункта.
func (c *backendClient) UpdateChecklist(ctx context.Context, sessionID string, update models.ChecklistUpdate) (*models.ChecklistState, error) {
	var out models.ChecklistState
	path := "/api/checklist/" + url.PathEscape(sessionID)
	if err := c.doJSON(ctx, "update_checklist", http.MethodPost, path, update, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetChecklist читает карту статусов.
func (c *backendClient) GetChecklist(ctx context.Context, sessionID string) (*models.ChecklistState, error) {
	var out models.ChecklistState
	path := "/api/checklist/" + url.PathEscape(sessionID)
	if err := c.doJSON(ctx, "get_checklist", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// doJSON выполняет запрос с JSON-телом и декодирует JSON-ответ в out.
func (c *backendClient) doJSON(ctx context.Context, endpoint, method, path string, body interface{}, out interface{}) (err error) {
	reqURL := c.baseURL + path
	log := c.logger.With(zap.String("endpoint", endpoint), zap.String("url", reqURL))

	start := time.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		backendRequestDuration.WithLabelValues(endpoint, outcome).Observe(time.Since(start).Seconds())
	}()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, marshalErr := json.Marshal(body)
		if marshalErr != nil {
			log.Error("Failed to marshal request body", zap.Error(marshalErr))
			return fmt.Errorf("internal error marshaling request: %w", marshalErr)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		log.Error("Failed to create HTTP request", zap.Error(err))
		return fmt.Errorf("internal error creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	log.Debug("Sending request to content backend")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("HTTP request to content backend failed", zap.Error(err))
		return fmt.Errorf("failed to communicate with content backend: %w", err)
	}
	defer resp.Body.Close()

	respBodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("Failed to read response body", zap.Int("status", resp.StatusCode), zap.Error(err))
		return fmt.Errorf("failed to read content backend response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Detail: extractDetail(respBodyBytes)}
		log.Warn("Received non-OK status from content backend", zap.Int("status", resp.StatusCode), zap.String("detail", apiErr.Detail))
		return apiErr
	}

	if err := json.Unmarshal(respBodyBytes, out); err != nil {
		log.Error("Failed to unmarshal response", zap.Int("status", resp.StatusCode), zap.Int("bodyLen", len(respBodyBytes)), zap.Error(err))
		return fmt.Errorf("invalid %s response format from content backend: %w", endpoint, err)
	}

	log.Debug("Request to content backend completed", zap.Int("status", resp.StatusCode), zap.Duration("duration", time.Since(start)))
	return nil
}

// extractDetail достает строковое поле "detail" из тела ошибки.
// Ошибки валидации FastAPI приходят массивом - такие игнорируются.
func extractDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}
	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err != nil {
		return ""
	}
	return detail
}
