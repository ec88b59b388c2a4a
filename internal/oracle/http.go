package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/tennis-edge/internal/config"
	"github.com/yourusername/tennis-edge/internal/logger"
)

const predictPath = "/v1/predict"

// HTTPEstimator asks an external model service for win probabilities
type HTTPEstimator struct {
	client  *RateLimitedHTTPClient
	baseURL string
	apiKey  string
	logger  *logrus.Logger
}

type predictResponse struct {
	MatchID      string   `json:"match_id"`
	ProbabilityA *float64 `json:"probability_a"`
	ModelVersion string   `json:"model_version,omitempty"`
}

// NewHTTPEstimator creates a model service estimator from configuration
func NewHTTPEstimator(cfg *config.ModelServiceConfig, log *logrus.Logger) (*HTTPEstimator, error) {
	if cfg == nil || cfg.URL == "" {
		return nil, fmt.Errorf("model service url is required")
	}

	clientCfg := DefaultHTTPClientConfig()
	if cfg.TimeoutSeconds > 0 {
		clientCfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	clientCfg.MaxRetries = cfg.RetryAttempts
	clientCfg.RateLimit = cfg.RateLimit

	return NewHTTPEstimatorWithClient(cfg.URL, cfg.APIKey, NewRateLimitedHTTPClient(clientCfg, log), log), nil
}

// NewHTTPEstimatorWithClient creates an estimator using an existing client
func NewHTTPEstimatorWithClient(baseURL, apiKey string, client *RateLimitedHTTPClient, log *logrus.Logger) *HTTPEstimator {
	if log == nil {
		log = logger.Discard()
	}
	return &HTTPEstimator{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		logger:  log,
	}
}

// Name returns the estimator name
func (e *HTTPEstimator) Name() string {
	return "http"
}

// Estimate posts the features to the model service
func (e *HTTPEstimator) Estimate(ctx context.Context, f MatchFeatures) (float64, error) {
	payload, err := json.Marshal(f)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal features: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+predictPath, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		req.Header.Set("X-API-Key", e.apiKey)
	}

	resp, err := e.client.Do(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return 0, fmt.Errorf("%w: status %d: %s", ErrInvalidResponse, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if out.ProbabilityA == nil {
		return 0, fmt.Errorf("%w: missing probability_a", ErrInvalidResponse)
	}

	e.logger.WithFields(logrus.Fields{
		"match_id":      f.MatchID,
		"model_version": out.ModelVersion,
	}).Debug("Model service estimate received")
	return *out.ProbabilityA, nil
}

// HealthCheck checks model service health
func (e *HTTPEstimator) HealthCheck(ctx context.Context) error {
	resp, err := e.client.Get(ctx, e.baseURL+"/health")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrServiceUnavailable, resp.StatusCode)
	}
	return nil
}

// Close releases idle connections
func (e *HTTPEstimator) Close() error {
	return e.client.Close()
}
