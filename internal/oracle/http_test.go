package oracle

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/tennis-edge/internal/config"
)

func testClientConfig(retries int) HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:           2 * time.Second,
		MaxRetries:        retries,
		RetryWaitMin:      time.Millisecond,
		RetryWaitMax:      5 * time.Millisecond,
		CircuitBreakerMax: 3,
	}
}

func newTestEstimator(t *testing.T, handler http.HandlerFunc, retries int) (*HTTPEstimator, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	est := NewHTTPEstimatorWithClient(server.URL+"/", "secret", NewRateLimitedHTTPClient(testClientConfig(retries), nil), nil)
	return est, server
}

func TestHTTPEstimatorSuccess(t *testing.T) {
	est, _ := newTestEstimator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, predictPath, r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-API-Key"))

		var features MatchFeatures
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&features))
		assert.Equal(t, "m1", features.MatchID)
		assert.Equal(t, 12, features.PlayerARank)
		require.NotNil(t, features.PlayerBAge)
		assert.Equal(t, 31.5, *features.PlayerBAge)
		require.NotNil(t, features.PlayerARecentGamesWonAvg5)
		assert.Equal(t, 11.2, *features.PlayerARecentGamesWonAvg5)
		require.NotNil(t, features.PlayerBRecentSetsLostAvg10)
		assert.Equal(t, 1.4, *features.PlayerBRecentSetsLostAvg10)
		assert.Nil(t, features.PlayerAAge)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"match_id":"m1","probability_a":0.63,"model_version":"v3"}`))
	}, 0)

	p, err := est.Estimate(context.Background(), MatchFeatures{
		MatchID:                    "m1",
		PlayerARank:                12,
		PlayerBAge:                 float(31.5),
		PlayerARecentGamesWonAvg5:  float(11.2),
		PlayerBRecentSetsLostAvg10: float(1.4),
	})
	require.NoError(t, err)
	assert.Equal(t, 0.63, p)
}

func TestHTTPEstimatorRetriesTransientErrors(t *testing.T) {
	var calls atomic.Int32
	est, _ := newTestEstimator(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"probability_a":0.41}`))
	}, 2)

	p, err := est.Estimate(context.Background(), MatchFeatures{MatchID: "m1"})
	require.NoError(t, err)
	assert.Equal(t, 0.41, p)
	assert.Equal(t, int32(2), calls.Load())
}

func TestHTTPEstimatorDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	est, _ := newTestEstimator(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad features", http.StatusBadRequest)
	}, 3)

	_, err := est.Estimate(context.Background(), MatchFeatures{MatchID: "m1"})
	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.Contains(t, err.Error(), "bad features")
	assert.Equal(t, int32(1), calls.Load())
}

func TestHTTPEstimatorInvalidBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing probability", `{"match_id":"m1"}`},
		{"not json", `probability=0.5`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est, _ := newTestEstimator(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}, 0)

			_, err := est.Estimate(context.Background(), MatchFeatures{MatchID: "m1"})
			assert.ErrorIs(t, err, ErrInvalidResponse)
		})
	}
}

func TestHTTPEstimatorCircuitBreaker(t *testing.T) {
	var calls atomic.Int32
	est, _ := newTestEstimator(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}, 0)

	for i := 0; i < 3; i++ {
		_, err := est.Estimate(context.Background(), MatchFeatures{MatchID: "m1"})
		assert.ErrorIs(t, err, ErrServiceUnavailable)
	}
	assert.True(t, est.client.IsOpen())

	_, err := est.Estimate(context.Background(), MatchFeatures{MatchID: "m1"})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPEstimatorHealthCheck(t *testing.T) {
	est, _ := newTestEstimator(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}, 0)

	assert.NoError(t, est.HealthCheck(context.Background()))
	assert.NoError(t, est.Close())
}

func TestNewHTTPEstimatorRequiresURL(t *testing.T) {
	_, err := NewHTTPEstimator(&config.ModelServiceConfig{}, nil)
	assert.Error(t, err)

	est, err := NewHTTPEstimator(&config.ModelServiceConfig{URL: "http://localhost:9000", TimeoutSeconds: 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, "http", est.Name())
}
