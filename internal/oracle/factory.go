package oracle

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/tennis-edge/internal/config"
)

// Kind names a configured probability source
type Kind string

const (
	KindNone   Kind = "none"
	KindRank   Kind = "rank"
	KindMarket Kind = "market"
	KindHTTP   Kind = "http"
)

// NewFromConfig builds the oracle selected by feed.oracle. It returns nil
// when no oracle is configured.
func NewFromConfig(cfg *config.Config, log *logrus.Logger) (*Oracle, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	var estimator Estimator
	switch Kind(cfg.Feed.Oracle) {
	case "", KindNone:
		return nil, nil
	case KindRank:
		estimator = NewRankEstimator()
	case KindMarket:
		estimator = NewMarketEstimator()
	case KindHTTP:
		httpEstimator, err := NewHTTPEstimator(&cfg.ModelService, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create model service estimator: %w", err)
		}
		estimator = httpEstimator
	default:
		return nil, fmt.Errorf("unknown oracle: %s", cfg.Feed.Oracle)
	}

	if ttl := cfg.ModelService.CacheTTLSeconds; ttl > 0 {
		estimator = NewCachedEstimator(estimator, time.Duration(ttl)*time.Second)
	}
	return New(estimator, log), nil
}
