package client

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	apierrors "github.com/aimtoget/smeplug-go/client/internal/errors"
	"github.com/aimtoget/smeplug-go/client/internal/types"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "smeplug_client",
			Name:      "requests_total",
			Help:      "API calls by endpoint and outcome.",
		},
		[]string{"endpoint", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "smeplug_client",
			Name:      "request_duration_seconds",
			Help:      "Wall time of API calls, validation failures excluded.",
			Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 25, 50},
		},
		[]string{"endpoint"},
	)
)

// Outcome label values.
const (
	outcomeOK       = "ok"
	outcomeInvalid  = "invalid"
	outcomeTimeout  = "timeout"
	outcomeRequest  = "request_error"
	outcomeResponse = "response_error"
)

// observe runs one API call and records its outcome.
func observe[T any](endpoint string, call func() (T, error)) (T, error) {
	start := time.Now()
	v, err := call()
	elapsed := time.Since(start)

	outcome := outcomeOf(err)
	requestsTotal.WithLabelValues(endpoint, outcome).Inc()
	if outcome != outcomeInvalid {
		requestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
	}
	if err != nil {
		log.Debug().Err(err).Str("endpoint", endpoint).Str("outcome", outcome).Dur("elapsed", elapsed).Msg("smeplug call failed")
	}
	return v, err
}

func outcomeOf(err error) string {
	if err == nil {
		return outcomeOK
	}
	if errors.Is(err, types.ErrInvalidRequest) {
		return outcomeInvalid
	}
	switch apierrors.KindOf(err) {
	case apierrors.Timeout:
		return outcomeTimeout
	case apierrors.Response:
		return outcomeResponse
	default:
		return outcomeRequest
	}
}
