package pipeline

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	log "github.com/sirupsen/logrus"
	"github.com/yukikurage/pastry-manager-api/internal/result"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeError   = "error"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pastry_requests_total",
			Help: "Total number of handled use-case requests",
		},
		[]string{"request", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pastry_request_duration_seconds",
			Help:    "Use-case request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"request"},
	)
)

// Logging logs and measures every request. It is meant to be the outermost behavior.
func Logging[Req, Res any](logger log.FieldLogger) Behavior[Req, Res] {
	return func(name string, next HandlerFunc[Req, Res]) HandlerFunc[Req, Res] {
		return func(ctx context.Context, req Req) (result.Result[Res], error) {
			entry := logger.WithField("request", name)
			entry.Infof("Handling %s", name)
			start := time.Now()

			res, err := next(ctx, req)

			elapsed := time.Since(start)
			ms := elapsed.Milliseconds()
			requestDuration.WithLabelValues(name).Observe(elapsed.Seconds())

			switch {
			case err != nil:
				requestsTotal.WithLabelValues(name, OutcomeError).Inc()
				entry.WithError(err).Errorf("Error handling %s after %dms", name, ms)
			case !res.IsSuccess():
				requestsTotal.WithLabelValues(name, OutcomeFailure).Inc()
				entry.Warnf("Request %s failed after %dms: %s", name, ms, res.Joined())
			default:
				requestsTotal.WithLabelValues(name, OutcomeSuccess).Inc()
				entry.Infof("Handled %s in %dms", name, ms)
			}
			return res, err
		}
	}
}

// Standard is the default behavior order: logging, then validation.
func Standard[Req, Res any](logger log.FieldLogger, v *validator.Validate) []Behavior[Req, Res] {
	return []Behavior[Req, Res]{
		Logging[Req, Res](logger),
		Validation[Req, Res](v),
	}
}
