package lib

import (
	"context"

	servertiming "github.com/mitchellh/go-server-timing"
)

// TimingMetric is a Server-Timing span; the zero value is a no-op
type TimingMetric struct {
	metric *servertiming.Metric
}

func (m *TimingMetric) Stop() {
	if m != nil && m.metric != nil {
		m.metric.Stop()
	}
}

// StartTiming starts a Server-Timing metric when the request carries timing headers
func StartTiming(ctx context.Context, name, desc string) *TimingMetric {
	timing := servertiming.FromContext(ctx)
	if timing == nil {
		return &TimingMetric{}
	}

	metric := timing.NewMetric(name)
	if desc != "" {
		metric = metric.WithDesc(desc)
	}
	return &TimingMetric{metric: metric.Start()}
}
