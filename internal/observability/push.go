package observability

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus/push"
)

// Push sends the run's metrics to a Pushgateway under the given job name.
func Push(ctx context.Context, url, job string, m *Metrics) error {
	if err := push.New(url, job).Gatherer(m.Gatherer).PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}
