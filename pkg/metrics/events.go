package metrics

import (
	"context"

	"github.com/newrelic/go-agent/v3/newrelic"
)

// RecordEvent records a custom event against the New Relic application bound
// to the context. It's a no-op when no application is bound, which keeps
// tests and library embeddings free of telemetry setup.
func RecordEvent(ctx context.Context, eventName string, attributes map[string]interface{}) {
	app, ok := ctx.Value(NewRelicContextKey).(*newrelic.Application)
	if !ok {
		return
	}

	app.RecordCustomEvent(eventName, attributes)
}
