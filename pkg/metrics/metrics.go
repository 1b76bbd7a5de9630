package metrics

type newRelicContextKey struct{}

// NewRelicContextKey is the context key under which the New Relic application
// is made available to instrumented code.
var NewRelicContextKey = newRelicContextKey{}
