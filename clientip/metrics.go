package clientip

// Metrics records resolution outcomes emitted by Resolver.
//
// Implementations should be safe for concurrent use, as a single Resolver
// instance is typically shared across many goroutines.
type Metrics interface {
	// RecordResolution is called when a source successfully yields a
	// client IP.
	RecordResolution(source string)
	// RecordMiss is called when a source is attempted but yields nothing.
	RecordMiss(source string)
	// RecordEvent is called when the resolver observes a noteworthy
	// condition, such as a malformed chain entry.
	RecordEvent(event string)
}

// noopMetrics is the default Metrics implementation when metrics are not
// explicitly configured.
type noopMetrics struct{}

func (noopMetrics) RecordResolution(string) {}

func (noopMetrics) RecordMiss(string) {}

func (noopMetrics) RecordEvent(string) {}
