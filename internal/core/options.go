// ABOUTME: Functional options shared by Router and Workflow
// ABOUTME: Lets callers and tests supply their own tracer provider
package core

import "go.opentelemetry.io/otel/trace"

// Option configures a Router or Workflow
type Option func(*options)

type options struct {
	tracerProvider trace.TracerProvider
}

// WithTracerProvider sends spans to tp instead of the global provider
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.tracerProvider = tp
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
