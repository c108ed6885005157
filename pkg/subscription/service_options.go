package subscription

import (
	"log/slog"
	"time"
)

// ServiceOption configures a Service instance.
type ServiceOption func(*service)

// WithLogger sets the structured logger used for lifecycle transitions.
// Defaults to slog.Default().
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithNow injects the clock used for all date arithmetic. Tests use this to
// pin trial windows and billing dates to fixed instants.
func WithNow(now func() time.Time) ServiceOption {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithEventSink registers a sink for lifecycle audit events.
func WithEventSink(sink EventSink) ServiceOption {
	return func(s *service) {
		s.sink = sink
	}
}
