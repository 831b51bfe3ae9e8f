package health

import "context"

// Pinger checks a dependency is reachable
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Logger interface {
	Error(format string, v ...interface{})
}
