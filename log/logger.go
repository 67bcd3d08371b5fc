package log

import "context"

// Fields collects key value pairs for a single log entry
type Fields interface {
	Add(key string, value interface{})
}

// Loggable is implemented by types that know how to describe
// themselves in a log entry
type Loggable interface {
	Log(fields Fields)
}

// MapFields is the simplest Loggable
type MapFields map[string]interface{}

func (m MapFields) Log(fields Fields) {
	for key, value := range m {
		fields.Add(key, value)
	}
}

type Logger interface {
	ForClass(pkg string, class string) Logger
	Debug(ctx context.Context, msg string, loggable ...Loggable)
	Info(ctx context.Context, msg string, loggable ...Loggable)
	Warn(ctx context.Context, msg string, loggable ...Loggable)
	Error(ctx context.Context, msg string, loggable ...Loggable)
}
