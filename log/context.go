package log

import (
	"context"
	"net/http"
)

type contextKey string

const contextKeyTraceID contextKey = "logTraceID"

// NoTraceID is logged for entries whose context carries no trace id
const NoTraceID int64 = -1

// PutTraceID returns a copy of ctx carrying the trace id that will be
// attached to every entry logged with it
func PutTraceID(ctx context.Context, traceID int64) context.Context {
	return context.WithValue(ctx, contextKeyTraceID, traceID)
}

// GetTraceID returns the trace id stored in ctx or NoTraceID
func GetTraceID(ctx context.Context) int64 {
	traceID, ok := ctx.Value(contextKeyTraceID).(int64)
	if !ok {
		return NoTraceID
	}

	return traceID
}

// TraceRequest returns a copy of req whose context carries traceID,
// so the entries logged while req is built and served share it
func TraceRequest(req *http.Request, traceID int64) *http.Request {
	return req.WithContext(PutTraceID(req.Context(), traceID))
}

// RequestFields describes a synthetic request in a log entry
func RequestFields(req *http.Request) MapFields {
	return MapFields{
		"method": req.Method,
		"path":   req.URL.EscapedPath(),
	}
}
