package log

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetTraceIDNotFound(t *testing.T) {
	assert.Equal(t, NoTraceID, GetTraceID(context.Background()))
}

func TestGetTraceIDNotInteger(t *testing.T) {
	ctx := context.WithValue(context.Background(), contextKeyTraceID, "traceID")
	assert.Equal(t, NoTraceID, GetTraceID(ctx))
}

func TestPutTraceID(t *testing.T) {
	ctx := PutTraceID(context.Background(), 1234)
	assert.Equal(t, int64(1234), GetTraceID(ctx))
}

func TestTraceRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	traced := TraceRequest(req, 42)

	assert.Equal(t, int64(42), GetTraceID(traced.Context()))
	assert.Equal(t, NoTraceID, GetTraceID(req.Context()))
}

func TestRequestFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/a%20b?q=1", nil)

	assert.Equal(t, MapFields{
		"method": http.MethodPost,
		"path":   "/a%20b",
	}, RequestFields(req))
}
