package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/oasislabs/viewtest/log"
	"github.com/oasislabs/viewtest/request"
	"github.com/oasislabs/viewtest/view"
)

const (
	HeaderRequestID = "X-Request-ID"
	HeaderTraceID   = "X-TRACE-ID"
)

// Headers sets static headers on every request
func Headers(headers map[string]string) request.Middleware {
	return request.Mutate(func(req *http.Request) {
		for key, value := range headers {
			req.Header.Set(key, value)
		}
	})
}

// RequestID sets a random request id on requests that do not
// have one yet
func RequestID() request.Middleware {
	return request.Mutate(func(req *http.Request) {
		if len(req.Header.Get(HeaderRequestID)) == 0 {
			req.Header.Set(HeaderRequestID, uuid.New().String())
		}
	})
}

// TraceID sets the trace id header and stores the trace id in the
// request's context so that entries logged with it carry the id
func TraceID(traceID int64) request.Middleware {
	return request.MiddlewareFunc(func(req *http.Request) (*http.Request, *view.Response, error) {
		req.Header.Set(HeaderTraceID, strconv.FormatInt(traceID, 10))
		return log.TraceRequest(req, traceID), nil, nil
	})
}

// Flag marks requests with name. It is the simplest way to prove that
// a pipeline ran
func Flag(name string) request.Middleware {
	return request.MiddlewareFunc(func(req *http.Request) (*http.Request, *view.Response, error) {
		flags := map[string]bool{name: true}
		for key := range flagsOf(req) {
			flags[key] = true
		}

		return req.WithContext(context.WithValue(req.Context(), contextKeyFlags, flags)), nil, nil
	})
}

// FlagSet returns true if the Flag middleware with name processed req
func FlagSet(req *http.Request, name string) bool {
	return flagsOf(req)[name]
}

func flagsOf(req *http.Request) map[string]bool {
	flags, _ := req.Context().Value(contextKeyFlags).(map[string]bool)
	return flags
}
