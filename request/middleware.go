package request

import (
	"context"
	"net/http"

	"github.com/oasislabs/viewtest/view"
)

// Middleware preprocesses a request before it reaches a view. A
// middleware may mutate req in place or return a replacement. A non
// nil response stops the pipeline, no later middleware is applied and
// the response is attached to the request
type Middleware interface {
	ProcessRequest(req *http.Request) (*http.Request, *view.Response, error)
}

// MiddlewareFunc allows functions to implement the Middleware interface
type MiddlewareFunc func(req *http.Request) (*http.Request, *view.Response, error)

// ProcessRequest is the implementation of Middleware for MiddlewareFunc
func (f MiddlewareFunc) ProcessRequest(req *http.Request) (*http.Request, *view.Response, error) {
	return f(req)
}

// Mutate creates a Middleware from a function that only mutates
// the request in place
func Mutate(fn func(req *http.Request)) Middleware {
	return MiddlewareFunc(func(req *http.Request) (*http.Request, *view.Response, error) {
		fn(req)
		return req, nil, nil
	})
}

type contextKey string

const contextKeyShortCircuit contextKey = "requestShortCircuit"

// ShortCircuit returns the response of the middleware that stopped
// the pipeline for req, if any
func ShortCircuit(req *http.Request) (*view.Response, bool) {
	res, ok := req.Context().Value(contextKeyShortCircuit).(*view.Response)
	return res, ok
}

func withShortCircuit(req *http.Request, res *view.Response) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), contextKeyShortCircuit, res))
}
