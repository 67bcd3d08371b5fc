package view

import (
	"net/http"

	"github.com/samber/lo"
)

// Args are the positional arguments a router extracts from a path
type Args []interface{}

// Kwargs are the named arguments a router extracts from a path, or
// the attributes a view class is initialized with
type Kwargs map[string]interface{}

// Merge returns a new Kwargs with the values of k overridden
// by the values of other
func (k Kwargs) Merge(other Kwargs) Kwargs {
	return Kwargs(lo.Assign(map[string]interface{}{}, k, other))
}

// Func is the dispatch entry point of a view, the callable a router
// invokes with a request to produce a response. The returned value
// is whatever the view returns, usually a *Response
type Func func(req *http.Request, args Args, kwargs Kwargs) (interface{}, error)

// Call invokes f without positional or named arguments
func (f Func) Call(req *http.Request) (interface{}, error) {
	return f(req, nil, nil)
}

// FuncOf converts a function that only needs the request into a Func
func FuncOf(fn func(req *http.Request) (interface{}, error)) Func {
	return func(req *http.Request, _ Args, _ Kwargs) (interface{}, error) {
		return fn(req)
	}
}

// Response is the response produced by a view
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// NewResponse creates an empty response with the status code
func NewResponse(statusCode int) *Response {
	return &Response{
		StatusCode: statusCode,
		Header:     make(http.Header),
	}
}

// Text returns the body as a string
func (r *Response) Text() string {
	return string(r.Body)
}
