package view

import (
	"net/http"
	"strings"
)

// Viewer is implemented by class based views. Any struct that embeds
// View satisfies it through a pointer
type Viewer interface {
	Base() *View
}

// View is the base of class based views. The fields are populated by
// Setup before a request is dispatched
type View struct {
	Request *http.Request
	Args    Args
	Kwargs  Kwargs
}

// Base implements Viewer
func (v *View) Base() *View {
	return v
}

// Setup assigns the request and its arguments to the view
func (v *View) Setup(req *http.Request, args Args, kwargs Kwargs) {
	v.Request = req
	v.Args = args
	v.Kwargs = kwargs
}

type GetHandler interface {
	Get(req *http.Request) (interface{}, error)
}

type PostHandler interface {
	Post(req *http.Request) (interface{}, error)
}

type PutHandler interface {
	Put(req *http.Request) (interface{}, error)
}

type PatchHandler interface {
	Patch(req *http.Request) (interface{}, error)
}

type DeleteHandler interface {
	Delete(req *http.Request) (interface{}, error)
}

// HeadHandler is optional, a view that only implements GetHandler
// also serves HEAD requests
type HeadHandler interface {
	Head(req *http.Request) (interface{}, error)
}

// OptionsHandler is optional, by default OPTIONS requests are
// answered with the allowed methods
type OptionsHandler interface {
	Options(req *http.Request) (interface{}, error)
}

type TraceHandler interface {
	Trace(req *http.Request) (interface{}, error)
}

// Methods are the HTTP methods a view can handle, in the order
// they are reported in the Allow header
var Methods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodHead,
	http.MethodOptions,
	http.MethodTrace,
}

type methodHandler func(req *http.Request) (interface{}, error)

func handlerFor(v Viewer, method string) (methodHandler, bool) {
	switch method {
	case http.MethodGet:
		if h, ok := v.(GetHandler); ok {
			return h.Get, true
		}
	case http.MethodPost:
		if h, ok := v.(PostHandler); ok {
			return h.Post, true
		}
	case http.MethodPut:
		if h, ok := v.(PutHandler); ok {
			return h.Put, true
		}
	case http.MethodPatch:
		if h, ok := v.(PatchHandler); ok {
			return h.Patch, true
		}
	case http.MethodDelete:
		if h, ok := v.(DeleteHandler); ok {
			return h.Delete, true
		}
	case http.MethodHead:
		if h, ok := v.(HeadHandler); ok {
			return h.Head, true
		}
		if h, ok := v.(GetHandler); ok {
			return h.Get, true
		}
	case http.MethodOptions:
		if h, ok := v.(OptionsHandler); ok {
			return h.Options, true
		}
		return func(req *http.Request) (interface{}, error) {
			return options(v), nil
		}, true
	case http.MethodTrace:
		if h, ok := v.(TraceHandler); ok {
			return h.Trace, true
		}
	}

	return nil, false
}

// AllowedMethods returns the methods v can handle
func AllowedMethods(v Viewer) []string {
	var methods []string
	for _, method := range Methods {
		if _, ok := handlerFor(v, method); ok {
			methods = append(methods, method)
		}
	}

	return methods
}

// Dispatch routes req to the method handler of v. Methods v does not
// handle get a 405 *Response. Errors returned by the handler are
// returned unchanged
func Dispatch(v Viewer, req *http.Request) (interface{}, error) {
	handler, ok := handlerFor(v, strings.ToUpper(req.Method))
	if !ok {
		return MethodNotAllowed(v), nil
	}

	return handler(req)
}

// MethodNotAllowed is the response for a method v does not handle
func MethodNotAllowed(v Viewer) *Response {
	res := NewResponse(http.StatusMethodNotAllowed)
	res.Header.Set("Allow", strings.Join(AllowedMethods(v), ", "))
	return res
}

func options(v Viewer) *Response {
	res := NewResponse(http.StatusOK)
	res.Header.Set("Allow", strings.Join(AllowedMethods(v), ", "))
	res.Header.Set("Content-Length", "0")
	return res
}
