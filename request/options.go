package request

import (
	"context"
	"net/http"
)

// Props are the per request properties a Factory builds a
// request from
type Props struct {
	// Data is the payload of the request. For GET, HEAD and TRACE it
	// is added to the query string, for other methods it is encoded
	// into the body according to ContentType
	Data interface{}

	// ContentType of the body. When empty a default for the method
	// and the type of Data is used
	ContentType string

	// Header is added to the request headers
	Header http.Header

	// Extra are environment style keys such as HTTP_AUTHORIZATION
	// or REMOTE_ADDR
	Extra map[string]string

	// Secure builds an https request with TLS state set
	Secure bool

	// Context is the context of the request
	Context context.Context

	// Middleware are applied after the middleware of the factory
	Middleware []Middleware
}

// Option sets a property of a request
type Option func(*Props)

func WithData(data interface{}) Option {
	return func(p *Props) {
		p.Data = data
	}
}

func WithContentType(contentType string) Option {
	return func(p *Props) {
		p.ContentType = contentType
	}
}

// WithJSON sets data to be encoded as JSON
func WithJSON(data interface{}) Option {
	return func(p *Props) {
		p.Data = data
		p.ContentType = ContentTypeJSON
	}
}

func WithHeader(key, value string) Option {
	return func(p *Props) {
		p.Header.Add(key, value)
	}
}

func WithExtra(key, value string) Option {
	return func(p *Props) {
		p.Extra[key] = value
	}
}

func WithSecure() Option {
	return func(p *Props) {
		p.Secure = true
	}
}

func WithContext(ctx context.Context) Option {
	return func(p *Props) {
		p.Context = ctx
	}
}

// WithMiddleware adds middleware for a single request
func WithMiddleware(middleware ...Middleware) Option {
	return func(p *Props) {
		p.Middleware = append(p.Middleware, middleware...)
	}
}
