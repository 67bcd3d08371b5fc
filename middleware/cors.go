package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/rs/cors"

	"github.com/oasislabs/viewtest/view"
)

// CorsProps properties used to define the behaviour
// of the CORS implementation
type CorsProps struct {
	// AllowedOrigins is a list of origins a cross-domain request can be executed from.
	// If the special "*" value is present in the list, all origins will be allowed.
	// Default value is ["*"]
	AllowedOrigins []string

	// AllowedMethods is a list of methods the client is allowed to use with
	// cross-domain requests. Default value is simple methods (HEAD, GET and POST).
	AllowedMethods []string

	// AllowedHeaders is list of non simple headers the client is allowed to use with
	// cross-domain requests.
	AllowedHeaders []string

	// ExposedHeaders indicates which headers are safe to expose to the API of a CORS
	// API specification
	ExposedHeaders []string

	// MaxAge indicates how long (in seconds) the results of a preflight request
	// can be cached
	MaxAge int

	// AllowCredentials indicates whether the request can include user credentials like
	// cookies, HTTP authentication or client side SSL certificates.
	AllowCredentials bool
}

// Cors handles CORS https://developer.mozilla.org/en-US/docs/Web/HTTP/CORS
// for synthetic requests. Preflight requests are answered directly, so
// they never reach the view. For other requests the headers a CORS
// aware server would add to the response are kept in the request's
// context and can be read with CorsHeaders
type Cors struct {
	cors *cors.Cors
}

// NewCors creates a new instance of the Cors middleware
func NewCors(props CorsProps) *Cors {
	return &Cors{
		cors: cors.New(cors.Options{
			AllowedOrigins:     props.AllowedOrigins,
			AllowedMethods:     props.AllowedMethods,
			AllowedHeaders:     props.AllowedHeaders,
			ExposedHeaders:     props.ExposedHeaders,
			MaxAge:             props.MaxAge,
			AllowCredentials:   props.AllowCredentials,
			OptionsPassthrough: false,
			Debug:              false,
		}),
	}
}

// ProcessRequest is the implementation of request.Middleware for Cors
func (m *Cors) ProcessRequest(req *http.Request) (*http.Request, *view.Response, error) {
	var next *http.Request
	recorder := httptest.NewRecorder()

	m.cors.ServeHTTP(recorder, req, func(w http.ResponseWriter, r *http.Request) {
		next = r
	})

	if next == nil {
		return req, &view.Response{
			StatusCode: recorder.Code,
			Header:     recorder.Header().Clone(),
			Body:       recorder.Body.Bytes(),
		}, nil
	}

	ctx := context.WithValue(next.Context(), contextKeyCorsHeaders, recorder.Header().Clone())
	return next.WithContext(ctx), nil, nil
}

// CorsHeaders returns the response headers the Cors middleware
// computed for req
func CorsHeaders(req *http.Request) http.Header {
	header, ok := req.Context().Value(contextKeyCorsHeaders).(http.Header)
	if !ok {
		return make(http.Header)
	}

	return header
}
