package request

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/oasislabs/viewtest/errors"
	"github.com/oasislabs/viewtest/log"
)

// FactoryProps are the properties used to create a new Factory
type FactoryProps struct {
	// Middleware applied in order to every request the factory builds
	Middleware []Middleware

	// Logger is optional, by default entries are only written
	// at warn level or above
	Logger log.Logger

	// Config is optional, NewConfig is used if nil
	Config *Config
}

// Factory builds synthetic requests. It never performs any IO, the
// requests it returns are meant to be handed directly to a view
type Factory struct {
	middleware []Middleware
	logger     log.Logger
	config     Config
}

// NewFactory creates a new Factory. It panics if one of the
// middleware is nil
func NewFactory(props FactoryProps) *Factory {
	for _, m := range props.Middleware {
		if m == nil {
			panic("middleware must not be nil")
		}
	}

	logger := props.Logger
	if logger == nil {
		logger = log.New(&log.Config{Level: "warn"})
	}

	config := props.Config
	if config == nil {
		config = NewConfig()
	}

	return &Factory{
		middleware: append([]Middleware(nil), props.Middleware...),
		logger:     logger.ForClass("request", "Factory"),
		config:     *config,
	}
}

// Middleware returns the middleware of the factory in the order
// they are applied
func (f *Factory) Middleware() []Middleware {
	return append([]Middleware(nil), f.middleware...)
}

// Config returns the configuration of the factory
func (f *Factory) Config() Config {
	return f.config
}

// CreateRequest builds a request and applies all the middleware to
// it. Errors returned by a middleware are returned as they are
func (f *Factory) CreateRequest(method, path string, opts ...Option) (*http.Request, error) {
	props := Props{
		Header:  make(http.Header),
		Extra:   make(map[string]string),
		Secure:  f.config.Secure,
		Context: context.Background(),
	}

	for _, opt := range opts {
		opt(&props)
	}

	req, err := f.build(strings.ToUpper(method), path, &props)
	if err != nil {
		f.logger.Debug(props.Context, "failed to build request", log.MapFields{
			"path":      path,
			"method":    method,
			"call_type": "RequestCreateFailure",
			"err":       err.Error(),
		})
		return nil, err
	}

	req, err = f.process(req, props.Middleware)
	if err != nil {
		return nil, err
	}

	f.logger.Debug(req.Context(), "", log.RequestFields(req), log.MapFields{
		"call_type": "RequestCreateSuccess",
	})

	return req, nil
}

// Generic is an alias of CreateRequest
func (f *Factory) Generic(method, path string, opts ...Option) (*http.Request, error) {
	return f.CreateRequest(method, path, opts...)
}

func (f *Factory) Get(path string, opts ...Option) (*http.Request, error) {
	return f.CreateRequest(http.MethodGet, path, opts...)
}

func (f *Factory) Post(path string, opts ...Option) (*http.Request, error) {
	return f.CreateRequest(http.MethodPost, path, opts...)
}

func (f *Factory) Put(path string, opts ...Option) (*http.Request, error) {
	return f.CreateRequest(http.MethodPut, path, opts...)
}

func (f *Factory) Patch(path string, opts ...Option) (*http.Request, error) {
	return f.CreateRequest(http.MethodPatch, path, opts...)
}

func (f *Factory) Delete(path string, opts ...Option) (*http.Request, error) {
	return f.CreateRequest(http.MethodDelete, path, opts...)
}

func (f *Factory) Head(path string, opts ...Option) (*http.Request, error) {
	return f.CreateRequest(http.MethodHead, path, opts...)
}

func (f *Factory) Options(path string, opts ...Option) (*http.Request, error) {
	return f.CreateRequest(http.MethodOptions, path, opts...)
}

func (f *Factory) Trace(path string, opts ...Option) (*http.Request, error) {
	return f.CreateRequest(http.MethodTrace, path, opts...)
}

func (f *Factory) build(method, path string, props *Props) (*http.Request, error) {
	if !strings.HasPrefix(path, "/") && !strings.Contains(path, "://") {
		path = "/" + path
	}

	u, err := url.Parse(path)
	if err != nil {
		return nil, errors.New(errors.ErrInvalidPath, err)
	}

	if len(u.Host) == 0 {
		u.Host = f.config.ServerName
	}

	if u.Scheme == "https" {
		props.Secure = true
	}

	u.Scheme = "http"
	if props.Secure {
		u.Scheme = "https"
	}

	if len(u.Path) == 0 {
		u.Path = "/"
	}

	var (
		body        []byte
		contentType = props.ContentType
	)

	if hasQueryData(method) {
		if err := encodeQuery(u, props.Data); err != nil {
			return nil, err
		}
	} else {
		body, contentType, err = encodeBody(method, props.Data, props.ContentType)
		if err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(props.Context, method, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, errors.New(errors.ErrInvalidPath, err)
	}

	req.RequestURI = u.RequestURI()
	req.RemoteAddr = f.config.RemoteAddr
	if props.Secure {
		req.TLS = &tls.ConnectionState{
			Version:           tls.VersionTLS12,
			HandshakeComplete: true,
			ServerName:        req.Host,
		}
	}

	for key, values := range props.Header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	if len(contentType) > 0 {
		req.Header.Set("Content-Type", contentType)
	}

	if err := applyExtra(req, props.Extra); err != nil {
		return nil, err
	}

	return req, nil
}

func (f *Factory) process(req *http.Request, extra []Middleware) (*http.Request, error) {
	pipeline := append(f.Middleware(), extra...)

	for i, m := range pipeline {
		if m == nil {
			return nil, errors.New(errors.ErrInvalidMiddleware,
				fmt.Errorf("middleware at position %d is nil", i))
		}

		next, res, err := m.ProcessRequest(req)
		if err != nil {
			f.logger.Debug(req.Context(), "middleware failed to process request",
				log.RequestFields(req), log.MapFields{
					"middleware": i,
					"call_type":  "MiddlewareFailure",
					"err":        err.Error(),
				})
			return nil, err
		}

		if next != nil {
			req = next
		}

		if res != nil {
			f.logger.Debug(req.Context(), "middleware returned a response",
				log.RequestFields(req), log.MapFields{
					"middleware":  i,
					"status_code": res.StatusCode,
					"call_type":   "MiddlewareShortCircuit",
				})
			return withShortCircuit(req, res), nil
		}
	}

	return req, nil
}
