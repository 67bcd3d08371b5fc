package view

import (
	"net/http"
	"net/http/httptest"
)

// FromHTTPHandler converts a standard http.Handler into a Func. The
// response written by the handler is recorded and returned as a
// *Response. Args and kwargs are not visible to the handler
func FromHTTPHandler(h http.Handler) Func {
	return func(req *http.Request, _ Args, _ Kwargs) (interface{}, error) {
		recorder := httptest.NewRecorder()
		h.ServeHTTP(recorder, req)

		res := recorder.Result()
		defer func() { _ = res.Body.Close() }()

		return &Response{
			StatusCode: recorder.Code,
			Header:     res.Header,
			Body:       recorder.Body.Bytes(),
		}, nil
	}
}
