package request

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/oasislabs/viewtest/errors"
)

const extraHeaderPrefix = "HTTP_"

// HeaderName converts an environment style key such as
// HTTP_X_REQUESTED_WITH into the header name X-Requested-With
func HeaderName(key string) string {
	return http.CanonicalHeaderKey(strings.ReplaceAll(strings.TrimPrefix(key, extraHeaderPrefix), "_", "-"))
}

// applyExtra applies environment style keys to req. Keys are applied
// in sorted order so the result does not depend on map iteration
func applyExtra(req *http.Request, extra map[string]string) error {
	keys := make([]string, 0, len(extra))
	for key := range extra {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := extra[key]

		switch {
		case strings.HasPrefix(key, extraHeaderPrefix):
			req.Header.Set(HeaderName(key), value)
		case key == "CONTENT_TYPE", key == "CONTENT_LENGTH":
			req.Header.Set(HeaderName(key), value)
		case key == "REMOTE_ADDR":
			req.RemoteAddr = value
		case key == "SERVER_NAME":
			req.Host = value
			req.URL.Host = value
		case key == "QUERY_STRING":
			req.URL.RawQuery = value
			req.RequestURI = req.URL.RequestURI()
		default:
			return errors.New(errors.ErrInvalidExtra, fmt.Errorf("unknown key %s", key))
		}
	}

	return nil
}
