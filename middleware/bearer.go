package middleware

import (
	"fmt"
	"net/http"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"

	"github.com/oasislabs/viewtest/view"
)

// BearerProps define the token the Bearer middleware signs
type BearerProps struct {
	// Key used to sign the token with HS256
	Key []byte

	// Claims of the token
	Claims map[string]interface{}

	// Header is the header that carries the token, by
	// default Authorization
	Header string

	// Scheme prefixes the token, by default Bearer. Set it to
	// "-" to send the bare token
	Scheme string
}

// Bearer authenticates requests with a signed JWT
type Bearer struct {
	props BearerProps
}

// NewBearer creates a new instance of the Bearer middleware. It
// panics if no key is provided
func NewBearer(props BearerProps) *Bearer {
	if len(props.Key) == 0 {
		panic("key must be set")
	}

	if len(props.Header) == 0 {
		props.Header = "Authorization"
	}

	if len(props.Scheme) == 0 {
		props.Scheme = "Bearer"
	}

	return &Bearer{props: props}
}

// ProcessRequest is the implementation of request.Middleware for Bearer
func (m *Bearer) ProcessRequest(req *http.Request) (*http.Request, *view.Response, error) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims(m.props.Claims)).
		SignedString(m.props.Key)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to sign token")
	}

	if m.props.Scheme == "-" {
		req.Header.Set(m.props.Header, token)
	} else {
		req.Header.Set(m.props.Header, fmt.Sprintf("%s %s", m.props.Scheme, token))
	}

	return req, nil, nil
}
