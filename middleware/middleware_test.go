package middleware

import (
	"io/ioutil"
	"net/http"
	"testing"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oasislabs/viewtest/log"
	"github.com/oasislabs/viewtest/request"
)

var logger = log.NewLogrus(log.LogrusLoggerProperties{
	Level:  logrus.DebugLevel,
	Output: ioutil.Discard,
})

func newFactory(middleware ...request.Middleware) *request.Factory {
	return request.NewFactory(request.FactoryProps{
		Middleware: middleware,
		Logger:     logger,
	})
}

func newCors() *Cors {
	return NewCors(CorsProps{
		AllowedOrigins: []string{"http://example.com"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})
}

func TestCorsPreflightShortCircuits(t *testing.T) {
	req, err := newFactory(newCors(), Flag("after")).Options("/resource",
		request.WithHeader("Origin", "http://example.com"),
		request.WithHeader("Access-Control-Request-Method", http.MethodPost))
	require.NoError(t, err)

	res, ok := request.ShortCircuit(req)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "http://example.com", res.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.MethodPost, res.Header.Get("Access-Control-Allow-Methods"))
	assert.False(t, FlagSet(req, "after"))
}

func TestCorsActualRequestPassesThrough(t *testing.T) {
	req, err := newFactory(newCors(), Flag("after")).Get("/resource",
		request.WithHeader("Origin", "http://example.com"))
	require.NoError(t, err)

	_, ok := request.ShortCircuit(req)
	assert.False(t, ok)
	assert.True(t, FlagSet(req, "after"))
	assert.Equal(t, "http://example.com", CorsHeaders(req).Get("Access-Control-Allow-Origin"))
}

func TestCorsOriginNotAllowed(t *testing.T) {
	req, err := newFactory(newCors()).Get("/resource",
		request.WithHeader("Origin", "http://other.com"))
	require.NoError(t, err)

	_, ok := request.ShortCircuit(req)
	assert.False(t, ok)
	assert.Empty(t, CorsHeaders(req).Get("Access-Control-Allow-Origin"))
}

func TestCorsHeadersNotProcessed(t *testing.T) {
	req, err := newFactory().Get("/resource")
	require.NoError(t, err)

	assert.Empty(t, CorsHeaders(req))
}

func TestRequestIDGenerated(t *testing.T) {
	req, err := newFactory(RequestID()).Get("/")
	require.NoError(t, err)

	_, err = uuid.Parse(req.Header.Get(HeaderRequestID))
	assert.NoError(t, err)
}

func TestRequestIDKept(t *testing.T) {
	req, err := newFactory(RequestID()).Get("/",
		request.WithHeader(HeaderRequestID, "my-request"))
	require.NoError(t, err)

	assert.Equal(t, "my-request", req.Header.Get(HeaderRequestID))
}

func TestTraceID(t *testing.T) {
	req, err := newFactory(TraceID(42)).Get("/")
	require.NoError(t, err)

	assert.Equal(t, "42", req.Header.Get(HeaderTraceID))
	assert.Equal(t, int64(42), log.GetTraceID(req.Context()))
}

func TestHeaders(t *testing.T) {
	req, err := newFactory(Headers(map[string]string{
		"X-Api-Version": "2",
		"Accept":        "application/json",
	})).Get("/")
	require.NoError(t, err)

	assert.Equal(t, "2", req.Header.Get("X-Api-Version"))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
}

func TestFlags(t *testing.T) {
	req, err := newFactory(Flag("first"), Flag("second")).Get("/")
	require.NoError(t, err)

	assert.True(t, FlagSet(req, "first"))
	assert.True(t, FlagSet(req, "second"))
	assert.False(t, FlagSet(req, "third"))
}

func parseToken(t *testing.T, value string) jwt.MapClaims {
	token, err := jwt.Parse(value, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	return token.Claims.(jwt.MapClaims)
}

func TestBearer(t *testing.T) {
	req, err := newFactory(NewBearer(BearerProps{
		Key:    []byte("secret"),
		Claims: map[string]interface{}{"scope": "read", "name": "alice"},
	})).Get("/")
	require.NoError(t, err)

	header := req.Header.Get("Authorization")
	require.Regexp(t, "^Bearer ", header)

	claims := parseToken(t, header[len("Bearer "):])
	assert.Equal(t, "read", claims["scope"])
	assert.Equal(t, "alice", claims["name"])
}

func TestBearerCustomHeader(t *testing.T) {
	req, err := newFactory(NewBearer(BearerProps{
		Key:    []byte("secret"),
		Claims: map[string]interface{}{"scope": "write"},
		Header: "X-JWT-AUTH",
		Scheme: "-",
	})).Get("/")
	require.NoError(t, err)

	claims := parseToken(t, req.Header.Get("X-JWT-AUTH"))
	assert.Equal(t, "write", claims["scope"])
	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestNewBearerNoKey(t *testing.T) {
	assert.Panics(t, func() {
		NewBearer(BearerProps{})
	})
}
