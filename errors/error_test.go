package errors

import (
	"bytes"
	"context"
	stderr "errors"
	"io/ioutil"
	"testing"

	"github.com/hashicorp/go-multierror"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/oasislabs/viewtest/log"
)

func TestErrorNoCause(t *testing.T) {
	err := New(ErrViewNotConfigured, nil)

	assert.Equal(t, "[1001] error code ConfigurationError with desc "+
		"Either a view class or a view function must be configured.", err.Error())
}

func TestErrorWithCause(t *testing.T) {
	err := New(ErrInvalidPath, stderr.New("bad escape"))

	assert.Equal(t, "[2001] error code InputError with desc "+
		"Request path could not be parsed. with cause bad escape", err.Error())
}

func TestIsWrapped(t *testing.T) {
	err := pkgerrors.Wrap(New(ErrViewAmbiguous, nil), "setup failed")

	assert.True(t, Is(err, ErrViewAmbiguous))
	assert.False(t, Is(err, ErrViewNotConfigured))
	assert.True(t, IsCategory(err, ConfigurationError))
	assert.False(t, IsCategory(err, InputError))
}

func TestIsNotError(t *testing.T) {
	err := stderr.New("some error")

	assert.False(t, Is(err, ErrInternalError))
	assert.False(t, IsCategory(err, InternalError))
}

func TestUnwrap(t *testing.T) {
	cause := stderr.New("cause")
	err := New(ErrEncodeData, cause)

	assert.True(t, stderr.Is(err, cause))
}

func TestErrorLog(t *testing.T) {
	buffer := bytes.NewBufferString("")
	logger := log.NewLogrus(log.LogrusLoggerProperties{
		Level:     logrus.DebugLevel,
		Output:    buffer,
		Formatter: &logrus.JSONFormatter{TimestampFormat: "none"},
	})

	logger.Info(context.Background(), "failed", New(ErrViewClassRequired, nil))

	p, err := ioutil.ReadAll(buffer)
	assert.Nil(t, err)
	assert.Equal(t, "{"+
		"\"err\":\"A view class is required to create a view object.\","+
		"\"errorCode\":1003,"+
		"\"level\":\"info\","+
		"\"msg\":\"failed\","+
		"\"time\":\"none\","+
		"\"traceId\":-1"+
		"}\n", string(p))
}

func TestIsMultiError(t *testing.T) {
	err := multierror.Append(
		New(ErrViewNotConfigured, nil),
		New(ErrInvalidMiddleware, stderr.New("middleware 1 is nil")))

	assert.True(t, Is(err, ErrViewNotConfigured))
	assert.True(t, Is(err, ErrInvalidMiddleware))
	assert.False(t, Is(err, ErrViewAmbiguous))
	assert.True(t, IsCategory(err, ConfigurationError))
	assert.False(t, IsCategory(err, InputError))
}
