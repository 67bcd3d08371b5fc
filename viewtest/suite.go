package viewtest

import (
	"net/http"

	"github.com/stretchr/testify/suite"

	"github.com/oasislabs/viewtest/request"
	"github.com/oasislabs/viewtest/view"
)

// ViewSuite is the base of testify suites that test a single view.
// Config is read by SetupTest, which creates a new ViewTestCase
// before every test. Suites that define their own SetupTest must
// call the SetupTest of the ViewSuite
type ViewSuite struct {
	suite.Suite
	*ViewTestCase

	Config Config
}

// SetupTest implements suite.SetupTestSuite
func (s *ViewSuite) SetupTest() {
	tc, err := New(s.Config)
	s.Require().NoError(err)
	s.ViewTestCase = tc
}

// Request builds a request with the factory of the test case and
// fails the test if that is not possible
func (s *ViewSuite) Request(method, path string, opts ...request.Option) *http.Request {
	req, err := s.Factory.CreateRequest(method, path, opts...)
	s.Require().NoError(err)
	return req
}

func (s *ViewSuite) Get(path string, opts ...request.Option) *http.Request {
	return s.Request(http.MethodGet, path, opts...)
}

func (s *ViewSuite) Post(path string, opts ...request.Option) *http.Request {
	return s.Request(http.MethodPost, path, opts...)
}

func (s *ViewSuite) Put(path string, opts ...request.Option) *http.Request {
	return s.Request(http.MethodPut, path, opts...)
}

func (s *ViewSuite) Patch(path string, opts ...request.Option) *http.Request {
	return s.Request(http.MethodPatch, path, opts...)
}

func (s *ViewSuite) Delete(path string, opts ...request.Option) *http.Request {
	return s.Request(http.MethodDelete, path, opts...)
}

// MustServe serves req and fails the test if the view
// returns an error
func (s *ViewSuite) MustServe(req *http.Request) interface{} {
	v, err := s.Serve(req, nil, nil)
	s.Require().NoError(err)
	return v
}

// MustCreateViewObject creates a view object and fails the test if
// that is not possible
func (s *ViewSuite) MustCreateViewObject(req *http.Request, args view.Args, kwargs view.Kwargs) view.Viewer {
	v, err := s.CreateViewObject(req, args, kwargs)
	s.Require().NoError(err)
	return v
}
