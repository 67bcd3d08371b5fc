package viewtest

import (
	"context"
	"net/http"
	"strings"

	"github.com/oasislabs/viewtest/errors"
	"github.com/oasislabs/viewtest/log"
	"github.com/oasislabs/viewtest/request"
	"github.com/oasislabs/viewtest/stats"
	"github.com/oasislabs/viewtest/view"
)

// Results Serve counts per method
const (
	ResultOK               = "ok"
	ResultError            = "error"
	ResultShortCircuit     = "short_circuit"
	ResultMethodNotAllowed = "method_not_allowed"
)

type descriptor int

const (
	classView descriptor = iota
	functionView
)

// ViewTestCase is a fixture for a single view. Factory builds the
// requests for the view and View is the dispatch entry point a router
// would use for it. For a function view View is the function itself
type ViewTestCase struct {
	Factory *request.Factory
	View    view.Func

	descriptor descriptor
	class      *view.Class
	kwargs     view.Kwargs
	logger     log.Logger
	tracker    *stats.MethodTracker
}

// ViewRequestFactory is the fixture for code that builds requests and
// views without a test suite
type ViewRequestFactory = ViewTestCase

// New creates a ViewTestCase. It fails with a ConfigurationError if
// the configuration is not valid
func New(config Config) (*ViewTestCase, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = log.New(&log.Config{Level: "warn"})
	}

	tc := &ViewTestCase{
		Factory: request.NewFactory(request.FactoryProps{
			Middleware: config.MiddlewareClasses,
			Logger:     logger,
			Config:     config.Factory,
		}),
		kwargs: config.ViewKwargs,
		logger: logger.ForClass("viewtest", "ViewTestCase"),
		tracker: stats.NewMethodTracker(stats.MethodTrackerProps{
			Methods: view.Methods,
			Results: []string{ResultOK, ResultError, ResultShortCircuit, ResultMethodNotAllowed},
		}),
	}

	if config.ViewClass != nil {
		fn, err := config.ViewClass.AsView(config.ViewKwargs)
		if err != nil {
			return nil, err
		}

		tc.descriptor = classView
		tc.class = config.ViewClass
		tc.View = fn
	} else {
		tc.descriptor = functionView
		tc.View = config.ViewFunction
	}

	return tc, nil
}

// Serve hands req to View the way a server would. A request that a
// middleware short-circuited gets the response of that middleware
// and never reaches the view. Function views receive the ViewKwargs
// merged with kwargs
func (tc *ViewTestCase) Serve(req *http.Request, args view.Args, kwargs view.Kwargs) (interface{}, error) {
	method := strings.ToUpper(req.Method)

	return tc.tracker.InstrumentResult(method, func() *stats.TrackResult {
		if res, ok := request.ShortCircuit(req); ok {
			tc.logger.Debug(req.Context(), "request short-circuited by middleware",
				log.RequestFields(req), log.MapFields{
					"status_code": res.StatusCode,
					"call_type":   "ViewServeShortCircuit",
				})
			return &stats.TrackResult{Value: res, Type: ResultShortCircuit}
		}

		if tc.descriptor == functionView && len(tc.kwargs) > 0 {
			kwargs = tc.kwargs.Merge(kwargs)
		}

		v, err := tc.View(req, args, kwargs)
		if err != nil {
			tc.logger.Debug(req.Context(), "view failed to serve request",
				log.RequestFields(req), log.MapFields{
					"call_type": "ViewServeFailure",
					"err":       err.Error(),
				})
			return &stats.TrackResult{Value: v, Error: err, Type: ResultError}
		}

		tc.logger.Debug(req.Context(), "", log.RequestFields(req), log.MapFields{
			"call_type": "ViewServeSuccess",
		})

		if res, ok := v.(*view.Response); ok && res.StatusCode == http.StatusMethodNotAllowed {
			return &stats.TrackResult{Value: v, Type: ResultMethodNotAllowed}
		}

		return &stats.TrackResult{Value: v, Type: ResultOK}
	})
}

// CreateViewObject creates a view of the view class without
// dispatching a request to it. The view is initialized with the
// ViewKwargs merged with kwargs, and its Request, Args and Kwargs are
// set the way dispatching would set them. req may be nil
func (tc *ViewTestCase) CreateViewObject(req *http.Request, args view.Args, kwargs view.Kwargs) (view.Viewer, error) {
	if tc.class == nil {
		err := errors.New(errors.ErrViewClassRequired, nil)
		tc.logger.Debug(context.Background(), "failed to create view object", err)
		return nil, err
	}

	merged := tc.kwargs.Merge(kwargs)
	v, err := tc.class.New(merged)
	if err != nil {
		return nil, err
	}

	v.Base().Setup(req, args, merged)
	return v, nil
}

// Stats returns how many requests Serve handled per method
// and result
func (tc *ViewTestCase) Stats() stats.Metrics {
	return tc.tracker.Stats()
}
