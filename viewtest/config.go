package viewtest

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/oasislabs/viewtest/config"
	"github.com/oasislabs/viewtest/errors"
	"github.com/oasislabs/viewtest/log"
	"github.com/oasislabs/viewtest/request"
	"github.com/oasislabs/viewtest/view"
)

// Config declares the view under test and how requests for it
// are built. Exactly one of ViewClass and ViewFunction must be set
type Config struct {
	// ViewClass is the class based view under test
	ViewClass *view.Class

	// ViewFunction is the function view under test
	ViewFunction view.Func

	// ViewKwargs are always passed to the view. Class based views are
	// initialized with them, function views receive them on every call
	ViewKwargs view.Kwargs

	// MiddlewareClasses are applied in order to every request the
	// factory of the test case builds
	MiddlewareClasses []request.Middleware

	// Logger is optional, by default only warnings and errors
	// are logged
	Logger log.Logger

	// Factory is optional, request.NewConfig is used if nil
	Factory *request.Config
}

// Validate returns all the problems found in the configuration
// aggregated in a single error
func (c Config) Validate() error {
	var result *multierror.Error

	switch {
	case c.ViewClass == nil && c.ViewFunction == nil:
		result = multierror.Append(result, errors.New(errors.ErrViewNotConfigured, nil))
	case c.ViewClass != nil && c.ViewFunction != nil:
		result = multierror.Append(result, errors.New(errors.ErrViewAmbiguous,
			fmt.Errorf("view class %s and a view function are both set", c.ViewClass.Name())))
	}

	for i, m := range c.MiddlewareClasses {
		if m == nil {
			result = multierror.Append(result, errors.New(errors.ErrInvalidMiddleware,
				fmt.Errorf("middleware at position %d is nil", i)))
		}
	}

	return result.ErrorOrNil()
}

// Settings is the part of the configuration that can be provided
// through flags, the environment or a configuration file
type Settings struct {
	Logging log.Config
	Factory request.Config
}

// Binders implements config.Config for Settings
func (s *Settings) Binders() []config.Binder {
	return []config.Binder{&s.Logging, &s.Factory}
}

// Log implements log.Loggable for Settings
func (s *Settings) Log(fields log.Fields) {
	s.Logging.Log(fields)
	s.Factory.Log(fields)
}

// Apply sets the logger and the factory configuration of c
// from the settings
func (s *Settings) Apply(c *Config) {
	factory := s.Factory
	c.Logger = log.New(&s.Logging)
	c.Factory = &factory
}

// LoadConfig reads the settings from args, the environment
// variables prefixed with VIEWTEST and the configuration file
// set with --config.path. Unknown flags in args are ignored
func LoadConfig(args []string) (*Settings, error) {
	settings := &Settings{}

	parser, err := config.Generate(settings)
	if err != nil {
		return nil, err
	}

	if err := parser.Parse(args); err != nil {
		return nil, err
	}

	return settings, nil
}
