package view

import (
	"fmt"
	"net/http"
	"reflect"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"

	"github.com/oasislabs/viewtest/errors"
)

// baseField is the name of the embedded View, which is
// never assigned from kwargs
const baseField = "View"

// Class is a handler type. It creates a new view for every request
// from a prototype whose field values act as defaults
type Class struct {
	prototype reflect.Value
}

// NewClass creates a Class from a prototype, a pointer to a struct
// that embeds View
func NewClass(prototype Viewer) (*Class, error) {
	if prototype == nil {
		return nil, errors.New(errors.ErrInvalidViewClass, nil)
	}

	value := reflect.ValueOf(prototype)
	if value.Kind() != reflect.Ptr || value.IsNil() || value.Elem().Kind() != reflect.Struct {
		return nil, errors.New(errors.ErrInvalidViewClass,
			fmt.Errorf("unexpected prototype type %T", prototype))
	}

	return &Class{prototype: value.Elem()}, nil
}

// MustClass is NewClass for package level declarations. It panics
// if the prototype is invalid
func MustClass(prototype Viewer) *Class {
	c, err := NewClass(prototype)
	if err != nil {
		panic(err)
	}

	return c
}

// Name returns the name of the struct type of the class
func (c *Class) Name() string {
	return c.prototype.Type().Name()
}

// AllowedMethods returns the methods views of the class handle
func (c *Class) AllowedMethods() []string {
	return AllowedMethods(c.instance())
}

func (c *Class) instance() Viewer {
	value := reflect.New(c.prototype.Type())
	value.Elem().Set(c.prototype)

	v := value.Interface().(Viewer)
	*v.Base() = View{}
	return v
}

// New creates a view of the class and assigns kwargs to the fields
// of the view with a matching name or `view` tag. snake_case keys
// match CamelCase fields, so page_size is assigned to PageSize. Keys
// that do not match a field are ignored
func (c *Class) New(kwargs Kwargs) (Viewer, error) {
	v := c.instance()
	if err := decode(v, kwargs, nil); err != nil {
		return nil, err
	}

	return v, nil
}

// AsView returns the dispatch entry point for the class. Every call
// creates a view initialized with initKwargs, sets it up with the
// request and arguments of the call and dispatches the request. Keys
// in initKwargs must match a field of the class and must not be the
// name of an HTTP method or of the embedded View
func (c *Class) AsView(initKwargs Kwargs) (Func, error) {
	if err := c.checkInitKwargs(initKwargs); err != nil {
		return nil, err
	}

	return func(req *http.Request, args Args, kwargs Kwargs) (interface{}, error) {
		v, err := c.New(initKwargs)
		if err != nil {
			return nil, err
		}

		v.Base().Setup(req, args, kwargs)
		return Dispatch(v, req)
	}, nil
}

func (c *Class) checkInitKwargs(initKwargs Kwargs) error {
	var invalid []string
	for key := range initKwargs {
		if strings.EqualFold(key, baseField) {
			invalid = append(invalid, key)
		}

		for _, method := range Methods {
			if strings.EqualFold(key, method) {
				invalid = append(invalid, key)
			}
		}
	}

	var md mapstructure.Metadata
	if err := decode(c.instance(), initKwargs, &md); err != nil {
		return err
	}

	invalid = lo.Uniq(append(invalid, md.Unused...))
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return errors.New(errors.ErrInvalidViewKwargs,
			fmt.Errorf("%s does not accept %s", c.Name(), strings.Join(invalid, ", ")))
	}

	return nil
}

func decode(v Viewer, kwargs Kwargs, md *mapstructure.Metadata) error {
	if len(kwargs) == 0 {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata:  md,
		Result:    v,
		TagName:   "view",
		MatchName: matchName,
	})
	if err != nil {
		return errors.New(errors.ErrInternalError, err)
	}

	fields := lo.OmitBy(map[string]interface{}(kwargs), func(key string, _ interface{}) bool {
		return strings.EqualFold(key, baseField)
	})

	if err := decoder.Decode(fields); err != nil {
		return errors.New(errors.ErrInvalidViewKwargs, err)
	}

	return nil
}

func matchName(key, field string) bool {
	return strings.EqualFold(key, field) || strcase.ToCamel(key) == field
}
