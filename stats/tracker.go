package stats

import "sort"

// TrackResult is the result of an instrumented
// function
type TrackResult struct {
	// Value of the instrumented function that is passed on
	// to the caller
	Value interface{}

	// Error of the instrumented function that is passed on
	// to the caller
	Error error

	// Type categorizes the result for counting
	Type string
}

// MethodTracker counts calls per method and result type. Everything
// a MethodTracker tracks is declared at creation, so it can be read
// while calls are being tracked
type MethodTracker struct {
	count map[string]*CounterGroup
}

// MethodTrackerProps are the properties used to define
// the behaviour of a MethodTracker
type MethodTrackerProps struct {
	Methods []string
	Results []string
}

// NewMethodTracker creates a new MethodTracker with
// the specified properties
func NewMethodTracker(props MethodTrackerProps) *MethodTracker {
	count := make(map[string]*CounterGroup)

	for _, key := range props.Methods {
		count[key] = NewCounterGroup(props.Results...)
	}

	count[Undefined] = NewCounterGroup(props.Results...)

	return &MethodTracker{count: count}
}

// Methods returns the sorted list of methods tracked
func (t *MethodTracker) Methods() []string {
	methods := make([]string, 0, len(t.count))
	for method := range t.count {
		methods = append(methods, method)
	}

	sort.Strings(methods)
	return methods
}

// Count returns the counter group for method
func (t *MethodTracker) Count(method string) (*CounterGroup, bool) {
	group, ok := t.count[method]
	return group, ok
}

// InstrumentResult calls fn and counts its result under method
func (t *MethodTracker) InstrumentResult(
	method string,
	fn func() *TrackResult,
) (interface{}, error) {
	result := fn()
	t.AddCount(method, result.Type)
	return result.Value, result.Error
}

// AddCount adds a count to a method
func (t *MethodTracker) AddCount(method string, result string) {
	group, ok := t.count[method]
	if !ok {
		group = t.count[Undefined]
	}

	group.Incr(result)
}

// Stats implements Collector for MethodTracker
func (t *MethodTracker) Stats() Metrics {
	stats := make(Metrics)

	for method, count := range t.count {
		stats[method] = count.Stats()
	}

	return stats
}
