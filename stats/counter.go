package stats

import (
	"sync/atomic"
)

// Undefined is the catch all key for counts of results or
// methods that were not declared up front
const Undefined = "undefined"

// Counter is used to count how many times an event
// occurs
type Counter struct {
	value uint64
}

// Incr increments the counter by one
func (c *Counter) Incr() uint64 {
	return atomic.AddUint64(&c.value, 1)
}

// Value returns the current value of the counter
func (c *Counter) Value() uint64 {
	return atomic.LoadUint64(&c.value)
}

// CounterGroup implements a group of counters. All counters are
// allocated at creation time
type CounterGroup struct {
	group map[string]*Counter
}

// NewCounterGroup creates a new counter group with a counter
// for each name plus the Undefined counter
func NewCounterGroup(names ...string) *CounterGroup {
	m := make(map[string]*Counter)

	for _, name := range names {
		m[name] = &Counter{}
	}

	m[Undefined] = &Counter{}

	return &CounterGroup{
		group: m,
	}
}

// Get retrieves the counter from the group. If no counter
// is found associated to that specific name the Undefined
// counter is returned
func (g *CounterGroup) Get(name string) *Counter {
	counter, ok := g.group[name]
	if !ok {
		counter = g.group[Undefined]
	}

	return counter
}

// Incr increments the required counter
func (g *CounterGroup) Incr(name string) uint64 {
	return g.Get(name).Incr()
}

// Stats implements Collector for CounterGroup
func (g *CounterGroup) Stats() Metrics {
	stats := make(Metrics)

	for key, counter := range g.group {
		stats[key] = counter.Value()
	}

	return stats
}
