package stats

// Metrics is a group of related stats that will be
// presented together
type Metrics map[string]interface{}

// Collector is implemented by types that keep stats
type Collector interface {
	Stats() Metrics
}
