package stats

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounterGroupUndefined(t *testing.T) {
	group := NewCounterGroup("ok")

	group.Incr("ok")
	group.Incr("error")

	assert.Equal(t, Metrics{"ok": uint64(1), Undefined: uint64(1)}, group.Stats())
}

func TestMethodTrackerMethods(t *testing.T) {
	tracker := NewMethodTracker(MethodTrackerProps{Methods: []string{"POST", "GET"}})

	assert.Equal(t, []string{"GET", "POST", Undefined}, tracker.Methods())
}

func TestMethodTrackerCountNotFound(t *testing.T) {
	tracker := NewMethodTracker(MethodTrackerProps{})

	group, ok := tracker.Count("GET")

	assert.Nil(t, group)
	assert.False(t, ok)
}

func TestMethodTrackerInstrumentResult(t *testing.T) {
	tracker := NewMethodTracker(MethodTrackerProps{
		Methods: []string{"GET"},
		Results: []string{"ok", "error"},
	})

	v, err := tracker.InstrumentResult("GET", func() *TrackResult {
		return &TrackResult{Value: "test", Type: "ok"}
	})
	assert.Nil(t, err)
	assert.Equal(t, "test", v)

	_, err = tracker.InstrumentResult("PATCH", func() *TrackResult {
		return &TrackResult{Error: errors.New("failed"), Type: "error"}
	})
	assert.Error(t, err)

	assert.Equal(t, Metrics{
		"GET":     Metrics{"ok": uint64(1), "error": uint64(0), Undefined: uint64(0)},
		Undefined: Metrics{"ok": uint64(0), "error": uint64(1), Undefined: uint64(0)},
	}, tracker.Stats())
}
