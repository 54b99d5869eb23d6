package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpTrackerLifecycle(t *testing.T) {
	var tracker opTracker
	key := opKey{kind: opEdit, id: 7}

	assert.Equal(t, opIdle, tracker.status(key))

	assert.True(t, tracker.begin(key))
	assert.Equal(t, opInFlight, tracker.status(key))

	// A duplicate begin for the same form is refused.
	assert.False(t, tracker.begin(key))

	// A different form is independent.
	other := opKey{kind: opDelete, id: 7}
	assert.True(t, tracker.begin(other))

	tracker.finish(key, nil)
	assert.Equal(t, opSucceeded, tracker.status(key))

	tracker.finish(other, errors.New("boom"))
	assert.Equal(t, opFailed, tracker.status(other))

	// Finished forms can be resubmitted.
	assert.True(t, tracker.begin(key))
	assert.True(t, tracker.begin(other))
}
