package inflight

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBegin(t *testing.T) {
	set := NewSet()

	err := set.Begin("donation-1")
	assert.NoError(t, err)
	assert.True(t, set.Contains("donation-1"))
}

func TestBegin_Duplicate(t *testing.T) {
	set := NewSet()

	assert.NoError(t, set.Begin("donation-1"))

	// Second begin while the first is outstanding is rejected
	err := set.Begin("donation-1")
	assert.ErrorIs(t, err, ErrAlreadyInFlight)
	assert.Equal(t, 1, set.Len())
}

func TestComplete_ReleasesRecord(t *testing.T) {
	set := NewSet()

	assert.NoError(t, set.Begin("withdrawal-7"))
	set.Complete("withdrawal-7")

	assert.False(t, set.Contains("withdrawal-7"))

	// The record can be submitted again after completion
	assert.NoError(t, set.Begin("withdrawal-7"))
}

func TestComplete_UnknownRecord(t *testing.T) {
	set := NewSet()

	// Completing a record that was never begun is a no-op
	set.Complete("missing")
	assert.Equal(t, 0, set.Len())
}

func TestIndependentRecords(t *testing.T) {
	set := NewSet()

	assert.NoError(t, set.Begin("donation-1"))
	assert.NoError(t, set.Begin("donation-2"))

	set.Complete("donation-1")
	assert.False(t, set.Contains("donation-1"))
	assert.True(t, set.Contains("donation-2"))
}

func TestConcurrentBegin_OnlyOneWins(t *testing.T) {
	set := NewSet()

	const workers = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := set.Begin("donation-1"); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, set.Len())
}
