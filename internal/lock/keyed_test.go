package lock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquire_Serializes(t *testing.T) {
	m := NewManager()

	const goroutines = 100
	counter := 0

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			release := m.Acquire("key")
			defer release()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines, counter)
}

func TestAcquire_IndependentKeysDoNotBlock(t *testing.T) {
	m := NewManager()

	releaseA := m.Acquire("a")
	defer releaseA()

	// Acquiring a different key while "a" is held must not block.
	done := make(chan struct{})
	go func() {
		release := m.Acquire("b")
		release()
		close(done)
	}()

	select {
	case <-done:
	default:
		// Allow the goroutine to run.
		<-done
	}
}

func TestRelease_IsIdempotent(t *testing.T) {
	m := NewManager()

	release := m.Acquire("key")
	release()
	require.NotPanics(t, func() { release() })

	// The key must be reacquirable afterwards.
	release2 := m.Acquire("key")
	release2()
}

func TestAcquire_EntriesAreReclaimed(t *testing.T) {
	m := NewManager()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := m.Acquire("shared")
			release()
		}()
	}
	wg.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()
	assert.Empty(t, m.locks, "released keys must not accumulate")
}
