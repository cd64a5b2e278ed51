package keylock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLockSerializesSameKey(t *testing.T) {
	l := New()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.Lock("player-1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestDifferentKeysDoNotBlock(t *testing.T) {
	l := New()

	unlockA := l.Lock("a")

	done := make(chan struct{})
	go func() {
		unlockB := l.Lock("b")
		unlockB()
		close(done)
	}()

	// Key "b" must be acquirable while "a" is held
	<-done
	unlockA()
}

func TestEntriesReleasedWhenUnused(t *testing.T) {
	l := New()

	unlock := l.Lock("a")
	unlock()

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Empty(t, l.entries)
}
