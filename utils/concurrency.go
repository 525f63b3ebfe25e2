package utils

import (
	"context"
	"sync"
)

// BrowserLimiter bounds how many browser processes may run at once across
// all in-flight queries.
type BrowserLimiter struct {
	semaphore chan struct{}
	mu        sync.Mutex
	active    int
}

// NewBrowserLimiter creates a limiter with maxBrowsers slots. Values below 1
// are treated as 1.
func NewBrowserLimiter(maxBrowsers int) *BrowserLimiter {
	if maxBrowsers < 1 {
		maxBrowsers = 1
	}
	return &BrowserLimiter{semaphore: make(chan struct{}, maxBrowsers)}
}

// Acquire blocks until a slot is free or ctx is done.
func (bl *BrowserLimiter) Acquire(ctx context.Context) error {
	select {
	case bl.semaphore <- struct{}{}:
		bl.mu.Lock()
		bl.active++
		bl.mu.Unlock()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release frees a slot obtained with Acquire.
func (bl *BrowserLimiter) Release() {
	bl.mu.Lock()
	bl.active--
	bl.mu.Unlock()
	<-bl.semaphore
}

// Active returns the number of slots currently held.
func (bl *BrowserLimiter) Active() int {
	bl.mu.Lock()
	defer bl.mu.Unlock()
	return bl.active
}
