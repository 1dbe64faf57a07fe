// package testing contains shared testing utilities
package testing

import (
	"encoding/json"
	"errors"
	"io"
	"sync"
)

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// FailingAdapter is a store adapter double whose every call fails, simulating
// disabled storage or an exhausted quota.
type FailingAdapter struct{}

func (a *FailingAdapter) Read(key string) (json.RawMessage, bool, error) {
	return nil, false, errors.New("storage disabled")
}

func (a *FailingAdapter) Write(key string, value json.RawMessage) error {
	return errors.New("storage disabled")
}

// FlakyAdapter fails the first FailWrites write calls, then delegates to an
// in-memory map. Used to exercise the retry queue.
type FlakyAdapter struct {
	FailWrites int

	mu     sync.Mutex
	writes int
	values map[string]json.RawMessage
}

func NewFlakyAdapter(failWrites int) *FlakyAdapter {
	return &FlakyAdapter{FailWrites: failWrites, values: make(map[string]json.RawMessage)}
}

func (a *FlakyAdapter) Read(key string) (json.RawMessage, bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	value, ok := a.values[key]
	return value, ok, nil
}

func (a *FlakyAdapter) Write(key string, value json.RawMessage) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.writes++
	if a.writes <= a.FailWrites {
		return errors.New("transient storage failure")
	}

	a.values[key] = value
	return nil
}

// Writes returns how many write attempts have been made, failed ones included.
func (a *FlakyAdapter) Writes() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.writes
}

// Stored returns the value persisted under key, if any.
func (a *FlakyAdapter) Stored(key string) (json.RawMessage, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	value, ok := a.values[key]
	return value, ok
}

// CountingAdapter wraps an in-memory map and counts reads and writes, letting
// tests assert whether durable storage was touched at all.
type CountingAdapter struct {
	mu     sync.Mutex
	reads  int
	writes int
	values map[string]json.RawMessage
}

func NewCountingAdapter() *CountingAdapter {
	return &CountingAdapter{values: make(map[string]json.RawMessage)}
}

func (a *CountingAdapter) Read(key string) (json.RawMessage, bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.reads++
	value, ok := a.values[key]
	return value, ok, nil
}

func (a *CountingAdapter) Write(key string, value json.RawMessage) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.writes++
	a.values[key] = value
	return nil
}

func (a *CountingAdapter) Reads() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.reads
}

func (a *CountingAdapter) Writes() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.writes
}

// Seed places a value in the adapter without counting it as a write.
func (a *CountingAdapter) Seed(key string, value json.RawMessage) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.values[key] = value
}
