// Package secureclip copies secrets to the system clipboard and wipes them
// again after a timeout.
package secureclip

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/atotto/clipboard"
	"github.com/pkg/errors"
)

// ErrClipboard wraps every failure to access the system clipboard.
var ErrClipboard = errors.New("Clipboard error")

var (
	clipTimeout = time.Second * 30

	// swapped out in tests
	writeAll    = clipboard.WriteAll
	readAll     = clipboard.ReadAll
	unsupported = func() bool { return clipboard.Unsupported }

	generation int64
	pending    sync.WaitGroup
)

type clipError struct {
	err error
}

func (e *clipError) Error() string        { return ErrClipboard.Error() + ": " + e.err.Error() }
func (e *clipError) Unwrap() error        { return e.err }
func (e *clipError) Is(target error) bool { return target == ErrClipboard }

// Timeout returns how long a clipped secret stays on the clipboard.
func Timeout() time.Duration {
	return clipTimeout
}

// Clip copies the secret given by `secret` to the clipboard. The clipboard
// will be cleared Timeout() after the last `Clip` call, unless something else
// was copied in the meantime.
func Clip(secret string) error {
	if unsupported() {
		return &clipError{errors.New("no clipboard utility available")}
	}
	if err := writeAll(secret); err != nil {
		return &clipError{err}
	}
	gen := atomic.AddInt64(&generation, 1)
	pending.Add(1)
	go func() {
		defer pending.Done()
		time.Sleep(clipTimeout)
		if atomic.LoadInt64(&generation) != gen {
			return
		}
		if current, err := readAll(); err == nil && current != secret {
			return
		}
		writeAll("")
	}()
	return nil
}

// Clear clears the clipboard.
func Clear() error {
	atomic.AddInt64(&generation, 1)
	if err := writeAll(""); err != nil {
		return &clipError{err}
	}
	return nil
}

// Wait blocks until every pending clear has run.
func Wait() {
	pending.Wait()
}
