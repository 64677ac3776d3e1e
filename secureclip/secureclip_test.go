package secureclip

import (
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeClipboard replaces the system clipboard for the duration of a test.
type fakeClipboard struct {
	mu       sync.Mutex
	contents string
	err      error
}

func (f *fakeClipboard) write(s string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.contents = s
	return nil
}

func (f *fakeClipboard) read() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.contents, f.err
}

func useFake(t *testing.T, timeout time.Duration) *fakeClipboard {
	f := &fakeClipboard{}
	oldWrite, oldRead, oldUnsupported, oldTimeout := writeAll, readAll, unsupported, clipTimeout
	writeAll, readAll, unsupported, clipTimeout = f.write, f.read, func() bool { return false }, timeout
	t.Cleanup(func() {
		Wait()
		writeAll, readAll, unsupported, clipTimeout = oldWrite, oldRead, oldUnsupported, oldTimeout
	})
	return f
}

func TestSecureClip(t *testing.T) {
	f := useFake(t, 100*time.Millisecond)
	if err := Clip("test"); err != nil {
		t.Fatal(err)
	}
	if contents, _ := f.read(); contents != "test" {
		t.Fatal("Clip did not copy the secret")
	}

	Wait()
	if contents, _ := f.read(); contents != "" {
		t.Fatal("did not clear clipboard contents after timeout")
	}
}

func TestSecureClipStaggeredCalls(t *testing.T) {
	f := useFake(t, 200*time.Millisecond)
	if err := Clip("test1"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(100 * time.Millisecond)
	if err := Clip("test2"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(150 * time.Millisecond)
	if contents, _ := f.read(); contents != "test2" {
		t.Fatal("clipboard prematurely cleared")
	}
	Wait()
	if contents, _ := f.read(); contents != "" {
		t.Fatal("clipboard was not cleared")
	}
}

func TestSecureClipKeepsForeignContents(t *testing.T) {
	f := useFake(t, 50*time.Millisecond)
	if err := Clip("secret"); err != nil {
		t.Fatal(err)
	}
	f.write("copied by someone else")
	Wait()
	if contents, _ := f.read(); contents != "copied by someone else" {
		t.Fatal("clear wiped contents it did not put there")
	}
}

func TestSecureClipError(t *testing.T) {
	f := useFake(t, time.Second)
	f.err = errors.New("xclip not found")
	err := Clip("secret")
	if !errors.Is(err, ErrClipboard) {
		t.Fatal("expected ErrClipboard, got", err)
	}
	if !errors.Is(err, f.err) {
		t.Fatal("expected the backend error to be wrapped")
	}

	unsupported = func() bool { return true }
	if err := Clip("secret"); !errors.Is(err, ErrClipboard) {
		t.Fatal("expected ErrClipboard without a clipboard utility, got", err)
	}
}
