package filelock

import (
	"path/filepath"
	"testing"
	"time"
)

func TestFilelockContention(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	lock, err := Lock(path)
	if err != nil {
		t.Fatal(err)
	}

	_, err = Lock(path)
	if err != ErrLocked {
		t.Fatal("expected Lock call on existing lockfile to fail")
	}

	err = lock.Unlock()
	if err != nil {
		t.Fatal(err)
	}

	lock, err = Lock(path)
	if err != nil {
		t.Fatal(err)
	}

	err = lock.Unlock()
	if err != nil {
		t.Fatal(err)
	}
}

func TestLockTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	lock, err := Lock(path)
	if err != nil {
		t.Fatal(err)
	}

	start := time.Now()
	if _, err = LockTimeout(path, 50*time.Millisecond); err != ErrLocked {
		t.Fatal("expected LockTimeout to give up on a held lock")
	}
	if time.Since(start) < 50*time.Millisecond {
		t.Fatal("LockTimeout returned before the timeout")
	}

	go func() {
		time.Sleep(30 * time.Millisecond)
		lock.Unlock()
	}()
	lock2, err := LockTimeout(path, 2*time.Second)
	if err != nil {
		t.Fatal("expected LockTimeout to acquire the lock once released:", err)
	}
	if err = lock2.Unlock(); err != nil {
		t.Fatal(err)
	}
}

func TestLockMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "settings.json")
	if _, err := Lock(path); err == nil || err == ErrLocked {
		t.Fatal("expected Lock in a missing directory to fail with an I/O error")
	}
}
