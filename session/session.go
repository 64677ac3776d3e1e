// Package session tracks the state shared by the front ends between two
// generations: the persisted settings and the enabled character classes.
package session

import (
	"github.com/avahowell/genpass/pwgen"
	"github.com/avahowell/genpass/settings"
)

// DefaultClasses are enabled when nothing else was chosen.
var DefaultClasses = pwgen.NewClassSet(pwgen.Lowercase, pwgen.Uppercase, pwgen.Digits)

// Session is a value; every operation returns the updated copy and leaves the
// receiver untouched. Persisting Settings is left to the caller.
type Session struct {
	Settings settings.Settings
	Classes  pwgen.ClassSet

	dirty    bool
	dragging bool
}

// New returns a session starting from set with classes enabled.
func New(set settings.Settings, classes pwgen.ClassSet) Session {
	return Session{Settings: set, Classes: classes}
}

// Request returns the request matching the session's current state.
func (s Session) Request() pwgen.Request {
	return pwgen.Request{
		Length:      s.Settings.Length,
		Classes:     s.Classes,
		CustomChars: s.Settings.CustomChars,
	}
}

// Generate produces a password for req. On failure s is returned unchanged
// together with an error whose message can be shown to the user. On success the
// returned session remembers req. A live preview (a slider being dragged)
// defers persistence until EndDrag.
func (s Session) Generate(g *pwgen.Generator, req pwgen.Request, live bool) (Session, string, error) {
	password, err := g.Generate(req)
	if err != nil {
		return s, "", err
	}
	s.Settings = settings.Settings{
		CustomChars: req.CustomChars,
		Length:      req.Length,
	}
	s.Classes = req.Classes
	s.dirty = true
	s.dragging = live
	return s, password, nil
}

// EndDrag marks the end of a live preview gesture.
func (s Session) EndDrag() Session {
	s.dragging = false
	return s
}

// Dragging reports whether a live preview gesture is in progress.
func (s Session) Dragging() bool {
	return s.dragging
}

// Persistable reports whether Settings changed since the last Persisted and
// may be written now.
func (s Session) Persistable() bool {
	return s.dirty && !s.dragging
}

// Persisted marks the current Settings as written.
func (s Session) Persisted() Session {
	s.dirty = false
	return s
}
