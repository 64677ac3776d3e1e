package main

import (
	"github.com/avahowell/genpass/pwgen"
	"github.com/avahowell/genpass/session"
	"github.com/avahowell/genpass/settings"
)

// app holds what a front end shows the user: the class toggles, the custom
// alphabet and the length, plus the last password generated from them. The
// session remembers the last request that succeeded.
type app struct {
	gen   *pwgen.Generator
	store *settings.Store
	sess  session.Session

	classes  pwgen.ClassSet
	chars    string
	length   int
	password string
}

func newApp(gen *pwgen.Generator, store *settings.Store, set settings.Settings, classes pwgen.ClassSet) *app {
	return &app{
		gen:     gen,
		store:   store,
		sess:    session.New(set, classes),
		classes: classes,
		chars:   set.CustomChars,
		length:  set.Length,
	}
}

func (a *app) request() pwgen.Request {
	return pwgen.Request{
		Length:      a.length,
		Classes:     a.classes,
		CustomChars: a.chars,
	}
}

// generate produces a password from the current inputs. A failed generation
// leaves the previous password in place.
func (a *app) generate(live bool) (string, error) {
	sess, password, err := a.sess.Generate(a.gen, a.request(), live)
	if err != nil {
		return "", err
	}
	a.sess = sess
	a.password = password
	a.persist()
	return password, nil
}

// endDrag finishes a live preview gesture and writes the settings it left
// behind.
func (a *app) endDrag() {
	if !a.sess.Dragging() {
		return
	}
	a.sess = a.sess.EndDrag()
	a.persist()
}

func (a *app) persist() {
	if !a.sess.Persistable() {
		return
	}
	a.store.SaveAsync(a.sess.Settings)
	a.sess = a.sess.Persisted()
}
