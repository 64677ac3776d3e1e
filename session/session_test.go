package session

import (
	"testing"

	"github.com/avahowell/genpass/pwgen"
	"github.com/avahowell/genpass/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUpdatesSettings(t *testing.T) {
	g := pwgen.New()
	s := New(settings.Default(), DefaultClasses)
	assert.False(t, s.Persistable())
	assert.Equal(t, pwgen.Request{Length: 20, Classes: DefaultClasses, CustomChars: settings.DefaultCustomChars}, s.Request())

	req := pwgen.Request{Length: 12, Classes: pwgen.NewClassSet(pwgen.Custom), CustomChars: "#!?"}
	next, password, err := s.Generate(g, req, false)
	require.NoError(t, err)
	assert.Len(t, password, 12)
	assert.Equal(t, settings.Settings{CustomChars: "#!?", Length: 12}, next.Settings)
	assert.Equal(t, req.Classes, next.Classes)
	assert.True(t, next.Persistable())
	assert.Equal(t, req, next.Request())

	// the receiver is a value and keeps its state
	assert.Equal(t, settings.Default(), s.Settings)

	next = next.Persisted()
	assert.False(t, next.Persistable())
}

func TestGenerateFailureKeepsSession(t *testing.T) {
	g := pwgen.New()
	s := New(settings.Default(), DefaultClasses)

	next, password, err := s.Generate(g, pwgen.Request{Length: 7, Classes: DefaultClasses}, false)
	assert.Equal(t, pwgen.ErrLengthOutOfRange, err)
	assert.Empty(t, password)
	assert.Equal(t, s, next)

	next, _, err = s.Generate(g, pwgen.Request{Length: 20}, false)
	assert.Equal(t, pwgen.ErrNoClassSelected, err)
	assert.Equal(t, s, next)
}

func TestLivePreviewDefersPersistence(t *testing.T) {
	g := pwgen.New()
	s := New(settings.Default(), DefaultClasses)

	var err error
	for length := 21; length <= 30; length++ {
		req := s.Request()
		req.Length = length
		s, _, err = s.Generate(g, req, true)
		require.NoError(t, err)
		assert.True(t, s.Dragging())
		assert.False(t, s.Persistable(), "persistable during drag at %d", length)
	}
	assert.Equal(t, 30, s.Settings.Length)

	s = s.EndDrag()
	assert.True(t, s.Persistable())
	s = s.Persisted().EndDrag()
	assert.False(t, s.Persistable())
}
