package forms

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meur/harborline/internal/storage"
)

func TestSessionsOpenReturnsSameSession(t *testing.T) {
	sessions := NewSessions(storage.NewClient(storage.NewMemory()), 8, time.Hour)

	first := sessions.Open("visitor-1")
	require.NoError(t, first.Contact.Set("subject", "Hi"))
	again := sessions.Open("visitor-1")
	other := sessions.Open("visitor-2")

	assert.Same(t, first, again)
	assert.NotSame(t, first, other)
	assert.Equal(t, "Hi", again.Contact.Values()["subject"])
	assert.Empty(t, other.Contact.Values()["subject"])
	assert.Equal(t, 2, sessions.Len())
}

func TestSessionsEvictOldest(t *testing.T) {
	sessions := NewSessions(storage.NewClient(storage.NewMemory()), 2, time.Hour)

	a := sessions.Open("a")
	sessions.Open("b")
	sessions.Open("c")

	assert.Equal(t, 2, sessions.Len())
	assert.NotSame(t, a, sessions.Open("a"))
}

func TestSessionForm(t *testing.T) {
	sess := NewSessions(storage.NewClient(storage.NewMemory()), 1, time.Hour).Open("v")

	bug, ok := sess.Form(BugReportFormName)
	require.True(t, ok)
	assert.Equal(t, BugReportFormName, bug.Name())

	contact, ok := sess.Form(ContactFormName)
	require.True(t, ok)
	assert.Equal(t, ContactFormName, contact.Name())

	_, ok = sess.Form("newsletter")
	assert.False(t, ok)
}

func TestSessionGameMode(t *testing.T) {
	sess := NewSessions(storage.NewClient(storage.NewMemory()), 1, time.Hour).Open("v")

	_, ok := sess.GameMode()
	assert.False(t, ok)

	sess.SelectGameMode("naval")
	mode, ok := sess.GameMode()
	assert.True(t, ok)
	assert.Equal(t, "naval", mode)
}

func TestSessionsExpireWhenIdle(t *testing.T) {
	clock := newFakeClock()
	sessions := NewSessions(storage.NewClient(storage.NewMemory()), 4, 30*time.Minute, WithClock(clock))

	first := sessions.Open("v")
	require.NoError(t, first.Contact.Set("subject", "Hi"))

	clock.Advance(20 * time.Minute)
	assert.Same(t, first, sessions.Open("v"), "open extends the lifetime")

	clock.Advance(20 * time.Minute)
	assert.Same(t, first, sessions.Open("v"))

	clock.Advance(31 * time.Minute)
	fresh := sessions.Open("v")
	assert.NotSame(t, first, fresh)
	assert.Empty(t, fresh.Contact.Values()["subject"])
	assert.Equal(t, 1, sessions.Len())
}
