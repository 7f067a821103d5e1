package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/gab/internal/core/chat"
	"github.com/hay-kot/gab/internal/core/session"
)

// memStore is an in-memory chat.Store with injectable failures.
type memStore struct {
	mu        sync.Mutex
	messages  []chat.Message
	appends   int
	readErr   error
	appendErr error
}

func (s *memStore) Initialize(context.Context) error { return nil }

func (s *memStore) Append(_ context.Context, author, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.appends++
	if s.appendErr != nil {
		return s.appendErr
	}
	if err := chat.ValidateMessage(author, body); err != nil {
		return err
	}
	s.messages = append(s.messages, chat.Message{
		ID:        int64(len(s.messages) + 1),
		Author:    author,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	})
	return nil
}

func (s *memStore) ReadAll(context.Context) ([]chat.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.readErr != nil {
		return nil, s.readErr
	}
	return append([]chat.Message{}, s.messages...), nil
}

func (s *memStore) setReadErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readErr = err
}

func newTestModel(t *testing.T, store *memStore) Model {
	t.Helper()

	m := New(Options{
		Store:           store,
		RefreshInterval: time.Hour,
		Logger:          zerolog.Nop(),
	})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok, "Update must return a Model")
	return model, cmd
}

// collect runs cmd and any batched commands, returning the messages that
// arrive before a short timeout. Timer-driven commands never fire in tests
// because the refresh interval is an hour.
func collect(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()

	var out []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		ch := make(chan tea.Msg, 1)
		go func() { ch <- next() }()

		select {
		case msg := <-ch:
			if batch, ok := msg.(tea.BatchMsg); ok {
				queue = append(queue, batch...)
				continue
			}
			out = append(out, msg)
		case <-time.After(200 * time.Millisecond):
		}
	}
	return out
}

func find[T tea.Msg](t *testing.T, msgs []tea.Msg) T {
	t.Helper()

	for _, msg := range msgs {
		if v, ok := msg.(T); ok {
			return v
		}
	}
	var zero T
	require.Failf(t, "message not found", "no %T in %v", zero, msgs)
	return zero
}

// identify submits name and applies the resulting activation.
func identify(t *testing.T, m Model, name string) Model {
	t.Helper()

	m, cmd := update(t, m, nameSubmittedMsg{name: name})
	require.True(t, m.Session().Identified())

	m, _ = update(t, m, find[activatedMsg](t, collect(t, cmd)))
	return m
}

func TestModel_InitLoadsLog(t *testing.T) {
	store := &memStore{}
	require.NoError(t, store.Append(context.Background(), "alice", "hi"))
	require.NoError(t, store.Append(context.Background(), "bob", "yo"))

	m := newTestModel(t, store)
	m, _ = update(t, m, find[activatedMsg](t, collect(t, m.Init())))

	assert.Len(t, m.Session().Messages(), 2)
	assert.Equal(t, []string{"alice: hi", "bob: yo"}, m.chatView.Lines())
	assert.False(t, m.Session().Identified(), "loading the log must not identify the session")
}

func TestModel_SubmissionIgnoredWhileAnonymous(t *testing.T) {
	store := &memStore{}
	m := newTestModel(t, store)

	m, cmd := update(t, m, messageSubmittedMsg{body: "hello"})
	assert.Nil(t, cmd)
	assert.Equal(t, 0, store.appends)
	assert.Equal(t, session.StateAnonymous, m.Session().State())
}

func TestModel_IdentifyThenSend(t *testing.T) {
	store := &memStore{}
	m := identify(t, newTestModel(t, store), "  alice ")

	assert.Equal(t, "alice", m.Session().Name())
	assert.Equal(t, []string{"alice"}, m.Session().Users())

	m.input.SetValue("hello")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, m.input.Value(), "input is cleared on submit")

	m, cmd = update(t, m, find[messageSubmittedMsg](t, collect(t, cmd)))
	appended := find[appendedMsg](t, collect(t, cmd))
	require.NoError(t, appended.err)

	m, cmd = update(t, m, appended)
	m, _ = update(t, m, find[activatedMsg](t, collect(t, cmd)))

	assert.Equal(t, []string{"alice: hello"}, m.chatView.Lines())
	assert.Equal(t, 1, store.appends)
}

func TestModel_BlankSubmissionDropped(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty", ""},
		{"spaces", "   "},
		{"whitespace", "\t\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memStore{}
			m := identify(t, newTestModel(t, store), "alice")

			_, cmd := update(t, m, messageSubmittedMsg{body: tt.body})
			assert.Nil(t, cmd)
			assert.Equal(t, 0, store.appends)
		})
	}
}

func TestModel_IdentifyIsTerminal(t *testing.T) {
	m := identify(t, newTestModel(t, &memStore{}), "alice")

	m, cmd := update(t, m, nameSubmittedMsg{name: "bob"})
	assert.Nil(t, cmd)
	assert.Equal(t, "alice", m.Session().Name())
	assert.Equal(t, []string{"alice"}, m.Session().Users())
	assert.NotEmpty(t, m.Notice())
}

func TestModel_StaleActivationDropped(t *testing.T) {
	store := &memStore{}
	m := newTestModel(t, store)

	older := []chat.Message{{ID: 1, Author: "alice", Body: "old"}}
	newer := []chat.Message{
		{ID: 1, Author: "alice", Body: "old"},
		{ID: 2, Author: "bob", Body: "new"},
	}

	m, _ = update(t, m, activatedMsg{seq: 3, messages: newer})
	m, _ = update(t, m, activatedMsg{seq: 2, messages: older})

	assert.Equal(t, newer, m.Session().Messages(), "last full activation wins")
}

func TestModel_RefreshTickActivates(t *testing.T) {
	store := &memStore{}
	m := newTestModel(t, store)
	m, _ = update(t, m, find[activatedMsg](t, collect(t, m.Init())))

	require.NoError(t, store.Append(context.Background(), "bob", "from another instance"))

	m, cmd := update(t, m, refreshTickMsg{})
	activated := find[activatedMsg](t, collect(t, cmd))
	assert.Equal(t, m.seq, activated.seq)

	m, _ = update(t, m, activated)
	assert.Equal(t, []string{"bob: from another instance"}, m.chatView.Lines())
}

func TestModel_ErrorsAreNonBlocking(t *testing.T) {
	t.Run("read failure sets notice until next success", func(t *testing.T) {
		store := &memStore{}
		require.NoError(t, store.Append(context.Background(), "alice", "hi"))

		m := newTestModel(t, store)
		m, _ = update(t, m, find[activatedMsg](t, collect(t, m.Init())))

		store.setReadErr(&chat.StorageError{Op: "read", Err: errors.New("disk gone")})
		m, cmd := update(t, m, refreshTickMsg{})
		m, _ = update(t, m, find[activatedMsg](t, collect(t, cmd)))

		assert.Contains(t, m.Notice(), "disk gone")
		assert.Len(t, m.Session().Messages(), 1, "last good snapshot is kept")

		store.setReadErr(nil)
		m, cmd = update(t, m, refreshTickMsg{})
		m, _ = update(t, m, find[activatedMsg](t, collect(t, cmd)))

		assert.Empty(t, m.Notice())
	})

	t.Run("append failure sets notice and reloads", func(t *testing.T) {
		store := &memStore{appendErr: &chat.StorageError{Op: "append", Err: errors.New("locked")}}
		m := identify(t, newTestModel(t, store), "alice")

		m, cmd := update(t, m, messageSubmittedMsg{body: "hello"})
		appended := find[appendedMsg](t, collect(t, cmd))
		require.ErrorIs(t, appended.err, chat.ErrStorage)

		m, cmd = update(t, m, appended)
		assert.Contains(t, m.Notice(), "could not send message")
		assert.NotNil(t, find[activatedMsg](t, collect(t, cmd)))
	})
}

func TestModel_QuitKeys(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
	}{
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, &memStore{})

			m, cmd := update(t, m, tt.key)
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
			assert.Empty(t, m.View())
		})
	}
}

func TestModel_View(t *testing.T) {
	store := &memStore{}
	require.NoError(t, store.Append(context.Background(), "bob", "hey there"))

	m := newTestModel(t, store)
	assert.Contains(t, m.View(), "Enter your name")
	assert.NotContains(t, m.View(), "Online Users")

	m = identify(t, m, "alice")
	view := m.View()

	assert.Contains(t, view, "Welcome, alice!")
	assert.Contains(t, view, "Online Users")
	assert.Contains(t, view, "bob: hey there")
	assert.NotContains(t, view, "Enter your name")
}
