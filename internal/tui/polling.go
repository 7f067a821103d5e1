package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hay-kot/gab/internal/core/chat"
)

// storeTimeout bounds a single store call made from the update loop.
const storeTimeout = 5 * time.Second

// activatedMsg carries the result of one activation: a full store snapshot.
type activatedMsg struct {
	seq      uint64
	messages []chat.Message
	err      error
}

// appendedMsg is sent when a submitted message has been written (or failed).
type appendedMsg struct {
	err error
}

// refreshTickMsg is sent by the refresh timer.
type refreshTickMsg struct{}

// nameSubmittedMsg is sent when the name prompt completes.
type nameSubmittedMsg struct {
	name string
}

// messageSubmittedMsg is sent when the user submits the message input.
type messageSubmittedMsg struct {
	body string
}

// loadMessages returns a command that reads the full log from the store.
func loadMessages(store chat.Store, seq uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		messages, err := store.ReadAll(ctx)
		return activatedMsg{seq: seq, messages: messages, err: err}
	}
}

// appendMessage returns a command that writes one message to the store.
func appendMessage(store chat.Store, author, body string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		return appendedMsg{err: store.Append(ctx, author, body)}
	}
}

// scheduleRefresh returns a command that fires the next refresh tick.
func scheduleRefresh(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}
