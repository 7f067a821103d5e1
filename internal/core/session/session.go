// Package session holds the per-instance chat session context: the display
// buffer, the session-local user registry, and the identity gate.
package session

import (
	"errors"
	"strings"

	"github.com/hay-kot/gab/internal/core/chat"
	"github.com/hay-kot/gab/internal/core/validate"
	"github.com/hay-kot/gab/pkg/kv"
)

// ErrAlreadyIdentified is returned when a name is submitted twice.
var ErrAlreadyIdentified = errors.New("session already identified")

// State represents the identity gate state of a session.
type State string

const (
	StateAnonymous  State = "anonymous"
	StateIdentified State = "identified"
)

// Session is the explicit context passed to every activation of the
// presentation loop. It is not persisted and is discarded with the
// instance.
type Session struct {
	state    State
	name     string
	users    *kv.Store[string, string]
	messages []chat.Message
}

// New returns an anonymous session with an empty buffer and registry.
func New() *Session {
	return &Session{
		state: StateAnonymous,
		users: kv.New[string, string](),
	}
}

// State returns the current gate state.
func (s *Session) State() State {
	return s.state
}

// Identified reports whether a name has been set.
func (s *Session) Identified() bool {
	return s.state == StateIdentified
}

// Name returns the display name, or "" while anonymous.
func (s *Session) Name() string {
	return s.name
}

// Identify sets the display name and records it in the registry.
// Identified is terminal: a second call fails with ErrAlreadyIdentified.
func (s *Session) Identify(name string) error {
	if s.state == StateIdentified {
		return ErrAlreadyIdentified
	}
	if err := validate.Username(name); err != nil {
		return err
	}

	name = strings.TrimSpace(name)
	s.name = name
	s.users.Set(name, name)
	s.state = StateIdentified
	return nil
}

// Users returns the names active in this instance, sorted.
func (s *Session) Users() []string {
	return s.users.Keys()
}

// SetMessages replaces the display buffer with a fresh store snapshot.
func (s *Session) SetMessages(messages []chat.Message) {
	s.messages = messages
}

// Messages returns the display buffer.
func (s *Session) Messages() []chat.Message {
	return s.messages
}
