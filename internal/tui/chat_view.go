package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/hay-kot/gab/internal/core/chat"
)

const (
	// borderSize is the horizontal/vertical space taken by a rounded border.
	borderSize = 2

	emptyLogText     = "No messages yet. Say hello!"
	sidebarTitleText = "Online Users"
)

// ChatView renders the message log next to the active users sidebar.
type ChatView struct {
	viewport     viewport.Model
	messages     []chat.Message
	sidebarWidth int
	width        int
	height       int
}

// NewChatView creates an empty chat view.
func NewChatView(sidebarWidth int) *ChatView {
	return &ChatView{
		viewport:     viewport.New(0, 0),
		sidebarWidth: sidebarWidth,
	}
}

// SetSize updates the area available to the view.
func (v *ChatView) SetSize(width, height int) {
	v.width = width
	v.height = height

	v.viewport.Width = max(v.logWidth()-borderSize, 0)
	v.viewport.Height = max(height-borderSize, 0)
	v.refresh(true)
}

// SetMessages replaces the rendered log. The view stays pinned to the newest
// message unless the user has scrolled up.
func (v *ChatView) SetMessages(messages []chat.Message) {
	follow := v.viewport.AtBottom() || len(v.messages) == 0
	v.messages = messages
	v.refresh(follow)
}

// Lines returns the log as plain "author: body" lines in display order.
func (v *ChatView) Lines() []string {
	return lo.Map(v.messages, func(m chat.Message, _ int) string {
		return m.Line()
	})
}

// PageUp scrolls the log up.
func (v *ChatView) PageUp() {
	v.viewport.HalfViewUp()
}

// PageDown scrolls the log down.
func (v *ChatView) PageDown() {
	v.viewport.HalfViewDown()
}

// AtBottom reports whether the newest message is visible.
func (v *ChatView) AtBottom() bool {
	return v.viewport.AtBottom()
}

func (v *ChatView) logWidth() int {
	return max(v.width-v.sidebarWidth, 0)
}

func (v *ChatView) refresh(follow bool) {
	v.viewport.SetContent(v.renderLog())
	if follow {
		v.viewport.GotoBottom()
	}
}

func (v *ChatView) renderLog() string {
	if len(v.messages) == 0 {
		return emptyStyle.Render(emptyLogText)
	}

	wrap := lipgloss.NewStyle().Width(v.viewport.Width)
	lines := lo.Map(v.messages, func(m chat.Message, _ int) string {
		author := lipgloss.NewStyle().Bold(true).Foreground(ColorForString(m.Author)).Render(m.Author)
		return wrap.Render(author + bodyStyle.Render(": "+m.Body))
	})
	return strings.Join(lines, "\n")
}

// View renders the log and the sidebar listing users side by side.
func (v *ChatView) View(users []string) string {
	log := logStyle.
		Width(max(v.logWidth()-borderSize, 0)).
		Height(max(v.height-borderSize, 0)).
		Render(v.viewport.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, log, v.renderSidebar(users))
}

func (v *ChatView) renderSidebar(users []string) string {
	rows := make([]string, 0, len(users)+2)
	rows = append(rows, sidebarTitleStyle.Render(sidebarTitleText), "")
	for _, u := range users {
		dot := lipgloss.NewStyle().Foreground(ColorForString(u)).Render(iconDot)
		rows = append(rows, dot+" "+u)
	}

	return sidebarStyle.
		Width(max(v.sidebarWidth-borderSize, 0)).
		Height(max(v.height-borderSize, 0)).
		Render(strings.Join(rows, "\n"))
}
