package printer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/gab/internal/core/chat"
)

func TestCtx(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	ctx := NewContext(context.Background(), p)
	assert.Same(t, p, Ctx(ctx))
	assert.NotNil(t, Ctx(context.Background()), "falls back to a stderr printer")
}

func TestNew_NoColorForBuffers(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Successf("done")

	assert.Equal(t, Check+" done\n", buf.String())
	assert.NotContains(t, buf.String(), "\033[")
}

func TestWithColor(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf).WithColor(true)

	p.Errorf("failed")
	assert.Contains(t, buf.String(), colorRed)
	assert.Contains(t, buf.String(), colorReset)
}

func TestFatalError(t *testing.T) {
	t.Run("plain error", func(t *testing.T) {
		var buf bytes.Buffer
		New(&buf).FatalError(errors.New("disk full"))

		assert.Contains(t, buf.String(), "╭ Error")
		assert.Contains(t, buf.String(), "disk full")
	})

	t.Run("field errors", func(t *testing.T) {
		var buf bytes.Buffer

		fieldErrs := criterio.NewFieldErrors("author", errors.New("author is required"))
		New(&buf).FatalError(fmt.Errorf("send message: %w", fieldErrs))

		out := buf.String()
		assert.Contains(t, out, "╭ Validation Error")
		assert.Contains(t, out, "│ send message\n")
		assert.Contains(t, out, Cross+" author: author is required")
	})

	t.Run("storage error", func(t *testing.T) {
		var buf bytes.Buffer

		err := fmt.Errorf("read messages: %w", &chat.StorageError{Op: "read", Err: errors.New("no such table: messages")})
		New(&buf).FatalError(err)

		out := buf.String()
		assert.Contains(t, out, "╭ Storage Error")
		assert.Contains(t, out, "│ read messages\n")
		assert.Contains(t, out, "operation: read")
		assert.Contains(t, out, "cause: no such table: messages")
	})

	t.Run("nil error", func(t *testing.T) {
		var buf bytes.Buffer
		New(&buf).FatalError(nil)
		assert.Empty(t, buf.String())
	})
}

func TestStatusLines(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.Successf("sent %d", 1)
	p.Infof("no messages")
	p.Warnf("slow refresh")
	p.Errorf("failed")
	p.Success("Database ready", "/tmp/chat.db")

	out := buf.String()
	assert.Contains(t, out, Check+" sent 1")
	assert.Contains(t, out, Dot+" no messages")
	assert.Contains(t, out, Dot+" slow refresh")
	assert.Contains(t, out, Cross+" failed")
	assert.Contains(t, out, "  /tmp/chat.db\n")
}

func TestMessages(t *testing.T) {
	var buf bytes.Buffer
	ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	err := New(&buf).Messages([]chat.Message{
		{ID: 1, Author: "alice", Body: "hi", CreatedAt: ts},
		{ID: 2, Author: "bob", Body: "hello alice", CreatedAt: ts.Add(time.Second)},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, ts.Local().Format(TimeLayout)+"  alice: hi", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "  bob: hello alice"))
}

func TestSent(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Sent(chat.Message{Author: "alice", Body: "hi"})

	assert.Equal(t, Check+" sent alice: hi\n", buf.String())
}

func TestAuthorColorIsStable(t *testing.T) {
	p := New(&bytes.Buffer{}).WithColor(true)

	assert.Equal(t, p.Author("alice"), p.Author("alice"))
	assert.Contains(t, p.Author("alice"), authorColor("alice"))
	assert.Equal(t, "alice", New(&bytes.Buffer{}).Author("alice"))
}
