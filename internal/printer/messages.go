package printer

import (
	"fmt"
	"hash/fnv"
	"text/tabwriter"

	"github.com/hay-kot/gab/internal/core/chat"
)

// TimeLayout is the timestamp format used for message rows.
const TimeLayout = "2006-01-02 15:04:05"

// authorColors matches the author palette of the chat view.
var authorColors = []string{
	colorGreen,
	colorYellow,
	"\033[38;2;122;162;247m", // #7aa2f7 blue
	"\033[38;2;187;154;247m", // #bb9af7 magenta
	"\033[38;2;125;207;255m", // #7dcfff cyan
	"\033[38;2;255;158;100m", // #ff9e64 orange
}

func authorColor(name string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return authorColors[h.Sum32()%uint32(len(authorColors))]
}

// Author renders a name in its stable author color.
func (p *Printer) Author(name string) string {
	return p.paint(colorBold+authorColor(name), name)
}

// MessageLine renders m as "author: body" with the author colored.
func (p *Printer) MessageLine(m chat.Message) string {
	return p.Author(m.Author) + ": " + m.Body
}

// Messages prints one row per message: local timestamp, then the message line.
func (p *Printer) Messages(messages []chat.Message) error {
	w := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	for _, m := range messages {
		ts := p.paint(colorGray, m.CreatedAt.Local().Format(TimeLayout))
		_, _ = fmt.Fprintf(w, "%s\t%s\n", ts, p.MessageLine(m))
	}
	return w.Flush()
}

// Sent confirms that m was appended to the log.
func (p *Printer) Sent(m chat.Message) {
	p.line(p.paint(colorGreen, Check) + " sent " + p.MessageLine(m))
}
