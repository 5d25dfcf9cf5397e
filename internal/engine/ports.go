package engine

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tatianab/treasure-hunter/internal/models"
)

// Input supplies one line of player input at a time. ReadLine blocks until a
// line is available or ctx is done.
type Input interface {
	ReadLine(ctx context.Context) (string, error)
}

// Output is a write-only text sink.
type Output interface {
	Display(text string)
}

// StatusSink is implemented by outputs that render the hunter and town in a
// panel of their own. Sessions push a fresh Status after every change and
// skip the textual status block for such outputs.
type StatusSink interface {
	ShowStatus(Status)
}

// Status is a copy of everything a status panel shows.
type Status struct {
	Hunter     string
	Difficulty string
	Gold       int
	Inventory  []string
	Treasures  []models.Treasure
	Markdown   float64
	Terrain    string
	Tough      bool
	News       string
	State      State
}

// Dialog is how the shop talks to the player.
type Dialog interface {
	Display(text string)
	Ask(ctx context.Context, question string) (string, error)
}

type console struct {
	in  Input
	out Output
}

func (c *console) Display(text string) {
	c.out.Display(text)
}

func (c *console) Ask(ctx context.Context, question string) (string, error) {
	c.out.Display(question)
	line, err := c.in.ReadLine(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// LineInput reads newline-terminated input from a reader. Lines may be of
// any length.
type LineInput struct {
	r *bufio.Reader
}

// NewLineInput wraps r.
func NewLineInput(r io.Reader) *LineInput {
	return &LineInput{r: bufio.NewReader(r)}
}

// ReadLine returns the next line without its terminator, or io.EOF.
// The underlying read cannot be interrupted; ctx is checked before it starts.
// A final line without a terminator is still returned.
func (l *LineInput) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	line, err := l.r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// WriterOutput prints each message on its own line.
type WriterOutput struct {
	w io.Writer
}

// NewWriterOutput wraps w.
func NewWriterOutput(w io.Writer) *WriterOutput {
	return &WriterOutput{w: w}
}

func (o *WriterOutput) Display(text string) {
	fmt.Fprintln(o.w, text)
}
