package engine

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/treasure-hunter/internal/chance"
)

func TestLineInputReadsLongLines(t *testing.T) {
	long := strings.Repeat("a", 200*1024)
	in := NewLineInput(strings.NewReader(long + "\nx\r\nlast"))
	ctx := context.Background()

	line, err := in.ReadLine(ctx)
	require.NoError(t, err)
	assert.Len(t, line, len(long))

	line, err = in.ReadLine(ctx)
	require.NoError(t, err)
	assert.Equal(t, "x", line)

	line, err = in.ReadLine(ctx)
	require.NoError(t, err)
	assert.Equal(t, "last", line)

	_, err = in.ReadLine(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestOversizedLineIsAnInvalidCommand(t *testing.T) {
	var buf bytes.Buffer
	input := "Ada\nn\n" + strings.Repeat("b", 100*1024) + "\nx\n"
	s := newTestSession(t, &chance.Sequence{}, NewLineInput(strings.NewReader(input)), NewWriterOutput(&buf))

	state, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateExited, state)
	assert.Contains(t, buf.String(), "Yikes! That's an invalid option! Try again.")
}

func TestLineInputChecksContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLineInput(strings.NewReader("x\n")).ReadLine(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
