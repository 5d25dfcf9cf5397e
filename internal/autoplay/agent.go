// Package autoplay lets a language model play a session by answering every
// question the game asks.
package autoplay

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"strings"
	"text/template"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/tatianab/treasure-hunter/internal/engine"
)

//go:embed prompts/next_move.txt
var nextMovePrompt string

var nextMoveTemplate = template.Must(template.New("next_move").Parse(nextMovePrompt))

const transcriptWindow = 40

// Agent is both the input and the output of a session. Everything the game
// shows goes into a rolling transcript; every question is answered by the
// generator. Once the answer budget is spent ReadLine reports io.EOF, which
// ends the session.
type Agent struct {
	gen      Generator
	maxTurns int
	logger   *zap.Logger
	echo     engine.Output

	transcript []string
	question   string
	turns      int
	fallbacks  int
}

// Option configures an Agent.
type Option func(*Agent)

// WithLogger sets the agent's logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *Agent) { a.logger = l }
}

// WithEcho copies the game output and the agent's answers to out.
func WithEcho(out engine.Output) Option {
	return func(a *Agent) { a.echo = out }
}

// NewAgent creates an agent that answers at most maxTurns questions.
func NewAgent(gen Generator, maxTurns int, opts ...Option) *Agent {
	a := &Agent{
		gen:      gen,
		maxTurns: maxTurns,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Turns is how many questions have been answered.
func (a *Agent) Turns() int { return a.turns }

// Fallbacks is how many answers were made up because the generator failed.
func (a *Agent) Fallbacks() int { return a.fallbacks }

// Display records game output. The most recent line is taken as the
// question the next ReadLine answers.
func (a *Agent) Display(text string) {
	a.question = text
	a.record(text)
	if a.echo != nil {
		a.echo.Display(text)
	}
}

func (a *Agent) record(text string) {
	a.transcript = append(a.transcript, strings.Split(text, "\n")...)
	if n := len(a.transcript); n > transcriptWindow {
		a.transcript = a.transcript[n-transcriptWindow:]
	}
}

// ReadLine asks the generator for the answer to the current question.
func (a *Agent) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if a.turns >= a.maxTurns {
		a.logger.Info("autoplay turn budget spent", zap.Int("turns", a.turns))
		return "", io.EOF
	}
	a.turns++

	answer, reason, err := a.ask(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		answer = fallbackAnswer(a.question)
		a.fallbacks++
		a.logger.Warn("generator failed, using fallback answer",
			zap.Error(err),
			zap.String("question", a.question),
			zap.String("answer", answer),
		)
	} else {
		a.logger.Info("autoplay answer",
			zap.Int("turn", a.turns),
			zap.String("answer", answer),
			zap.String("reason", reason),
		)
	}

	a.record("> " + answer)
	if a.echo != nil {
		a.echo.Display("> " + answer)
	}
	return answer, nil
}

func (a *Agent) ask(ctx context.Context) (answer, reason string, err error) {
	var buf bytes.Buffer
	data := struct {
		Turn       int
		MaxTurns   int
		Transcript []string
		Question   string
	}{
		Turn:       a.turns,
		MaxTurns:   a.maxTurns,
		Transcript: a.transcript,
		Question:   a.question,
	}
	if err := nextMoveTemplate.Execute(&buf, data); err != nil {
		return "", "", err
	}

	text, err := a.gen.Generate(ctx, buf.String())
	if err != nil {
		return "", "", err
	}
	return parseReply(text)
}

type reply struct {
	Answer string `yaml:"answer"`
	Reason string `yaml:"reason"`
}

// parseReply reads the YAML reply, tolerating a markdown code fence.
func parseReply(text string) (answer, reason string, err error) {
	clean := strings.TrimSpace(text)
	clean = strings.TrimPrefix(clean, "```yaml")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")

	var r reply
	if err := yaml.Unmarshal([]byte(clean), &r); err != nil {
		return "", "", fmt.Errorf("failed to parse reply YAML: %v\nOutput was: %s", err, clean)
	}
	r.Answer = strings.TrimSpace(r.Answer)
	if r.Answer == "" {
		return "", "", fmt.Errorf("reply has no answer: %s", clean)
	}
	return r.Answer, r.Reason, nil
}

// fallbackAnswer is a safe answer to question when the generator cannot help.
func fallbackAnswer(question string) string {
	q := strings.ToLower(question)
	switch {
	case strings.Contains(q, "your name"):
		return "Gemini"
	case strings.Contains(q, "hard (h)"):
		return "n"
	case strings.Contains(q, "(y/n)"):
		return "n"
	case strings.Contains(q, "lookin' to"):
		return "nothing"
	default:
		return "e"
	}
}
