package engine

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/tatianab/treasure-hunter/internal/chance"
	"github.com/tatianab/treasure-hunter/internal/hunter"
	"github.com/tatianab/treasure-hunter/internal/models"
)

// scriptedInput replays fixed lines, then reports io.EOF.
type scriptedInput struct {
	lines []string
	err   error
}

func script(lines ...string) *scriptedInput {
	return &scriptedInput{lines: lines}
}

func (s *scriptedInput) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(s.lines) == 0 {
		if s.err != nil {
			return "", s.err
		}
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

// recordingOutput keeps everything displayed.
type recordingOutput struct {
	messages []string
}

func (r *recordingOutput) Display(text string) {
	r.messages = append(r.messages, text)
}

func (r *recordingOutput) text() string {
	return strings.Join(r.messages, "\n")
}

func (r *recordingOutput) last() string {
	if len(r.messages) == 0 {
		return ""
	}
	return r.messages[len(r.messages)-1]
}

// panelOutput is a recording output with a status panel.
type panelOutput struct {
	recordingOutput
	statuses []Status
}

func (p *panelOutput) ShowStatus(s Status) {
	p.statuses = append(p.statuses, s)
}

func newDialog(lines ...string) (*console, *recordingOutput) {
	out := &recordingOutput{}
	return &console{in: script(lines...), out: out}, out
}

func testCatalog(t *testing.T) *models.Catalog {
	t.Helper()
	cat, err := models.LoadCatalog()
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}
	return cat
}

func terrainNamed(t *testing.T, cat *models.Catalog, name string) models.Terrain {
	t.Helper()
	for _, terrain := range cat.Terrains {
		if terrain.Name == name {
			return terrain
		}
	}
	t.Fatalf("No terrain named %q", name)
	return models.Terrain{}
}

// townAt builds a town with fixed facts instead of drawing them.
func townAt(t *testing.T, terrain string, treasure models.Treasure, tough bool, rng chance.Source) *Town {
	t.Helper()
	return &Town{
		terrain:  terrainNamed(t, testCatalog(t), terrain),
		treasure: treasure,
		tough:    tough,
		rng:      rng,
	}
}

func hunterWith(gold int, items ...string) *hunter.Hunter {
	h := hunter.New("Ada", gold, false)
	for _, item := range items {
		h.AddItem(item)
	}
	return h
}
