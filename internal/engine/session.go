package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/tatianab/treasure-hunter/internal/chance"
	"github.com/tatianab/treasure-hunter/internal/hunter"
	"github.com/tatianab/treasure-hunter/internal/models"
	"github.com/tatianab/treasure-hunter/internal/telemetry"
)

// ErrNotStarted is returned when a command is processed before Start.
var ErrNotStarted = errors.New("session has not started")

const menu = `(B)uy something at the shop.
(S)ell something at the shop.
(E)xplore surrounding terrain.
(H)unt for treasure in the town.
(M)ove on to a different town.
(L)ook for trouble!
(D)ig for gold.
Give up the hunt and e(X)it.`

// Session is one playthrough. It is driven from a single goroutine.
type Session struct {
	id      uuid.UUID
	catalog *models.Catalog
	rng     chance.Source
	con     *console
	logger  *zap.Logger
	tracer  trace.Tracer

	settings models.Settings
	hunter   *hunter.Hunter
	town     *Town
	market   *Market
	state    State
	towns    int

	// brawlLatest keeps the town's brawl news on screen until another
	// action in town replaces it.
	brawlLatest bool
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session's logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithTracer sets the tracer used for turn spans.
func WithTracer(t trace.Tracer) Option {
	return func(s *Session) { s.tracer = t }
}

// NewSession wires a session to its game data, randomness and I/O ports.
func NewSession(cat *models.Catalog, rng chance.Source, in Input, out Output, opts ...Option) *Session {
	s := &Session{
		id:      uuid.New(),
		catalog: cat,
		rng:     rng,
		con:     &console{in: in, out: out},
		logger:  zap.NewNop(),
		tracer:  telemetry.Tracer("engine"),
		state:   StateSetup,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("session", s.id.String()))
	return s
}

func (s *Session) ID() uuid.UUID             { return s.id }
func (s *Session) State() State              { return s.state }
func (s *Session) Settings() models.Settings { return s.settings }
func (s *Session) Hunter() *hunter.Hunter    { return s.hunter }
func (s *Session) Town() *Town               { return s.town }
func (s *Session) Market() *Market           { return s.market }

func (s *Session) idAttr() attribute.KeyValue {
	return attribute.String("session.id", s.id.String())
}

// Setup asks for the hunter's name and the difficulty, then starts the game.
func (s *Session) Setup(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "session.setup", trace.WithAttributes(s.idAttr()))
	defer span.End()

	s.con.Display("Welcome to TREASURE HUNTER!\nGoing hunting for the big treasure, eh?")
	name, err := s.con.Ask(ctx, "What's your name, Hunter? ")
	if err != nil {
		return err
	}
	if name == "" {
		name = "Hunter"
	}
	choice, err := s.con.Ask(ctx, "Hard (h), Normal (n), Easy (e) or Samurai (s)? ")
	if err != nil {
		return err
	}

	difficulty := models.ParseDifficulty(choice)
	span.SetAttributes(attribute.String("difficulty", difficulty.String()))
	s.Start(name, difficulty)
	return nil
}

// Start creates the hunter for the chosen difficulty and the first town.
func (s *Session) Start(name string, difficulty models.Difficulty) {
	s.settings = s.catalog.Settings(difficulty)
	s.hunter = hunter.New(name, s.settings.StartingGold, s.settings.Samurai)
	for _, item := range s.settings.StarterKit {
		s.hunter.Buy(item, s.settings.StarterKitPrice)
	}
	s.market = NewMarket(s.catalog, s.settings.Markdown)
	s.state = StateAwaitingCommand

	s.logger.Info("session started",
		zap.String("hunter", name),
		zap.Stringer("difficulty", difficulty),
		zap.Int("gold", s.hunter.Gold()),
	)
	s.enterTown()
}

func (s *Session) enterTown() {
	s.town = NewTown(s.catalog, s.settings, s.rng)
	s.towns++
	s.logger.Debug("town generated",
		zap.Int("town", s.towns),
		zap.String("terrain", s.town.Terrain().Name),
		zap.Bool("tough", s.town.IsTough()),
		zap.String("treasure", string(s.town.Treasure())),
	)
	s.con.Display(s.town.Welcome(s.hunter.Name()))
	s.pushStatus()
}

// Run plays until the session reaches a terminal state. Running out of
// input or a cancelled context ends the session as exited without error.
func (s *Session) Run(ctx context.Context) (State, error) {
	if s.state == StateSetup {
		if err := s.Setup(ctx); err != nil {
			return s.abort(err)
		}
	}
	for !s.state.Terminal() {
		if err := s.Turn(ctx); err != nil {
			return s.abort(err)
		}
	}
	return s.state, nil
}

func (s *Session) abort(err error) (State, error) {
	s.state = StateExited
	s.pushStatus()
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		s.logger.Info("session ended without input", zap.Error(err))
		return s.state, nil
	}
	s.logger.Error("session aborted", zap.Error(err))
	return s.state, err
}

// Turn checks the end conditions, shows the status and menu, and processes
// one command.
func (s *Session) Turn(ctx context.Context) error {
	if s.hunter == nil {
		return ErrNotStarted
	}
	ctx, span := s.tracer.Start(ctx, "session.turn", trace.WithAttributes(s.idAttr()))
	defer span.End()

	if s.checkTerminal() {
		span.SetAttributes(attribute.String("state", s.state.String()))
		return nil
	}

	s.render()
	choice, err := s.con.Ask(ctx, "What's your next move? ")
	if err != nil {
		return err
	}
	span.SetAttributes(attribute.String("command", strings.ToLower(choice)))
	if err := s.ProcessCommand(ctx, choice); err != nil {
		return err
	}
	span.SetAttributes(attribute.Int("gold", s.hunter.Gold()))
	return nil
}

func (s *Session) checkTerminal() bool {
	switch {
	case s.state.Terminal():
		return true
	case s.hunter.IsBankrupt():
		s.state = StateGameOver
		s.con.Display("Game Over")
		s.logger.Info("hunter went bankrupt", zap.Int("towns", s.towns))
	case s.hunter.OwnsAllTreasureKinds():
		s.state = StateVictory
		s.con.Display("Congratulations, you have found the last of the three treasures, you win!")
		s.logger.Info("hunter found every treasure", zap.Int("towns", s.towns))
	default:
		return false
	}
	s.pushStatus()
	return true
}

func (s *Session) render() {
	if _, ok := s.con.out.(StatusSink); ok {
		return
	}
	if s.brawlLatest {
		s.con.Display(s.town.LatestNews())
	}
	s.con.Display("***")
	s.con.Display(s.hunter.InfoString())
	s.con.Display(s.town.InfoString())
	s.con.Display(menu)
}

// ProcessCommand carries out one menu choice. Unknown choices are reported
// to the player and change nothing.
func (s *Session) ProcessCommand(ctx context.Context, cmd string) error {
	if s.hunter == nil {
		return ErrNotStarted
	}
	if s.state.Terminal() {
		return nil
	}

	cmd = strings.ToLower(strings.TrimSpace(cmd))
	s.logger.Debug("command", zap.String("command", cmd))

	switch cmd {
	case "b":
		s.brawlLatest = false
		return s.shop(ctx, s.market.EnterBuy)
	case "s":
		s.brawlLatest = false
		return s.shop(ctx, s.market.EnterSell)
	case "e":
		s.con.Display(s.town.Terrain().InfoString())
	case "h":
		s.brawlLatest = false
		s.con.Display(s.town.SearchTown(s.hunter))
		s.logger.Info("town searched", zap.String("news", s.town.LatestNews()))
	case "m":
		s.brawlLatest = false
		s.move()
	case "l":
		s.brawlLatest = true
		s.con.Display(s.town.LookForTrouble(s.hunter))
		s.logger.Info("looked for trouble", zap.String("news", s.town.LatestNews()), zap.Int("gold", s.hunter.Gold()))
	case "d":
		s.brawlLatest = false
		s.con.Display(s.town.DigForGold(s.hunter))
		s.logger.Info("dug for gold", zap.String("news", s.town.LatestNews()), zap.Int("gold", s.hunter.Gold()))
	case "x":
		s.con.Display(fmt.Sprintf("Fare thee well, %s!", s.hunter.Name()))
		s.state = StateExited
		s.logger.Info("hunter gave up", zap.Int("towns", s.towns))
	default:
		s.con.Display("Yikes! That's an invalid option! Try again.")
	}
	s.pushStatus()
	return nil
}

func (s *Session) shop(ctx context.Context, enter func(context.Context, Dialog, Adventurer) (string, error)) error {
	news, err := enter(ctx, s.con, s.hunter)
	if err != nil {
		return err
	}
	s.con.Display(news)
	s.pushStatus()
	return nil
}

func (s *Session) move() {
	if !s.town.LeaveTown(s.hunter) {
		s.con.Display(s.town.LatestNews())
		return
	}
	s.con.Display(s.town.LatestNews())
	s.logger.Info("left town", zap.String("news", s.town.LatestNews()))
	s.enterTown()
}

// Status snapshots the hunter and current town.
func (s *Session) Status() Status {
	st := Status{
		Difficulty: s.settings.Difficulty.String(),
		State:      s.state,
	}
	if s.hunter != nil {
		st.Hunter = s.hunter.Name()
		st.Gold = s.hunter.Gold()
		st.Inventory = s.hunter.Inventory()
		st.Treasures = s.hunter.Treasures()
	}
	if s.market != nil {
		st.Markdown = s.market.Markdown()
	}
	if s.town != nil {
		st.Terrain = s.town.Terrain().Name
		st.Tough = s.town.IsTough()
		st.News = s.town.LatestNews()
	}
	return st
}

func (s *Session) pushStatus() {
	if sink, ok := s.con.out.(StatusSink); ok {
		sink.ShowStatus(s.Status())
	}
}
