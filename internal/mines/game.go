package mines

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

type State int8

const (
	Playing State = iota
	Won
	Lost
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// [State] implements [encoding.TextMarshaler]
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	for _, state := range []State{Playing, Won, Lost} {
		if state.String() == string(text) {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("unknown state %q", text)
}

type RevealOutcome struct {
	Delta     []Cell `json:"delta"`
	Lost      bool   `json:"lost"`
	Won       bool   `json:"won"`
	Detonated *Point `json:"detonated,omitempty"`
	Rejected  bool   `json:"rejected,omitempty"`
}

type FlagOutcome struct {
	Flagged  bool `json:"flagged"`
	Rejected bool `json:"rejected"`
}

type Snapshot struct {
	Rows      int    `json:"rows"`
	Columns   int    `json:"columns"`
	MineCount int    `json:"mine_count"`
	State     State  `json:"state"`
	Elapsed   int    `json:"elapsed"`
	Flags     int    `json:"flags"`
	Detonated *Point `json:"detonated,omitempty"`
	Grid      Grid   `json:"grid"`
}

type Option func(*Session)

// WithAutoRestart makes a lost game start over immediately. The losing
// [RevealOutcome] still reports the loss.
func WithAutoRestart() Option {
	return func(s *Session) {
		s.autoRestart = true
	}
}

// WithListener subscribes fn before the session emits its first event.
func WithListener(fn func(Event)) Option {
	return func(s *Session) {
		s.subscribe(fn)
	}
}

// Session is one game in progress together with everything needed to start
// the next one. All methods are safe for concurrent use.
type Session struct {
	mu          sync.Mutex
	rnd         *rand.Rand
	autoRestart bool

	board     *Board
	revealed  *CellSet
	flags     *CellSet
	state     State
	elapsed   int
	detonated *Point

	listeners  []listener
	listenerId int
	pending    []Event
	flushing   bool
}

// NewSession starts a game on a freshly generated board. r may be nil, in
// which case a randomly seeded source is used.
func NewSession(rows, columns, mineCount int, r *rand.Rand, opts ...Option) (*Session, error) {
	if r == nil {
		r = NewRand()
	}
	board, err := Generate(rows, columns, mineCount, r)
	if err != nil {
		return nil, err
	}
	return NewSessionFromBoard(board, r, opts...), nil
}

// NewSessionFromBoard starts a game on board. Later restarts draw boards of
// the same dimensions from r.
func NewSessionFromBoard(board *Board, r *rand.Rand, opts ...Option) *Session {
	if r == nil {
		r = NewRand()
	}
	s := &Session{rnd: r}
	for _, opt := range opts {
		opt(s)
	}
	s.reset(board)
	s.pending = append(s.pending, Event{Kind: TimerStarted})
	s.flush()
	return s
}

func (s *Session) reset(board *Board) {
	s.board = board
	s.revealed = NewCellSet(board.Rows, board.Columns)
	s.flags = NewCellSet(board.Rows, board.Columns)
	s.state = Playing
	s.elapsed = 0
	s.detonated = nil
}

func (s *Session) restart() []Event {
	b := s.board
	s.reset(place(b.Rows, b.Columns, b.MineCount(), s.rnd))
	return []Event{{Kind: TimerStarted}}
}

func (s *Session) Reveal(row, col int) (RevealOutcome, error) {
	s.mu.Lock()
	out, events, err := s.reveal(row, col)
	s.pending = append(s.pending, events...)
	s.mu.Unlock()
	s.flush()
	return out, err
}

func (s *Session) reveal(row, col int) (out RevealOutcome, events []Event, err error) {
	if !s.board.InBounds(row, col) {
		return out, nil, outOfBounds(row, col)
	}
	if s.state != Playing || s.flags.Has(row, col) {
		out.Rejected = true
		return out, nil, nil
	}

	delta, detonated := Reveal(s.board, s.revealed, s.flags, row, col)
	if detonated {
		p := Point{Row: row, Col: col}
		s.state = Lost
		s.detonated = &p
		out.Lost = true
		out.Detonated = &p
		out.Delta = []Cell{{Point: p, Status: ExplodedMine}}
		events = append(events,
			Event{Kind: GameOver, Elapsed: s.elapsed},
			Event{Kind: TimerStopped, Elapsed: s.elapsed},
		)
		Log.WithFields(logrus.Fields{
			"cell":    p.String(),
			"elapsed": s.elapsed,
		}).Debug("mine detonated")
		if s.autoRestart {
			events = append(events, s.restart()...)
		}
		return out, events, nil
	}

	out.Delta = delta
	if s.revealed.Len() == s.board.Size()-s.board.MineCount() {
		s.state = Won
		out.Won = true
		events = append(events,
			Event{Kind: Victory, Elapsed: s.elapsed},
			Event{Kind: TimerStopped, Elapsed: s.elapsed},
		)
		Log.WithField("elapsed", s.elapsed).Debug("board cleared")
	}
	return out, events, nil
}

func (s *Session) ToggleFlag(row, col int) (FlagOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.board.InBounds(row, col) {
		return FlagOutcome{}, outOfBounds(row, col)
	}
	if s.state != Playing {
		return FlagOutcome{Flagged: s.flags.Has(row, col), Rejected: true}, nil
	}
	flagged, changed := ToggleFlag(s.flags, s.revealed, row, col)
	return FlagOutcome{Flagged: flagged, Rejected: !changed}, nil
}

// Tick advances the clock by one second while the game is in progress and
// returns the elapsed time.
func (s *Session) Tick() int {
	s.mu.Lock()
	if s.state != Playing {
		defer s.mu.Unlock()
		return s.elapsed
	}
	s.elapsed++
	elapsed := s.elapsed
	s.pending = append(s.pending, Event{Kind: Ticked, Elapsed: elapsed})
	s.mu.Unlock()
	s.flush()
	return elapsed
}

// Restart throws the current game away and starts a new one on a fresh board
// of the same dimensions.
func (s *Session) Restart() Snapshot {
	s.mu.Lock()
	s.pending = append(s.pending, s.restart()...)
	snap := s.snapshot()
	s.mu.Unlock()
	s.flush()
	return snap
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Elapsed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) snapshot() Snapshot {
	snap := Snapshot{
		Rows:      s.board.Rows,
		Columns:   s.board.Columns,
		MineCount: s.board.MineCount(),
		State:     s.state,
		Elapsed:   s.elapsed,
		Flags:     s.flags.Len(),
		Grid:      s.grid(),
	}
	if s.detonated != nil {
		p := *s.detonated
		snap.Detonated = &p
	}
	return snap
}

// grid renders the player's view. Once the game is over every mine and every
// misplaced flag is shown.
func (s *Session) grid() Grid {
	over := s.state != Playing
	g := make(Grid, s.board.Size())
	for i := range g {
		p := s.board.point(i)
		mine := s.board.MineAt(p.Row, p.Col)
		switch {
		case s.revealed.has(i):
			g[i] = CellStatus(CountAdjacentMines(s.board, p.Row, p.Col))
		case s.flags.has(i) && !over:
			g[i] = Flag
		case s.flags.has(i) && mine:
			g[i] = CorrectFlag
		case s.flags.has(i):
			g[i] = WrongFlag
		case over && mine && s.detonated != nil && *s.detonated == p:
			g[i] = ExplodedMine
		case over && mine:
			g[i] = UnflaggedMine
		default:
			g[i] = Unknown
		}
	}
	return g
}

// Subscribe registers fn for every event emitted from now on. Listeners run
// outside the session lock, so they may call back into the session.
func (s *Session) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.subscribe(fn)
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.listeners = slices.DeleteFunc(s.listeners, func(l listener) bool {
			return l.id == id
		})
	}
}

func (s *Session) subscribe(fn func(Event)) int {
	s.listenerId++
	s.listeners = append(s.listeners, listener{id: s.listenerId, fn: fn})
	return s.listenerId
}

// flush delivers pending events in the order they were queued under the
// session lock. Only one goroutine flushes at a time; events queued meanwhile,
// including by listeners calling back into the session, are delivered by the
// flush already running.
func (s *Session) flush() {
	s.mu.Lock()
	if s.flushing {
		s.mu.Unlock()
		return
	}
	s.flushing = true
	for len(s.pending) > 0 {
		e := s.pending[0]
		s.pending = s.pending[1:]
		listeners := slices.Clone(s.listeners)
		s.mu.Unlock()
		for _, l := range listeners {
			l.fn(e)
		}
		s.mu.Lock()
	}
	s.flushing = false
	s.mu.Unlock()
}
