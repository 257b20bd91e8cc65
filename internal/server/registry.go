package server

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

// TickInterval is the cadence of the game clock.
const TickInterval = time.Second

type entry struct {
	session  *mines.Session
	lastSeen time.Time
	conns    int
}

// Registry keeps the live sessions in memory and drives their clocks.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
	log      *logrus.Logger

	interval time.Duration
	now      func() time.Time
	newRand  func() *rand.Rand
}

func NewRegistry(log *logrus.Logger, ttl time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		log:      log,
		interval: TickInterval,
		now:      time.Now,
		newRand:  mines.NewRand,
	}
}

// Create starts a default-sized game and registers it under a new id.
func (reg *Registry) Create(opts ...mines.Option) (string, *mines.Session, error) {
	s, err := mines.NewSession(
		mines.DefaultRows, mines.DefaultColumns, mines.DefaultMineCount,
		reg.newRand(), opts...,
	)
	if err != nil {
		return "", nil, err
	}
	return reg.register(s), s, nil
}

func (reg *Registry) register(s *mines.Session) string {
	id := uuid.NewString()

	reg.mu.Lock()
	reg.sessions[id] = &entry{session: s, lastSeen: reg.now()}
	reg.mu.Unlock()

	reg.log.WithField("session_id", id).Debug("session created")
	return id
}

// Get looks a session up and marks it as recently used.
func (reg *Registry) Get(id string) (*mines.Session, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	e, ok := reg.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = reg.now()
	return e.session, true
}

// attach keeps the session registered, however idle, until detach is
// called.
func (reg *Registry) attach(id string) (detach func(), ok bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	e, ok := reg.sessions[id]
	if !ok {
		return nil, false
	}
	e.conns++
	return func() {
		reg.mu.Lock()
		defer reg.mu.Unlock()
		e.conns--
		e.lastSeen = reg.now()
	}, true
}

func (reg *Registry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.sessions)
}

// Run ticks every session once per interval and drops sessions nobody has
// touched for longer than the ttl. It returns when ctx is done.
func (reg *Registry) Run(ctx context.Context) error {
	ticker := time.NewTicker(reg.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			reg.tickAll()
			reg.evict()
		}
	}
}

func (reg *Registry) tickAll() {
	reg.mu.Lock()
	sessions := make([]*mines.Session, 0, len(reg.sessions))
	for _, e := range reg.sessions {
		sessions = append(sessions, e.session)
	}
	reg.mu.Unlock()

	// Tick may run listeners, which must not see the registry locked
	for _, s := range sessions {
		s.Tick()
	}
}

func (reg *Registry) evict() {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	deadline := reg.now().Add(-reg.ttl)
	for id, e := range reg.sessions {
		if e.conns == 0 && e.lastSeen.Before(deadline) {
			delete(reg.sessions, id)
			reg.log.WithField("session_id", id).Debug("session evicted")
		}
	}
}
