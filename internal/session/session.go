package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/DaanHessen/streamer-sim/internal/engine"
	"github.com/DaanHessen/streamer-sim/internal/metrics"
	"github.com/DaanHessen/streamer-sim/internal/text"
)

var (
	ErrBusy           = errors.New("another action is in progress")
	ErrNotPlaying     = errors.New("game is not in the playing phase")
	ErrNoSkillCheck   = errors.New("no recording is waiting on a skill check")
	ErrAlreadyStarted = errors.New("career already started")
	ErrInvalidSetup   = errors.New("please fill in all fields")
)

// Deps wires a Session. Zero values get production defaults.
type Deps struct {
	Balance engine.Balance
	Timing  Timing
	Seed    engine.RunSeed
	// Gateway is the preferred content source; the offline templates answer
	// whenever it is nil or fails.
	Gateway text.Gateway
	Journal Journal
	Logger  *log.Logger
	Clock   func() time.Time
	Timers  Timers
	Spawn   func(func())
	// Rand and AgentRand override the seed-derived streams.
	Rand      engine.Rand
	AgentRand engine.Rand
}

// Session owns the career state and serializes every transition on it.
type Session struct {
	mu sync.Mutex

	b        engine.Balance
	timing   Timing
	rng      engine.Rand
	agentRng engine.Rand
	gateway  text.Gateway
	journal  Journal
	log      *log.Logger
	now      func() time.Time
	timers   Timers
	spawn    func(func())
	m        *metrics.SimMetrics

	state       *engine.PlayerState
	phase       engine.Phase
	activity    engine.Activity
	status      string
	footage     *engine.Footage
	event       *engine.GameEvent
	offer       *engine.Contract
	skillCheck  bool
	recordGenre engine.Genre
	autoplay    bool

	gen      uint64
	action   Timer
	watchdog Timer
	resets   int
	ticks    int64

	pending []Notice
	history ring
	jobs    []func()
	phaseCh chan engine.Phase
}

// New builds a session in the SETUP phase.
func New(d Deps) (*Session, error) {
	if d.Balance.MaxEnergy == 0 {
		d.Balance = engine.DefaultBalance()
	}
	if d.Timing.Tick == 0 {
		d.Timing = DefaultTiming()
	}
	if err := d.Balance.Validate(); err != nil {
		return nil, errors.Wrap(err, "balance")
	}
	if err := d.Timing.Validate(); err != nil {
		return nil, errors.Wrap(err, "timing")
	}
	if d.Logger == nil {
		d.Logger = log.Default()
	}
	if d.Clock == nil {
		d.Clock = time.Now
	}
	if d.Timers == nil {
		d.Timers = RealTimers()
	}
	if d.Spawn == nil {
		d.Spawn = func(fn func()) { go fn() }
	}
	if d.Journal == nil {
		d.Journal = nopJournal{}
	}
	if d.Rand == nil {
		d.Rand = d.Seed.Stream("sim")
	}
	if d.AgentRand == nil {
		d.AgentRand = d.Seed.Stream("agent")
	}
	logger := d.Logger.WithPrefix("session")
	s := &Session{
		b:        d.Balance,
		timing:   d.Timing,
		rng:      d.Rand,
		agentRng: d.AgentRand,
		gateway:  text.WithFallback(d.Gateway, text.NewTemplate(d.Seed.Stream("gateway")), logger),
		journal:  d.Journal,
		log:      logger,
		now:      d.Clock,
		timers:   d.Timers,
		spawn:    d.Spawn,
		m:        metrics.Sim(),
		state:    engine.NewPlayerState("", "", d.Balance),
		phase:    engine.PhaseSetup,
		activity: engine.ActivityIdle,
		history:  ring{n: d.Timing.LogSize},
		phaseCh:  make(chan engine.Phase, 1),
	}
	return s, nil
}

// unlock releases the session and then hands queued side effects (gateway
// calls, journal writes) to the spawner so they never run under the lock.
func (s *Session) unlock() {
	jobs := s.jobs
	s.jobs = nil
	s.mu.Unlock()
	for _, j := range jobs {
		s.spawn(j)
	}
}

func (s *Session) queue(fn func()) { s.jobs = append(s.jobs, fn) }

// Start names the player and channel and enters PLAYING.
func (s *Session) Start(player, channel string) error {
	s.mu.Lock()
	defer s.unlock()
	if s.phase != engine.PhaseSetup {
		return s.reject(ErrAlreadyStarted)
	}
	player, channel = strings.TrimSpace(player), strings.TrimSpace(channel)
	if player == "" || channel == "" {
		return s.reject(ErrInvalidSetup)
	}
	s.commit(engine.NewPlayerState(player, channel, s.b))
	s.setPhase(engine.PhasePlaying)
	s.notify(engine.NoticeSuccess, fmt.Sprintf("Channel %q launch! Trend: %s", channel, s.state.CurrentTrend))
	s.log.Info("career started", "player", player, "channel", channel)
	s.queue(func() {
		s.record("run_started", s.journal.RunStarted(context.Background(), player, channel))
	})
	return nil
}

// Snapshot is a read-only copy of everything the UI draws.
type Snapshot struct {
	State          *engine.PlayerState
	Phase          engine.Phase
	Activity       engine.Activity
	Status         string
	Footage        *engine.Footage
	Event          *engine.GameEvent
	Offer          *engine.Contract
	SkillCheck     bool
	RecordingGenre engine.Genre
	Autoplay       bool
	Rank           int
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		State:          s.state.Clone(),
		Phase:          s.phase,
		Activity:       s.activity,
		Status:         s.status,
		SkillCheck:     s.skillCheck,
		RecordingGenre: s.recordGenre,
		Autoplay:       s.autoplay,
		Rank:           s.state.Rank(),
	}
	if s.footage != nil {
		f := *s.footage
		snap.Footage = &f
	}
	if s.event != nil {
		ev := *s.event
		ev.Choices = append([]engine.EventChoice(nil), s.event.Choices...)
		snap.Event = &ev
	}
	if s.offer != nil {
		o := *s.offer
		snap.Offer = &o
	}
	return snap
}

// Notices drains the queued floating notifications.
func (s *Session) Notices() []Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.pending
	s.pending = nil
	return out
}

// Log returns the bounded game log, oldest first.
func (s *Session) Log() []Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.list()
}

// Balance is fixed for the life of the session.
func (s *Session) Balance() engine.Balance { return s.b }

func (s *Session) Phase() engine.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// PhaseChanges delivers the latest phase after every change.
func (s *Session) PhaseChanges() <-chan engine.Phase { return s.phaseCh }

// WatchdogResets counts forced resets since the session was created.
func (s *Session) WatchdogResets() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resets
}

func (s *Session) Ticks() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks
}

func (s *Session) setPhase(p engine.Phase) {
	if s.phase == p {
		return
	}
	s.phase = p
	select {
	case <-s.phaseCh:
	default:
	}
	s.phaseCh <- p
	s.log.Debug("phase", "phase", p)
}

func (s *Session) commit(next *engine.PlayerState) {
	s.state = next
	s.m.SetCareer(next.Subscribers, next.Day, next.Level)
}

func (s *Session) notify(kind engine.NoticeKind, msg string) {
	n := Notice{Kind: kind, Text: msg, Day: s.state.Day, At: s.now()}
	s.pending = append(s.pending, n)
	s.history.add(n)
}

// reject reports a precondition failure. Nothing has been mutated.
func (s *Session) reject(err error) error {
	s.m.IncRejected(errors.Cause(err).Error())
	s.notify(engine.NoticeWarning, err.Error())
	s.log.Debug("transition rejected", "err", err)
	return err
}

func (s *Session) record(op string, err error) {
	if err != nil {
		s.log.Error("journal write failed", "op", op, "err", err)
	}
}

func (s *Session) gatewayContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timing.GatewayTimeout)
}

// Step runs one simulation clock tick. Outside PLAYING it does nothing.
func (s *Session) Step() engine.TickReport {
	s.mu.Lock()
	defer s.unlock()
	if s.phase != engine.PhasePlaying {
		return engine.TickReport{}
	}
	next := s.state.Clone()
	rep := engine.Tick(next, s.now(), s.rng, s.b)
	s.commit(next)
	s.ticks++
	s.m.ObserveTick(rep.Views, int64(rep.Revenue))
	for _, rv := range rep.Overtaken {
		s.notify(engine.NoticeSuccess, fmt.Sprintf("You overtook %s!", rv.Name))
	}
	if rep.LevelUp != nil {
		s.notify(engine.NoticeSuccess, "LEVEL UP! Skill Point Earned.")
		s.log.Info("level up", "level", rep.LevelUp.Level)
	}
	return rep
}
