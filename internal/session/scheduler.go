package session

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/DaanHessen/streamer-sim/internal/engine"
)

// task is a periodic job that can be started and stopped repeatedly.
type task struct {
	name  string
	every time.Duration
	fn    func()
	log   *log.Logger

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// start launches the loop unless it is already running.
func (t *task) start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop != nil {
		return
	}
	t.stop = make(chan struct{})
	t.done = make(chan struct{})
	go t.run(t.stop, t.done)
	t.log.Debug("task started", "task", t.name)
}

func (t *task) run(stop, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(t.every)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			t.fn()
		}
	}
}

// halt stops the loop and waits for it to exit. Halting a stopped task is a no-op.
func (t *task) halt() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop == nil {
		return
	}
	close(t.stop)
	<-t.done
	t.stop, t.done = nil, nil
	t.log.Debug("task stopped", "task", t.name)
}

func (t *task) running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stop != nil
}

// Scheduler drives a Session in real time: the simulation clock while
// PLAYING and the autoplay agent whenever a career exists.
type Scheduler struct {
	s     *Session
	clock *task
	agent *task
}

func NewScheduler(s *Session) *Scheduler {
	lg := s.log.WithPrefix("scheduler")
	return &Scheduler{
		s: s,
		clock: &task{
			name:  "clock",
			every: s.timing.Tick,
			fn:    func() { s.Step() },
			log:   lg,
		},
		agent: &task{
			name:  "autoplay",
			every: s.timing.AgentPeriod,
			fn: func() {
				if _, err := s.AutoplayStep(); err != nil {
					lg.Debug("agent intent rejected", "err", err)
				}
			},
			log: lg,
		},
	}
}

// Apply starts or stops each task to match phase p.
func (sc *Scheduler) Apply(p engine.Phase) {
	if p == engine.PhasePlaying {
		sc.clock.start()
	} else {
		sc.clock.halt()
	}
	if p == engine.PhaseSetup {
		sc.agent.halt()
	} else {
		sc.agent.start()
	}
}

// Run follows phase changes until ctx is done, then stops every task.
func (sc *Scheduler) Run(ctx context.Context) error {
	sc.Apply(sc.s.Phase())
	defer sc.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case p := <-sc.s.PhaseChanges():
			sc.Apply(p)
		}
	}
}

func (sc *Scheduler) Stop() {
	sc.clock.halt()
	sc.agent.halt()
}

// ClockRunning and AgentRunning report task state.
func (sc *Scheduler) ClockRunning() bool { return sc.clock.running() }

func (sc *Scheduler) AgentRunning() bool { return sc.agent.running() }
