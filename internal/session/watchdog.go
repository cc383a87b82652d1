package session

import (
	"time"

	"github.com/DaanHessen/streamer-sim/internal/engine"
)

// arm (re)starts the watchdog for the activity started as gen.
func (s *Session) arm(gen uint64, d time.Duration) {
	stopTimer(&s.watchdog)
	s.watchdog = s.timers.AfterFunc(d, func() { s.expire(gen) })
}

// expire forces a stuck activity back to idle. Bumping the generation makes
// any completion still in flight for it a no-op.
func (s *Session) expire(gen uint64) {
	s.mu.Lock()
	defer s.unlock()
	if s.gen != gen || !s.activity.Busy() {
		return
	}
	s.log.Warn("watchdog reset", "activity", s.activity, "status", s.status)
	s.m.IncWatchdogReset(string(s.activity))
	s.skillCheck = false
	s.gen++
	s.finish()
	s.resets++
	s.notify(engine.NoticeWarning, "System unstuck: action timed out and was reset.")
}
