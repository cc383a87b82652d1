package session

import (
	"time"

	"github.com/DaanHessen/streamer-sim/internal/engine"
)

// Notice is a user-visible message. It is both queued for the floating
// notifications and appended to the bounded game log.
type Notice struct {
	Kind engine.NoticeKind
	Text string
	Day  int
	At   time.Time
}

// ring keeps the newest n notices.
type ring struct {
	n     int
	items []Notice
}

func (r *ring) add(n Notice) {
	r.items = append(r.items, n)
	if over := len(r.items) - r.n; over > 0 {
		r.items = append([]Notice(nil), r.items[over:]...)
	}
}

func (r *ring) list() []Notice { return append([]Notice(nil), r.items...) }
