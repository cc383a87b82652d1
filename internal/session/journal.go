package session

import (
	"context"

	"github.com/DaanHessen/streamer-sim/internal/engine"
)

// Journal receives career milestones for the append-only record. Calls are
// made off the session lock and failures are only logged.
type Journal interface {
	RunStarted(ctx context.Context, player, channel string) error
	VideoPublished(ctx context.Context, day int, v engine.Video) error
	DayAdvanced(ctx context.Context, p engine.SubSnapshot, money engine.Money, reputation int) error
	EventResolved(ctx context.Context, day int, ev engine.GameEvent, choice engine.ChoiceID, o engine.EventOutcome) error
}

type nopJournal struct{}

func (nopJournal) RunStarted(context.Context, string, string) error { return nil }
func (nopJournal) VideoPublished(context.Context, int, engine.Video) error { return nil }
func (nopJournal) DayAdvanced(context.Context, engine.SubSnapshot, engine.Money, int) error {
	return nil
}
func (nopJournal) EventResolved(context.Context, int, engine.GameEvent, engine.ChoiceID, engine.EventOutcome) error {
	return nil
}
