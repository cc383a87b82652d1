package engine

import (
	"fmt"
)

// GameEvent is a narrative decision offered after a night's sleep.
type GameEvent struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Choices     []EventChoice `json:"choices"`
}

// EventChoice is one of the two options of a GameEvent.
type EventChoice struct {
	ID    ChoiceID `json:"id"`
	Label string   `json:"label"`
}

// EventOutcome holds the resolved deltas. Money is whole dollars.
type EventOutcome struct {
	Message     string `json:"message"`
	MoneyChange int    `json:"moneyChange"`
	SubChange   int    `json:"subChange"`
	RepChange   int    `json:"repChange"`
}

// Validate checks the event offers exactly the A and B choices.
func (e GameEvent) Validate() error {
	if e.Title == "" {
		return fmt.Errorf("event has no title")
	}
	if len(e.Choices) != len(AllChoices) {
		return fmt.Errorf("event must have %d choices, got %d", len(AllChoices), len(e.Choices))
	}
	seen := map[ChoiceID]bool{}
	for _, c := range e.Choices {
		if !c.ID.Validate() {
			return fmt.Errorf("invalid choice id %q", c.ID)
		}
		if seen[c.ID] {
			return fmt.Errorf("duplicate choice id %q", c.ID)
		}
		if c.Label == "" {
			return fmt.Errorf("choice %s has no label", c.ID)
		}
		seen[c.ID] = true
	}
	return nil
}

// Choice returns the option with id.
func (e GameEvent) Choice(id ChoiceID) (EventChoice, bool) {
	for _, c := range e.Choices {
		if c.ID == id {
			return c, true
		}
	}
	return EventChoice{}, false
}

// ApplyOutcome applies the deltas, each clamped to its own range.
func ApplyOutcome(p *PlayerState, o EventOutcome, b Balance) {
	p.Money += Dollars(float64(o.MoneyChange))
	p.Subscribers += float64(o.SubChange)
	p.Reputation += o.RepChange
	p.Normalize(b)
}

// RollsEvent reports whether tonight's sleep leads into an event.
func RollsEvent(r Rand, b Balance) bool {
	return r.Float64() < b.EventChance
}
