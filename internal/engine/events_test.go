package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validEvent() GameEvent {
	return GameEvent{
		Title: "Viral Challenge",
		Choices: []EventChoice{
			{ID: ChoiceA, Label: "Do it"},
			{ID: ChoiceB, Label: "Skip"},
		},
	}
}

func TestGameEventValidate(t *testing.T) {
	assert.NoError(t, validEvent().Validate())

	one := validEvent()
	one.Choices = one.Choices[:1]
	assert.Error(t, one.Validate())

	dup := validEvent()
	dup.Choices[1].ID = ChoiceA
	assert.Error(t, dup.Validate())

	bad := validEvent()
	bad.Choices[1].ID = "C"
	assert.Error(t, bad.Validate())

	untitled := validEvent()
	untitled.Title = ""
	assert.Error(t, untitled.Validate())

	c, ok := validEvent().Choice(ChoiceB)
	assert.True(t, ok)
	assert.Equal(t, "Skip", c.Label)
}

func TestApplyOutcomeClampsEachDelta(t *testing.T) {
	b := DefaultBalance()
	p := newTestPlayer()
	p.Money = Dollars(10)
	p.Subscribers = 5
	p.Reputation = 98

	ApplyOutcome(p, EventOutcome{MoneyChange: -50, SubChange: -20, RepChange: 5}, b)

	assert.Zero(t, p.Money)
	assert.Zero(t, p.Subscribers)
	assert.Equal(t, 100, p.Reputation)

	ApplyOutcome(p, EventOutcome{MoneyChange: 30, SubChange: 100, RepChange: -200}, b)
	assert.Equal(t, Dollars(30), p.Money)
	assert.Equal(t, 100.0, p.Subscribers)
	assert.Zero(t, p.Reputation)
}

func TestRollsEvent(t *testing.T) {
	b := DefaultBalance()
	assert.True(t, RollsEvent(&ScriptedRand{Floats: []float64{0.29}}, b))
	assert.False(t, RollsEvent(&ScriptedRand{Floats: []float64{0.3}}, b))
}
