package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceDayBasics(t *testing.T) {
	b := DefaultBalance()
	p := newTestPlayer()
	p.Energy = 12
	p.Hype = 50
	p.Subscribers = 42

	rep := AdvanceDay(p, &ScriptedRand{}, b)

	assert.Equal(t, 2, rep.Day)
	assert.Equal(t, 2, p.Day)
	assert.Equal(t, 100, p.Energy)
	assert.Equal(t, 30, p.Hype)
	assert.False(t, rep.TrendChanged)
	assert.Nil(t, rep.Offer)
	assert.Equal(t, []SubSnapshot{{Day: 1}, {Day: 2, Count: 42}}, p.SubHistory)

	p.Hype = 10
	AdvanceDay(p, &ScriptedRand{}, b)
	assert.Zero(t, p.Hype)
}

func TestAdvanceDayExpiresContract(t *testing.T) {
	b := DefaultBalance()
	p := newTestPlayer()
	p.Contract = &Contract{ID: "c1", DeadlineDay: 1}

	rep := AdvanceDay(p, &ScriptedRand{}, b)

	require.NotNil(t, rep.Expired)
	assert.Equal(t, "c1", rep.Expired.ID)
	assert.Nil(t, p.Contract)
	assert.Equal(t, 40, p.Reputation)

	p.Reputation = 5
	p.Contract = &Contract{ID: "c2", DeadlineDay: 1}
	AdvanceDay(p, &ScriptedRand{}, b)
	assert.Zero(t, p.Reputation)
}

func TestAdvanceDayKeepsContractOnDeadline(t *testing.T) {
	b := DefaultBalance()
	p := newTestPlayer()
	p.Contract = &Contract{ID: "c1", DeadlineDay: 2}

	rep := AdvanceDay(p, &ScriptedRand{Floats: []float64{0.99, 0.0}}, b)

	assert.Nil(t, rep.Expired)
	require.NotNil(t, p.Contract)
	assert.Nil(t, rep.Offer, "no offer while a contract is active")
	assert.Equal(t, 50, p.Reputation)
}

func TestAdvanceDayRotatesTrend(t *testing.T) {
	b := DefaultBalance()
	p := newTestPlayer()

	rep := AdvanceDay(p, &ScriptedRand{Floats: []float64{0.1}, Ints: []int{4}}, b)

	assert.True(t, rep.TrendChanged)
	assert.Equal(t, GenrePrank, p.CurrentTrend)
	assert.Equal(t, GenrePrank, rep.Trend)
}

func TestAdvanceDayDrawsOffer(t *testing.T) {
	b := DefaultBalance()
	p := newTestPlayer()

	rep := AdvanceDay(p, &ScriptedRand{Floats: []float64{0.99, 0.1}, Ints: []int{2, 10, 1, 7}}, b)

	require.NotNil(t, rep.Offer)
	o := rep.Offer
	assert.Equal(t, GenreTech, o.RequiredGenre)
	assert.Equal(t, 40, o.MinQuality)
	assert.Equal(t, Dollars(350), o.Payout)
	assert.Equal(t, 6, o.DeadlineDay)
	assert.Equal(t, "Brand 7", o.Sponsor)
	assert.NotEmpty(t, o.ID)
	assert.Nil(t, p.Contract, "offers are not taken automatically")

	require.NoError(t, AcceptContract(p, *o))
	assert.ErrorIs(t, AcceptContract(p, *o), ErrContractActive)
}
