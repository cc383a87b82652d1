package engine

import (
	"fmt"

	"github.com/google/uuid"
)

// DayReport lists what changed when the day advanced.
type DayReport struct {
	Day          int
	Expired      *Contract
	TrendChanged bool
	Trend        Genre
	Offer        *Contract
}

// AdvanceDay closes the current day: contract expiry, trend rotation, hype
// decay, the subscriber snapshot and a full energy refill. When no contract
// is active a new offer may be drawn; the caller decides whether it is taken.
func AdvanceDay(p *PlayerState, r Rand, b Balance) DayReport {
	p.Day++
	rep := DayReport{Day: p.Day}

	if c := p.Contract; c != nil && p.Day > c.DeadlineDay {
		expired := *c
		rep.Expired = &expired
		p.Contract = nil
		p.Reputation -= b.ContractExpiryRepHit
	}

	if r.Float64() < b.TrendRotateChance {
		next := pick(r, AllGenres)
		rep.TrendChanged = next != p.CurrentTrend
		p.CurrentTrend = next
	}
	rep.Trend = p.CurrentTrend

	p.Hype -= b.HypeDecayPerDay
	p.SubHistory = append(p.SubHistory, SubSnapshot{Day: p.Day, Count: p.Subscribers})
	p.Energy = b.MaxEnergy

	if p.Contract == nil && r.Float64() < b.ContractChance {
		offer := NewContractOffer(p.Day, r, b)
		rep.Offer = &offer
	}
	p.Normalize(b)
	return rep
}

// NewContractOffer draws a sponsor deal due a few days after day.
func NewContractOffer(day int, r Rand, b Balance) Contract {
	genre := pick(r, AllGenres)
	minQ := b.ContractQualityBase + r.Intn(b.ContractQualitySpan)
	days := b.ContractDaysBase + r.Intn(b.ContractDaysSpan)
	return Contract{
		ID:            uuid.NewString(),
		Sponsor:       fmt.Sprintf("Brand %d", r.Intn(99)),
		Description:   fmt.Sprintf("Create a %s video with %d+ Quality.", genre, minQ),
		RequiredGenre: genre,
		MinQuality:    minQ,
		Payout:        Dollars(b.ContractPayoutBase + b.ContractPayoutPerQ*float64(minQ)),
		DeadlineDay:   day + days,
	}
}

// AcceptContract makes c the active contract.
func AcceptContract(p *PlayerState, c Contract) error {
	if p.Contract != nil {
		return ErrContractActive
	}
	p.Contract = &c
	return nil
}
