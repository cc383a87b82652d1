package engine

import (
	"math"
	"time"
)

// TickReport summarises one simulation tick.
type TickReport struct {
	Views     int64
	Revenue   Money
	NewSubs   float64
	XPGained  float64
	LevelUp   *LevelUp
	Overtaken []Rival
}

// viewsFor computes one video's views for this tick. It draws the noise term
// and, when the formula floors to zero on high quality content, the long-tail roll.
func viewsFor(p *PlayerState, v *Video, now time.Time, r Rand, b Balance) int64 {
	age := now.Sub(v.CreatedAt).Seconds()
	trend := 1.0
	if v.Genre == p.CurrentTrend {
		trend = b.TrendViewBonus
	}
	hype := 1.0
	if p.Hype >= b.MaxHype {
		hype = b.HypeViewBonus
	}
	noise := b.NoiseMin + r.Float64()*b.NoiseSpan
	raw := b.BaseViewRate *
		(float64(v.Quality) / 100) *
		b.GenreMultipliers[v.Genre] *
		trend *
		(float64(p.Reputation) / b.RepBaseline) *
		b.decayFactor(age) *
		noise *
		hype *
		(1 + p.PerkValue(EffectViewMult))
	views := int64(math.Floor(raw))
	if views == 0 && v.Quality > b.LongTailQuality && r.Float64() < b.LongTailChance {
		views = 1
	}
	return views
}

// Tick advances every time-dependent part of the career by one period:
// video views, revenue and subscribers, rival growth, overtakes and leveling.
func Tick(p *PlayerState, now time.Time, r Rand, b Balance) TickReport {
	var rep TickReport
	perView := b.revenuePerView()
	for i := range p.Videos {
		v := &p.Videos[i]
		views := viewsFor(p, v, now, r, b)
		v.Velocity = views
		if views <= 0 {
			continue
		}
		v.Views += views
		v.Earnings = Money(v.Views) * perView
		v.Likes = max(v.Likes, v.Views*b.LikesPerMille*int64(v.Quality)/(1000*50))
		v.Dislikes = max(v.Dislikes, v.Views*b.DislikesPerMille*int64(100-v.Quality)/(1000*50))
		rep.Views += views

		chance := b.SubChanceBase
		if v.Quality > b.SubHighQuality {
			chance = b.SubChanceHigh
		}
		if r.Float64() < chance {
			rep.NewSubs += math.Ceil(float64(views) * b.SubConversion)
		}
	}

	p.TotalViews += rep.Views
	rep.Revenue = (Money(rep.Views) * perView).scale(1 + p.PerkValue(EffectMoneyMult))
	p.Money += rep.Revenue
	rep.XPGained = float64(rep.Views / int64(b.ViewsPerXP))

	growRivals(p, r, b)
	prev := p.Subscribers
	p.Subscribers += rep.NewSubs
	rep.Overtaken = overtaken(p.Rivals, prev, p.Subscribers)

	rep.LevelUp = applyXP(p, rep.XPGained, b)
	p.Normalize(b)
	return rep
}
