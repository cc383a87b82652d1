package engine

import "sort"

// DefaultRivals returns the fixed roster of competing channels.
func DefaultRivals() []Rival {
	return []Rival{
		{ID: "r1", Name: "DailyVlogger", Subscribers: 500, GrowthRate: 1.1, Color: "#f97316"},
		{ID: "r2", Name: "TechGuru", Subscribers: 2500, GrowthRate: 1.2, Color: "#3b82f6"},
		{ID: "r3", Name: "GameMaster", Subscribers: 10000, GrowthRate: 1.3, Color: "#22c55e"},
		{ID: "r4", Name: "PrankKing", Subscribers: 50000, GrowthRate: 1.4, Color: "#a855f7"},
		{ID: "r5", Name: "The Legend", Subscribers: 1000000, GrowthRate: 1.5, Color: "#ef4444"},
	}
}

// growRivals advances every rival by one tick of stochastic growth.
func growRivals(p *PlayerState, r Rand, b Balance) {
	for i := range p.Rivals {
		rv := &p.Rivals[i]
		rv.Subscribers += rv.GrowthRate * (1 + r.Float64()*b.RivalJitter) * b.RivalGrowthScale
	}
}

// overtaken lists rivals whose count the player crossed between prev and next.
// Rivals must already hold their post-growth counts.
func overtaken(rivals []Rival, prev, next float64) []Rival {
	var out []Rival
	for _, rv := range rivals {
		if prev < rv.Subscribers && next >= rv.Subscribers {
			out = append(out, rv)
		}
	}
	return out
}

// Standing is one row of the leaderboard.
type Standing struct {
	Name        string
	Subscribers float64
	Player      bool
}

// Leaderboard orders the player and rivals by subscribers, highest first.
// Ties rank the player ahead.
func (p *PlayerState) Leaderboard() []Standing {
	rows := make([]Standing, 0, len(p.Rivals)+1)
	rows = append(rows, Standing{Name: p.ChannelName, Subscribers: p.Subscribers, Player: true})
	for _, rv := range p.Rivals {
		rows = append(rows, Standing{Name: rv.Name, Subscribers: rv.Subscribers})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Subscribers > rows[j].Subscribers })
	return rows
}

// Rank is the player's 1-based leaderboard position.
func (p *PlayerState) Rank() int {
	rank := 1
	for _, rv := range p.Rivals {
		if rv.Subscribers > p.Subscribers {
			rank++
		}
	}
	return rank
}
