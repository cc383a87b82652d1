package engine

import (
	"time"
)

// PlayerState is the single career record every subsystem mutates.
type PlayerState struct {
	PlayerName    string
	ChannelName   string
	Day           int
	Energy        int
	Money         Money
	Subscribers   float64
	TotalViews    int64
	Level         int
	XP            float64
	XPToNextLevel float64
	SkillPoints   int
	Perks         []Perk
	Reputation    int
	Equipment     Equipment
	EditingSkill  float64
	Videos        []Video
	CurrentTrend  Genre
	Contract      *Contract
	Inventory     map[Upgrade]bool
	SubHistory    []SubSnapshot
	Hype          int
	Rivals        []Rival
}

// Video is a published piece of content. Counters only grow.
type Video struct {
	ID           string
	Title        string
	Description  string
	VisualTag    string
	Genre        Genre
	Quality      int
	Views        int64
	Likes        int64
	Dislikes     int64
	Earnings     Money
	Comments     []Comment
	DayPublished int
	CreatedAt    time.Time
	// Velocity is last tick's views, display only.
	Velocity int64
}

type Comment struct {
	ID        string
	User      string
	Text      string
	Sentiment Sentiment
	Hearted   bool
}

type Perk struct {
	ID          string
	Name        string
	Description string
	Cost        int
	Effect      PerkEffect
	Value       float64
	Unlocked    bool
}

type Contract struct {
	ID            string
	Sponsor       string
	Description   string
	RequiredGenre Genre
	MinQuality    int
	Payout        Money
	DeadlineDay   int
	Completed     bool
}

type Rival struct {
	ID          string
	Name        string
	Subscribers float64
	GrowthRate  float64
	Color       string
}

// Footage is recorded but unedited content. At most one exists at a time.
type Footage struct {
	Genre     Genre
	Potential int
}

type SubSnapshot struct {
	Day   int
	Count float64
}

// NewPlayerState builds the day-one career.
func NewPlayerState(player, channel string, b Balance) *PlayerState {
	return &PlayerState{
		PlayerName:    player,
		ChannelName:   channel,
		Day:           1,
		Energy:        b.MaxEnergy,
		Money:         Dollars(b.InitialMoney),
		Level:         1,
		XPToNextLevel: b.BaseXPToLevel,
		Perks:         DefaultPerks(),
		Reputation:    b.InitialRep,
		Equipment:     EquipmentSmartphone,
		EditingSkill:  1,
		CurrentTrend:  GenreGaming,
		Inventory:     map[Upgrade]bool{},
		SubHistory:    []SubSnapshot{{Day: 1, Count: 0}},
		Rivals:        DefaultRivals(),
	}
}

// Clone returns a deep copy; transitions run against a clone and commit on success.
func (p *PlayerState) Clone() *PlayerState {
	c := *p
	c.Perks = cloneSlice(p.Perks)
	c.Rivals = cloneSlice(p.Rivals)
	c.SubHistory = cloneSlice(p.SubHistory)
	if p.Inventory != nil {
		c.Inventory = make(map[Upgrade]bool, len(p.Inventory))
		for k, v := range p.Inventory {
			c.Inventory[k] = v
		}
	}
	if p.Contract != nil {
		ct := *p.Contract
		c.Contract = &ct
	}
	c.Videos = cloneSlice(p.Videos)
	for i := range c.Videos {
		c.Videos[i].Comments = cloneSlice(c.Videos[i].Comments)
	}
	return &c
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}

// Normalize clamps every bounded field. Called after each transition.
func (p *PlayerState) Normalize(b Balance) {
	p.Energy = clampInt(p.Energy, 0, b.MaxEnergy)
	p.Reputation = clampInt(p.Reputation, 0, b.MaxReputation)
	p.Hype = clampInt(p.Hype, 0, b.MaxHype)
	if p.Money < 0 {
		p.Money = 0
	}
	if p.Subscribers < 0 {
		p.Subscribers = 0
	}
	if p.EditingSkill > b.EditSkillMax {
		p.EditingSkill = b.EditSkillMax
	}
}

// Owns reports whether the studio upgrade u was bought.
func (p *PlayerState) Owns(u Upgrade) bool { return p.Inventory[u] }

// Video returns the published video with id.
func (p *PlayerState) Video(id string) (*Video, bool) {
	for i := range p.Videos {
		if p.Videos[i].ID == id {
			return &p.Videos[i], true
		}
	}
	return nil, false
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
