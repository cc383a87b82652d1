package engine

import (
	"math"
	"time"
)

// EnergyCost applies reduction perks to a base cost, never going below the floor.
func EnergyCost(p *PlayerState, base int, reduction PerkEffect, b Balance) int {
	cost := base
	if reduction != "" {
		cost -= int(p.PerkValue(reduction))
	}
	if cost < b.MinEnergyCost {
		cost = b.MinEnergyCost
	}
	return cost
}

func RecordCost(p *PlayerState, b Balance) int {
	return EnergyCost(p, b.CostRecord, EffectEnergyRecord, b)
}

func EditCost(p *PlayerState, b Balance) int {
	return EnergyCost(p, b.CostEdit, EffectEnergyEdit, b)
}

func WorkCost(p *PlayerState, b Balance) int {
	return EnergyCost(p, b.CostWork, "", b)
}

func spend(p *PlayerState, cost int) error {
	if p.Energy < cost {
		return ErrInsufficientEnergy
	}
	p.Energy -= cost
	return nil
}

// CheckRecord reports whether a recording may start.
func CheckRecord(p *PlayerState, pending *Footage, genre Genre, b Balance) error {
	if !genre.Validate() {
		return ErrInvalidGenre
	}
	if pending != nil {
		return ErrFootagePending
	}
	if p.Energy < RecordCost(p, b) {
		return ErrInsufficientEnergy
	}
	return nil
}

func (p *PlayerState) trendBonus(g Genre, b Balance) int {
	if g == p.CurrentTrend {
		return b.TrendQualityBonus
	}
	return 0
}

// RecordFromScore resolves an interactive recording from a 0-100 skill check
// score. Energy is debited here.
func RecordFromScore(p *PlayerState, genre Genre, score int, b Balance) (Footage, error) {
	if err := spend(p, RecordCost(p, b)); err != nil {
		return Footage{}, err
	}
	score = clampInt(score, 0, 100)
	raw := float64(score)*b.SkillCheckScale[p.Equipment] +
		float64(p.trendBonus(genre, b)) +
		p.PerkValue(EffectQualityBonus)
	q := clampFloat(raw, float64(b.FootageMinQuality), 100)
	return Footage{Genre: genre, Potential: int(math.Floor(q))}, nil
}

// AutoRecord resolves a recording without a skill check. Higher equipment
// tiers raise the base the random roll is applied to.
func AutoRecord(p *PlayerState, genre Genre, r Rand, b Balance) (Footage, error) {
	if err := spend(p, RecordCost(p, b)); err != nil {
		return Footage{}, err
	}
	roll := r.Intn(b.AutoRollSpan) + b.AutoRollOffset
	q := clampInt(b.AutoBaseQuality[p.Equipment]+roll, 1, 100)
	q += p.trendBonus(genre, b) + int(p.PerkValue(EffectQualityBonus))
	return Footage{Genre: genre, Potential: q}, nil
}

// CheckEdit reports whether the pending footage may be edited.
func CheckEdit(p *PlayerState, pending *Footage, b Balance) error {
	if pending == nil {
		return ErrNoFootage
	}
	if p.Energy < EditCost(p, b) {
		return ErrInsufficientEnergy
	}
	return nil
}

// EditQuality is the final quality footage f would publish at.
func EditQuality(p *PlayerState, f Footage, b Balance) int {
	q := float64(f.Potential) + b.EditSkillFactor*p.EditingSkill
	for _, u := range AllUpgrades {
		if p.Owns(u) {
			q += float64(b.UpgradeQuality[u])
		}
	}
	return int(math.Floor(math.Min(100, q)))
}

// Draft is the generated copy attached to a new video.
type Draft struct {
	Title       string
	Description string
	VisualTag   string
	Comments    []Comment
}

// PublishResult describes a completed edit.
type PublishResult struct {
	Video    Video
	Contract *Contract
}

// Publish consumes footage f and appends the resulting video. A matching
// active contract is paid out and cleared.
func Publish(p *PlayerState, f Footage, d Draft, id string, now time.Time, b Balance) (PublishResult, error) {
	if err := spend(p, EditCost(p, b)); err != nil {
		return PublishResult{}, err
	}
	q := EditQuality(p, f, b)
	v := Video{
		ID:           id,
		Title:        d.Title,
		Description:  d.Description,
		VisualTag:    d.VisualTag,
		Genre:        f.Genre,
		Quality:      clampInt(q, 1, 100),
		Comments:     append([]Comment(nil), d.Comments...),
		DayPublished: p.Day,
		CreatedAt:    now,
	}
	p.Videos = append(p.Videos, v)

	var res PublishResult
	res.Video = v
	if c := p.Contract; c != nil && c.RequiredGenre == f.Genre && v.Quality >= c.MinQuality {
		done := *c
		done.Completed = true
		p.Money += c.Payout
		p.Contract = nil
		res.Contract = &done
	}

	p.EditingSkill = math.Min(b.EditSkillMax, p.EditingSkill+b.EditSkillGain)
	if v.Quality > b.HypeHighQuality {
		p.Hype += b.HypeGainHigh
	} else {
		p.Hype += b.HypeGainLow
	}
	p.Normalize(b)
	return res, nil
}

// Work trades energy for the fixed freelance payout.
func Work(p *PlayerState, b Balance) error {
	if err := spend(p, WorkCost(p, b)); err != nil {
		return err
	}
	p.Money += Dollars(b.WorkPayout)
	p.Normalize(b)
	return nil
}

// BuyEquipment upgrades to tier e, which must be the next tier up.
func BuyEquipment(p *PlayerState, e Equipment, b Balance) error {
	if !e.Validate() {
		return ErrUnknownItem
	}
	if e.Tier() <= p.Equipment.Tier() {
		return ErrAlreadyOwned
	}
	if next, _ := p.Equipment.Next(); next != e {
		return ErrTierLocked
	}
	cost := Dollars(b.EquipmentCosts[e])
	if p.Money < cost {
		return ErrInsufficientFunds
	}
	p.Money -= cost
	p.Equipment = e
	return nil
}

// BuyUpgrade purchases a one-time studio upgrade.
func BuyUpgrade(p *PlayerState, u Upgrade, b Balance) error {
	if !u.Validate() {
		return ErrUnknownItem
	}
	if p.Owns(u) {
		return ErrAlreadyOwned
	}
	cost := Dollars(b.UpgradeCosts[u])
	if p.Money < cost {
		return ErrInsufficientFunds
	}
	p.Money -= cost
	if p.Inventory == nil {
		p.Inventory = map[Upgrade]bool{}
	}
	p.Inventory[u] = true
	return nil
}

// HeartComment marks a comment hearted. The experience bonus is added
// without a level check; the next tick resolves any level-up.
func HeartComment(p *PlayerState, videoID string, idx int, b Balance) error {
	v, ok := p.Video(videoID)
	if !ok {
		return ErrUnknownVideo
	}
	if idx < 0 || idx >= len(v.Comments) {
		return ErrUnknownComment
	}
	if v.Comments[idx].Hearted {
		return ErrCommentHearted
	}
	v.Comments[idx].Hearted = true
	p.Reputation += b.HeartRepGain
	p.XP += b.HeartXPGain
	p.Normalize(b)
	return nil
}
