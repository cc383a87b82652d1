package engine

import "math"

// DefaultPerks returns the locked perk tree.
func DefaultPerks() []Perk {
	return []Perk{
		{ID: "energy_saver_1", Name: "Iron Lungs", Description: "-5 Energy cost for Recording", Cost: 1, Effect: EffectEnergyRecord, Value: 5},
		{ID: "fast_editor_1", Name: "Shortcut Master", Description: "-5 Energy cost for Editing", Cost: 1, Effect: EffectEnergyEdit, Value: 5},
		{ID: "negotiator", Name: "Sponsor Friendly", Description: "+20% Money from videos", Cost: 2, Effect: EffectMoneyMult, Value: 0.2},
		{ID: "viral_god", Name: "Algorithm God", Description: "+15% Total Views", Cost: 3, Effect: EffectViewMult, Value: 0.15},
		{ID: "quality_control", Name: "Perfectionist", Description: "+10 Base Quality on recordings", Cost: 2, Effect: EffectQualityBonus, Value: 10},
	}
}

// PerkValue sums the values of unlocked perks with the given effect.
func (p *PlayerState) PerkValue(effect PerkEffect) float64 {
	total := 0.0
	for _, pk := range p.Perks {
		if pk.Unlocked && pk.Effect == effect {
			total += pk.Value
		}
	}
	return total
}

// LevelUp is reported when a tick crosses the experience threshold.
type LevelUp struct {
	Level       int
	SkillPoints int
}

// applyXP adds gained experience and resolves at most one level-up. Overflow
// past the threshold is discarded.
func applyXP(p *PlayerState, gained float64, b Balance) *LevelUp {
	p.XP += gained
	if p.XP < p.XPToNextLevel {
		return nil
	}
	p.Level++
	p.XP = 0
	p.XPToNextLevel *= b.LevelXPGrowth
	p.SkillPoints += b.SkillPointsPer
	return &LevelUp{Level: p.Level, SkillPoints: p.SkillPoints}
}

// UnlockPerk spends skill points on the perk with id.
func UnlockPerk(p *PlayerState, id string) (Perk, error) {
	for i := range p.Perks {
		pk := &p.Perks[i]
		if pk.ID != id {
			continue
		}
		if pk.Unlocked {
			return Perk{}, ErrPerkUnlocked
		}
		if p.SkillPoints < pk.Cost {
			return Perk{}, ErrInsufficientSkillPoints
		}
		p.SkillPoints -= pk.Cost
		pk.Unlocked = true
		return *pk, nil
	}
	return Perk{}, ErrPerkUnknown
}

// NextAffordablePerk returns the first locked perk the player can pay for.
func (p *PlayerState) NextAffordablePerk() (Perk, bool) {
	if p.SkillPoints <= 0 {
		return Perk{}, false
	}
	for _, pk := range p.Perks {
		if !pk.Unlocked && pk.Cost <= p.SkillPoints {
			return pk, true
		}
	}
	return Perk{}, false
}

// XPProgress is the fraction of the current level completed, for display.
func (p *PlayerState) XPProgress() float64 {
	if p.XPToNextLevel <= 0 {
		return 0
	}
	return math.Min(1, p.XP/p.XPToNextLevel)
}
