package engine

// IntentKind names the transition the autoplay agent wants to make.
type IntentKind string

const (
	IntentNone         IntentKind = "none"
	IntentChoose       IntentKind = "choose_event"
	IntentUnlockPerk   IntentKind = "unlock_perk"
	IntentSleep        IntentKind = "sleep"
	IntentEdit         IntentKind = "edit"
	IntentBuyEquipment IntentKind = "buy_equipment"
	IntentWork         IntentKind = "work"
	IntentRecord       IntentKind = "record"
)

// Vibes are the cosmetic editing styles the agent picks from.
var Vibes = []string{"Fast Paced", "Cinematic", "Funny", "Clean"}

// Intent is one agent decision. Only the field matching Kind is set.
type Intent struct {
	Kind      IntentKind
	Choice    ChoiceID
	PerkID    string
	Vibe      string
	Equipment Equipment
	Genre     Genre
}

// AgentView is what the agent can observe.
type AgentView struct {
	State      *PlayerState
	Phase      Phase
	Footage    *Footage
	Event      *GameEvent
	Busy       bool
	SkillCheck bool
}

// Decide picks at most one transition in strict priority order.
func Decide(v AgentView, r Rand, b Balance) Intent {
	if v.Busy || v.SkillCheck || v.State == nil {
		return Intent{Kind: IntentNone}
	}
	p := v.State

	if v.Phase == PhaseEvent && v.Event != nil {
		c := ChoiceA
		if r.Float64() > 0.5 {
			c = ChoiceB
		}
		return Intent{Kind: IntentChoose, Choice: c}
	}

	if pk, ok := p.NextAffordablePerk(); ok {
		return Intent{Kind: IntentUnlockPerk, PerkID: pk.ID}
	}

	if v.Phase != PhasePlaying {
		return Intent{Kind: IntentNone}
	}

	if p.Energy < b.AgentSleepBelow {
		return Intent{Kind: IntentSleep}
	}

	if v.Footage != nil {
		return Intent{Kind: IntentEdit, Vibe: pick(r, Vibes)}
	}

	if p.Equipment == EquipmentSmartphone {
		next, _ := p.Equipment.Next()
		if p.Money > Dollars(b.EquipmentCosts[next]*b.AgentUpgradeHeadroom) {
			return Intent{Kind: IntentBuyEquipment, Equipment: next}
		}
	}

	// Sleep rather than pick an action the remaining energy cannot pay for.
	if p.Money < Dollars(b.AgentWorkBelow) {
		if p.Energy < WorkCost(p, b) {
			return Intent{Kind: IntentSleep}
		}
		return Intent{Kind: IntentWork}
	}

	if p.Energy < RecordCost(p, b) {
		return Intent{Kind: IntentSleep}
	}
	genre := p.CurrentTrend
	if p.Contract != nil {
		genre = p.Contract.RequiredGenre
	}
	return Intent{Kind: IntentRecord, Genre: genre}
}
