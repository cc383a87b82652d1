package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecidePriorities(t *testing.T) {
	b := DefaultBalance()
	ev := validEvent()

	cases := []struct {
		name  string
		setup func(p *PlayerState, v *AgentView)
		r     *ScriptedRand
		want  Intent
	}{
		{
			name:  "busy agent waits",
			setup: func(p *PlayerState, v *AgentView) { v.Busy = true; p.Energy = 0 },
			want:  Intent{Kind: IntentNone},
		},
		{
			name:  "skill check in progress",
			setup: func(p *PlayerState, v *AgentView) { v.SkillCheck = true },
			want:  Intent{Kind: IntentNone},
		},
		{
			name:  "setup phase",
			setup: func(p *PlayerState, v *AgentView) { v.Phase = PhaseSetup },
			want:  Intent{Kind: IntentNone},
		},
		{
			name:  "pending event resolves first",
			setup: func(p *PlayerState, v *AgentView) { v.Phase = PhaseEvent; v.Event = &ev; p.SkillPoints = 3 },
			r:     &ScriptedRand{Floats: []float64{0.7}},
			want:  Intent{Kind: IntentChoose, Choice: ChoiceB},
		},
		{
			name:  "coin flip low picks A",
			setup: func(p *PlayerState, v *AgentView) { v.Phase = PhaseEvent; v.Event = &ev },
			r:     &ScriptedRand{Floats: []float64{0.2}},
			want:  Intent{Kind: IntentChoose, Choice: ChoiceA},
		},
		{
			name:  "spend skill points",
			setup: func(p *PlayerState, v *AgentView) { p.SkillPoints = 1; p.Energy = 0 },
			want:  Intent{Kind: IntentUnlockPerk, PerkID: "energy_saver_1"},
		},
		{
			name:  "sleep when exhausted",
			setup: func(p *PlayerState, v *AgentView) { p.Energy = 24; v.Footage = &Footage{Genre: GenreVlog} },
			want:  Intent{Kind: IntentSleep},
		},
		{
			name:  "edit pending footage",
			setup: func(p *PlayerState, v *AgentView) { v.Footage = &Footage{Genre: GenreVlog}; p.Money = Dollars(1000) },
			r:     &ScriptedRand{Ints: []int{1}},
			want:  Intent{Kind: IntentEdit, Vibe: "Cinematic"},
		},
		{
			name:  "buy webcam with headroom",
			setup: func(p *PlayerState, v *AgentView) { p.Money = Dollars(301) },
			want:  Intent{Kind: IntentBuyEquipment, Equipment: EquipmentWebcam},
		},
		{
			name:  "no headroom records instead",
			setup: func(p *PlayerState, v *AgentView) { p.Money = Dollars(300) },
			want:  Intent{Kind: IntentRecord, Genre: GenreGaming},
		},
		{
			name:  "broke works",
			setup: func(p *PlayerState, v *AgentView) { p.Money = Dollars(40) },
			want:  Intent{Kind: IntentWork},
		},
		{
			name:  "broke and too tired to work sleeps",
			setup: func(p *PlayerState, v *AgentView) { p.Money = Dollars(40); p.Energy = 30 },
			want:  Intent{Kind: IntentSleep},
		},
		{
			name:  "too tired to record sleeps",
			setup: func(p *PlayerState, v *AgentView) { p.Energy = 27 },
			want:  Intent{Kind: IntentSleep},
		},
		{
			name: "contract genre wins over trend",
			setup: func(p *PlayerState, v *AgentView) {
				p.Contract = &Contract{RequiredGenre: GenreCooking}
			},
			want: Intent{Kind: IntentRecord, Genre: GenreCooking},
		},
		{
			name:  "record the trend",
			setup: func(p *PlayerState, v *AgentView) { p.CurrentTrend = GenreTech; p.Equipment = EquipmentDSLR; p.Money = Dollars(5000) },
			want:  Intent{Kind: IntentRecord, Genre: GenreTech},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := newTestPlayer()
			v := AgentView{State: p, Phase: PhasePlaying}
			tc.setup(p, &v)
			r := tc.r
			if r == nil {
				r = &ScriptedRand{}
			}
			assert.Equal(t, tc.want, Decide(v, r, b))
		})
	}
}
