package engine

import (
	"fmt"
	"sort"
)

// DecayStep lowers a video's view rate once it is older than AfterSeconds.
type DecayStep struct {
	AfterSeconds float64 `yaml:"after_seconds"`
	Factor       float64 `yaml:"factor"`
}

// Balance holds the tuning table. Values are design parameters; money fields are dollars.
type Balance struct {
	InitialMoney   float64 `yaml:"initial_money"`
	MaxEnergy      int     `yaml:"max_energy"`
	InitialRep     int     `yaml:"initial_reputation"`
	MaxReputation  int     `yaml:"max_reputation"`
	MaxHype        int     `yaml:"max_hype"`
	MinEnergyCost  int     `yaml:"min_energy_cost"`
	CostRecord     int     `yaml:"energy_cost_record"`
	CostEdit       int     `yaml:"energy_cost_edit"`
	CostWork       int     `yaml:"energy_cost_work"`
	WorkPayout     float64 `yaml:"work_payout"`
	RevenuePerView float64 `yaml:"revenue_per_view"`

	BaseXPToLevel  float64 `yaml:"base_xp_to_level"`
	LevelXPGrowth  float64 `yaml:"level_xp_growth"`
	ViewsPerXP     int     `yaml:"views_per_xp"`
	SkillPointsPer int     `yaml:"skill_points_per_level"`

	BaseViewRate      float64               `yaml:"base_view_rate"`
	RepBaseline       float64               `yaml:"reputation_baseline"`
	TrendViewBonus    float64               `yaml:"trend_view_bonus"`
	HypeViewBonus     float64               `yaml:"hype_view_bonus"`
	NoiseMin          float64               `yaml:"noise_min"`
	NoiseSpan         float64               `yaml:"noise_span"`
	Decay             []DecayStep           `yaml:"decay"`
	GenreMultipliers  map[Genre]float64     `yaml:"genre_multipliers"`
	LongTailQuality   int                   `yaml:"long_tail_min_quality"`
	LongTailChance    float64               `yaml:"long_tail_chance"`
	SubHighQuality    int                   `yaml:"sub_high_quality"`
	SubChanceHigh     float64               `yaml:"sub_chance_high"`
	SubChanceBase     float64               `yaml:"sub_chance_base"`
	SubConversion     float64               `yaml:"sub_conversion"`
	LikesPerMille     int64                 `yaml:"likes_per_mille"`
	DislikesPerMille  int64                 `yaml:"dislikes_per_mille"`
	RivalGrowthScale  float64               `yaml:"rival_growth_scale"`
	RivalJitter       float64               `yaml:"rival_jitter"`
	EquipmentCosts    map[Equipment]float64 `yaml:"equipment_costs"`
	UpgradeCosts      map[Upgrade]float64   `yaml:"upgrade_costs"`
	UpgradeQuality    map[Upgrade]int       `yaml:"upgrade_quality"`
	SkillCheckScale   map[Equipment]float64 `yaml:"skill_check_scale"`
	AutoBaseQuality   map[Equipment]int     `yaml:"auto_base_quality"`
	AutoRollSpan      int                   `yaml:"auto_roll_span"`
	AutoRollOffset    int                   `yaml:"auto_roll_offset"`
	FootageMinQuality int                   `yaml:"footage_min_quality"`
	TrendQualityBonus int                   `yaml:"trend_quality_bonus"`
	EditSkillFactor   float64               `yaml:"edit_skill_factor"`
	EditSkillGain     float64               `yaml:"edit_skill_gain"`
	EditSkillMax      float64               `yaml:"edit_skill_max"`
	HypeHighQuality   int                   `yaml:"hype_high_quality"`
	HypeGainHigh      int                   `yaml:"hype_gain_high"`
	HypeGainLow       int                   `yaml:"hype_gain_low"`
	HypeDecayPerDay   int                   `yaml:"hype_decay_per_day"`
	HeartRepGain      int                   `yaml:"heart_reputation_gain"`
	HeartXPGain       float64               `yaml:"heart_xp_gain"`

	EventChance          float64 `yaml:"event_chance"`
	TrendRotateChance    float64 `yaml:"trend_rotate_chance"`
	ContractChance       float64 `yaml:"contract_chance"`
	ContractQualityBase  int     `yaml:"contract_quality_base"`
	ContractQualitySpan  int     `yaml:"contract_quality_span"`
	ContractPayoutBase   float64 `yaml:"contract_payout_base"`
	ContractPayoutPerQ   float64 `yaml:"contract_payout_per_quality"`
	ContractDaysBase     int     `yaml:"contract_days_base"`
	ContractDaysSpan     int     `yaml:"contract_days_span"`
	ContractExpiryRepHit int     `yaml:"contract_expiry_penalty"`

	AgentSleepBelow      int     `yaml:"agent_sleep_below"`
	AgentWorkBelow       float64 `yaml:"agent_work_below"`
	AgentUpgradeHeadroom float64 `yaml:"agent_upgrade_headroom"`
}

// DefaultBalance returns the stock tuning table.
func DefaultBalance() Balance {
	return Balance{
		InitialMoney:   100,
		MaxEnergy:      100,
		InitialRep:     50,
		MaxReputation:  100,
		MaxHype:        100,
		MinEnergyCost:  5,
		CostRecord:     30,
		CostEdit:       25,
		CostWork:       40,
		WorkPayout:     45,
		RevenuePerView: 0.002,

		BaseXPToLevel:  500,
		LevelXPGrowth:  1.5,
		ViewsPerXP:     10,
		SkillPointsPer: 1,

		BaseViewRate:   50,
		RepBaseline:    50,
		TrendViewBonus: 2.0,
		HypeViewBonus:  2.0,
		NoiseMin:       0.5,
		NoiseSpan:      1.0,
		Decay: []DecayStep{
			{AfterSeconds: 60, Factor: 0.5},
			{AfterSeconds: 300, Factor: 0.1},
			{AfterSeconds: 600, Factor: 0.01},
		},
		GenreMultipliers: map[Genre]float64{
			GenreGaming:      1.0,
			GenreVlog:        0.8,
			GenreTech:        1.2,
			GenreCooking:     1.1,
			GenrePrank:       1.5,
			GenreEducational: 0.9,
		},
		LongTailQuality:  80,
		LongTailChance:   0.2,
		SubHighQuality:   70,
		SubChanceHigh:    0.05,
		SubChanceBase:    0.01,
		SubConversion:    0.01,
		LikesPerMille:    40,
		DislikesPerMille: 4,
		RivalGrowthScale: 5,
		RivalJitter:      0.5,
		EquipmentCosts: map[Equipment]float64{
			EquipmentWebcam: 200,
			EquipmentDSLR:   800,
			EquipmentCinema: 2500,
		},
		UpgradeCosts: map[Upgrade]float64{
			UpgradeMicrophone: 150,
			UpgradeLighting:   100,
			UpgradeEditor:     300,
		},
		UpgradeQuality: map[Upgrade]int{
			UpgradeMicrophone: 5,
			UpgradeLighting:   5,
			UpgradeEditor:     10,
		},
		SkillCheckScale: map[Equipment]float64{
			EquipmentSmartphone: 0.5,
			EquipmentWebcam:     0.7,
			EquipmentDSLR:       0.9,
			EquipmentCinema:     1.0,
		},
		AutoBaseQuality: map[Equipment]int{
			EquipmentSmartphone: 40,
			EquipmentWebcam:     60,
			EquipmentDSLR:       80,
			EquipmentCinema:     95,
		},
		AutoRollSpan:      20,
		AutoRollOffset:    -5,
		FootageMinQuality: 10,
		TrendQualityBonus: 15,
		EditSkillFactor:   3,
		EditSkillGain:     0.2,
		EditSkillMax:      10,
		HypeHighQuality:   70,
		HypeGainHigh:      20,
		HypeGainLow:       5,
		HypeDecayPerDay:   20,
		HeartRepGain:      2,
		HeartXPGain:       5,

		EventChance:          0.3,
		TrendRotateChance:    0.2,
		ContractChance:       0.3,
		ContractQualityBase:  30,
		ContractQualitySpan:  40,
		ContractPayoutBase:   150,
		ContractPayoutPerQ:   5,
		ContractDaysBase:     3,
		ContractDaysSpan:     4,
		ContractExpiryRepHit: 10,

		AgentSleepBelow:      25,
		AgentWorkBelow:       50,
		AgentUpgradeHeadroom: 1.5,
	}
}

// Validate reports the first inconsistency in the table.
func (b Balance) Validate() error {
	switch {
	case b.MaxEnergy <= 0:
		return fmt.Errorf("max_energy must be positive")
	case b.MinEnergyCost <= 0:
		return fmt.Errorf("min_energy_cost must be positive")
	case b.BaseXPToLevel <= 0:
		return fmt.Errorf("base_xp_to_level must be positive")
	case b.LevelXPGrowth < 1:
		return fmt.Errorf("level_xp_growth must be >= 1")
	case b.ViewsPerXP <= 0:
		return fmt.Errorf("views_per_xp must be positive")
	case b.RepBaseline <= 0:
		return fmt.Errorf("reputation_baseline must be positive")
	case b.NoiseSpan < 0 || b.NoiseMin < 0:
		return fmt.Errorf("noise bounds must be non-negative")
	case b.ContractQualitySpan <= 0 || b.ContractDaysSpan <= 0:
		return fmt.Errorf("contract spans must be positive")
	}
	for _, g := range AllGenres {
		if _, ok := b.GenreMultipliers[g]; !ok {
			return fmt.Errorf("genre multiplier missing for %q", g)
		}
	}
	for _, e := range AllEquipment {
		if _, ok := b.SkillCheckScale[e]; !ok {
			return fmt.Errorf("skill check scale missing for %q", e)
		}
		if _, ok := b.AutoBaseQuality[e]; !ok {
			return fmt.Errorf("auto base quality missing for %q", e)
		}
	}
	for _, e := range AllEquipment[1:] {
		if _, ok := b.EquipmentCosts[e]; !ok {
			return fmt.Errorf("equipment cost missing for %q", e)
		}
	}
	for _, u := range AllUpgrades {
		if _, ok := b.UpgradeCosts[u]; !ok {
			return fmt.Errorf("upgrade cost missing for %q", u)
		}
	}
	if !sort.SliceIsSorted(b.Decay, func(i, j int) bool { return b.Decay[i].AfterSeconds < b.Decay[j].AfterSeconds }) {
		return fmt.Errorf("decay steps must be ordered by after_seconds")
	}
	return nil
}

// decayFactor is the step function over a video's age.
func (b Balance) decayFactor(ageSeconds float64) float64 {
	f := 1.0
	for _, step := range b.Decay {
		if ageSeconds > step.AfterSeconds {
			f = step.Factor
		}
	}
	return f
}

func (b Balance) revenuePerView() Money { return Dollars(b.RevenuePerView) }
