package engine

// String backed enums; values match the labels shown in the UI and sent to the gateway.

type Genre string
type Equipment string
type Upgrade string
type PerkEffect string
type Sentiment string
type Phase string
type Activity string
type ChoiceID string
type NoticeKind string

const (
	GenreGaming      Genre = "Gaming"
	GenreVlog        Genre = "Vlog"
	GenreTech        Genre = "Tech Review"
	GenreCooking     Genre = "Cooking"
	GenrePrank       Genre = "Prank"
	GenreEducational Genre = "Educational"
)

var AllGenres = []Genre{GenreGaming, GenreVlog, GenreTech, GenreCooking, GenrePrank, GenreEducational}

// Equipment tiers, ordered from starter gear upwards.
const (
	EquipmentSmartphone Equipment = "Smartphone"
	EquipmentWebcam     Equipment = "HD Webcam"
	EquipmentDSLR       Equipment = "DSLR Camera"
	EquipmentCinema     Equipment = "Cinema Camera"
)

var AllEquipment = []Equipment{EquipmentSmartphone, EquipmentWebcam, EquipmentDSLR, EquipmentCinema}

const (
	UpgradeMicrophone Upgrade = "microphone"
	UpgradeLighting   Upgrade = "lighting"
	UpgradeEditor     Upgrade = "editor"
)

var AllUpgrades = []Upgrade{UpgradeMicrophone, UpgradeLighting, UpgradeEditor}

const (
	EffectEnergyRecord PerkEffect = "energy_record"
	EffectEnergyEdit   PerkEffect = "energy_edit"
	EffectMoneyMult    PerkEffect = "money_mult"
	EffectViewMult     PerkEffect = "view_mult"
	EffectQualityBonus PerkEffect = "quality_bonus"
)

var AllPerkEffects = []PerkEffect{EffectEnergyRecord, EffectEnergyEdit, EffectMoneyMult, EffectViewMult, EffectQualityBonus}

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

var AllSentiments = []Sentiment{SentimentPositive, SentimentNegative, SentimentNeutral}

const (
	PhaseSetup   Phase = "SETUP"
	PhasePlaying Phase = "PLAYING"
	PhaseEvent   Phase = "EVENT"
)

var AllPhases = []Phase{PhaseSetup, PhasePlaying, PhaseEvent}

const (
	ActivityIdle      Activity = "idle"
	ActivityRecording Activity = "recording"
	ActivityEditing   Activity = "editing"
	ActivityWorking   Activity = "working"
	ActivitySleeping  Activity = "sleeping"
	ActivityResolving Activity = "resolving_event"
)

var AllActivities = []Activity{ActivityIdle, ActivityRecording, ActivityEditing, ActivityWorking, ActivitySleeping, ActivityResolving}

const (
	ChoiceA ChoiceID = "A"
	ChoiceB ChoiceID = "B"
)

var AllChoices = []ChoiceID{ChoiceA, ChoiceB}

const (
	NoticeInfo    NoticeKind = "info"
	NoticeSuccess NoticeKind = "success"
	NoticeWarning NoticeKind = "warning"
	NoticeError   NoticeKind = "error"
)

// Generic helpers
func contains[T ~string](list []T, v T) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func (g Genre) Validate() bool      { return contains(AllGenres, g) }
func (e Equipment) Validate() bool  { return contains(AllEquipment, e) }
func (u Upgrade) Validate() bool    { return contains(AllUpgrades, u) }
func (p PerkEffect) Validate() bool { return contains(AllPerkEffects, p) }
func (s Sentiment) Validate() bool  { return contains(AllSentiments, s) }
func (p Phase) Validate() bool      { return contains(AllPhases, p) }
func (a Activity) Validate() bool   { return contains(AllActivities, a) }
func (c ChoiceID) Validate() bool   { return contains(AllChoices, c) }

// List helpers
func ListGenres() []Genre         { return append([]Genre{}, AllGenres...) }
func ListEquipment() []Equipment  { return append([]Equipment{}, AllEquipment...) }
func ListUpgrades() []Upgrade     { return append([]Upgrade{}, AllUpgrades...) }
func ListChoices() []ChoiceID     { return append([]ChoiceID{}, AllChoices...) }

// Tier returns the position of e in the ordered tier list, or -1.
func (e Equipment) Tier() int {
	for i, x := range AllEquipment {
		if x == e {
			return i
		}
	}
	return -1
}

// Next returns the tier after e.
func (e Equipment) Next() (Equipment, bool) {
	i := e.Tier()
	if i < 0 || i+1 >= len(AllEquipment) {
		return "", false
	}
	return AllEquipment[i+1], true
}

// Busy reports whether a is one of the non-idle activities.
func (a Activity) Busy() bool { return a != "" && a != ActivityIdle }
