package session

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaanHessen/streamer-sim/internal/engine"
	"github.com/DaanHessen/streamer-sim/internal/text"
)

var epoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type manualTimer struct {
	at   time.Duration
	fn   func()
	done bool
}

func (t *manualTimer) Stop() bool {
	was := !t.done
	t.done = true
	return was
}

// manualTimers fires callbacks only when the test advances time.
type manualTimers struct {
	now time.Duration
	ts  []*manualTimer
}

func (m *manualTimers) AfterFunc(d time.Duration, fn func()) Timer {
	t := &manualTimer{at: m.now + d, fn: fn}
	m.ts = append(m.ts, t)
	return t
}

func (m *manualTimers) Advance(d time.Duration) {
	target := m.now + d
	for {
		var next *manualTimer
		for _, t := range m.ts {
			if !t.done && t.at <= target && (next == nil || t.at < next.at) {
				next = t
			}
		}
		if next == nil {
			break
		}
		m.now = next.at
		next.done = true
		next.fn()
	}
	m.now = target
}

type journalCall struct {
	op  string
	day int
}

type memJournal struct {
	mu    sync.Mutex
	calls []journalCall
}

func (j *memJournal) add(op string, day int) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.calls = append(j.calls, journalCall{op, day})
	return nil
}

func (j *memJournal) RunStarted(context.Context, string, string) error { return j.add("run", 1) }

func (j *memJournal) VideoPublished(_ context.Context, day int, _ engine.Video) error {
	return j.add("video", day)
}

func (j *memJournal) DayAdvanced(_ context.Context, snap engine.SubSnapshot, _ engine.Money, _ int) error {
	return j.add("day", snap.Day)
}

func (j *memJournal) EventResolved(_ context.Context, day int, _ engine.GameEvent, _ engine.ChoiceID, _ engine.EventOutcome) error {
	return j.add("event", day)
}

func (j *memJournal) ops() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	var out []string
	for _, c := range j.calls {
		out = append(out, c.op)
	}
	return out
}

type harness struct {
	s       *Session
	timers  *manualTimers
	journal *memJournal
	// deferred holds spawned jobs when the harness is not synchronous.
	deferred []func()
}

func (h *harness) runDeferred() {
	jobs := h.deferred
	h.deferred = nil
	for _, j := range jobs {
		j()
	}
}

type option func(*Deps, *harness)

func withRand(r engine.Rand) option { return func(d *Deps, _ *harness) { d.Rand = r } }

// deferSpawn parks side effects until runDeferred is called.
func deferSpawn() option {
	return func(d *Deps, h *harness) {
		d.Spawn = func(fn func()) { h.deferred = append(h.deferred, fn) }
	}
}

func newHarness(t *testing.T, opts ...option) *harness {
	t.Helper()
	h := &harness{timers: &manualTimers{}, journal: &memJournal{}}
	d := Deps{
		Timers:  h.timers,
		Journal: h.journal,
		Clock:   func() time.Time { return epoch },
		Spawn:   func(fn func()) { fn() },
		Logger:  log.New(testWriter{t}),
		Rand:    &engine.ScriptedRand{},
	}
	for _, o := range opts {
		o(&d, h)
	}
	s, err := New(d)
	require.NoError(t, err)
	h.s = s
	return h
}

func (h *harness) start(t *testing.T) {
	t.Helper()
	require.NoError(t, h.s.Start("Ada", "AdaPlays"))
	h.s.Notices()
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

func hasNotice(ns []Notice, substr string) bool {
	for _, n := range ns {
		if strings.Contains(n.Text, substr) {
			return true
		}
	}
	return false
}

func TestStartValidatesNames(t *testing.T) {
	h := newHarness(t)

	err := h.s.Start("  ", "AdaPlays")
	require.ErrorIs(t, err, ErrInvalidSetup)
	assert.Equal(t, engine.PhaseSetup, h.s.Phase())

	require.NoError(t, h.s.Start("Ada", "AdaPlays"))
	assert.Equal(t, engine.PhasePlaying, h.s.Phase())
	assert.Equal(t, engine.PhasePlaying, <-h.s.PhaseChanges())
	assert.True(t, hasNotice(h.s.Notices(), "AdaPlays"))
	assert.Equal(t, []string{"run"}, h.journal.ops())

	assert.ErrorIs(t, h.s.Start("Bob", "BobPlays"), ErrAlreadyStarted)
}

func TestActionsRejectedBeforeStart(t *testing.T) {
	h := newHarness(t)
	assert.ErrorIs(t, h.s.Work(), ErrNotPlaying)
	assert.ErrorIs(t, h.s.Sleep(), ErrNotPlaying)
	assert.ErrorIs(t, h.s.StartRecording(engine.GenreGaming), ErrNotPlaying)
	assert.ErrorIs(t, h.s.BuyUpgrade(engine.UpgradeLighting), ErrNotPlaying)
	assert.Zero(t, h.s.Step().Views)
	assert.Zero(t, h.s.Ticks())
}

func TestInteractiveRecording(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	require.NoError(t, h.s.StartRecording(engine.GenreGaming))
	snap := h.s.Snapshot()
	assert.True(t, snap.SkillCheck)
	assert.Equal(t, engine.ActivityRecording, snap.Activity)
	assert.Equal(t, 100, snap.State.Energy, "energy is spent on completion")
	assert.ErrorIs(t, h.s.Work(), ErrBusy)

	require.NoError(t, h.s.CompleteRecording(100))
	snap = h.s.Snapshot()
	require.NotNil(t, snap.Footage)
	assert.Equal(t, 65, snap.Footage.Potential)
	assert.Equal(t, 70, snap.State.Energy)
	assert.Equal(t, engine.ActivityIdle, snap.Activity)
	assert.True(t, hasNotice(h.s.Notices(), "Quality: 65%"))

	assert.ErrorIs(t, h.s.CompleteRecording(50), ErrNoSkillCheck)
}

func TestRecordingRejectedWhileFootagePending(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	require.NoError(t, h.s.StartRecording(engine.GenreGaming))
	require.NoError(t, h.s.CompleteRecording(80))
	before := h.s.Snapshot()

	err := h.s.StartRecording(engine.GenreTech)
	require.ErrorIs(t, err, engine.ErrFootagePending)

	after := h.s.Snapshot()
	assert.Equal(t, before.State, after.State)
	assert.Equal(t, before.Footage, after.Footage)
	assert.Equal(t, engine.ActivityIdle, after.Activity)
	ns := h.s.Notices()
	require.NotEmpty(t, ns)
	assert.Equal(t, engine.NoticeWarning, ns[len(ns)-1].Kind)
}

func TestCancelRecordingCostsNothing(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	require.NoError(t, h.s.StartRecording(engine.GenreGaming))
	require.NoError(t, h.s.CancelRecording())

	snap := h.s.Snapshot()
	assert.Equal(t, 100, snap.State.Energy)
	assert.False(t, snap.SkillCheck)
	assert.Nil(t, snap.Footage)
	assert.ErrorIs(t, h.s.CancelRecording(), ErrNoSkillCheck)
}

func TestSkillCheckTimesOut(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	require.NoError(t, h.s.StartRecording(engine.GenreGaming))

	h.timers.Advance(29 * time.Second)
	assert.Zero(t, h.s.WatchdogResets())

	h.timers.Advance(time.Second)
	assert.Equal(t, 1, h.s.WatchdogResets())
	snap := h.s.Snapshot()
	assert.False(t, snap.SkillCheck)
	assert.Equal(t, engine.ActivityIdle, snap.Activity)
	assert.ErrorIs(t, h.s.CompleteRecording(90), ErrNoSkillCheck)
}

func TestEditAndUploadPublishes(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	require.NoError(t, h.s.StartRecording(engine.GenreGaming))
	require.NoError(t, h.s.CompleteRecording(100))
	h.s.Notices()

	require.NoError(t, h.s.EditAndUpload("Clean"))

	snap := h.s.Snapshot()
	require.Len(t, snap.State.Videos, 1)
	v := snap.State.Videos[0]
	assert.NotEmpty(t, v.ID)
	assert.NotEmpty(t, v.Title)
	assert.Len(t, v.Comments, 3)
	assert.Equal(t, 68, v.Quality)
	assert.Equal(t, epoch, v.CreatedAt)
	assert.Nil(t, snap.Footage)
	assert.Equal(t, 45, snap.State.Energy)
	assert.Equal(t, engine.ActivityIdle, snap.Activity)
	assert.True(t, hasNotice(h.s.Notices(), "Published:"))
	assert.Contains(t, h.journal.ops(), "video")

	// The watchdog was disarmed by the completion.
	h.timers.Advance(time.Minute)
	assert.Zero(t, h.s.WatchdogResets())
}

func TestEditWithoutFootage(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	assert.ErrorIs(t, h.s.EditAndUpload("Clean"), engine.ErrNoFootage)
}

func TestWatchdogResetsStalledEdit(t *testing.T) {
	h := newHarness(t, deferSpawn())
	h.start(t)
	h.runDeferred()
	require.NoError(t, h.s.StartRecording(engine.GenreGaming))
	require.NoError(t, h.s.CompleteRecording(100))

	require.NoError(t, h.s.EditAndUpload("Clean"))
	require.Len(t, h.deferred, 1, "gateway calls run off the lock")
	assert.Equal(t, engine.ActivityEditing, h.s.Snapshot().Activity)

	h.timers.Advance(5 * time.Second)
	assert.Equal(t, 1, h.s.WatchdogResets())
	snap := h.s.Snapshot()
	assert.Equal(t, engine.ActivityIdle, snap.Activity)
	assert.NotNil(t, snap.Footage, "footage survives a reset edit")
	assert.True(t, hasNotice(h.s.Notices(), "timed out"))

	// The late completion is dropped.
	h.runDeferred()
	snap = h.s.Snapshot()
	assert.Empty(t, snap.State.Videos)
	assert.Equal(t, 70, snap.State.Energy)
	assert.Equal(t, engine.ActivityIdle, snap.Activity)

	// A fresh edit still works after the reset.
	require.NoError(t, h.s.EditAndUpload("Clean"))
	h.runDeferred()
	assert.Len(t, h.s.Snapshot().State.Videos, 1)
}

func TestWork(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	require.NoError(t, h.s.Work())
	assert.ErrorIs(t, h.s.Work(), ErrBusy)
	assert.Equal(t, "Freelancing...", h.s.Snapshot().Status)

	h.timers.Advance(799 * time.Millisecond)
	assert.Equal(t, engine.Dollars(100), h.s.Snapshot().State.Money)

	h.timers.Advance(time.Millisecond)
	snap := h.s.Snapshot()
	assert.Equal(t, engine.Dollars(145), snap.State.Money)
	assert.Equal(t, 60, snap.State.Energy)
	assert.Equal(t, engine.ActivityIdle, snap.Activity)
	assert.Empty(t, snap.Status)
	assert.True(t, hasNotice(h.s.Notices(), "+$45"))
	assert.Zero(t, h.s.WatchdogResets())
}

func TestWorkWithoutEnergy(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	h.s.state.Energy = 39
	before := h.s.Snapshot().State

	require.ErrorIs(t, h.s.Work(), engine.ErrInsufficientEnergy)
	assert.Equal(t, before, h.s.Snapshot().State)
	assert.Equal(t, engine.ActivityIdle, h.s.Snapshot().Activity)
}

func TestAutoplayShortensDelays(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	h.s.SetAutoplay(true)
	h.s.Notices()

	require.NoError(t, h.s.Work())
	h.timers.Advance(200 * time.Millisecond)
	assert.Equal(t, engine.Dollars(145), h.s.Snapshot().State.Money)
	assert.False(t, hasNotice(h.s.Notices(), "Freelance"), "autoplay work is silent")
}

func TestSleepAdvancesDay(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	h.s.state.Energy = 10

	require.NoError(t, h.s.Sleep())
	assert.Equal(t, engine.ActivitySleeping, h.s.Snapshot().Activity)
	h.timers.Advance(1500 * time.Millisecond)

	snap := h.s.Snapshot()
	assert.Equal(t, 2, snap.State.Day)
	assert.Equal(t, 100, snap.State.Energy)
	assert.Equal(t, engine.PhasePlaying, snap.Phase)
	assert.Equal(t, engine.ActivityIdle, snap.Activity)
	assert.Nil(t, snap.Offer)
	assert.Equal(t, []string{"run", "day"}, h.journal.ops())
}

func TestSleepIntoEvent(t *testing.T) {
	h := newHarness(t, withRand(&engine.ScriptedRand{Floats: []float64{0.1}}))
	h.start(t)
	<-h.s.PhaseChanges()

	require.NoError(t, h.s.Sleep())
	h.timers.Advance(1500 * time.Millisecond)

	snap := h.s.Snapshot()
	require.Equal(t, engine.PhaseEvent, snap.Phase)
	require.NotNil(t, snap.Event)
	assert.Len(t, snap.Event.Choices, 2)
	assert.Equal(t, 1, snap.State.Day, "the day waits on the choice")
	assert.Equal(t, engine.PhaseEvent, <-h.s.PhaseChanges())

	assert.ErrorIs(t, h.s.Work(), ErrNotPlaying)
	assert.ErrorIs(t, h.s.ChooseEvent("C"), engine.ErrInvalidChoice)

	require.NoError(t, h.s.ChooseEvent(engine.ChoiceA))
	snap = h.s.Snapshot()
	assert.Equal(t, engine.PhasePlaying, snap.Phase)
	assert.Nil(t, snap.Event)
	assert.Equal(t, 2, snap.State.Day)
	assert.Equal(t, []string{"run", "day", "event"}, h.journal.ops())
	assert.ErrorIs(t, h.s.ChooseEvent(engine.ChoiceA), engine.ErrNoEvent)
}

func TestStaleEventDropped(t *testing.T) {
	h := newHarness(t, deferSpawn(), withRand(&engine.ScriptedRand{Floats: []float64{0.1}}))
	h.start(t)
	h.runDeferred()

	require.NoError(t, h.s.Sleep())
	h.timers.Advance(1500 * time.Millisecond)
	require.Len(t, h.deferred, 1)

	h.timers.Advance(5 * time.Second)
	assert.Equal(t, 1, h.s.WatchdogResets())

	h.runDeferred()
	snap := h.s.Snapshot()
	assert.Equal(t, engine.PhasePlaying, snap.Phase)
	assert.Nil(t, snap.Event)
	assert.Equal(t, 1, snap.State.Day)
}

// offerRand yields: no event, no trend change, a contract offer.
func offerRand() *engine.ScriptedRand {
	return &engine.ScriptedRand{Floats: []float64{0.99, 0.99, 0.1}}
}

func TestOfferAcceptAndDecline(t *testing.T) {
	h := newHarness(t, withRand(offerRand()))
	h.start(t)

	require.NoError(t, h.s.Sleep())
	h.timers.Advance(1500 * time.Millisecond)
	snap := h.s.Snapshot()
	require.NotNil(t, snap.Offer)
	assert.Nil(t, snap.State.Contract, "offers wait for the player")
	assert.Equal(t, 5, snap.Offer.DeadlineDay)
	assert.True(t, hasNotice(h.s.Notices(), "Sponsorship Offer"))

	require.NoError(t, h.s.AcceptOffer())
	snap = h.s.Snapshot()
	require.NotNil(t, snap.State.Contract)
	assert.Nil(t, snap.Offer)
	assert.ErrorIs(t, h.s.AcceptOffer(), engine.ErrNoOffer)
	assert.ErrorIs(t, h.s.DeclineOffer(), engine.ErrNoOffer)
}

func TestAutoplayAcceptsOffers(t *testing.T) {
	h := newHarness(t, withRand(offerRand()))
	h.start(t)
	h.s.SetAutoplay(true)

	require.NoError(t, h.s.Sleep())
	h.timers.Advance(200 * time.Millisecond)
	snap := h.s.Snapshot()
	assert.Nil(t, snap.Offer)
	require.NotNil(t, snap.State.Contract)
	assert.Equal(t, engine.GenreGaming, snap.State.Contract.RequiredGenre)
}

func TestInstantPurchases(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	require.NoError(t, h.s.BuyUpgrade(engine.UpgradeLighting))
	snap := h.s.Snapshot()
	assert.True(t, snap.State.Owns(engine.UpgradeLighting))
	assert.Equal(t, engine.Dollars(0), snap.State.Money)

	assert.ErrorIs(t, h.s.BuyEquipment(engine.EquipmentWebcam), engine.ErrInsufficientFunds)
	assert.ErrorIs(t, h.s.UnlockPerk("viral_god"), engine.ErrInsufficientSkillPoints)
	assert.ErrorIs(t, h.s.HeartComment("missing", 0), engine.ErrUnknownVideo)
}

func TestStepTicksOnlyWhilePlaying(t *testing.T) {
	// Five rival growth draws for the tick, then the event roll.
	h := newHarness(t, withRand(&engine.ScriptedRand{Floats: []float64{0, 0, 0, 0, 0, 0.1}}))
	h.start(t)

	h.s.Step()
	assert.Equal(t, int64(1), h.s.Ticks())

	require.NoError(t, h.s.Sleep())
	h.timers.Advance(1500 * time.Millisecond)
	require.Equal(t, engine.PhaseEvent, h.s.Phase())
	h.s.Step()
	assert.Equal(t, int64(1), h.s.Ticks(), "the clock pauses during events")
}

func TestAutoplayStepRecords(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	in, err := h.s.AutoplayStep()
	require.NoError(t, err)
	assert.Equal(t, engine.IntentNone, in.Kind, "agent idles until enabled")

	h.s.SetAutoplay(true)
	in, err = h.s.AutoplayStep()
	require.NoError(t, err)
	require.Equal(t, engine.IntentRecord, in.Kind)
	assert.Equal(t, engine.GenreGaming, in.Genre)

	in, err = h.s.AutoplayStep()
	require.NoError(t, err)
	assert.Equal(t, engine.IntentNone, in.Kind, "busy")

	h.timers.Advance(200 * time.Millisecond)
	snap := h.s.Snapshot()
	require.NotNil(t, snap.Footage)
	assert.Equal(t, 50, snap.Footage.Potential)

	in, err = h.s.AutoplayStep()
	require.NoError(t, err)
	assert.Equal(t, engine.IntentEdit, in.Kind)
	assert.Len(t, h.s.Snapshot().State.Videos, 1)
}

func TestLogIsBounded(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	for i := 0; i < 60; i++ {
		_ = h.s.EditAndUpload("Clean")
	}
	assert.Len(t, h.s.Log(), 50)
}

func TestEventGatewayGetsItsOwnWatchdogPeriod(t *testing.T) {
	h := newHarness(t, deferSpawn(), withRand(&engine.ScriptedRand{Floats: []float64{0.1}}))
	h.start(t)
	h.runDeferred()
	tm := DefaultTiming()

	require.NoError(t, h.s.Sleep())
	h.timers.Advance(tm.SleepDelay)
	require.Len(t, h.deferred, 1)

	// The gateway runs all the way to its timeout before answering.
	h.timers.Advance(tm.GatewayTimeout)
	assert.Equal(t, 0, h.s.WatchdogResets())
	h.runDeferred()

	snap := h.s.Snapshot()
	assert.Equal(t, engine.PhaseEvent, snap.Phase)
	require.NotNil(t, snap.Event)
	assert.Equal(t, engine.ActivityIdle, snap.Activity)

	h.timers.Advance(tm.Watchdog)
	assert.Equal(t, 0, h.s.WatchdogResets())
}

// stallGateway blocks every call until its context expires.
type stallGateway struct{}

func (stallGateway) VideoDetails(ctx context.Context, _ engine.Genre, _, _ string) (text.Details, error) {
	<-ctx.Done()
	return text.Details{}, ctx.Err()
}

func (stallGateway) VideoComments(ctx context.Context, _ string, _ int, _ engine.Genre) ([]engine.Comment, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (stallGateway) GameEvent(ctx context.Context, _ int) (engine.GameEvent, error) {
	<-ctx.Done()
	return engine.GameEvent{}, ctx.Err()
}

func (stallGateway) EventOutcome(ctx context.Context, _ engine.GameEvent, _ engine.ChoiceID) (engine.EventOutcome, error) {
	<-ctx.Done()
	return engine.EventOutcome{}, ctx.Err()
}

func TestStalledGatewayFallsBackBeforeWatchdog(t *testing.T) {
	tm := DefaultTiming()
	tm.WorkDelay = 50 * time.Millisecond
	tm.SleepDelay = 250 * time.Millisecond
	tm.TurboDelay = 10 * time.Millisecond
	tm.AutoRecordDelay = 50 * time.Millisecond
	tm.GatewayTimeout = 300 * time.Millisecond
	tm.Watchdog = 400 * time.Millisecond
	s, err := New(Deps{
		Timing:  tm,
		Gateway: stallGateway{},
		Logger:  log.New(io.Discard),
		Rand:    &engine.ScriptedRand{Floats: []float64{0.1}},
	})
	require.NoError(t, err)
	require.NoError(t, s.Start("Ada", "AdaPlays"))

	require.NoError(t, s.Sleep())
	require.Eventually(t, func() bool { return s.Phase() == engine.PhaseEvent }, 3*time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, s.WatchdogResets())
	snap := s.Snapshot()
	require.NotNil(t, snap.Event)
	assert.NoError(t, snap.Event.Validate())

	require.NoError(t, s.ChooseEvent(engine.ChoiceA))
	require.Eventually(t, func() bool { return s.Phase() == engine.PhasePlaying }, 3*time.Second, 10*time.Millisecond)
	assert.Equal(t, 2, s.Snapshot().State.Day)
	assert.Equal(t, 0, s.WatchdogResets())
}

func TestInstantActionsWaitForInFlightEdit(t *testing.T) {
	h := newHarness(t, deferSpawn())
	h.start(t)
	h.runDeferred()
	h.s.state.Money = engine.Dollars(1000)

	require.NoError(t, h.s.StartRecording(engine.GenreGaming))
	assert.ErrorIs(t, h.s.BuyUpgrade(engine.UpgradeEditor), ErrBusy, "skill check pending")
	require.NoError(t, h.s.CompleteRecording(50))

	want := engine.EditQuality(h.s.state, *h.s.footage, h.s.b)
	require.NoError(t, h.s.EditAndUpload("Clean"))
	require.Len(t, h.deferred, 1)

	assert.ErrorIs(t, h.s.BuyUpgrade(engine.UpgradeEditor), ErrBusy)
	assert.ErrorIs(t, h.s.BuyEquipment(engine.EquipmentWebcam), ErrBusy)
	assert.ErrorIs(t, h.s.UnlockPerk("viral_god"), ErrBusy)
	assert.False(t, h.s.Snapshot().State.Owns(engine.UpgradeEditor))
	assert.Equal(t, engine.Dollars(1000), h.s.Snapshot().State.Money)

	h.runDeferred()
	snap := h.s.Snapshot()
	require.Len(t, snap.State.Videos, 1)
	assert.Equal(t, want, snap.State.Videos[0].Quality)

	require.NoError(t, h.s.BuyUpgrade(engine.UpgradeEditor))
	assert.True(t, h.s.Snapshot().State.Owns(engine.UpgradeEditor))
}

func TestAutoplayCancelsSkillCheck(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	require.NoError(t, h.s.StartRecording(engine.GenreGaming))
	require.True(t, h.s.Snapshot().SkillCheck)

	h.s.SetAutoplay(true)
	snap := h.s.Snapshot()
	assert.False(t, snap.SkillCheck)
	assert.Equal(t, engine.ActivityIdle, snap.Activity)
	assert.Nil(t, snap.Footage)
	assert.Equal(t, 100, snap.State.Energy)
	assert.True(t, hasNotice(h.s.Notices(), "Recording cancelled."))

	in, err := h.s.AutoplayStep()
	require.NoError(t, err)
	assert.NotEqual(t, engine.IntentNone, in.Kind)

	h.timers.Advance(30 * time.Second)
	assert.Equal(t, 0, h.s.WatchdogResets())
}
