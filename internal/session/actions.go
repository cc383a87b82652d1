package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/DaanHessen/streamer-sim/internal/engine"
)

// ready checks the game accepts a new timed action.
func (s *Session) ready() error {
	if s.phase != engine.PhasePlaying {
		return ErrNotPlaying
	}
	if s.activity.Busy() || s.skillCheck {
		return ErrBusy
	}
	return nil
}

// started checks the career exists and nothing is in flight. Instant
// transitions need nothing more.
func (s *Session) started() error {
	if s.phase == engine.PhaseSetup {
		return ErrNotPlaying
	}
	if s.activity.Busy() || s.skillCheck {
		return ErrBusy
	}
	return nil
}

// begin enters a timed activity and arms its watchdog. The returned
// generation identifies this activity to its completion callbacks.
func (s *Session) begin(a engine.Activity, status string, timeout time.Duration) uint64 {
	s.gen++
	s.activity = a
	s.status = status
	s.arm(s.gen, timeout)
	s.log.Debug("activity", "activity", a)
	return s.gen
}

// alive reports whether the activity started as gen is still the current one.
func (s *Session) alive(gen uint64, a engine.Activity) bool {
	return s.gen == gen && s.activity == a
}

func (s *Session) finish() {
	s.activity = engine.ActivityIdle
	s.status = ""
	stopTimer(&s.action)
	stopTimer(&s.watchdog)
}

func (s *Session) after(d time.Duration, gen uint64, fn func(uint64)) {
	stopTimer(&s.action)
	s.action = s.timers.AfterFunc(d, func() { fn(gen) })
}

// delay shortens action durations in autoplay.
func (s *Session) delay(d time.Duration) time.Duration {
	if s.autoplay {
		return s.timing.TurboDelay
	}
	return d
}

func stopTimer(t *Timer) {
	if *t != nil {
		(*t).Stop()
		*t = nil
	}
}

// StartRecording begins a recording. Interactively it waits for the skill
// check score through CompleteRecording; in autoplay it resolves on a timer.
func (s *Session) StartRecording(genre engine.Genre) error {
	s.mu.Lock()
	defer s.unlock()
	if err := s.ready(); err != nil {
		return s.reject(err)
	}
	if err := engine.CheckRecord(s.state, s.footage, genre, s.b); err != nil {
		return s.reject(err)
	}
	s.recordGenre = genre
	status := fmt.Sprintf("Recording %s...", genre)
	if s.autoplay {
		gen := s.begin(engine.ActivityRecording, status, s.timing.Watchdog)
		s.after(s.timing.AutoRecordDelay, gen, s.completeAutoRecord)
		return nil
	}
	s.skillCheck = true
	s.begin(engine.ActivityRecording, status, s.timing.SkillCheckTimeout)
	return nil
}

func (s *Session) completeAutoRecord(gen uint64) {
	s.mu.Lock()
	defer s.unlock()
	if !s.alive(gen, engine.ActivityRecording) {
		return
	}
	next := s.state.Clone()
	f, err := engine.AutoRecord(next, s.recordGenre, s.rng, s.b)
	s.finish()
	if err != nil {
		s.reject(err)
		return
	}
	s.commit(next)
	s.footage = &f
}

// CompleteRecording resolves the pending skill check with a 0-100 score.
func (s *Session) CompleteRecording(score int) error {
	s.mu.Lock()
	defer s.unlock()
	if !s.skillCheck {
		return s.reject(ErrNoSkillCheck)
	}
	s.skillCheck = false
	s.finish()
	next := s.state.Clone()
	f, err := engine.RecordFromScore(next, s.recordGenre, score, s.b)
	if err != nil {
		return s.reject(err)
	}
	s.commit(next)
	s.footage = &f
	s.notify(engine.NoticeSuccess, fmt.Sprintf("Footage captured! Quality: %d%%", f.Potential))
	return nil
}

// CancelRecording abandons the skill check without spending energy.
func (s *Session) CancelRecording() error {
	s.mu.Lock()
	defer s.unlock()
	if !s.skillCheck {
		return s.reject(ErrNoSkillCheck)
	}
	s.skillCheck = false
	s.finish()
	s.notify(engine.NoticeInfo, "Recording cancelled.")
	return nil
}

// EditAndUpload edits the pending footage and publishes it. The gateway
// copy is fetched off the lock; the clock keeps ticking meanwhile.
func (s *Session) EditAndUpload(vibe string) error {
	s.mu.Lock()
	defer s.unlock()
	if err := s.ready(); err != nil {
		return s.reject(err)
	}
	if err := engine.CheckEdit(s.state, s.footage, s.b); err != nil {
		return s.reject(err)
	}
	f := *s.footage
	quality := engine.EditQuality(s.state, f, s.b)
	channel := s.state.ChannelName
	gen := s.begin(engine.ActivityEditing, "Editing...", s.timing.Watchdog)
	s.queue(func() {
		ctx, cancel := s.gatewayContext()
		defer cancel()
		d, err := s.gateway.VideoDetails(ctx, f.Genre, channel, vibe)
		if err != nil {
			s.log.Warn("video details", "err", err)
		}
		comments, err := s.gateway.VideoComments(ctx, d.Title, quality, f.Genre)
		if err != nil {
			s.log.Warn("video comments", "err", err)
		}
		s.completeEdit(gen, f, engine.Draft{
			Title:       d.Title,
			Description: d.Description,
			VisualTag:   d.VisualTag,
			Comments:    comments,
		})
	})
	return nil
}

func (s *Session) completeEdit(gen uint64, f engine.Footage, d engine.Draft) {
	s.mu.Lock()
	defer s.unlock()
	if !s.alive(gen, engine.ActivityEditing) {
		s.log.Warn("edit completed after reset; dropped", "title", d.Title)
		return
	}
	next := s.state.Clone()
	res, err := engine.Publish(next, f, d, uuid.NewString(), s.now(), s.b)
	s.finish()
	if err != nil {
		s.reject(err)
		return
	}
	s.commit(next)
	s.footage = nil
	s.m.IncPublished()
	if c := res.Contract; c != nil {
		s.notify(engine.NoticeSuccess, fmt.Sprintf("Contract Fulfilled! Earned %s", c.Payout))
	}
	if !s.autoplay {
		s.notify(engine.NoticeSuccess, fmt.Sprintf("Published: %q", res.Video.Title))
	}
	s.log.Info("published", "title", res.Video.Title, "quality", res.Video.Quality, "genre", res.Video.Genre)
	day, v := next.Day, res.Video
	s.queue(func() {
		s.record("video_published", s.journal.VideoPublished(context.Background(), day, v))
	})
}

// Work trades energy for money after the freelance delay.
func (s *Session) Work() error {
	s.mu.Lock()
	defer s.unlock()
	if err := s.ready(); err != nil {
		return s.reject(err)
	}
	if s.state.Energy < engine.WorkCost(s.state, s.b) {
		return s.reject(engine.ErrInsufficientEnergy)
	}
	gen := s.begin(engine.ActivityWorking, "Freelancing...", s.timing.Watchdog)
	s.after(s.delay(s.timing.WorkDelay), gen, s.completeWork)
	return nil
}

func (s *Session) completeWork(gen uint64) {
	s.mu.Lock()
	defer s.unlock()
	if !s.alive(gen, engine.ActivityWorking) {
		return
	}
	next := s.state.Clone()
	err := engine.Work(next, s.b)
	s.finish()
	if err != nil {
		s.reject(err)
		return
	}
	s.commit(next)
	if !s.autoplay {
		s.notify(engine.NoticeInfo, fmt.Sprintf("Freelance work completed. +$%.0f", s.b.WorkPayout))
	}
}

// Sleep ends the day. Some nights lead into an event instead.
func (s *Session) Sleep() error {
	s.mu.Lock()
	defer s.unlock()
	if err := s.ready(); err != nil {
		return s.reject(err)
	}
	gen := s.begin(engine.ActivitySleeping, "Sleeping...", s.timing.Watchdog)
	s.after(s.delay(s.timing.SleepDelay), gen, s.completeSleep)
	return nil
}

func (s *Session) completeSleep(gen uint64) {
	s.mu.Lock()
	defer s.unlock()
	if !s.alive(gen, engine.ActivitySleeping) {
		return
	}
	if engine.RollsEvent(s.rng, s.b) {
		rep := s.state.Reputation
		// The gateway call gets a full watchdog period of its own.
		s.arm(gen, s.timing.Watchdog)
		s.queue(func() {
			ctx, cancel := s.gatewayContext()
			defer cancel()
			ev, err := s.gateway.GameEvent(ctx, rep)
			if err != nil {
				s.log.Warn("game event", "err", err)
			}
			s.presentEvent(gen, ev)
		})
		return
	}
	next := s.state.Clone()
	s.advanceDay(next)
	s.commit(next)
	s.finish()
}

func (s *Session) presentEvent(gen uint64, ev engine.GameEvent) {
	s.mu.Lock()
	defer s.unlock()
	if !s.alive(gen, engine.ActivitySleeping) {
		s.log.Warn("event arrived after reset; dropped", "title", ev.Title)
		return
	}
	s.finish()
	s.event = &ev
	s.setPhase(engine.PhaseEvent)
	s.notify(engine.NoticeInfo, fmt.Sprintf("Event: %s", ev.Title))
}

// ChooseEvent resolves the pending event and then advances the day.
func (s *Session) ChooseEvent(choice engine.ChoiceID) error {
	s.mu.Lock()
	defer s.unlock()
	if s.phase != engine.PhaseEvent || s.event == nil {
		return s.reject(engine.ErrNoEvent)
	}
	if s.activity.Busy() {
		return s.reject(ErrBusy)
	}
	if _, ok := s.event.Choice(choice); !ok {
		return s.reject(engine.ErrInvalidChoice)
	}
	ev := *s.event
	gen := s.begin(engine.ActivityResolving, "Resolving Event...", s.timing.Watchdog)
	s.queue(func() {
		ctx, cancel := s.gatewayContext()
		defer cancel()
		o, err := s.gateway.EventOutcome(ctx, ev, choice)
		if err != nil {
			s.log.Warn("event outcome", "err", err)
		}
		s.completeEvent(gen, ev, choice, o)
	})
	return nil
}

func (s *Session) completeEvent(gen uint64, ev engine.GameEvent, choice engine.ChoiceID, o engine.EventOutcome) {
	s.mu.Lock()
	defer s.unlock()
	if !s.alive(gen, engine.ActivityResolving) {
		s.log.Warn("outcome arrived after reset; dropped", "event", ev.Title)
		return
	}
	day := s.state.Day
	next := s.state.Clone()
	engine.ApplyOutcome(next, o, s.b)
	kind := engine.NoticeSuccess
	if o.MoneyChange < 0 {
		kind = engine.NoticeError
	}
	s.notify(kind, o.Message)
	s.event = nil
	s.advanceDay(next)
	s.commit(next)
	s.finish()
	s.queue(func() {
		s.record("event_resolved", s.journal.EventResolved(context.Background(), day, ev, choice, o))
	})
}

// advanceDay closes the day on next and routes any new contract offer.
func (s *Session) advanceDay(next *engine.PlayerState) {
	dr := engine.AdvanceDay(next, s.rng, s.b)
	if dr.Expired != nil {
		s.notify(engine.NoticeError, fmt.Sprintf("Contract Expired! -%d Rep", s.b.ContractExpiryRepHit))
	}
	if dr.TrendChanged {
		s.notify(engine.NoticeInfo, fmt.Sprintf("New trend: %s", dr.Trend))
	}
	s.offer = nil
	if o := dr.Offer; o != nil {
		if s.autoplay {
			if err := engine.AcceptContract(next, *o); err != nil {
				s.log.Warn("auto-accept contract", "err", err)
			}
			s.notify(engine.NoticeInfo, fmt.Sprintf("Sponsorship accepted: %s", o.Description))
		} else {
			s.offer = o
			s.notify(engine.NoticeInfo, fmt.Sprintf("New Sponsorship Offer! %s %s", o.Description, o.Payout))
		}
	}
	s.setPhase(engine.PhasePlaying)
	s.log.Info("day advanced", "day", next.Day, "subscribers", next.Subscribers, "trend", next.CurrentTrend)

	snap := next.SubHistory[len(next.SubHistory)-1]
	money, rep := next.Money, next.Reputation
	s.queue(func() {
		s.record("day_advanced", s.journal.DayAdvanced(context.Background(), snap, money, rep))
	})
}

// AcceptOffer takes the pending sponsor deal.
func (s *Session) AcceptOffer() error {
	s.mu.Lock()
	defer s.unlock()
	if s.offer == nil {
		return s.reject(engine.ErrNoOffer)
	}
	if err := s.started(); err != nil {
		return s.reject(err)
	}
	next := s.state.Clone()
	if err := engine.AcceptContract(next, *s.offer); err != nil {
		return s.reject(err)
	}
	s.commit(next)
	s.offer = nil
	s.notify(engine.NoticeSuccess, "Contract Accepted!")
	return nil
}

func (s *Session) DeclineOffer() error {
	s.mu.Lock()
	defer s.unlock()
	if s.offer == nil {
		return s.reject(engine.ErrNoOffer)
	}
	s.offer = nil
	s.notify(engine.NoticeInfo, "Offer declined.")
	return nil
}

// instant applies a transition that has no duration.
func (s *Session) instant(apply func(*engine.PlayerState) error, msg string) error {
	if err := s.started(); err != nil {
		return s.reject(err)
	}
	next := s.state.Clone()
	if err := apply(next); err != nil {
		return s.reject(err)
	}
	s.commit(next)
	if msg != "" && !s.autoplay {
		s.notify(engine.NoticeSuccess, msg)
	}
	return nil
}

func (s *Session) BuyEquipment(e engine.Equipment) error {
	s.mu.Lock()
	defer s.unlock()
	return s.instant(func(p *engine.PlayerState) error { return engine.BuyEquipment(p, e, s.b) }, "Upgraded Gear!")
}

func (s *Session) BuyUpgrade(u engine.Upgrade) error {
	s.mu.Lock()
	defer s.unlock()
	return s.instant(func(p *engine.PlayerState) error { return engine.BuyUpgrade(p, u, s.b) }, "Upgraded Studio!")
}

func (s *Session) UnlockPerk(id string) error {
	s.mu.Lock()
	defer s.unlock()
	return s.instant(func(p *engine.PlayerState) error {
		_, err := engine.UnlockPerk(p, id)
		return err
	}, "Perk Unlocked!")
}

func (s *Session) HeartComment(videoID string, idx int) error {
	s.mu.Lock()
	defer s.unlock()
	return s.instant(func(p *engine.PlayerState) error { return engine.HeartComment(p, videoID, idx, s.b) }, "+2 Rep")
}

// SetAutoplay toggles the agent and turbo delays.
func (s *Session) SetAutoplay(on bool) {
	s.mu.Lock()
	defer s.unlock()
	if s.autoplay == on {
		return
	}
	s.autoplay = on
	if on && s.skillCheck {
		// The agent cannot finish a skill check.
		s.skillCheck = false
		s.finish()
		s.notify(engine.NoticeInfo, "Recording cancelled.")
	}
	if on {
		s.notify(engine.NoticeInfo, "Autoplay engaged.")
	} else {
		s.notify(engine.NoticeInfo, "Autoplay off.")
	}
}

// AutoplayStep evaluates the agent once and performs its decision.
func (s *Session) AutoplayStep() (engine.Intent, error) {
	s.mu.Lock()
	if !s.autoplay || s.phase == engine.PhaseSetup {
		s.unlock()
		return engine.Intent{Kind: engine.IntentNone}, nil
	}
	in := engine.Decide(engine.AgentView{
		State:      s.state,
		Phase:      s.phase,
		Footage:    s.footage,
		Event:      s.event,
		Busy:       s.activity.Busy(),
		SkillCheck: s.skillCheck,
	}, s.agentRng, s.b)
	s.unlock()
	return in, s.dispatch(in)
}

func (s *Session) dispatch(in engine.Intent) error {
	switch in.Kind {
	case engine.IntentChoose:
		return s.ChooseEvent(in.Choice)
	case engine.IntentUnlockPerk:
		return s.UnlockPerk(in.PerkID)
	case engine.IntentSleep:
		return s.Sleep()
	case engine.IntentEdit:
		return s.EditAndUpload(in.Vibe)
	case engine.IntentBuyEquipment:
		return s.BuyEquipment(in.Equipment)
	case engine.IntentWork:
		return s.Work()
	case engine.IntentRecord:
		return s.StartRecording(in.Genre)
	}
	return nil
}
