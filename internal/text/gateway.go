package text

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/DaanHessen/streamer-sim/internal/engine"
	"github.com/DaanHessen/streamer-sim/internal/metrics"
)

// Gateway produces the flavor content the engine treats as opaque: video
// copy, viewer comments, narrative events and their outcomes.
type Gateway interface {
	VideoDetails(ctx context.Context, genre engine.Genre, channel, vibe string) (Details, error)
	VideoComments(ctx context.Context, title string, quality int, genre engine.Genre) ([]engine.Comment, error)
	GameEvent(ctx context.Context, reputation int) (engine.GameEvent, error)
	EventOutcome(ctx context.Context, ev engine.GameEvent, choice engine.ChoiceID) (engine.EventOutcome, error)
}

// Details is the generated copy for a new video.
type Details struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	VisualTag   string `json:"visualTag"`
}

var errMalformed = errors.New("malformed gateway response")

// WithFallback returns a gateway that prefers primary and answers from
// fallback when primary errors or returns something structurally invalid.
// A nil primary always uses the fallback.
func WithFallback(primary, fallback Gateway, logger *log.Logger) Gateway {
	if logger == nil {
		logger = log.Default()
	}
	return &fallbackGateway{p: primary, f: fallback, log: logger}
}

type fallbackGateway struct {
	p, f Gateway
	log  *log.Logger
}

func (g *fallbackGateway) degrade(call string, err error) {
	metrics.Sim().IncGatewayFallback(call)
	if err != nil {
		g.log.Warn("gateway fallback", "call", call, "err", err)
	}
}

func knownVisualTag(tag string) bool {
	for _, t := range VisualTags {
		if t == tag {
			return true
		}
	}
	return false
}

func (g *fallbackGateway) VideoDetails(ctx context.Context, genre engine.Genre, channel, vibe string) (Details, error) {
	if g.p != nil {
		d, err := g.p.VideoDetails(ctx, genre, channel, vibe)
		switch {
		case err != nil:
		case d.Title == "":
			err = errors.Wrap(errMalformed, "empty title")
		case !knownVisualTag(d.VisualTag):
			err = errors.Wrapf(errMalformed, "visual tag %q", d.VisualTag)
		}
		if err == nil {
			return d, nil
		}
		g.degrade("video_details", err)
	}
	return g.f.VideoDetails(ctx, genre, channel, vibe)
}

func (g *fallbackGateway) VideoComments(ctx context.Context, title string, quality int, genre engine.Genre) ([]engine.Comment, error) {
	if g.p != nil {
		cs, err := g.p.VideoComments(ctx, title, quality, genre)
		if err == nil && len(cs) == 0 {
			err = errors.Wrap(errMalformed, "no comments")
		}
		if err == nil {
			for _, c := range cs {
				if !c.Sentiment.Validate() {
					err = errors.Wrapf(errMalformed, "sentiment %q", c.Sentiment)
					break
				}
			}
		}
		if err == nil {
			return cs, nil
		}
		g.degrade("video_comments", err)
	}
	return g.f.VideoComments(ctx, title, quality, genre)
}

func (g *fallbackGateway) GameEvent(ctx context.Context, reputation int) (engine.GameEvent, error) {
	if g.p != nil {
		ev, err := g.p.GameEvent(ctx, reputation)
		if err == nil {
			err = ev.Validate()
		}
		if err == nil {
			return ev, nil
		}
		g.degrade("game_event", err)
	}
	return g.f.GameEvent(ctx, reputation)
}

func (g *fallbackGateway) EventOutcome(ctx context.Context, ev engine.GameEvent, choice engine.ChoiceID) (engine.EventOutcome, error) {
	if g.p != nil {
		o, err := g.p.EventOutcome(ctx, ev, choice)
		if err == nil && o.Message == "" {
			err = errors.Wrap(errMalformed, "empty outcome message")
		}
		if err == nil {
			return o, nil
		}
		g.degrade("event_outcome", err)
	}
	return g.f.EventOutcome(ctx, ev, choice)
}
