package text

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/DaanHessen/streamer-sim/internal/engine"
)

// VisualTags name the thumbnail palettes the UI knows how to draw.
var VisualTags = []string{"sunset", "ocean", "neon", "forest", "royal", "gold"}

var titlesByGenre = map[engine.Genre][]string{
	engine.GenreGaming:      {"Epic Killstreak!", "Impossible Level Completed", "Speedrun World Record?", "Noob vs Pro", "Glitch Hunter", "Rage Quit Moment", "Best Loadout Guide"},
	engine.GenreVlog:        {"My Morning Routine", "Day in the Life", "Q&A Special", "Travel Vlog: Tokyo", "Room Tour", "Big Announcement!", "Why I was gone"},
	engine.GenreTech:        {"New Phone Review", "Is this worth $1000?", "PC Build Guide", "The Future of AI", "Unboxing Mystery Tech", "Don't Buy This", "Top 5 Gadgets"},
	engine.GenreCooking:     {"Ultimate Burger Recipe", "Cooking with 1 Ingredient", "Chef Reacts to Frozen Food", "Spicy Noodle Challenge", "Easy Dessert Tutorial", "Kitchen Nightmares", "Vegan for a Day"},
	engine.GenrePrank:       {"Scaring Roommate!", "Fake Lottery Ticket", "Invisible Wall Prank", "Calling Random Numbers", "Elevator Prank", "Public Prank Gone Wrong", "Gold Digger Test"},
	engine.GenreEducational: {"History of the Internet", "How Physics Works", "Learn Coding in 10 Mins", "Space Facts", "Why the Sky is Blue", "Math Tricks", "The Ocean is Scary"},
}

var stockComments = []engine.Comment{
	{User: "SuperFan99", Text: "First! Love your content.", Sentiment: engine.SentimentPositive},
	{User: "Hater123", Text: "This is boring.", Sentiment: engine.SentimentNegative},
	{User: "RandomUser", Text: "Great video quality!", Sentiment: engine.SentimentPositive},
	{User: "TrollFace", Text: "L + Ratio", Sentiment: engine.SentimentNegative},
	{User: "Viewer1", Text: "Interesting perspective.", Sentiment: engine.SentimentNeutral},
	{User: "Bot_Account", Text: "Nice vid!", Sentiment: engine.SentimentNeutral},
	{User: "Mom", Text: "So proud of you honey!", Sentiment: engine.SentimentPositive},
}

var stockEvents = []engine.GameEvent{
	{
		Title:       "Trending Topic",
		Description: "A new viral challenge is taking over the internet. Everyone is doing it.",
		Choices:     []engine.EventChoice{{ID: engine.ChoiceA, Label: "Join the Trend"}, {ID: engine.ChoiceB, Label: "Ignore it"}},
	},
	{
		Title:       "Technical Difficulties",
		Description: "Your editing software crashed and you lost an hour of work.",
		Choices:     []engine.EventChoice{{ID: engine.ChoiceA, Label: "Stay up late to fix it"}, {ID: engine.ChoiceB, Label: "Upload what you have"}},
	},
	{
		Title:       "Collab Opportunity",
		Description: "A slightly larger channel wants to collaborate, but they have a bad reputation.",
		Choices:     []engine.EventChoice{{ID: engine.ChoiceA, Label: "Accept for the views"}, {ID: engine.ChoiceB, Label: "Decline to stay safe"}},
	},
	{
		Title:       "Sponsorship Offer",
		Description: "A mobile game wants to sponsor your next video for quick cash.",
		Choices:     []engine.EventChoice{{ID: engine.ChoiceA, Label: "Sell out"}, {ID: engine.ChoiceB, Label: "Keep integrity"}},
	},
}

// CommentCount is the number of comments generated per video.
const CommentCount = 3

// Template is the deterministic offline gateway. It never returns an error.
type Template struct {
	mu sync.Mutex
	r  engine.Rand
}

// NewTemplate builds an offline gateway drawing from r.
func NewTemplate(r engine.Rand) *Template { return &Template{r: r} }

func (t *Template) VideoDetails(ctx context.Context, genre engine.Genre, channel, vibe string) (Details, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	title := "My New Video"
	if titles := titlesByGenre[genre]; len(titles) > 0 {
		title = titles[t.r.Intn(len(titles))]
	}
	return Details{
		Title:       title,
		Description: fmt.Sprintf("A brand new %s video for you guys!", genre),
		VisualTag:   VisualTags[t.r.Intn(len(VisualTags))],
	}, nil
}

// VideoComments picks stock comments, nudging sentiment toward the quality:
// great videos soften haters, poor ones sour fans.
func (t *Template) VideoComments(ctx context.Context, title string, quality int, genre engine.Genre) ([]engine.Comment, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]engine.Comment, 0, CommentCount)
	for i := 0; i < CommentCount; i++ {
		c := stockComments[t.r.Intn(len(stockComments))]
		switch {
		case quality > 80 && c.Sentiment == engine.SentimentNegative && t.r.Float64() > 0.3:
			c.Text, c.Sentiment = "Actually not bad.", engine.SentimentNeutral
		case quality < 30 && c.Sentiment == engine.SentimentPositive && t.r.Float64() > 0.3:
			c.Text, c.Sentiment = "Usually I like your stuff but...", engine.SentimentNegative
		}
		c.ID = uuid.NewString()
		out = append(out, c)
	}
	return out, nil
}

func (t *Template) GameEvent(ctx context.Context, reputation int) (engine.GameEvent, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ev := stockEvents[t.r.Intn(len(stockEvents))]
	ev.Choices = append([]engine.EventChoice(nil), ev.Choices...)
	ev.ID = uuid.NewString()
	return ev, nil
}

// EventOutcome ignores the choice: 60% of outcomes go well.
func (t *Template) EventOutcome(ctx context.Context, ev engine.GameEvent, choice engine.ChoiceID) (engine.EventOutcome, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.r.Float64() > 0.4 {
		return engine.EventOutcome{
			Message:     "It worked out great! Fans loved your decision.",
			MoneyChange: t.r.Intn(50) + 10,
			SubChange:   t.r.Intn(100) + 50,
			RepChange:   5,
		}, nil
	}
	return engine.EventOutcome{
		Message:     "That didn't go as planned. People are confused.",
		MoneyChange: -t.r.Intn(20),
		SubChange:   -t.r.Intn(20),
		RepChange:   -5,
	}, nil
}
