package text

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"github.com/DaanHessen/streamer-sim/internal/engine"
)

const (
	DefaultBaseURL = "https://api.deepseek.com/chat/completions"
	DefaultModel   = "deepseek-chat"
)

// DeepSeek is a Gateway backed by an OpenAI-compatible chat completions API.
type DeepSeek struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

type Option func(*DeepSeek)

func WithBaseURL(u string) Option { return func(d *DeepSeek) { d.baseURL = u } }

func WithModel(m string) Option { return func(d *DeepSeek) { d.model = m } }

func WithHTTPClient(c *http.Client) Option { return func(d *DeepSeek) { d.httpClient = c } }

// WithRateLimit caps outgoing requests; excess calls wait on the limiter.
func WithRateLimit(every time.Duration, burst int) Option {
	return func(d *DeepSeek) { d.limiter = rate.NewLimiter(rate.Every(every), burst) }
}

// NewDeepSeek returns an online gateway. An empty key is an error so callers
// can fall back to the offline templates.
func NewDeepSeek(apiKey string, opts ...Option) (*DeepSeek, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("deepseek: api key not configured")
	}
	d := &DeepSeek{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		model:      DefaultModel,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(time.Second), 4),
	}
	for _, o := range opts {
		o(d)
	}
	return d, nil
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature,omitempty"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

const systemPrompt = "You write flavor text for a YouTuber career game. Reply with a single JSON object and nothing else."

// complete sends one prompt and decodes the JSON reply into out.
func (d *DeepSeek) complete(ctx context.Context, prompt string, temperature float64, out any) error {
	if err := d.limiter.Wait(ctx); err != nil {
		return errors.Wrap(err, "deepseek: rate limit")
	}
	body, err := json.Marshal(chatRequest{
		Model:          d.model,
		Messages:       []chatMessage{{Role: "system", Content: systemPrompt}, {Role: "user", Content: prompt}},
		Temperature:    temperature,
		ResponseFormat: responseFormat{Type: "json_object"},
	})
	if err != nil {
		return errors.Wrap(err, "deepseek: marshal request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "deepseek: build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+d.apiKey)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "deepseek: request")
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return errors.Wrap(err, "deepseek: read response")
	}
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("deepseek: status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	var cr chatResponse
	if err := json.Unmarshal(raw, &cr); err != nil {
		return errors.Wrap(err, "deepseek: decode envelope")
	}
	if len(cr.Choices) == 0 {
		return errors.New("deepseek: no choices returned")
	}
	content := stripFences(cr.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), out); err != nil {
		return errors.Wrap(err, "deepseek: decode content")
	}
	return nil
}

// stripFences removes a markdown code fence some models wrap JSON in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func (d *DeepSeek) VideoDetails(ctx context.Context, genre engine.Genre, channel, vibe string) (Details, error) {
	prompt := fmt.Sprintf(`Generate details for a new %s video by channel %q. The editing vibe was %q.
Return {"title": catchy clickbait title, "description": one sentence, "visualTag": one of %s}.`,
		genre, channel, vibe, strings.Join(VisualTags, ", "))
	var out Details
	if err := d.complete(ctx, prompt, 1.1, &out); err != nil {
		return Details{}, err
	}
	return out, nil
}

func (d *DeepSeek) VideoComments(ctx context.Context, title string, quality int, genre engine.Genre) ([]engine.Comment, error) {
	mood := "Mostly haters or trolls."
	if quality > 60 {
		mood = "Mostly fans."
	}
	prompt := fmt.Sprintf(`Generate %d YouTube comments for %q (%s). Quality: %d/100. %s
Return {"comments": [{"user": string, "text": string, "sentiment": "positive"|"negative"|"neutral"}]}.`,
		CommentCount, title, genre, quality, mood)
	var out struct {
		Comments []engine.Comment `json:"comments"`
	}
	if err := d.complete(ctx, prompt, 1.0, &out); err != nil {
		return nil, err
	}
	if len(out.Comments) > CommentCount {
		out.Comments = out.Comments[:CommentCount]
	}
	for i := range out.Comments {
		out.Comments[i].ID = uuid.NewString()
		out.Comments[i].Hearted = false
	}
	return out.Comments, nil
}

func (d *DeepSeek) GameEvent(ctx context.Context, reputation int) (engine.GameEvent, error) {
	prompt := fmt.Sprintf(`Create a random scenario for a YouTuber. Current Reputation: %d/100.
The scenario should require a choice. Examples: Sponsor offer, Drama with another creator, Copyright strike, Viral opportunity.
Return {"title": string, "description": string, "choices": [{"id": "A", "label": string}, {"id": "B", "label": string}]}.`, reputation)
	var ev engine.GameEvent
	if err := d.complete(ctx, prompt, 1.0, &ev); err != nil {
		return engine.GameEvent{}, err
	}
	if err := ev.Validate(); err != nil {
		return engine.GameEvent{}, errors.Wrap(err, "deepseek: event")
	}
	ev.ID = uuid.NewString()
	return ev, nil
}

func (d *DeepSeek) EventOutcome(ctx context.Context, ev engine.GameEvent, choice engine.ChoiceID) (engine.EventOutcome, error) {
	c, ok := ev.Choice(choice)
	if !ok {
		return engine.EventOutcome{}, errors.Wrapf(engine.ErrInvalidChoice, "choice %q", choice)
	}
	prompt := fmt.Sprintf(`The YouTuber chose to %q in response to: %q.
Determine the outcome. Be somewhat unpredictable.
Return {"message": narrative result, "moneyChange": integer, "subChange": integer, "repChange": integer from -10 to 10}.`,
		c.Label, ev.Description)
	var out engine.EventOutcome
	if err := d.complete(ctx, prompt, 1.0, &out); err != nil {
		return engine.EventOutcome{}, err
	}
	if out.RepChange < -10 || out.RepChange > 10 {
		return engine.EventOutcome{}, errors.Errorf("deepseek: repChange %d out of range", out.RepChange)
	}
	return out, nil
}
