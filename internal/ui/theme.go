package ui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/DaanHessen/streamer-sim/internal/engine"
)

type palette struct {
	Background lipgloss.Color
	Surface    lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	AccentAlt  lipgloss.Color
	Border     lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Danger     lipgloss.Color
	BarFill    lipgloss.Color
	BarEmpty   lipgloss.Color
}

var palettes = map[string]palette{
	"catppuccin": {
		Background: lipgloss.Color("#1e1e2e"),
		Surface:    lipgloss.Color("#313244"),
		Text:       lipgloss.Color("#cdd6f4"),
		Muted:      lipgloss.Color("#a6adc8"),
		Accent:     lipgloss.Color("#cba6f7"),
		AccentAlt:  lipgloss.Color("#f38ba8"),
		Border:     lipgloss.Color("#585b70"),
		Success:    lipgloss.Color("#a6e3a1"),
		Warning:    lipgloss.Color("#f9e2af"),
		Danger:     lipgloss.Color("#f38ba8"),
		BarFill:    lipgloss.Color("#94e2d5"),
		BarEmpty:   lipgloss.Color("#313244"),
	},
	"dracula": {
		Background: lipgloss.Color("#282a36"),
		Surface:    lipgloss.Color("#343746"),
		Text:       lipgloss.Color("#f8f8f2"),
		Muted:      lipgloss.Color("#6272a4"),
		Accent:     lipgloss.Color("#ff79c6"),
		AccentAlt:  lipgloss.Color("#bd93f9"),
		Border:     lipgloss.Color("#44475a"),
		Success:    lipgloss.Color("#50fa7b"),
		Warning:    lipgloss.Color("#f1fa8c"),
		Danger:     lipgloss.Color("#ff5555"),
		BarFill:    lipgloss.Color("#50fa7b"),
		BarEmpty:   lipgloss.Color("#343746"),
	},
	"gruvbox": {
		Background: lipgloss.Color("#282828"),
		Surface:    lipgloss.Color("#3c3836"),
		Text:       lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#a89984"),
		Accent:     lipgloss.Color("#fabd2f"),
		AccentAlt:  lipgloss.Color("#d3869b"),
		Border:     lipgloss.Color("#665c54"),
		Success:    lipgloss.Color("#b8bb26"),
		Warning:    lipgloss.Color("#fe8019"),
		Danger:     lipgloss.Color("#fb4934"),
		BarFill:    lipgloss.Color("#b8bb26"),
		BarEmpty:   lipgloss.Color("#3c3836"),
	},
}

const defaultTheme = "catppuccin"

func paletteFor(name string) palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes[defaultTheme]
}

func themeNames() []string {
	names := make([]string, 0, len(palettes))
	for k := range palettes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func nextThemeName(current string, step int) string {
	names := themeNames()
	if len(names) == 0 {
		return current
	}
	idx := 0
	for i, name := range names {
		if name == current {
			idx = i
			break
		}
	}
	idx = (idx + step) % len(names)
	if idx < 0 {
		idx += len(names)
	}
	return names[idx]
}

// Thumbnail colors for the generated visual tags.
var visualColors = map[string]lipgloss.Color{
	"sunset": lipgloss.Color("#f97316"),
	"ocean":  lipgloss.Color("#0ea5e9"),
	"neon":   lipgloss.Color("#d946ef"),
	"forest": lipgloss.Color("#22c55e"),
	"royal":  lipgloss.Color("#6366f1"),
	"gold":   lipgloss.Color("#eab308"),
}

func visualColor(tag string, p palette) lipgloss.Color {
	if c, ok := visualColors[tag]; ok {
		return c
	}
	return p.Muted
}

func noticeColor(k engine.NoticeKind, p palette) lipgloss.Color {
	switch k {
	case engine.NoticeSuccess:
		return p.Success
	case engine.NoticeWarning:
		return p.Warning
	case engine.NoticeError:
		return p.Danger
	}
	return p.Accent
}

func sentimentColor(s engine.Sentiment, p palette) lipgloss.Color {
	switch s {
	case engine.SentimentPositive:
		return p.Success
	case engine.SentimentNegative:
		return p.Danger
	}
	return p.Muted
}

type styles struct {
	title  lipgloss.Style
	muted  lipgloss.Style
	panel  lipgloss.Style
	active lipgloss.Style
	tab    lipgloss.Style
	modal  lipgloss.Style
	key    lipgloss.Style
}

func newStyles(p palette) styles {
	return styles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		muted:  lipgloss.NewStyle().Foreground(p.Muted),
		panel:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Border).Padding(0, 1),
		active: lipgloss.NewStyle().Bold(true).Foreground(p.Background).Background(p.Accent).Padding(0, 1),
		tab:    lipgloss.NewStyle().Foreground(p.Muted).Padding(0, 1),
		modal:  lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(p.AccentAlt).Padding(1, 2),
		key:    lipgloss.NewStyle().Bold(true).Foreground(p.AccentAlt),
	}
}
