package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/DaanHessen/streamer-sim/internal/engine"
	"github.com/DaanHessen/streamer-sim/internal/session"
	"github.com/DaanHessen/streamer-sim/internal/util"
)

const (
	viewSetup     = "setup"
	viewDashboard = "dashboard"
	viewContent   = "content"
	viewComments  = "comments"
	viewShop      = "shop"
	viewAnalytics = "analytics"
	viewLog       = "log"
	viewHelp      = "help"
)

var primaryViews = []string{viewDashboard, viewContent, viewShop, viewAnalytics, viewLog}

const (
	refreshEvery = 100 * time.Millisecond
	toastFor     = 3 * time.Second
	maxToasts    = 4
)

type refreshMsg time.Time

type toast struct {
	n     session.Notice
	until time.Time
}

type model struct {
	s       *session.Session
	b       engine.Balance
	version string
	view    string
	snap    session.Snapshot
	toasts  []toast
	now     func() time.Time
	width   int
	height  int
	theme   string
	pal     palette
	st      styles
	md      *glamour.TermRenderer

	// setup form
	player  string
	channel string
	field   int

	genreIdx   int
	vibeIdx    int
	videoIdx   int
	commentIdx int
	shopIdx    int
	logScroll  int

	check skillCheck
}

func initialModel(s *session.Session, cfg util.Config) model {
	m := model{
		s:       s,
		b:       s.Balance(),
		version: cfg.Version,
		view:    viewSetup,
		now:     time.Now,
		player:  cfg.Player,
		channel: cfg.Channel,
	}
	m.setTheme(defaultTheme)
	if r, err := glamour.NewTermRenderer(glamour.WithStandardStyle("dark"), glamour.WithWordWrap(64)); err == nil {
		m.md = r
	}
	m.snap = s.Snapshot()
	if m.snap.Phase != engine.PhaseSetup {
		m.view = viewDashboard
	}
	return m
}

func (m *model) setTheme(name string) {
	m.theme = name
	m.pal = paletteFor(name)
	m.st = newStyles(m.pal)
}

func refreshCmd() tea.Cmd {
	return tea.Tick(refreshEvery, func(t time.Time) tea.Msg { return refreshMsg(t) })
}

// tea.Model implementation ---------------------------------------------------
func (m model) Init() tea.Cmd { return refreshCmd() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case refreshMsg:
		cmd := m.refresh()
		return m, tea.Batch(cmd, refreshCmd())
	case skillFrameMsg:
		if msg.run != m.check.run || !m.snap.SkillCheck {
			return m, nil
		}
		m.check.advance()
		return m, m.check.frame()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// refresh pulls a new snapshot and any new notices. It starts the skill
// check animation when a recording begins waiting on one.
func (m *model) refresh() tea.Cmd {
	was := m.snap.SkillCheck
	m.snap = m.s.Snapshot()
	now := m.now()
	for _, n := range m.s.Notices() {
		m.toasts = append(m.toasts, toast{n: n, until: now.Add(toastFor)})
	}
	live := m.toasts[:0]
	for _, t := range m.toasts {
		if t.until.After(now) {
			live = append(live, t)
		}
	}
	m.toasts = live
	if len(m.toasts) > maxToasts {
		m.toasts = m.toasts[len(m.toasts)-maxToasts:]
	}
	m.videoIdx = clampIndex(m.videoIdx, len(m.snap.State.Videos))
	if m.snap.Phase != engine.PhaseSetup && m.view == viewSetup {
		m.view = viewDashboard
	}
	if m.snap.SkillCheck && !was {
		m.check.reset()
		return m.check.frame()
	}
	return nil
}

func (m model) refreshed() (tea.Model, tea.Cmd) {
	cmd := m.refresh()
	return m, cmd
}

func clampIndex(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	if k == "ctrl+c" {
		return m, tea.Quit
	}
	if m.view == viewSetup {
		return m.setupKey(msg)
	}
	if m.snap.SkillCheck && !m.snap.Autoplay {
		switch k {
		case " ", "enter":
			_ = m.s.CompleteRecording(skillScore(m.check.pos))
		case "esc":
			_ = m.s.CancelRecording()
		}
		return m.refreshed()
	}
	if m.snap.Phase == engine.PhaseEvent && m.snap.Event != nil && !m.snap.Autoplay {
		switch k {
		case "1":
			_ = m.s.ChooseEvent(engine.ChoiceA)
			return m.refreshed()
		case "2":
			_ = m.s.ChooseEvent(engine.ChoiceB)
			return m.refreshed()
		}
	}

	switch k {
	case "q":
		return m, tea.Quit
	case "tab":
		m.view = cycleView(m.view, 1)
		return m, nil
	case "shift+tab":
		m.view = cycleView(m.view, -1)
		return m, nil
	case "?":
		m.view = viewHelp
		return m, nil
	case "esc":
		if m.view == viewComments {
			m.view = viewContent
		} else {
			m.view = viewDashboard
		}
		return m, nil
	case "p":
		m.s.SetAutoplay(!m.snap.Autoplay)
		return m.refreshed()
	case "t":
		m.setTheme(nextThemeName(m.theme, 1))
		return m, nil
	}

	switch m.view {
	case viewDashboard:
		m.dashboardKey(k)
	case viewContent:
		switch k {
		case "up", "k":
			m.videoIdx--
		case "down", "j":
			m.videoIdx++
		case "enter":
			if len(m.snap.State.Videos) > 0 {
				m.commentIdx = 0
				m.view = viewComments
			}
		}
		m.videoIdx = clampIndex(m.videoIdx, len(m.snap.State.Videos))
	case viewComments:
		m.commentsKey(k)
	case viewShop:
		items := m.shopItems()
		switch k {
		case "up", "k":
			m.shopIdx--
		case "down", "j":
			m.shopIdx++
		case "enter":
			if len(items) > 0 {
				_ = items[clampIndex(m.shopIdx, len(items))].buy()
			}
		}
		m.shopIdx = clampIndex(m.shopIdx, len(items))
	case viewLog:
		switch k {
		case "up", "k":
			m.logScroll++
		case "down", "j":
			if m.logScroll > 0 {
				m.logScroll--
			}
		}
	}
	return m.refreshed()
}

func cycleView(cur string, step int) string {
	idx := 0
	for i, v := range primaryViews {
		if v == cur {
			idx = i
			break
		}
	}
	idx = (idx + step + len(primaryViews)) % len(primaryViews)
	return primaryViews[idx]
}

func (m model) setupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	field := &m.player
	if m.field == 1 {
		field = &m.channel
	}
	switch msg.Type {
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		m.field = 1 - m.field
	case tea.KeyBackspace:
		if r := []rune(*field); len(r) > 0 {
			*field = string(r[:len(r)-1])
		}
	case tea.KeyEnter:
		if err := m.s.Start(m.player, m.channel); err == nil {
			m.view = viewDashboard
		}
		return m.refreshed()
	case tea.KeySpace:
		*field += " "
	case tea.KeyRunes:
		if len([]rune(*field)) < 32 {
			*field += string(msg.Runes)
		}
	case tea.KeyEsc:
		return m, tea.Quit
	}
	return m, nil
}

func (m *model) dashboardKey(k string) {
	genres := engine.ListGenres()
	switch k {
	case "r":
		_ = m.s.StartRecording(genres[m.genreIdx%len(genres)])
	case "g":
		m.genreIdx = (m.genreIdx + 1) % len(genres)
	case "e":
		_ = m.s.EditAndUpload(engine.Vibes[m.vibeIdx%len(engine.Vibes)])
	case "v":
		m.vibeIdx = (m.vibeIdx + 1) % len(engine.Vibes)
	case "w":
		_ = m.s.Work()
	case "s":
		_ = m.s.Sleep()
	case "o":
		_ = m.s.AcceptOffer()
	case "x":
		_ = m.s.DeclineOffer()
	}
}

func (m *model) commentsKey(k string) {
	v, ok := m.selectedVideo()
	if !ok {
		m.view = viewContent
		return
	}
	switch k {
	case "up", "k":
		m.commentIdx--
	case "down", "j":
		m.commentIdx++
	case "h", "enter":
		_ = m.s.HeartComment(v.ID, clampIndex(m.commentIdx, len(v.Comments)))
	}
	m.commentIdx = clampIndex(m.commentIdx, len(v.Comments))
}

// selectedVideo indexes newest first, matching the content list.
func (m *model) selectedVideo() (engine.Video, bool) {
	vs := m.snap.State.Videos
	if len(vs) == 0 {
		return engine.Video{}, false
	}
	return vs[len(vs)-1-clampIndex(m.videoIdx, len(vs))], true
}

type shopItem struct {
	label  string
	price  string
	detail string
	buy    func() error
}

func (m *model) shopItems() []shopItem {
	p := m.snap.State
	var items []shopItem
	if next, ok := p.Equipment.Next(); ok {
		items = append(items, shopItem{
			label:  "Camera: " + string(next),
			price:  engine.Dollars(m.b.EquipmentCosts[next]).String(),
			detail: fmt.Sprintf("tier %d gear, better recordings", next.Tier()+1),
			buy:    func() error { return m.s.BuyEquipment(next) },
		})
	}
	for _, u := range engine.ListUpgrades() {
		if p.Owns(u) {
			continue
		}
		items = append(items, shopItem{
			label:  "Studio: " + string(u),
			price:  engine.Dollars(m.b.UpgradeCosts[u]).String(),
			detail: fmt.Sprintf("+%d edit quality", m.b.UpgradeQuality[u]),
			buy:    func() error { return m.s.BuyUpgrade(u) },
		})
	}
	for _, pk := range p.Perks {
		if pk.Unlocked {
			continue
		}
		id := pk.ID
		items = append(items, shopItem{
			label:  "Perk: " + pk.Name,
			price:  fmt.Sprintf("%d SP", pk.Cost),
			detail: pk.Description,
			buy:    func() error { return m.s.UnlockPerk(id) },
		})
	}
	return items
}

// Rendering -------------------------------------------------------------------

func (m model) View() string {
	if m.view == viewSetup {
		return m.renderSetup()
	}
	w := m.width
	if w <= 0 {
		w = 100
	}
	var body string
	switch {
	case m.snap.SkillCheck && !m.snap.Autoplay:
		body = m.renderSkillCheck()
	case m.snap.Phase == engine.PhaseEvent && m.snap.Event != nil:
		body = m.renderEvent()
	default:
		switch m.view {
		case viewContent:
			body = m.renderContent()
		case viewComments:
			body = m.renderComments()
		case viewShop:
			body = m.renderShop()
		case viewAnalytics:
			body = m.renderAnalytics()
		case viewLog:
			body = m.renderLog()
		case viewHelp:
			body = m.renderHelp()
		default:
			body = m.renderDashboard()
		}
	}
	parts := []string{m.renderTopBar(w), m.renderTabs(), body}
	if t := m.renderToasts(); t != "" {
		parts = append(parts, t)
	}
	parts = append(parts, m.renderBottomBar(w))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m model) renderSetup() string {
	box := m.st.panel.Padding(1, 2).Width(52)
	cursor := func(i int) string {
		if m.field == i {
			return m.st.key.Render("> ")
		}
		return "  "
	}
	var b strings.Builder
	b.WriteString(m.st.title.Render("STREAMER SIM") + "\n")
	b.WriteString(m.st.muted.Render("Start your channel") + "\n\n")
	b.WriteString(cursor(0) + "Your name:    " + m.player + "\n")
	b.WriteString(cursor(1) + "Channel name: " + m.channel + "\n\n")
	b.WriteString(m.st.muted.Render("[Tab] switch field  [Enter] go live  [Esc] quit"))
	if ts := m.renderToasts(); ts != "" {
		b.WriteString("\n\n" + ts)
	}
	return box.Render(b.String())
}

func (m model) renderTopBar(w int) string {
	p := m.snap.State
	left := strings.Join([]string{
		"STREAMER SIM",
		p.ChannelName,
		fmt.Sprintf("Day %d", p.Day),
		"Trend: " + string(p.CurrentTrend),
	}, " • ")
	right := fmt.Sprintf("Rank #%d", m.snap.Rank)
	if m.snap.Autoplay {
		right = "AUTOPLAY  " + right
	}
	gap := w - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return m.st.title.Render(left + strings.Repeat(" ", gap) + right)
}

func (m model) renderTabs() string {
	tabs := make([]string, 0, len(primaryViews))
	for _, v := range primaryViews {
		label := strings.ToUpper(v[:1]) + v[1:]
		if v == m.view || (v == viewContent && m.view == viewComments) {
			tabs = append(tabs, m.st.active.Render(label))
		} else {
			tabs = append(tabs, m.st.tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m model) renderBottomBar(w int) string {
	var keys string
	switch m.view {
	case viewDashboard:
		keys = "[r] record  [g] genre  [e] edit  [v] vibe  [w] work  [s] sleep  [o/x] offer"
	case viewContent:
		keys = "[↑/↓] select  [Enter] comments"
	case viewComments:
		keys = "[↑/↓] select  [h] heart  [Esc] back"
	case viewShop:
		keys = "[↑/↓] select  [Enter] buy"
	case viewLog:
		keys = "[↑/↓] scroll"
	}
	line := keys + "  [Tab] views  [p] autoplay  [t] theme  [?] help  [q] quit"
	if len(line) > w && w > 10 {
		line = line[:w-3] + "..."
	}
	return m.st.muted.Render(line)
}

func (m model) renderToasts() string {
	if len(m.toasts) == 0 {
		return ""
	}
	lines := make([]string, 0, len(m.toasts))
	for _, t := range m.toasts {
		lines = append(lines, lipgloss.NewStyle().Foreground(noticeColor(t.n.Kind, m.pal)).Render("● "+t.n.Text))
	}
	return strings.Join(lines, "\n")
}

func (m model) bar(v, top int) string {
	const width = 20
	if top <= 0 {
		top = 100
	}
	fill := int(float64(v)/float64(top)*width + 0.5)
	fill = min(max0(fill), width)
	return lipgloss.NewStyle().Foreground(m.pal.BarFill).Render(strings.Repeat("█", fill)) +
		lipgloss.NewStyle().Foreground(m.pal.BarEmpty).Render(strings.Repeat("·", width-fill))
}

func max0(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func (m model) renderDashboard() string {
	p := m.snap.State
	var s strings.Builder
	s.WriteString(m.st.title.Render("CREATOR") + "\n")
	fmt.Fprintf(&s, "%s  (%s)\n", p.PlayerName, p.Equipment)
	fmt.Fprintf(&s, "Energy  %s %3d\n", m.bar(p.Energy, m.b.MaxEnergy), p.Energy)
	fmt.Fprintf(&s, "Rep     %s %3d\n", m.bar(p.Reputation, m.b.MaxReputation), p.Reputation)
	fmt.Fprintf(&s, "Hype    %s %3d\n", m.bar(p.Hype, m.b.MaxHype), p.Hype)
	fmt.Fprintf(&s, "Level %d  %s  SP %d\n", p.Level, m.bar(int(p.XPProgress()*100), 100), p.SkillPoints)
	fmt.Fprintf(&s, "Editing skill %.1f\n", p.EditingSkill)
	stats := m.st.panel.Width(44).Render(s.String())

	var c strings.Builder
	c.WriteString(m.st.title.Render("CHANNEL") + "\n")
	fmt.Fprintf(&c, "Money        %s\n", p.Money)
	fmt.Fprintf(&c, "Subscribers  %s\n", humanize.Comma(int64(p.Subscribers)))
	fmt.Fprintf(&c, "Total views  %s\n", humanize.Comma(p.TotalViews))
	fmt.Fprintf(&c, "Videos       %d\n", len(p.Videos))
	channel := m.st.panel.Width(32).Render(c.String())

	var a strings.Builder
	a.WriteString(m.st.title.Render("STUDIO") + "\n")
	status := "Idle"
	if m.snap.Status != "" {
		status = m.snap.Status
	}
	fmt.Fprintf(&a, "Status: %s\n", status)
	genres := engine.ListGenres()
	fmt.Fprintf(&a, "Genre: %s   Vibe: %s\n", genres[m.genreIdx%len(genres)], engine.Vibes[m.vibeIdx%len(engine.Vibes)])
	if f := m.snap.Footage; f != nil {
		fmt.Fprintf(&a, "Footage ready: %s, potential %d%%\n", f.Genre, f.Potential)
	} else {
		a.WriteString(m.st.muted.Render("No footage. Record something!") + "\n")
	}
	if ct := p.Contract; ct != nil {
		fmt.Fprintf(&a, "Contract: %s (%s) due day %d\n", ct.Description, ct.Payout, ct.DeadlineDay)
	}
	if o := m.snap.Offer; o != nil {
		a.WriteString(m.st.key.Render("Offer from "+o.Sponsor) + "\n")
		fmt.Fprintf(&a, "%s Pays %s by day %d. [o] accept [x] decline\n", o.Description, o.Payout, o.DeadlineDay)
	}
	studio := m.st.panel.Width(78).Render(a.String())

	top := lipgloss.JoinHorizontal(lipgloss.Top, stats, channel)
	return lipgloss.JoinVertical(lipgloss.Left, top, studio, m.renderRecent(3))
}

func (m model) renderRecent(n int) string {
	vs := m.snap.State.Videos
	if len(vs) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.st.title.Render("RECENT") + "\n")
	for i := len(vs) - 1; i >= 0 && i >= len(vs)-n; i-- {
		v := vs[i]
		fmt.Fprintf(&b, "%s %-40s %8s views  +%d/s\n", m.thumb(v), trim(v.Title, 40), humanize.Comma(v.Views), v.Velocity)
	}
	return b.String()
}

func (m model) thumb(v engine.Video) string {
	return lipgloss.NewStyle().Foreground(visualColor(v.VisualTag, m.pal)).Render("■■")
}

func trim(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func (m model) renderContent() string {
	vs := m.snap.State.Videos
	if len(vs) == 0 {
		return m.st.panel.Render(m.st.muted.Render("No videos yet. Record and edit footage to publish."))
	}
	var b strings.Builder
	b.WriteString(m.st.title.Render(fmt.Sprintf("CONTENT (%d)", len(vs))) + "\n")
	sel := clampIndex(m.videoIdx, len(vs))
	for i := 0; i < len(vs); i++ {
		v := vs[len(vs)-1-i]
		line := fmt.Sprintf("%s %-36s %-12s Q%3d %9s views  👍%s 👎%s  %s",
			m.thumb(v), trim(v.Title, 36), v.Genre, v.Quality,
			humanize.Comma(v.Views), humanize.Comma(v.Likes), humanize.Comma(v.Dislikes), v.Earnings)
		if i == sel {
			line = m.st.key.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m model) renderComments() string {
	v, ok := m.selectedVideo()
	if !ok {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.st.title.Render(v.Title) + "\n")
	if v.Description != "" {
		b.WriteString(m.st.muted.Render(v.Description) + "\n")
	}
	b.WriteString("\n")
	for i, c := range v.Comments {
		heart := "  "
		if c.Hearted {
			heart = lipgloss.NewStyle().Foreground(m.pal.AccentAlt).Render("♥ ")
		}
		cursor := "  "
		if i == clampIndex(m.commentIdx, len(v.Comments)) {
			cursor = m.st.key.Render("> ")
		}
		user := lipgloss.NewStyle().Foreground(sentimentColor(c.Sentiment, m.pal)).Render("@" + c.User)
		fmt.Fprintf(&b, "%s%s%s: %s\n", cursor, heart, user, c.Text)
	}
	return m.st.panel.Width(78).Render(b.String())
}

func (m model) renderShop() string {
	items := m.shopItems()
	p := m.snap.State
	var b strings.Builder
	b.WriteString(m.st.title.Render("SHOP") + "  " + m.st.muted.Render(fmt.Sprintf("%s • %d SP", p.Money, p.SkillPoints)) + "\n")
	if len(items) == 0 {
		b.WriteString(m.st.muted.Render("You own everything."))
		return b.String()
	}
	sel := clampIndex(m.shopIdx, len(items))
	for i, it := range items {
		cursor := "  "
		if i == sel {
			cursor = m.st.key.Render("> ")
		}
		fmt.Fprintf(&b, "%s%-32s %10s  %s\n", cursor, it.label, it.price, m.st.muted.Render(it.detail))
	}
	return m.st.panel.Width(90).Render(b.String())
}

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// sparkline scales values onto block glyphs between their min and max.
func sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	out := make([]rune, len(values))
	for i, v := range values {
		idx := 0
		if hi > lo {
			idx = int((v - lo) / (hi - lo) * float64(len(sparkRunes)-1))
		}
		out[i] = sparkRunes[idx]
	}
	return string(out)
}

func (m model) renderAnalytics() string {
	p := m.snap.State
	hist := p.SubHistory
	if len(hist) > 60 {
		hist = hist[len(hist)-60:]
	}
	vals := make([]float64, len(hist))
	for i, h := range hist {
		vals[i] = h.Count
	}
	var b strings.Builder
	b.WriteString(m.st.title.Render("SUBSCRIBERS BY DAY") + "\n")
	b.WriteString(lipgloss.NewStyle().Foreground(m.pal.BarFill).Render(sparkline(vals)) + "\n")
	if len(hist) > 0 {
		fmt.Fprintf(&b, "%s day %d → day %d\n\n", m.st.muted.Render("range"), hist[0].Day, hist[len(hist)-1].Day)
	}
	b.WriteString(m.st.title.Render("LEADERBOARD") + "\n")
	for i, row := range p.Leaderboard() {
		name := row.Name
		if row.Player {
			name = m.st.key.Render(name + " (you)")
		}
		fmt.Fprintf(&b, "%d. %-28s %s\n", i+1, name, humanize.Comma(int64(row.Subscribers)))
	}
	return m.st.panel.Width(70).Render(b.String())
}

func (m model) renderLog() string {
	entries := m.s.Log()
	h := m.height - 8
	if h < 5 {
		h = 15
	}
	end := len(entries) - m.logScroll
	if end < 0 {
		end = 0
	}
	start := max(0, end-h)
	var b strings.Builder
	b.WriteString(m.st.title.Render("GAME LOG") + "\n")
	if len(entries) == 0 {
		b.WriteString(m.st.muted.Render("(no entries)"))
	}
	for _, n := range entries[start:end] {
		stamp := m.st.muted.Render(fmt.Sprintf("D%-3d %s", n.Day, n.At.Format("15:04:05")))
		fmt.Fprintf(&b, "%s %s\n", stamp, lipgloss.NewStyle().Foreground(noticeColor(n.Kind, m.pal)).Render(n.Text))
	}
	return b.String()
}

func (m model) renderMarkdown(md string) string {
	if m.md == nil {
		return md
	}
	out, err := m.md.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func (m model) renderEvent() string {
	ev := m.snap.Event
	var b strings.Builder
	b.WriteString(m.st.title.Render("EVENT: "+ev.Title) + "\n")
	b.WriteString(m.renderMarkdown(ev.Description) + "\n\n")
	for i, c := range ev.Choices {
		fmt.Fprintf(&b, "%s %s\n", m.st.key.Render(fmt.Sprintf("[%d]", i+1)), c.Label)
	}
	if m.snap.Status != "" {
		b.WriteString("\n" + m.st.muted.Render(m.snap.Status))
	}
	return m.centre(m.st.modal.Width(64).Render(b.String()))
}

func (m model) renderSkillCheck() string {
	var b strings.Builder
	b.WriteString(m.st.title.Render("RECORDING: "+string(m.snap.RecordingGenre)) + "\n\n")
	b.WriteString(m.check.render() + "\n\n")
	fmt.Fprintf(&b, "Score if stopped now: %d\n", skillScore(m.check.pos))
	b.WriteString(m.st.muted.Render("[Space] nail the take  [Esc] cancel"))
	return m.centre(m.st.modal.Render(b.String()))
}

func (m model) centre(s string) string {
	if m.width <= 0 || m.height <= 0 {
		return s
	}
	return lipgloss.Place(m.width, max(lipgloss.Height(s), m.height-6), lipgloss.Center, lipgloss.Center, s)
}

const helpMarkdown = `# How to play

Grow your channel from a smartphone vlog to the top of the leaderboard.

* **Record** footage (skill check: stop the marker in the centre), then **edit** it to publish.
* Videos earn views every second but decay with age. Trending genres get double views.
* **Work** freelance when broke, **sleep** to end the day and refill energy.
* Sponsors offer contracts: publish the right genre at the required quality before the deadline.
* Level up to earn skill points and unlock perks in the shop.
* Press **p** to let autoplay run your career.
`

func (m model) renderHelp() string {
	return m.renderMarkdown(helpMarkdown) + "\n" + m.st.muted.Render("streamer-sim "+m.version)
}
