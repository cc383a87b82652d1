package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	skillFrame = 40 * time.Millisecond
	skillSpeed = 4
	skillWidth = 40
)

type skillFrameMsg struct{ run int }

// skillCheck is the recording minigame: a marker sweeps the bar and the
// score is how close to the centre it is stopped.
type skillCheck struct {
	run int
	pos int
	dir int
}

func (k *skillCheck) reset() {
	k.run++
	k.pos = 0
	k.dir = 1
}

func (k *skillCheck) advance() {
	k.pos += k.dir * skillSpeed
	if k.pos >= 100 {
		k.pos, k.dir = 100, -1
	} else if k.pos <= 0 {
		k.pos, k.dir = 0, 1
	}
}

func (k skillCheck) frame() tea.Cmd {
	run := k.run
	return tea.Tick(skillFrame, func(time.Time) tea.Msg { return skillFrameMsg{run: run} })
}

// skillScore maps a marker position in [0,100] to a 0-100 score.
func skillScore(pos int) int {
	d := pos - 50
	if d < 0 {
		d = -d
	}
	score := 100 - 2*d
	if score < 0 {
		return 0
	}
	return score
}

func (k skillCheck) render() string {
	cells := []rune(strings.Repeat("─", skillWidth))
	lo, hi := skillWidth*2/5, skillWidth*3/5
	for i := lo; i <= hi; i++ {
		cells[i] = '═'
	}
	at := k.pos * (skillWidth - 1) / 100
	cells[at] = '▼'
	return "[" + string(cells) + "]"
}
