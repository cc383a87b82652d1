package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DaanHessen/streamer-sim/internal/session"
	"github.com/DaanHessen/streamer-sim/internal/util"
)

// Run boots the TUI program and blocks until it exits.
func Run(ctx context.Context, s *session.Session, cfg util.Config) error {
	m := initialModel(s, cfg)
	program := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
