package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rpupo63/portfolio-site/admin"
	"github.com/rpupo63/portfolio-site/session"
	"github.com/rs/zerolog/log"
)

// Run shows the panel until the user quits. Controller changes redraw it,
// and sign ins from other processes unlock it without a restart.
func Run(ctx context.Context, ctrl *admin.Controller, sess *session.Session) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(New(ctx, ctrl), tea.WithAltScreen(), tea.WithContext(ctx))

	ctrl.OnChange(func() { program.Send(ChangedMsg{}) })
	defer ctrl.OnChange(nil)
	unsubscribe := sess.Subscribe(func(*session.Auth) { program.Send(SessionMsg{}) })
	defer unsubscribe()

	go func() {
		if err := sess.Watch(ctx); err != nil {
			log.Warn().Err(err).Msg("Session watch stopped")
		}
	}()

	_, err := program.Run()
	return err
}
