package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/quitnow/internal/app"
	"github.com/julianstephens/quitnow/internal/cli"
	"github.com/julianstephens/quitnow/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()

	scheduler, err := ctx.Scheduler()
	if err != nil {
		return err
	}
	controller, err := ctx.Controller(app.WithNotifier(scheduler))
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewModel(controller, ctx.Clock), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui exited with error: %w", err)
	}
	return nil
}
