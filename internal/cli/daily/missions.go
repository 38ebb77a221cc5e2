package daily

import (
	"fmt"

	"github.com/julianstephens/quitnow/internal/app"
	"github.com/julianstephens/quitnow/internal/cli"
	"github.com/julianstephens/quitnow/internal/missions"
)

type MissionsCmd struct {
	List   MissionsListCmd   `cmd:"" help:"Show today's missions." default:"1"`
	Toggle MissionsToggleCmd `cmd:"" help:"Mark a mission done or not done."`
}

type MissionsListCmd struct{}

func (c *MissionsListCmd) Run(ctx *cli.Context) error {
	state, err := startMain(ctx)
	if err != nil || state == nil {
		return err
	}
	printMissions(ctx, *state)
	return nil
}

type MissionsToggleCmd struct {
	ID int `arg:"" help:"Mission number."`
}

func (c *MissionsToggleCmd) Run(ctx *cli.Context) error {
	controller, err := ctx.Controller()
	if err != nil {
		return err
	}
	state, err := controller.Start(ctx.Now())
	if err != nil {
		return err
	}
	if state.Phase != app.PhaseMain {
		ctx.Println(notStarted)
		return nil
	}
	if state.Missions.Find(c.ID) < 0 {
		return fmt.Errorf("no mission %d today", c.ID)
	}

	state, err = controller.ToggleMission(c.ID, ctx.Now())
	if err != nil {
		return err
	}
	printMissions(ctx, state)
	return nil
}

const notStarted = "No quit moment recorded yet. Run `quitnow onboard` to start."

// startMain returns nil state when onboarding is still pending
func startMain(ctx *cli.Context) (*app.State, error) {
	controller, err := ctx.Controller()
	if err != nil {
		return nil, err
	}
	state, err := controller.Start(ctx.Now())
	if err != nil {
		return nil, err
	}
	if state.Phase != app.PhaseMain {
		ctx.Println(notStarted)
		return nil, nil
	}
	return &state, nil
}

func printMissions(ctx *cli.Context, state app.State) {
	done, total := missions.Progress(state.Missions)
	ctx.Printf("Missions for %s (%d/%d done)\n\n", state.Missions.LastResetDate, done, total)
	for _, m := range state.Missions.Missions {
		mark := "[ ]"
		if m.Completed {
			mark = "[x]"
		}
		ctx.Printf("  %s %d. %s\n", mark, m.ID, m.Title)
	}
}
