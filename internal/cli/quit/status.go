package quit

import (
	"encoding/json"

	"github.com/julianstephens/quitnow/internal/app"
	"github.com/julianstephens/quitnow/internal/cli"
	"github.com/julianstephens/quitnow/internal/missions"
	"github.com/julianstephens/quitnow/internal/utils"
)

type StatusCmd struct {
	JSON bool `help:"Print the statistics as JSON."`
}

type statusJSON struct {
	QuitMoment        string  `json:"quit_moment"`
	Days              int     `json:"days"`
	Hours             int     `json:"hours"`
	Minutes           int     `json:"minutes"`
	CigarettesAvoided int     `json:"cigarettes_avoided"`
	MoneySaved        float64 `json:"money_saved"`
	LifeReclaimedHrs  int     `json:"life_reclaimed_hours"`
	MissionsDone      int     `json:"missions_done"`
	MissionsTotal     int     `json:"missions_total"`
}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	controller, err := ctx.Controller()
	if err != nil {
		return err
	}
	state, err := controller.Start(ctx.Now())
	if err != nil {
		return err
	}
	if state.Phase != app.PhaseMain {
		ctx.Println("No quit moment recorded yet. Run `quitnow onboard` to start.")
		return nil
	}

	s := state.Stats
	done, total := missions.Progress(state.Missions)

	if c.JSON {
		out, err := json.MarshalIndent(statusJSON{
			QuitMoment:        state.Profile.QuitMoment.Format("2006-01-02T15:04:05Z07:00"),
			Days:              s.Days,
			Hours:             s.Hours,
			Minutes:           s.Minutes,
			CigarettesAvoided: s.CigarettesAvoided,
			MoneySaved:        s.MoneySaved,
			LifeReclaimedHrs:  s.LifeReclaimedHours(),
			MissionsDone:      done,
			MissionsTotal:     total,
		}, "", "  ")
		if err != nil {
			return err
		}
		ctx.Println(string(out))
		return nil
	}

	ctx.Printf("Smoke-free for %d days, %d hours, %d minutes\n\n", s.Days, s.Hours, s.Minutes)
	ctx.Printf("  Cigarettes avoided: %d\n", s.CigarettesAvoided)
	ctx.Printf("  Money saved:        %s\n", utils.FormatMoney(state.Settings.CurrencySymbol, s.MoneySaved))
	ctx.Printf("  Life reclaimed:     %d hours\n", s.LifeReclaimedHours())
	ctx.Printf("  Today's missions:   %d/%d done\n", done, total)
	return nil
}
