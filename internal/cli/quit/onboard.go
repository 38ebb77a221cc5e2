package quit

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/quitnow/internal/cli"
	"github.com/julianstephens/quitnow/internal/onboarding"
	"github.com/julianstephens/quitnow/internal/progress"
	"github.com/julianstephens/quitnow/internal/utils"
)

type OnboardCmd struct {
	Cigs  string `help:"Cigarettes smoked per day." placeholder:"N"`
	Years string `help:"Years smoking." placeholder:"N"`
	Price string `help:"Price of one pack." placeholder:"X"`
	Force bool   `help:"Start over even if a quit moment is already recorded."`
}

// runForm is swapped in tests
var runForm = func(form *huh.Form) error { return form.Run() }

func (c *OnboardCmd) Run(ctx *cli.Context) error {
	controller, err := ctx.Controller()
	if err != nil {
		return err
	}
	state, err := controller.Start(ctx.Now())
	if err != nil {
		return err
	}
	started := state.Profile != nil && state.Profile.HasQuit()
	if started && !c.Force {
		ctx.Printf("Already smoke-free since %s. Use --force to start over.\n", state.Profile.QuitMoment.Format("2006-01-02 15:04"))
		return nil
	}

	flow := controller.NewOnboarding()
	given := 0
	for _, v := range []string{c.Cigs, c.Years, c.Price} {
		if v != "" {
			given++
		}
	}
	switch given {
	case 0:
		if err := runWizard(flow); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				ctx.Println("Onboarding cancelled.")
				return nil
			}
			return err
		}
	case 3:
		if err := applyAnswers(flow, c.Cigs, c.Years, c.Price); err != nil {
			return err
		}
	default:
		return fmt.Errorf("--cigs, --years and --price must be given together")
	}

	for !flow.IsLast() {
		flow.Next()
	}

	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	if d := flow.Diagnostics(); d != nil {
		printDiagnostics(ctx, settings.CurrencySymbol, *d, flow.SpendingEstimate())
	}

	// starting over is a full reset: the old checklist goes with the old profile
	if started {
		ctx.PerformAutomaticBackup()
		if _, err := controller.Reset(); err != nil {
			return err
		}
	}

	state, err = controller.CompleteOnboarding(flow, ctx.Now())
	if err != nil {
		return err
	}
	ctx.Printf("\nYour quit moment is %s. Every minute counts from here.\n", state.Profile.QuitMoment.Format("2006-01-02 15:04"))
	daily := progress.PricePerCigarette(state.Profile.PackPrice) * float64(state.Profile.CigarettesPerDay)
	ctx.Printf("Not smoking saves you %s a day.\n", utils.FormatMoney(settings.CurrencySymbol, daily))
	return nil
}

func applyAnswers(flow *onboarding.Flow, cigs, years, price string) error {
	if err := flow.SetCigarettesPerDay(cigs); err != nil {
		return err
	}
	if err := flow.SetYearsSmoking(years); err != nil {
		return err
	}
	return flow.SetPackPrice(price)
}

func runWizard(flow *onboarding.Flow) error {
	p := flow.Profile()
	cigs := fmt.Sprint(p.CigarettesPerDay)
	years := fmt.Sprint(p.YearsSmoking)
	price := fmt.Sprintf("%.2f", p.PackPrice)
	committed := true

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to quitnow").
				Description("A few questions about your habit, then your smoke-free clock starts."),
		),
		huh.NewGroup(
			huh.NewInput().Title("How many cigarettes a day?").Value(&cigs).Validate(flow.SetCigarettesPerDay),
			huh.NewInput().Title("For how many years?").Value(&years).Validate(flow.SetYearsSmoking),
		),
		huh.NewGroup(
			huh.NewInput().Title("Price of one pack").Value(&price).Validate(flow.SetPackPrice),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Ready to quit now?").
				Description("Your quit moment is recorded as one hour ago.").
				Affirmative("I'm ready").
				Negative("Not yet").
				Value(&committed),
		),
	)
	if err := runForm(form); err != nil {
		return err
	}
	if !committed {
		return huh.ErrUserAborted
	}
	return applyAnswers(flow, cigs, years, price)
}
