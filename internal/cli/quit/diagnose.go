package quit

import (
	"github.com/julianstephens/quitnow/internal/cli"
	"github.com/julianstephens/quitnow/internal/models"
	"github.com/julianstephens/quitnow/internal/progress"
	"github.com/julianstephens/quitnow/internal/utils"
)

type DiagnoseCmd struct {
	Cigs  int     `help:"Cigarettes smoked per day." required:""`
	Years float64 `help:"Years smoking." required:""`
	Price float64 `help:"Price of one pack." required:""`
}

func (c *DiagnoseCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	d := progress.ComputeOnboardingDiagnostics(c.Cigs, c.Years, c.Price)
	printDiagnostics(ctx, settings.CurrencySymbol, d, progress.EstimateSpending(c.Cigs, c.Price))
	return nil
}

func printDiagnostics(ctx *cli.Context, currency string, d models.Diagnostics, spend models.SpendingEstimate) {
	ctx.Println("Your smoking so far:")
	ctx.Printf("  Cigarettes smoked:  %d\n", d.TotalCigarettesLifetime)
	ctx.Printf("  Life lost:          %d days\n", d.TimeLostDays)
	ctx.Printf("  Money spent:        %s\n", utils.FormatMoney(currency, d.MoneySpentLifetime))
	ctx.Println("\nAt your current rate:")
	ctx.Printf("  Per month:          %s\n", utils.FormatMoney(currency, spend.Monthly))
	ctx.Printf("  Per year:           %s\n", utils.FormatMoney(currency, spend.Yearly))
}
