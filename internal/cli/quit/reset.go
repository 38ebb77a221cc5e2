package quit

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/julianstephens/quitnow/internal/cli"
)

type ResetCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

// stdin is swapped in tests
var stdin io.Reader = os.Stdin

func (c *ResetCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		ctx.Println("⚠️  This erases your quit moment and today's missions. Settings and journal are kept.")
		ctx.Printf("Continue? [y/N]: ")
		response, _ := bufio.NewReader(stdin).ReadString('\n')
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			ctx.Println("Reset cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	controller, err := ctx.Controller()
	if err != nil {
		return err
	}
	if _, err := controller.Reset(); err != nil {
		return err
	}
	ctx.Println("Progress reset. Run `quitnow onboard` to start again.")
	return nil
}
