package settings

import (
	"fmt"
	"slices"

	"github.com/julianstephens/quitnow/internal/cli"
	"github.com/julianstephens/quitnow/internal/models"
)

type SettingsCmd struct {
	Show  SettingsShowCmd  `cmd:"" help:"Show current settings." default:"1"`
	Set   SettingsSetCmd   `cmd:"" help:"Change a setting."`
	Reset SettingsResetCmd `cmd:"" help:"Restore default settings."`
}

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	values := models.SettingsToMap(settings)
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	ctx.Println("Current Settings:")
	for _, k := range keys {
		ctx.Printf("  %-22s %s\n", k+":", values[k])
	}
	return nil
}

type SettingsSetCmd struct {
	Key   string `arg:"" help:"Setting name (notifications_enabled, timezone, mission_catalog, currency_symbol)."`
	Value string `arg:"" help:"New value."`
}

func (c *SettingsSetCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if err := models.SetSettingValue(&settings, c.Key, c.Value); err != nil {
		return err
	}

	controller, err := ctx.Controller()
	if err != nil {
		return err
	}
	if _, err := controller.UpdateSettings(settings, ctx.Now()); err != nil {
		return err
	}
	ctx.Printf("Set %s = %s\n", c.Key, c.Value)
	return nil
}

type SettingsResetCmd struct{}

func (c *SettingsResetCmd) Run(ctx *cli.Context) error {
	controller, err := ctx.Controller()
	if err != nil {
		return err
	}
	if _, err := controller.UpdateSettings(models.DefaultSettings(), ctx.Now()); err != nil {
		return err
	}
	ctx.Println("Settings restored to defaults.")
	return nil
}
