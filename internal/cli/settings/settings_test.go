package settings

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/quitnow/internal/cli"
	"github.com/julianstephens/quitnow/internal/constants"
	"github.com/julianstephens/quitnow/internal/storage"
	"github.com/julianstephens/quitnow/internal/storage/sqlite"
)

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	var out bytes.Buffer
	ctx := &cli.Context{
		Store: store,
		Clock: fixedClock(time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)),
		Out:   &out,
	}
	return ctx, &out
}

func TestSettingsShow(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&SettingsShowCmd{}).Run(ctx); err != nil {
		t.Fatalf("settings show failed: %v", err)
	}
	for _, want := range []string{constants.SettingTimezone, constants.SettingMissionCatalog, constants.DefaultCurrencySymbol} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestSettingsSet(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr bool
		check   func(t *testing.T, ctx *cli.Context)
	}{
		{
			name:  "enable notifications",
			key:   constants.SettingNotificationsEnabled,
			value: "true",
			check: func(t *testing.T, ctx *cli.Context) {
				s, _ := storage.GetSettings(ctx.Store)
				if !s.NotificationsEnabled {
					t.Error("notifications should be enabled")
				}
			},
		},
		{
			name:  "timezone",
			key:   constants.SettingTimezone,
			value: "America/Sao_Paulo",
			check: func(t *testing.T, ctx *cli.Context) {
				s, _ := storage.GetSettings(ctx.Store)
				if s.Timezone != "America/Sao_Paulo" {
					t.Errorf("timezone = %q", s.Timezone)
				}
			},
		},
		{
			name:  "catalog",
			key:   constants.SettingMissionCatalog,
			value: constants.CatalogClassic,
			check: func(t *testing.T, ctx *cli.Context) {
				s, _ := storage.GetSettings(ctx.Store)
				if s.MissionCatalog != constants.CatalogClassic {
					t.Errorf("catalog = %q", s.MissionCatalog)
				}
			},
		},
		{name: "invalid bool", key: constants.SettingNotificationsEnabled, value: "maybe", wantErr: true},
		{name: "invalid timezone", key: constants.SettingTimezone, value: "Mars/Olympus", wantErr: true},
		{name: "unknown catalog", key: constants.SettingMissionCatalog, value: "extreme", wantErr: true},
		{name: "currency too long", key: constants.SettingCurrencySymbol, value: "EUROS", wantErr: true},
		{name: "unknown key", key: "day_start", value: "08:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := setupTestDB(t)
			err := (&SettingsSetCmd{Key: tt.key, Value: tt.value}).Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, ctx)
			}
		})
	}
}

func TestSettingsReset(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&SettingsSetCmd{Key: constants.SettingCurrencySymbol, Value: "$"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&SettingsResetCmd{}).Run(ctx); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	s, err := storage.GetSettings(ctx.Store)
	if err != nil {
		t.Fatal(err)
	}
	if s.CurrencySymbol != constants.DefaultCurrencySymbol {
		t.Errorf("currency = %q, want default", s.CurrencySymbol)
	}
	if !strings.Contains(out.String(), "defaults") {
		t.Errorf("unexpected output: %q", out.String())
	}
}
