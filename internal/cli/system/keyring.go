package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/quitnow/internal/cli"
	"github.com/julianstephens/quitnow/internal/keyring"
	"github.com/julianstephens/quitnow/internal/storage/postgres"
	"github.com/julianstephens/quitnow/internal/storage/redis"
)

type ConfigCmd struct {
	SetConnection    KeyringSetCmd      `cmd:"" help:"Store a PostgreSQL or Redis connection string in the OS keyring."`
	ShowConnection   KeyringGetCmd      `cmd:"" help:"Show the stored connection string with secrets masked."`
	DeleteConnection KeyringDeleteCmd   `cmd:"" help:"Remove the stored connection string."`
	SetRedisPassword KeyringRedisPwdCmd `cmd:"" help:"Store the Redis password in the OS keyring."`
	Status           KeyringStatusCmd   `cmd:"" help:"Check OS keyring availability."`
}

// KeyringSetCmd stores storage connection credentials in the OS keyring
type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"postgres:// or redis:// connection string."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	if !keyring.IsRemoteConnection(cmd.ConnectionString) {
		return keyring.ErrUnsupportedConnection
	}

	if redis.IsRedisURL(cmd.ConnectionString) {
		if _, err := redis.ParseOptions(cmd.ConnectionString); err != nil {
			return fmt.Errorf("invalid connection string: %w", err)
		}
	} else if _, err := postgres.ValidateConnString(cmd.ConnectionString); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		ctx.Println("⚠️  Warning: Connection string contains embedded credentials.")
		ctx.Println("   It will be stored as-is in the encrypted OS keyring.")
	}

	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		return err
	}
	ctx.Println("✓ Connection string stored successfully in OS keyring")
	ctx.Println("  You can now use quitnow without the --config flag")
	return nil
}

// KeyringGetCmd shows the stored connection string
type KeyringGetCmd struct{}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	connStr, err := keyring.GetConnectionString()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring. Use 'quitnow config set-connection' to store one")
		}
		return fmt.Errorf("failed to retrieve connection string from keyring: %w", err)
	}
	ctx.Println(maskPassword(connStr))
	return nil
}

// KeyringDeleteCmd removes the stored connection string
type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return err
	}
	ctx.Println("✓ Connection string deleted from OS keyring")
	return nil
}

// KeyringRedisPwdCmd stores the Redis password
type KeyringRedisPwdCmd struct {
	Password string `arg:"" help:"Redis AUTH password."`
}

func (cmd *KeyringRedisPwdCmd) Run(ctx *cli.Context) error {
	if err := keyring.Set(keyring.RedisPasswordEntry, cmd.Password); err != nil {
		return err
	}
	ctx.Println("✓ Redis password stored in OS keyring")
	return nil
}

// KeyringStatusCmd checks the availability of the OS keyring
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		ctx.Println("❌ OS keyring is not available on this system")
		return errors.New("keyring unavailable")
	}
	ctx.Println("✓ OS keyring is available")

	_, err := keyring.GetConnectionString()
	switch {
	case err == nil:
		ctx.Println("✓ Connection string is stored in keyring")
	case errors.Is(err, keyring.ErrNotFound):
		ctx.Println("ℹ No connection string stored in keyring")
	}
	return nil
}

// maskPassword hides passwords in URL and key=value connection strings
func maskPassword(connStr string) string {
	if keyring.IsRemoteConnection(connStr) {
		idx := strings.Index(connStr, "://") + 3
		remaining := connStr[idx:]
		if at := strings.LastIndex(remaining, "@"); at != -1 {
			userInfo := remaining[:at]
			if colon := strings.Index(userInfo, ":"); colon != -1 {
				return connStr[:idx] + userInfo[:colon] + ":****" + remaining[at:]
			}
		}
		return connStr
	}

	if strings.Contains(connStr, "password=") {
		parts := strings.Fields(connStr)
		for i, part := range parts {
			if strings.HasPrefix(part, "password=") {
				parts[i] = "password=****"
			}
		}
		return strings.Join(parts, " ")
	}
	return connStr
}
