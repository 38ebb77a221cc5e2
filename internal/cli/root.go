package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/julianstephens/quitnow/internal/app"
	"github.com/julianstephens/quitnow/internal/backup"
	"github.com/julianstephens/quitnow/internal/logger"
	"github.com/julianstephens/quitnow/internal/models"
	"github.com/julianstephens/quitnow/internal/notifier"
	"github.com/julianstephens/quitnow/internal/storage"
	"github.com/julianstephens/quitnow/internal/storage/sqlite"
)

type Context struct {
	Store storage.Provider
	Clock app.Clock
	Out   io.Writer
	// Sender overrides tray delivery; nil means the desktop tray.
	Sender notifier.Sender
}

// NewContext wires a provider to the system clock and stdout
func NewContext(store storage.Provider) *Context {
	return &Context{
		Store: store,
		Clock: app.SystemClock{},
		Out:   os.Stdout,
	}
}

func (c *Context) Now() time.Time {
	if c.Clock == nil {
		return time.Now()
	}
	return c.Clock.Now()
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Settings returns the persisted settings or defaults
func (c *Context) Settings() (models.Settings, error) {
	return storage.GetSettings(c.Store)
}

// Scheduler returns a notification scheduler honouring the settings.
func (c *Context) Scheduler() (*notifier.Scheduler, error) {
	settings, err := c.Settings()
	if err != nil {
		return nil, err
	}
	var sender notifier.Sender = notifier.New()
	if c.Sender != nil {
		sender = c.Sender
	}
	return notifier.NewScheduler(sender, settings.NotificationsEnabled), nil
}

// Controller builds the application controller over the loaded store
func (c *Context) Controller(opts ...app.Option) (*app.Controller, error) {
	return app.New(c.Store, opts...)
}

// LocalPath returns the storage file path for file-backed stores.
func (c *Context) LocalPath() (string, bool) {
	switch c.Store.(type) {
	case *sqlite.Store, *storage.JSONStore:
		return c.Store.GetConfigPath(), true
	default:
		return "", false
	}
}

// BackupManager returns a manager for file-backed stores
func (c *Context) BackupManager() (*backup.Manager, error) {
	path, ok := c.LocalPath()
	if !ok {
		return nil, fmt.Errorf("backups are only available for local storage (current backend: %s)", c.Store.GetConfigPath())
	}
	return backup.NewManager(path), nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr, err := c.BackupManager()
	if err != nil {
		logger.Debug("Skipping automatic backup", "reason", err)
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
