package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

// NotificationCategory identifies which message table a scheduled reminder draws from
type NotificationCategory string

// Mood represents a journal mood selection
type Mood string

const (
	AppName            = "quitnow"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/quitnow/quitnow.db"
	Version            = "v0.3.0"

	// EnvPrefix is prepended to every environment variable the app reads
	EnvPrefix          = "QUITNOW_"
	EnvDBConnection    = EnvPrefix + "DB_CONNECTION"
	EnvConfig          = EnvPrefix + "CONFIG"
	EnvRedisPassword   = EnvPrefix + "REDIS_PASSWORD"
	EnvMigrationsPath  = EnvPrefix + "MIGRATIONS_PATH"
	EnvTrayLockfileDir = EnvPrefix + "TRAY_LOCKFILE_DIR"

	// DateFormat is the calendar date format used for persisted dates (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Record keys in the persistence adapter
	KeyProfile      = "quitnow_user"
	KeyMissions     = "quitnow_missions"
	KeyMissionsDate = "quitnow_missions_date"
	KeySettings     = "quitnow_settings"
	KeyJournal      = "quitnow_journal"

	// Progress constants
	CigarettesPerPack      = 20
	MinutesOfLifePerCig    = 11
	MinutesPerDay          = 1440
	DaysPerYear            = 365
	DaysPerMonthEstimate   = 30
	QuitMomentGraceOffset  = time.Hour
	StatsTickInterval      = time.Second
	DefaultOnboardingSteps = 6

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "quitnow-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "quitnow-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.quitnow"
	TrayExecutablePrefix   = "quitnow-tray"

	NotifyMorning   NotificationCategory = "morning"
	NotifyAfternoon NotificationCategory = "afternoon"
	NotifyEvening   NotificationCategory = "evening"

	// Breathing exercise phase lengths
	BreathInhale = 4 * time.Second
	BreathHold   = 2 * time.Second
	BreathExhale = 4 * time.Second

	// Journal moods
	MoodGreat Mood = "great"
	MoodGood  Mood = "good"
	MoodOkay  Mood = "okay"
	MoodBad   Mood = "bad"
	MoodAwful Mood = "awful"

	// Mission catalog variants
	CatalogDefault = "default"
	CatalogClassic = "classic"
)

// Session States
const (
	StateDashboard SessionState = iota
	StateMissions
	StateJournal
	StateBreathing
	StateSettings
	StateEmergency
	StateOnboarding
	StateAddJournal
	StateEditSettings
	StateConfirmReset
)

// Moods lists the journal moods in selector order
var Moods = []Mood{MoodGreat, MoodGood, MoodOkay, MoodBad, MoodAwful}
