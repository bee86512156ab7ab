package constants

const (
	AppName           = "lernplan"
	DefaultConfigDir  = "~/.config/lernplan"
	DefaultConfigPath = "~/.config/lernplan/lernplan.db"
	ConfigFileName    = "config"
	EnvPrefix         = "LERNPLAN"
	Version           = "v0.3.0"

	// EnvDBConnection holds a PostgreSQL connection string that may carry a password
	EnvDBConnection = "LERNPLAN_DB_CONNECTION"

	// DefaultKeyringUser is the keyring account holding the PostgreSQL connection string
	DefaultKeyringUser = "database-connection"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// ScheduleFormat is the short display format for scheduled study days, e.g. "Jan 5"
	ScheduleFormat = "Jan 2"

	// NotScheduled is shown in place of a date before the plan has been started
	NotScheduled = "Not Scheduled"

	// DaysPerWeekStride is the number of calendar days between the same day of consecutive weeks.
	// Five study days plus a weekend gap.
	DaysPerWeekStride = 7
)

const (
	// Storage keys
	KeyProgressDocument = "germanLearningData"
	KeyDarkMode         = "darkMode"

	// Storage drivers
	DriverSQLite   = "sqlite"
	DriverJSON     = "json"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "lernplan-"
	BackupFileSuffix = ".db"
)
