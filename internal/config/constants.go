package config

const (
	// Index site defaults
	DefaultDbreeBaseURI = "https://dbree.org"

	// HTTP client defaults
	DefaultHTTPTimeoutSecs  = 30
	DefaultHTTPMaxRedirects = 5
	DefaultHTTPUserAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// Discord defaults
	DefaultDiscordUserAgent = "dbreewatch/1.0 (+https://github.com/aleister1102/dbreewatch)"

	// Storage defaults
	StorageBackendLevelDB = "leveldb"
	StorageBackendSQLite  = "sqlite"
	DefaultStorageBackend = StorageBackendLevelDB
	DefaultStoragePath    = "database/seen"

	// Log defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3

	// Legacy DDoS-Guard cookie names
	CookieDDG1  = "__ddg1"
	CookieDDG2  = "__ddg2"
	CookieDDGID = "__ddgid"

	// ConfigPathEnv points at the config file when no flag is given
	ConfigPathEnv = "DBREEWATCH_CONFIG_PATH"
)
