package config

const (
	// DefaultDatabasePath is the default path for the SQLite database file
	DefaultDatabasePath = "./userbooks.db"

	// DefaultEnvFile is read on startup when present; environment variables win over it
	DefaultEnvFile = ".env"

	// APIKeyHeader is the request header carrying the shared secret
	APIKeyHeader = "api-key"
)
