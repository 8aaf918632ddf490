package config

// Default paths
const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./bookshelf.db"
)

// DefaultBcryptCost is the bcrypt cost factor used when no configuration
// is loaded (CLI commands).
const DefaultBcryptCost = 12
