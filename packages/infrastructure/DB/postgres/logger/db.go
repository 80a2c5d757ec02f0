// Log sources of the postgres module (packages/infrastructure/DB/postgres).
package log

import "hoa/packages/common/logger"

var (
	// Connections, table managers and repositories.
	DB = logger.NewSource("DATABASE", logger.Default)
	// Raw SQL queries, logged only if DB query logging is enabled in debug config.
	Executor  = logger.NewSource("EXECUTOR", logger.Default)
	Migration = logger.NewSource("MIGRATION", logger.Default)
)
