// Package logging owns the process-wide slog stack: a JSON handler on
// stdout from the first line of main, joined by the Postgres batch
// handler once the database connection is up.
package logging

import (
	"log/slog"
	"os"
)

// Setup installs the bootstrap JSON logger. main swaps in a
// MultiHandler with the Postgres handler after connecting.
func Setup() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}
