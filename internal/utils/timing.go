package utils

import (
	"time"

	"github.com/rs/zerolog"
)

// OperationTimer measures the duration of an operation in a defer-friendly way.
//
//	defer utils.OperationTimer("rate_snapshot", log)()
func OperationTimer(operation string, log zerolog.Logger) func() {
	start := time.Now()

	return func() {
		duration := time.Since(start)

		log.Debug().
			Str("operation", operation).
			Dur("duration_ms", duration).
			Msg("Operation completed")

		if duration > 10*time.Second {
			log.Warn().
				Str("operation", operation).
				Dur("duration", duration).
				Msg("Slow operation detected")
		}
	}
}
