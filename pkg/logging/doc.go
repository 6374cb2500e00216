// Package logging configures the structured logging used by capmatch.
//
// It wraps log/slog so the CLI and the matching engine share one setup.
// Library code accepts a *slog.Logger and falls back to Nop; only the CLI
// decides levels, formats and sinks.
//
// # Usage
//
//	logger, closeLog, err := logging.New(logging.Config{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatText,
//	    File:   "capmatch.log", // optional JSON copy of every record
//	})
//	if err != nil {
//	    return err
//	}
//	defer closeLog()
//
//	logger.Debug("case evaluated", "case", name, "verdict", ok)
//
// # Environment
//
// FromEnv overrides a Config with CAPMATCH_LOG_LEVEL, CAPMATCH_LOG_FORMAT and
// CAPMATCH_LOG_FILE when they are set.
package logging
