// Package logger provides structured logging for the prompt recorder.
//
// It wraps zerolog behind a small Logger interface with field support,
// colored console output on stderr and optional file output.
//
//	err := logger.Initialize(&cfg.Logging)
//	logger.WithField("project", "chapter01").Info("Project opened")
//
// TestLogger captures messages in memory so packages can assert on what
// they logged.
package logger
