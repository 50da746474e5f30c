package logger

import "fmt"

// LogArtifact logs the outcome of storing a recording for a prompt
func LogArtifact(l Logger, project, promptID, path string, err error) {
	fields := map[string]interface{}{
		"project":   project,
		"prompt_id": promptID,
		"path":      path,
	}
	if err != nil {
		l.WithError(err).ErrorWithFields("Recording not stored", fields)
		return
	}
	l.InfoWithFields("Recording stored", fields)
}

// LogCursor logs a cursor movement within a project
func LogCursor(l Logger, action string, index, total int) {
	percentage := 0.0
	if total > 0 {
		percentage = float64(index) / float64(total) * 100
	}
	l.DebugWithFields("Cursor moved", map[string]interface{}{
		"action":     action,
		"index":      index,
		"total":      total,
		"percentage": fmt.Sprintf("%.1f%%", percentage),
	})
}

// NewNopLogger creates a no-operation logger
func NewNopLogger() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (n nopLogger) Debug(msg string)                                          {}
func (n nopLogger) Info(msg string)                                           {}
func (n nopLogger) Warn(msg string)                                           {}
func (n nopLogger) Error(msg string)                                          {}
func (n nopLogger) WithField(key string, value interface{}) Logger            { return n }
func (n nopLogger) WithFields(fields map[string]interface{}) Logger           { return n }
func (n nopLogger) WithError(err error) Logger                                { return n }
func (n nopLogger) DebugWithFields(msg string, fields map[string]interface{}) {}
func (n nopLogger) InfoWithFields(msg string, fields map[string]interface{})  {}
func (n nopLogger) WarnWithFields(msg string, fields map[string]interface{})  {}
func (n nopLogger) ErrorWithFields(msg string, fields map[string]interface{}) {}
