package progress

import (
	"fmt"

	recerrors "promptrec/pkg/errors"
)

// Source says where a resume index came from
type Source string

const (
	// SourceNone means no load has happened (Validate only)
	SourceNone Source = ""
	// SourcePersisted means the index was read from the progress file
	SourcePersisted Source = "persisted"
	// SourceDetected means the index was reconstructed by scanning recordings
	SourceDetected Source = "detected"
	// SourceDefault means both the file and the scan failed and the cursor starts over
	SourceDefault Source = "default"
)

// Warning is a non-fatal problem met while validating, loading or saving
type Warning struct {
	Kind   recerrors.ErrorType
	Path   string
	Reason string
	Err    error
}

func (w Warning) String() string {
	msg := fmt.Sprintf("%s: %s", w.Kind, w.Reason)
	if w.Path != "" {
		msg += fmt.Sprintf(" (%s)", w.Path)
	}
	if w.Err != nil {
		msg += ": " + w.Err.Error()
	}
	return msg
}

// Outcome reports what Validate or Load did. Nothing in it is fatal; callers
// decide whether to surface the warnings.
type Outcome struct {
	Source     Source
	Index      int
	Clamped    bool
	Corrupt    bool
	Removed    bool
	BackupPath string
	Record     *Record
	Warnings   []Warning
}

// OK reports whether the outcome carries no warnings
func (o Outcome) OK() bool {
	return len(o.Warnings) == 0
}

func (o *Outcome) warn(kind recerrors.ErrorType, path, reason string, err error) {
	o.Warnings = append(o.Warnings, Warning{Kind: kind, Path: path, Reason: reason, Err: err})
}
