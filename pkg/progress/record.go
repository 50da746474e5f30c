package progress

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimestampLayout is the format of last_updated in progress files
const TimestampLayout = "2006-01-02 15:04:05"

// requiredFields must all be present for a progress file to be trusted
var requiredFields = []string{"current_index", "project_name", "text_file", "total_records"}

// Record is the persisted cursor of a project. It carries no audio data.
type Record struct {
	CurrentIndex int       `json:"current_index"`
	ProjectName  string    `json:"project_name"`
	ScriptPath   string    `json:"text_file"`
	TotalPrompts int       `json:"total_records"`
	LastUpdated  Timestamp `json:"last_updated"`
}

// Complete reports whether every prompt has been passed
func (r Record) Complete() bool {
	return r.CurrentIndex >= r.TotalPrompts
}

// Timestamp is a local wall-clock time stored as "YYYY-MM-DD HH:MM:SS"
type Timestamp struct {
	time.Time
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(ts.Format(TimestampLayout))
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("last_updated must be a string: %w", err)
	}
	if s == "" {
		ts.Time = time.Time{}
		return nil
	}
	t, err := time.ParseInLocation(TimestampLayout, s, time.Local)
	if err != nil {
		return fmt.Errorf("invalid last_updated %q: %w", s, err)
	}
	ts.Time = t
	return nil
}
