package progress

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"os"
	"time"

	recerrors "promptrec/pkg/errors"
	"promptrec/pkg/logger"
	"promptrec/pkg/retry"
	"promptrec/pkg/script"
)

// ArtifactProber reports whether the recording for a prompt id exists
type ArtifactProber interface {
	IsRecorded(id string) (bool, error)
}

// Tracker owns the progress file of one project
type Tracker struct {
	path    string
	prompts []script.Prompt
	probe   ArtifactProber

	now    func() time.Time
	rename func(oldpath, newpath string) error
	retry  *retry.Config
}

// NewTracker creates a tracker for the progress file at path. An empty path
// makes Save a no-op.
func NewTracker(path string, prompts []script.Prompt, probe ArtifactProber) *Tracker {
	return &Tracker{
		path:    path,
		prompts: prompts,
		probe:   probe,
		now:     time.Now,
		rename:  os.Rename,
		retry:   retry.FileConfig(),
	}
}

// SetLogger routes retry attempts on the progress file to l
func (t *Tracker) SetLogger(l logger.Logger) {
	if t.retry != nil {
		t.retry.Logger = l
	}
}

// Path returns the progress file location
func (t *Tracker) Path() string {
	return t.path
}

// Validate checks the progress file before it is trusted and deletes it when
// any check fails: it must be non-empty JSON holding every required field,
// with current_index a non-negative integer. A missing file is fine.
func (t *Tracker) Validate() Outcome {
	var out Outcome
	if t.path == "" {
		return out
	}

	data, err := os.ReadFile(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return out
		}
		out.warn(recerrors.ErrorTypeIOFailure, t.path, "failed to read progress file", err)
		t.discard(&out)
		return out
	}

	if len(bytes.TrimSpace(data)) == 0 {
		out.warn(recerrors.ErrorTypeMalformedContent, t.path, "progress file is empty", nil)
		t.discard(&out)
		return out
	}

	fields, err := decodeObject(data)
	if err != nil {
		out.Corrupt = true
		out.warn(recerrors.ErrorTypeMalformedContent, t.path, "progress file is not a JSON object", err)
		t.discard(&out)
		return out
	}

	for _, name := range requiredFields {
		if _, ok := fields[name]; !ok {
			out.Corrupt = true
			out.warn(recerrors.ErrorTypeMalformedContent, t.path, "progress file lacks "+name, nil)
			t.discard(&out)
			return out
		}
	}

	index, err := decodeIndex(fields)
	if err != nil || index < 0 {
		out.Corrupt = true
		out.warn(recerrors.ErrorTypeMalformedContent, t.path, "current_index is not a non-negative integer", err)
		t.discard(&out)
		return out
	}

	return out
}

// Load returns the resume index. A missing, empty or malformed file falls back
// to DetectProgress; malformed content is renamed aside first, empty files are
// deleted. A persisted index is clamped into [0, promptCount-1].
func (t *Tracker) Load() (int, Outcome) {
	var out Outcome

	data, err := os.ReadFile(t.path)
	switch {
	case t.path == "" || os.IsNotExist(err):
		return t.fallback(&out)
	case err != nil:
		out.warn(recerrors.ErrorTypeIOFailure, t.path, "failed to read progress file", err)
		return t.fallback(&out)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		out.warn(recerrors.ErrorTypeMalformedContent, t.path, "progress file is empty", nil)
		t.discard(&out)
		return t.fallback(&out)
	}

	fields, err := decodeObject(data)
	if err == nil {
		var index int
		index, err = resumeIndex(fields)
		if err == nil {
			return t.persisted(&out, data, index)
		}
	}

	out.Corrupt = true
	out.warn(recerrors.ErrorTypeMalformedContent, t.path, "progress file is unreadable", err)
	t.backup(&out)
	return t.fallback(&out)
}

func (t *Tracker) persisted(out *Outcome, data []byte, index int) (int, Outcome) {
	out.Source = SourcePersisted

	// a whole-valued float index is a type error for the int field; the other
	// fields still decode
	var rec Record
	var typeErr *json.UnmarshalTypeError
	if err := json.Unmarshal(data, &rec); err == nil || errors.As(err, &typeErr) {
		rec.CurrentIndex = index
		out.Record = &rec
	}

	out.Index = clamp(index, len(t.prompts))
	out.Clamped = out.Index != index
	return out.Index, *out
}

// fallback reconstructs the cursor from recordings on disk, or starts over
func (t *Tracker) fallback(out *Outcome) (int, Outcome) {
	index, err := t.DetectProgress()
	if err != nil {
		out.warn(recerrors.ErrorTypeIOFailure, "", "failed to detect progress from recordings", err)
		out.Source = SourceDefault
		out.Index = 0
		return 0, *out
	}
	out.Source = SourceDetected
	out.Index = index
	return index, *out
}

// DetectProgress returns the index of the first prompt without a recording.
// When every prompt is recorded it returns the last index, and 0 for an empty
// script. Recording out of order makes the first gap a misleading resume point.
func (t *Tracker) DetectProgress() (int, error) {
	if len(t.prompts) == 0 {
		return 0, nil
	}
	if t.probe == nil {
		return 0, fmt.Errorf("no artifact prober configured")
	}

	for i, p := range t.prompts {
		ok, err := t.probe.IsRecorded(p.ID)
		if err != nil {
			return 0, err
		}
		if !ok {
			return i, nil
		}
	}
	return len(t.prompts) - 1, nil
}

// Save writes the record to a temporary sibling and renames it over the
// progress file, so readers never see a partial write. The rename is retried
// briefly. On failure the previous file is left as it was.
func (t *Tracker) Save(rec Record) error {
	if t.path == "" {
		return nil
	}

	rec.LastUpdated = Timestamp{t.now().Truncate(time.Second)}

	tempPath := t.path + ".tmp"
	file, err := os.Create(tempPath)
	if err != nil {
		return recerrors.IOFailure(tempPath, "failed to create temporary progress file", err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(rec); err != nil {
		file.Close()
		os.Remove(tempPath)
		return recerrors.IOFailure(tempPath, "failed to encode progress", err)
	}

	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tempPath)
		return recerrors.IOFailure(tempPath, "failed to sync progress file", err)
	}

	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return recerrors.IOFailure(tempPath, "failed to close progress file", err)
	}

	err = retry.Do(func() error {
		return t.rename(tempPath, t.path)
	}, t.retry)
	if err != nil {
		os.Remove(tempPath)
		return recerrors.IOFailure(t.path, "failed to replace progress file", err)
	}

	return nil
}

// backup renames a malformed progress file to <path>.backup_<unixtime>
func (t *Tracker) backup(out *Outcome) {
	backupPath := fmt.Sprintf("%s.backup_%d", t.path, t.now().Unix())
	if err := t.rename(t.path, backupPath); err != nil {
		out.warn(recerrors.ErrorTypeIOFailure, t.path, "failed to back up malformed progress file", err)
		return
	}
	out.BackupPath = backupPath
}

// discard deletes the progress file
func (t *Tracker) discard(out *Outcome) {
	if err := os.Remove(t.path); err != nil && !os.IsNotExist(err) {
		out.warn(recerrors.ErrorTypeIOFailure, t.path, "failed to remove progress file", err)
		return
	}
	out.Removed = true
}

func decodeObject(data []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, fmt.Errorf("progress file holds null")
	}
	return fields, nil
}

// indexNumber extracts current_index, which must be a JSON number
func indexNumber(fields map[string]json.RawMessage) (json.Number, error) {
	raw, ok := fields["current_index"]
	if !ok {
		return "", fmt.Errorf("current_index missing")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return "", err
	}

	num, ok := v.(json.Number)
	if !ok {
		return "", fmt.Errorf("current_index is %T, not a number", v)
	}
	return num, nil
}

// decodeIndex accepts only an integer literal that fits in an int64
func decodeIndex(fields map[string]json.RawMessage) (int, error) {
	num, err := indexNumber(fields)
	if err != nil {
		return 0, err
	}
	index, err := num.Int64()
	if err != nil {
		return 0, fmt.Errorf("current_index %s is not an integer", num)
	}
	return int(index), nil
}

// resumeIndex accepts any whole number, including 5.0 and 1e40. Values past
// the int range saturate so clamping pulls them to the nearest boundary.
func resumeIndex(fields map[string]json.RawMessage) (int, error) {
	num, err := indexNumber(fields)
	if err != nil {
		return 0, err
	}
	f, _, err := big.ParseFloat(num.String(), 10, 256, big.ToNearestEven)
	if err != nil {
		return 0, fmt.Errorf("current_index %s: %w", num, err)
	}
	if !f.IsInt() {
		return 0, fmt.Errorf("current_index %s is not a whole number", num)
	}

	switch {
	case f.Cmp(new(big.Float).SetInt64(math.MaxInt)) > 0:
		return math.MaxInt, nil
	case f.Cmp(new(big.Float).SetInt64(math.MinInt)) < 0:
		return math.MinInt, nil
	}
	index, _ := f.Int64()
	return int(index), nil
}

// clamp bounds index to [0, count-1], or 0 when there is nothing to index
func clamp(index, count int) int {
	if count <= 0 || index < 0 {
		return 0
	}
	if index >= count {
		return count - 1
	}
	return index
}
