package progress

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	recerrors "promptrec/pkg/errors"
	"promptrec/pkg/logger"
	"promptrec/pkg/script"
	"promptrec/pkg/storage"
)

type sessionFixture struct {
	project *script.Project
	store   *storage.Manager
	log     *logger.TestLogger
}

func newSessionFixture(t *testing.T, ids ...string) *sessionFixture {
	t.Helper()
	project, err := script.NewProjectFromPrompts(
		filepath.Join(t.TempDir(), "chapter01.txt"), t.TempDir(), "", prompts(ids...))
	require.NoError(t, err)

	store, err := storage.NewManager(project.OutputDir, true)
	require.NoError(t, err)

	return &sessionFixture{project: project, store: store, log: logger.NewTestLogger()}
}

func (f *sessionFixture) record(t *testing.T, ids ...string) {
	t.Helper()
	for _, id := range ids {
		_, err := f.store.SaveArtifact(strings.NewReader("RIFF"), id)
		require.NoError(t, err)
	}
}

func (f *sessionFixture) open(opts ...Option) *Session {
	return Open(f.project, f.store, append([]Option{WithLogger(f.log)}, opts...)...)
}

func TestOpenFreshProject(t *testing.T) {
	f := newSessionFixture(t, "0001", "0002", "0003")

	s := f.open()
	assert.Equal(t, 0, s.Index())
	assert.Equal(t, 3, s.Total())
	assert.Equal(t, StateLoaded, s.State())
	assert.Equal(t, SourceDetected, s.Outcome().Source)

	current, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "0001", current.ID)
	assert.True(t, f.log.HasMessage("Progress loaded"))
}

func TestOpenResumesFromRecordings(t *testing.T) {
	f := newSessionFixture(t, "A", "B", "C")
	f.record(t, "A", "C")

	s := f.open()
	assert.Equal(t, 1, s.Index())
	assert.Equal(t, SourceDetected, s.Outcome().Source)
}

func TestOpenCorruptFileIsBackedUp(t *testing.T) {
	f := newSessionFixture(t, "A", "B", "C")
	f.record(t, "A")
	require.NoError(t, os.WriteFile(f.project.ProgressPath(), []byte(`{"current_index": 2, "proj`), 0644))

	s := f.open()
	assert.Equal(t, 1, s.Index())
	assert.True(t, s.Outcome().Corrupt)
	assert.NoFileExists(t, f.project.ProgressPath())
	assert.FileExists(t, s.Outcome().BackupPath)
	assert.True(t, strings.HasPrefix(s.Outcome().BackupPath, f.project.ProgressPath()+".backup_"))

	warnings := f.log.GetMessagesByLevel("WARN")
	require.NotEmpty(t, warnings)
	assert.Equal(t, string(recerrors.ErrorTypeMalformedContent), warnings[0].Fields["kind"])
	assert.Equal(t, "chapter01", warnings[0].Fields["project"])

	changes := 0
	for _, msg := range f.log.GetMessages() {
		if msg.Message == "Session state changed" && msg.Fields["to"] == string(StateBackedUp) {
			changes++
		}
	}
	assert.Equal(t, 1, changes)
}

func TestOpenClampsPersistedIndex(t *testing.T) {
	f := newSessionFixture(t, "A", "B", "C")
	require.NoError(t, os.WriteFile(f.project.ProgressPath(),
		[]byte(`{"current_index": 5, "project_name": "chapter01", "text_file": "x", "total_records": 3}`), 0644))

	s := f.open()
	assert.Equal(t, 2, s.Index())
	assert.True(t, s.Outcome().Clamped)
	assert.Equal(t, SourcePersisted, s.Outcome().Source)
	assert.False(t, s.IsComplete())
}

func TestOpenEmptyScriptIsComplete(t *testing.T) {
	f := newSessionFixture(t)

	s := f.open()
	assert.Equal(t, 0, s.Index())
	assert.True(t, s.IsComplete())
	_, ok := s.Current()
	assert.False(t, ok)
	assert.True(t, recerrors.IsType(s.Next(), recerrors.ErrorTypeOutOfRange))
}

func TestNextRequiresRecording(t *testing.T) {
	f := newSessionFixture(t, "A", "B", "C")
	s := f.open()

	err := s.Next()
	require.Error(t, err)
	assert.True(t, recerrors.IsType(err, recerrors.ErrorTypeNotRecorded))
	assert.Equal(t, 0, s.Index())
	assert.NoFileExists(t, f.project.ProgressPath())

	f.record(t, "A")
	require.NoError(t, s.Next())
	assert.Equal(t, 1, s.Index())

	reopened := f.open()
	assert.Equal(t, 1, reopened.Index())
	assert.Equal(t, SourcePersisted, reopened.Outcome().Source)
	require.NotNil(t, reopened.Outcome().Record)
	assert.Equal(t, "chapter01", reopened.Outcome().Record.ProjectName)
	assert.Equal(t, 3, reopened.Outcome().Record.TotalPrompts)
}

func TestNextCompletesProject(t *testing.T) {
	f := newSessionFixture(t, "A", "B")
	f.record(t, "A", "B")

	var completed int
	s := f.open(WithCompletionHook(func(*Session) { completed++ }))
	require.Equal(t, 1, s.Index())
	require.NoError(t, s.Jump(0))

	require.NoError(t, s.Next())
	assert.False(t, s.IsComplete())
	require.NoError(t, s.Next())

	assert.Equal(t, 2, s.Index())
	assert.True(t, s.IsComplete())
	assert.Equal(t, StateComplete, s.State())
	assert.Equal(t, 1, completed)
	assert.True(t, f.log.HasMessage("Project complete"))

	err := s.Next()
	assert.True(t, recerrors.IsType(err, recerrors.ErrorTypeOutOfRange))
	assert.Equal(t, 2, s.Index())
	assert.Equal(t, 1, completed)

	// a complete cursor is persisted as is but reloads onto the last prompt
	reopened := f.open()
	assert.Equal(t, 1, reopened.Index())
	assert.True(t, reopened.Outcome().Clamped)
}

func TestPrevious(t *testing.T) {
	f := newSessionFixture(t, "A", "B", "C")
	s := f.open()

	err := s.Previous()
	require.Error(t, err)
	assert.True(t, recerrors.IsType(err, recerrors.ErrorTypeOutOfRange))
	assert.Equal(t, 0, s.Index())

	require.NoError(t, s.Jump(2))
	require.NoError(t, s.Previous())
	assert.Equal(t, 1, s.Index())
	assert.Equal(t, 1, f.open().Index())
}

func TestPreviousLeavesComplete(t *testing.T) {
	f := newSessionFixture(t, "A")
	f.record(t, "A")
	s := f.open()

	require.NoError(t, s.Next())
	require.True(t, s.IsComplete())
	require.NoError(t, s.Previous())
	assert.Equal(t, StateLoaded, s.State())
	assert.Equal(t, 0, s.Index())
}

func TestJump(t *testing.T) {
	f := newSessionFixture(t, "A", "B", "C")
	s := f.open()

	for _, index := range []int{-1, 3, 42} {
		err := s.Jump(index)
		require.Error(t, err)
		assert.True(t, recerrors.IsType(err, recerrors.ErrorTypeOutOfRange))
		assert.Equal(t, 0, s.Index())
	}

	require.NoError(t, s.Jump(2))
	current, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "C", current.ID)
	assert.Equal(t, 2, f.open().Index())
}

func TestMissing(t *testing.T) {
	f := newSessionFixture(t, "A", "B", "C", "D")
	f.record(t, "B", "D")
	s := f.open()

	missing, err := s.Missing()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, missing)

	f.record(t, "A", "C")
	missing, err = s.Missing()
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestMarkRecordedAndClose(t *testing.T) {
	f := newSessionFixture(t, "A", "B")
	s := f.open()

	require.NoError(t, s.MarkRecorded())
	assert.FileExists(t, f.project.ProgressPath())
	assert.Equal(t, 0, s.Index())

	require.NoError(t, s.Jump(1))
	require.NoError(t, s.Close())
	assert.Equal(t, 1, f.open().Index())
}

func TestPersistFailureKeepsCursor(t *testing.T) {
	f := newSessionFixture(t, "A", "B", "C")
	tr := NewTracker(f.project.ProgressPath(), f.project.Prompts, f.store)
	s := f.open(WithTracker(tr))
	require.NoError(t, s.Jump(1))

	tr.rename = func(string, string) error { return errors.New("disk full") }
	err := s.Jump(2)
	require.Error(t, err)
	assert.True(t, recerrors.IsType(err, recerrors.ErrorTypeIOFailure))
	assert.Equal(t, 2, s.Index())
	assert.True(t, f.log.HasMessage("Progress not saved"))
	assert.True(t, f.log.HasMessage("retrying operation"))
	assert.True(t, f.log.HasMessage("max retry attempts exceeded"))

	tr.rename = os.Rename
	assert.Equal(t, 1, f.open().Index())
}

func TestRecordReflectsCursor(t *testing.T) {
	f := newSessionFixture(t, "A", "B", "C")
	s := f.open()
	require.NoError(t, s.Jump(2))

	rec := s.Record()
	assert.Equal(t, 2, rec.CurrentIndex)
	assert.Equal(t, "chapter01", rec.ProjectName)
	assert.Equal(t, f.project.ScriptPath, rec.ScriptPath)
	assert.Equal(t, 3, rec.TotalPrompts)
	assert.False(t, rec.Complete())
}
