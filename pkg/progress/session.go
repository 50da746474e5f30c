package progress

import (
	recerrors "promptrec/pkg/errors"
	"promptrec/pkg/logger"
	"promptrec/pkg/script"
)

// State is the lifecycle position of an open project
type State string

const (
	StateUnopened   State = "unopened"
	StateValidating State = "validating"
	StateBackedUp   State = "backed_up"
	StateLoaded     State = "loaded"
	StateComplete   State = "complete"
)

// Session binds one project to its tracker and recordings and holds the cursor.
// It is not safe for concurrent use.
type Session struct {
	project *script.Project
	store   ArtifactProber
	tracker *Tracker
	logger  logger.Logger

	index      int
	state      State
	outcome    Outcome
	onComplete func(*Session)
}

// Option configures a Session
type Option func(*Session)

// WithLogger sets the logger used for outcomes and cursor moves
func WithLogger(l logger.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// WithCompletionHook registers fn to run once the cursor passes the last prompt
func WithCompletionHook(fn func(*Session)) Option {
	return func(s *Session) {
		s.onComplete = fn
	}
}

// WithTracker replaces the tracker built from the project layout
func WithTracker(t *Tracker) Option {
	return func(s *Session) {
		s.tracker = t
	}
}

// Open loads the project's cursor. It never fails: whatever goes wrong with
// the progress file degrades to a detected or zero index, reported in Outcome.
func Open(project *script.Project, store ArtifactProber, opts ...Option) *Session {
	s := &Session{
		project: project,
		store:   store,
		logger:  logger.NewNopLogger(),
		state:   StateUnopened,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tracker == nil {
		s.tracker = NewTracker(project.ProgressPath(), project.Prompts, store)
	}
	s.logger = s.logger.WithField("project", project.Name)
	s.tracker.SetLogger(s.logger)

	s.setState(StateValidating)
	s.index, s.outcome = s.tracker.Load()
	if s.outcome.Corrupt {
		s.setState(StateBackedUp)
	}
	s.setState(StateLoaded)
	s.logOutcome()

	if s.index >= s.Total() {
		s.setState(StateComplete)
	}
	return s
}

func (s *Session) logOutcome() {
	fields := map[string]interface{}{
		"source": string(s.outcome.Source),
		"index":  s.index,
		"total":  s.Total(),
	}
	if s.outcome.Clamped {
		fields["clamped"] = true
	}
	if s.outcome.BackupPath != "" {
		fields["backup"] = s.outcome.BackupPath
	}
	s.logger.InfoWithFields("Progress loaded", fields)

	for _, w := range s.outcome.Warnings {
		s.logger.WithError(w.Err).WarnWithFields(w.Reason, map[string]interface{}{
			"kind": string(w.Kind),
			"path": w.Path,
		})
	}
}

func (s *Session) setState(next State) {
	if s.state == next {
		return
	}
	s.logger.DebugWithFields("Session state changed", map[string]interface{}{
		"from": string(s.state),
		"to":   string(next),
	})
	s.state = next
}

// Project returns the open project
func (s *Session) Project() *script.Project {
	return s.project
}

// Index returns the zero-based cursor
func (s *Session) Index() int {
	return s.index
}

// Total returns the number of prompts
func (s *Session) Total() int {
	return len(s.project.Prompts)
}

// State returns the lifecycle state
func (s *Session) State() State {
	return s.state
}

// Outcome returns what happened when the progress file was loaded
func (s *Session) Outcome() Outcome {
	return s.outcome
}

// IsComplete reports whether every prompt has been passed
func (s *Session) IsComplete() bool {
	return s.state == StateComplete
}

// Current returns the prompt under the cursor
func (s *Session) Current() (script.Prompt, bool) {
	if s.index < 0 || s.index >= s.Total() {
		return script.Prompt{}, false
	}
	return s.project.Prompts[s.index], true
}

// Record returns the cursor as it would be persisted
func (s *Session) Record() Record {
	return Record{
		CurrentIndex: s.index,
		ProjectName:  s.project.Name,
		ScriptPath:   s.project.ScriptPath,
		TotalPrompts: s.Total(),
	}
}

// Next advances past the current prompt, which must already be recorded.
// A returned io_failure error means the cursor moved but was not persisted;
// any other error means nothing changed.
func (s *Session) Next() error {
	current, ok := s.Current()
	if !ok {
		return recerrors.OutOfRange(s.index+1, s.Total())
	}

	recorded, err := s.store.IsRecorded(current.ID)
	if err != nil {
		return err
	}
	if !recorded {
		return recerrors.New(recerrors.ErrorTypeNotRecorded, s.project.ArtifactPath(current.ID),
			"prompt "+current.ID+" has no recording yet", nil)
	}

	s.index++
	err = s.persist("next")
	if s.index >= s.Total() {
		s.setState(StateComplete)
		s.logger.InfoWithFields("Project complete", map[string]interface{}{"total": s.Total()})
		if s.onComplete != nil {
			s.onComplete(s)
		}
	}
	return err
}

// Previous steps back one prompt. At the first prompt it returns an
// out_of_range error and changes nothing.
func (s *Session) Previous() error {
	if s.index <= 0 {
		return recerrors.OutOfRange(s.index-1, s.Total())
	}
	s.index--
	s.setState(StateLoaded)
	return s.persist("previous")
}

// Jump moves the cursor to a zero-based index in [0, total-1]
func (s *Session) Jump(index int) error {
	if index < 0 || index >= s.Total() {
		return recerrors.OutOfRange(index, s.Total())
	}
	s.index = index
	s.setState(StateLoaded)
	return s.persist("jump")
}

// MarkRecorded persists the cursor after a recording for the current prompt
// was stored. The cursor itself does not move.
func (s *Session) MarkRecorded() error {
	return s.persist("record")
}

// Missing returns the indexes of prompts that have no recording
func (s *Session) Missing() ([]int, error) {
	var missing []int
	for i, p := range s.project.Prompts {
		ok, err := s.store.IsRecorded(p.ID)
		if err != nil {
			return nil, err
		}
		if !ok {
			missing = append(missing, i)
		}
	}
	return missing, nil
}

// Close persists the cursor one last time
func (s *Session) Close() error {
	return s.persist("close")
}

func (s *Session) persist(action string) error {
	logger.LogCursor(s.logger, action, s.index, s.Total())

	if err := s.tracker.Save(s.Record()); err != nil {
		s.logger.WithError(err).WarnWithFields("Progress not saved", map[string]interface{}{
			"action": action,
			"path":   s.tracker.Path(),
		})
		return err
	}
	return nil
}
