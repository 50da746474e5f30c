package main

import (
	"fmt"

	"promptrec/pkg/config"
	recerrors "promptrec/pkg/errors"
	"promptrec/pkg/logger"
	"promptrec/pkg/progress"
	"promptrec/pkg/script"
	"promptrec/pkg/storage"
	"promptrec/pkg/ui"
)

// workspace is everything a project command works with
type workspace struct {
	cfg     *config.Config
	project *script.Project
	store   *storage.Manager
	log     logger.Logger
}

// loadWorkspace resolves configuration and lays out the project for a script
// without touching its progress file
func loadWorkspace(scriptPath string) (*workspace, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	project, err := script.NewProject(scriptPath, cfg.Output.BaseDirectory, cfg.Output.ProgressFile)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewManager(project.OutputDir, cfg.Output.CreateDirectories)
	if err != nil {
		return nil, err
	}

	return &workspace{
		cfg:     cfg,
		project: project,
		store:   store,
		log:     logger.GetLogger().WithField("project", project.Name),
	}, nil
}

// tracker returns a tracker over the project's progress file
func (w *workspace) tracker() *progress.Tracker {
	tr := progress.NewTracker(w.project.ProgressPath(), w.project.Prompts, w.store)
	tr.SetLogger(w.log)
	return tr
}

// open loads the cursor and reports anything that went wrong on the way
func (w *workspace) open() *progress.Session {
	opts := []progress.Option{progress.WithLogger(logger.GetLogger())}

	if w.cfg.Notifications.OnComplete {
		notifier := ui.NewNotifier(w.cfg.Notifications.Enabled)
		opts = append(opts, progress.WithCompletionHook(func(s *progress.Session) {
			if err := notifier.NotifyComplete(s.Project().Name, s.Total()); err != nil {
				w.log.WithError(err).Debug("Desktop notification failed")
			}
		}))
	}

	s := progress.Open(w.project, w.store, opts...)
	reportOutcome(s.Outcome())
	return s
}

func reportOutcome(out progress.Outcome) {
	if out.BackupPath != "" {
		ui.PrintWarning("Progress file was unreadable and has been backed up", out.BackupPath)
	}
	// a finished project is stored one past the last prompt and reopens on it
	if out.Clamped && (out.Record == nil || !out.Record.Complete()) {
		ui.PrintWarning("Saved position was outside the script", fmt.Sprintf("moved to %d", out.Index+1))
	}
	for _, w := range out.Warnings {
		if w.Kind == recerrors.ErrorTypeMalformedContent && out.BackupPath != "" {
			continue
		}
		ui.PrintWarning("Warning", w.String())
	}
}

// statusView gathers what the status panel shows
func statusView(s *progress.Session, store *storage.Manager) (ui.StatusView, error) {
	view := ui.StatusView{
		Project:  s.Project().Name,
		Index:    s.Index(),
		Total:    s.Total(),
		Source:   string(s.Outcome().Source),
		Complete: s.IsComplete(),
	}

	if current, ok := s.Current(); ok {
		recorded, err := store.IsRecorded(current.ID)
		if err != nil {
			return view, err
		}
		view.PromptID = current.ID
		view.PromptText = current.Text
		view.Recorded = recorded
	}

	missing, err := s.Missing()
	if err != nil {
		return view, err
	}
	view.Missing = len(missing)
	return view, nil
}

func printStatus(s *progress.Session, store *storage.Manager) error {
	view, err := statusView(s, store)
	if err != nil {
		return err
	}
	ui.PrintStatus(view)
	return nil
}

// navigationResult turns a failed save into a warning; the cursor already moved
func navigationResult(err error) error {
	if err == nil {
		return nil
	}
	if recerrors.IsType(err, recerrors.ErrorTypeIOFailure) {
		ui.PrintWarning("Position changed but progress was not saved", err)
		return nil
	}
	return err
}
