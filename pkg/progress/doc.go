// Package progress persists and restores the recording cursor of a project.
//
// The cursor lives in a small JSON file next to the recordings:
//
//	{
//	  "current_index": 12,
//	  "project_name": "chapter01",
//	  "text_file": "/scripts/chapter01.txt",
//	  "total_records": 40,
//	  "last_updated": "2024-03-09 14:05:06"
//	}
//
// Loading never fails. A malformed file is renamed to
// <file>.backup_<unixtime>, an empty one is deleted, and in both cases (as
// well as for a missing file) the cursor is rebuilt from the first prompt
// that has no recording. A persisted index is clamped into the prompt range.
// Saves go through a temporary file and a rename, so an interrupted save
// leaves the previous progress file intact.
//
// Session wraps a Tracker with the navigation rules of the recorder:
//
//	s := progress.Open(project, store, progress.WithLogger(log))
//	if err := s.Next(); errors.IsType(err, errors.ErrorTypeNotRecorded) {
//	    // record the current prompt first
//	}
package progress
