// Package storage manages the recordings of a project directory.
//
// Each prompt's recording lives at <outputDir>/<id>.wav. The Manager probes
// for recordings, stores new ones atomically through a temporary file and
// rename, and reads WAV headers so recordings can be checked against the
// configured audio format.
//
//	manager, err := storage.NewManager(project.OutputDir, true)
//	if err != nil {
//	    return err
//	}
//	if ok, _ := manager.IsRecorded("0001"); !ok {
//	    _, err = manager.ImportWAV("take.wav", "0001")
//	}
package storage
