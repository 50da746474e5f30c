package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"promptrec/pkg/config"
	recerrors "promptrec/pkg/errors"
	"promptrec/pkg/script"
)

// Manager handles the recordings of one project directory
type Manager struct {
	outputDir string
	recorded  map[string]bool
	mu        sync.RWMutex
}

// ArtifactInfo describes the header of a stored recording
type ArtifactInfo struct {
	Path     string
	Format   *audio.Format
	BitDepth int
	Duration time.Duration
}

// NewManager opens the output directory, creating it when create is set,
// and scans it for existing recordings.
func NewManager(outputDir string, create bool) (*Manager, error) {
	if create {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	manager := &Manager{
		outputDir: outputDir,
		recorded:  make(map[string]bool),
	}

	if err := manager.scanExistingFiles(); err != nil {
		return nil, fmt.Errorf("failed to scan existing files: %w", err)
	}

	return manager, nil
}

// scanExistingFiles records every *.wav already present in the output directory
func (m *Manager) scanExistingFiles() error {
	entries, err := os.ReadDir(m.outputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read directory: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() && filepath.Ext(name) == script.ArtifactExt {
			m.recorded[strings.TrimSuffix(name, script.ArtifactExt)] = true
		}
	}

	return nil
}

// ArtifactPath returns the path of the recording for a prompt id
func (m *Manager) ArtifactPath(id string) string {
	return filepath.Join(m.outputDir, id+script.ArtifactExt)
}

// IsRecorded reports whether the recording for id exists on disk.
// The filesystem is authoritative; the cache follows it.
func (m *Manager) IsRecorded(id string) (bool, error) {
	_, err := os.Stat(m.ArtifactPath(id))
	switch {
	case err == nil:
		m.mu.Lock()
		m.recorded[id] = true
		m.mu.Unlock()
		return true, nil
	case os.IsNotExist(err):
		m.mu.Lock()
		delete(m.recorded, id)
		m.mu.Unlock()
		return false, nil
	default:
		return false, recerrors.IOFailure(m.ArtifactPath(id), "failed to probe recording", err)
	}
}

// SaveArtifact writes the recording for id from r atomically
func (m *Manager) SaveArtifact(r io.Reader, id string) (string, error) {
	filename := m.ArtifactPath(id)

	tempFile := filename + ".tmp"
	out, err := os.Create(tempFile)
	if err != nil {
		return "", recerrors.IOFailure(tempFile, "failed to create temporary file", err)
	}

	_, err = io.Copy(out, r)
	closeErr := out.Close()

	if err != nil {
		os.Remove(tempFile)
		return "", recerrors.IOFailure(tempFile, "failed to write recording", err)
	}
	if closeErr != nil {
		os.Remove(tempFile)
		return "", recerrors.IOFailure(tempFile, "failed to close recording", closeErr)
	}

	if err := os.Rename(tempFile, filename); err != nil {
		os.Remove(tempFile)
		return "", recerrors.IOFailure(filename, "failed to replace recording", err)
	}

	m.mu.Lock()
	m.recorded[id] = true
	m.mu.Unlock()

	return filename, nil
}

// ImportWAV validates srcPath as a WAV file and stores it as the recording for id
func (m *Manager) ImportWAV(srcPath, id string) (string, error) {
	src, err := os.Open(srcPath)
	if err != nil {
		return "", recerrors.IOFailure(srcPath, "failed to open recording", err)
	}
	defer src.Close()

	if !wav.NewDecoder(src).IsValidFile() {
		return "", recerrors.New(recerrors.ErrorTypeInvalidAudio, srcPath, "not a valid WAV file", nil)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", recerrors.IOFailure(srcPath, "failed to rewind recording", err)
	}

	return m.SaveArtifact(src, id)
}

// Inspect reads the WAV header of the recording for id
func (m *Manager) Inspect(id string) (ArtifactInfo, error) {
	path := m.ArtifactPath(id)
	return InspectFile(path)
}

// InspectFile reads the WAV header of any file
func InspectFile(path string) (ArtifactInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ArtifactInfo{}, recerrors.MissingFile(path)
		}
		return ArtifactInfo{}, recerrors.IOFailure(path, "failed to open recording", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return ArtifactInfo{}, recerrors.New(recerrors.ErrorTypeInvalidAudio, path, "not a valid WAV file", nil)
	}

	duration, err := dec.Duration()
	if err != nil {
		return ArtifactInfo{}, recerrors.New(recerrors.ErrorTypeInvalidAudio, path, "failed to read duration", err)
	}

	return ArtifactInfo{
		Path:     path,
		Format:   dec.Format(),
		BitDepth: int(dec.BitDepth),
		Duration: duration,
	}, nil
}

// CheckFormat lists how a recording differs from the configured audio format
func CheckFormat(info ArtifactInfo, want config.AudioConfig) []string {
	var problems []string
	if info.Format == nil {
		return []string{"unknown format"}
	}
	if want.SampleRate > 0 && info.Format.SampleRate != want.SampleRate {
		problems = append(problems, fmt.Sprintf("sample rate %d Hz, want %d Hz", info.Format.SampleRate, want.SampleRate))
	}
	if want.Channels > 0 && info.Format.NumChannels != want.Channels {
		problems = append(problems, fmt.Sprintf("%d channels, want %d", info.Format.NumChannels, want.Channels))
	}
	if want.BitDepth > 0 && info.BitDepth != want.BitDepth {
		problems = append(problems, fmt.Sprintf("%d-bit, want %d-bit", info.BitDepth, want.BitDepth))
	}
	return problems
}

// GetOutputDir returns the output directory path
func (m *Manager) GetOutputDir() string {
	return m.outputDir
}

// GetRecordedCount returns the number of recordings seen so far
func (m *Manager) GetRecordedCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.recorded)
}
