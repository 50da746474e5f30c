package script

import (
	"fmt"
	"path/filepath"
)

// DefaultProgressFile is the name of the progress file inside a project directory
const DefaultProgressFile = "progress.json"

// ArtifactExt is the extension of recorded clips
const ArtifactExt = ".wav"

// Project is a script plus its dedicated output directory
type Project struct {
	Name         string
	ScriptPath   string
	Prompts      []Prompt
	OutputDir    string
	progressFile string
}

// NewProject loads the script and derives the project layout under baseDir
func NewProject(scriptPath, baseDir, progressFile string) (*Project, error) {
	prompts, err := LoadFile(scriptPath)
	if err != nil {
		return nil, err
	}
	return NewProjectFromPrompts(scriptPath, baseDir, progressFile, prompts)
}

// NewProjectFromPrompts builds a project from already parsed prompts
func NewProjectFromPrompts(scriptPath, baseDir, progressFile string, prompts []Prompt) (*Project, error) {
	name := ProjectName(scriptPath)
	if name == "" || name == "." {
		return nil, fmt.Errorf("cannot derive project name from %q", scriptPath)
	}
	if progressFile == "" {
		progressFile = DefaultProgressFile
	}

	return &Project{
		Name:         name,
		ScriptPath:   scriptPath,
		Prompts:      prompts,
		OutputDir:    filepath.Join(baseDir, name),
		progressFile: progressFile,
	}, nil
}

// Len returns the number of prompts
func (p *Project) Len() int {
	return len(p.Prompts)
}

// ArtifactPath returns where the recording for a prompt id lives
func (p *Project) ArtifactPath(id string) string {
	return filepath.Join(p.OutputDir, id+ArtifactExt)
}

// ProgressPath returns the location of the project's progress file
func (p *Project) ProgressPath() string {
	return filepath.Join(p.OutputDir, p.progressFile)
}
