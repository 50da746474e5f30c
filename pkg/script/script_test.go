package script

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Prompt
	}{
		{
			name:  "single space",
			input: "0001 Hello world.\n0002 Second line\n",
			want:  []Prompt{{"0001", "Hello world."}, {"0002", "Second line"}},
		},
		{
			name:  "whitespace run is one delimiter",
			input: "a1 \t  keep   inner  spacing",
			want:  []Prompt{{"a1", "keep   inner  spacing"}},
		},
		{
			name:  "blank and id-only lines skipped",
			input: "\n   \nlonely\n0003 ok\n",
			want:  []Prompt{{"0003", "ok"}},
		},
		{
			name:  "bom and crlf",
			input: "\ufeff0001 你好世界\r\n0002 再见\r\n",
			want:  []Prompt{{"0001", "你好世界"}, {"0002", "再见"}},
		},
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRejectsPathIDs(t *testing.T) {
	for _, id := range []string{"../x", "a/b", `a\b`, "..", ".", "x..y"} {
		t.Run(id, func(t *testing.T) {
			_, err := Parse(strings.NewReader("0001 ok\n" + id + " escape\n"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "line 2")
		})
	}
}

func TestDuplicates(t *testing.T) {
	prompts := []Prompt{{"a", "1"}, {"b", "2"}, {"a", "3"}, {"a", "4"}, {"c", "5"}, {"b", "6"}}
	assert.Equal(t, []string{"a", "b"}, Duplicates(prompts))
	assert.Empty(t, Duplicates(prompts[:2]))
}

func TestProjectName(t *testing.T) {
	assert.Equal(t, "chapter01", ProjectName("/scripts/chapter01.txt"))
	assert.Equal(t, "record", ProjectName("record.txt"))
	assert.Equal(t, "noext", ProjectName("dir/noext"))
	assert.Equal(t, "archive.v2", ProjectName("archive.v2.txt"))
}

func TestNewProject(t *testing.T) {
	dir := t.TempDir()
	scriptPath := filepath.Join(dir, "chapter01.txt")
	require.NoError(t, os.WriteFile(scriptPath, []byte("0001 one\n0002 two\n"), 0644))

	base := filepath.Join(dir, "recordings")
	project, err := NewProject(scriptPath, base, "")
	require.NoError(t, err)

	assert.Equal(t, "chapter01", project.Name)
	assert.Equal(t, 2, project.Len())
	assert.Equal(t, filepath.Join(base, "chapter01"), project.OutputDir)
	assert.Equal(t, filepath.Join(base, "chapter01", "0002.wav"), project.ArtifactPath("0002"))
	assert.Equal(t, filepath.Join(base, "chapter01", "progress.json"), project.ProgressPath())

	custom, err := NewProjectFromPrompts(scriptPath, base, "cursor.json", project.Prompts)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "chapter01", "cursor.json"), custom.ProgressPath())
}

func TestNewProjectMissingScript(t *testing.T) {
	_, err := NewProject(filepath.Join(t.TempDir(), "missing.txt"), t.TempDir(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open script")
}
