package script

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// Prompt is one unit to be recorded
type Prompt struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Parse reads prompts one per line in the form "<id> <text>".
// The first whitespace run separates the id from the text, which is kept verbatim.
// Blank lines and lines without text are skipped. An id that would name a
// file outside the project directory is an error.
func Parse(r io.Reader) ([]Prompt, error) {
	var prompts []Prompt

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	first := true
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		cut := strings.IndexFunc(line, unicode.IsSpace)
		if cut < 0 {
			continue
		}
		id := line[:cut]
		if !validID(id) {
			return nil, fmt.Errorf("line %d: prompt id %q cannot be used as a file name", lineNo, id)
		}
		text := strings.TrimLeftFunc(line[cut:], unicode.IsSpace)
		prompts = append(prompts, Prompt{ID: id, Text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	return prompts, nil
}

// validID rejects ids holding a path separator or a parent reference
func validID(id string) bool {
	if strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return false
	}
	return id != "." && filepath.Base(id) == id
}

// LoadFile parses the script at path
func LoadFile(path string) ([]Prompt, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Duplicates returns ids that appear more than once, in first-seen order.
// Such prompts share one artifact file, so recording the later one replaces the earlier.
func Duplicates(prompts []Prompt) []string {
	seen := make(map[string]int, len(prompts))
	var dups []string
	for _, p := range prompts {
		seen[p.ID]++
		if seen[p.ID] == 2 {
			dups = append(dups, p.ID)
		}
	}
	return dups
}

// ProjectName derives a project name from the script filename without its extension
func ProjectName(scriptPath string) string {
	base := filepath.Base(scriptPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
