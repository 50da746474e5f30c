package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"promptrec/pkg/logger"
	"promptrec/pkg/storage"
	"promptrec/pkg/ui"
)

var (
	// Import command flags
	importID      string
	importAdvance bool
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <script> <file.wav>",
	Short: "Store a WAV file as the recording for the current prompt",
	Long: `Store a WAV file as the recording for the current prompt, or for the prompt
given with --id. The file must be a valid WAV; clips that differ from the
configured audio format are stored with a warning.`,
	Example: `  # Store a take for the current prompt and move on
  promptrec import scripts/chapter01.txt take.wav --advance

  # Replace the recording of a specific prompt
  promptrec import scripts/chapter01.txt retake.wav --id 0007`,
	Args: cobra.ExactArgs(2),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVar(&importID, "id", "", "prompt id to store the recording for (default: current prompt)")
	importCmd.Flags().BoolVar(&importAdvance, "advance", false, "advance to the next prompt after storing")
}

func runImport(cmd *cobra.Command, args []string) error {
	ws, err := loadWorkspace(args[0])
	if err != nil {
		return err
	}

	s := ws.open()

	id := importID
	if id == "" {
		current, ok := s.Current()
		if !ok {
			return fmt.Errorf("no current prompt; the script is complete")
		}
		id = current.ID
	} else if !hasPrompt(ws, id) {
		return fmt.Errorf("prompt %s is not in %s", id, args[0])
	}

	path, err := ws.store.ImportWAV(args[1], id)
	logger.LogArtifact(logger.GetLogger(), ws.project.Name, id, path, err)
	if err != nil {
		return err
	}
	ui.PrintSuccess("Stored " + path)

	if info, err := ws.store.Inspect(id); err == nil {
		for _, problem := range storage.CheckFormat(info, ws.cfg.Audio) {
			ui.PrintWarning("Recording format differs", problem)
		}
	}

	if err := navigationResult(s.MarkRecorded()); err != nil {
		return err
	}

	if importAdvance {
		if current, ok := s.Current(); ok && current.ID == id {
			if err := navigationResult(s.Next()); err != nil {
				return err
			}
		}
	}

	return printStatus(s, ws.store)
}

func hasPrompt(ws *workspace, id string) bool {
	for _, p := range ws.project.Prompts {
		if p.ID == id {
			return true
		}
	}
	return false
}
