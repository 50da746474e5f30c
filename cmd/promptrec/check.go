package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"promptrec/pkg/script"
	"promptrec/pkg/storage"
	"promptrec/pkg/ui"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <script>",
	Short: "List prompts without recordings",
	Long: `List every prompt that has no recording yet, warn about duplicate prompt
ids, and report recordings whose format differs from the configured one.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

// detectCmd represents the detect command
var detectCmd = &cobra.Command{
	Use:   "detect <script>",
	Short: "Show where recording would resume based on recordings on disk",
	Long: `Show the first prompt that has no recording. This is the position used when
the progress file is missing or damaged. The progress file is not read or
changed.`,
	Args: cobra.ExactArgs(1),
	RunE: runDetect,
}

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <script>",
	Short: "Check the progress file and delete it if it is invalid",
	Long: `Check the project's progress file. It must be a non-empty JSON object with
current_index, project_name, text_file and total_records, and current_index
must be a non-negative integer. A file failing any check is deleted, and the
next command that opens the project recovers the position from recordings.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(validateCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	ws, err := loadWorkspace(args[0])
	if err != nil {
		return err
	}

	for _, id := range script.Duplicates(ws.project.Prompts) {
		ui.PrintWarning("Duplicate prompt id shares one recording", id)
	}

	s := ws.open()
	missing, err := s.Missing()
	if err != nil {
		return err
	}

	isMissing := make(map[int]bool, len(missing))
	for _, i := range missing {
		isMissing[i] = true
	}

	for i, p := range ws.project.Prompts {
		if isMissing[i] {
			continue
		}
		info, err := ws.store.Inspect(p.ID)
		if err != nil {
			ui.PrintWarning("Unreadable recording "+p.ID, err)
			continue
		}
		for _, problem := range storage.CheckFormat(info, ws.cfg.Audio) {
			ui.PrintWarning("Recording "+p.ID+" format differs", problem)
		}
	}

	if len(missing) == 0 {
		ui.PrintSuccess(fmt.Sprintf("All %d prompts are recorded", s.Total()))
		return nil
	}

	ui.PrintHighlight(fmt.Sprintf("%d of %d prompts have no recording:", len(missing), s.Total()))
	for _, i := range missing {
		p := ws.project.Prompts[i]
		ui.PrintPlain(fmt.Sprintf("  %4d  %s  %s", i+1, p.ID, p.Text))
	}
	return nil
}

func runDetect(cmd *cobra.Command, args []string) error {
	ws, err := loadWorkspace(args[0])
	if err != nil {
		return err
	}

	index, err := ws.tracker().DetectProgress()
	if err != nil {
		return err
	}

	ui.PrintInfo("Recorded", fmt.Sprintf("%d", ws.store.GetRecordedCount()))
	if ws.project.Len() == 0 {
		ui.PrintInfo("Resume at", "nothing to record")
		return nil
	}

	p := ws.project.Prompts[index]
	ui.PrintInfo("Resume at", fmt.Sprintf("%s (%s)", ui.Position(index, ws.project.Len()), p.ID))
	ui.PrintPlain(p.Text)
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	ws, err := loadWorkspace(args[0])
	if err != nil {
		return err
	}

	tr := ws.tracker()
	ui.PrintInfo("Validating", tr.Path())

	out := tr.Validate()
	if out.OK() {
		ui.PrintSuccess("Progress file is valid")
		return nil
	}

	for _, w := range out.Warnings {
		ws.log.WarnWithFields(w.Reason, map[string]interface{}{
			"kind": string(w.Kind),
			"path": w.Path,
		})
		ui.PrintWarning("Invalid progress file", w.String())
	}
	if out.Removed {
		ui.PrintWarning("Progress file deleted; position will be recovered from recordings")
	}
	return nil
}
