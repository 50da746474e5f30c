package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	recerrors "promptrec/pkg/errors"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status <script>",
	Short: "Show the current prompt and overall progress",
	Long: `Open the project for a script and show where recording stands.

Opening a project repairs its progress file when needed: an unreadable file is
backed up as progress.json.backup_<unixtime>, an empty one is removed, and the
position is then recovered from the first prompt without a recording.`,
	Example: `  promptrec status scripts/chapter01.txt
  promptrec status scripts/chapter01.txt --output /data/recordings`,
	Args: cobra.ExactArgs(1),
	RunE: runStatus,
}

// nextCmd represents the next command
var nextCmd = &cobra.Command{
	Use:   "next <script>",
	Short: "Advance to the next prompt",
	Long: `Advance past the current prompt. The current prompt must already have a
recording; use 'promptrec import' to store one.`,
	Args: cobra.ExactArgs(1),
	RunE: runNext,
}

// prevCmd represents the prev command
var prevCmd = &cobra.Command{
	Use:     "prev <script>",
	Aliases: []string{"previous"},
	Short:   "Go back to the previous prompt",
	Args:    cobra.ExactArgs(1),
	RunE:    runPrev,
}

// jumpCmd represents the jump command
var jumpCmd = &cobra.Command{
	Use:   "jump <script> <number>",
	Short: "Jump to a prompt by its position",
	Long: `Jump to a prompt by its position in the script, counting from 1.

Jumping does not require any recording to exist.`,
	Example: `  # Go to the tenth prompt
  promptrec jump scripts/chapter01.txt 10`,
	Args: cobra.ExactArgs(2),
	RunE: runJump,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(prevCmd)
	rootCmd.AddCommand(jumpCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ws, err := loadWorkspace(args[0])
	if err != nil {
		return err
	}

	s := ws.open()
	return printStatus(s, ws.store)
}

func runNext(cmd *cobra.Command, args []string) error {
	ws, err := loadWorkspace(args[0])
	if err != nil {
		return err
	}

	s := ws.open()
	err = s.Next()
	switch {
	case recerrors.IsType(err, recerrors.ErrorTypeNotRecorded):
		current, _ := s.Current()
		return fmt.Errorf("prompt %s has no recording yet; import one with 'promptrec import %s <file.wav>'",
			current.ID, args[0])
	case recerrors.IsType(err, recerrors.ErrorTypeOutOfRange):
		return fmt.Errorf("already past the last prompt")
	}
	if err := navigationResult(err); err != nil {
		return err
	}

	return printStatus(s, ws.store)
}

func runPrev(cmd *cobra.Command, args []string) error {
	ws, err := loadWorkspace(args[0])
	if err != nil {
		return err
	}

	s := ws.open()
	err = s.Previous()
	if recerrors.IsType(err, recerrors.ErrorTypeOutOfRange) {
		return fmt.Errorf("already at the first prompt")
	}
	if err := navigationResult(err); err != nil {
		return err
	}

	return printStatus(s, ws.store)
}

func runJump(cmd *cobra.Command, args []string) error {
	number, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid prompt number %q", args[1])
	}

	ws, err := loadWorkspace(args[0])
	if err != nil {
		return err
	}

	s := ws.open()
	err = s.Jump(number - 1)
	if recerrors.IsType(err, recerrors.ErrorTypeOutOfRange) {
		return fmt.Errorf("prompt number must be between 1 and %d", s.Total())
	}
	if err := navigationResult(err); err != nil {
		return err
	}

	return printStatus(s, ws.store)
}
