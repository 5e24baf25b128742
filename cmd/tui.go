package cmd

import (
	"fmt"

	"github.com/Xantino1997/flores/internal/export"
	"github.com/Xantino1997/flores/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive roster editor (same as default)",
	Long: `Start the terminal interface for browsing and editing a publisher roster.
Groups are listed in order with the inactive publishers in their own tab;
records can be edited, deleted and exported.

Note: This is the same as running the program without any commands.`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVarP(&rosterFile, "file", "f", "", "Roster XML file to open on start")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	session, err := newSession()
	if err != nil {
		return err
	}

	model := tui.NewModel(tui.Options{
		Session: session,
		Exporter: export.NewService(
			export.WithLogger(currentLogger()),
			export.WithRecomputedCount(recomputeCount),
		),
		Logger:      currentLogger(),
		OutputDir:   outputDir,
		InitialFile: rosterFile,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
