package cmd

import (
	"fmt"

	"github.com/Xantino1997/flores/internal/export"
	"github.com/Xantino1997/flores/internal/roster"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	exportGroup string
	exportXML   bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write group sheets (and optionally the roster) to disk",
	Long: `Write the ordered, labeled sheet of one group, or of every group plus the
inactive bucket, as timestamped grupo_<group> CSV files. With --xml the
roster is also written back as a publicadores_editado XML file.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&rosterFile, "file", "f", "", "Roster XML file (required)")
	exportCmd.Flags().StringVarP(&exportGroup, "group", "g", "", "Group to export (default: every group and the inactive bucket)")
	exportCmd.Flags().BoolVar(&exportXML, "xml", false, "Also write the roster XML")
	rootCmd.AddCommand(exportCmd)
}

// exportGroups lists the buckets to write: the requested one, or every
// navigable group followed by the inactive bucket when it has members.
func exportGroups(session *roster.Session, group string) []string {
	if group != "" {
		return []string{group}
	}
	groups := session.Groups()
	if roster.InactiveCount(session.Publishers()) > 0 {
		groups = append(groups, roster.InactiveBucket)
	}
	return groups
}

func runExport(cmd *cobra.Command, args []string) error {
	if rosterFile == "" {
		return fmt.Errorf("roster file is required (--file or PUBLIST_FILE)")
	}
	if err := export.ValidateInputFile(rosterFile); err != nil {
		return fmt.Errorf("roster file validation failed: %w", err)
	}

	session, err := newSession()
	if err != nil {
		return err
	}
	if err := session.LoadFile(rosterFile); err != nil {
		return err
	}

	log := currentLogger()
	svc := export.NewService(export.WithLogger(log), export.WithRecomputedCount(recomputeCount))

	var files []string
	if exportXML {
		path, err := svc.ExportRoster(session.Metadata(), session.Publishers(), outputDir)
		if err != nil {
			return err
		}
		files = append(files, path)
	}

	groups := exportGroups(session, exportGroup)
	log.Info("starting export", zap.String("file", rosterFile), zap.Strings("groups", groups))
	for _, g := range groups {
		path, err := svc.WriteGroupSheet(session.Sheet(g), g, outputDir)
		if err != nil {
			return fmt.Errorf("failed to export group %s: %w", g, err)
		}
		files = append(files, path)
	}

	log.Info("export completed", zap.Int("files", len(files)))
	for _, f := range files {
		fmt.Fprintln(cmd.OutOrStdout(), f)
	}
	return nil
}
