package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Xantino1997/flores/internal/export"
	"github.com/Xantino1997/flores/internal/labels"
	"github.com/Xantino1997/flores/internal/models"
	"github.com/Xantino1997/flores/internal/roster"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	inspectGroup  string
	inspectFormat string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show a roster's metadata, groups and publishers",
	Long: `Load a roster and print its metadata, the navigable groups with their
active member counts and every publisher with its derived labels.

With --group only that group's sheet is printed, in sheet order.`,
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVarP(&rosterFile, "file", "f", "", "Roster XML file (required)")
	inspectCmd.Flags().StringVarP(&inspectGroup, "group", "g", "", "Only show this group (use \"inactivos\" for the inactive bucket)")
	inspectCmd.Flags().StringVar(&inspectFormat, "format", "text", "Output format: text, json or yaml")
	rootCmd.AddCommand(inspectCmd)
}

type groupReport struct {
	Group  string `json:"group" yaml:"group"`
	Active int    `json:"active" yaml:"active"`
}

type publisherReport struct {
	models.PublisherRecord `yaml:",inline"`
	Labels                 []string `json:"labels" yaml:"labels"`
}

type rosterReport struct {
	Source     string                `json:"source" yaml:"source"`
	Metadata   models.RosterMetadata `json:"metadata" yaml:"metadata"`
	Groups     []groupReport         `json:"groups" yaml:"groups"`
	Inactive   int                   `json:"inactive" yaml:"inactive"`
	Publishers []publisherReport     `json:"publishers" yaml:"publishers"`
}

func runInspect(cmd *cobra.Command, args []string) error {
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

	report := buildReport(session, inspectGroup)
	currentLogger().Debug("roster inspected",
		zap.String("file", rosterFile),
		zap.Int("publishers", len(report.Publishers)))

	return writeReport(cmd.OutOrStdout(), report, inspectFormat)
}

func buildReport(session *roster.Session, group string) rosterReport {
	pubs := session.Publishers()
	report := rosterReport{
		Source:   session.Source(),
		Metadata: session.Metadata(),
		Inactive: roster.InactiveCount(pubs),
	}

	counts := roster.GroupCounts(pubs)
	for _, g := range session.Groups() {
		report.Groups = append(report.Groups, groupReport{Group: g, Active: counts[g]})
	}

	if group != "" {
		pubs = session.Sheet(group)
	}
	report.Publishers = make([]publisherReport, 0, len(pubs))
	for _, p := range pubs {
		report.Publishers = append(report.Publishers, publisherReport{
			PublisherRecord: p,
			Labels:          labels.Strings(labels.Of(p)),
		})
	}
	return report
}

func writeReport(w io.Writer, report rosterReport, format string) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return enc.Close()
	case "text", "":
		return writeTextReport(w, report)
	}
	return fmt.Errorf("invalid format: %s. Use 'text', 'json' or 'yaml'", format)
}

func writeTextReport(w io.Writer, report rosterReport) error {
	var b strings.Builder
	meta := report.Metadata
	fmt.Fprintf(&b, "Archivo:  %s\n", report.Source)
	fmt.Fprintf(&b, "Agente:   %s %s\n", meta.Agent, meta.AgentVersion)
	fmt.Fprintf(&b, "Fecha:    %s\n", meta.Date)
	fmt.Fprintf(&b, "Count:    %s\n", meta.Count)

	b.WriteString("\nGrupos:\n")
	for _, g := range report.Groups {
		fmt.Fprintf(&b, "  %-10s %d\n", g.Group, g.Active)
	}
	fmt.Fprintf(&b, "  %-10s %d\n", roster.InactiveBucket, report.Inactive)

	b.WriteString("\nPublicadores:\n")
	for _, p := range report.Publishers {
		fmt.Fprintf(&b, "  [%s] %s (%s)", p.Group, p.FullName(), p.ID)
		if len(p.Labels) > 0 {
			fmt.Fprintf(&b, " %s", strings.Join(p.Labels, ", "))
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
