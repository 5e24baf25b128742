package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Xantino1997/flores/internal/export"
	"github.com/Xantino1997/flores/internal/models"
	"github.com/Xantino1997/flores/internal/roster"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	editID           string
	editSets         []string
	editMonths       []string
	editRemove       bool
	skipConfirmation bool
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit or remove one publisher and write the edited roster",
	Long: `Load a roster, apply field edits to one publisher (or remove it) and write
the result as a new timestamped publicadores_editado XML file.

Examples:
  publist edit -f pubs.xml --id 17 --set group=3 --set phone2=555-0000
  publist edit -f pubs.xml --id 17 --month 0:Hours=12
  publist edit -f pubs.xml --id 17 --remove --yes`,
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVarP(&rosterFile, "file", "f", "", "Roster XML file (required)")
	editCmd.Flags().StringVar(&editID, "id", "", "Id of the publisher to edit (required)")
	editCmd.Flags().StringArrayVar(&editSets, "set", nil, "Field assignment field=value, e.g. fname=Ana (repeatable)")
	editCmd.Flags().StringArrayVar(&editMonths, "month", nil, "Month assignment index:field=value, e.g. 0:Hours=10 (repeatable)")
	editCmd.Flags().BoolVar(&editRemove, "remove", false, "Remove the publisher instead of editing it")
	editCmd.Flags().BoolVar(&skipConfirmation, "yes", false, "Skip confirmation prompts")

	editCmd.MarkFlagRequired("id")
	rootCmd.AddCommand(editCmd)
}

type fieldEdit struct {
	Field models.PublisherField
	Value string
}

type monthEdit struct {
	Index int
	Field models.MonthField
	Value string
}

func parseFieldEdit(s string) (fieldEdit, error) {
	name, value, ok := strings.Cut(s, "=")
	if !ok {
		return fieldEdit{}, fmt.Errorf("invalid assignment %q: expected field=value", s)
	}
	field, err := models.ParsePublisherField(strings.TrimSpace(name))
	if err != nil {
		return fieldEdit{}, err
	}
	return fieldEdit{Field: field, Value: value}, nil
}

func parseMonthEdit(s string) (monthEdit, error) {
	index, rest, ok := strings.Cut(s, ":")
	if !ok {
		return monthEdit{}, fmt.Errorf("invalid month assignment %q: expected index:field=value", s)
	}
	i, err := strconv.Atoi(strings.TrimSpace(index))
	if err != nil {
		return monthEdit{}, fmt.Errorf("invalid month index %q: %w", index, err)
	}
	name, value, ok := strings.Cut(rest, "=")
	if !ok {
		return monthEdit{}, fmt.Errorf("invalid month assignment %q: expected index:field=value", s)
	}
	field, err := models.ParseMonthField(strings.TrimSpace(name))
	if err != nil {
		return monthEdit{}, err
	}
	return monthEdit{Index: i, Field: field, Value: value}, nil
}

// applyEdits runs month edits first, then scalar fields, with the group
// and the id last so every step still finds the record by id.
func applyEdits(session *roster.Session, id string, fields []fieldEdit, months []monthEdit) error {
	for _, me := range months {
		if err := session.SetMonthField(id, me.Index, me.Field, me.Value); err != nil {
			return fmt.Errorf("failed to set month %d %s: %w", me.Index, me.Field, err)
		}
	}

	var deferred []fieldEdit
	for _, fe := range fields {
		if fe.Field == models.FieldGroup || fe.Field == models.FieldID {
			deferred = append(deferred, fe)
			continue
		}
		if err := session.SetField(id, fe.Field, fe.Value); err != nil {
			return fmt.Errorf("failed to set %s: %w", fe.Field, err)
		}
	}
	// group before id
	for _, want := range []models.PublisherField{models.FieldGroup, models.FieldID} {
		for _, fe := range deferred {
			if fe.Field != want {
				continue
			}
			if err := session.SetField(id, fe.Field, fe.Value); err != nil {
				return fmt.Errorf("failed to set %s: %w", fe.Field, err)
			}
			if fe.Field == models.FieldID {
				id = fe.Value
			}
		}
	}
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	if rosterFile == "" {
		return fmt.Errorf("roster file is required (--file or PUBLIST_FILE)")
	}
	if !editRemove && len(editSets) == 0 && len(editMonths) == 0 {
		return fmt.Errorf("nothing to do: use --set, --month or --remove")
	}

	fields := make([]fieldEdit, 0, len(editSets))
	for _, s := range editSets {
		fe, err := parseFieldEdit(s)
		if err != nil {
			return err
		}
		fields = append(fields, fe)
	}
	months := make([]monthEdit, 0, len(editMonths))
	for _, s := range editMonths {
		me, err := parseMonthEdit(s)
		if err != nil {
			return err
		}
		months = append(months, me)
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
	if err := session.Select(editID); err != nil {
		return err
	}
	target, _, _ := session.Selected()

	log := currentLogger()
	if editRemove {
		if !skipConfirmation {
			fmt.Fprintf(cmd.OutOrStdout(), "About to remove %s (id %s, group %s) from %s\n",
				target.FullName(), target.ID, target.Group, rosterFile)
			if !confirmAction(cmd.InOrStdin(), cmd.OutOrStdout(), "Do you want to continue?") {
				fmt.Fprintln(cmd.OutOrStdout(), "Edit cancelled")
				return nil
			}
		}
		if err := session.Remove(editID); err != nil {
			return err
		}
	} else if err := applyEdits(session, editID, fields, months); err != nil {
		return err
	}

	svc := export.NewService(export.WithLogger(log), export.WithRecomputedCount(recomputeCount))
	path, err := svc.ExportRoster(session.Metadata(), session.Publishers(), outputDir)
	if err != nil {
		return err
	}

	log.Info("edited roster written",
		zap.String("source", rosterFile),
		zap.String("file", path),
		zap.String("id", editID),
		zap.Bool("removed", editRemove),
		zap.Int("field_edits", len(fields)),
		zap.Int("month_edits", len(months)))
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func confirmAction(in io.Reader, out io.Writer, message string) bool {
	fmt.Fprintf(out, "%s (y/N): ", message)
	reader := bufio.NewReader(in)
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
