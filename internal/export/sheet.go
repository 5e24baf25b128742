package export

import (
	"strings"

	"github.com/Xantino1997/flores/internal/labels"
	"github.com/Xantino1997/flores/internal/models"
	"github.com/Xantino1997/flores/internal/roster"
)

const addressLimit = 48

// SheetRow is one line of a group sheet.
type SheetRow struct {
	Name    string `csv:"name"`
	Role    string `csv:"role"`
	Labels  string `csv:"labels"`
	Group   string `csv:"group"`
	ID      string `csv:"id"`
	Gender  string `csv:"gender"`
	Phone   string `csv:"phone"`
	Address string `csv:"address"`
}

// SheetRows renders an already ordered sheet of group. The role badge is
// left out of the inactive bucket; status labels and the group number
// only appear there.
func SheetRows(sheet []models.PublisherRecord, group string) []SheetRow {
	inactive := group == roster.InactiveBucket
	rows := make([]SheetRow, 0, len(sheet))
	for _, p := range sheet {
		row := SheetRow{
			Name:    p.FullName(),
			Labels:  strings.Join(sheetLabels(p, inactive), ", "),
			ID:      p.ID,
			Gender:  models.GenderDisplay(p.Gender),
			Phone:   p.ContactPhone(),
			Address: truncateAddress(p.Address),
		}
		if inactive {
			row.Group = p.Group
		} else {
			row.Role = roleBadge(p)
		}
		rows = append(rows, row)
	}
	return rows
}

func roleBadge(p models.PublisherRecord) string {
	switch {
	case labels.IsSuperintendent(p.GroupRole):
		return "SUPER"
	case labels.IsAssistant(p.GroupRole):
		return "AUXILIAR"
	}
	return ""
}

func sheetLabels(p models.PublisherRecord, inactive bool) []string {
	var out []string
	for _, l := range labels.Of(p) {
		if l == labels.GroupSuperintendent || l == labels.GroupAssistant {
			continue
		}
		if l.IsStatus() && !inactive {
			continue
		}
		out = append(out, l.String())
	}
	return out
}

func truncateAddress(addr string) string {
	if addr == "" {
		return "N/A"
	}
	r := []rune(addr)
	if len(r) <= addressLimit {
		return addr
	}
	return string(r[:addressLimit]) + "..."
}
