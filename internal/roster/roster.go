// Package roster holds the operations on a loaded publisher collection:
// loading, ordering, grouping and field edits. Collections are treated as
// values; every edit returns a new slice and leaves its input untouched.
package roster

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Xantino1997/flores/internal/models"
	"github.com/Xantino1997/flores/internal/publist"
)

var (
	ErrRecordNotFound  = errors.New("publisher not found")
	ErrUnknownField    = errors.New("unknown field")
	ErrMonthOutOfRange = errors.New("month index out of range")
)

// InferPioneers marks as "Regular" every publisher with an empty pioneer
// flag and at least one month reported as "reg". It never clears a flag.
func InferPioneers(pubs []models.PublisherRecord) {
	for i := range pubs {
		if pubs[i].Pioneer != "" {
			continue
		}
		for _, m := range pubs[i].Months {
			if strings.EqualFold(m.Pioneer, "reg") {
				pubs[i].Pioneer = "Regular"
				break
			}
		}
	}
}

// Load parses raw, infers pioneer flags and orders the result by p.
func (p *Policy) Load(raw []byte) (models.RosterMetadata, []models.PublisherRecord, error) {
	doc, err := publist.Parse(raw)
	if err != nil {
		return models.RosterMetadata{}, nil, err
	}
	InferPioneers(doc.Publishers)
	p.Sort(doc.Publishers)
	return doc.Metadata, doc.Publishers, nil
}

// Load is Policy.Load with DefaultPolicy.
func Load(raw []byte) (models.RosterMetadata, []models.PublisherRecord, error) {
	return DefaultPolicy.Load(raw)
}

// IndexOf returns the position of the first publisher with id, or -1.
// Ids are not guaranteed unique; the first match wins.
func IndexOf(pubs []models.PublisherRecord, id string) int {
	for i := range pubs {
		if pubs[i].ID == id {
			return i
		}
	}
	return -1
}

// SetField sets one scalar field of the publisher with id. Changing the
// group number re-sorts the returned collection.
func (p *Policy) SetField(pubs []models.PublisherRecord, id string, field models.PublisherField, value string) ([]models.PublisherRecord, error) {
	i := IndexOf(pubs, id)
	if i < 0 {
		return pubs, fmt.Errorf("%w: %q", ErrRecordNotFound, id)
	}
	out := slices.Clone(pubs)
	ptr := out[i].Field(field)
	if ptr == nil {
		return pubs, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	old := *ptr
	*ptr = value
	if field == models.FieldGroup && old != value {
		p.Sort(out)
	}
	return out, nil
}

// SetField is Policy.SetField with DefaultPolicy.
func SetField(pubs []models.PublisherRecord, id string, field models.PublisherField, value string) ([]models.PublisherRecord, error) {
	return DefaultPolicy.SetField(pubs, id, field, value)
}

// SetMonthField sets one field of the publisher's monthIndex-th month
// record. Values are stored as given; metrics are not validated.
func SetMonthField(pubs []models.PublisherRecord, id string, monthIndex int, field models.MonthField, value string) ([]models.PublisherRecord, error) {
	i := IndexOf(pubs, id)
	if i < 0 {
		return pubs, fmt.Errorf("%w: %q", ErrRecordNotFound, id)
	}
	if monthIndex < 0 || monthIndex >= len(pubs[i].Months) {
		return pubs, fmt.Errorf("%w: %d of %d", ErrMonthOutOfRange, monthIndex, len(pubs[i].Months))
	}
	out := slices.Clone(pubs)
	out[i] = out[i].Clone()
	ptr := out[i].Months[monthIndex].Field(field)
	if ptr == nil {
		return pubs, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	*ptr = value
	return out, nil
}

// RemoveRecord drops the first publisher with id.
func RemoveRecord(pubs []models.PublisherRecord, id string) ([]models.PublisherRecord, error) {
	i := IndexOf(pubs, id)
	if i < 0 {
		return pubs, fmt.Errorf("%w: %q", ErrRecordNotFound, id)
	}
	out := make([]models.PublisherRecord, 0, len(pubs)-1)
	out = append(out, pubs[:i]...)
	out = append(out, pubs[i+1:]...)
	return out, nil
}
