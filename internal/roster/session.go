package roster

import (
	"errors"
	"fmt"
	"os"

	"github.com/Xantino1997/flores/internal/models"
	"github.com/Xantino1997/flores/internal/publist"

	"go.uber.org/zap"
)

// Selection names the record and group a user is looking at. It holds ids,
// not positions; positions are resolved on demand.
type Selection struct {
	PublisherID string
	Group       string
}

// Session is one editing session over one roster. It is not safe for
// concurrent use.
type Session struct {
	policy *Policy
	logger *zap.Logger

	meta      models.RosterMetadata
	pubs      []models.PublisherRecord
	selection Selection
	source    string
}

type SessionOption func(*Session)

func WithLogger(logger *zap.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

func WithPolicy(p *Policy) SessionOption {
	return func(s *Session) {
		s.policy = p
	}
}

func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		policy: DefaultPolicy,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the session's roster with raw. On error the previous
// roster and selection are kept.
func (s *Session) Load(raw []byte) error {
	meta, pubs, err := s.policy.Load(raw)
	if err != nil {
		s.logger.Warn("roster load failed, keeping previous roster",
			zap.Error(err),
			zap.Int("previous_publishers", len(s.pubs)))
		return err
	}

	s.meta = meta
	s.pubs = pubs
	s.selection = Selection{}
	if len(pubs) > 0 {
		s.selection = Selection{PublisherID: pubs[0].ID, Group: pubs[0].Group}
	}
	s.logger.Info("roster loaded",
		zap.Int("publishers", len(pubs)),
		zap.String("agent", meta.Agent),
		zap.String("date", meta.Date),
		zap.Int("groups", len(Groups(pubs))))
	return nil
}

// LoadFile reads filename to completion and loads it.
func (s *Session) LoadFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		s.logger.Warn("roster read failed, keeping previous roster", zap.String("file", filename), zap.Error(err))
		return fmt.Errorf("failed to read roster file: %w", err)
	}
	if err := s.Load(data); err != nil {
		return err
	}
	s.source = filename
	return nil
}

// Loaded reports whether a roster has been loaded.
func (s *Session) Loaded() bool {
	return s.pubs != nil
}

// Source returns the file the roster was loaded from, if any.
func (s *Session) Source() string {
	return s.source
}

func (s *Session) Metadata() models.RosterMetadata {
	return s.meta
}

// Publishers returns the collection in its current order. Callers must not
// modify it.
func (s *Session) Publishers() []models.PublisherRecord {
	return s.pubs
}

func (s *Session) Len() int {
	return len(s.pubs)
}

func (s *Session) Policy() *Policy {
	return s.policy
}

// Groups returns the navigable group numbers.
func (s *Session) Groups() []string {
	return Groups(s.pubs)
}

func (s *Session) Selection() Selection {
	return s.selection
}

// Select points the selection at the publisher with id.
func (s *Session) Select(id string) error {
	if IndexOf(s.pubs, id) < 0 {
		return fmt.Errorf("%w: %q", ErrRecordNotFound, id)
	}
	s.selection.PublisherID = id
	return nil
}

// SelectGroup points the group selection at group. The publisher
// selection moves to the first member of the group when it has one.
func (s *Session) SelectGroup(group string) {
	s.selection.Group = group
	if members := Bucket(s.pubs, group); len(members) > 0 {
		s.selection.PublisherID = members[0].ID
	}
}

// Selected resolves the selected publisher and its current position.
func (s *Session) Selected() (models.PublisherRecord, int, bool) {
	i := IndexOf(s.pubs, s.selection.PublisherID)
	if i < 0 {
		return models.PublisherRecord{}, -1, false
	}
	return s.pubs[i], i, true
}

// CurrentBucket returns the members of the selected group.
func (s *Session) CurrentBucket() []models.PublisherRecord {
	return Bucket(s.pubs, s.selection.Group)
}

// Sheet returns the export view of group.
func (s *Session) Sheet(group string) []models.PublisherRecord {
	return s.policy.Sheet(s.pubs, group)
}

// SetField edits one scalar field. A group change re-sorts the collection
// and moves the selection to the edited record in its new group.
func (s *Session) SetField(id string, field models.PublisherField, value string) error {
	before := ""
	if i := IndexOf(s.pubs, id); i >= 0 {
		if ptr := s.pubs[i].Field(field); ptr != nil {
			before = *ptr
		}
	}
	pubs, err := s.policy.SetField(s.pubs, id, field, value)
	if err != nil {
		return err
	}
	s.pubs = pubs

	if field == models.FieldGroup && before != value {
		s.selection = Selection{PublisherID: id, Group: value}
		s.logger.Debug("group changed, roster re-sorted",
			zap.String("id", id),
			zap.String("from", before),
			zap.String("to", value))
	}
	if field == models.FieldID && s.selection.PublisherID == id {
		s.selection.PublisherID = value
	}
	return nil
}

// SetMonthField edits one field of a month record.
func (s *Session) SetMonthField(id string, monthIndex int, field models.MonthField, value string) error {
	pubs, err := SetMonthField(s.pubs, id, monthIndex, field, value)
	if err != nil {
		return err
	}
	s.pubs = pubs
	return nil
}

// Remove deletes the publisher with id. When it was selected, the
// selection moves to the record now at the same position, or to the last
// record; an emptied roster clears the selection.
func (s *Session) Remove(id string) error {
	i := IndexOf(s.pubs, id)
	pubs, err := RemoveRecord(s.pubs, id)
	if err != nil {
		return err
	}
	s.pubs = pubs
	s.logger.Info("publisher removed", zap.String("id", id), zap.Int("remaining", len(pubs)))

	if len(pubs) == 0 {
		s.selection = Selection{}
		return nil
	}
	if s.selection.PublisherID != id || IndexOf(pubs, id) >= 0 {
		return nil
	}
	if i >= len(pubs) {
		i = len(pubs) - 1
	}
	s.selection.PublisherID = pubs[i].ID
	return nil
}

// Marshal serializes the session's roster.
func (s *Session) Marshal(opts ...publist.Option) ([]byte, error) {
	if !s.Loaded() {
		return nil, errors.New("no roster loaded")
	}
	return publist.Marshal(s.meta, s.pubs, opts...)
}
