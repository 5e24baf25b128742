package roster

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/Xantino1997/flores/internal/models"
	"github.com/Xantino1997/flores/internal/publist"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedSession(t *testing.T) (*Session, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return NewSession(WithLogger(zap.New(core))), logs
}

func TestSession_LoadSelectsFirstRecord(t *testing.T) {
	s, logs := newObservedSession(t)
	assert.False(t, s.Loaded())

	require.NoError(t, s.Load(readFixture(t)))
	assert.True(t, s.Loaded())
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, Selection{PublisherID: "4", Group: "1"}, s.Selection())

	p, pos, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, 0, pos)
	assert.Equal(t, "Luis", p.FirstName)

	entries := logs.FilterMessage("roster loaded").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(3), entries[0].ContextMap()["publishers"])
}

func TestSession_FailedLoadKeepsPreviousRoster(t *testing.T) {
	s, logs := newObservedSession(t)
	require.NoError(t, s.Load(readFixture(t)))
	before := s.Publishers()
	sel := s.Selection()

	for _, bad := range []string{"", "nope", "<PUBLIST><Active>", "<PUBLIST/>"} {
		err := s.Load([]byte(bad))
		require.Error(t, err, "input %q", bad)
		assert.Equal(t, before, s.Publishers())
		assert.Equal(t, sel, s.Selection())
		assert.Equal(t, "Hourglass", s.Metadata().Agent)
	}
	assert.Equal(t, 4, logs.FilterMessage("roster load failed, keeping previous roster").Len())

	err := s.LoadFile(filepath.Join(t.TempDir(), "missing.xml"))
	require.Error(t, err)
	assert.Equal(t, before, s.Publishers())
}

func TestSession_LoadFile(t *testing.T) {
	s := NewSession()
	path := filepath.Join("testdata", "roster.xml")
	require.NoError(t, s.LoadFile(path))
	assert.Equal(t, path, s.Source())
	assert.Equal(t, []string{"1", "2"}, s.Groups())
}

func TestSession_GroupEditReselects(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Load(readFixture(t)))

	require.NoError(t, s.SetField("4", models.FieldGroup, "3"))
	assert.Equal(t, Selection{PublisherID: "4", Group: "3"}, s.Selection())
	assert.Equal(t, []string{"2", "3"}, s.Groups())

	p, pos, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "4", p.ID)
	assert.Equal(t, 2, pos, "position is resolved after the re-sort")
	assert.Equal(t, []string{"4"}, ids(s.CurrentBucket()))
}

func TestSession_SameGroupValueDoesNotMoveSelection(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Load(readFixture(t)))
	s.SelectGroup("2")
	require.NoError(t, s.SetField("4", models.FieldGroup, "1"))
	assert.Equal(t, "2", s.Selection().Group)
}

func TestSession_IDEditFollowsSelection(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Load(readFixture(t)))
	require.NoError(t, s.SetField("4", models.FieldID, "40"))
	assert.Equal(t, "40", s.Selection().PublisherID)
	_, _, ok := s.Selected()
	assert.True(t, ok)
}

func TestSession_SelectAndSelectGroup(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Load(readFixture(t)))

	require.NoError(t, s.Select("17"))
	assert.Equal(t, "17", s.Selection().PublisherID)
	assert.ErrorIs(t, s.Select("nobody"), ErrRecordNotFound)

	s.SelectGroup(InactiveBucket)
	assert.Equal(t, Selection{PublisherID: "9", Group: InactiveBucket}, s.Selection())
	assert.Equal(t, []string{"9"}, ids(s.CurrentBucket()))

	s.SelectGroup("42")
	assert.Equal(t, "42", s.Selection().Group)
	assert.Equal(t, "9", s.Selection().PublisherID, "empty group keeps the publisher selection")
}

func TestSession_RemoveSelectsNeighbour(t *testing.T) {
	s, logs := newObservedSession(t)
	require.NoError(t, s.Load(readFixture(t)))
	// order: 4, 9, 17

	require.NoError(t, s.Select("9"))
	require.NoError(t, s.Remove("9"))
	assert.Equal(t, "17", s.Selection().PublisherID, "next record takes the removed position")

	require.NoError(t, s.Remove("17"))
	assert.Equal(t, "4", s.Selection().PublisherID, "falls back to the last record")

	require.NoError(t, s.Remove("4"))
	assert.Equal(t, Selection{}, s.Selection())
	_, _, ok := s.Selected()
	assert.False(t, ok)
	assert.True(t, s.Loaded(), "an emptied roster is still loaded")

	assert.Equal(t, 3, logs.FilterMessage("publisher removed").Len())
	assert.ErrorIs(t, s.Remove("4"), ErrRecordNotFound)
}

func TestSession_RemoveUnselectedKeepsSelection(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Load(readFixture(t)))
	require.NoError(t, s.Remove("17"))
	assert.Equal(t, "4", s.Selection().PublisherID)
}

func TestSession_MonthEditAndMarshal(t *testing.T) {
	s := NewSession()
	_, err := s.Marshal()
	assert.Error(t, err)

	require.NoError(t, s.Load(readFixture(t)))
	require.NoError(t, s.SetMonthField("17", 0, models.MonthRemark, "a < b & c"))
	assert.ErrorIs(t, s.SetMonthField("4", 0, models.MonthRemark, "x"), ErrMonthOutOfRange)

	out, err := s.Marshal()
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(out), "<Remark>a &lt; b &amp; c</Remark>"))
	assert.Contains(t, string(out), "<Count>3</Count>")

	out, err = s.Marshal(publist.WithRecomputedCount())
	require.NoError(t, err)
	assert.Contains(t, string(out), "<Count>3</Count>")

	require.NoError(t, s.Remove("9"))
	out, err = s.Marshal(publist.WithRecomputedCount())
	require.NoError(t, err)
	assert.Contains(t, string(out), "<Count>2</Count>")
}

func TestSession_SheetUsesPolicy(t *testing.T) {
	s := NewSession(WithPolicy(DefaultPolicy))
	require.NoError(t, s.Load(readFixture(t)))
	assert.Same(t, DefaultPolicy, s.Policy())
	assert.Equal(t, []string{"4"}, ids(s.Sheet("1")))
	assert.Equal(t, []string{"9"}, ids(s.Sheet(InactiveBucket)))
}
