package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthTagsAreFixed(t *testing.T) {
	assert.Equal(t, []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}, MonthTags)
	assert.True(t, IsMonthTag("Jun"))
	assert.False(t, IsMonthTag("jun"))
	assert.False(t, IsMonthTag("June"))
}

func TestPunctuatedMonthFieldNames(t *testing.T) {
	assert.Equal(t, "R.V.s", string(MonthReturnVisits))
	assert.Equal(t, "BiSt.", string(MonthBibleStudies))
}

func TestEveryPublisherFieldHasStorage(t *testing.T) {
	var p PublisherRecord
	for i, f := range PublisherFields {
		ptr := p.Field(f)
		require.NotNil(t, ptr, "field %s", f)
		*ptr = string(rune('a' + i))
	}
	assert.Equal(t, "a", p.ID)
	assert.Equal(t, "k", p.Group)
	assert.Equal(t, "n", p.Pioneer)
	assert.Nil(t, p.Field("months"))
}

func TestEveryMonthFieldHasStorage(t *testing.T) {
	var m MonthRecord
	for _, f := range MonthFields {
		require.NotNil(t, m.Field(f), "field %s", f)
	}
	*m.Field(MonthReturnVisits) = "4"
	assert.Equal(t, "4", m.ReturnVisits)
	assert.Nil(t, m.Field("Year"))
}

func TestParseFieldNames(t *testing.T) {
	f, err := ParsePublisherField("groupname")
	require.NoError(t, err)
	assert.Equal(t, FieldGroupRole, f)

	_, err = ParsePublisherField("GroupName")
	assert.Error(t, err)

	mf, err := ParseMonthField("BiSt.")
	require.NoError(t, err)
	assert.Equal(t, MonthBibleStudies, mf)
	assert.True(t, mf.IsMetric())
	assert.False(t, MonthRemark.IsMetric())

	_, err = ParseMonthField("BiSt")
	assert.Error(t, err)
}

func TestCloneDoesNotShareMonths(t *testing.T) {
	p := PublisherRecord{ID: "1", Months: []MonthRecord{{Month: "Jan", Year: "2024", Hours: "5"}}}
	c := p.Clone()
	c.Months[0].Hours = "9"
	assert.Equal(t, "5", p.Months[0].Hours)
}

func TestDisplayHelpers(t *testing.T) {
	assert.Equal(t, "Ene", MonthDisplayName("Jan"))
	assert.Equal(t, "Dic", MonthDisplayName("Dec"))
	assert.Equal(t, "Foo", MonthDisplayName("Foo"))

	assert.Equal(t, "Hombre", GenderDisplay("Male"))
	assert.Equal(t, "Mujer", GenderDisplay("Female"))
	assert.Equal(t, "otro", GenderDisplay("otro"))

	assert.Equal(t, "222", PublisherRecord{Phone: "111", Phone2: "222"}.ContactPhone())
	assert.Equal(t, "111", PublisherRecord{Phone: "111"}.ContactPhone())
	assert.Equal(t, "N/A", PublisherRecord{}.ContactPhone())
	assert.Equal(t, "Ana Ruiz", PublisherRecord{FirstName: "Ana", LastName: "Ruiz"}.FullName())
}
