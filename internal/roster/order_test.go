package roster

import (
	"testing"

	"github.com/Xantino1997/flores/internal/models"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestGroupRank(t *testing.T) {
	tests := map[string]int{
		"1":    1,
		" 2":   2,
		"\t12": 12,
		"3a":   3,
		"1.5":  1,
		"007":  7,
		"+4":   4,
		"-1":   -1,
		"":     FallbackGroupRank,
		"abc":  FallbackGroupRank,
		"0":    FallbackGroupRank,
		"-0":   FallbackGroupRank,
		"-":    FallbackGroupRank,
		"a1":   FallbackGroupRank,
	}
	for in, want := range tests {
		assert.Equal(t, want, GroupRank(in), "GroupRank(%q)", in)
	}
}

func ids(pubs []models.PublisherRecord) []string {
	out := make([]string, len(pubs))
	for i, p := range pubs {
		out[i] = p.ID
	}
	return out
}

func TestSort_GroupNumberAscending(t *testing.T) {
	pubs := []models.PublisherRecord{
		{ID: "a", Group: "2"},
		{ID: "b", Group: "1"},
		{ID: "c", Group: ""},
		{ID: "d", Group: "10"},
		{ID: "e", Group: "x"},
	}
	Sort(pubs)
	assert.Equal(t, "b", pubs[0].ID)
	assert.Equal(t, "a", pubs[1].ID)
	assert.Equal(t, "d", pubs[2].ID)
	assert.ElementsMatch(t, []string{"c", "e"}, ids(pubs[3:]))
}

func TestSort_SuperintendentThenAssistantThenName(t *testing.T) {
	pubs := []models.PublisherRecord{
		{ID: "plain", FirstName: "Aaron", LastName: "A", Group: "1"},
		{ID: "aux", FirstName: "Beatriz", LastName: "B", Group: "1", GroupRole: "Auxiliar de grupo"},
		{ID: "super", FirstName: "Zacarias", LastName: "Z", Group: "1", GroupRole: "Super de grupo"},
		{ID: "other-group", FirstName: "Aaron", LastName: "A", Group: "2", GroupRole: "Super de grupo"},
	}
	Sort(pubs)
	assert.Equal(t, []string{"super", "aux", "plain", "other-group"}, ids(pubs))
}

func TestSort_AssistantEnglishSynonym(t *testing.T) {
	pubs := []models.PublisherRecord{
		{ID: "plain", FirstName: "Ana", Group: "1"},
		{ID: "aux", FirstName: "Zoe", Group: "1", GroupRole: "Group Auxiliary"},
	}
	Sort(pubs)
	assert.Equal(t, []string{"aux", "plain"}, ids(pubs))
}

func TestSort_LocaleAwareNames(t *testing.T) {
	pubs := []models.PublisherRecord{
		{ID: "oscar", FirstName: "Oscar", Group: "1"},
		{ID: "nono", FirstName: "Ñoño", Group: "1"},
		{ID: "nube", FirstName: "Nube", Group: "1"},
		{ID: "beto", FirstName: "Beto", Group: "1"},
		{ID: "alvaro", FirstName: "Álvaro", Group: "1"},
	}
	Sort(pubs)
	assert.Equal(t, []string{"alvaro", "beto", "nube", "nono", "oscar"}, ids(pubs))
}

func TestSort_FullNameIsFirstThenLast(t *testing.T) {
	pubs := []models.PublisherRecord{
		{ID: "2", FirstName: "Ana", LastName: "Zapata", Group: "1"},
		{ID: "1", FirstName: "Ana", LastName: "Arias", Group: "1"},
		{ID: "3", FirstName: "Alberto", LastName: "Zapata", Group: "1"},
	}
	Sort(pubs)
	assert.Equal(t, []string{"3", "1", "2"}, ids(pubs))
}

func TestSort_IsStableAndIdempotent(t *testing.T) {
	pubs := []models.PublisherRecord{
		{ID: "x1", FirstName: "Same", LastName: "Name", Group: "1"},
		{ID: "x2", FirstName: "Same", LastName: "Name", Group: "1"},
		{ID: "y", FirstName: "Other", Group: "2", GroupRole: "Super"},
		{ID: "z", FirstName: "Al", Group: "1", GroupRole: "Auxiliar"},
	}
	Sort(pubs)
	first := ids(pubs)
	assert.Equal(t, []string{"z", "x1", "x2", "y"}, first)
	assert.True(t, DefaultPolicy.IsSorted(pubs))

	Sort(pubs)
	assert.Equal(t, first, ids(pubs))
}

func TestPolicy_Language(t *testing.T) {
	p := NewPolicy(language.English)
	assert.Equal(t, language.English, p.Language())
	assert.Equal(t, language.Spanish, DefaultPolicy.Language())

	a := models.PublisherRecord{Group: "1", FirstName: "a"}
	b := models.PublisherRecord{Group: "1", FirstName: "b"}
	assert.Negative(t, p.Compare(a, b))
	assert.Positive(t, Compare(b, a))
	assert.Zero(t, Compare(a, a))
}
