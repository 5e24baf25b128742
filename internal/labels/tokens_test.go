package labels

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddRoleToken(t *testing.T) {
	tests := []struct {
		role  string
		label Label
		want  string
	}{
		{"", GroupSuperintendent, "Super"},
		{"Anciano", GroupSuperintendent, "Anciano, Super"},
		{"Anciano, ", GroupAssistant, "Anciano, Auxiliar"},
		{"Super de grupo", GroupSuperintendent, "Super de grupo"},
		{"group auxiliary", GroupAssistant, "group auxiliary"},
		{"Auxiliar", MinisterialServant, "Auxiliar, Ministerial"},
		{"Auxiliar", Elder, "Auxiliar, Anciano"},
		{"Auxiliar", RegularPioneer, "Auxiliar"},
		{"Auxiliar", Inactive, "Auxiliar"},
	}
	for _, tt := range tests {
		t.Run(tt.role+"+"+tt.label.String(), func(t *testing.T) {
			got := AddRoleToken(tt.role, tt.label)
			assert.Equal(t, tt.want, got)
			if _, ok := roleSynonyms[tt.label]; ok {
				assert.True(t, containsAny(got, roleSynonyms[tt.label]))
			}
		})
	}
}

func TestRemoveRoleToken(t *testing.T) {
	tests := []struct {
		role  string
		label Label
		want  string
	}{
		{"Anciano, Super de grupo", GroupSuperintendent, "Anciano"},
		{"Super de grupo", GroupSuperintendent, ""},
		{"Anciano, Elder emeritus, Auxiliar", Elder, "Auxiliar"},
		{"Anciano", GroupAssistant, "Anciano"},
		{"Ministerial Servant", MinisterialServant, ""},
		{"Super", RegularPioneer, "Super"},
	}
	for _, tt := range tests {
		t.Run(tt.role+"-"+tt.label.String(), func(t *testing.T) {
			got := RemoveRoleToken(tt.role, tt.label)
			assert.Equal(t, tt.want, got)
			if _, ok := roleSynonyms[tt.label]; ok {
				assert.False(t, containsAny(got, roleSynonyms[tt.label]))
			}
		})
	}
}

func TestSetRegularPioneer(t *testing.T) {
	assert.Equal(t, "Regular", SetRegularPioneer("", true))
	assert.Equal(t, "reg", SetRegularPioneer("reg", true))
	assert.Equal(t, "Regular", SetRegularPioneer("Auxiliar", true))
	assert.Equal(t, "", SetRegularPioneer("Regular", false))
	assert.Equal(t, "Auxiliar", SetRegularPioneer("Auxiliar", false))
	assert.Equal(t, "", SetRegularPioneer("", false))
}
