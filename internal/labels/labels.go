// Package labels derives role and status labels from a publisher's
// free-text group role, status and pioneer fields. All synonym sets live
// here; matching is case-insensitive substring containment with no accent
// folding.
package labels

import (
	"strings"

	"github.com/Xantino1997/flores/internal/models"
)

// Label is a derived role or status fact. Labels are never stored.
type Label int

const (
	Expelled Label = iota
	Inactive
	GroupSuperintendent
	GroupAssistant
	RegularPioneer
	Elder
	MinisterialServant
)

// All lists every label in display order.
var All = []Label{Expelled, Inactive, GroupSuperintendent, GroupAssistant, RegularPioneer, Elder, MinisterialServant}

var names = map[Label]string{
	Expelled:            "Expulsado",
	Inactive:            "Inactivo",
	GroupSuperintendent: "Super",
	GroupAssistant:      "Auxiliar",
	RegularPioneer:      "Regular",
	Elder:               "Anciano",
	MinisterialServant:  "Ministerial",
}

func (l Label) String() string {
	if n, ok := names[l]; ok {
		return n
	}
	return "Label(?)"
}

// MarshalText lets labels render as their display names in JSON and YAML.
func (l Label) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// IsStatus reports whether l belongs to the status axis.
func (l Label) IsStatus() bool {
	return l == Expelled || l == Inactive
}

// Synonyms, lower case. The first entry of each role set is the token
// written by AddRoleToken.
var (
	expelledSynonyms    = []string{"expulsado", "expelled"}
	inactiveSynonyms    = []string{"inactivo", "inactive"}
	superSynonyms       = []string{"super"}
	assistantSynonyms   = []string{"auxiliar", "auxiliary"}
	elderSynonyms       = []string{"anciano", "elder"}
	ministerialSynonyms = []string{"ministerial", "servant"}
)

var roleSynonyms = map[Label][]string{
	GroupSuperintendent: superSynonyms,
	GroupAssistant:      assistantSynonyms,
	Elder:               elderSynonyms,
	MinisterialServant:  ministerialSynonyms,
}

var roleTokens = map[Label]string{
	GroupSuperintendent: "Super",
	GroupAssistant:      "Auxiliar",
	Elder:               "Anciano",
	MinisterialServant:  "Ministerial",
}

func containsAny(text string, synonyms []string) bool {
	lower := strings.ToLower(text)
	for _, s := range synonyms {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

func statusText(status string) string {
	if status == "" {
		return models.DefaultStatus
	}
	return status
}

// IsExpelled reports whether status marks the publisher as expelled.
func IsExpelled(status string) bool {
	return containsAny(statusText(status), expelledSynonyms)
}

// IsInactive reports whether status places the publisher outside the
// navigable groups, i.e. inactive or expelled.
func IsInactive(status string) bool {
	s := statusText(status)
	return containsAny(s, inactiveSynonyms) || containsAny(s, expelledSynonyms)
}

// IsSuperintendent reports whether role names a group superintendent.
func IsSuperintendent(role string) bool {
	return containsAny(role, superSynonyms)
}

// IsAssistant reports whether role names a group assistant.
func IsAssistant(role string) bool {
	return containsAny(role, assistantSynonyms)
}

// IsRegularPioneer looks only at the pioneer flag, never at month data.
func IsRegularPioneer(pioneer string) bool {
	lower := strings.ToLower(pioneer)
	return strings.Contains(lower, "regular") || lower == "reg"
}

// StatusOf returns the status label of p, if any. Expelled wins over
// Inactive.
func StatusOf(p models.PublisherRecord) (Label, bool) {
	s := statusText(p.Status)
	switch {
	case containsAny(s, expelledSynonyms):
		return Expelled, true
	case containsAny(s, inactiveSynonyms):
		return Inactive, true
	}
	return 0, false
}

// Of returns the labels of p in display order: the status label first,
// then superintendent, assistant, regular pioneer, elder and ministerial
// servant.
func Of(p models.PublisherRecord) []Label {
	var out []Label
	if l, ok := StatusOf(p); ok {
		out = append(out, l)
	}
	if IsSuperintendent(p.GroupRole) {
		out = append(out, GroupSuperintendent)
	}
	if IsAssistant(p.GroupRole) {
		out = append(out, GroupAssistant)
	}
	if IsRegularPioneer(p.Pioneer) {
		out = append(out, RegularPioneer)
	}
	if containsAny(p.GroupRole, elderSynonyms) {
		out = append(out, Elder)
	}
	if containsAny(p.GroupRole, ministerialSynonyms) {
		out = append(out, MinisterialServant)
	}
	return out
}

// Has reports whether p carries l.
func Has(p models.PublisherRecord, l Label) bool {
	for _, got := range Of(p) {
		if got == l {
			return true
		}
	}
	return false
}

// Strings renders labels with their display names.
func Strings(ls []Label) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.String()
	}
	return out
}
