package labels

import "strings"

// The role field is treated as a comma separated list of phrases, e.g.
// "Anciano, Super de grupo". Phrases are the unit of addition and removal.
func splitPhrases(text string) []string {
	var out []string
	for _, p := range strings.Split(text, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// AddRoleToken returns role with the canonical phrase for l appended,
// unless role already matches l. Labels outside the role axis
// (status, regular pioneer) leave role unchanged.
func AddRoleToken(role string, l Label) string {
	synonyms, ok := roleSynonyms[l]
	if !ok || containsAny(role, synonyms) {
		return role
	}
	return strings.Join(append(splitPhrases(role), roleTokens[l]), ", ")
}

// RemoveRoleToken drops every phrase of role that matches one of l's
// synonyms.
func RemoveRoleToken(role string, l Label) string {
	synonyms, ok := roleSynonyms[l]
	if !ok || !containsAny(role, synonyms) {
		return role
	}
	var kept []string
	for _, p := range splitPhrases(role) {
		if !containsAny(p, synonyms) {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

// SetRegularPioneer returns a pioneer flag for which IsRegularPioneer
// reports on. Clearing empties a flag that marks a regular pioneer and
// leaves any other text alone.
func SetRegularPioneer(pioneer string, on bool) string {
	if IsRegularPioneer(pioneer) == on {
		return pioneer
	}
	if on {
		return "Regular"
	}
	return ""
}
