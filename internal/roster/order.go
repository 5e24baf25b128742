package roster

import (
	"math"
	"slices"

	"github.com/Xantino1997/flores/internal/labels"
	"github.com/Xantino1997/flores/internal/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// FallbackGroupRank is the rank of a group number that is empty,
// non-numeric or zero. Such publishers sort last.
const FallbackGroupRank = 999

// GroupRank reads the leading integer of a group number, after optional
// whitespace and sign; trailing text is ignored. A missing or zero value
// ranks as FallbackGroupRank.
func GroupRank(group string) int {
	i := 0
	for i < len(group) && isSpace(group[i]) {
		i++
	}
	neg := false
	if i < len(group) && (group[i] == '+' || group[i] == '-') {
		neg = group[i] == '-'
		i++
	}
	start := i
	n := 0
	for i < len(group) && group[i] >= '0' && group[i] <= '9' {
		if n <= (math.MaxInt32-9)/10 {
			n = n*10 + int(group[i]-'0')
		} else {
			n = math.MaxInt32
		}
		i++
	}
	if i == start || n == 0 {
		return FallbackGroupRank
	}
	if neg {
		return -n
	}
	return n
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

// Policy orders publishers: group rank, then superintendents, then
// assistants, then full name under the policy's collation. The zero value
// is not usable; use NewPolicy.
type Policy struct {
	tag language.Tag
}

// NewPolicy returns a policy collating names for tag.
func NewPolicy(tag language.Tag) *Policy {
	return &Policy{tag: tag}
}

// DefaultPolicy collates names as Spanish.
var DefaultPolicy = NewPolicy(language.Spanish)

// Language returns the collation language of p.
func (p *Policy) Language() language.Tag {
	return p.tag
}

// comparator builds a compare function with its own collator; collators
// are not safe for concurrent use.
func (p *Policy) comparator() func(a, b models.PublisherRecord) int {
	coll := collate.New(p.tag)
	return func(a, b models.PublisherRecord) int {
		ga, gb := GroupRank(a.Group), GroupRank(b.Group)
		if ga != gb {
			if ga < gb {
				return -1
			}
			return 1
		}
		if c := tierCompare(labels.IsSuperintendent(a.GroupRole), labels.IsSuperintendent(b.GroupRole)); c != 0 {
			return c
		}
		if c := tierCompare(labels.IsAssistant(a.GroupRole), labels.IsAssistant(b.GroupRole)); c != 0 {
			return c
		}
		return coll.CompareString(a.FullName(), b.FullName())
	}
}

func tierCompare(a, b bool) int {
	switch {
	case a && !b:
		return -1
	case !a && b:
		return 1
	}
	return 0
}

// Compare orders two publishers.
func (p *Policy) Compare(a, b models.PublisherRecord) int {
	return p.comparator()(a, b)
}

// Sort orders pubs in place. The sort is stable.
func (p *Policy) Sort(pubs []models.PublisherRecord) {
	slices.SortStableFunc(pubs, p.comparator())
}

// IsSorted reports whether pubs is already in policy order.
func (p *Policy) IsSorted(pubs []models.PublisherRecord) bool {
	return slices.IsSortedFunc(pubs, p.comparator())
}

// Sort orders pubs in place with DefaultPolicy.
func Sort(pubs []models.PublisherRecord) {
	DefaultPolicy.Sort(pubs)
}

// Compare orders two publishers with DefaultPolicy.
func Compare(a, b models.PublisherRecord) int {
	return DefaultPolicy.Compare(a, b)
}
