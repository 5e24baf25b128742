package roster

import (
	"slices"

	"github.com/Xantino1997/flores/internal/labels"
	"github.com/Xantino1997/flores/internal/models"
)

// InactiveBucket is the synthetic group holding every inactive or expelled
// publisher, whatever group number they carry.
const InactiveBucket = "inactivos"

// Groups returns the distinct group numbers of active publishers ordered by
// GroupRank. Groups of equal rank keep first-appearance order.
func Groups(pubs []models.PublisherRecord) []string {
	seen := make(map[string]bool)
	var groups []string
	for _, p := range pubs {
		if labels.IsInactive(p.Status) || seen[p.Group] {
			continue
		}
		seen[p.Group] = true
		groups = append(groups, p.Group)
	}
	slices.SortStableFunc(groups, func(a, b string) int {
		return GroupRank(a) - GroupRank(b)
	})
	return groups
}

// GroupCounts returns the number of active publishers per group number.
func GroupCounts(pubs []models.PublisherRecord) map[string]int {
	counts := make(map[string]int)
	for _, p := range pubs {
		if !labels.IsInactive(p.Status) {
			counts[p.Group]++
		}
	}
	return counts
}

// InactiveCount returns the size of the InactiveBucket.
func InactiveCount(pubs []models.PublisherRecord) int {
	n := 0
	for _, p := range pubs {
		if labels.IsInactive(p.Status) {
			n++
		}
	}
	return n
}

// Bucket returns the publishers shown under group, in collection order:
// active members of group, or every inactive publisher for InactiveBucket.
func Bucket(pubs []models.PublisherRecord, group string) []models.PublisherRecord {
	var out []models.PublisherRecord
	for _, p := range pubs {
		inactive := labels.IsInactive(p.Status)
		if group == InactiveBucket {
			if inactive {
				out = append(out, p)
			}
			continue
		}
		if !inactive && p.Group == group {
			out = append(out, p)
		}
	}
	return out
}

// Sheet returns Bucket(pubs, group) re-ordered by p, independent of the
// collection's current order. It is the read-only view used for exports.
func (p *Policy) Sheet(pubs []models.PublisherRecord, group string) []models.PublisherRecord {
	out := Bucket(pubs, group)
	p.Sort(out)
	return out
}

// Sheet is Policy.Sheet with DefaultPolicy.
func Sheet(pubs []models.PublisherRecord, group string) []models.PublisherRecord {
	return DefaultPolicy.Sheet(pubs, group)
}
