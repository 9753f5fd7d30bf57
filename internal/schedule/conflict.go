package schedule

import "sort"

// ConflictGroup is a set of occurrences assigned the identical time slot.
type ConflictGroup struct {
	Time      string
	RitualIDs []string
}

// DetectConflicts groups occurrences by exact time-slot string match; any
// group of two or more is a conflict. A one-minute difference is not a
// conflict, and unscheduled occurrences never conflict. Pure function of the
// occurrence list; re-run it after every reorder or time edit.
func DetectConflicts(occs []Occurrence) []ConflictGroup {
	bySlot := map[string][]string{}
	for _, o := range occs {
		if o.Time == "" {
			continue
		}
		bySlot[o.Time] = append(bySlot[o.Time], o.RitualID)
	}

	var groups []ConflictGroup
	for slot, ids := range bySlot {
		if len(ids) < 2 {
			continue
		}
		groups = append(groups, ConflictGroup{Time: slot, RitualIDs: ids})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Time < groups[j].Time })
	return groups
}

// AnnotateConflicts returns a copy of occs with each member of a conflict
// group referencing the group's other members, plus the groups themselves.
func AnnotateConflicts(occs []Occurrence) ([]Occurrence, []ConflictGroup) {
	groups := DetectConflicts(occs)

	members := map[string][]string{} // ritual ID -> whole group
	for _, g := range groups {
		for _, id := range g.RitualIDs {
			members[id] = g.RitualIDs
		}
	}

	out := make([]Occurrence, len(occs))
	copy(out, occs)
	for i := range out {
		group, ok := members[out[i].RitualID]
		if !ok {
			continue
		}
		var others []string
		for _, id := range group {
			if id != out[i].RitualID {
				others = append(others, id)
			}
		}
		out[i].ConflictWith = others
	}
	return out, groups
}
