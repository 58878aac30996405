package raptor

// ParetoFilter removes every label strictly dominated by another in
// labels and coalesces labels sharing a vector to one representative,
// first-seen wins, so trip attribution in Merge stays deterministic.
func ParetoFilter(labels []Label) []Label {
	uniq := make([]Label, 0, len(labels))
outer:
	for _, l := range labels {
		for _, u := range uniq {
			if equalVectors(u.V, l.V) {
				continue outer
			}
		}
		uniq = append(uniq, l)
	}

	kept := make([]Label, 0, len(uniq))
	for i, a := range uniq {
		dominated := false
		for j, b := range uniq {
			if i == j {
				continue
			}
			if strictlyDominates(b.V, a.V) {
				dominated = true
				break
			}
		}
		if !dominated {
			kept = append(kept, a)
		}
	}
	return kept
}

// IsNonDominated reports whether x is not strictly dominated by any
// label in b and x's vector is not already present in b. Equality to
// an existing bag element counts as "not new", which keeps no-op
// updates from re-marking a stop.
func IsNonDominated(x Label, b Bag) bool {
	for _, l := range b {
		if equalVectors(l.V, x.V) {
			return false
		}
		if strictlyDominates(l.V, x.V) {
			return false
		}
	}
	return true
}

// Merge combines existing and incoming into a pairwise non-dominated
// bag and reports which surviving labels are new to existing. Surviving
// vectors that were already in existing keep their existing trip id;
// genuinely new vectors keep whatever trip id the incoming label
// already carried.
//
// Preserving the incoming trip matters at exactly one call site: when a
// route scan installs its carried labels into a stop's round bag, each
// label already knows the trip it is riding, and that attribution must
// survive into the stored bag. In footpath relaxation the incoming
// labels carry NoTrip by construction, so a newly surviving label comes
// out as NoTrip there. When boarding from the previous round's bag the
// incoming labels may still carry the trip that installed them in that
// round; the route scan ignores that trip and resolves a new one for
// every newly surviving label.
func Merge(existing, incoming Bag) (merged Bag, newlyAdded Bag) {
	combined := make([]Label, 0, len(existing)+len(incoming))
	combined = append(combined, existing...)
	combined = append(combined, incoming...)
	survivors := ParetoFilter(combined)

	merged = make(Bag, 0, len(survivors))
	newlyAdded = make(Bag, 0)
	for _, s := range survivors {
		if prior, ok := findByVector(existing, s.V); ok {
			merged = append(merged, Label{V: s.V, Trip: prior.Trip})
			continue
		}
		fresh := Label{V: s.V, Trip: s.Trip}
		merged = append(merged, fresh)
		newlyAdded = append(newlyAdded, fresh)
	}
	checkMergeInvariant(newlyAdded)
	return merged, newlyAdded
}
