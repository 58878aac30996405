//go:build raptordebug

package raptor

import "fmt"

// checkMergeInvariant panics if the newly-added set of a merge carries
// the same criterion vector twice with different trip ids. With the
// first-seen-wins coalescing rule in ParetoFilter this cannot happen;
// the check exists to catch a regression in that rule, and is compiled
// in only under -tags raptordebug so production queries pay nothing.
func checkMergeInvariant(newlyAdded Bag) {
	for i, a := range newlyAdded {
		for _, b := range newlyAdded[i+1:] {
			if equalVectors(a.V, b.V) && a.Trip != b.Trip {
				panic(fmt.Sprintf("merge: vector %v appears with trips %d and %d in the newly-added set", a.V, a.Trip, b.Trip))
			}
		}
	}
}
