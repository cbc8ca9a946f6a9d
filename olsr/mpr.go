package olsr

import "sort"

// recomputeMPR rebuilds the local MPR set from the current neighbor and
// two-hop tables, following the RFC 3626 greedy cover heuristic:
//
//  1. clear is_mpr on all neighbors;
//  2. select every SYM neighbor with willingness ALWAYS;
//  3. select the unique SYM neighbor covering any two-hop id reachable
//     through exactly one eligible SYM neighbor;
//  4. greedily select the SYM neighbor covering the most not-yet-covered
//     two-hop ids, breaking ties by higher willingness then lower NodeID,
//     until every reachable two-hop id is covered or no candidate covers
//     anything new.
func (e *Engine) recomputeMPR() {
	for _, n := range e.neighbors {
		n.IsMPR = false
	}

	reach := e.twoHopReachability() // two-hop id -> set of one-hop ids reaching it

	eligible := func(id NodeID) (*NeighborEntry, bool) {
		n, ok := e.neighbors[id]
		if !ok || n.LinkStatus != LinkSym || n.Willingness == WillingnessNever {
			return nil, false
		}
		return n, true
	}

	selected := make(map[NodeID]struct{})
	covered := make(map[NodeID]struct{})

	selectNeighbor := func(id NodeID, n *NeighborEntry) {
		if _, already := selected[id]; already {
			return
		}
		selected[id] = struct{}{}
		n.IsMPR = true
		for h, vias := range reach {
			if _, ok := vias[id]; ok {
				covered[h] = struct{}{}
			}
		}
	}

	// Step 2: willingness ALWAYS.
	for id, n := range e.neighbors {
		if n.LinkStatus == LinkSym && n.Willingness == WillingnessAlways {
			selectNeighbor(id, n)
		}
	}

	// Step 3: two-hop ids reachable via exactly one eligible neighbor.
	for _, vias := range reach {
		var only NodeID
		count := 0
		for via := range vias {
			if _, ok := eligible(via); ok {
				only = via
				count++
			}
		}
		if count == 1 {
			n, _ := eligible(only)
			selectNeighbor(only, n)
		}
	}

	// Step 4: greedy cover of the remainder.
	for {
		uncovered := 0
		for h := range reach {
			if _, ok := covered[h]; !ok {
				uncovered++
			}
		}
		if uncovered == 0 {
			break
		}

		type candidate struct {
			id   NodeID
			n    *NeighborEntry
			gain int
		}
		var candidates []candidate
		for id, n := range e.neighbors {
			if _, ok := eligible(id); !ok {
				continue
			}
			if _, already := selected[id]; already {
				continue
			}
			gain := 0
			for h, vias := range reach {
				if _, ok := covered[h]; ok {
					continue
				}
				if _, ok := vias[id]; ok {
					gain++
				}
			}
			if gain > 0 {
				candidates = append(candidates, candidate{id: id, n: n, gain: gain})
			}
		}
		if len(candidates) == 0 {
			break // H cannot be fully covered
		}
		sort.Slice(candidates, func(i, j int) bool {
			a, b := candidates[i], candidates[j]
			if a.gain != b.gain {
				return a.gain > b.gain
			}
			if a.n.Willingness != b.n.Willingness {
				return a.n.Willingness > b.n.Willingness
			}
			return a.id < b.id
		})
		best := candidates[0]
		selectNeighbor(best.id, best.n)
	}
}
