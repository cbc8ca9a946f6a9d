package olsr

import (
	"container/heap"
	"time"
)

// RoutingEntry is one row of the routing table.
type RoutingEntry struct {
	Dest      NodeID
	NextHop   NodeID
	Metric    int
	Hops      int
	Timestamp time.Time
}

// dijkstraNode is one entry in the shortest-path priority queue.
type dijkstraNode struct {
	id      NodeID
	dist    int
	nextHop NodeID
	index   int
}

type dijkstraQueue []*dijkstraNode

func (q dijkstraQueue) Len() int           { return len(q) }
func (q dijkstraQueue) Less(i, j int) bool { return q[i].dist < q[j].dist }
func (q dijkstraQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index, q[j].index = i, j
}
func (q *dijkstraQueue) Push(x interface{}) {
	n := x.(*dijkstraNode)
	n.index = len(*q)
	*q = append(*q, n)
}
func (q *dijkstraQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*q = old[:n-1]
	return item
}

// buildGraph constructs the adjacency list used for route computation:
// self -> each SYM neighbor at cost 1, plus every
// non-expired topology link at cost 1, deduplicated against the direct
// edges.
func (e *Engine) buildGraph(now time.Time) map[NodeID][]NodeID {
	graph := make(map[NodeID][]NodeID)
	edge := make(map[linkKey]struct{})

	addEdge := func(from, to NodeID) {
		k := linkKey{from: from, to: to}
		if _, ok := edge[k]; ok {
			return
		}
		edge[k] = struct{}{}
		graph[from] = append(graph[from], to)
	}

	for _, n := range e.neighbors {
		if n.LinkStatus == LinkSym {
			addEdge(e.self, n.ID)
		}
	}
	for _, link := range e.topology {
		if link.Validity.After(now) {
			addEdge(link.From, link.To)
		}
	}
	return graph
}

// updateRoutingTable recomputes shortest paths from self over the current
// neighbor+topology graph with Dijkstra and atomically replaces the
// routing table. Rerouting is only ever done by this
// full recompute, never by per-entry patching.
func (e *Engine) updateRoutingTable(now time.Time) {
	graph := e.buildGraph(now)

	dist := map[NodeID]int{e.self: 0}
	nextHop := map[NodeID]NodeID{}

	pq := &dijkstraQueue{}
	heap.Init(pq)
	heap.Push(pq, &dijkstraNode{id: e.self, dist: 0})

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(*dijkstraNode)
		if cur.dist > dist[cur.id] {
			continue // stale entry left behind by an earlier relaxation
		}
		for _, to := range graph[cur.id] {
			nd := cur.dist + 1
			if existing, ok := dist[to]; !ok || nd < existing {
				dist[to] = nd
				hop := cur.nextHop
				if cur.id == e.self {
					hop = to
				}
				nextHop[to] = hop
				heap.Push(pq, &dijkstraNode{id: to, dist: nd, nextHop: hop})
			}
		}
	}

	newRoutes := make(map[NodeID]RoutingEntry, len(dist))
	for dest, metric := range dist {
		if dest == e.self {
			continue
		}
		newRoutes[dest] = RoutingEntry{
			Dest:      dest,
			NextHop:   nextHop[dest],
			Metric:    metric,
			Hops:      metric,
			Timestamp: now,
		}
	}
	e.routes = newRoutes
}

// GetNextHop answers the RRC layer's next-hop query. On
// a stale route it forces one recompute and retries once before reporting
// NoRoute or DestinationUnreachable.
func (e *Engine) GetNextHop(dest NodeID) NextHopResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.getNextHopLocked(dest)
}

func (e *Engine) getNextHopLocked(dest NodeID) NextHopResult {
	if dest == e.self {
		return NextHopResult{Outcome: OutcomeDestinationIsSelf}
	}

	now := e.clock()
	if r, ok := e.freshRoute(dest, now); ok {
		return NextHopResult{Outcome: OutcomeFound, NextHop: r.NextHop, Metric: r.Metric, Hops: r.Hops}
	}

	delete(e.routes, dest)
	e.updateRoutingTable(now)

	if r, ok := e.freshRoute(dest, now); ok {
		return NextHopResult{Outcome: OutcomeFound, NextHop: r.NextHop, Metric: r.Metric, Hops: r.Hops}
	}

	if e.knownDestination(dest) {
		return NextHopResult{Outcome: OutcomeNoRoute}
	}
	return NextHopResult{Outcome: OutcomeDestinationUnreachable}
}

// freshRoute returns the routing entry for dest iff it exists and its next
// hop is a currently-SYM neighbor last seen less than HelloTimeout ago.
func (e *Engine) freshRoute(dest NodeID, now time.Time) (RoutingEntry, bool) {
	r, ok := e.routes[dest]
	if !ok {
		return RoutingEntry{}, false
	}
	n, ok := e.neighbors[r.NextHop]
	if !ok || n.LinkStatus != LinkSym || now.Sub(n.LastSeen) >= e.cfg.HelloTimeout {
		return RoutingEntry{}, false
	}
	return r, true
}

// knownDestination reports whether dest appears anywhere in the neighbor
// table or the topology database.
func (e *Engine) knownDestination(dest NodeID) bool {
	if _, ok := e.neighbors[dest]; ok {
		return true
	}
	for k := range e.topology {
		if k.from == dest || k.to == dest {
			return true
		}
	}
	return false
}
