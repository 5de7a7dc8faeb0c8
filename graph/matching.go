package graph

// MatchingStrategy selects the algorithm used to pair fine vertices into
// supernodes before coarsening.
type MatchingStrategy int

const (
	Random MatchingStrategy = iota
	HEM
	HEMPA
	HEMDavisPA
)

// MatchOptions carries the subset of separator.Options that the matching
// strategies need, kept separate so this package has no import-cycle back to
// the options/driver package.
type MatchOptions struct {
	Strategy                MatchingStrategy
	DoCommunityMatching     bool
	DavisBrotherlyThreshold float64
}

// createMatch pairs vertices a and b into the same supernode. If a==b, a is
// an orphan (self-matched, a supernode of size 1). Each call opens one new
// coarse id, so Cn is bumped exactly once per call.
func (g *Graph) createMatch(a, b int) {
	g.ensureMatchingArrays()
	g.Matching[a] = b + 1
	g.Matching[b] = a + 1
	if a == b {
		g.matchMapAssign(a)
		return
	}
	g.matchMapAssign(a)
	g.MatchMap[b] = g.MatchMap[a]
}

// createCommunityMatch extends an existing pair (hub, v) into a three-way
// match hub->v->extra->hub, used by PA/Davis-PA when a leftover neighbour
// is folded into an existing match as a "community" member.
func (g *Graph) createCommunityMatch(hub, extra int) {
	g.ensureMatchingArrays()
	// hub is already matched to some partner p; chain hub->p->extra->hub.
	partner := g.Matching[hub] - 1
	g.Matching[hub] = partner + 1
	g.Matching[partner] = extra + 1
	g.Matching[extra] = hub + 1
	g.MatchMap[extra] = g.MatchMap[hub]
}

// matchMapAssign gives vertex a the next fresh coarse id (Cn) and bumps Cn.
// It does not check whether a already had one.
func (g *Graph) matchMapAssign(a int) {
	g.MatchMap[a] = g.Cn
	g.Cn++
}

// Match computes a matching of all vertices of g according to opts, mutating
// g in place: Matching, MatchMap, Cn, and InvMatchMap (built at the end) are
// all populated. Every vertex ends up with Matching[k] != 0.
func (g *Graph) Match(opts MatchOptions) {
	g.ensureMatchingArrays()
	switch opts.Strategy {
	case Random:
		g.matchRandom()
	case HEM:
		g.matchHEM()
	case HEMPA:
		g.matchHEM()
		g.matchPA(opts.DoCommunityMatching)
	case HEMDavisPA:
		g.matchHEM()
		g.matchDavisPA(opts)
	}
	g.matchCleanup()
	g.buildInvMatchMap()
}

// matchRandom matches k to its first unmatched neighbour in storage order.
// Despite the name, no randomization of traversal order is performed: the
// original library's "Random" strategy is really "first fit, no priority",
// and this port preserves that so behaviour stays reproducible given a
// fixed graph without needing a seed.
func (g *Graph) matchRandom() {
	for k := 0; k < g.N; k++ {
		if g.IsMatched(k) {
			continue
		}
		for p := g.P[k]; p < g.P[k+1]; p++ {
			neighbor := g.I[p]
			if g.IsMatched(neighbor) {
				continue
			}
			g.createMatch(k, neighbor)
			break
		}
	}
}

// matchHEM matches k to its unmatched neighbour with the heaviest edge,
// ties broken by first occurrence in storage order.
func (g *Graph) matchHEM() {
	for k := 0; k < g.N; k++ {
		if g.IsMatched(k) {
			continue
		}
		heaviestNeighbor := -1
		heaviestWeight := -1.0
		for p := g.P[k]; p < g.P[k+1]; p++ {
			neighbor := g.I[p]
			if g.IsMatched(neighbor) {
				continue
			}
			w := g.X[p]
			if w > heaviestWeight {
				heaviestWeight = w
				heaviestNeighbor = neighbor
			}
		}
		if heaviestNeighbor != -1 {
			g.createMatch(k, heaviestNeighbor)
		}
	}
}

// matchPA runs after HEM: for each still-unmatched k, find its heaviest
// neighbour h (already matched, since HEM left no unmatched pair reachable),
// and pair up h's own unmatched neighbours two at a time. A leftover single
// neighbour either joins h's supernode as a third "community" member, or
// becomes an orphan.
func (g *Graph) matchPA(doCommunity bool) {
	for k := 0; k < g.N; k++ {
		if g.IsMatched(k) {
			continue
		}
		heaviestNeighbor := -1
		heaviestWeight := -1.0
		for p := g.P[k]; p < g.P[k+1]; p++ {
			neighbor := g.I[p]
			w := g.X[p]
			if w > heaviestWeight {
				heaviestWeight = w
				heaviestNeighbor = neighbor
			}
		}
		if heaviestNeighbor != -1 {
			g.pairUnmatchedNeighboursOf(heaviestNeighbor, doCommunity)
		}
	}
}

// matchDavisPA applies the same two-hop pairing as matchPA, but to already
// matched vertices whose degree is at least davisBrotherlyThreshold times
// the graph's average degree, rather than to unmatched vertices. It is only
// meaningful once a prior matching pass (HEM) has run.
func (g *Graph) matchDavisPA(opts MatchOptions) {
	bt := opts.DavisBrotherlyThreshold * (float64(g.Nz) / float64(g.N))
	for k := 0; k < g.N; k++ {
		if !g.IsMatched(k) {
			continue
		}
		if float64(g.degree(k)) >= bt {
			g.pairUnmatchedNeighboursOf(k, opts.DoCommunityMatching)
		}
	}
}

// pairUnmatchedNeighboursOf walks hub's adjacency list in storage order,
// matching its unmatched neighbours two at a time. If one is left over, it
// either becomes a community (3-way) member of hub, or an orphan.
func (g *Graph) pairUnmatchedNeighboursOf(hub int, doCommunity bool) {
	v := -1
	for p := g.P[hub]; p < g.P[hub+1]; p++ {
		neighbor := g.I[p]
		if g.IsMatched(neighbor) {
			continue
		}
		if v == -1 {
			v = neighbor
		} else {
			g.createMatch(v, neighbor)
			v = -1
		}
	}
	if v != -1 {
		if doCommunity && g.IsMatched(hub) {
			g.createCommunityMatch(hub, v)
		} else {
			g.createMatch(v, v)
		}
	}
}

// matchCleanup matches any vertex still unmatched after the chosen strategy
// to itself (an orphan), except that two degree-0 vertices are paired with
// each other rather than each becoming their own supernode.
func (g *Graph) matchCleanup() {
	for k := 0; k < g.N; k++ {
		if g.IsMatched(k) {
			continue
		}
		if g.degree(k) == 0 {
			if g.Singleton == -1 {
				g.Singleton = k
			} else {
				g.createMatch(k, g.Singleton)
				g.Singleton = -1
			}
		} else {
			g.createMatch(k, k)
		}
	}
	if g.Singleton != -1 {
		g.createMatch(g.Singleton, g.Singleton)
		g.Singleton = -1
	}
}

// buildInvMatchMap fills InvMatchMap[c] with one representative fine vertex
// of each coarse vertex c, once every fine vertex has a MatchMap entry.
func (g *Graph) buildInvMatchMap() {
	g.InvMatchMap = make([]int, g.Cn)
	for k := 0; k < g.N; k++ {
		g.InvMatchMap[g.MatchMap[k]] = k
	}
}
