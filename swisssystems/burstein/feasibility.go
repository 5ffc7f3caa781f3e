/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package burstein

// maximumMatching computes a maximum cardinality matching of the general
// graph given as adjacency lists using Edmonds' blossom algorithm. The
// result maps each vertex to its mate, or -1 when unmatched.
func maximumMatching(adj [][]int) []int {
	n := len(adj)
	mate := make([]int, n)
	parent := make([]int, n)
	base := make([]int, n)
	used := make([]bool, n)
	blossom := make([]bool, n)
	queue := make([]int, n)
	for i := range mate {
		mate[i] = -1
	}

	lca := func(a, b int) int {
		seen := make([]bool, n)
		for {
			a = base[a]
			seen[a] = true
			if mate[a] == -1 {
				break
			}
			a = parent[mate[a]]
		}
		for {
			b = base[b]
			if seen[b] {
				return b
			}
			b = parent[mate[b]]
		}
	}

	markPath := func(v, b, child int) {
		for base[v] != b {
			blossom[base[v]] = true
			blossom[base[mate[v]]] = true
			parent[v] = child
			child = mate[v]
			v = parent[mate[v]]
		}
	}

	// findPath grows an alternating tree from root and returns the free
	// vertex that ends an augmenting path, or -1.
	findPath := func(root int) int {
		for i := 0; i < n; i++ {
			used[i] = false
			parent[i] = -1
			base[i] = i
		}
		used[root] = true
		head, tail := 0, 0
		queue[tail] = root
		tail++

		for head < tail {
			v := queue[head]
			head++
			for _, to := range adj[v] {
				if base[v] == base[to] || mate[v] == to {
					continue
				}
				if to == root || (mate[to] != -1 && parent[mate[to]] != -1) {
					cur := lca(v, to)
					for i := range blossom {
						blossom[i] = false
					}
					markPath(v, cur, to)
					markPath(to, cur, v)
					for i := 0; i < n; i++ {
						if blossom[base[i]] {
							base[i] = cur
							if !used[i] {
								used[i] = true
								queue[tail] = i
								tail++
							}
						}
					}
				} else if parent[to] == -1 {
					parent[to] = v
					if mate[to] == -1 {
						return to
					}
					used[mate[to]] = true
					queue[tail] = mate[to]
					tail++
				}
			}
		}

		return -1
	}

	// greedy start
	for v := 0; v < n; v++ {
		if mate[v] != -1 {
			continue
		}
		for _, to := range adj[v] {
			if mate[to] == -1 {
				mate[v] = to
				mate[to] = v
				break
			}
		}
	}

	for v := 0; v < n; v++ {
		if mate[v] != -1 {
			continue
		}
		for u := findPath(v); u != -1; {
			pv := parent[u]
			next := mate[pv]
			mate[u] = pv
			mate[pv] = u
			u = next
		}
	}

	return mate
}

// hasPerfectMatching reports whether the players of set (local indices) can
// all be paired with one another under the engine's hard constraints.
// Results are memoized per set.
func (e *engine) hasPerfectMatching(set []int) bool {
	if len(set)%2 != 0 {
		return false
	}
	if len(set) == 0 {
		return true
	}

	key := make([]byte, len(e.players))
	for _, v := range set {
		key[v] = 1
	}
	if ok, found := e.feasible[string(key)]; found {
		return ok
	}

	adj := make([][]int, len(set))
	for i := range set {
		for j := range set {
			if i != j && e.legal[set[i]][set[j]] {
				adj[i] = append(adj[i], j)
			}
		}
	}
	ok := true
	for _, m := range maximumMatching(adj) {
		if m == -1 {
			ok = false
			break
		}
	}
	e.feasible[string(key)] = ok

	return ok
}
