package runtime

import (
	"context"
)

// Graph is the finite abstraction a variant exposes for the emptiness check.
type Graph[N comparable] struct {
	Roots      []N
	Successors func(N) []N
	Accepting  func(N) bool
}

// Reachability is the outcome of a graph search.
type Reachability struct {
	Found   bool
	Visited int
}

// Reach runs a breadth-first search from the roots and stops at the first
// accepting node. The language is empty iff no accepting node is found.
func Reach[N comparable](ctx context.Context, g Graph[N]) (Reachability, error) {
	visited := make(map[N]bool, len(g.Roots))
	queue := make([]N, 0, len(g.Roots))
	for _, r := range g.Roots {
		if !visited[r] {
			visited[r] = true
			queue = append(queue, r)
		}
	}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return Reachability{Visited: len(visited)}, err
		}
		n := queue[0]
		queue = queue[1:]
		if g.Accepting(n) {
			return Reachability{Found: true, Visited: len(visited)}, nil
		}
		for _, s := range g.Successors(n) {
			if !visited[s] {
				visited[s] = true
				queue = append(queue, s)
			}
		}
	}
	return Reachability{Visited: len(visited)}, nil
}
