package extrude

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// normalizeWinding makes triangle winding consistent across shared edges by
// flood fill, then flips the whole surface if its signed volume is negative
// so normals point outward.
func (m *Mesh) normalizeWinding() {
	adj := make(map[[2]int][]int, 3*len(m.faces))
	for i, f := range m.faces {
		for e := 0; e < 3; e++ {
			k := undirectedEdge(f[e], f[(e+1)%3])
			adj[k] = append(adj[k], i)
		}
	}
	visited := make([]bool, len(m.faces))
	var stack []int
	for seed := range m.faces {
		if visited[seed] {
			continue
		}
		visited[seed] = true
		stack = append(stack[:0], seed)
		for len(stack) > 0 {
			fi := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			f := m.faces[fi]
			for e := 0; e < 3; e++ {
				a, b := f[e], f[(e+1)%3]
				for _, gi := range adj[undirectedEdge(a, b)] {
					if gi == fi || visited[gi] {
						continue
					}
					// Two consistently wound neighbors traverse a shared
					// edge in opposite directions.
					if hasDirectedEdge(m.faces[gi], a, b) {
						g := m.faces[gi]
						m.faces[gi] = [3]int{g[0], g[2], g[1]}
					}
					visited[gi] = true
					stack = append(stack, gi)
				}
			}
		}
	}
	if m.signedVolume() < 0 {
		for i, f := range m.faces {
			m.faces[i] = [3]int{f[0], f[2], f[1]}
		}
	}
}

// fillHoles patches rims of edges referenced by only one triangle. Each rim
// loop is closed with a fan wound opposite to the rim direction, keeping
// orientation consistent with the surrounding surface.
func (m *Mesh) fillHoles() {
	directed := make(map[[2]int]bool, 3*len(m.faces))
	for _, f := range m.faces {
		for e := 0; e < 3; e++ {
			directed[[2]int{f[e], f[(e+1)%3]}] = true
		}
	}
	// A boundary edge has no opposing twin.
	succ := make(map[int]int)
	for e := range directed {
		if !directed[[2]int{e[1], e[0]}] {
			succ[e[0]] = e[1]
		}
	}
	if len(succ) == 0 {
		return
	}
	// Walk rims in sorted vertex order so patching is deterministic.
	starts := make([]int, 0, len(succ))
	for v := range succ {
		starts = append(starts, v)
	}
	sort.Ints(starts)
	visited := make(map[int]bool, len(succ))
	for _, start := range starts {
		if visited[start] {
			continue
		}
		visited[start] = true
		loop := []int{start}
		closed := false
		at, ok := succ[start]
		for ok {
			if at == start {
				closed = true
				break
			}
			if visited[at] {
				break
			}
			visited[at] = true
			loop = append(loop, at)
			at, ok = succ[at]
		}
		if !closed || len(loop) < 3 {
			// Dangling chain, cannot be patched by a fan.
			continue
		}
		for i := 1; i < len(loop)-1; i++ {
			m.faces = append(m.faces, [3]int{loop[0], loop[i+1], loop[i]})
		}
	}
}

// signedVolume returns the volume enclosed by the surface, positive when
// winding follows outward normals.
func (m *Mesh) signedVolume() float64 {
	vol := 0.0
	for _, f := range m.faces {
		v0 := m.vertices[f[0]]
		v1 := m.vertices[f[1]]
		v2 := m.vertices[f[2]]
		vol += r3.Dot(v0, r3.Cross(v1, v2))
	}
	return vol / 6
}

func undirectedEdge(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

func hasDirectedEdge(f [3]int, a, b int) bool {
	return (f[0] == a && f[1] == b) ||
		(f[1] == a && f[2] == b) ||
		(f[2] == a && f[0] == b)
}
