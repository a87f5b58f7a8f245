package gjk

import "github.com/golang/geo/r3"

// Vertex is a single simplex vertex: the Minkowski difference point w,
// together with its witnesses w1 (on shape 1) and w2 (on shape 2), all in
// shape 1's local frame. Carrying the witnesses alongside w is what lets
// Solve recover contact points from the terminal simplex alone (Witnesses
// blends them with the closest point's barycentric weights) without
// querying the shapes again.
type Vertex struct {
	W, W1, W2 r3.Vector
}

// Simplex is the 0-4 vertex working set GJK iterates on. Vertices are
// stored in insertion order; reduction (Johnson's sub-algorithm, here
// implemented as closest-point-to-origin on points/segments/triangles/
// tetrahedra) rewrites Verts in place and shrinks Count.
type Simplex struct {
	Verts [4]Vertex
	Count int
}

// Add appends a new vertex, assuming Count < 4.
func (s *Simplex) Add(v Vertex) {
	s.Verts[s.Count] = v
	s.Count++
}

// Reset empties the simplex.
func (s *Simplex) Reset() {
	s.Count = 0
}

// Contains reports whether w (compared by value) is already a vertex of
// the simplex — GJK terminates rather than looping forever if the support
// function returns a point already in the simplex.
func (s *Simplex) Contains(w r3.Vector) bool {
	for i := 0; i < s.Count; i++ {
		if s.Verts[i].W.Sub(w).Norm2() < 1e-20 {
			return true
		}
	}
	return false
}

// Set replaces the simplex contents with exactly verts.
func (s *Simplex) Set(verts ...Vertex) {
	s.Count = copy(s.Verts[:], verts)
}
