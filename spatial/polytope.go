package spatial

import (
	"github.com/golang/geo/r3"
)

// Polytope is an arbitrary convex hull given as a vertex list, face
// normals, and a per-vertex adjacency list. The adjacency list lets
// Support walk from a warm-start hint to the true extreme vertex by hill
// climbing, instead of scanning every vertex on every call.
type Polytope struct {
	pose      Pose
	vertices  []r3.Vector
	normals   []r3.Vector
	neighbors [][]int
}

// NewPolytope builds a Polytope from vertices, face normals, and a
// per-vertex list of adjacent vertex indices (the edge graph of the hull).
func NewPolytope(pose Pose, vertices, normals []r3.Vector, neighbors [][]int) *Polytope {
	return &Polytope{pose: pose, vertices: vertices, normals: normals, neighbors: neighbors}
}

func (p *Polytope) Kind() Kind { return KindPolytope }

func (p *Polytope) Pose() Pose { return p.pose }

// Vertices returns the polytope's local-frame vertices.
func (p *Polytope) Vertices() []r3.Vector { return p.vertices }

// Normals returns the polytope's face normals.
func (p *Polytope) Normals() []r3.Vector { return p.normals }

// Support hill-climbs the vertex adjacency graph from hint (or vertex 0 if
// hint is out of range) to the locally-extreme vertex along d, returning
// its index as the hint for the next call — the neighbor-walk support
// hint spec.md's Data Model calls for on convex polytopes.
func (p *Polytope) Support(d r3.Vector, hint int) (r3.Vector, int) {
	if len(p.vertices) == 0 {
		return r3.Vector{}, 0
	}
	cur := hint
	if cur < 0 || cur >= len(p.vertices) {
		cur = 0
	}
	bestDot := d.Dot(p.vertices[cur])
	for {
		improved := false
		for _, n := range p.neighbors[cur] {
			if dot := d.Dot(p.vertices[n]); dot > bestDot+1e-12 {
				bestDot = dot
				cur = n
				improved = true
			}
		}
		if !improved {
			break
		}
	}
	return p.vertices[cur], cur
}

func (p *Polytope) SweptSphereRadius() float64 { return 0 }

func (p *Polytope) LocalAABB() AABB {
	return AABBFromPoints(p.vertices)
}
