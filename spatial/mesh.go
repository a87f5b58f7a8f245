package spatial

// Mesh is a posed collection of triangles, the primitive a bvh.Builder
// indexes and octree-vs-mesh traversal walks leaf-by-leaf. Mesh is not
// itself a Shape: narrow phase always operates on the individual
// Triangle leaves a BVH resolves a query down to.
type Mesh struct {
	pose      Pose
	triangles []*Triangle
}

// NewMesh builds a Mesh from a pose and a set of triangles given in the
// mesh's local frame.
func NewMesh(pose Pose, triangles []*Triangle) *Mesh {
	return &Mesh{pose: pose, triangles: triangles}
}

// Pose returns the mesh's pose.
func (m *Mesh) Pose() Pose {
	return m.pose
}

// Triangles returns the mesh's triangles, in the mesh's local frame.
func (m *Mesh) Triangles() []*Triangle {
	return m.triangles
}

// WorldTriangles returns the mesh's triangles transformed into world
// space, the form octree-vs-mesh traversal and the bvh builder consume.
func (m *Mesh) WorldTriangles() []*Triangle {
	out := make([]*Triangle, len(m.triangles))
	rm := m.pose.Orientation().RotationMatrix()
	for i, t := range m.triangles {
		pts := t.Points()
		out[i] = NewTriangle(
			m.pose.Point().Add(rm.MulVec(pts[0])),
			m.pose.Point().Add(rm.MulVec(pts[1])),
			m.pose.Point().Add(rm.MulVec(pts[2])),
		)
	}
	return out
}

// Transform returns a copy of m repositioned by pose; the triangle data
// itself, being in the mesh's local frame, is shared unchanged.
func (m *Mesh) Transform(pose Pose) *Mesh {
	return &Mesh{pose: Compose(pose, m.pose), triangles: m.triangles}
}
