package octree

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/google/uuid"

	"go.viam.com/collide/bvh"
	"go.viam.com/collide/narrowphase"
	"go.viam.com/collide/spatial"
)

// CollideOctreeMesh walks tree against a mesh BVH, pruning free octree
// cells and disjoint bounds, and at each occupied-leaf/BVH-leaf pairing
// solves box-vs-triangle for every triangle the BVH leaf carries.
func CollideOctreeMesh(t *Tree, treePose spatial.Pose, mesh *bvh.Node, meshPose spatial.Pose, req TraversalRequest) []Contact {
	col := newCollector(req)
	if mesh != nil {
		collideMeshNode(t.root, treePose, mesh, meshPose, req, col)
	}
	col.logDiagnostics(t.logger)
	return col.contacts
}

func collideMeshNode(n *node, treePose spatial.Pose, bv *bvh.Node, meshPose spatial.Pose, req TraversalRequest, col *collector) (stop bool) {
	if n.nodeType == LeafNodeFree {
		return false
	}
	cellBounds := worldAABB(n, treePose)
	meshBounds := meshWorldAABB(bv, meshPose)
	if !cellBounds.Expanded(req.Buffer).Overlaps(meshBounds) {
		return false
	}

	if n.nodeType != InternalNode && bv.IsLeaf() {
		if n.nodeType != LeafNodeOccupied {
			return false
		}
		box := nodeWorldBox(n, treePose)
		rel, t := spatial.RelativePose(box.Pose(), meshPose)
		cfg := req.leafCollisionConfig()
		for i, tri := range bv.Triangles {
			res := narrowphase.SolveShapeTriangle(box, tri, rel, t, cfg)
			col.noteEPAStatus(res.EPAStatus)
			if !res.IsCollision {
				continue
			}
			if col.add(Contact{
				ID:               uuid.New(),
				PrimitiveIndex2:  i,
				PenetrationDepth: res.PenetrationDepth,
				Point:            res.Witness1,
				Normal:           res.Normal,
			}) {
				return true
			}
		}
		return false
	}

	if !bv.IsLeaf() {
		if collideMeshNode(n, treePose, bv.Left, meshPose, req, col) {
			return true
		}
		return collideMeshNode(n, treePose, bv.Right, meshPose, req, col)
	}
	// bv is a leaf but n is still internal: descend the octree side.
	for _, c := range n.children {
		if collideMeshNode(c, treePose, bv, meshPose, req, col) {
			return true
		}
	}
	return false
}

// DistanceOctreeMesh returns the minimum world-space distance between any
// occupied cell of t and any triangle of mesh, and false when nothing
// occupied was reachable.
func DistanceOctreeMesh(t *Tree, treePose spatial.Pose, mesh *bvh.Node, meshPose spatial.Pose, req narrowphase.DistanceRequest) (float64, bool) {
	if mesh == nil {
		return math.Inf(1), false
	}
	best := math.Inf(1)
	found := false
	distanceMeshNode(t.root, treePose, mesh, meshPose, req, &best, &found)
	return best, found
}

func distanceMeshNode(n *node, treePose spatial.Pose, bv *bvh.Node, meshPose spatial.Pose, req narrowphase.DistanceRequest, best *float64, found *bool) {
	if n.nodeType == LeafNodeFree {
		return
	}
	cellBounds := worldAABB(n, treePose)
	meshBounds := meshWorldAABB(bv, meshPose)
	if cellBounds.DistanceLowerBound(meshBounds) >= *best {
		return
	}

	if n.nodeType != InternalNode && bv.IsLeaf() {
		if n.nodeType != LeafNodeOccupied {
			return
		}
		box := nodeWorldBox(n, treePose)
		rel, t := spatial.RelativePose(box.Pose(), meshPose)
		for _, tri := range bv.Triangles {
			res := narrowphase.SolveShapeTriangleDistance(box, tri, rel, t, req)
			if res.Distance < *best {
				*best = res.Distance
				*found = true
			}
		}
		return
	}

	if !bv.IsLeaf() {
		distanceMeshNode(n, treePose, bv.Left, meshPose, req, best, found)
		distanceMeshNode(n, treePose, bv.Right, meshPose, req, best, found)
		return
	}
	for _, c := range n.children {
		distanceMeshNode(c, treePose, bv, meshPose, req, best, found)
	}
}

// meshWorldAABB returns bv's bounding box (stored in the mesh's local
// frame) transformed into world space by meshPose.
func meshWorldAABB(bv *bvh.Node, meshPose spatial.Pose) spatial.AABB {
	rm := meshPose.Orientation().RotationMatrix()
	corners := [8]r3.Vector{
		{X: bv.Min.X, Y: bv.Min.Y, Z: bv.Min.Z}, {X: bv.Min.X, Y: bv.Min.Y, Z: bv.Max.Z},
		{X: bv.Min.X, Y: bv.Max.Y, Z: bv.Min.Z}, {X: bv.Min.X, Y: bv.Max.Y, Z: bv.Max.Z},
		{X: bv.Max.X, Y: bv.Min.Y, Z: bv.Min.Z}, {X: bv.Max.X, Y: bv.Min.Y, Z: bv.Max.Z},
		{X: bv.Max.X, Y: bv.Max.Y, Z: bv.Min.Z}, {X: bv.Max.X, Y: bv.Max.Y, Z: bv.Max.Z},
	}
	pts := make([]r3.Vector, 8)
	for i, c := range corners {
		pts[i] = meshPose.Point().Add(rm.MulVec(c))
	}
	return spatial.AABBFromPoints(pts)
}
