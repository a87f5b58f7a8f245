package octree

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/google/uuid"

	"go.viam.com/collide/narrowphase"
	"go.viam.com/collide/spatial"
)

// CollideOctreeShape walks tree against an arbitrary shape, posed in a
// common world frame via treePose and shapePose, pruning free cells and
// cells whose world AABB cannot reach the shape's world AABB, and solving
// box-vs-shape at each occupied leaf.
func CollideOctreeShape(t *Tree, treePose spatial.Pose, shape spatial.Shape, shapePose spatial.Pose, req TraversalRequest) []Contact {
	col := newCollector(req)
	shapeBounds := shapeWorldAABB(shape, shapePose)
	collideShapeNode(t.root, treePose, shape, shapePose, shapeBounds, req, col)
	col.logDiagnostics(t.logger)
	return col.contacts
}

func collideShapeNode(n *node, treePose spatial.Pose, shape spatial.Shape, shapePose spatial.Pose, shapeBounds spatial.AABB, req TraversalRequest, col *collector) (stop bool) {
	if n.nodeType == LeafNodeFree {
		return false
	}
	cellBounds := worldAABB(n, treePose)
	if !cellBounds.Expanded(req.Buffer).Overlaps(shapeBounds) {
		return false
	}

	if n.nodeType != InternalNode {
		if n.nodeType != LeafNodeOccupied {
			return false
		}
		box := nodeWorldBox(n, treePose)
		res := narrowphase.SolveCollision(box, posedShape(shape, shapePose), req.leafCollisionConfig())
		col.noteEPAStatus(res.EPAStatus)
		if !res.IsCollision {
			return false
		}
		return col.add(Contact{
			ID:               uuid.New(),
			PenetrationDepth: res.PenetrationDepth,
			Point:            res.Witness1,
			Normal:           res.Normal,
		})
	}

	for _, c := range n.children {
		if collideShapeNode(c, treePose, shape, shapePose, shapeBounds, req, col) {
			return true
		}
	}
	return false
}

// DistanceOctreeShape returns the minimum world-space distance between any
// occupied cell of t and shape, and false when nothing occupied was
// reachable.
func DistanceOctreeShape(t *Tree, treePose spatial.Pose, shape spatial.Shape, shapePose spatial.Pose, req narrowphase.DistanceRequest) (float64, bool) {
	shapeBounds := shapeWorldAABB(shape, shapePose)
	best := math.Inf(1)
	found := false
	distanceShapeNode(t.root, treePose, shape, shapePose, shapeBounds, req, &best, &found)
	return best, found
}

func distanceShapeNode(n *node, treePose spatial.Pose, shape spatial.Shape, shapePose spatial.Pose, shapeBounds spatial.AABB, req narrowphase.DistanceRequest, best *float64, found *bool) {
	if n.nodeType == LeafNodeFree {
		return
	}
	cellBounds := worldAABB(n, treePose)
	if cellBounds.DistanceLowerBound(shapeBounds) >= *best {
		return
	}

	if n.nodeType != InternalNode {
		if n.nodeType != LeafNodeOccupied {
			return
		}
		box := nodeWorldBox(n, treePose)
		res := narrowphase.SolveDistance(box, posedShape(shape, shapePose), req)
		if res.Distance < *best {
			*best = res.Distance
			*found = true
		}
		return
	}

	for _, c := range n.children {
		distanceShapeNode(c, treePose, shape, shapePose, shapeBounds, req, best, found)
	}
}

// shapeWorldAABB returns a conservative world-space AABB for shape posed
// by shapePose, the coarse bound octree traversal prunes against before
// ever calling into narrowphase.
func shapeWorldAABB(shape spatial.Shape, shapePose spatial.Pose) spatial.AABB {
	local := shape.LocalAABB().Expanded(shape.SweptSphereRadius())
	rm := shapePose.Orientation().RotationMatrix()
	min, max := local.Min, local.Max
	pts := make([]r3.Vector, 0, 8)
	for _, x := range []float64{min.X, max.X} {
		for _, y := range []float64{min.Y, max.Y} {
			for _, z := range []float64{min.Z, max.Z} {
				pts = append(pts, shapePose.Point().Add(rm.MulVec(r3.Vector{X: x, Y: y, Z: z})))
			}
		}
	}
	return spatial.AABBFromPoints(pts)
}

// posedShape wraps shape so its Pose() reports its position composed with
// shapePose, letting narrowphase solve it against a world-posed box
// without the caller needing to bake shapePose into the shape itself.
func posedShape(shape spatial.Shape, shapePose spatial.Pose) spatial.Shape {
	return &reposedShape{Shape: shape, pose: spatial.Compose(shapePose, shape.Pose())}
}

// reposedShape overrides Pose() on an embedded Shape so narrowphase sees
// it composed with an outer placement, without needing a setter on every
// concrete shape type.
type reposedShape struct {
	spatial.Shape
	pose spatial.Pose
}

func (r *reposedShape) Pose() spatial.Pose { return r.pose }
