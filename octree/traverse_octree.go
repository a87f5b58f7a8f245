package octree

import (
	"math"

	"go.viam.com/collide/narrowphase"
	"go.viam.com/collide/spatial"

	"github.com/google/uuid"
)

// CollideOctreeOctree walks a and b in lockstep, pruning any branch where
// either side is free, and solving box-vs-box at matching occupied leaves.
// poseA and poseB place each tree in a common world frame.
func CollideOctreeOctree(a *Tree, poseA spatial.Pose, b *Tree, poseB spatial.Pose, req TraversalRequest) []Contact {
	col := newCollector(req)
	collideOctreeNodes(a.root, poseA, b.root, poseB, req, col)
	col.logDiagnostics(a.logger)
	return col.contacts
}

func collideOctreeNodes(na *node, poseA spatial.Pose, nb *node, poseB spatial.Pose, req TraversalRequest, col *collector) (stop bool) {
	if na.nodeType == LeafNodeFree || nb.nodeType == LeafNodeFree {
		return false
	}
	boundsA, boundsB := worldAABB(na, poseA), worldAABB(nb, poseB)
	if !boundsA.Expanded(req.Buffer).Overlaps(boundsB) {
		return false
	}

	aIsLeaf, bIsLeaf := na.nodeType != InternalNode, nb.nodeType != InternalNode
	switch {
	case aIsLeaf && bIsLeaf:
		if na.nodeType != LeafNodeOccupied || nb.nodeType != LeafNodeOccupied {
			// At least one side is uncertain: we can't prune it (only
			// free volume is safe to skip) but we also can't yet claim
			// a confirmed contact. Report nothing at this pair.
			return false
		}
		boxA, boxB := nodeWorldBox(na, poseA), nodeWorldBox(nb, poseB)
		cfg := req.leafCollisionConfig()
		// Both leaves are boxes: the SAT gap test is exact and far
		// cheaper than GJK/EPA, so it rejects the common case (occupied
		// cells whose AABBs overlap but whose oriented boxes do not)
		// before falling through to the general solve for the cases SAT
		// alone can't resolve (reporting penetration depth, normal and
		// witnesses).
		if spatial.BoxVsBoxSeparationLowerBound(boxA, boxB) > cfg.SecurityMargin {
			return false
		}
		res := narrowphase.SolveCollision(boxA, boxB, cfg)
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
	case aIsLeaf:
		for _, c := range nb.children {
			if collideOctreeNodes(na, poseA, c, poseB, req, col) {
				return true
			}
		}
		return false
	case bIsLeaf:
		for _, c := range na.children {
			if collideOctreeNodes(c, poseA, nb, poseB, req, col) {
				return true
			}
		}
		return false
	default:
		// Both internal: descend whichever side covers more volume
		// first, the same size(bv1) > size(bv2) tie-break spec.md's
		// component design names for co-descent.
		if volume(boundsA) >= volume(boundsB) {
			for _, c := range na.children {
				if collideOctreeNodes(c, poseA, nb, poseB, req, col) {
					return true
				}
			}
			return false
		}
		for _, c := range nb.children {
			if collideOctreeNodes(na, poseA, c, poseB, req, col) {
				return true
			}
		}
		return false
	}
}

// DistanceOctreeOctree returns the minimum world-space distance between any
// occupied cell of a and any occupied cell of b, and false if either tree
// has no occupied cell (or no occupied pair was reachable).
func DistanceOctreeOctree(a *Tree, poseA spatial.Pose, b *Tree, poseB spatial.Pose, req narrowphase.DistanceRequest) (float64, bool) {
	best := math.Inf(1)
	found := false
	distanceOctreeNodes(a.root, poseA, b.root, poseB, req, &best, &found)
	return best, found
}

func distanceOctreeNodes(na *node, poseA spatial.Pose, nb *node, poseB spatial.Pose, req narrowphase.DistanceRequest, best *float64, found *bool) {
	if na.nodeType == LeafNodeFree || nb.nodeType == LeafNodeFree {
		return
	}
	boundsA, boundsB := worldAABB(na, poseA), worldAABB(nb, poseB)
	if boundsA.DistanceLowerBound(boundsB) >= *best {
		return
	}

	aIsLeaf, bIsLeaf := na.nodeType != InternalNode, nb.nodeType != InternalNode
	switch {
	case aIsLeaf && bIsLeaf:
		if na.nodeType != LeafNodeOccupied || nb.nodeType != LeafNodeOccupied {
			return
		}
		boxA, boxB := nodeWorldBox(na, poseA), nodeWorldBox(nb, poseB)
		if spatial.BoxVsBoxSeparationLowerBound(boxA, boxB) >= *best {
			return
		}
		res := narrowphase.SolveDistance(boxA, boxB, req)
		if res.Distance < *best {
			*best = res.Distance
			*found = true
		}
	case aIsLeaf:
		for _, c := range nb.children {
			distanceOctreeNodes(na, poseA, c, poseB, req, best, found)
		}
	case bIsLeaf:
		for _, c := range na.children {
			distanceOctreeNodes(c, poseA, nb, poseB, req, best, found)
		}
	default:
		if volume(boundsA) >= volume(boundsB) {
			for _, c := range na.children {
				distanceOctreeNodes(c, poseA, nb, poseB, req, best, found)
			}
			return
		}
		for _, c := range nb.children {
			distanceOctreeNodes(na, poseA, c, poseB, req, best, found)
		}
	}
}
