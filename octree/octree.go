// Package octree implements the occupancy octree spec.md's data model
// describes: a sparse eight-way tree over a cubic root volume, each node
// carrying a probability that its volume is occupied. Traversal compares
// two trees, a tree and a mesh BVH, or a tree and an arbitrary shape,
// pruning on occupancy and bounding-volume overlap before any narrow-phase
// query runs.
//
// Grounded on the teacher's point-storage octree (New's constructor shape,
// the split-on-insert recursion, the NodeType enum idiom), generalized from
// point occupancy to probabilistic occupancy and from leaf-point lookup to
// bounding-volume traversal.
package octree

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/collide/logging"
	"go.viam.com/collide/spatial"
)

// NodeType classifies a node's occupancy state.
type NodeType uint8

const (
	// InternalNode has eight children and carries no occupancy value of
	// its own.
	InternalNode NodeType = iota
	// LeafNodeFree is a leaf whose occupancy probability is at or below
	// the free threshold: traversal prunes it without descending further.
	LeafNodeFree
	// LeafNodeOccupied is a leaf whose occupancy probability is above
	// the occupied threshold: traversal solves against it.
	LeafNodeOccupied
	// LeafNodeUncertain is a leaf whose occupancy probability falls
	// between the free and occupied thresholds (above the free threshold,
	// at or below the occupied one): traversal does not prune it as free
	// volume, but a leaf pair is only solved when every leaf in it is
	// occupied, so an uncertain leaf never yields a contact or a distance.
	LeafNodeUncertain
)

func (n NodeType) String() string {
	switch n {
	case InternalNode:
		return "internal"
	case LeafNodeFree:
		return "free"
	case LeafNodeOccupied:
		return "occupied"
	case LeafNodeUncertain:
		return "uncertain"
	default:
		return "unknown"
	}
}

// DefaultOccupancyThreshold is the probability above which a cell is
// classified occupied, mirroring the 0.5 log-odds convention most
// occupancy-grid implementations (including the octomap lineage this one
// descends from) use by default.
const DefaultOccupancyThreshold = 0.5

// DefaultFreeThreshold is the probability at or below which a cell is
// classified free. spec.md fixes this at 0 by default: only a cell with no
// recorded evidence of occupancy at all is pruned.
const DefaultFreeThreshold = 0.0

// node is one cell of the tree, sized sideLength on each edge and centered
// at center in the tree's local frame.
type node struct {
	nodeType  NodeType
	occupancy float64
	children  [8]*node
	bounds    spatial.AABB
}

func newLeaf(bounds spatial.AABB, occupancy float64, occThresh, freeThresh float64) *node {
	return &node{
		nodeType:  classify(occupancy, occThresh, freeThresh),
		occupancy: occupancy,
		bounds:    bounds,
	}
}

func classify(prob, occThresh, freeThresh float64) NodeType {
	switch {
	case prob > occThresh:
		return LeafNodeOccupied
	case prob <= freeThresh:
		return LeafNodeFree
	default:
		return LeafNodeUncertain
	}
}

// Tree is a sparse occupancy octree over a cubic root volume of side
// 2^depth * resolution, posed in world space by whatever Pose the caller
// supplies to a traversal call: the tree itself only stores local-frame
// geometry, the same separation of "shape" from "placement" spatial.Shape
// uses.
type Tree struct {
	logger        logging.Logger
	root          *node
	resolution    float64
	occThreshold  float64
	freeThreshold float64
}

// New builds an empty Tree (a single uncertain root cell) spanning a cube
// of the given sideLength centered at center. SetOccupancy later halves
// cells until a cell's side is no larger than resolution, so a leaf can
// end up smaller than resolution when sideLength is not resolution times a
// power of two. sideLength and resolution must be positive,
// matching the teacher's NewCollisionOctree validation.
func New(center r3.Vector, sideLength, resolution float64, logger logging.Logger) (*Tree, error) {
	if sideLength <= 0 {
		return nil, errors.New("octree: sideLength must be positive")
	}
	if resolution <= 0 || resolution > sideLength {
		return nil, errors.New("octree: resolution must be positive and no larger than sideLength")
	}
	if logger == nil {
		logger = logging.NewLogger("octree")
	}

	half := sideLength / 2
	bounds := spatial.NewAABB(center.Sub(r3.Vector{X: half, Y: half, Z: half}), center.Add(r3.Vector{X: half, Y: half, Z: half}))
	return &Tree{
		logger:        logger,
		root:          newLeaf(bounds, 0.5, DefaultOccupancyThreshold, DefaultFreeThreshold),
		resolution:    resolution,
		occThreshold:  DefaultOccupancyThreshold,
		freeThreshold: DefaultFreeThreshold,
	}, nil
}

// SetThresholds overrides the default occupied/free classification
// thresholds. occThreshold must exceed freeThreshold, per spec.md's
// tau_free < tau_occ invariant.
func (t *Tree) SetThresholds(occThreshold, freeThreshold float64) error {
	if freeThreshold >= occThreshold {
		return errors.New("octree: freeThreshold must be less than occThreshold")
	}
	t.occThreshold = occThreshold
	t.freeThreshold = freeThreshold
	return nil
}

// Bounds returns the tree's root bounding box in its local frame.
func (t *Tree) Bounds() spatial.AABB {
	return t.root.bounds
}

// Resolution returns the resolution given to New: the largest side a cell
// may have once SetOccupancy stops splitting it.
func (t *Tree) Resolution() float64 {
	return t.resolution
}

// SetOccupancy records an occupancy probability for the leaf cell
// containing p (in the tree's local frame), splitting internal nodes down
// to resolution as needed. It mirrors the teacher's recursive Set, but
// subdivides unconditionally by cell size rather than stopping at the
// first unoccupied slot, since every cell here always holds a probability.
func (t *Tree) SetOccupancy(p r3.Vector, probability float64) error {
	if !t.root.bounds.Contains(p) {
		return errors.Errorf("octree: point %v lies outside tree bounds", p)
	}
	if probability < 0 || probability > 1 {
		return errors.Errorf("octree: probability %f out of [0,1]", probability)
	}
	t.root = setOccupancy(t.root, p, probability, t.resolution, t.occThreshold, t.freeThreshold)
	return nil
}

func setOccupancy(n *node, p r3.Vector, probability, resolution, occThresh, freeThresh float64) *node {
	side := n.bounds.Max.X - n.bounds.Min.X
	if n.nodeType != InternalNode {
		if side <= resolution {
			n.occupancy = probability
			n.nodeType = classify(probability, occThresh, freeThresh)
			return n
		}
		n.nodeType = InternalNode
		for i := 0; i < 8; i++ {
			n.children[i] = newLeaf(n.bounds.Octant(i), n.occupancy, occThresh, freeThresh)
		}
	}
	for i, c := range n.children {
		if c.bounds.Contains(p) {
			n.children[i] = setOccupancy(c, p, probability, resolution, occThresh, freeThresh)
			return n
		}
	}
	// p sits exactly on a shared boundary; Octant's convention always
	// assigns ties to the lower half, so this should be unreachable, but
	// fall back to the first child rather than silently dropping the
	// update.
	n.children[0] = setOccupancy(n.children[0], p, probability, resolution, occThresh, freeThresh)
	return n
}

// At returns the occupancy probability and classification of the leaf
// cell containing p, and whether p lies within the tree's bounds at all.
func (t *Tree) At(p r3.Vector) (float64, NodeType, bool) {
	if !t.root.bounds.Contains(p) {
		return 0, InternalNode, false
	}
	n := t.root
	for n.nodeType == InternalNode {
		found := false
		for _, c := range n.children {
			if c.bounds.Contains(p) {
				n = c
				found = true
				break
			}
		}
		if !found {
			n = n.children[0]
		}
	}
	return n.occupancy, n.nodeType, true
}
