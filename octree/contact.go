package octree

import (
	"github.com/golang/geo/r3"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/collide/epa"
	"go.viam.com/collide/logging"
	"go.viam.com/collide/narrowphase"
	"go.viam.com/collide/spatial"
)

// Contact is a single reported interaction between two occupied octree
// cells, a cell and a mesh triangle, or a cell and a shape. ID gives each
// contact a stable identity independent of its position in the result
// slice, the same way spec.md's higher-level collision objects are
// expected to be addressable once this package's caller attaches them to
// a broad-phase pair.
type Contact struct {
	ID uuid.UUID
	// PrimitiveIndex1 and PrimitiveIndex2 are unused (left zero) for
	// octree-vs-octree and octree-vs-shape contacts. For octree-vs-mesh,
	// PrimitiveIndex2 is the triangle's index within the Triangles slice
	// of the BVH leaf it came from, not an index into the whole mesh, and
	// PrimitiveIndex1 is left zero.
	PrimitiveIndex1, PrimitiveIndex2 int
	// PenetrationDepth is set only when the underlying query enabled
	// contact reporting; it is negative (a gap) for a pair that is only
	// within Buffer or SecurityMargin of touching, and zero otherwise.
	PenetrationDepth float64
	Point            r3.Vector
	Normal           r3.Vector
}

// TraversalRequest configures a single collision traversal over one of the
// six entry points.
type TraversalRequest struct {
	// MaxContacts caps the result buffer. Once reached, traversal unwinds
	// early unless Exhaustive is set. A non-positive value means 1.
	MaxContacts int
	// Exhaustive disables the early unwind once MaxContacts is reached,
	// visiting every remaining branch anyway.
	Exhaustive bool
	// Buffer inflates leaf-level tests by a contact tolerance, as
	// spec.md's component design allows for near-touching pairs.
	Buffer float64
	// CollisionConfig configures the narrow-phase solve run at each leaf
	// pair.
	CollisionConfig narrowphase.CollisionRequest
}

// DefaultTraversalRequest returns a TraversalRequest that reports a single
// contact and runs full narrow-phase contact generation at leaves.
func DefaultTraversalRequest() TraversalRequest {
	return TraversalRequest{
		MaxContacts:     1,
		CollisionConfig: narrowphase.DefaultCollisionRequest(),
	}
}

// leafCollisionConfig returns r.CollisionConfig with SecurityMargin raised
// to at least r.Buffer, so a leaf pair the AABB/OBB prune already let
// through as "within Buffer of touching" is also reported as a contact by
// the narrow-phase solve itself, rather than the two tolerances disagreeing.
func (r TraversalRequest) leafCollisionConfig() narrowphase.CollisionRequest {
	cfg := r.CollisionConfig
	if r.Buffer > cfg.SecurityMargin {
		cfg.SecurityMargin = r.Buffer
	}
	return cfg
}

func (r TraversalRequest) maxContacts() int {
	if r.MaxContacts <= 0 {
		return 1
	}
	return r.MaxContacts
}

// collector accumulates contacts up to a cap, reporting when the caller
// should unwind early. It also aggregates non-fatal narrow-phase
// diagnostics (EPA capacity exhaustion, degenerate geometry) encountered
// at leaf pairs — spec.md §7 kinds (a)-(c) are local and never abort a
// traversal, but a caller still wants to know a contact's geometry was
// best-effort rather than fully converged.
type collector struct {
	contacts   []Contact
	max        int
	exhaustive bool
	diag       error
}

func newCollector(req TraversalRequest) *collector {
	return &collector{max: req.maxContacts(), exhaustive: req.Exhaustive}
}

// add appends c and returns true when the caller should stop searching:
// the buffer is full and the request is not exhaustive.
func (c *collector) add(contact Contact) (full bool) {
	if len(c.contacts) >= c.max {
		return !c.exhaustive
	}
	c.contacts = append(c.contacts, contact)
	return len(c.contacts) >= c.max && !c.exhaustive
}

// noteEPAStatus folds a leaf solve's EPA status into the traversal's
// aggregated diagnostics whenever it is anything other than a clean
// convergence, so the caller can log (or ignore) a single combined
// summary instead of one warning per leaf.
func (c *collector) noteEPAStatus(status epa.Status) {
	switch status {
	case epa.DidNotRun, epa.Valid:
		return
	default:
		c.diag = multierr.Append(c.diag, errors.Errorf("epa: leaf solve terminated as %s", status))
	}
}

// logDiagnostics reports any aggregated diagnostics through logger, if
// both are present, at the end of a traversal call.
func (c *collector) logDiagnostics(logger logging.Logger) {
	if c.diag == nil || logger == nil {
		return
	}
	logger.Warnw("narrow-phase reported best-effort results during traversal", "errors", c.diag)
}

// nodeWorldBox returns the spatial.Box covering n's volume, posed in world
// space via treePose (the tree's own placement). The box's local axes are
// the tree's local axes, so its orientation is exactly treePose's.
func nodeWorldBox(n *node, treePose spatial.Pose) *spatial.Box {
	center := spatial.TransformPoint(treePose, n.bounds.Center())
	worldPose := spatial.NewPose(center, treePose.Orientation())
	dims := n.bounds.Max.Sub(n.bounds.Min)
	return spatial.NewBox(worldPose, dims)
}

// worldAABB returns a conservative world-space AABB for n under treePose,
// used only for coarse pruning (it over-approximates a rotated cell by its
// bounding box rather than tracking an OBB).
func worldAABB(n *node, treePose spatial.Pose) spatial.AABB {
	box := nodeWorldBox(n, treePose)
	verts := box.Vertices()
	return spatial.AABBFromPoints(verts[:])
}

func volume(b spatial.AABB) float64 {
	ext := b.Max.Sub(b.Min)
	return ext.X * ext.Y * ext.Z
}
