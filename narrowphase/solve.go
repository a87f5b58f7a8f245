package narrowphase

import (
	"github.com/golang/geo/r3"

	"go.viam.com/collide/epa"
	"go.viam.com/collide/gjk"
	"go.viam.com/collide/minkowski"
	"go.viam.com/collide/spatial"
)

// SolveCollision runs a full collision query for the ordered pair (s1,
// s2): GJK first, then EPA if GJK reports Collision and req.EnableContact
// is set. Analytic fast paths for common pairs are tried before falling
// back to this general path — see TryAnalyticCollision in this package.
func SolveCollision(s1, s2 spatial.Shape, req CollisionRequest) *CollisionResult {
	if analytic, ok := TryAnalyticCollision(s1, s2, req); ok {
		return analytic
	}
	adapter := minkowski.New(s1, s2)
	adapter.SetHints(req.CachedSupportFuncGuess.Hint1, req.CachedSupportFuncGuess.Hint2)
	return solveCollisionAdapter(adapter, req)
}

func solveCollisionAdapter(adapter *minkowski.Adapter, req CollisionRequest) *CollisionResult {
	gjkCfg := req.GJKConfig
	if req.DistanceUpperBound > 0 {
		gjkCfg.DistanceUpperBound = req.DistanceUpperBound
	}
	gjkRes := gjk.Solve(adapter, req.InitialGuess, gjkCfg)
	radius := adapter.CombinedSweptSphereRadius()
	margin := radius + req.SecurityMargin
	h1, h2 := adapter.Hints()
	guess := SupportHint{Hint1: h1, Hint2: h2}

	switch gjkRes.Status {
	case gjk.NoCollision, gjk.NoCollisionEarlyStopped, gjk.Failed:
		if gjkRes.Distance > margin {
			res := &CollisionResult{
				Status:               gjkRes.Status,
				IsCollision:          false,
				NextSupportFuncGuess: guess,
			}
			if req.EnableDistanceLowerBound {
				res.DistanceLowerBound = gjkRes.Distance - radius
			}
			return res
		}
		// Cores are separated but the inflated (swept-sphere + security
		// margin) volumes overlap.
		normal := gjkRes.Witness1.Sub(gjkRes.Witness2)
		if n := normal.Norm(); n > 1e-12 {
			normal = normal.Mul(1 / n)
		}
		return &CollisionResult{
			Status:               gjk.Collision,
			IsCollision:          true,
			PenetrationDepth:     radius - gjkRes.Distance,
			Normal:               normal,
			Witness1:             adapter.ToWorld1(gjkRes.Witness1),
			Witness2:             adapter.ToWorld1(gjkRes.Witness2),
			NextSupportFuncGuess: guess,
		}
	case gjk.Collision:
		if !req.EnableContact {
			return &CollisionResult{Status: gjk.Collision, IsCollision: true, NextSupportFuncGuess: guess}
		}
		epaRes := epa.Solve(adapter, gjkRes.Simplex, req.EPAConfig)
		return &CollisionResult{
			Status:               gjk.CollisionWithPenetrationInformation,
			IsCollision:          true,
			PenetrationDepth:     epaRes.PenetrationDepth + radius,
			Normal:               epaRes.Normal,
			Witness1:             adapter.ToWorld1(epaRes.Witness1),
			Witness2:             adapter.ToWorld1(epaRes.Witness2),
			NextSupportFuncGuess: guess,
			EPAStatus:            epaRes.Status,
		}
	default:
		return &CollisionResult{Status: gjkRes.Status, NextSupportFuncGuess: guess}
	}
}

// SolveDistance runs a distance query for the ordered pair (s1, s2).
// Distance runs EPA only when req.EnableSignedDistance is set and GJK
// reports Collision, reporting the negative penetration depth; otherwise a
// colliding pair is reported as Distance 0, leaving full penetration
// recovery to SolveCollision.
func SolveDistance(s1, s2 spatial.Shape, req DistanceRequest) *DistanceResult {
	if analytic, ok := TryAnalyticDistance(s1, s2, req); ok {
		return analytic
	}
	adapter := minkowski.New(s1, s2)
	adapter.SetHints(req.CachedSupportFuncGuess.Hint1, req.CachedSupportFuncGuess.Hint2)
	return solveDistanceAdapter(adapter, req)
}

func solveDistanceAdapter(adapter *minkowski.Adapter, req DistanceRequest) *DistanceResult {
	gjkCfg := req.GJKConfig
	if gjkCfg.Convergence == gjk.ConvergenceDefault {
		if req.AbsErr > 0 {
			gjkCfg.Convergence = gjk.ConvergenceAbsolute
			gjkCfg.Tolerance = req.AbsErr
		} else if req.RelErr > 0 {
			gjkCfg.Convergence = gjk.ConvergenceRelative
			gjkCfg.Tolerance = req.RelErr
		}
	}

	gjkRes := gjk.Solve(adapter, req.InitialGuess, gjkCfg)
	radius := adapter.CombinedSweptSphereRadius()
	h1, h2 := adapter.Hints()
	guess := SupportHint{Hint1: h1, Hint2: h2}

	if gjkRes.Status == gjk.Collision {
		if !req.EnableSignedDistance {
			return &DistanceResult{Status: gjkRes.Status, Distance: 0, IsCollision: true, NextSupportFuncGuess: guess}
		}
		epaRes := epa.Solve(adapter, gjkRes.Simplex, req.EPAConfig)
		return &DistanceResult{
			Status:               gjkRes.Status,
			Distance:             -(epaRes.PenetrationDepth + radius),
			IsCollision:          true,
			Witness1:             adapter.ToWorld1(epaRes.Witness1),
			Witness2:             adapter.ToWorld1(epaRes.Witness2),
			NextSupportFuncGuess: guess,
		}
	}

	dist := gjkRes.Distance - radius
	if dist < 0 {
		dist = 0
	}
	return &DistanceResult{
		Status:               gjkRes.Status,
		Distance:             dist,
		IsCollision:          dist <= 0,
		Witness1:             adapter.ToWorld1(gjkRes.Witness1),
		Witness2:             adapter.ToWorld1(gjkRes.Witness2),
		NextSupportFuncGuess: guess,
	}
}

// SolveShapeTriangle solves a shape-vs-triangle collision query given a
// relative transform (rel, t) already derived once for shape's pose
// against the triangle's frame, skipping the spatial.RelativePose
// derivation minkowski.New would otherwise repeat for every triangle of a
// mesh leaf — the fast path octree-vs-mesh traversal uses while walking a
// BVH leaf's triangles against one fixed box (original_source/'s
// shapeTriangleInteraction holds the analogous per-leaf placement fixed
// across its triangle loop). Analytic fast paths do not apply here since
// they key off each shape's own Pose(), which tri's does not carry.
func SolveShapeTriangle(s spatial.Shape, tri *spatial.Triangle, rel *spatial.RotationMatrix, t r3.Vector, req CollisionRequest) *CollisionResult {
	adapter := minkowski.NewRelative(s, tri, rel, t)
	adapter.SetHints(req.CachedSupportFuncGuess.Hint1, req.CachedSupportFuncGuess.Hint2)
	return solveCollisionAdapter(adapter, req)
}

// SolveShapeTriangleDistance is SolveShapeTriangle's distance counterpart.
func SolveShapeTriangleDistance(s spatial.Shape, tri *spatial.Triangle, rel *spatial.RotationMatrix, t r3.Vector, req DistanceRequest) *DistanceResult {
	adapter := minkowski.NewRelative(s, tri, rel, t)
	adapter.SetHints(req.CachedSupportFuncGuess.Hint1, req.CachedSupportFuncGuess.Hint2)
	return solveDistanceAdapter(adapter, req)
}

// zeroIfSmall clamps near-zero floats to exactly zero. TryAnalyticCollision
// and TryAnalyticDistance apply it to analyticSeparation's signed distance
// so that floating point noise in a closed-form formula doesn't make an
// exactly-touching pair register as a hair of penetration or separation.
func zeroIfSmall(v float64) float64 {
	if v > -1e-9 && v < 1e-9 {
		return 0
	}
	return v
}
