package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/gamesim/internal/entity"
	"github.com/san-kum/gamesim/internal/geom"
)

// Penetration returns the overlap depth of a and b on each axis and the sign
// of the center offset from a to b. Depth is half-extent sum minus center
// distance; it is only meaningful when the rectangles intersect.
func Penetration(a, b geom.Rect) (depth, dir mgl64.Vec2) {
	offset := b.Center().Sub(a.Center())
	sa, sb := a.Size(), b.Size()

	depth = mgl64.Vec2{
		math.Abs(sa.X()/2 + sb.X()/2 - math.Abs(offset.X())),
		math.Abs(sa.Y()/2 + sb.Y()/2 - math.Abs(offset.Y())),
	}
	dir = mgl64.Vec2{sign(offset.X()), sign(offset.Y())}
	return depth, dir
}

// TestAndResolve reports whether c1 and c2 overlap. Shapes of the same
// entity never collide. When both shapes are physics shapes their owners are
// pushed apart along the axis with the smaller depth, half the depth each;
// the other axis is untouched.
func TestAndResolve(c1, c2 *entity.Collider) bool {
	if c1 == nil || c2 == nil {
		return false
	}
	if c1.Owner == c2.Owner {
		return false
	}
	if !c1.Bounds.Intersects(c2.Bounds) {
		return false
	}

	if c1.Physics && c2.Physics {
		depth, dir := Penetration(c1.Bounds, c2.Bounds)
		if depth.X() < depth.Y() {
			shift(c1.Owner, -depth.X()/2*dir.X(), 0)
			shift(c2.Owner, depth.X()/2*dir.X(), 0)
		} else {
			shift(c1.Owner, 0, -depth.Y()/2*dir.Y())
			shift(c2.Owner, 0, depth.Y()/2*dir.Y())
		}
	}

	return true
}

func shift(e *entity.Entity, dx, dy float64) {
	if e != nil {
		e.ShiftPosition(dx, dy)
	}
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
