// Package camera provides the first-person camera used for ray generation.
package camera

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/ascii3d/pkg/math"
)

// Camera errors.
var (
	ErrInvalidFOV    = errors.New("field of view must be between 0 and 180 degrees")
	ErrZeroDirection = errors.New("camera direction must be non-zero")
)

// FirstPersonCamera is a position plus a heading and the camera plane. The
// plane is perpendicular to the direction and its length is tan(fov/2), so a
// ray for screen column cameraX in [-1, 1] is Direction + Plane*cameraX.
type FirstPersonCamera struct {
	Position  math.Vec2
	Direction math.Vec2
	Plane     math.Vec2
}

// New creates a camera at position looking along direction. The direction is
// normalized and the plane is the direction rotated by -90 degrees, scaled by
// tan(fov/2).
func New(position, direction math.Vec2, fovDegrees float64) (*FirstPersonCamera, error) {
	if !(fovDegrees > 0 && fovDegrees < 180) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFOV, fovDegrees)
	}
	if direction.Length() == 0 {
		return nil, ErrZeroDirection
	}

	dir := direction.Normalize()
	halfFOV := fovDegrees * gomath.Pi / 360

	return &FirstPersonCamera{
		Position:  position,
		Direction: dir,
		Plane:     dir.Perp().Scale(gomath.Tan(halfFOV)),
	}, nil
}

// NewWithHeading creates a camera from a heading in degrees, measured from
// the +X axis towards +Y.
func NewWithHeading(position math.Vec2, headingDegrees, fovDegrees float64) (*FirstPersonCamera, error) {
	return New(position, math.FromAngle(headingDegrees*gomath.Pi/180), fovDegrees)
}

// Rotate turns the camera by angle radians. Direction and plane share one
// rotation matrix so they stay perpendicular and keep their lengths.
func (c *FirstPersonCamera) Rotate(angle float64) {
	sin, cos := gomath.Sincos(angle)
	c.Direction = c.Direction.RotateSinCos(sin, cos)
	c.Plane = c.Plane.RotateSinCos(sin, cos)
}

// RotateLeft turns the view towards the left edge of the screen.
func (c *FirstPersonCamera) RotateLeft(angle float64) {
	c.Rotate(angle)
}

// RotateRight turns the view towards the right edge of the screen. It is the
// exact inverse of RotateLeft with the same angle.
func (c *FirstPersonCamera) RotateRight(angle float64) {
	c.Rotate(-angle)
}

// RayDirection returns the ray for a normalized screen column.
func (c *FirstPersonCamera) RayDirection(cameraX float64) math.Vec2 {
	return c.Direction.Add(c.Plane.Scale(cameraX))
}

// FOV returns the horizontal field of view in degrees.
func (c *FirstPersonCamera) FOV() float64 {
	d := c.Direction.Length()
	if d == 0 {
		return 0
	}
	return 2 * gomath.Atan(c.Plane.Length()/d) * 180 / gomath.Pi
}

// Heading returns the direction angle in degrees in [0, 360).
func (c *FirstPersonCamera) Heading() float64 {
	deg := gomath.Atan2(c.Direction.Y, c.Direction.X) * 180 / gomath.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Cell returns the grid cell containing the camera.
func (c *FirstPersonCamera) Cell() (int, int) {
	return c.Position.Floor()
}

// String implements fmt.Stringer for diagnostics.
func (c *FirstPersonCamera) String() string {
	return fmt.Sprintf("pos=(%.2f,%.2f) heading=%.1f fov=%.1f",
		c.Position.X, c.Position.Y, c.Heading(), c.FOV())
}
