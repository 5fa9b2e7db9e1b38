// Package raycast implements DDA grid traversal for the first-person view.
package raycast

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/ascii3d/internal/engine/camera"
	"github.com/Faultbox/ascii3d/internal/world"
	"github.com/Faultbox/ascii3d/pkg/math"
)

// Ray casting errors.
var (
	ErrRayEscaped    = errors.New("ray left the grid without hitting a wall")
	ErrDegenerateRay = errors.New("ray direction is zero")
)

// ParallelEpsilon is the smallest ray direction component treated as
// non-zero. Below it the ray is considered parallel to that axis and never
// crosses its grid lines.
const ParallelEpsilon = 1e-12

// Side identifies which kind of grid line the ray crossed last.
type Side uint8

const (
	// SideX means the ray stepped along X and hit a vertical wall face.
	SideX Side = 0
	// SideY means the ray stepped along Y and hit a horizontal wall face.
	SideY Side = 1
)

// String returns "x" or "y".
func (s Side) String() string {
	if s == SideY {
		return "y"
	}
	return "x"
}

// Hit is the result of casting one screen column.
type Hit struct {
	MapX, MapY int
	Side       Side
	Distance   float64 // perpendicular to the camera plane
	Symbol     world.Symbol
	RayDir     math.Vec2
	Steps      int
}

// CameraX maps screen column screenX of width columns to [-1, 1).
func CameraX(screenX, width int) float64 {
	return 2*float64(screenX)/float64(width) - 1
}

// CastColumn casts the ray for screen column screenX of a view width columns wide.
func CastColumn(cam *camera.FirstPersonCamera, grid *world.Grid, screenX, width int) (Hit, error) {
	return Cast(cam, grid, CameraX(screenX, width))
}

// Cast walks the grid from the camera position along the ray for cameraX,
// one grid line at a time, until it enters a cell that is not open.
func Cast(cam *camera.FirstPersonCamera, grid *world.Grid, cameraX float64) (Hit, error) {
	pos := cam.Position
	rayDir := cam.RayDirection(cameraX)

	parallelX := gomath.Abs(rayDir.X) < ParallelEpsilon
	parallelY := gomath.Abs(rayDir.Y) < ParallelEpsilon
	if parallelX && parallelY {
		return Hit{}, fmt.Errorf("%w: cameraX=%v", ErrDegenerateRay, cameraX)
	}

	mapX, mapY := pos.Floor()

	// Distance along the ray between two consecutive grid lines of each axis.
	deltaX, deltaY := gomath.Inf(1), gomath.Inf(1)
	if !parallelX {
		deltaX = gomath.Abs(1 / rayDir.X)
	}
	if !parallelY {
		deltaY = gomath.Abs(1 / rayDir.Y)
	}

	// Distance along the ray to the first grid line of each axis.
	stepX, sideDistX := 1, gomath.Inf(1)
	if rayDir.X < 0 {
		stepX = -1
	}
	if !parallelX {
		if stepX < 0 {
			sideDistX = (pos.X - float64(mapX)) * deltaX
		} else {
			sideDistX = (float64(mapX) + 1 - pos.X) * deltaX
		}
	}

	stepY, sideDistY := 1, gomath.Inf(1)
	if rayDir.Y < 0 {
		stepY = -1
	}
	if !parallelY {
		if stepY < 0 {
			sideDistY = (pos.Y - float64(mapY)) * deltaY
		} else {
			sideDistY = (float64(mapY) + 1 - pos.Y) * deltaY
		}
	}

	var (
		side  Side
		steps int
		sym   world.Symbol
	)
	for {
		if sideDistX < sideDistY {
			sideDistX += deltaX
			mapX += stepX
			side = SideX
		} else {
			sideDistY += deltaY
			mapY += stepY
			side = SideY
		}
		steps++

		s, err := grid.CellAt(mapX, mapY)
		if err != nil {
			return Hit{}, fmt.Errorf("%w: %w", ErrRayEscaped, err)
		}
		if !grid.IsOpen(s) {
			sym = s
			break
		}
	}

	var dist float64
	if side == SideX {
		dist = (float64(mapX) - pos.X + float64(1-stepX)/2) / rayDir.X
	} else {
		dist = (float64(mapY) - pos.Y + float64(1-stepY)/2) / rayDir.Y
	}

	return Hit{
		MapX:     mapX,
		MapY:     mapY,
		Side:     side,
		Distance: dist,
		Symbol:   sym,
		RayDir:   rayDir,
		Steps:    steps,
	}, nil
}

// MaxLineHeight bounds Strip.LineHeight for vanishing distances.
const MaxLineHeight = gomath.MaxInt32

// Strip is the vertical span a wall occupies in one screen column.
type Strip struct {
	LineHeight int
	DrawStart  int
	DrawEnd    int
}

// Project converts a perpendicular distance into the wall strip for a view
// screenHeight rows tall. Non-positive and NaN distances fill the column.
func Project(distance float64, screenHeight int) Strip {
	lineHeight := screenHeight
	if distance > 0 && !gomath.IsNaN(distance) {
		lh := gomath.Floor(float64(screenHeight) / distance)
		// Capped only where the conversion to int would overflow.
		lineHeight = MaxLineHeight
		if lh < MaxLineHeight {
			lineHeight = int(lh)
		}
	}

	drawStart := screenHeight/2 - lineHeight/2
	if drawStart < 0 {
		drawStart = 0
	}
	if drawStart > screenHeight {
		drawStart = screenHeight
	}

	drawEnd := screenHeight/2 + lineHeight/2
	if drawEnd >= screenHeight {
		drawEnd = screenHeight - 1
	}
	if drawEnd < 0 {
		drawEnd = 0
	}

	return Strip{
		LineHeight: lineHeight,
		DrawStart:  drawStart,
		DrawEnd:    drawEnd,
	}
}
