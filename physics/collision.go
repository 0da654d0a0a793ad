package physics

import "math"

// solvePair pushes two overlapping particles apart and removes the closing
// part of their relative velocity.
func solvePair(pa, va, pb, vb *Vec2, diameter, stiffness float64) {
	dx := pb.X - pa.X
	dy := pb.Y - pa.Y
	distSq := dx*dx + dy*dy

	if distSq >= diameter*diameter {
		return
	}

	var nx, ny, dist float64
	if distSq < 1e-12 {
		// Exactly on top of each other, separate along a fixed axis
		nx, ny, dist = 1, 0, 0
	} else {
		dist = math.Sqrt(distSq)
		nx = dx / dist
		ny = dy / dist
	}

	// Remove approaching velocity along the normal
	rvx := vb.X - va.X
	rvy := vb.Y - va.Y
	closing := rvx*nx + rvy*ny
	if closing < 0 {
		half := closing * 0.5
		va.X += nx * half
		va.Y += ny * half
		vb.X -= nx * half
		vb.Y -= ny * half
	}

	// Positional correction, split evenly
	overlap := diameter - dist
	correction := overlap * 0.5 * stiffness
	pa.X -= nx * correction
	pa.Y -= ny * correction
	pb.X += nx * correction
	pb.Y += ny * correction
}

// pushOut moves a particle out of a solid box and kills the velocity
// component pointing into it. Returns true if the particle was touching.
func pushOut(p, v *Vec2, radius float64, lo, hi Vec2) bool {
	cx := clamp(p.X, lo.X, hi.X)
	cy := clamp(p.Y, lo.Y, hi.Y)
	dx := p.X - cx
	dy := p.Y - cy
	distSq := dx*dx + dy*dy

	if distSq > radius*radius {
		return false
	}

	var nx, ny, depth float64
	if distSq > 1e-12 {
		// Centre outside the box, push along the closest-point normal
		dist := math.Sqrt(distSq)
		nx = dx / dist
		ny = dy / dist
		depth = radius - dist
	} else {
		// Centre inside the box, leave through the nearest face
		left := p.X - lo.X
		right := hi.X - p.X
		up := p.Y - lo.Y
		down := hi.Y - p.Y

		depth = left
		nx, ny = -1, 0
		if right < depth {
			depth, nx, ny = right, 1, 0
		}
		if up < depth {
			depth, nx, ny = up, 0, -1
		}
		if down < depth {
			depth, nx, ny = down, 0, 1
		}
		depth += radius
	}

	p.X += nx * depth
	p.Y += ny * depth

	vn := v.X*nx + v.Y*ny
	if vn < 0 {
		v.X -= nx * vn
		v.Y -= ny * vn
	}
	return true
}
