package raycast

import "math"

const tau = 2 * math.Pi

// Player is the viewer: a world-space position and a heading in radians kept
// in [0, 2π).
type Player struct {
	Position Vec2
	Heading  float64
}

// Forward returns the unit direction the player faces.
func (p Player) Forward() Vec2 { return FromAngle(p.Heading) }

// Right returns the unit strafe direction to the player's right.
func (p Player) Right() Vec2 { return p.Forward().Perp() }

// Input is the per-frame control state polled by a presentation layer.
type Input struct {
	Forward     bool
	Back        bool
	StrafeLeft  bool
	StrafeRight bool
	RotateLeft  bool
	RotateRight bool
	Quit        bool
}

// Moving reports whether the input requests any translation or rotation.
func (in Input) Moving() bool {
	return in.Forward || in.Back || in.StrafeLeft || in.StrafeRight || in.RotateLeft || in.RotateRight
}

// WrapAngle maps a into [0, 2π).
func WrapAngle(a float64) float64 {
	a = math.Mod(a, tau)
	if a < 0 {
		a += tau
	}
	if a >= tau {
		a = 0
	}
	return a
}

// axisInput folds a pair of opposing buttons into -1, 0 or 1.
func axisInput(neg, pos bool) float64 {
	switch {
	case pos && !neg:
		return 1
	case neg && !pos:
		return -1
	}
	return 0
}

// Steer applies one frame of input to p. Rotation is applied first and is
// never blocked. The translation is then checked against g one axis at a time:
// an axis whose destination is a wall is dropped, so the player slides along
// walls instead of sticking to them.
func (p Player) Steer(g *Grid, in Input, moveSpeed, rotateSpeed float64) Player {
	if turn := axisInput(in.RotateLeft, in.RotateRight); turn != 0 {
		p.Heading = WrapAngle(p.Heading + turn*rotateSpeed)
	}
	fwd := axisInput(in.Back, in.Forward)
	strafe := axisInput(in.StrafeLeft, in.StrafeRight)
	if fwd == 0 && strafe == 0 {
		return p
	}
	delta := p.Forward().Scale(fwd).Add(p.Right().Scale(strafe))
	if fwd != 0 && strafe != 0 {
		delta = delta.Scale(math.Sqrt2 / 2)
	}
	p.Position = slide(g, p.Position, delta.Scale(moveSpeed))
	return p
}

func slide(g *Grid, from, delta Vec2) Vec2 {
	to := from
	if delta.X != 0 && !g.IsWall(Vec2{X: to.X + delta.X, Y: to.Y}) {
		to.X += delta.X
	}
	if delta.Y != 0 && !g.IsWall(Vec2{X: to.X, Y: to.Y + delta.Y}) {
		to.Y += delta.Y
	}
	return to
}
