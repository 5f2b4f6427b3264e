package breakout

// Scale is the fixed-point resolution: one cell is 1000 units.
// Integer math keeps runs with the same seed and inputs identical.
const Scale = 1000

// Fixed is a fixed-point coordinate or velocity.
type Fixed int

// ToFixed converts a cell coordinate to fixed-point.
func ToFixed(cell int) Fixed {
	return Fixed(cell * Scale)
}

// FromFloat converts cells (possibly fractional) to fixed-point.
func FromFloat(cells float64) Fixed {
	return Fixed(cells * Scale)
}

// Cell truncates to a cell coordinate.
func (f Fixed) Cell() int {
	return int(f) / Scale
}

// Abs returns the absolute value.
func (f Fixed) Abs() Fixed {
	if f < 0 {
		return -f
	}
	return f
}

// Ball is the ball, positioned by its center.
type Ball struct {
	X, Y   Fixed
	VX, VY Fixed // Velocity per tick
	Stuck  bool  // Resting on the paddle before serve
}

// Move applies velocity.
func (b *Ball) Move() {
	b.X += b.VX
	b.Y += b.VY
}

// Paddle is the player's bat on a fixed row.
type Paddle struct {
	X     Fixed // Left edge
	Y     int
	Width int
}

// CenterX returns the paddle center.
func (p *Paddle) CenterX() Fixed {
	return p.X + ToFixed(p.Width)/2
}

// Right returns the right edge.
func (p *Paddle) Right() Fixed {
	return p.X + ToFixed(p.Width)
}

// Field is the playable rectangle inside the walls, in cells.
type Field struct {
	Left, Top, Right, Bottom int // Right and Bottom are exclusive
}

// bounceWalls reflects the ball off the side and top walls.
// It reports true when the ball has dropped past the bottom.
func bounceWalls(b *Ball, f Field) (fell bool) {
	if b.X < ToFixed(f.Left) {
		b.X = ToFixed(f.Left)
		b.VX = b.VX.Abs()
	}
	if b.X >= ToFixed(f.Right) {
		b.X = ToFixed(f.Right) - 1
		b.VX = -b.VX.Abs()
	}
	if b.Y < ToFixed(f.Top) {
		b.Y = ToFixed(f.Top)
		b.VY = b.VY.Abs()
	}
	return b.Y >= ToFixed(f.Bottom)
}

// bouncePaddle sends a descending ball back up. The horizontal speed
// depends on where it struck: the edges give the widest angle.
func bouncePaddle(b *Ball, p *Paddle, speed Fixed) bool {
	if b.VY <= 0 || b.Y.Cell() != p.Y-1 && b.Y.Cell() != p.Y {
		return false
	}
	if b.X < p.X || b.X > p.Right() {
		return false
	}

	half := ToFixed(p.Width) / 2
	offset := b.X - p.CenterX()
	if half > 0 {
		b.VX = offset * speed / half
	}
	b.VY = -speed
	b.Y = ToFixed(p.Y - 1)
	return true
}
