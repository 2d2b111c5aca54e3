package maze

// Result is the outcome of resolving one tick of movement.
type Result struct {
	X, Y int // committed position

	BlockedX    bool // horizontal move was requested and refused
	BlockedY    bool // vertical move was requested and refused
	Moved       bool // the position changed
	GoalReached bool // the tentative box overlapped a goal cell
}

// Resolver moves an actor through a grid one fixed step per tick,
// resolving each axis separately so the actor slides along walls.
type Resolver struct {
	grid *Grid
	step int
}

// NewResolver creates a resolver for grid moving step units per tick.
// A non-positive step is treated as 1.
func NewResolver(grid *Grid, step int) *Resolver {
	if step <= 0 {
		step = 1
	}
	return &Resolver{grid: grid, step: step}
}

// Grid returns the grid the resolver works on.
func (r *Resolver) Grid() *Grid { return r.grid }

// Step returns the movement per tick.
func (r *Resolver) Step() int { return r.step }

// Resolve computes the actor's next position for the held directions.
//
// Each axis is probed on its own against every wall cell and committed
// only if unblocked. The goal test uses the combined tentative box, even
// when one of the axes was refused.
func (r *Resolver) Resolve(a Actor, d Dir) Result {
	res := Result{X: a.X, Y: a.Y}

	dx, dy := d.Delta()
	newX := a.X + dx*r.step
	newY := a.Y + dy*r.step

	box := a.Rect()
	probeX := box.MoveTo(newX, a.Y)
	probeY := box.MoveTo(a.X, newY)
	for _, w := range r.grid.walls {
		if dx != 0 && w.Intersects(probeX) {
			res.BlockedX = true
		}
		if dy != 0 && w.Intersects(probeY) {
			res.BlockedY = true
		}
	}

	if !res.BlockedX {
		res.X = newX
	}
	if !res.BlockedY {
		res.Y = newY
	}

	// Both axes passed alone but the diagonal lands on a convex corner.
	// Keep the horizontal move and refuse the vertical one.
	if dx != 0 && dy != 0 && !res.BlockedX && !res.BlockedY &&
		r.grid.HitsWall(box.MoveTo(res.X, res.Y)) {
		res.Y = a.Y
		res.BlockedY = true
	}

	res.Moved = res.X != a.X || res.Y != a.Y
	res.GoalReached = r.grid.HitsGoal(box.MoveTo(newX, newY))
	return res
}

// Apply resolves one tick and returns the moved actor with the result.
func (r *Resolver) Apply(a Actor, d Dir) (Actor, Result) {
	res := r.Resolve(a, d)
	return a.At(res.X, res.Y), res
}

// GoalLatch turns a level signal into a single rising-edge event, so a
// win fires once per approach while the actor stays on the goal.
type GoalLatch struct {
	inside bool
}

// Observe records this tick's goal flag and reports whether it just rose.
func (l *GoalLatch) Observe(reached bool) bool {
	fired := reached && !l.inside
	l.inside = reached
	return fired
}

// Reset forgets any previous overlap.
func (l *GoalLatch) Reset() {
	l.inside = false
}
