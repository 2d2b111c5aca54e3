package maze

import (
	"math/rand"
	"testing"
)

func mustGrid(t *testing.T, rows ...string) *Grid {
	t.Helper()
	g, err := ParseRows(rows, 30)
	if err != nil {
		t.Fatalf("ParseRows: %v", err)
	}
	return g
}

func TestResolveNoInput(t *testing.T) {
	g := sampleGrid(t)
	r := NewResolver(g, 1)
	a := NewActor(30, 30, 20)

	for i := 0; i < 10; i++ {
		res := r.Resolve(a, Dir{})
		if res.X != a.X || res.Y != a.Y || res.Moved {
			t.Fatalf("no input moved the actor to (%d, %d)", res.X, res.Y)
		}
		if res.BlockedX || res.BlockedY {
			t.Fatal("no input should never report a blocked axis")
		}
	}
}

func TestResolveOpposingFlagsCancel(t *testing.T) {
	r := NewResolver(sampleGrid(t), 1)
	a := NewActor(35, 35, 20)

	res := r.Resolve(a, Dir{Up: true, Down: true, Left: true, Right: true})
	if res.Moved {
		t.Errorf("opposing flags moved the actor to (%d, %d)", res.X, res.Y)
	}
}

func TestResolveSingleAxis(t *testing.T) {
	tests := []struct {
		name      string
		dir       Dir
		x, y      int
		wantX     int
		wantY     int
		blockedX  bool
		blockedY  bool
		wantMoved bool
	}{
		{"right in open space", Dir{Right: true}, 35, 35, 36, 35, false, false, true},
		{"down in open space", Dir{Down: true}, 35, 35, 35, 36, false, false, true},
		{"left against border", Dir{Left: true}, 30, 35, 30, 35, true, false, false},
		{"up against border", Dir{Up: true}, 35, 30, 35, 30, false, true, false},
	}

	r := NewResolver(sampleGrid(t), 1)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := r.Resolve(NewActor(tc.x, tc.y, 20), tc.dir)
			if res.X != tc.wantX || res.Y != tc.wantY {
				t.Errorf("position = (%d, %d), expected (%d, %d)", res.X, res.Y, tc.wantX, tc.wantY)
			}
			if res.BlockedX != tc.blockedX || res.BlockedY != tc.blockedY {
				t.Errorf("blocked = (%v, %v), expected (%v, %v)", res.BlockedX, res.BlockedY, tc.blockedX, tc.blockedY)
			}
			if res.Moved != tc.wantMoved {
				t.Errorf("Moved = %v, expected %v", res.Moved, tc.wantMoved)
			}
		})
	}
}

// Wall at cell (0,0) only; the actor sits just right of it.
func TestResolveSlidesAlongWall(t *testing.T) {
	g := mustGrid(t,
		"100",
		"000",
		"000",
	)
	r := NewResolver(g, 1)
	a := NewActor(30, 5, 20)

	for i := 0; i < 20; i++ {
		var res Result
		a, res = r.Apply(a, Dir{Left: true, Down: true})
		if a.X != 30 {
			t.Fatalf("tick %d: blocked x changed to %d", i, a.X)
		}
		if !res.BlockedX {
			t.Fatalf("tick %d: expected x to be blocked", i)
		}
		if a.Y != 5+i+1 {
			t.Fatalf("tick %d: y = %d, expected %d", i, a.Y, 5+i+1)
		}
	}

	// Past the wall's bottom edge the x axis opens up again.
	a = NewActor(30, 30, 20)
	a, res := r.Apply(a, Dir{Left: true})
	if res.BlockedX || a.X != 29 {
		t.Errorf("below the wall, left should move: x = %d blocked = %v", a.X, res.BlockedX)
	}
}

func TestResolveCornerDiagonal(t *testing.T) {
	// Single wall at (1,1); actor touches its top-left corner diagonally.
	g := mustGrid(t,
		"000",
		"010",
		"000",
	)
	r := NewResolver(g, 1)
	a := NewActor(10, 10, 20)

	res := r.Resolve(a, Dir{Right: true, Down: true})
	if res.BlockedX {
		t.Error("x probe alone does not touch the wall")
	}
	if !res.BlockedY {
		t.Error("diagonal into a corner should refuse the vertical move")
	}
	if res.X != 11 || res.Y != 10 {
		t.Errorf("position = (%d, %d), expected (11, 10)", res.X, res.Y)
	}
	if g.HitsWall(a.At(res.X, res.Y).Rect()) {
		t.Error("actor overlaps the wall after resolution")
	}
}

func TestResolveGoalTouch(t *testing.T) {
	g := mustGrid(t,
		"000",
		"020",
		"000",
	)
	r := NewResolver(g, 1)

	// Right edge at x=30, exactly touching the goal's left edge.
	a := NewActor(10, 30, 20)
	if r.Resolve(a, Dir{}).GoalReached {
		t.Error("touching edges are not an overlap")
	}
	res := r.Resolve(a, Dir{Right: true})
	if !res.GoalReached {
		t.Error("stepping onto the goal boundary should reach the goal")
	}
}

func TestResolveGoalUsesTentativeBox(t *testing.T) {
	// Goal below a wall-blocked move: the combined box still reaches it.
	g := mustGrid(t,
		"0000",
		"0010",
		"0020",
	)
	r := NewResolver(g, 1)
	a := NewActor(40, 40, 20) // x right edge 60 touches wall (2,1)

	res := r.Resolve(a, Dir{Right: true, Down: true})
	if !res.BlockedX {
		t.Fatal("expected x blocked by wall (2,1)")
	}
	if !res.GoalReached {
		t.Error("goal check should use the combined tentative box")
	}
}

func TestResolveStepSize(t *testing.T) {
	r := NewResolver(sampleGrid(t), 3)
	res := r.Resolve(NewActor(35, 35, 20), Dir{Right: true, Down: true})
	if res.X != 38 || res.Y != 38 {
		t.Errorf("position = (%d, %d), expected (38, 38)", res.X, res.Y)
	}

	if NewResolver(sampleGrid(t), 0).Step() != 1 {
		t.Error("non-positive step should default to 1")
	}
}

func TestResolveNeverOverlapsWallRandomWalk(t *testing.T) {
	g := sampleGrid(t)
	bounds := g.Bounds()

	for _, step := range []int{1, 2, 3, 5} {
		r := NewResolver(g, step)
		rng := rand.New(rand.NewSource(int64(step)))
		a := NewActor(30, 30, 20)

		for tick := 0; tick < 3000; tick++ {
			// Hold each random direction set for a while, like a player would.
			d := Dir{
				Up:    rng.Intn(3) == 0,
				Down:  rng.Intn(3) == 0,
				Left:  rng.Intn(3) == 0,
				Right: rng.Intn(3) == 0,
			}
			hold := 1 + rng.Intn(40)
			for h := 0; h < hold; h++ {
				prev := a
				var res Result
				a, res = r.Apply(a, d)
				if g.HitsWall(a.Rect()) {
					t.Fatalf("step %d tick %d: actor %+v overlaps a wall", step, tick, a)
				}
				if !bounds.Contains(a.X, a.Y) {
					t.Fatalf("step %d tick %d: actor escaped to (%d, %d)", step, tick, a.X, a.Y)
				}
				if res.BlockedX && a.X != prev.X {
					t.Fatalf("blocked x axis changed")
				}
				if res.BlockedY && a.Y != prev.Y {
					t.Fatalf("blocked y axis changed")
				}
				if !d.Any() && res.Moved {
					t.Fatalf("moved without input")
				}
			}
		}
	}
}

func TestGoalLatch(t *testing.T) {
	var l GoalLatch
	seq := []struct {
		reached bool
		fire    bool
	}{
		{false, false},
		{true, true},
		{true, false},
		{true, false},
		{false, false},
		{true, true},
	}
	for i, s := range seq {
		if got := l.Observe(s.reached); got != s.fire {
			t.Errorf("tick %d: Observe(%v) = %v, expected %v", i, s.reached, got, s.fire)
		}
	}

	l.Reset()
	if !l.Observe(true) {
		t.Error("after Reset the next overlap should fire")
	}
}
