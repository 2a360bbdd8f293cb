package geometry

import "testing"

func TestAdjacentBoundedOutOfBounds(t *testing.T) {
	b := Bounds{Width: 5, Height: 5}
	c := Coordinate{X: 0, Y: 0}
	got := Adjacent(c, Left, b, false)
	if got.X != -1 || got.Y != 0 {
		t.Fatalf("expected out-of-bounds coordinate, got %+v", got)
	}
	if b.InBounds(got) {
		t.Fatalf("expected %+v to be out of bounds", got)
	}
}

func TestAdjacentWrappedStaysInBounds(t *testing.T) {
	b := Bounds{Width: 5, Height: 5}
	head := Coordinate{X: 1, Y: 0}
	down := Adjacent(head, Down, b, true)
	if down != (Coordinate{X: 1, Y: 4}) {
		t.Fatalf("expected wrap to (1,4), got %+v", down)
	}
	back := Adjacent(down, Up, b, true)
	if back != head {
		t.Fatalf("round trip failed: got %+v want %+v", back, head)
	}
}

func TestDirectionToRoundTrip(t *testing.T) {
	b := Bounds{Width: 11, Height: 11}
	a := Coordinate{X: 5, Y: 5}
	for _, wrap := range []bool{false, true} {
		for _, d := range AllDirections {
			n := Adjacent(a, d, b, wrap)
			got, ok := DirectionTo(a, n, b, wrap)
			if !ok {
				t.Fatalf("wrap=%v dir=%v: DirectionTo reported not-a-neighbor", wrap, d)
			}
			if got != d {
				t.Fatalf("wrap=%v dir=%v: DirectionTo returned %v", wrap, d, got)
			}
		}
	}
}

func TestDirectionToNotNeighbor(t *testing.T) {
	b := Bounds{Width: 11, Height: 11}
	a := Coordinate{X: 5, Y: 5}
	far := Coordinate{X: 8, Y: 8}
	if _, ok := DirectionTo(a, far, b, false); ok {
		t.Fatalf("expected far coordinate to not be a neighbor")
	}
}

func TestManhattanDistance(t *testing.T) {
	if got := ManhattanDistance(Coordinate{0, 0}, Coordinate{3, -4}); got != 7 {
		t.Fatalf("got %d want 7", got)
	}
}
