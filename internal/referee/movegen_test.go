package referee

import "testing"

func newEmptyState() *GameState {
	var g GameState
	g.Phase = Battle
	g.Result = Ongoing
	for i := range g.Pieces {
		id := PieceID(i)
		g.Pieces[i] = Piece{ID: id, Side: id.Side(), ActualRole: id.ActualRole(), Pos: NoPos}
	}
	return &g
}

func place(g *GameState, id PieceID, role RoleType, p Pos) *Piece {
	piece := g.Piece(id)
	piece.Pos = p
	piece.Alive = true
	piece.SurfaceRole = role
	piece.State = HiddenSurface
	pid := piece.ID
	g.setCell(p, &pid)
	return piece
}

func hasTarget(targets []Pos, p Pos) bool {
	for _, t := range targets {
		if t == p {
			return true
		}
	}
	return false
}

func TestHorseBlockedByLeg(t *testing.T) {
	g := newEmptyState()
	horse := place(g, 1, Horse, Pos{4, 4})
	place(g, 20, Pawn, Pos{4, 5}) // blocks the (0,1) leg toward (5,6)/(3,6)

	targets := pseudoTargets(g, horse)
	if hasTarget(targets, Pos{5, 6}) || hasTarget(targets, Pos{3, 6}) {
		t.Fatalf("expected leg-blocked targets excluded, got %v", targets)
	}
	if !hasTarget(targets, Pos{6, 5}) {
		t.Fatalf("expected unblocked horse target (6,5), got %v", targets)
	}
}

func TestElephantCannotCrossRiverOrJumpBlockedMidpoint(t *testing.T) {
	g := newEmptyState()
	elephant := place(g, 2, Elephant, Pos{2, 4})
	targets := pseudoTargets(g, elephant)
	if hasTarget(targets, Pos{4, 6}) || hasTarget(targets, Pos{0, 6}) {
		t.Fatalf("elephant should not cross the river, got %v", targets)
	}

	place(g, 3, Advisor, Pos{3, 3}) // blocks the midpoint toward (4,2)
	targets = pseudoTargets(g, elephant)
	if hasTarget(targets, Pos{4, 2}) {
		t.Fatalf("expected blocked-midpoint target excluded, got %v", targets)
	}
	if !hasTarget(targets, Pos{0, 2}) {
		t.Fatalf("expected unblocked elephant target (0,2), got %v", targets)
	}
}

func TestCannonCapturesOnlyByJumpingOneScreen(t *testing.T) {
	g := newEmptyState()
	cannon := place(g, 9, Cannon, Pos{0, 0})
	place(g, 20, Pawn, Pos{0, 3})  // screen
	place(g, 21, Pawn, Pos{0, 5})  // capturable beyond the screen
	place(g, 22, Pawn, Pos{0, 9})  // beyond a second piece, unreachable

	targets := pseudoTargets(g, cannon)
	if hasTarget(targets, Pos{0, 3}) {
		t.Fatalf("cannon should not land on the screen itself, got %v", targets)
	}
	if !hasTarget(targets, Pos{0, 5}) {
		t.Fatalf("cannon should capture the first piece past exactly one screen, got %v", targets)
	}
	if hasTarget(targets, Pos{0, 9}) {
		t.Fatalf("cannon should not capture past a second screen, got %v", targets)
	}
	for y := 0; y < 3; y++ {
		// Non-capturing slide up to (not including) the screen is allowed.
		if y > 0 && !hasTarget(targets, Pos{0, y}) {
			t.Fatalf("expected non-capture slide to (0,%d)", y)
		}
	}
}

func TestRookStopsAtFirstPieceAndCapturesOpponentOnly(t *testing.T) {
	g := newEmptyState()
	rook := place(g, 0, Rook, Pos{0, 0})
	place(g, 20, Pawn, Pos{0, 4})
	targets := pseudoTargets(g, rook)
	if !hasTarget(targets, Pos{0, 4}) {
		t.Fatalf("rook should capture first opposing piece, got %v", targets)
	}
	if hasTarget(targets, Pos{0, 5}) {
		t.Fatalf("rook should not see past the first blocking piece, got %v", targets)
	}

	g2 := newEmptyState()
	rook2 := place(g2, 0, Rook, Pos{0, 0})
	place(g2, 1, Horse, Pos{0, 4}) // own side
	targets2 := pseudoTargets(g2, rook2)
	if hasTarget(targets2, Pos{0, 4}) {
		t.Fatalf("rook should not capture its own side, got %v", targets2)
	}
}

func TestPawnSidewaysOnlyAfterCrossingRiver(t *testing.T) {
	g := newEmptyState()
	preRiver := place(g, 11, Pawn, Pos{0, 3})
	targets := pseudoTargets(g, preRiver)
	if hasTarget(targets, Pos{1, 3}) {
		t.Fatalf("pawn should not move sideways before crossing the river, got %v", targets)
	}
	if !hasTarget(targets, Pos{0, 4}) {
		t.Fatalf("pawn should move forward, got %v", targets)
	}

	postRiver := place(g, 12, Pawn, Pos{0, 5})
	targets = pseudoTargets(g, postRiver)
	if !hasTarget(targets, Pos{1, 5}) {
		t.Fatalf("pawn should move sideways after crossing the river, got %v", targets)
	}
}

func TestFlyingGeneralIsCheck(t *testing.T) {
	g := newEmptyState()
	place(g, 4, King, Pos{4, 1})
	place(g, 20, King, Pos{4, 8})
	if !isInCheck(g, Red) {
		t.Fatalf("expected flying-general check with no piece between the kings")
	}

	place(g, 21, Pawn, Pos{4, 5})
	if isInCheck(g, Red) {
		t.Fatalf("expected no check once a piece blocks the file")
	}
}
