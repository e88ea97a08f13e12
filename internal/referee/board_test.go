package referee

import "testing"

func TestInPalaceBounds(t *testing.T) {
	cases := []struct {
		side Side
		p    Pos
		want bool
	}{
		{Red, Pos{4, 1}, true},
		{Red, Pos{3, 0}, true},
		{Red, Pos{2, 1}, false},
		{Red, Pos{4, 3}, false},
		{Black, Pos{4, 8}, true},
		{Black, Pos{4, 3}, false},
	}
	for _, c := range cases {
		if got := inPalace(c.side, c.p); got != c.want {
			t.Errorf("inPalace(%v, %v) = %v, want %v", c.side, c.p, got, c.want)
		}
	}
}

func TestMirroredPointSetsAreSymmetric(t *testing.T) {
	for _, p := range redAdvisorPoints {
		if !containsPos(advisorPoints(Black), mirrorY(p)) {
			t.Errorf("mirrored advisor point %v missing from Black's set", mirrorY(p))
		}
	}
	for _, p := range redElephantPoints {
		if !containsPos(elephantPoints(Black), mirrorY(p)) {
			t.Errorf("mirrored elephant point %v missing from Black's set", mirrorY(p))
		}
	}
}

func TestSetupSlotRoleCoversCanonicalTable(t *testing.T) {
	wantCounts := map[RoleType]int{
		Rook: 2, Horse: 2, Elephant: 2, Advisor: 2, King: 1, Cannon: 2, Pawn: 5,
	}
	gotCounts := map[RoleType]int{}
	for _, p := range legalSlotPositions(Red) {
		role, ok := setupSlotRole(Red, p)
		if !ok {
			t.Fatalf("expected %v to be a canonical Red slot", p)
		}
		gotCounts[role]++
	}
	for role, want := range wantCounts {
		if gotCounts[role] != want {
			t.Errorf("role %v: got %d slots, want %d", role, gotCounts[role], want)
		}
	}

	if _, ok := setupSlotRole(Red, Pos{4, 5}); ok {
		t.Errorf("(4,5) should not be a canonical setup slot")
	}

	for _, p := range legalSlotPositions(Red) {
		if _, ok := setupSlotRole(Black, mirrorY(p)); !ok {
			t.Errorf("mirrored slot %v should be canonical for Black", mirrorY(p))
		}
	}
}
