package referee

// inPalace reports whether p lies within side's 3x3 palace.
func inPalace(side Side, p Pos) bool {
	if p.X < 3 || p.X > 5 {
		return false
	}
	if side == Red {
		return p.Y >= 0 && p.Y <= 2
	}
	return p.Y >= 7 && p.Y <= 9
}

// redAdvisorPoints are the five diagonal intersections inside Red's palace
// an Advisor may occupy.
var redAdvisorPoints = []Pos{{3, 0}, {5, 0}, {4, 1}, {3, 2}, {5, 2}}

// redElephantPoints are the seven points an Elephant may occupy on its own
// half of the board.
var redElephantPoints = []Pos{{2, 0}, {6, 0}, {0, 2}, {4, 2}, {8, 2}, {2, 4}, {6, 4}}

func mirrorY(p Pos) Pos {
	return Pos{X: p.X, Y: 9 - p.Y}
}

func advisorPoints(side Side) []Pos {
	if side == Red {
		return redAdvisorPoints
	}
	out := make([]Pos, len(redAdvisorPoints))
	for i, p := range redAdvisorPoints {
		out[i] = mirrorY(p)
	}
	return out
}

func elephantPoints(side Side) []Pos {
	if side == Red {
		return redElephantPoints
	}
	out := make([]Pos, len(redElephantPoints))
	for i, p := range redElephantPoints {
		out[i] = mirrorY(p)
	}
	return out
}

func containsPos(list []Pos, p Pos) bool {
	for _, q := range list {
		if q == p {
			return true
		}
	}
	return false
}

// onOwnHalf reports whether p is on side's half of the river (Red: y<=4,
// Black: y>=5).
func onOwnHalf(side Side, p Pos) bool {
	if side == Red {
		return p.Y <= 4
	}
	return p.Y >= 5
}

// hasCrossedRiver reports whether a pawn belonging to side standing at p has
// already crossed into the opponent's half.
func hasCrossedRiver(side Side, p Pos) bool {
	return !onOwnHalf(side, p)
}

// redSetupSlots are the 16 canonical setup slots for Red, paired with the
// surface role that any piece placed there takes on. Black's slots are the
// same x with y' = 9 - y.
var redSetupSlots = []struct {
	Pos  Pos
	Role RoleType
}{
	{Pos{0, 0}, Rook},
	{Pos{1, 0}, Horse},
	{Pos{2, 0}, Elephant},
	{Pos{3, 0}, Advisor},
	{Pos{4, 0}, King},
	{Pos{5, 0}, Advisor},
	{Pos{6, 0}, Elephant},
	{Pos{7, 0}, Horse},
	{Pos{8, 0}, Rook},
	{Pos{1, 2}, Cannon},
	{Pos{7, 2}, Cannon},
	{Pos{0, 3}, Pawn},
	{Pos{2, 3}, Pawn},
	{Pos{4, 3}, Pawn},
	{Pos{6, 3}, Pawn},
	{Pos{8, 3}, Pawn},
}

// setupSlotRole returns the canonical role for p on side's setup rank, and
// whether p is a valid setup slot for that side at all.
func setupSlotRole(side Side, p Pos) (RoleType, bool) {
	target := p
	if side == Black {
		target = mirrorY(p)
	}
	for _, slot := range redSetupSlots {
		if slot.Pos == target {
			return slot.Role, true
		}
	}
	return 0, false
}

// legalSlotPositions returns the 16 canonical slot positions for side.
func legalSlotPositions(side Side) []Pos {
	out := make([]Pos, len(redSetupSlots))
	for i, slot := range redSetupSlots {
		if side == Red {
			out[i] = slot.Pos
		} else {
			out[i] = mirrorY(slot.Pos)
		}
	}
	return out
}
