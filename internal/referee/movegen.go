package referee

// pseudoTargets returns the candidate destination squares for piece under
// standard Xiangqi movement rules for its active role, ignoring whether the
// resulting position would leave the mover's own side in check.
func pseudoTargets(g *GameState, piece *Piece) []Pos {
	switch piece.ActiveRole() {
	case King:
		return kingTargets(g, piece)
	case Advisor:
		return advisorTargets(g, piece)
	case Elephant:
		return elephantTargets(g, piece)
	case Horse:
		return horseTargets(g, piece)
	case Rook:
		return slideTargets(g, piece, true)
	case Cannon:
		return cannonTargets(g, piece)
	case Pawn:
		return pawnTargets(g, piece)
	default:
		return nil
	}
}

func notOwnPiece(g *GameState, side Side, p Pos) bool {
	occ := g.PieceAt(p)
	return occ == nil || occ.Side != side
}

func kingTargets(g *GameState, piece *Piece) []Pos {
	deltas := [4]Pos{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	var out []Pos
	for _, d := range deltas {
		t := Pos{piece.Pos.X + d.X, piece.Pos.Y + d.Y}
		if !t.Valid() || !inPalace(piece.Side, t) {
			continue
		}
		if notOwnPiece(g, piece.Side, t) {
			out = append(out, t)
		}
	}
	return out
}

func advisorTargets(g *GameState, piece *Piece) []Pos {
	var out []Pos
	for _, t := range advisorPoints(piece.Side) {
		dx := t.X - piece.Pos.X
		dy := t.Y - piece.Pos.Y
		if dx != 1 && dx != -1 {
			continue
		}
		if dy != 1 && dy != -1 {
			continue
		}
		if notOwnPiece(g, piece.Side, t) {
			out = append(out, t)
		}
	}
	return out
}

func elephantTargets(g *GameState, piece *Piece) []Pos {
	deltas := [4]Pos{{2, 2}, {2, -2}, {-2, 2}, {-2, -2}}
	var out []Pos
	for _, d := range deltas {
		t := Pos{piece.Pos.X + d.X, piece.Pos.Y + d.Y}
		if !t.Valid() || !onOwnHalf(piece.Side, t) {
			continue
		}
		mid := Pos{piece.Pos.X + d.X/2, piece.Pos.Y + d.Y/2}
		if g.PieceAt(mid) != nil {
			continue
		}
		if notOwnPiece(g, piece.Side, t) {
			out = append(out, t)
		}
	}
	return out
}

type horseMove struct {
	dx, dy   int8
	legx, legy int8
}

var horseMoves = [8]horseMove{
	{1, 2, 0, 1}, {1, -2, 0, -1}, {-1, 2, 0, 1}, {-1, -2, 0, -1},
	{2, 1, 1, 0}, {2, -1, 1, 0}, {-2, 1, -1, 0}, {-2, -1, -1, 0},
}

func horseTargets(g *GameState, piece *Piece) []Pos {
	var out []Pos
	for _, m := range horseMoves {
		t := Pos{piece.Pos.X + m.dx, piece.Pos.Y + m.dy}
		if !t.Valid() {
			continue
		}
		leg := Pos{piece.Pos.X + m.legx, piece.Pos.Y + m.legy}
		if g.PieceAt(leg) != nil {
			continue
		}
		if notOwnPiece(g, piece.Side, t) {
			out = append(out, t)
		}
	}
	return out
}

var orthoDirs = [4]Pos{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// slideTargets generates rook-style sliding moves. When capture is true the
// first opposing piece encountered is included as a capture and the slide
// stops there; an own piece stops the slide without being included.
func slideTargets(g *GameState, piece *Piece, capture bool) []Pos {
	var out []Pos
	for _, d := range orthoDirs {
		t := Pos{piece.Pos.X + d.X, piece.Pos.Y + d.Y}
		for t.Valid() {
			occ := g.PieceAt(t)
			if occ == nil {
				out = append(out, t)
			} else {
				if capture && occ.Side != piece.Side {
					out = append(out, t)
				}
				break
			}
			t = Pos{t.X + d.X, t.Y + d.Y}
		}
	}
	return out
}

func cannonTargets(g *GameState, piece *Piece) []Pos {
	out := slideTargets(g, piece, false)
	for _, d := range orthoDirs {
		t := Pos{piece.Pos.X + d.X, piece.Pos.Y + d.Y}
		screenFound := false
		for t.Valid() {
			occ := g.PieceAt(t)
			if !screenFound {
				if occ != nil {
					screenFound = true
				}
				t = Pos{t.X + d.X, t.Y + d.Y}
				continue
			}
			if occ != nil {
				if occ.Side != piece.Side {
					out = append(out, t)
				}
				break
			}
			t = Pos{t.X + d.X, t.Y + d.Y}
		}
	}
	return out
}

func pawnTargets(g *GameState, piece *Piece) []Pos {
	forward := int8(1)
	if piece.Side == Black {
		forward = -1
	}
	var out []Pos
	fwd := Pos{piece.Pos.X, piece.Pos.Y + forward}
	if fwd.Valid() && notOwnPiece(g, piece.Side, fwd) {
		out = append(out, fwd)
	}
	if hasCrossedRiver(piece.Side, piece.Pos) {
		for _, dx := range [2]int8{1, -1} {
			side := Pos{piece.Pos.X + dx, piece.Pos.Y}
			if side.Valid() && notOwnPiece(g, piece.Side, side) {
				out = append(out, side)
			}
		}
	}
	return out
}

// applyMoveRaw mutates g to reflect mv without any legality checking; it
// returns the id of any piece captured in the process, or nil.
func applyMoveRaw(g *GameState, mv MoveAction) *PieceID {
	piece := g.Piece(mv.PieceID)
	var capturedID *PieceID
	if target := g.PieceAt(mv.To); target != nil {
		id := target.ID
		capturedID = &id
		target.Alive = false
		target.Pos = NoPos
	}
	g.setCell(piece.Pos, nil)
	piece.Pos = mv.To
	g.setCell(mv.To, &piece.ID)
	return capturedID
}

// isInCheck reports whether side's king is currently attacked, including the
// flying-general rule.
func isInCheck(g *GameState, side Side) bool {
	king := g.KingOf(side)
	if king == nil {
		return false
	}
	if kingsFaceOff(g) {
		return true
	}
	opp := side.Opposite()
	for i := range g.Pieces {
		p := &g.Pieces[i]
		if !p.Alive || p.Frozen || p.Side != opp {
			continue
		}
		for _, t := range pseudoTargets(g, p) {
			if t == king.Pos {
				return true
			}
		}
	}
	return false
}

// kingsFaceOff reports whether the two kings share a file with no piece
// between them.
func kingsFaceOff(g *GameState) bool {
	red := g.KingOf(Red)
	black := g.KingOf(Black)
	if red == nil || black == nil {
		return false
	}
	if red.Pos.X != black.Pos.X {
		return false
	}
	lo, hi := red.Pos.Y, black.Pos.Y
	if lo > hi {
		lo, hi = hi, lo
	}
	for y := lo + 1; y < hi; y++ {
		if g.PieceAt(Pos{red.Pos.X, y}) != nil {
			return false
		}
	}
	return true
}

// wouldLeaveInCheck simulates mv on a scratch copy of g and reports whether
// side would be left in check afterward. GameState holds only fixed-size
// arrays and values, and its board cells point at piece ids that are never
// written through (moves replace the pointers), so a plain copy is a full,
// independent snapshot.
func wouldLeaveInCheck(g *GameState, side Side, mv MoveAction) bool {
	scratch := *g
	applyMoveRaw(&scratch, mv)
	return isInCheck(&scratch, side)
}

// legalMovesForPiece returns the legal destinations for one piece: pseudo
// targets filtered to those that do not leave the mover's own side in check.
func legalMovesForPiece(g *GameState, piece *Piece) []MoveAction {
	var out []MoveAction
	for _, t := range pseudoTargets(g, piece) {
		mv := MoveAction{PieceID: piece.ID, From: piece.Pos, To: t}
		if captured := g.PieceAt(t); captured != nil {
			mv.HasCapturedPiece = true
			mv.CapturedPieceID = captured.ID
		}
		if !wouldLeaveInCheck(g, piece.Side, mv) {
			out = append(out, mv)
		}
	}
	return out
}

// generateLegalMoves returns every legal move for side's alive, unfrozen
// pieces.
func generateLegalMoves(g *GameState, side Side) []MoveAction {
	var out []MoveAction
	for i := range g.Pieces {
		p := &g.Pieces[i]
		if !p.Alive || p.Frozen || p.Side != side {
			continue
		}
		out = append(out, legalMovesForPiece(g, p)...)
	}
	return out
}

// roleLegalAtPos reports whether role is allowed to occupy p under the
// placement constraints used for the freeze-on-reveal check: King must be in
// its own palace, Advisor on an advisor point, Elephant on an elephant
// point. Every other role has no positional constraint.
func roleLegalAtPos(side Side, role RoleType, p Pos) bool {
	switch role {
	case King:
		return inPalace(side, p)
	case Advisor:
		return containsPos(advisorPoints(side), p)
	case Elephant:
		return containsPos(elephantPoints(side), p)
	default:
		return true
	}
}
