package referee

// Referee is the deterministic rules engine for one match: setup
// commit/reveal, legal move generation, turn order, and end-game detection.
// It holds no references to session or transport concerns and performs no
// logging; every operation returns a CommandResult or plain value, never an
// error.
type Referee struct {
	state  GameState
	config RuleConfig
}

// New creates a Referee with the given rule configuration and an
// already-reset board.
func New(config RuleConfig) *Referee {
	r := &Referee{config: config}
	r.Reset()
	return r
}

// Reset reinitializes the match to its starting state: phase SetupCommit,
// all 32 pieces dead with their actual role fixed by id, board empty.
func (r *Referee) Reset() {
	var state GameState
	state.Phase = SetupCommit
	state.CurrentTurn = Red
	state.Result = Ongoing
	state.EndReason = EndNone
	for i := range state.Pieces {
		id := PieceID(i)
		state.Pieces[i] = Piece{
			ID:         id,
			Side:       id.Side(),
			ActualRole: id.ActualRole(),
			State:      HiddenSurface,
			Pos:        NoPos,
			Alive:      false,
		}
	}
	r.state = state
}

// State returns a snapshot of the current game state. GameState holds only
// fixed-size arrays and values, and its board cells point at piece ids that
// are never written through, so the returned copy is independent of the
// referee's own.
func (r *Referee) State() GameState {
	return r.state
}

func (r *Referee) sideCommitted(side Side) bool {
	if side == Red {
		return r.state.RedCommitted
	}
	return r.state.BlackCommitted
}

func (r *Referee) sideRevealed(side Side) bool {
	if side == Red {
		return r.state.RedRevealed
	}
	return r.state.BlackRevealed
}

func (r *Referee) sideCommitHash(side Side) string {
	if side == Red {
		return r.state.redCommitHash
	}
	return r.state.blackCommitHash
}

// ApplyCommit records side's commit hash. Requires phase SetupCommit and
// rejects a second commit from the same side. Once both sides have
// committed, phase advances to SetupReveal.
func (r *Referee) ApplyCommit(side Side, hashHex string) CommandResult {
	if r.state.Result != Ongoing {
		return rejected(ErrGameOver, "match has already ended")
	}
	if r.state.Phase != SetupCommit {
		return rejected(ErrInvalidPhase, "commit is only valid during setup commit phase")
	}
	if r.sideCommitted(side) {
		return rejected(ErrDuplicateCommit, "side has already submitted a commit")
	}
	if side == Red {
		r.state.RedCommitted = true
		r.state.redCommitHash = hashHex
	} else {
		r.state.BlackCommitted = true
		r.state.blackCommitHash = hashHex
	}
	if r.state.RedCommitted && r.state.BlackCommitted {
		r.state.Phase = SetupReveal
	}
	return accepted()
}

// ApplyReveal discloses side's plain setup. Requires phase SetupReveal,
// rejects a second reveal, a reveal with no prior commit, and (when the
// stored commit hash is non-empty) any digest mismatch. An empty stored
// hash is treated as "no binding"; see the commit-digest design note.
func (r *Referee) ApplyReveal(plain SetupPlain) CommandResult {
	if r.state.Result != Ongoing {
		return rejected(ErrGameOver, "match has already ended")
	}
	if r.state.Phase != SetupReveal {
		return rejected(ErrInvalidPhase, "reveal is only valid during setup reveal phase")
	}
	side := plain.Side
	if r.sideRevealed(side) {
		return rejected(ErrDuplicateReveal, "side has already revealed")
	}
	if !r.sideCommitted(side) {
		return rejected(ErrMissingCommit, "side has not committed")
	}
	if hash := r.sideCommitHash(side); hash != "" {
		if digest := RevealDigest(side, plain.Nonce, plain.Placements); digest != hash {
			return rejected(ErrCommitMismatch, "revealed placements do not match the stored commit")
		}
	}
	if result := validatePlacements(side, plain.Placements); !result.Accepted {
		return result
	}
	applyPlacements(&r.state, side, plain.Placements)
	if side == Red {
		r.state.RedRevealed = true
	} else {
		r.state.BlackRevealed = true
	}
	if r.state.RedRevealed && r.state.BlackRevealed {
		r.state.Phase = Battle
		r.state.CurrentTurn = Red
	}
	return accepted()
}

// validatePlacements checks a reveal's placements in isolation: exactly 16
// entries covering side's id range with no duplicate ids, each target one
// of the 16 canonical setup slots with no duplicate target.
func validatePlacements(side Side, placements []SetupPlacement) CommandResult {
	if len(placements) != 16 {
		return rejected(ErrInvalidReveal, "reveal must contain exactly 16 placements")
	}
	loID, hiID := PieceID(0), PieceID(15)
	if side == Black {
		loID, hiID = 16, 31
	}
	seenIDs := make(map[PieceID]bool, 16)
	seenPos := make(map[Pos]bool, 16)
	for _, pl := range placements {
		if pl.PieceID < loID || pl.PieceID > hiID {
			return rejected(ErrInvalidPieceID, "placement piece id is outside side's id range")
		}
		if seenIDs[pl.PieceID] {
			return rejected(ErrInvalidPieceID, "duplicate piece id in placements")
		}
		seenIDs[pl.PieceID] = true
		if _, ok := setupSlotRole(side, pl.Target); !ok {
			return rejected(ErrPositionConflict, "placement target is not a canonical setup slot")
		}
		if seenPos[pl.Target] {
			return rejected(ErrPositionConflict, "two placements target the same position")
		}
		seenPos[pl.Target] = true
	}
	return accepted()
}

// applyPlacements writes a validated reveal's placements onto the board:
// each piece comes alive at its target with the slot's surface role.
func applyPlacements(g *GameState, side Side, placements []SetupPlacement) {
	for _, pl := range placements {
		role, _ := setupSlotRole(side, pl.Target)
		piece := g.Piece(pl.PieceID)
		piece.Pos = pl.Target
		piece.Alive = true
		piece.SurfaceRole = role
		piece.State = HiddenSurface
		id := piece.ID
		g.setCell(pl.Target, &id)
	}
}

// ApplyCommand dispatches a normalized player command to the matching
// referee operation. Every command type is rejected outright once the
// match has ended.
func (r *Referee) ApplyCommand(cmd PlayerCommand) CommandResult {
	if r.state.Result != Ongoing {
		return rejected(ErrGameOver, "match has already ended")
	}
	switch cmd.CommandType {
	case CommitSetup:
		if cmd.SetupCommit == nil {
			return rejected(ErrInvalidPayload, "commit command missing setupCommit payload")
		}
		return r.ApplyCommit(cmd.Side, cmd.SetupCommit.HashHex)
	case RevealSetup:
		if cmd.SetupPlain == nil {
			return rejected(ErrInvalidPayload, "reveal command missing setupPlain payload")
		}
		return r.ApplyReveal(*cmd.SetupPlain)
	case Move:
		if cmd.Move == nil {
			return rejected(ErrInvalidPayload, "move command missing move payload")
		}
		return r.applyMove(cmd.Side, *cmd.Move)
	case Pass:
		return r.applyPass(cmd.Side)
	case ResignCmd:
		return r.applyResign(cmd.Side)
	default:
		return rejected(ErrUnsupportedCommand, "unrecognized command type")
	}
}

func (r *Referee) applyMove(side Side, mv MoveAction) CommandResult {
	if r.state.Phase != Battle {
		return rejected(ErrInvalidPhase, "moves are only valid during battle")
	}
	if side != r.state.CurrentTurn {
		return rejected(ErrNotYourTurn, "it is not side's turn")
	}
	if mv.PieceID > 31 {
		return rejected(ErrInvalidPiece, "piece id out of range")
	}
	piece := r.state.Piece(mv.PieceID)
	if !piece.Alive {
		return rejected(ErrInvalidPiece, "piece is not alive")
	}
	if piece.Side != side {
		return rejected(ErrInvalidPieceSide, "piece does not belong to side")
	}
	if piece.Pos != mv.From {
		return rejected(ErrInvalidFrom, "piece is not at the stated from position")
	}
	var matched *MoveAction
	for _, candidate := range legalMovesForPiece(&r.state, piece) {
		if candidate.To == mv.To {
			m := candidate
			matched = &m
			break
		}
	}
	if matched == nil {
		return rejected(ErrIllegalMove, "target is not a legal destination for this piece")
	}

	capturedID := applyMoveRaw(&r.state, *matched)
	if capturedID != nil && r.config.RevealCapturedRole {
		r.state.Piece(*capturedID).State = RevealedActual
	}
	if matched.HasCapturedPiece && piece.State == HiddenSurface && r.config.RevealOnFirstCapture {
		piece.State = RevealedActual
		piece.HasCaptured = true
		if r.config.FreezeIfIllegalAfterReveal && !roleLegalAtPos(piece.Side, piece.ActualRole, piece.Pos) {
			piece.Frozen = true
		}
	}

	defender := side.Opposite()
	r.state.CurrentTurn = defender
	r.state.TurnIndex++
	r.detectEndGame(side, defender)
	return accepted()
}

func (r *Referee) applyPass(side Side) CommandResult {
	if !r.config.AllowPassWhenNoLegalMove {
		return rejected(ErrPassNotAllowed, "passing is disabled by rule configuration")
	}
	if r.state.Phase != Battle {
		return rejected(ErrInvalidPhase, "pass is only valid during battle")
	}
	if side != r.state.CurrentTurn {
		return rejected(ErrNotYourTurn, "it is not side's turn")
	}
	if isInCheck(&r.state, side) {
		return rejected(ErrPassNotAllowed, "side is in check and must respond")
	}
	if len(generateLegalMoves(&r.state, side)) != 0 {
		return rejected(ErrPassNotAllowed, "side has at least one legal move")
	}
	r.state.PassCount++
	if r.config.DoublePassIsDraw && r.state.PassCount >= 2 {
		r.state.Phase = GameOver
		r.state.Result = Draw
		r.state.EndReason = DoublePassDraw
		return accepted()
	}
	r.state.CurrentTurn = side.Opposite()
	r.state.TurnIndex++
	return accepted()
}

func (r *Referee) applyResign(side Side) CommandResult {
	r.state.Phase = GameOver
	r.state.EndReason = Resign
	if side == Red {
		r.state.Result = BlackWin
	} else {
		r.state.Result = RedWin
	}
	r.state.TurnIndex++
	return accepted()
}

// detectEndGame checks whether defender has been checkmated by mover's last
// move: either defender's king is gone, or defender is in check with no
// legal reply.
func (r *Referee) detectEndGame(mover, defender Side) {
	if r.state.KingOf(defender) == nil {
		r.finish(mover, Checkmate)
		return
	}
	if isInCheck(&r.state, defender) && len(generateLegalMoves(&r.state, defender)) == 0 {
		r.finish(mover, Checkmate)
	}
}

func (r *Referee) finish(winner Side, reason EndReason) {
	r.state.Phase = GameOver
	r.state.EndReason = reason
	if winner == Red {
		r.state.Result = RedWin
	} else {
		r.state.Result = BlackWin
	}
}

// GenerateLegalMoves returns every legal move for side's pieces, or nil
// outside of Battle phase.
func (r *Referee) GenerateLegalMoves(side Side) []MoveAction {
	if r.state.Phase != Battle {
		return nil
	}
	return generateLegalMoves(&r.state, side)
}

// CanPass reports whether side may currently pass under the configured
// rules: Battle phase, side's turn, not in check, and no legal move.
func (r *Referee) CanPass(side Side) bool {
	if !r.config.AllowPassWhenNoLegalMove {
		return false
	}
	if r.state.Result != Ongoing || r.state.Phase != Battle {
		return false
	}
	if side != r.state.CurrentTurn {
		return false
	}
	if isInCheck(&r.state, side) {
		return false
	}
	return len(generateLegalMoves(&r.state, side)) == 0
}
