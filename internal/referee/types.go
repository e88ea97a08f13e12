// Package referee implements the deterministic core rules engine for a
// concealed-role Xiangqi match: setup commit/reveal, legal move generation,
// turn order, and end-game detection.
package referee

import "fmt"

// Side identifies one of the two players of a match.
type Side uint8

const (
	Red Side = iota
	Black
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Red {
		return Black
	}
	return Red
}

func (s Side) String() string {
	if s == Red {
		return "Red"
	}
	return "Black"
}

// RoleType is one of the seven Xiangqi piece roles.
type RoleType uint8

const (
	King RoleType = iota
	Advisor
	Elephant
	Horse
	Rook
	Cannon
	Pawn
)

// PieceState tracks whether a piece's actual role has been disclosed.
type PieceState uint8

const (
	HiddenSurface PieceState = iota
	RevealedActual
)

// Phase is the match's top-level state.
type Phase uint8

const (
	SetupCommit Phase = iota
	SetupReveal
	Battle
	GameOver
)

// Result is the final or in-progress outcome of a match.
type Result uint8

const (
	Ongoing Result = iota
	RedWin
	BlackWin
	Draw
)

// EndReason explains why a match reached (or has not yet reached) GameOver.
type EndReason uint8

const (
	EndNone EndReason = iota
	Checkmate
	Resign
	Timeout
	DoublePassDraw
	RuleViolation
)

// CommandType identifies the kind of action a player is submitting.
type CommandType uint8

const (
	CommitSetup CommandType = iota
	RevealSetup
	Move
	Pass
	ResignCmd
)

// PieceID is a stable identifier in 0..31: 0..15 are Red, 16..31 are Black.
type PieceID uint16

// Side reports the owning side from the id range.
func (id PieceID) Side() Side {
	if id < 16 {
		return Red
	}
	return Black
}

// actualRoleByMod16 maps piece_id mod 16 to the fixed actual role, per the
// canonical roster table: {0,8}=Rook, {1,7}=Horse, {2,6}=Elephant,
// {3,5}=Advisor, {4}=King, {9,10}=Cannon, {11..15}=Pawn.
var actualRoleByMod16 = [16]RoleType{
	0:  Rook,
	1:  Horse,
	2:  Elephant,
	3:  Advisor,
	4:  King,
	5:  Advisor,
	6:  Elephant,
	7:  Horse,
	8:  Rook,
	9:  Cannon,
	10: Cannon,
	11: Pawn,
	12: Pawn,
	13: Pawn,
	14: Pawn,
	15: Pawn,
}

// ActualRole returns the fixed actual role for a piece id, independent of
// where it is ultimately placed during setup.
func (id PieceID) ActualRole() RoleType {
	return actualRoleByMod16[id%16]
}

// Pos is a board coordinate. An invalid/unset position uses (-1, -1).
type Pos struct {
	X int8
	Y int8
}

// NoPos is the sentinel for "not on the board" / "unset".
var NoPos = Pos{X: -1, Y: -1}

// Valid reports whether p addresses a real board cell.
func (p Pos) Valid() bool {
	return p.X >= 0 && p.X < BoardWidth && p.Y >= 0 && p.Y < BoardHeight
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Board dimensions.
const (
	BoardWidth  = 9
	BoardHeight = 10
)

// Piece is the full mutable state of one piece in a match.
type Piece struct {
	ID           PieceID
	Side         Side
	ActualRole   RoleType
	SurfaceRole  RoleType
	State        PieceState
	Pos          Pos
	Alive        bool
	Frozen       bool
	HasCaptured  bool
}

// ActiveRole is the role used for move generation: the surface role while
// hidden, the actual role once revealed.
func (p *Piece) ActiveRole() RoleType {
	if p.State == RevealedActual {
		return p.ActualRole
	}
	return p.SurfaceRole
}

// MoveAction names a single move request or record.
type MoveAction struct {
	PieceID           PieceID
	From              Pos
	To                Pos
	HasCapturedPiece  bool
	CapturedPieceID   PieceID
}

// SetupPlacement assigns one piece to one canonical setup slot.
type SetupPlacement struct {
	PieceID PieceID
	Target  Pos
}

// SetupPlain is the plain (disclosed) placement for one side's setup.
type SetupPlain struct {
	Side        Side
	Placements  []SetupPlacement
	Nonce       string
}

// SetupCommitMsg is the committed digest for one side's setup.
type SetupCommitMsg struct {
	Side    Side
	HashHex string
}

// PlayerCommand is a normalized request dispatched to the referee.
type PlayerCommand struct {
	CommandType CommandType
	Side        Side

	Move *MoveAction

	SetupCommit *SetupCommitMsg

	SetupPlain *SetupPlain
}

// CommandResult is the outcome of a referee operation: never an error
// return, always a structured accept/reject value.
type CommandResult struct {
	Accepted     bool
	ErrorCode    string
	ErrorMessage string
}

func accepted() CommandResult {
	return CommandResult{Accepted: true}
}

func rejected(code, message string) CommandResult {
	return CommandResult{Accepted: false, ErrorCode: code, ErrorMessage: message}
}

// RuleConfig toggles optional rule behaviors, ported from the original
// engine's FRuleConfig.
type RuleConfig struct {
	RevealOnFirstCapture       bool
	RevealCapturedRole         bool
	FreezeIfIllegalAfterReveal bool
	AllowPassWhenNoLegalMove   bool
	DoublePassIsDraw           bool
}

// DefaultRuleConfig mirrors the original engine's defaults: every optional
// behavior is on.
func DefaultRuleConfig() RuleConfig {
	return RuleConfig{
		RevealOnFirstCapture:       true,
		RevealCapturedRole:         true,
		FreezeIfIllegalAfterReveal: true,
		AllowPassWhenNoLegalMove:   true,
		DoublePassIsDraw:           true,
	}
}

// GameState is the full, serializable state of one match.
type GameState struct {
	Phase         Phase
	CurrentTurn   Side
	BoardCells    [BoardWidth * BoardHeight]*PieceID
	Pieces        [32]Piece
	RedCommitted  bool
	BlackCommitted bool
	RedRevealed   bool
	BlackRevealed bool
	PassCount     int32
	Result        Result
	EndReason     EndReason
	TurnIndex     uint64

	redCommitHash   string
	blackCommitHash string
}

func cellIndex(p Pos) int {
	return int(p.Y)*BoardWidth + int(p.X)
}

// PieceAt returns the piece occupying p, or nil if the cell is empty.
func (g *GameState) PieceAt(p Pos) *Piece {
	if !p.Valid() {
		return nil
	}
	id := g.BoardCells[cellIndex(p)]
	if id == nil {
		return nil
	}
	return &g.Pieces[*id]
}

func (g *GameState) setCell(p Pos, id *PieceID) {
	g.BoardCells[cellIndex(p)] = id
}

// Piece returns a pointer to piece id's state.
func (g *GameState) Piece(id PieceID) *Piece {
	return &g.Pieces[id]
}

// KingOf returns the alive king of side, or nil if it has been captured.
func (g *GameState) KingOf(side Side) *Piece {
	base := PieceID(0)
	if side == Black {
		base = 16
	}
	king := &g.Pieces[base+4]
	if !king.Alive {
		return nil
	}
	return king
}
