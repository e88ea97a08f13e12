// Package session binds two players to one match, keeps its append-only
// event journal, and builds the per-viewer projection that hides concealed
// roles from the opposing player.
package session

import (
	"fmt"

	"github.com/MotionlessPeri/StupidChess/internal/referee"
)

// EventType identifies the kind of event recorded in a session's journal,
// in the order spec'd for the external EventType enumeration.
type EventType int

const (
	EventPlayerJoined EventType = iota
	EventSetupCommitted
	EventSetupRevealed
	EventMoveApplied
	EventPassApplied
	EventResignApplied
	EventCommandRejected
	EventGameOver
)

// Event is one append-only journal entry.
type Event struct {
	Sequence      int64
	TurnIndex     uint64
	EventType     EventType
	ActorPlayerID int64
	ErrorCode     string
	Description   string
}

// JoinResult is the outcome of a Join call.
type JoinResult struct {
	Accepted bool
	Side     referee.Side
}

// PieceView is one piece's projection for a given viewer.
type PieceView struct {
	PieceID     referee.PieceID
	Side        referee.Side
	VisibleRole referee.RoleType
	Pos         referee.Pos
	Alive       bool
	Frozen      bool
	Revealed    bool
}

// View is the full per-viewer projection of a match's current state.
type View struct {
	ViewerSide        referee.Side
	Phase             referee.Phase
	CurrentTurn       referee.Side
	PassCount         int32
	Result            referee.Result
	EndReason         referee.EndReason
	TurnIndex         uint64
	LastEventSequence int64
	Pieces            []PieceView
}

// Session owns one referee plus the player bindings and event journal for a
// single match.
type Session struct {
	MatchID string

	referee      *referee.Referee
	playerSides  map[int64]referee.Side
	events       []Event
	nextSequence int64
}

// New creates an empty session for matchID with the given rule
// configuration. Pieces start dead; the session lives until the process
// ends.
func New(matchID string, config referee.RuleConfig) *Session {
	return &Session{
		MatchID:      matchID,
		referee:      referee.New(config),
		playerSides:  make(map[int64]referee.Side, 2),
		nextSequence: 1,
	}
}

// Join binds playerID to a side. An already-joined player gets back its
// existing side (idempotent). A third distinct player is rejected.
func (s *Session) Join(playerID int64) JoinResult {
	if side, ok := s.playerSides[playerID]; ok {
		return JoinResult{Accepted: true, Side: side}
	}
	if len(s.playerSides) >= 2 {
		return JoinResult{Accepted: false}
	}
	side := referee.Red
	if len(s.playerSides) == 1 {
		side = referee.Black
	}
	s.playerSides[playerID] = side
	s.appendEvent(EventPlayerJoined, playerID, "", fmt.Sprintf("player %d joined as %s", playerID, side))
	return JoinResult{Accepted: true, Side: side}
}

// SubmitCommand resolves playerID's side, overrides cmd.Side with it, and
// dispatches to the referee. On accept it appends the matching event (plus
// a GameOver event if the referee's phase just transitioned); on reject it
// appends a CommandRejected event carrying the referee's error.
func (s *Session) SubmitCommand(playerID int64, cmd referee.PlayerCommand) referee.CommandResult {
	side, ok := s.playerSides[playerID]
	if !ok {
		return referee.CommandResult{Accepted: false, ErrorCode: referee.ErrInternal, ErrorMessage: "player is not joined to this session"}
	}
	cmd.Side = side
	if cmd.SetupCommit != nil {
		cmd.SetupCommit.Side = side
	}
	if cmd.SetupPlain != nil {
		cmd.SetupPlain.Side = side
	}

	wasGameOver := s.referee.State().Phase == referee.GameOver
	result := s.referee.ApplyCommand(cmd)
	if !result.Accepted {
		s.appendEvent(EventCommandRejected, playerID, result.ErrorCode, result.ErrorMessage)
		return result
	}

	s.appendEvent(eventTypeForCommand(cmd.CommandType), playerID, "", describeCommand(cmd))
	if !wasGameOver && s.referee.State().Phase == referee.GameOver {
		s.appendEvent(EventGameOver, playerID, "", "match has ended")
	}
	return result
}

func eventTypeForCommand(ct referee.CommandType) EventType {
	switch ct {
	case referee.CommitSetup:
		return EventSetupCommitted
	case referee.RevealSetup:
		return EventSetupRevealed
	case referee.Move:
		return EventMoveApplied
	case referee.Pass:
		return EventPassApplied
	case referee.ResignCmd:
		return EventResignApplied
	default:
		return EventCommandRejected
	}
}

func describeCommand(cmd referee.PlayerCommand) string {
	switch cmd.CommandType {
	case referee.CommitSetup:
		return fmt.Sprintf("%s committed setup", cmd.Side)
	case referee.RevealSetup:
		return fmt.Sprintf("%s revealed setup", cmd.Side)
	case referee.Move:
		return fmt.Sprintf("%s moved piece %d from %s to %s", cmd.Side, cmd.Move.PieceID, cmd.Move.From, cmd.Move.To)
	case referee.Pass:
		return fmt.Sprintf("%s passed", cmd.Side)
	case referee.ResignCmd:
		return fmt.Sprintf("%s resigned", cmd.Side)
	default:
		return ""
	}
}

// PlayerView builds the projection of the current match state visible to
// playerID: visibleRole is the actual role iff the viewer owns the piece or
// it has been revealed, otherwise the surface role.
func (s *Session) PlayerView(playerID int64) View {
	viewerSide := s.playerSides[playerID]
	state := s.referee.State()

	pieces := make([]PieceView, 0, len(state.Pieces))
	for i := range state.Pieces {
		p := &state.Pieces[i]
		revealed := p.State == referee.RevealedActual
		visible := p.SurfaceRole
		if p.Side == viewerSide || revealed {
			visible = p.ActualRole
		}
		pieces = append(pieces, PieceView{
			PieceID:     p.ID,
			Side:        p.Side,
			VisibleRole: visible,
			Pos:         p.Pos,
			Alive:       p.Alive,
			Frozen:      p.Frozen,
			Revealed:    revealed,
		})
	}

	return View{
		ViewerSide:        viewerSide,
		Phase:             state.Phase,
		CurrentTurn:       state.CurrentTurn,
		PassCount:         state.PassCount,
		Result:            state.Result,
		EndReason:         state.EndReason,
		TurnIndex:         state.TurnIndex,
		LastEventSequence: s.LatestEventSequence(),
		Pieces:            pieces,
	}
}

// PullEvents returns the events with Sequence > afterSequence, in order, if
// playerID is joined; otherwise an empty slice.
func (s *Session) PullEvents(playerID int64, afterSequence int64) []Event {
	if _, ok := s.playerSides[playerID]; !ok {
		return nil
	}
	var out []Event
	for _, e := range s.events {
		if e.Sequence > afterSequence {
			out = append(out, e)
		}
	}
	return out
}

// LatestEventSequence is the sequence of the most recently appended event.
func (s *Session) LatestEventSequence() int64 {
	return s.nextSequence - 1
}

// Phase reports the underlying referee's current phase, for callers that
// need it without a full PlayerView.
func (s *Session) Phase() referee.Phase {
	return s.referee.State().Phase
}

func (s *Session) appendEvent(et EventType, actorPlayerID int64, errorCode, description string) {
	e := Event{
		Sequence:      s.nextSequence,
		TurnIndex:     s.referee.State().TurnIndex,
		EventType:     et,
		ActorPlayerID: actorPlayerID,
		ErrorCode:     errorCode,
		Description:   description,
	}
	s.nextSequence++
	s.events = append(s.events, e)
}
