// Package mapper translates session views, events, and referee results into
// the protocol's wire payload records.
package mapper

import (
	"github.com/MotionlessPeri/StupidChess/internal/codec"
	"github.com/MotionlessPeri/StupidChess/internal/referee"
	"github.com/MotionlessPeri/StupidChess/internal/service"
	"github.com/MotionlessPeri/StupidChess/internal/session"
)

// BuildJoinAck maps a join outcome to a JoinAckPayload. ERR_JOIN_REJECTED is
// the taxonomy's designated code for a rejected join; it is assigned here,
// not by the session or service layer.
func BuildJoinAck(result service.JoinResult) codec.JoinAckPayload {
	if !result.Accepted {
		return codec.JoinAckPayload{Accepted: false, ErrorCode: referee.ErrJoinRejected, ErrorMessage: "join was rejected"}
	}
	return codec.JoinAckPayload{Accepted: true, AssignedSide: int(result.Side)}
}

// BuildCommandAck maps a referee CommandResult to a CommandAckPayload.
func BuildCommandAck(result referee.CommandResult) codec.CommandAckPayload {
	return codec.CommandAckPayload{
		Accepted:     result.Accepted,
		ErrorCode:    result.ErrorCode,
		ErrorMessage: result.ErrorMessage,
	}
}

// BuildSnapshot maps a session View to a SnapshotPayload.
func BuildSnapshot(view session.View) codec.SnapshotPayload {
	pieces := make([]codec.PiecePayload, len(view.Pieces))
	for i, p := range view.Pieces {
		pieces[i] = codec.PiecePayload{
			PieceID:     int(p.PieceID),
			Side:        int(p.Side),
			VisibleRole: int(p.VisibleRole),
			X:           p.Pos.X,
			Y:           p.Pos.Y,
			Alive:       p.Alive,
			Frozen:      p.Frozen,
			Revealed:    p.Revealed,
		}
	}
	return codec.SnapshotPayload{
		ViewerSide:        int(view.ViewerSide),
		Phase:             int(view.Phase),
		CurrentTurn:       int(view.CurrentTurn),
		PassCount:         view.PassCount,
		Result:            int(view.Result),
		EndReason:         int(view.EndReason),
		TurnIndex:         view.TurnIndex,
		LastEventSequence: view.LastEventSequence,
		Pieces:            pieces,
	}
}

// BuildEventDelta maps a sync bundle's events to an EventDeltaPayload.
func BuildEventDelta(bundle service.SyncBundle) codec.EventDeltaPayload {
	events := make([]codec.EventPayload, len(bundle.Events))
	for i, e := range bundle.Events {
		events[i] = codec.EventPayload{
			Sequence:      e.Sequence,
			TurnIndex:     e.TurnIndex,
			EventType:     int(e.EventType),
			ActorPlayerID: e.ActorPlayerID,
			ErrorCode:     e.ErrorCode,
			Description:   e.Description,
		}
	}
	return codec.EventDeltaPayload{
		RequestedAfterSequence: bundle.RequestedAfterSequence,
		LatestSequence:         bundle.LatestSequence,
		Events:                 events,
	}
}

// BuildGameOver maps a session View whose phase is already GameOver to a
// GameOverPayload. winnerSide is -1 for a draw.
func BuildGameOver(view session.View) codec.GameOverPayload {
	winner := -1
	isDraw := view.Result == referee.Draw
	if !isDraw {
		if view.Result == referee.RedWin {
			winner = int(referee.Red)
		} else if view.Result == referee.BlackWin {
			winner = int(referee.Black)
		}
	}
	return codec.GameOverPayload{
		Result:     int(view.Result),
		EndReason:  int(view.EndReason),
		TurnIndex:  view.TurnIndex,
		IsDraw:     isDraw,
		WinnerSide: winner,
	}
}

// BuildError maps a plain error message to an ErrorPayload.
func BuildError(message string) codec.ErrorPayload {
	return codec.ErrorPayload{ErrorMessage: message}
}
