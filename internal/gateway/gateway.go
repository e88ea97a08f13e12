// Package gateway decodes inbound protocol envelopes, dispatches them
// against the service layer, and emits outbound messages through a sink
// with a strictly increasing per-adapter server sequence.
package gateway

import (
	"strconv"

	"github.com/rs/zerolog"

	"github.com/MotionlessPeri/StupidChess/internal/codec"
	"github.com/MotionlessPeri/StupidChess/internal/mapper"
	"github.com/MotionlessPeri/StupidChess/internal/referee"
	"github.com/MotionlessPeri/StupidChess/internal/service"
)

// OutboundMessage is one message the adapter has queued for delivery.
type OutboundMessage struct {
	PlayerID       int64
	ServerSequence int64
	Envelope       codec.Envelope
	Payload        any
}

// Sink receives every outbound message an Adapter produces, in emission
// order.
type Sink interface {
	Send(msg OutboundMessage)
}

// InMemorySink buffers every outbound message in process memory. Suitable
// for tests and for transports that poll rather than push.
type InMemorySink struct {
	messages []OutboundMessage
}

// Send appends msg to the buffer.
func (s *InMemorySink) Send(msg OutboundMessage) {
	s.messages = append(s.messages, msg)
}

// Messages returns playerID's buffered messages with server_sequence >
// after, in emission order. Supplemented accessor: the protocol specifies
// the emission contract but leaves delivery/polling to the transport.
func (s *InMemorySink) Messages(playerID int64, after int64) []OutboundMessage {
	var out []OutboundMessage
	for _, m := range s.messages {
		if m.PlayerID == playerID && m.ServerSequence > after {
			out = append(out, m)
		}
	}
	return out
}

// Adapter is the single-threaded cooperative gateway for one service
// instance. It must not be invoked concurrently; callers that want
// parallel matches should shard by match id and run one Adapter per shard.
type Adapter struct {
	svc                *service.Service
	sink               Sink
	nextServerSequence int64
	log                zerolog.Logger
}

// NewAdapter wires an Adapter to svc and sink. Outbound server sequences
// start at 1.
func NewAdapter(svc *service.Service, sink Sink, log zerolog.Logger) *Adapter {
	return &Adapter{svc: svc, sink: sink, nextServerSequence: 1, log: log}
}

// HandleEnvelope decodes raw and dispatches it by message type. It reports
// false, with no outbound message, for an undecodable envelope, an
// undecodable or incomplete payload, or an unknown message type.
func (a *Adapter) HandleEnvelope(raw []byte) bool {
	env, err := codec.DecodeEnvelope(raw)
	if err != nil {
		a.log.Warn().Err(err).Msg("discarding undecodable envelope")
		return false
	}

	switch env.MessageType {
	case codec.C2SJoin:
		payload, err := codec.DecodePayload[codec.JoinPayload](env.PayloadJSON)
		if err != nil {
			a.log.Warn().Err(err).Msg("discarding undecodable join payload")
			return false
		}
		a.Join(payload)
		return true

	case codec.C2SCommand:
		payload, err := codec.DecodePayload[codec.CommandPayload](env.PayloadJSON)
		if err != nil {
			a.log.Warn().Err(err).Msg("discarding undecodable command payload")
			return false
		}
		cmd, ok := buildCommand(payload)
		if !ok {
			a.log.Warn().Int64("playerId", payload.PlayerID).Int("commandType", payload.CommandType).
				Msg("discarding command missing its required sub-payload")
			return false
		}
		a.Command(payload.PlayerID, cmd)
		return true

	case codec.C2SPullSync:
		payload, err := codec.DecodePayload[codec.PullSyncPayload](env.PayloadJSON)
		if err != nil {
			a.log.Warn().Err(err).Msg("discarding undecodable pull-sync payload")
			return false
		}
		var override *int64
		if payload.HasAfterSequenceOverride {
			v := payload.AfterSequenceOverride
			override = &v
		}
		a.PullSync(payload.PlayerID, override)
		return true

	case codec.C2SAck:
		payload, err := codec.DecodePayload[codec.AckPayload](env.PayloadJSON)
		if err != nil {
			a.log.Warn().Err(err).Msg("discarding undecodable ack payload")
			return false
		}
		a.Ack(payload.PlayerID, payload.Sequence)
		return true

	case codec.C2SPing:
		return true

	default:
		a.log.Warn().Int("messageType", env.MessageType).Msg("discarding unknown message type")
		return false
	}
}

// buildCommand translates a wire CommandPayload into a referee.PlayerCommand
// and verifies the sub-payload its commandType requires is present.
func buildCommand(payload codec.CommandPayload) (referee.PlayerCommand, bool) {
	cmd := referee.PlayerCommand{
		CommandType: referee.CommandType(payload.CommandType),
		Side:        referee.Side(payload.Side),
	}

	switch cmd.CommandType {
	case referee.CommitSetup:
		if !payload.HasSetupCommit || payload.SetupCommit == nil {
			return referee.PlayerCommand{}, false
		}
		cmd.SetupCommit = &referee.SetupCommitMsg{
			Side:    referee.Side(payload.SetupCommit.Side),
			HashHex: payload.SetupCommit.HashHex,
		}

	case referee.RevealSetup:
		if !payload.HasSetupPlain || payload.SetupPlain == nil {
			return referee.PlayerCommand{}, false
		}
		placements := make([]referee.SetupPlacement, len(payload.SetupPlain.Placements))
		for i, p := range payload.SetupPlain.Placements {
			placements[i] = referee.SetupPlacement{PieceID: referee.PieceID(p.PieceID), Target: referee.Pos{X: p.X, Y: p.Y}}
		}
		cmd.SetupPlain = &referee.SetupPlain{
			Side:       referee.Side(payload.SetupPlain.Side),
			Nonce:      payload.SetupPlain.Nonce,
			Placements: placements,
		}

	case referee.Move:
		if !payload.HasMove || payload.Move == nil {
			return referee.PlayerCommand{}, false
		}
		m := payload.Move
		cmd.Move = &referee.MoveAction{
			PieceID:          referee.PieceID(m.PieceID),
			From:             referee.Pos{X: m.FromX, Y: m.FromY},
			To:               referee.Pos{X: m.ToX, Y: m.ToY},
			HasCapturedPiece: m.HasCapturedPieceID,
			CapturedPieceID:  referee.PieceID(m.CapturedPieceID),
		}

	case referee.Pass, referee.ResignCmd:
		// no sub-payload required

	default:
		return referee.PlayerCommand{}, false
	}

	return cmd, true
}

// Join submits payload to the service, always emits a JoinAck to the
// joiner, and on acceptance follows it with the joiner's initial sync.
func (a *Adapter) Join(payload codec.JoinPayload) {
	matchID := strconv.FormatInt(payload.MatchID, 10)
	result := a.svc.JoinMatch(matchID, payload.PlayerID)
	a.emit(payload.PlayerID, matchID, codec.S2CJoinAck, mapper.BuildJoinAck(result))
	if result.Accepted {
		a.emitSync(payload.PlayerID, matchID, nil)
	}
}

// Command submits cmd on behalf of playerID, emits its CommandAck, and on
// acceptance fans a fresh sync out to every player bound to the match, in
// deterministic player-id order.
func (a *Adapter) Command(playerID int64, cmd referee.PlayerCommand) {
	matchID, bound := a.svc.GetPlayerMatchID(playerID)
	if !bound {
		a.emit(playerID, "0", codec.S2CError, mapper.BuildError("player is not bound to any match"))
		return
	}

	result := a.svc.SubmitPlayerCommand(playerID, cmd)
	a.emit(playerID, matchID, codec.S2CCommandAck, mapper.BuildCommandAck(result))
	if !result.Accepted {
		return
	}
	for _, pid := range a.svc.GetMatchPlayerIDs(matchID) {
		a.emitSync(pid, matchID, nil)
	}
}

// PullSync emits a fresh sync for playerID only, honoring override if set.
func (a *Adapter) PullSync(playerID int64, override *int64) {
	matchID, bound := a.svc.GetPlayerMatchID(playerID)
	if !bound {
		a.emit(playerID, "0", codec.S2CError, mapper.BuildError("player is not bound to any match"))
		return
	}
	a.emitSync(playerID, matchID, override)
}

// Ack advances playerID's ack cursor. Acceptance produces no outbound
// message; rejection emits an S2C_Error.
func (a *Adapter) Ack(playerID int64, seq int64) {
	if a.svc.AckPlayerEvents(playerID, seq) {
		return
	}
	matchID, bound := a.svc.GetPlayerMatchID(playerID)
	if !bound {
		matchID = "0"
	}
	a.emit(playerID, matchID, codec.S2CError, mapper.BuildError("Ack sequence is invalid."))
}

// emitSync pulls playerID's sync bundle and emits Snapshot then EventDelta,
// followed by GameOver if the match has ended. A pull failure for a
// player the caller has already confirmed is bound indicates an internal
// inconsistency and is logged rather than surfaced to the wire.
func (a *Adapter) emitSync(playerID int64, matchID string, override *int64) {
	bundle, result := a.svc.PullPlayerSync(playerID, override)
	if !result.Accepted {
		a.log.Error().Int64("playerId", playerID).Str("errorCode", result.ErrorCode).
			Msg("sync pull failed for a player the adapter believed was bound")
		return
	}
	a.emit(playerID, matchID, codec.S2CSnapshot, mapper.BuildSnapshot(bundle.View))
	a.emit(playerID, matchID, codec.S2CEventDelta, mapper.BuildEventDelta(bundle))
	if bundle.View.Phase == referee.GameOver {
		a.emit(playerID, matchID, codec.S2CGameOver, mapper.BuildGameOver(bundle.View))
	}
}

// emit encodes payload, assigns and advances the adapter's server sequence,
// and hands the finished message to the sink.
func (a *Adapter) emit(playerID int64, matchID string, messageType int, payload any) {
	payloadJSON, err := codec.EncodePayload(payload)
	if err != nil {
		a.log.Error().Err(err).Int("messageType", messageType).Msg("failed to encode outbound payload")
		return
	}
	seq := a.nextServerSequence
	a.nextServerSequence++
	env := codec.Envelope{MessageType: messageType, Sequence: seq, MatchID: matchID, PayloadJSON: payloadJSON}
	a.sink.Send(OutboundMessage{PlayerID: playerID, ServerSequence: seq, Envelope: env, Payload: payload})
}
