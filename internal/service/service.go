// Package service maintains the multi-match registry: player-to-session
// routing and the per-player acknowledgement cursor used for reliable
// resync.
package service

import (
	"sort"

	"github.com/MotionlessPeri/StupidChess/internal/referee"
	"github.com/MotionlessPeri/StupidChess/internal/session"
)

// Binding is one player's current match assignment and ack cursor.
type Binding struct {
	MatchID          string
	Side             referee.Side
	LastAckedSequence int64
}

// JoinResult is the outcome of JoinMatch.
type JoinResult struct {
	Accepted bool
	Side     referee.Side
}

// SyncBundle is the result of a PullPlayerSync call.
type SyncBundle struct {
	MatchID                string
	RequestedAfterSequence int64
	LatestSequence         int64
	View                   session.View
	Events                 []session.Event
}

// Service owns every session in the process and the bindings routing
// players to them. It performs no locking: callers that want to run
// matches in parallel should shard by match id and own one Service+adapter
// per shard.
type Service struct {
	config   referee.RuleConfig
	sessions map[string]*session.Session
	bindings map[int64]*Binding
}

// New creates an empty service using config for every session it creates on
// demand.
func New(config referee.RuleConfig) *Service {
	return &Service{
		config:   config,
		sessions: make(map[string]*session.Session),
		bindings: make(map[int64]*Binding),
	}
}

// JoinMatch binds playerID to matchID. Zero ids are rejected. A player
// already bound to a different match is rejected. A player already bound to
// this match gets back its previously assigned side (idempotent).
// Otherwise the session is created on demand and the join delegated to it.
func (s *Service) JoinMatch(matchID string, playerID int64) JoinResult {
	if matchID == "" || matchID == "0" || playerID == 0 {
		return JoinResult{Accepted: false}
	}
	if existing, ok := s.bindings[playerID]; ok {
		if existing.MatchID != matchID {
			return JoinResult{Accepted: false}
		}
		return JoinResult{Accepted: true, Side: existing.Side}
	}

	sess, ok := s.sessions[matchID]
	if !ok {
		sess = session.New(matchID, s.config)
		s.sessions[matchID] = sess
	}
	joinResult := sess.Join(playerID)
	if !joinResult.Accepted {
		return JoinResult{Accepted: false}
	}
	s.bindings[playerID] = &Binding{MatchID: matchID, Side: joinResult.Side, LastAckedSequence: 0}
	return JoinResult{Accepted: true, Side: joinResult.Side}
}

// SubmitPlayerCommand looks up playerID's binding and forwards cmd to its
// session. Unknown players are rejected with ERR_PLAYER_NOT_BOUND.
func (s *Service) SubmitPlayerCommand(playerID int64, cmd referee.PlayerCommand) referee.CommandResult {
	binding, ok := s.bindings[playerID]
	if !ok {
		return referee.CommandResult{Accepted: false, ErrorCode: referee.ErrPlayerNotBound, ErrorMessage: "player is not bound to any match"}
	}
	sess := s.sessions[binding.MatchID]
	return sess.SubmitCommand(playerID, cmd)
}

// PullPlayerSync returns the sync bundle for playerID: the requested
// after-sequence is override if present, else the player's last-acked
// sequence. Unknown players are rejected with ERR_PLAYER_NOT_BOUND.
func (s *Service) PullPlayerSync(playerID int64, override *int64) (SyncBundle, referee.CommandResult) {
	binding, ok := s.bindings[playerID]
	if !ok {
		return SyncBundle{}, referee.CommandResult{Accepted: false, ErrorCode: referee.ErrPlayerNotBound, ErrorMessage: "player is not bound to any match"}
	}
	sess := s.sessions[binding.MatchID]

	after := binding.LastAckedSequence
	if override != nil {
		after = *override
	}
	return SyncBundle{
		MatchID:                binding.MatchID,
		RequestedAfterSequence: after,
		LatestSequence:         sess.LatestEventSequence(),
		View:                   sess.PlayerView(playerID),
		Events:                 sess.PullEvents(playerID, after),
	}, referee.CommandResult{Accepted: true}
}

// AckPlayerEvents advances playerID's ack cursor to seq. Accepted iff
// last_acked <= seq <= latest_sequence; the cursor never decreases.
func (s *Service) AckPlayerEvents(playerID int64, seq int64) bool {
	binding, ok := s.bindings[playerID]
	if !ok {
		return false
	}
	sess := s.sessions[binding.MatchID]
	latest := sess.LatestEventSequence()
	if seq < binding.LastAckedSequence || seq > latest {
		return false
	}
	binding.LastAckedSequence = seq
	return true
}

// GetActiveMatchCount reports how many sessions the service has created.
// Supplemented read accessor (observability/testing), not a specified
// operation; introduces no new invariant.
func (s *Service) GetActiveMatchCount() int {
	return len(s.sessions)
}

// GetPlayerAckSequence reports playerID's current ack cursor, or -1 if
// unbound. Supplemented read accessor (observability/testing).
func (s *Service) GetPlayerAckSequence(playerID int64) int64 {
	binding, ok := s.bindings[playerID]
	if !ok {
		return -1
	}
	return binding.LastAckedSequence
}

// GetPlayerMatchID reports the match playerID is currently bound to.
// Supplemented read accessor: the gateway needs it to stamp an envelope's
// match_id without re-deriving the binding itself.
func (s *Service) GetPlayerMatchID(playerID int64) (string, bool) {
	binding, ok := s.bindings[playerID]
	if !ok {
		return "", false
	}
	return binding.MatchID, true
}

// GetMatchPlayerIDs returns every player bound to matchID, sorted ascending.
// Supplemented read accessor: the gateway fans a command's result out to
// every player in deterministic order.
func (s *Service) GetMatchPlayerIDs(matchID string) []int64 {
	var ids []int64
	for playerID, binding := range s.bindings {
		if binding.MatchID == matchID {
			ids = append(ids, playerID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
