package codec

import (
	"encoding/json"
	"fmt"
)

// JoinPayload is the C2S_Join payload.
type JoinPayload struct {
	MatchID  int64 `json:"matchId"`
	PlayerID int64 `json:"playerId"`
}

// UnmarshalJSON rejects a join payload missing matchId or playerId.
func (p *JoinPayload) UnmarshalJSON(data []byte) error {
	var a struct {
		MatchID  *int64 `json:"matchId" req:"true"`
		PlayerID *int64 `json:"playerId" req:"true"`
	}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if missing := firstMissingField(&a); missing != "" {
		return fmt.Errorf("join payload missing required field %q", missing)
	}
	p.MatchID = *a.MatchID
	p.PlayerID = *a.PlayerID
	return nil
}

// PullSyncPayload is the C2S_PullSync payload.
type PullSyncPayload struct {
	PlayerID                 int64 `json:"playerId"`
	HasAfterSequenceOverride bool  `json:"hasAfterSequenceOverride"`
	AfterSequenceOverride    int64 `json:"afterSequenceOverride"`
}

// UnmarshalJSON rejects a pull-sync payload missing any of its fields.
// AfterSequenceOverride is required even when HasAfterSequenceOverride is
// false, since the wire format always carries it (as zero) in that case.
func (p *PullSyncPayload) UnmarshalJSON(data []byte) error {
	var a struct {
		PlayerID                 *int64 `json:"playerId" req:"true"`
		HasAfterSequenceOverride *bool  `json:"hasAfterSequenceOverride" req:"true"`
		AfterSequenceOverride    *int64 `json:"afterSequenceOverride" req:"true"`
	}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if missing := firstMissingField(&a); missing != "" {
		return fmt.Errorf("pull sync payload missing required field %q", missing)
	}
	p.PlayerID = *a.PlayerID
	p.HasAfterSequenceOverride = *a.HasAfterSequenceOverride
	p.AfterSequenceOverride = *a.AfterSequenceOverride
	return nil
}

// AckPayload is the C2S_Ack payload.
type AckPayload struct {
	PlayerID int64 `json:"playerId"`
	Sequence int64 `json:"sequence"`
}

// UnmarshalJSON rejects an ack payload missing playerId or sequence. This
// is what stops an ack with sequence omitted from silently decoding as an
// ack for sequence 0.
func (p *AckPayload) UnmarshalJSON(data []byte) error {
	var a struct {
		PlayerID *int64 `json:"playerId" req:"true"`
		Sequence *int64 `json:"sequence" req:"true"`
	}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if missing := firstMissingField(&a); missing != "" {
		return fmt.Errorf("ack payload missing required field %q", missing)
	}
	p.PlayerID = *a.PlayerID
	p.Sequence = *a.Sequence
	return nil
}

// MovePayload is the nested move sub-payload of a Command, present when
// HasMove is set.
type MovePayload struct {
	PieceID            int  `json:"pieceId"`
	FromX              int8 `json:"fromX"`
	FromY              int8 `json:"fromY"`
	ToX                int8 `json:"toX"`
	ToY                int8 `json:"toY"`
	HasCapturedPieceID bool `json:"hasCapturedPieceId"`
	CapturedPieceID    int  `json:"capturedPieceId"`
}

// UnmarshalJSON rejects a move payload missing any of its fields.
func (p *MovePayload) UnmarshalJSON(data []byte) error {
	var a struct {
		PieceID            *int  `json:"pieceId" req:"true"`
		FromX              *int8 `json:"fromX" req:"true"`
		FromY              *int8 `json:"fromY" req:"true"`
		ToX                *int8 `json:"toX" req:"true"`
		ToY                *int8 `json:"toY" req:"true"`
		HasCapturedPieceID *bool `json:"hasCapturedPieceId" req:"true"`
		CapturedPieceID    *int  `json:"capturedPieceId" req:"true"`
	}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if missing := firstMissingField(&a); missing != "" {
		return fmt.Errorf("move payload missing required field %q", missing)
	}
	p.PieceID = *a.PieceID
	p.FromX = *a.FromX
	p.FromY = *a.FromY
	p.ToX = *a.ToX
	p.ToY = *a.ToY
	p.HasCapturedPieceID = *a.HasCapturedPieceID
	p.CapturedPieceID = *a.CapturedPieceID
	return nil
}

// SetupCommitPayload is the nested commit sub-payload of a Command, present
// when HasSetupCommit is set.
type SetupCommitPayload struct {
	Side    int    `json:"side"`
	HashHex string `json:"hashHex"`
}

// UnmarshalJSON rejects a setup-commit payload missing side or hashHex. An
// empty hashHex is a valid value (see the commit-digest design note) and
// decodes fine as long as the key itself is present.
func (p *SetupCommitPayload) UnmarshalJSON(data []byte) error {
	var a struct {
		Side    *int    `json:"side" req:"true"`
		HashHex *string `json:"hashHex" req:"true"`
	}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if missing := firstMissingField(&a); missing != "" {
		return fmt.Errorf("setup commit payload missing required field %q", missing)
	}
	p.Side = *a.Side
	p.HashHex = *a.HashHex
	return nil
}

// PlacementPayload is one entry of a SetupPlainPayload.
type PlacementPayload struct {
	PieceID int  `json:"pieceId"`
	X       int8 `json:"x"`
	Y       int8 `json:"y"`
}

// UnmarshalJSON rejects a placement entry missing any of its fields.
func (p *PlacementPayload) UnmarshalJSON(data []byte) error {
	var a struct {
		PieceID *int  `json:"pieceId" req:"true"`
		X       *int8 `json:"x" req:"true"`
		Y       *int8 `json:"y" req:"true"`
	}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if missing := firstMissingField(&a); missing != "" {
		return fmt.Errorf("placement missing required field %q", missing)
	}
	p.PieceID = *a.PieceID
	p.X = *a.X
	p.Y = *a.Y
	return nil
}

// SetupPlainPayload is the nested reveal sub-payload of a Command, present
// when HasSetupPlain is set.
type SetupPlainPayload struct {
	Side       int                `json:"side"`
	Nonce      string             `json:"nonce"`
	Placements []PlacementPayload `json:"placements"`
}

// UnmarshalJSON rejects a setup-plain payload missing side, nonce, or
// placements. Placements is checked via a pointer so an explicit empty
// array still counts as present, while an omitted key does not.
func (p *SetupPlainPayload) UnmarshalJSON(data []byte) error {
	var a struct {
		Side       *int                `json:"side" req:"true"`
		Nonce      *string             `json:"nonce" req:"true"`
		Placements *[]PlacementPayload `json:"placements" req:"true"`
	}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if missing := firstMissingField(&a); missing != "" {
		return fmt.Errorf("setup plain payload missing required field %q", missing)
	}
	p.Side = *a.Side
	p.Nonce = *a.Nonce
	p.Placements = *a.Placements
	return nil
}

// CommandPayload is the C2S_Command payload. At most one of the "has*"
// flags, and the matching nested payload, is expected per commandType
// (none for Pass and Resign).
type CommandPayload struct {
	PlayerID    int64 `json:"playerId"`
	CommandType int   `json:"commandType"`
	Side        int   `json:"side"`

	HasMove        bool `json:"hasMove"`
	HasSetupCommit bool `json:"hasSetupCommit"`
	HasSetupPlain  bool `json:"hasSetupPlain"`

	Move        *MovePayload        `json:"move,omitempty"`
	SetupCommit *SetupCommitPayload `json:"setupCommit,omitempty"`
	SetupPlain  *SetupPlainPayload  `json:"setupPlain,omitempty"`
}

// UnmarshalJSON rejects a command payload missing any of its always-present
// fields. Move, SetupCommit, and SetupPlain stay genuinely optional: which
// one, if any, must be present is a commandType-dependent rule enforced by
// the referee, not a wire-decode concern.
func (c *CommandPayload) UnmarshalJSON(data []byte) error {
	var a struct {
		PlayerID       *int64 `json:"playerId" req:"true"`
		CommandType    *int   `json:"commandType" req:"true"`
		Side           *int   `json:"side" req:"true"`
		HasMove        *bool  `json:"hasMove" req:"true"`
		HasSetupCommit *bool  `json:"hasSetupCommit" req:"true"`
		HasSetupPlain  *bool  `json:"hasSetupPlain" req:"true"`

		Move        *MovePayload        `json:"move,omitempty"`
		SetupCommit *SetupCommitPayload `json:"setupCommit,omitempty"`
		SetupPlain  *SetupPlainPayload  `json:"setupPlain,omitempty"`
	}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if missing := firstMissingField(&a); missing != "" {
		return fmt.Errorf("command payload missing required field %q", missing)
	}
	c.PlayerID = *a.PlayerID
	c.CommandType = *a.CommandType
	c.Side = *a.Side
	c.HasMove = *a.HasMove
	c.HasSetupCommit = *a.HasSetupCommit
	c.HasSetupPlain = *a.HasSetupPlain
	c.Move = a.Move
	c.SetupCommit = a.SetupCommit
	c.SetupPlain = a.SetupPlain
	return nil
}

// JoinAckPayload is the S2C_JoinAck payload.
type JoinAckPayload struct {
	Accepted     bool   `json:"accepted"`
	AssignedSide int    `json:"assignedSide"`
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

// UnmarshalJSON rejects a join-ack payload missing any of its fields.
func (p *JoinAckPayload) UnmarshalJSON(data []byte) error {
	var a struct {
		Accepted     *bool   `json:"accepted" req:"true"`
		AssignedSide *int    `json:"assignedSide" req:"true"`
		ErrorCode    *string `json:"errorCode" req:"true"`
		ErrorMessage *string `json:"errorMessage" req:"true"`
	}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if missing := firstMissingField(&a); missing != "" {
		return fmt.Errorf("join ack payload missing required field %q", missing)
	}
	p.Accepted = *a.Accepted
	p.AssignedSide = *a.AssignedSide
	p.ErrorCode = *a.ErrorCode
	p.ErrorMessage = *a.ErrorMessage
	return nil
}

// CommandAckPayload is the S2C_CommandAck payload.
type CommandAckPayload struct {
	Accepted     bool   `json:"accepted"`
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

// UnmarshalJSON rejects a command-ack payload missing any of its fields.
func (p *CommandAckPayload) UnmarshalJSON(data []byte) error {
	var a struct {
		Accepted     *bool   `json:"accepted" req:"true"`
		ErrorCode    *string `json:"errorCode" req:"true"`
		ErrorMessage *string `json:"errorMessage" req:"true"`
	}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if missing := firstMissingField(&a); missing != "" {
		return fmt.Errorf("command ack payload missing required field %q", missing)
	}
	p.Accepted = *a.Accepted
	p.ErrorCode = *a.ErrorCode
	p.ErrorMessage = *a.ErrorMessage
	return nil
}

// PiecePayload is one entry of a SnapshotPayload's piece list.
type PiecePayload struct {
	PieceID     int  `json:"pieceId"`
	Side        int  `json:"side"`
	VisibleRole int  `json:"visibleRole"`
	X           int8 `json:"x"`
	Y           int8 `json:"y"`
	Alive       bool `json:"alive"`
	Frozen      bool `json:"frozen"`
	Revealed    bool `json:"revealed"`
}

// UnmarshalJSON rejects a piece entry missing any of its fields.
func (p *PiecePayload) UnmarshalJSON(data []byte) error {
	var a struct {
		PieceID     *int  `json:"pieceId" req:"true"`
		Side        *int  `json:"side" req:"true"`
		VisibleRole *int  `json:"visibleRole" req:"true"`
		X           *int8 `json:"x" req:"true"`
		Y           *int8 `json:"y" req:"true"`
		Alive       *bool `json:"alive" req:"true"`
		Frozen      *bool `json:"frozen" req:"true"`
		Revealed    *bool `json:"revealed" req:"true"`
	}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if missing := firstMissingField(&a); missing != "" {
		return fmt.Errorf("piece payload missing required field %q", missing)
	}
	p.PieceID = *a.PieceID
	p.Side = *a.Side
	p.VisibleRole = *a.VisibleRole
	p.X = *a.X
	p.Y = *a.Y
	p.Alive = *a.Alive
	p.Frozen = *a.Frozen
	p.Revealed = *a.Revealed
	return nil
}

// SnapshotPayload is the S2C_Snapshot payload: a full per-viewer projection
// of the match.
type SnapshotPayload struct {
	ViewerSide        int            `json:"viewerSide"`
	Phase             int            `json:"phase"`
	CurrentTurn       int            `json:"currentTurn"`
	PassCount         int32          `json:"passCount"`
	Result            int            `json:"result"`
	EndReason         int            `json:"endReason"`
	TurnIndex         uint64         `json:"turnIndex"`
	LastEventSequence int64          `json:"lastEventSequence"`
	Pieces            []PiecePayload `json:"pieces"`
}

// UnmarshalJSON rejects a snapshot payload missing any of its fields.
func (s *SnapshotPayload) UnmarshalJSON(data []byte) error {
	var a struct {
		ViewerSide        *int            `json:"viewerSide" req:"true"`
		Phase             *int            `json:"phase" req:"true"`
		CurrentTurn       *int            `json:"currentTurn" req:"true"`
		PassCount         *int32          `json:"passCount" req:"true"`
		Result            *int            `json:"result" req:"true"`
		EndReason         *int            `json:"endReason" req:"true"`
		TurnIndex         *uint64         `json:"turnIndex" req:"true"`
		LastEventSequence *int64          `json:"lastEventSequence" req:"true"`
		Pieces            *[]PiecePayload `json:"pieces" req:"true"`
	}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if missing := firstMissingField(&a); missing != "" {
		return fmt.Errorf("snapshot payload missing required field %q", missing)
	}
	s.ViewerSide = *a.ViewerSide
	s.Phase = *a.Phase
	s.CurrentTurn = *a.CurrentTurn
	s.PassCount = *a.PassCount
	s.Result = *a.Result
	s.EndReason = *a.EndReason
	s.TurnIndex = *a.TurnIndex
	s.LastEventSequence = *a.LastEventSequence
	s.Pieces = *a.Pieces
	return nil
}

// EventPayload is one entry of an EventDeltaPayload's event list.
type EventPayload struct {
	Sequence      int64  `json:"sequence"`
	TurnIndex     uint64 `json:"turnIndex"`
	EventType     int    `json:"eventType"`
	ActorPlayerID int64  `json:"actorPlayerId"`
	ErrorCode     string `json:"errorCode"`
	Description   string `json:"description"`
}

// UnmarshalJSON rejects an event entry missing any of its fields.
func (e *EventPayload) UnmarshalJSON(data []byte) error {
	var a struct {
		Sequence      *int64  `json:"sequence" req:"true"`
		TurnIndex     *uint64 `json:"turnIndex" req:"true"`
		EventType     *int    `json:"eventType" req:"true"`
		ActorPlayerID *int64  `json:"actorPlayerId" req:"true"`
		ErrorCode     *string `json:"errorCode" req:"true"`
		Description   *string `json:"description" req:"true"`
	}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if missing := firstMissingField(&a); missing != "" {
		return fmt.Errorf("event payload missing required field %q", missing)
	}
	e.Sequence = *a.Sequence
	e.TurnIndex = *a.TurnIndex
	e.EventType = *a.EventType
	e.ActorPlayerID = *a.ActorPlayerID
	e.ErrorCode = *a.ErrorCode
	e.Description = *a.Description
	return nil
}

// EventDeltaPayload is the S2C_EventDelta payload.
type EventDeltaPayload struct {
	RequestedAfterSequence int64          `json:"requestedAfterSequence"`
	LatestSequence         int64          `json:"latestSequence"`
	Events                 []EventPayload `json:"events"`
}

// UnmarshalJSON rejects an event-delta payload missing any of its fields.
func (d *EventDeltaPayload) UnmarshalJSON(data []byte) error {
	var a struct {
		RequestedAfterSequence *int64          `json:"requestedAfterSequence" req:"true"`
		LatestSequence         *int64          `json:"latestSequence" req:"true"`
		Events                 *[]EventPayload `json:"events" req:"true"`
	}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if missing := firstMissingField(&a); missing != "" {
		return fmt.Errorf("event delta payload missing required field %q", missing)
	}
	d.RequestedAfterSequence = *a.RequestedAfterSequence
	d.LatestSequence = *a.LatestSequence
	d.Events = *a.Events
	return nil
}

// GameOverPayload is the S2C_GameOver payload.
type GameOverPayload struct {
	Result     int    `json:"result"`
	EndReason  int    `json:"endReason"`
	TurnIndex  uint64 `json:"turnIndex"`
	IsDraw     bool   `json:"isDraw"`
	WinnerSide int    `json:"winnerSide"`
}

// UnmarshalJSON rejects a game-over payload missing any of its fields.
func (g *GameOverPayload) UnmarshalJSON(data []byte) error {
	var a struct {
		Result     *int    `json:"result" req:"true"`
		EndReason  *int    `json:"endReason" req:"true"`
		TurnIndex  *uint64 `json:"turnIndex" req:"true"`
		IsDraw     *bool   `json:"isDraw" req:"true"`
		WinnerSide *int    `json:"winnerSide" req:"true"`
	}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if missing := firstMissingField(&a); missing != "" {
		return fmt.Errorf("game over payload missing required field %q", missing)
	}
	g.Result = *a.Result
	g.EndReason = *a.EndReason
	g.TurnIndex = *a.TurnIndex
	g.IsDraw = *a.IsDraw
	g.WinnerSide = *a.WinnerSide
	return nil
}

// ErrorPayload is the S2C_Error payload.
type ErrorPayload struct {
	ErrorMessage string `json:"errorMessage"`
}

// UnmarshalJSON rejects an error payload missing errorMessage.
func (e *ErrorPayload) UnmarshalJSON(data []byte) error {
	var a struct {
		ErrorMessage *string `json:"errorMessage" req:"true"`
	}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if missing := firstMissingField(&a); missing != "" {
		return fmt.Errorf("error payload missing required field %q", missing)
	}
	e.ErrorMessage = *a.ErrorMessage
	return nil
}
