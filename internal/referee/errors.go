package referee

// Error codes returned in CommandResult.ErrorCode. Names and meanings follow
// the taxonomy used throughout the wider match core (session, service,
// gateway reuse these same codes verbatim).
const (
	ErrInvalidPhase  = "ERR_INVALID_PHASE"
	ErrGameOver      = "ERR_GAME_OVER"

	ErrDuplicateCommit = "ERR_DUPLICATE_COMMIT"
	ErrDuplicateReveal = "ERR_DUPLICATE_REVEAL"
	ErrMissingCommit   = "ERR_MISSING_COMMIT"
	ErrCommitMismatch  = "ERR_COMMIT_MISMATCH"
	ErrInvalidReveal   = "ERR_INVALID_REVEAL"
	ErrPositionConflict = "ERR_POSITION_CONFLICT"
	ErrInvalidPieceID  = "ERR_INVALID_PIECE_ID"

	ErrNotYourTurn       = "ERR_NOT_YOUR_TURN"
	ErrInvalidPayload    = "ERR_INVALID_PAYLOAD"
	ErrInvalidPiece      = "ERR_INVALID_PIECE"
	ErrInvalidPieceSide  = "ERR_INVALID_PIECE_SIDE"
	ErrInvalidFrom       = "ERR_INVALID_FROM"
	ErrIllegalMove       = "ERR_ILLEGAL_MOVE"
	ErrPassNotAllowed    = "ERR_PASS_NOT_ALLOWED"
	ErrUnsupportedCommand = "ERR_UNSUPPORTED_COMMAND"

	ErrPlayerNotBound = "ERR_PLAYER_NOT_BOUND"
	ErrMatchNotFound  = "ERR_MATCH_NOT_FOUND"

	ErrJoinRejected = "ERR_JOIN_REJECTED"

	ErrInternal = "ERR_INTERNAL"
)
