package codec

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	env := Envelope{MessageType: C2SJoin, Sequence: 1, MatchID: "900", PayloadJSON: `{"matchId":900,"playerId":10001}`}
	encoded, err := EncodeEnvelope(env)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeEnvelope(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(env, decoded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeEnvelopeRejectsTrailingGarbage(t *testing.T) {
	raw := []byte(`{"messageType":100,"sequence":1,"matchId":"1","payloadJson":"{}"} garbage`)
	if _, err := DecodeEnvelope(raw); err == nil {
		t.Fatalf("expected error for trailing garbage")
	}
}

func TestDecodeEnvelopeRejectsWrongKind(t *testing.T) {
	raw := []byte(`{"messageType":"not-a-number","sequence":1,"matchId":"1","payloadJson":"{}"}`)
	if _, err := DecodeEnvelope(raw); err == nil {
		t.Fatalf("expected error for wrong-kind field")
	}
}

func TestDecodeEnvelopeRejectsMissingField(t *testing.T) {
	raw := []byte(`{"messageType":100,"matchId":"1","payloadJson":"{}"}`)
	if _, err := DecodeEnvelope(raw); err == nil {
		t.Fatalf("expected error for missing sequence field")
	}
}

func TestDecodePayloadRejectsMissingField(t *testing.T) {
	raw := `{"playerId":10001}`
	if _, err := DecodePayload[AckPayload](raw); err == nil {
		t.Fatalf("expected error for ack payload missing sequence")
	}
}

func TestDecodePayloadRejectsNullField(t *testing.T) {
	raw := `{"playerId":10001,"sequence":null}`
	if _, err := DecodePayload[AckPayload](raw); err == nil {
		t.Fatalf("expected error for ack payload with null sequence")
	}
}

func TestCommandPayloadRoundTripWithNestedMove(t *testing.T) {
	cmd := CommandPayload{
		PlayerID:    10001,
		CommandType: 2,
		Side:        0,
		HasMove:     true,
		Move: &MovePayload{
			PieceID: 11,
			FromX:   0, FromY: 3,
			ToX: 0, ToY: 4,
		},
	}
	raw, err := EncodePayload(cmd)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodePayload[CommandPayload](raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(cmd, decoded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSnapshotPayloadRoundTrip(t *testing.T) {
	snap := SnapshotPayload{
		ViewerSide:  0,
		Phase:       2,
		CurrentTurn: 1,
		PassCount:   0,
		Result:      0,
		EndReason:   0,
		TurnIndex:   1,
		Pieces: []PiecePayload{
			{PieceID: 11, Side: 0, VisibleRole: 6, X: 0, Y: 4, Alive: true},
		},
	}
	raw, err := EncodePayload(snap)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodePayload[SnapshotPayload](raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(snap, decoded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}
