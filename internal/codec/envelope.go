// Package codec encodes and decodes the wire envelope and payload records
// exchanged between the protocol gateway and its clients.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Message type codes, per the external interface contract.
const (
	C2SJoin     = 100
	C2SCommand  = 101
	C2SPing     = 102
	C2SPullSync = 103
	C2SAck      = 104

	S2CJoinAck     = 200
	S2CCommandAck  = 201
	S2CSnapshot    = 202
	S2CEventDelta  = 203
	S2CGameOver    = 204
	S2CError       = 205
)

// Envelope is the outer wire record for every message in either direction.
// PayloadJSON carries the message-type-specific payload as an encoded JSON
// object string.
type Envelope struct {
	MessageType int    `json:"messageType"`
	Sequence    int64  `json:"sequence"`
	MatchID     string `json:"matchId"`
	PayloadJSON string `json:"payloadJson"`
}

// UnmarshalJSON rejects an envelope object missing any of its four
// required fields, rather than silently filling the absent one with its
// Go zero value.
func (e *Envelope) UnmarshalJSON(data []byte) error {
	var a struct {
		MessageType *int    `json:"messageType" req:"true"`
		Sequence    *int64  `json:"sequence" req:"true"`
		MatchID     *string `json:"matchId" req:"true"`
		PayloadJSON *string `json:"payloadJson" req:"true"`
	}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if missing := firstMissingField(&a); missing != "" {
		return fmt.Errorf("envelope missing required field %q", missing)
	}
	e.MessageType = *a.MessageType
	e.Sequence = *a.Sequence
	e.MatchID = *a.MatchID
	e.PayloadJSON = *a.PayloadJSON
	return nil
}

// DecodeEnvelope parses raw into an Envelope. It fails if a required field
// is missing, has the wrong kind, or raw has trailing garbage after the
// object.
func DecodeEnvelope(raw []byte) (Envelope, error) {
	var env Envelope
	if err := decodeStrict(raw, &env); err != nil {
		return Envelope{}, errors.Wrap(err, "decode envelope")
	}
	return env, nil
}

// EncodeEnvelope renders env in the canonical field order.
func EncodeEnvelope(env Envelope) ([]byte, error) {
	b, err := json.Marshal(env)
	if err != nil {
		return nil, errors.Wrap(err, "encode envelope")
	}
	return b, nil
}

// decodeStrict unmarshals raw into v and rejects any trailing content after
// the single top-level JSON value.
func decodeStrict(raw []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("trailing data after JSON value")
	}
	return nil
}

// DecodePayload decodes a payload_json string into a typed payload value.
func DecodePayload[T any](payloadJSON string) (T, error) {
	var v T
	if err := decodeStrict([]byte(payloadJSON), &v); err != nil {
		var zero T
		return zero, errors.Wrap(err, "decode payload")
	}
	return v, nil
}

// EncodePayload renders a typed payload value as a payload_json string.
func EncodePayload(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", errors.Wrap(err, "encode payload")
	}
	return string(b), nil
}
