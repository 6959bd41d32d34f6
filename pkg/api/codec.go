package api

import (
	"encoding/json"
	"fmt"

	"connectrpc.com/connect"
)

// jsonCodec carries the plain Go message structs of this package over the Connect
// protocol. It registers under "json", replacing Connect's protobuf-only JSON codec,
// so clients and handlers exchange application/json bodies.
type jsonCodec struct{}

var _ connect.Codec = jsonCodec{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", msg, err)
	}
	return data, nil
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("unmarshal %T: %w", msg, err)
	}
	return nil
}
