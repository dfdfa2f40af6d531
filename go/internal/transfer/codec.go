package transfer

import (
	"encoding/json"
)

// JSONCodec lets Connect carry plain Go structs as JSON. It replaces the
// default protobuf JSON codec under the same "json" name.
type JSONCodec struct{}

func (JSONCodec) Name() string {
	return "json"
}

func (JSONCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}
