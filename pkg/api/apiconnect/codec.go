// Package apiconnect holds the Connect service definitions for package api.
package apiconnect

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// Codec encodes api messages as JSON. It registers under the "json" name so
// Connect clients and curl callers using application/json are served by it.
type Codec struct{}

var _ connect.Codec = Codec{}

func (Codec) Name() string { return "json" }

func (Codec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (Codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}
