package client

import (
	"encoding/json"
	"fmt"

	"github.com/taskwire-io/asana/pkg/asana"
)

// decodeSingle unwraps a {"data": {...}} envelope into a typed resource.
func decodeSingle[T any](body []byte, what string) (*T, error) {
	var result asana.SingleResponse[T]

	err := json.Unmarshal(body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", what, err)
	}

	return &result.Data, nil
}

// decodeList unwraps a {"data": [...], "next_page": {...}} envelope.
func decodeList[T any](body []byte, what string) (*asana.ListResponse[T], error) {
	var result asana.ListResponse[T]

	err := json.Unmarshal(body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing %s list response: %w", what, err)
	}

	return &result, nil
}
