package jsonutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// EncodeToJSONRaw marshals value into a json.RawMessage.
func EncodeToJSONRaw(value any) (json.RawMessage, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode JSON: %w", err)
	}
	return json.RawMessage(data), nil
}

// DecodeJSONRaw strictly decodes raw into T: unknown fields are rejected and
// so is any trailing data after the first value. Empty or whitespace-only
// input yields the zero value of T without error.
func DecodeJSONRaw[T any](raw json.RawMessage) (T, error) {
	var v T
	if len(bytes.TrimSpace(raw)) == 0 {
		return v, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		var zero T
		return zero, fmt.Errorf("decode JSON: %w", err)
	}
	if err := rejectTrailing(dec); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// rejectTrailing fails unless the decoder is at EOF.
func rejectTrailing(dec *json.Decoder) error {
	switch err := dec.Decode(&struct{}{}); err {
	case io.EOF:
		return nil
	case nil:
		return errors.New("unexpected trailing data after JSON value")
	default:
		return fmt.Errorf("trailing data validation: %w", err)
	}
}
