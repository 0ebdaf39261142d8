package adapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// JSON defines an interface for JSON operations to enable mocking
type JSON interface {
	Marshal(v interface{}) ([]byte, error)
	Unmarshal(data []byte, v interface{}) error
	// UnmarshalNumbers decodes like Unmarshal but keeps numbers as json.Number
	// so integers wider than a float64 mantissa survive a round trip
	UnmarshalNumbers(data []byte, v interface{}) error
	Valid(data []byte) bool
}

// RealJSON implements JSON using the standard encoding/json package
type RealJSON struct{}

// NewJSON creates a new real JSON implementation
func NewJSON() JSON {
	return &RealJSON{}
}

func (j *RealJSON) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (j *RealJSON) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (j *RealJSON) UnmarshalNumbers(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}

	// Match Unmarshal: only whitespace may follow the top-level value
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("invalid character after top-level value")
	}
	return nil
}

func (j *RealJSON) Valid(data []byte) bool {
	return json.Valid(data)
}
