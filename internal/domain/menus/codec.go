package menus

import (
	"errors"
	"io"

	"github.com/goccy/go-json"
)

// ErrEmptyDocument is returned when a menu document decodes to null.
var ErrEmptyDocument = errors.New("menu document is empty")

// Decode reads a JSON menu document.
func Decode(r io.Reader) (Response, error) {
	var payload Response
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, ErrEmptyDocument
	}
	return payload, nil
}

// Unmarshal parses a JSON menu document held in memory.
func Unmarshal(data []byte) (Response, error) {
	var payload Response
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, ErrEmptyDocument
	}
	return payload, nil
}

// Marshal encodes a menu document as JSON.
func Marshal(resp Response) ([]byte, error) {
	return json.Marshal(resp)
}
