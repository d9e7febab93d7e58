package json

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	Marshal       = json.Marshal
	MarshalIndent = json.MarshalIndent
	Unmarshal     = json.Unmarshal
	NewDecoder    = json.NewDecoder
	NewEncoder    = json.NewEncoder
)

// Valid reports whether data is a syntactically valid JSON document.
func Valid(data []byte) bool {
	return json.Valid(data)
}

type RawMessage = jsoniter.RawMessage
