package jsonutil

import (
	"bytes"
	"encoding/json"
	"io"
)

// MarshalNoEscape encodes v into JSON without escaping <, >, & into \u003c and friends.
func MarshalNoEscape(v any) ([]byte, error) {
	return MarshalNoEscapeIndent(v, "", "")
}

// MarshalNoEscapeIndent is MarshalNoEscape with indentation.
func MarshalNoEscapeIndent(v any, prefix, indent string) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, v, prefix, indent); err != nil {
		return nil, err
	}
	// json.Encoder always appends a newline
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Write streams v to w without HTML escaping, followed by a newline.
func Write(w io.Writer, v any) error {
	return encode(w, v, "", "")
}

func encode(w io.Writer, v any, prefix, indent string) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if prefix != "" || indent != "" {
		enc.SetIndent(prefix, indent)
	}
	return enc.Encode(v)
}
