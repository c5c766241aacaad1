package util

import (
	"bytes"
	"encoding/json"
)

// EncodeJson marshals without HTML escaping so keys like "s&p500_momentum"
// are written as-is. An empty indent gives compact output.
func EncodeJson(v any, indent string) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
