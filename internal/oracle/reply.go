package oracle

import (
	"encoding/json"
	"errors"
	"strings"
)

// Reply is a JSON object answered by the oracle. Keys are read through the
// typed accessors, which fall back to the given default when a key is
// missing, null, or of the wrong type.
type Reply map[string]json.RawMessage

var errNotObject = errors.New("reply is not a JSON object")

// StripFences removes a leading ``` or ```json marker and a trailing ```
// marker around a model answer.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = s[3:]
		if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
			s = s[4:]
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// DecodeReply strips code fences and decodes the remaining text as a JSON
// object. The cleaned text is returned in every case so callers can embed
// it in diagnostics.
func DecodeReply(raw string) (Reply, string, error) {
	cleaned := StripFences(raw)
	var r Reply
	if err := json.Unmarshal([]byte(cleaned), &r); err != nil {
		return nil, cleaned, err
	}
	if r == nil {
		return nil, cleaned, errNotObject
	}
	return r, cleaned, nil
}

// Bool returns the boolean stored at key, or def.
func (r Reply) Bool(key string, def bool) bool {
	var v *bool
	if !r.decode(key, &v) || v == nil {
		return def
	}
	return *v
}

// String returns the string stored at key, or def.
func (r Reply) String(key, def string) string {
	var v *string
	if !r.decode(key, &v) || v == nil {
		return def
	}
	return *v
}

// Strings returns the string elements of the array stored at key, or def.
// Non-string elements are skipped.
func (r Reply) Strings(key string, def []string) []string {
	var items []json.RawMessage
	if !r.decode(key, &items) || items == nil {
		return def
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		var s *string
		if err := json.Unmarshal(item, &s); err == nil && s != nil {
			out = append(out, *s)
		}
	}
	return out
}

func (r Reply) decode(key string, dst interface{}) bool {
	raw, ok := r[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}
