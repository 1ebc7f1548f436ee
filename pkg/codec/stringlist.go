// Package codec converts list-valued attributes between their wire form
// (ordered []string) and the JSON text stored in a plain text column.
package codec

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
)

// StringList is an ordered list of strings persisted as JSON text.
// Reads never fail: malformed or NULL column data decodes to an empty list.
type StringList []string

// Encode renders a list (or a string already holding a JSON array) as JSON text.
// Anything that is not a list of strings encodes as "[]".
func Encode(v any) string {
	switch x := v.(type) {
	case StringList:
		return encodeSlice(x)
	case []string:
		return encodeSlice(x)
	case string:
		return encodeSlice(Decode(x))
	default:
		return "[]"
	}
}

// Decode parses JSON text into a list, falling back to an empty list.
func Decode(s string) StringList {
	out := StringList{}
	if strings.TrimSpace(s) == "" {
		return out
	}
	if err := json.Unmarshal([]byte(s), &out); err != nil || out == nil {
		return StringList{}
	}
	return out
}

func encodeSlice(in []string) string {
	if in == nil {
		return "[]"
	}
	b, err := json.Marshal(in)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	return encodeSlice(l), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		*l = Decode(string(v))
	case string:
		*l = Decode(v)
	default:
		*l = StringList{}
	}
	return nil
}

// GormDataType keeps the column a plain text column on every dialect.
func (StringList) GormDataType() string { return "text" }

// MarshalJSON always emits an array, never null.
func (l StringList) MarshalJSON() ([]byte, error) {
	return []byte(encodeSlice(l)), nil
}

// UnmarshalJSON accepts either a JSON array of strings or a string that
// itself contains a JSON array. An undecodable string becomes an empty list.
func (l *StringList) UnmarshalJSON(b []byte) error {
	trimmed := strings.TrimSpace(string(b))
	if trimmed == "null" {
		*l = nil
		return nil
	}
	if strings.HasPrefix(trimmed, "\"") {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = Decode(s)
		return nil
	}
	var arr []string
	if err := json.Unmarshal(b, &arr); err != nil {
		return err
	}
	if arr == nil {
		arr = []string{}
	}
	*l = arr
	return nil
}
