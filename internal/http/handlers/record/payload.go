package record

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// payload is the JSON request body keyed by exact field name. A struct
// would let encoding/json match "NAME" or "Age" case-insensitively.
// Clients send age as a number or as a string; both land in a field as
// text.
type payload map[string]field

func (p payload) record() (name, age string) {
	return string(p["name"]), string(p["age"])
}

// formValue flattens a form field. A field sent more than once is joined
// with ",", so a repeated age never passes the numeric rule.
func formValue(values []string) string {
	return strings.Join(values, ",")
}

// field accepts any JSON value and keeps it as text:
//   - null          → "" (treated as missing)
//   - "text"        → text
//   - 1e3, 30       → decimal form ("1000", "30")
//   - other values  → their raw JSON, which never passes the numeric rule
type field string

func (f *field) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)

	switch {
	case bytes.Equal(b, []byte("null")):
		*f = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = field(s)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err == nil {
			if v, err := strconv.ParseFloat(string(n), 64); err == nil {
				*f = field(strconv.FormatFloat(v, 'f', -1, 64))
				return nil
			}
		}
		*f = field(b)
	}

	return nil
}
