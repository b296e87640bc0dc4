package types

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Quantity is the raw text of a numeric input field.
// The empty string means the field was not supplied.
type Quantity string

// Q returns the Quantity for v.
func Q(v float64) Quantity {
	return Quantity(strconv.FormatFloat(v, 'f', -1, 64))
}

// Present reports whether the field was supplied at all. Text that does not
// parse as a number still counts as present.
func (q Quantity) Present() bool {
	return q != ""
}

// Float returns the numeric value of q, or 0 when q is absent, unparseable,
// NaN or infinite. Only decimal notation is read: hex floats such as "0x1p-1"
// and trailing garbage such as "0.5abc" both yield 0.
func (q Quantity) Float() float64 {
	s := strings.TrimSpace(string(q))
	if s == "" || isHex(s) {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func isHex(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// UnmarshalJSON accepts a number, a string or null. Numbers keep their
// literal text; null is absent.
func (q *Quantity) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	switch {
	case s == "null":
		*q = ""
	case strings.HasPrefix(s, `"`):
		var text string
		if err := json.Unmarshal(b, &text); err != nil {
			return err
		}
		*q = Quantity(text)
	default:
		*q = Quantity(s)
	}
	return nil
}
