package types

import "fmt"

// Status is the outcome of one test. The zero value is not a valid status.
type Status uint8

const (
	_ Status = iota
	StatusPass
	StatusFail
	StatusFlag
	StatusPartial
)

var statusNames = [...]string{
	StatusPass:    "PASS",
	StatusFail:    "FAIL",
	StatusFlag:    "FLAG",
	StatusPartial: "PARTIAL",
}

// Statuses lists every valid Status in display order.
func Statuses() []Status {
	return []Status{StatusPass, StatusFail, StatusFlag, StatusPartial}
}

// Valid reports whether s is one of the four defined statuses.
func (s Status) Valid() bool {
	return s >= StatusPass && s <= StatusPartial
}

func (s Status) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
	return statusNames[s]
}

// IsFlag reports whether s counts towards the flag tally (FLAG or PARTIAL).
func (s Status) IsFlag() bool {
	return s == StatusFlag || s == StatusPartial
}

// ParseStatus converts "PASS", "FAIL", "FLAG" or "PARTIAL" to a Status.
func ParseStatus(text string) (Status, error) {
	for _, s := range Statuses() {
		if statusNames[s] == text {
			return s, nil
		}
	}
	return 0, fmt.Errorf("types: unknown status %q", text)
}

func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("types: cannot marshal invalid status %d", uint8(s))
	}
	return []byte(statusNames[s]), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	v, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
