package report

import "fmt"

// Status is the overall outcome of a lint run
type Status int

const (
	StatusNone Status = iota
	StatusWarnings
	StatusErrors
	StatusIncompatible
	StatusNoticed
)

var statusNames = map[Status]string{
	StatusNone:         "none",
	StatusWarnings:     "warnings",
	StatusErrors:       "errors",
	StatusIncompatible: "incompatible",
	StatusNoticed:      "noticed",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// MarshalText encodes the status by name
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name
func (s *Status) UnmarshalText(text []byte) error {
	for status, name := range statusNames {
		if name == string(text) {
			*s = status
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", text)
}

// ExitCode is the process exit code for the status
func (s Status) ExitCode() int {
	switch s {
	case StatusErrors:
		return 77
	case StatusIncompatible:
		return 131
	case StatusNoticed:
		return 10
	default:
		return 0
	}
}

// Evaluate derives the status of a run. Compatibility failures take
// precedence over style findings, which take precedence over noticed changes.
func Evaluate(style, compat *Store, noticed bool) Status {
	switch {
	case compat.Len() != 0:
		return StatusIncompatible
	case style.HasErrors():
		return StatusErrors
	case style.Len() != 0:
		return StatusWarnings
	case noticed:
		return StatusNoticed
	default:
		return StatusNone
	}
}
