package annotations

import "fmt"

// Family groups annotation types that rules treat alike
type Family int

const (
	UnknownFamily Family = iota
	NullabilityFamily
	ThreadingFamily
	EnumDefFamily
	DeprecatedFamily
)

// String returns the string representation of the family
func (f Family) String() string {
	switch f {
	case NullabilityFamily:
		return "nullability"
	case ThreadingFamily:
		return "threading"
	case EnumDefFamily:
		return "enum_def"
	case DeprecatedFamily:
		return "deprecated"
	default:
		return "unknown"
	}
}

// ParseFamily converts a configuration key to a Family
func ParseFamily(s string) (Family, error) {
	switch s {
	case "nullability":
		return NullabilityFamily, nil
	case "threading":
		return ThreadingFamily, nil
	case "enum_def":
		return EnumDefFamily, nil
	case "deprecated":
		return DeprecatedFamily, nil
	default:
		return UnknownFamily, fmt.Errorf("unknown annotation family: %s", s)
	}
}

// Argument is one key=value pair of an annotation usage. Positional
// arguments are stored under the key "value".
type Argument struct {
	Key   string
	Value string
}

// Syntax is the parsed text of an annotation usage
type Syntax struct {
	Name      string // annotation type name as written, without '@'
	Arguments []Argument
}

// Get returns the value of a named argument
func (s *Syntax) Get(key string) (string, bool) {
	for _, a := range s.Arguments {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}
