package config

// Kind is the value type a preference binding expects.
type Kind int

const (
	KindUnknown Kind = iota
	KindString
	KindInteger
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	default:
		return "unknown"
	}
}

// KindOf classifies a decoded preference value. TOML yields int64 and
// float64, YAML yields int and float64.
func KindOf(v any) Kind {
	switch v.(type) {
	case string:
		return KindString
	case int, int64:
		return KindInteger
	case float64:
		return KindFloat
	default:
		return KindUnknown
	}
}
