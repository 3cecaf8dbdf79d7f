package theme

import "errors"

// SlotCap is the byte capacity of a ColorSlot, room for "#RRGGBB" plus the
// terminator the X side expects. Content is therefore at most SlotCap-1 bytes.
const SlotCap = 8

var (
	ErrTooLong      = errors.New("color exceeds slot capacity")
	ErrInvalidColor = errors.New("not a #RGB or #RRGGBB color")
)

// Role names the lock state a color is painted for.
type Role int

const (
	RoleInit     Role = iota // before the first key press
	RoleFailed               // wrong password
	RoleInput                // typing
	RoleCapsLock             // caps lock indicator
	numRoles
)

func (r Role) String() string {
	switch r {
	case RoleInit:
		return "init"
	case RoleFailed:
		return "input-wrong"
	case RoleInput:
		return "input-typing"
	case RoleCapsLock:
		return "capslock"
	default:
		return "unknown"
	}
}

// Roles returns every role in slot order.
func Roles() []Role {
	return []Role{RoleInit, RoleFailed, RoleInput, RoleCapsLock}
}

var defaults = [numRoles]string{
	RoleInit:     "#1a1b26",
	RoleFailed:   "#ff6b6b",
	RoleInput:    "#7aa2f7",
	RoleCapsLock: "#1a1b26",
}

// DefaultColor returns the compiled-in color for role, or "" for an unknown role.
func DefaultColor(r Role) string {
	if r < 0 || r >= numRoles {
		return ""
	}
	return defaults[r]
}

// ColorSlot is a fixed-capacity buffer holding one color specification.
// The zero value is empty; use NewSlot to start from a default.
type ColorSlot struct {
	buf [SlotCap]byte
	n   int
}

func NewSlot(color string) *ColorSlot {
	s := &ColorSlot{}
	s.n = copy(s.buf[:SlotCap-1], color)
	return s
}

// Set overwrites the slot. Values that do not fit or are not colors leave the
// slot untouched.
func (s *ColorSlot) Set(color string) error {
	if len(color) > SlotCap-1 {
		return ErrTooLong
	}
	if !ValidColor(color) {
		return ErrInvalidColor
	}
	s.n = copy(s.buf[:], color)
	return nil
}

func (s *ColorSlot) String() string { return string(s.buf[:s.n]) }

// ValidColor reports whether c is '#' followed by 3 or 6 hex digits.
func ValidColor(c string) bool {
	if len(c) != 4 && len(c) != 7 {
		return false
	}
	if c[0] != '#' {
		return false
	}
	for i := 1; i < len(c); i++ {
		if !isHex(c[i]) {
			return false
		}
	}
	return true
}

func isHex(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// Palette is a resolved, read-only set of lock colors.
type Palette struct {
	Init     string `json:"init"`
	Failed   string `json:"input_wrong"`
	Input    string `json:"input_typing"`
	CapsLock string `json:"capslock"`
}

// DefaultPalette holds the compiled-in colors.
var DefaultPalette = Palette{
	Init:     defaults[RoleInit],
	Failed:   defaults[RoleFailed],
	Input:    defaults[RoleInput],
	CapsLock: defaults[RoleCapsLock],
}

// ColorFor returns the resolved color painted for role; false for a role
// outside the four lock states.
func (p Palette) ColorFor(r Role) (string, bool) {
	switch r {
	case RoleInit:
		return p.Init, true
	case RoleFailed:
		return p.Failed, true
	case RoleInput:
		return p.Input, true
	case RoleCapsLock:
		return p.CapsLock, true
	default:
		return "", false
	}
}
