package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"slockconf/theme"
)

// FailOnClear treats a cleared input like a wrong password (color).
// No preference key is bound to it.
const FailOnClear = 1

// Identity is the account the locker drops privileges to.
type Identity struct {
	User  string `json:"user"`
	Group string `json:"group"`
}

// DefaultIdentity is compiled in and not configurable at runtime.
var DefaultIdentity = Identity{User: "nobody", Group: "nogroup"}

var (
	ErrFinalized    = errors.New("config table already finalized")
	ErrKindMismatch = errors.New("preference value has the wrong kind")
	ErrNoConfig     = errors.New("no config file found; using defaults")
	ErrNoValue      = errors.New(`preference key has no value (in YAML, quote colors: "#rrggbb", or '#' starts a comment)`)
)

// Binding ties a preference key to the slot it overrides.
type Binding struct {
	Key  string
	Kind Kind
	Slot *theme.ColorSlot
}

// Table holds the compiled defaults and the preference bindings that may
// overwrite them until Finalize is called.
type Table struct {
	identity  Identity
	slots     [4]*theme.ColorSlot
	bindings  []Binding
	finalized bool
}

func Defaults() *Table {
	t := &Table{identity: DefaultIdentity}
	for i, r := range theme.Roles() {
		t.slots[i] = theme.NewSlot(theme.DefaultColor(r))
	}
	t.bindings = []Binding{
		{Key: "color0", Kind: KindString, Slot: t.slots[theme.RoleInit]},
		{Key: "color1", Kind: KindString, Slot: t.slots[theme.RoleFailed]},
		{Key: "color2", Kind: KindString, Slot: t.slots[theme.RoleInput]},
		{Key: "color3", Kind: KindString, Slot: t.slots[theme.RoleCapsLock]},
	}
	return t
}

func (t *Table) Identity() Identity { return t.identity }

// Color returns the current content of the slot for role.
func (t *Table) Color(r theme.Role) string {
	if r < 0 || int(r) >= len(t.slots) {
		return ""
	}
	return t.slots[r].String()
}

// Bindings returns a copy of the preference bindings in declaration order.
func (t *Table) Bindings() []Binding {
	out := make([]Binding, len(t.bindings))
	copy(out, t.bindings)
	return out
}

func (t *Table) FailOnClear() bool { return FailOnClear != 0 }

// Rejection records a preference value that was present but not applied.
type Rejection struct {
	Key string
	Err error
}

func (r Rejection) Error() string { return fmt.Sprintf("%s: %v", r.Key, r.Err) }

// Report lists what a Resolve call applied and rejected.
type Report struct {
	Applied  []string
	Rejected []Rejection
}

func (r *Report) merge(o Report) {
	r.Applied = append(r.Applied, o.Applied...)
	r.Rejected = append(r.Rejected, o.Rejected...)
}

// Resolve overwrites each bound slot whose key src provides with a value of
// the bound kind. Absent keys keep their prior value. Rejected values are
// listed in the report and leave the slot untouched.
func (t *Table) Resolve(src Source) (Report, error) {
	var rep Report
	if t.finalized {
		return rep, ErrFinalized
	}
	if src == nil {
		return rep, nil
	}
	for _, b := range t.bindings {
		v, ok := src.Lookup(b.Key)
		if !ok {
			continue
		}
		if v == nil {
			rep.Rejected = append(rep.Rejected, Rejection{Key: b.Key, Err: ErrNoValue})
			continue
		}
		if k := KindOf(v); k != b.Kind {
			rep.Rejected = append(rep.Rejected, Rejection{
				Key: b.Key,
				Err: fmt.Errorf("%w: want %s, got %s", ErrKindMismatch, b.Kind, k),
			})
			continue
		}
		if err := b.Slot.Set(v.(string)); err != nil {
			rep.Rejected = append(rep.Rejected, Rejection{Key: b.Key, Err: fmt.Errorf("%q: %w", v, err)})
			continue
		}
		rep.Applied = append(rep.Applied, b.Key)
	}
	return rep, nil
}

// Finalize freezes the table and returns its read-only snapshot.
func (t *Table) Finalize() Settings {
	t.finalized = true
	return Settings{
		identity: t.identity,
		palette: theme.Palette{
			Init:     t.Color(theme.RoleInit),
			Failed:   t.Color(theme.RoleFailed),
			Input:    t.Color(theme.RoleInput),
			CapsLock: t.Color(theme.RoleCapsLock),
		},
		failOnClear: t.FailOnClear(),
	}
}

// Load builds the table from its compiled defaults, applies the preference
// file and then each override source, later sources taking precedence. The
// file is path when set, else the first config.{toml,yaml,yml} found under
// the slock config directories. A missing or unreadable file is returned as
// the error while the overrides are still applied; the report lists every
// key applied or rejected across all sources.
func Load(path string, overrides ...Source) (*Table, Report, error) {
	t := Defaults()
	file, ferr := preferenceFile(path)
	rep, err := t.ResolveAll(append([]Source{file}, overrides...)...)
	if err != nil {
		return t, rep, err
	}
	return t, rep, ferr
}

// preferenceFile returns a nil Source when no file could be used.
func preferenceFile(path string) (Source, error) {
	chosen := path
	if chosen == "" {
		for _, p := range searchPaths() {
			if _, err := os.Stat(p); err == nil {
				chosen = p
				break
			}
		}
	}
	if chosen == "" {
		return nil, ErrNoConfig
	}
	src, err := ReadFile(chosen)
	if err != nil {
		return nil, err
	}
	return src, nil
}

// ResolveAll applies sources in order; a later source overrides an earlier one.
func (t *Table) ResolveAll(srcs ...Source) (Report, error) {
	var all Report
	for _, s := range srcs {
		rep, err := t.Resolve(s)
		all.merge(rep)
		if err != nil {
			return all, err
		}
	}
	return all, nil
}

func searchPaths() []string {
	var dirs []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, "slock"))
	}
	if home, _ := os.UserHomeDir(); home != "" {
		dirs = append(dirs, filepath.Join(home, ".config", "slock"))
	}
	var out []string
	for _, d := range dirs {
		for _, name := range []string{"config.toml", "config.yaml", "config.yml"} {
			out = append(out, filepath.Join(d, name))
		}
	}
	return out
}
