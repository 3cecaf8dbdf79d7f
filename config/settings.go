package config

import (
	"encoding/json"

	"slockconf/theme"
)

// Settings is the frozen view of a Table handed to the rendering and input
// paths. It is a value and safe to share between goroutines.
type Settings struct {
	identity    Identity
	palette     theme.Palette
	failOnClear bool
}

func (s Settings) Identity() Identity     { return s.identity }
func (s Settings) Palette() theme.Palette { return s.palette }
func (s Settings) FailOnClear() bool      { return s.failOnClear }

// Color returns the resolved color for role, "" for an unknown role.
func (s Settings) Color(r theme.Role) string {
	c, _ := s.palette.ColorFor(r)
	return c
}

// ClearColor is the color shown when the typed input is cleared.
func (s Settings) ClearColor() string {
	if s.failOnClear {
		return s.palette.Failed
	}
	return s.palette.Init
}

func (s Settings) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Identity    Identity      `json:"identity"`
		Colors      theme.Palette `json:"colors"`
		FailOnClear bool          `json:"failonclear"`
	}{s.identity, s.palette, s.failOnClear})
}
