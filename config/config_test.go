package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"slockconf/theme"
)

type TableSuite struct {
	suite.Suite
	tbl *Table
}

func TestTableSuite(t *testing.T) {
	suite.Run(t, new(TableSuite))
}

func (s *TableSuite) SetupTest() {
	s.tbl = Defaults()
}

func (s *TableSuite) TestDefaults() {
	s.Equal(Identity{User: "nobody", Group: "nogroup"}, s.tbl.Identity())
	s.NotEmpty(s.tbl.Identity().User)
	s.NotEmpty(s.tbl.Identity().Group)
	for _, r := range theme.Roles() {
		s.Equal(theme.DefaultColor(r), s.tbl.Color(r))
	}
	s.True(s.tbl.FailOnClear())
}

func (s *TableSuite) TestBindingsOrder() {
	b := s.tbl.Bindings()
	s.Require().Len(b, 4)
	for i, want := range []string{"color0", "color1", "color2", "color3"} {
		s.Equal(want, b[i].Key)
		s.Equal(KindString, b[i].Kind)
	}
	s.Same(b[1].Slot, s.tbl.slots[theme.RoleFailed])
}

func (s *TableSuite) TestResolveOverridesThenKeeps() {
	rep, err := s.tbl.Resolve(MapSource{"color1": "#00ff00"})
	s.Require().NoError(err)
	s.Equal([]string{"color1"}, rep.Applied)
	s.Equal("#00ff00", s.tbl.Color(theme.RoleFailed))

	rep, err = s.tbl.Resolve(MapSource{})
	s.Require().NoError(err)
	s.Empty(rep.Applied)
	s.Equal("#00ff00", s.tbl.Color(theme.RoleFailed))
	s.Equal("#1a1b26", s.tbl.Color(theme.RoleInit))
}

func (s *TableSuite) TestResolveIsIdempotent() {
	src := MapSource{"color0": "#000000", "color3": "#ffcc00", "color2": "nope"}
	_, err := s.tbl.Resolve(src)
	s.Require().NoError(err)
	once := s.tbl.Finalize().Palette()

	again := Defaults()
	_, err = again.Resolve(src)
	s.Require().NoError(err)
	_, err = again.Resolve(src)
	s.Require().NoError(err)
	s.Equal(once, again.Finalize().Palette())
}

func (s *TableSuite) TestResolveRejections() {
	rep, err := s.tbl.Resolve(MapSource{
		"color0": int64(5),
		"color1": "#00ff00ff",
		"color2": "blue",
		"color3": "#123",
	})
	s.Require().NoError(err)
	s.Equal([]string{"color3"}, rep.Applied)
	s.Require().Len(rep.Rejected, 3)
	s.ErrorIs(rep.Rejected[0].Err, ErrKindMismatch)
	s.ErrorIs(rep.Rejected[1].Err, theme.ErrTooLong)
	s.ErrorIs(rep.Rejected[2].Err, theme.ErrInvalidColor)
	s.Contains(rep.Rejected[0].Error(), "color0")

	s.Equal(theme.DefaultColor(theme.RoleInit), s.tbl.Color(theme.RoleInit))
	s.Equal(theme.DefaultColor(theme.RoleFailed), s.tbl.Color(theme.RoleFailed))
	s.Equal(theme.DefaultColor(theme.RoleInput), s.tbl.Color(theme.RoleInput))
	s.Equal("#123", s.tbl.Color(theme.RoleCapsLock))
}

func (s *TableSuite) TestPolicyIsOverrideImmune() {
	_, err := s.tbl.Resolve(MapSource{"failonclear": int64(0), "user": "root"})
	s.Require().NoError(err)
	set := s.tbl.Finalize()
	s.True(set.FailOnClear())
	s.Equal(DefaultIdentity, set.Identity())
}

func (s *TableSuite) TestFinalizeFreezes() {
	set := s.tbl.Finalize()
	rep, err := s.tbl.Resolve(MapSource{"color1": "#00ff00"})
	s.ErrorIs(err, ErrFinalized)
	s.Empty(rep.Applied)
	s.Equal("#ff6b6b", s.tbl.Color(theme.RoleFailed))
	s.Equal("#ff6b6b", set.Color(theme.RoleFailed))
}

func (s *TableSuite) TestResolveAllLaterWins() {
	rep, err := s.tbl.ResolveAll(
		MapSource{"color0": "#111111", "color2": "#222222"},
		MapSource{"color0": "#333333"},
	)
	s.Require().NoError(err)
	s.Len(rep.Applied, 3)
	s.Equal("#333333", s.tbl.Color(theme.RoleInit))
	s.Equal("#222222", s.tbl.Color(theme.RoleInput))
}

func (s *TableSuite) TestClearColor() {
	set := s.tbl.Finalize()
	s.Equal(set.Color(theme.RoleFailed), set.ClearColor())

	off := Settings{palette: theme.DefaultPalette}
	s.Equal(theme.DefaultPalette.Init, off.ClearColor())
}

func (s *TableSuite) TestSettingsJSON() {
	data, err := json.Marshal(s.tbl.Finalize())
	s.Require().NoError(err)
	var got map[string]any
	s.Require().NoError(json.Unmarshal(data, &got))
	s.Equal(true, got["failonclear"])
	s.Equal("nobody", got["identity"].(map[string]any)["user"])
	s.Equal("#ff6b6b", got["colors"].(map[string]any)["input_wrong"])
}

func (s *TableSuite) TestLoadExplicitFile() {
	path := filepath.Join(s.T().TempDir(), "slock.toml")
	s.Require().NoError(os.WriteFile(path, []byte("color2 = \"#abcdef\"\n"), 0o644))

	tbl, rep, err := Load(path)
	s.Require().NoError(err)
	s.Equal([]string{"color2"}, rep.Applied)
	s.Equal("#abcdef", tbl.Color(theme.RoleInput))
}

func (s *TableSuite) TestLoadSearchPath() {
	xdg := s.T().TempDir()
	s.T().Setenv("XDG_CONFIG_HOME", xdg)
	s.T().Setenv("HOME", s.T().TempDir())
	dir := filepath.Join(xdg, "slock")
	s.Require().NoError(os.MkdirAll(dir, 0o755))
	s.Require().NoError(os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("slock:\n  color3: \"#00aa00\"\n"), 0o644))

	tbl, _, err := Load("")
	s.Require().NoError(err)
	s.Equal("#00aa00", tbl.Color(theme.RoleCapsLock))
}

func (s *TableSuite) TestLoadMissingYieldsDefaults() {
	s.T().Setenv("XDG_CONFIG_HOME", s.T().TempDir())
	s.T().Setenv("HOME", s.T().TempDir())

	tbl, _, err := Load("")
	s.ErrorIs(err, ErrNoConfig)
	s.Equal("#ff6b6b", tbl.Color(theme.RoleFailed))

	tbl, _, err = Load(filepath.Join(s.T().TempDir(), "absent.toml"))
	s.Error(err)
	s.Equal("#ff6b6b", tbl.Color(theme.RoleFailed))
}

func (s *TableSuite) TestLoadParseErrorYieldsDefaults() {
	path := filepath.Join(s.T().TempDir(), "bad.toml")
	s.Require().NoError(os.WriteFile(path, []byte("color1 = \n"), 0o644))

	tbl, _, err := Load(path)
	s.Error(err)
	s.Contains(err.Error(), "parse config")
	s.Equal("#ff6b6b", tbl.Color(theme.RoleFailed))
}

func (s *TableSuite) TestLoadOverridesWinOverFile() {
	path := filepath.Join(s.T().TempDir(), "slock.toml")
	s.Require().NoError(os.WriteFile(path, []byte("color0 = \"#111111\"\ncolor2 = \"#222222\"\n"), 0o644))

	tbl, rep, err := Load(path, MapSource{"color0": "#333333"})
	s.Require().NoError(err)
	s.Equal([]string{"color0", "color2", "color0"}, rep.Applied)
	s.Equal("#333333", tbl.Color(theme.RoleInit))
	s.Equal("#222222", tbl.Color(theme.RoleInput))
}

func (s *TableSuite) TestLoadMissingFileStillAppliesOverrides() {
	s.T().Setenv("XDG_CONFIG_HOME", s.T().TempDir())
	s.T().Setenv("HOME", s.T().TempDir())

	tbl, rep, err := Load("", MapSource{"color1": "#00ff00"})
	s.ErrorIs(err, ErrNoConfig)
	s.Equal([]string{"color1"}, rep.Applied)
	s.Equal("#00ff00", tbl.Color(theme.RoleFailed))
}

func (s *TableSuite) TestUnquotedYAMLColorIsReported() {
	path := filepath.Join(s.T().TempDir(), "config.yaml")
	s.Require().NoError(os.WriteFile(path, []byte("color1: #00ff00\n"), 0o644))

	tbl, rep, err := Load(path)
	s.Require().NoError(err)
	s.Require().Len(rep.Rejected, 1)
	s.Equal("color1", rep.Rejected[0].Key)
	s.ErrorIs(rep.Rejected[0].Err, ErrNoValue)
	s.Contains(rep.Rejected[0].Error(), "quote")
	s.Equal("#ff6b6b", tbl.Color(theme.RoleFailed))
}
