package config

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Source supplies optional preference values by key.
type Source interface {
	Lookup(key string) (any, bool)
}

// MapSource is a Source backed by a plain map.
type MapSource map[string]any

func (m MapSource) Lookup(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

// fileSection is the optional table preference files may nest keys under.
const fileSection = "slock"

// ReadFile decodes a TOML or YAML preference file, chosen by extension.
// Keys are read from the top level or from a [slock] table; the table wins.
func ReadFile(path string) (MapSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	raw := map[string]any{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	default:
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	return flatten(raw), nil
}

func flatten(raw map[string]any) MapSource {
	out := MapSource{}
	for k, v := range raw {
		if k == fileSection {
			continue
		}
		out[k] = v
	}
	if sec, ok := raw[fileSection].(map[string]any); ok {
		for k, v := range sec {
			out[k] = v
		}
	}
	return out
}

// XrdbSource holds X resources for one program, keyed without the
// program prefix. Every value is a string.
type XrdbSource map[string]any

// Match ranks for a resource addressing key, highest first. A component
// matched by instance name beats one matched by class, a matched component
// beats a skipped one, and a tight binding beats a loose one.
const (
	rankNone = iota
	rankAnyLoose
	rankClassLoose
	rankClassTight
	rankNameLoose
	rankNameTight
)

// ParseXrdb reads `xrdb -query` output and keeps the resources that apply
// to the program called name with class class: "slock.color0",
// "slock*color0", "Slock.color0", "Slock*color0" and "*color0". When several
// forms set the same key the most specific one wins.
func ParseXrdb(r io.Reader, name, class string) (XrdbSource, error) {
	out := XrdbSource{}
	ranks := map[string]int{}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '!' {
			continue
		}
		res, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key, rank := resourceKey(strings.TrimSpace(res), name, class)
		if rank == rankNone || key == "" {
			continue
		}
		if rank >= ranks[key] {
			ranks[key] = rank
			out[key] = strings.TrimSpace(val)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan resources: %w", err)
	}
	return out, nil
}

func resourceKey(res, name, class string) (string, int) {
	prefixes := []struct {
		p    string
		rank int
	}{
		{name + ".", rankNameTight},
		{name + "*", rankNameLoose},
		{class + ".", rankClassTight},
		{class + "*", rankClassLoose},
		{"*", rankAnyLoose},
	}
	for _, pr := range prefixes {
		if key, ok := strings.CutPrefix(res, pr.p); ok {
			return key, pr.rank
		}
	}
	return "", rankNone
}

// LoadXrdb queries the running X server's resource database.
func LoadXrdb(ctx context.Context, name, class string) (XrdbSource, error) {
	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, "xrdb", "-query")
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("xrdb -query: %w", err)
	}
	return ParseXrdb(&stdout, name, class)
}

func (x XrdbSource) Lookup(key string) (any, bool) {
	v, ok := x[key]
	return v, ok
}
