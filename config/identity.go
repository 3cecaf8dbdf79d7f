package config

import (
	"fmt"
	"os/user"
	"strconv"
)

// Lookup resolves the identity to numeric ids. An unknown account is an
// error the caller should treat as fatal before dropping privileges.
func (id Identity) Lookup() (uid, gid int, err error) {
	u, err := user.Lookup(id.User)
	if err != nil {
		return -1, -1, fmt.Errorf("lookup user %q: %w", id.User, err)
	}
	g, err := user.LookupGroup(id.Group)
	if err != nil {
		return -1, -1, fmt.Errorf("lookup group %q: %w", id.Group, err)
	}
	if uid, err = strconv.Atoi(u.Uid); err != nil {
		return -1, -1, fmt.Errorf("parse uid %q: %w", u.Uid, err)
	}
	if gid, err = strconv.Atoi(g.Gid); err != nil {
		return -1, -1, fmt.Errorf("parse gid %q: %w", g.Gid, err)
	}
	return uid, gid, nil
}
