// Package permission holds the menu-key catalog and the per-role access rules
// of a workspace.
package permission

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

//go:embed catalog.json
var embeddedCatalog []byte

type Role string

const (
	RoleOwner   Role = "owner"
	RoleManager Role = "manager"
	RoleMember  Role = "member"
)

// ParseRole accepts the three workspace roles, case-insensitively.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleOwner:
		return RoleOwner, true
	case RoleManager:
		return RoleManager, true
	case RoleMember:
		return RoleMember, true
	}
	return "", false
}

// EditableRoles are the roles whose permission lists can be changed.
func EditableRoles() []Role {
	return []Role{RoleManager, RoleMember}
}

func IsEditable(r Role) bool {
	return r == RoleManager || r == RoleMember
}

type Menu struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Set is the per-role permission map stored on a workspace.
type Set struct {
	Owner   []string `json:"owner"`
	Manager []string `json:"manager"`
	Member  []string `json:"member"`
}

func (s Set) For(r Role) []string {
	switch r {
	case RoleOwner:
		return s.Owner
	case RoleManager:
		return s.Manager
	case RoleMember:
		return s.Member
	}
	return nil
}

// Catalog is built once at startup and never mutated afterwards.
type Catalog struct {
	menus    []Menu
	keys     []string
	known    map[string]struct{}
	defaults Set
}

type catalogFile struct {
	Menus    []Menu `json:"menus"`
	Defaults struct {
		Manager []string `json:"manager"`
		Member  []string `json:"member"`
	} `json:"defaults"`
}

// Load reads the catalog from path, or the embedded catalog when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(embeddedCatalog)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("permission catalog: %w", err)
	}
	return Parse(data)
}

// MustDefault returns the embedded catalog and panics if it is malformed.
func MustDefault() *Catalog {
	c, err := Parse(embeddedCatalog)
	if err != nil {
		panic(err)
	}
	return c
}

func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("permission catalog: %w", err)
	}
	if len(f.Menus) == 0 {
		return nil, errors.New("permission catalog: no menus defined")
	}

	c := &Catalog{known: make(map[string]struct{}, len(f.Menus))}
	for _, m := range f.Menus {
		key := strings.TrimSpace(m.Key)
		if key == "" {
			return nil, errors.New("permission catalog: empty menu key")
		}
		if _, dup := c.known[key]; dup {
			return nil, fmt.Errorf("permission catalog: duplicate menu key %q", key)
		}
		c.known[key] = struct{}{}
		c.keys = append(c.keys, key)
		c.menus = append(c.menus, Menu{Key: key, Label: m.Label})
	}

	c.defaults = Set{
		Owner:   c.Keys(),
		Manager: c.Filter(f.Defaults.Manager),
		Member:  c.Filter(f.Defaults.Member),
	}
	return c, nil
}

func (c *Catalog) Menus() []Menu {
	out := make([]Menu, len(c.menus))
	copy(out, c.menus)
	return out
}

// Keys returns the full ordered key list.
func (c *Catalog) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

func (c *Catalog) Has(key string) bool {
	_, ok := c.known[key]
	return ok
}

func (c *Catalog) Defaults() Set {
	return Set{
		Owner:   c.Keys(),
		Manager: append([]string{}, c.defaults.Manager...),
		Member:  append([]string{}, c.defaults.Member...),
	}
}

// Filter keeps known keys only, de-duplicated, in first-seen order.
func (c *Catalog) Filter(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if !c.Has(k) {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// Normalize forces the owner list to the full catalog and filters the
// editable roles. A role list that was never set (nil) takes the default.
func (c *Catalog) Normalize(raw Set) Set {
	out := Set{Owner: c.Keys()}

	if raw.Manager == nil {
		out.Manager = append([]string{}, c.defaults.Manager...)
	} else {
		out.Manager = c.Filter(raw.Manager)
	}

	if raw.Member == nil {
		out.Member = append([]string{}, c.defaults.Member...)
	} else {
		out.Member = c.Filter(raw.Member)
	}

	return out
}

// CanAccess reports whether role may open the menu key under perms.
func CanAccess(role Role, perms Set, key string) bool {
	if role == RoleOwner {
		return true
	}
	for _, k := range perms.For(role) {
		if k == key {
			return true
		}
	}
	return false
}
