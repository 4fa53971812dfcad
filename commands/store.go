package commands

import (
	"io/ioutil"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// A Side is one of the two networks the bridge connects.
type Side string

// The two sides of the bridge.
const (
	Discord Side = "discord"
	IRC     Side = "irc"
)

// Title returns the display name of the side, as used in command preludes.
func (s Side) Title() string {
	switch s {
	case Discord:
		return "Discord"
	case IRC:
		return "IRC"
	}
	return string(s)
}

// ParseSide parses "irc" or "discord", case-insensitively.
func ParseSide(s string) (Side, bool) {
	switch Side(strings.ToLower(s)) {
	case Discord:
		return Discord, true
	case IRC:
		return IRC, true
	}
	return "", false
}

// Lists is the on-disk form of the Store.
type Lists struct {
	Admins  []string          `yaml:"admin"`
	Ignored map[Side][]string `yaml:"ignore"`
}

// A Store holds the admin and ignore lists, optionally backed by a YAML file.
//
// Names are compared case-insensitively. A Store is not safe for concurrent use.
type Store struct {
	path  string
	lists Lists
}

// NewStore returns an empty in-memory store, seeded with admins.
func NewStore(admins ...string) *Store {
	s := &Store{lists: Lists{Ignored: make(map[Side][]string)}}
	for _, a := range admins {
		s.lists.Admins = add(s.lists.Admins, a)
	}
	return s
}

// Load reads the store at path. A missing file gives an empty store that
// will be created on the first Save. An empty path gives an in-memory store.
func Load(path string) (*Store, error) {
	s := NewStore()
	s.path = path
	if path == "" {
		return s, nil
	}

	data, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	} else if err != nil {
		return nil, errors.Wrap(err, "could not read lists file")
	}

	if err := yaml.Unmarshal(data, &s.lists); err != nil {
		return nil, errors.Wrapf(err, "could not parse lists file %s", path)
	}
	if s.lists.Ignored == nil {
		s.lists.Ignored = make(map[Side][]string)
	}

	return s, nil
}

// Save writes the store back to its file. It is a no-op for in-memory stores.
func (s *Store) Save() error {
	if s.path == "" {
		return nil
	}

	data, err := yaml.Marshal(&s.lists)
	if err != nil {
		return errors.Wrap(err, "could not encode lists")
	}

	if err := ioutil.WriteFile(s.path, data, 0644); err != nil {
		return errors.Wrap(err, "could not write lists file")
	}
	return nil
}

// Admins returns the sorted admin list.
func (s *Store) Admins() []string {
	return sorted(s.lists.Admins)
}

// IsAdmin reports whether any of names is an admin.
func (s *Store) IsAdmin(names ...string) bool {
	return containsAny(s.lists.Admins, names)
}

// AddAdmin adds name to the admin list.
func (s *Store) AddAdmin(name string) {
	s.lists.Admins = add(s.lists.Admins, name)
}

// RemoveAdmin removes name from the admin list.
func (s *Store) RemoveAdmin(name string) {
	s.lists.Admins = remove(s.lists.Admins, name)
}

// Ignored returns the sorted ignore list for a side.
func (s *Store) Ignored(side Side) []string {
	return sorted(s.lists.Ignored[side])
}

// IsIgnored reports whether any of names is ignored on side.
func (s *Store) IsIgnored(side Side, names ...string) bool {
	return containsAny(s.lists.Ignored[side], names)
}

// Ignore adds name to the ignore list of side.
func (s *Store) Ignore(side Side, name string) {
	s.lists.Ignored[side] = add(s.lists.Ignored[side], name)
}

// Unignore removes name from the ignore list of side.
func (s *Store) Unignore(side Side, name string) {
	s.lists.Ignored[side] = remove(s.lists.Ignored[side], name)
}

func index(list []string, name string) int {
	for i, item := range list {
		if strings.EqualFold(item, name) {
			return i
		}
	}
	return -1
}

func containsAny(list []string, names []string) bool {
	for _, name := range names {
		if name != "" && index(list, name) != -1 {
			return true
		}
	}
	return false
}

func add(list []string, name string) []string {
	if name == "" || index(list, name) != -1 {
		return list
	}
	return append(list, name)
}

func remove(list []string, name string) []string {
	if i := index(list, name); i != -1 {
		return append(list[:i:i], list[i+1:]...)
	}
	return list
}

func sorted(list []string) []string {
	out := append([]string(nil), list...)
	sort.Strings(out)
	return out
}
