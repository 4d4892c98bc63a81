// Package mapping loads the GitHub username to Discord user ID table.
package mapping

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disgoorg/snowflake/v2"
	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v2"

	"github.com/Ahmed-Tahan7/TestDiscord/internal/log"
	"github.com/Ahmed-Tahan7/TestDiscord/internal/rolesync/errors"
)

// Resolver resolves a GitHub username to a Discord user ID.
// Returns the ID and true if a mapping exists, or empty string and false if not.
type Resolver interface {
	Resolve(username string) (string, bool)
}

// Format is the on-disk encoding of a mapping file
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFor picks the encoding from the file extension. Anything that is not
// .yaml or .yml is JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Table is an in-memory mapping. It is not safe for concurrent mutation.
type Table struct {
	entries map[string]string
}

// New builds a table from entries. The map is copied.
func New(entries map[string]string) *Table {
	t := &Table{entries: make(map[string]string, len(entries))}
	for k, v := range entries {
		t.entries[k] = v
	}
	return t
}

// Load reads and parses the mapping file at path
func Load(path string) (*Table, error) {
	//nolint:gosec // G304: mapping path is supplied by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrMappingNotFound, "%s", path)
		}
		return nil, errors.Wrapf(err, "failed to read mapping file %s", path)
	}

	t, err := Parse(data, FormatFor(path))
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}

	log.Debug("Loaded %d mapping(s) from %s", t.Len(), path)
	return t, nil
}

// Parse decodes a mapping document
func Parse(data []byte, format Format) (*Table, error) {
	switch format {
	case FormatYAML:
		entries := map[string]string{}
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("%w: %v", errors.ErrMappingInvalid, err)
		}
		return New(entries), nil
	default:
		return parseJSON(data)
	}
}

// parseJSON accepts string values and integer values, since IDs are sometimes
// pasted into the file unquoted.
func parseJSON(data []byte) (*Table, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrMappingInvalid, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: expected a JSON object", errors.ErrMappingInvalid)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("%w: unexpected data after the JSON object", errors.ErrMappingInvalid)
	}

	entries := make(map[string]string, len(raw))
	for user, v := range raw {
		switch id := v.(type) {
		case string:
			entries[user] = id
		case json.Number:
			if _, err := id.Int64(); err != nil {
				return nil, fmt.Errorf("%w: value for %q is not an integer: %s", errors.ErrMappingInvalid, user, id)
			}
			entries[user] = id.String()
		default:
			return nil, fmt.Errorf("%w: value for %q must be a string, got %T", errors.ErrMappingInvalid, user, v)
		}
	}
	return &Table{entries: entries}, nil
}

// Resolve implements Resolver with an exact, case-sensitive key lookup
func (t *Table) Resolve(username string) (string, bool) {
	id, ok := t.entries[username]
	return id, ok
}

// Len returns the number of entries
func (t *Table) Len() int {
	return len(t.entries)
}

// Users returns the mapped GitHub usernames in sorted order
func (t *Table) Users() []string {
	users := make([]string, 0, len(t.entries))
	for u := range t.entries {
		users = append(users, u)
	}
	sort.Strings(users)
	return users
}

// Problems lists every entry with an empty username or a value that is not
// a Discord snowflake.
func (t *Table) Problems() []string {
	var problems []string
	for _, user := range t.Users() {
		if strings.TrimSpace(user) == "" {
			problems = append(problems, "empty GitHub username")
			continue
		}
		id := t.entries[user]
		if sf, err := snowflake.Parse(id); err != nil || sf == 0 {
			problems = append(problems, fmt.Sprintf("%s: %q is not a Discord user ID", user, id))
		}
	}

	return problems
}

// Validate joins Problems into a single ErrMappingInvalid
func (t *Table) Validate() error {
	if problems := t.Problems(); len(problems) > 0 {
		return errors.Wrapf(errors.ErrMappingInvalid, "%s", strings.Join(problems, "; "))
	}
	return nil
}

// Set maps user to id and reports whether the table changed
func (t *Table) Set(user, id string) bool {
	if old, ok := t.entries[user]; ok && old == id {
		return false
	}
	t.entries[user] = id
	return true
}

// Equal reports whether both tables hold the same entries
func (t *Table) Equal(other *Table) bool {
	if other == nil {
		return false
	}
	return cmp.Equal(t.entries, other.entries)
}

// Marshal encodes the table. Keys are written in sorted order.
func (t *Table) Marshal(format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(t.entries)
	default:
		b, err := json.MarshalIndent(t.entries, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	}
}

// Save writes the table to path unless the file already holds the same
// entries. It reports whether the file was written.
func (t *Table) Save(path string) (bool, error) {
	if existing, err := Load(path); err == nil && t.Equal(existing) {
		log.Debug("Mapping file %s unchanged, not rewriting", path)
		return false, nil
	}

	data, err := t.Marshal(FormatFor(path))
	if err != nil {
		return false, errors.Wrap(err, "failed to encode mapping")
	}

	//nolint:gosec // G306: mapping file is committed to the repository and meant to be readable
	if err := os.WriteFile(path, data, 0644); err != nil {
		return false, errors.Wrapf(err, "failed to write mapping file %s", path)
	}
	return true, nil
}
