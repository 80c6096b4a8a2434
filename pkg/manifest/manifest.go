package manifest

import (
	"github.com/arthur-debert/linkany/pkg/errors"
	"github.com/arthur-debert/linkany/pkg/types"
)

// Version is the only manifest version this package understands
const Version = 1

// InstallEntry is one declared mapping
type InstallEntry struct {
	ID     string         `mapstructure:"id" yaml:"id,omitempty"`
	Source string         `mapstructure:"source" yaml:"source" validate:"required"`
	Target string         `mapstructure:"target" yaml:"target" validate:"required"`
	Kind   types.LinkKind `mapstructure:"kind" yaml:"kind,omitempty" validate:"omitempty,oneof=file dir"`
	// Atomic is nil when the manifest leaves it unset; see IsAtomic
	Atomic *bool `mapstructure:"atomic" yaml:"atomic,omitempty"`

	Extra map[string]interface{} `mapstructure:",remain" yaml:",inline"`
}

// Key returns the entry's identity within a manifest
func (e InstallEntry) Key() string {
	if e.ID != "" {
		return e.ID
	}
	return e.Target
}

// IsAtomic reports whether the entry uses temp-then-rename. Defaults to true.
func (e InstallEntry) IsAtomic() bool {
	return e.Atomic == nil || *e.Atomic
}

// merge overlays the fields set on other onto e
func (e InstallEntry) merge(other InstallEntry) InstallEntry {
	if other.ID != "" {
		e.ID = other.ID
	}
	if other.Source != "" {
		e.Source = other.Source
	}
	if other.Target != "" {
		e.Target = other.Target
	}
	if other.Kind != "" {
		e.Kind = other.Kind
	}
	if other.Atomic != nil {
		atomic := *other.Atomic
		e.Atomic = &atomic
	}
	if len(other.Extra) > 0 {
		extra := make(map[string]interface{}, len(e.Extra)+len(other.Extra))
		for k, v := range e.Extra {
			extra[k] = v
		}
		for k, v := range other.Extra {
			extra[k] = v
		}
		e.Extra = extra
	}
	return e
}

// Manifest is the declared set of mappings
type Manifest struct {
	Version  int            `yaml:"version"`
	Installs []InstallEntry `yaml:"installs" validate:"dive"`

	Extra map[string]interface{} `yaml:",inline"`
}

// New returns an empty version 1 manifest
func New() *Manifest {
	return &Manifest{Version: Version, Installs: []InstallEntry{}}
}

// UpsertResult tells whether Upsert added or updated an entry
type UpsertResult struct {
	Key     string
	Created bool
	Updated bool
}

// Upsert adds entry, or merges it into the existing entry with the same key
func (m *Manifest) Upsert(entry InstallEntry) (UpsertResult, error) {
	key := entry.Key()
	if key == "" {
		return UpsertResult{}, errors.New(errors.ErrInvalidInput, `Entry must have "target" (or "id")`)
	}

	for i := range m.Installs {
		if m.Installs[i].Key() == key {
			m.Installs[i] = m.Installs[i].merge(entry)
			return UpsertResult{Key: key, Updated: true}, nil
		}
	}

	m.Installs = append(m.Installs, entry)
	return UpsertResult{Key: key, Created: true}, nil
}

// Find returns the index of the entry whose key or target equals key, or -1
func (m *Manifest) Find(key string) int {
	if key == "" {
		return -1
	}
	for i, e := range m.Installs {
		if e.Key() == key || e.Target == key {
			return i
		}
	}
	return -1
}

// Remove deletes the entry found by key and reports whether one existed
func (m *Manifest) Remove(key string) bool {
	i := m.Find(key)
	if i < 0 {
		return false
	}
	m.Installs = append(m.Installs[:i], m.Installs[i+1:]...)
	return true
}

// Clone returns a deep enough copy that edits to the clone's entry list do
// not show through to m.
func (m *Manifest) Clone() *Manifest {
	out := &Manifest{
		Version:  m.Version,
		Installs: make([]InstallEntry, len(m.Installs)),
		Extra:    m.Extra,
	}
	copy(out.Installs, m.Installs)
	return out
}
