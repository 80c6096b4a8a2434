package manifest

import (
	"path/filepath"

	"github.com/arthur-debert/linkany/pkg/errors"
	"github.com/arthur-debert/linkany/pkg/types"
	"github.com/mitchellh/go-homedir"
)

// Resolved is an entry with absolute paths and defaults applied
type Resolved struct {
	Key    string
	Source string
	Target string
	Kind   types.LinkKind
	Atomic bool
}

// BaseDir returns the directory relative entry paths resolve against
func BaseDir(manifestPath string) (string, error) {
	abs, err := filepath.Abs(manifestPath)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "invalid manifest path %s", manifestPath)
	}
	return filepath.Dir(abs), nil
}

// ResolvePath expands a leading ~ and makes p absolute against baseDir
func ResolvePath(baseDir, p string) (string, error) {
	if p == "" {
		return "", nil
	}
	expanded, err := homedir.Expand(p)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "cannot expand %s", p)
	}
	if filepath.IsAbs(expanded) {
		return filepath.Clean(expanded), nil
	}
	return filepath.Join(baseDir, expanded), nil
}

// Resolve applies ResolvePath to both ends of e
func (e InstallEntry) Resolve(baseDir string) (Resolved, error) {
	source, err := ResolvePath(baseDir, e.Source)
	if err != nil {
		return Resolved{}, err
	}
	target, err := ResolvePath(baseDir, e.Target)
	if err != nil {
		return Resolved{}, err
	}
	if err := ValidatePaths(source, target); err != nil {
		return Resolved{}, err
	}
	return Resolved{
		Key:    e.Key(),
		Source: source,
		Target: target,
		Kind:   e.Kind,
		Atomic: e.IsAtomic(),
	}, nil
}

// ResolveAll resolves every entry in manifest order
func (m *Manifest) ResolveAll(baseDir string) ([]Resolved, error) {
	out := make([]Resolved, 0, len(m.Installs))
	for _, e := range m.Installs {
		r, err := e.Resolve(baseDir)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
