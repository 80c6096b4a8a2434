package state

import (
	"github.com/arthur-debert/linkany/pkg/logging"
)

// IsDangling reports whether path is a symlink whose referent is missing.
// A missing path or a real object is not dangling.
func (c *Classifier) IsDangling(path string) bool {
	isLink, err := c.IsSymlink(path)
	if err != nil || !isLink {
		return false
	}

	value, err := c.fs.Readlink(path)
	if err != nil {
		return false
	}
	if _, err := c.fs.Stat(path); err == nil {
		return false
	}

	logger := logging.GetLogger("state.dangling")
	logger.Debug().
		Str("link", path).
		Str("points_to", ResolveLink(path, value)).
		Msg("Symlink is dangling")
	return true
}
