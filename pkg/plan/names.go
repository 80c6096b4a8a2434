package plan

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

const (
	tempMarker   = ".tmp."
	backupMarker = ".bak."
)

// Namer produces sibling paths for staged and backed up artifacts
type Namer struct {
	clock  clockwork.Clock
	suffix func() string
}

// NewNamer creates a Namer stamping backups with clock
func NewNamer(clock clockwork.Clock) *Namer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Namer{clock: clock, suffix: randomSuffix}
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// TempPath returns target.tmp.<random>
func (n *Namer) TempPath(target string) string {
	return target + tempMarker + n.suffix()
}

// BackupPath returns target.bak.<unix millis>.<random>. Backups are never
// reused because of the random suffix.
func (n *Namer) BackupPath(target string) string {
	ts := strconv.FormatInt(n.clock.Now().UnixMilli(), 10)
	return target + backupMarker + ts + "." + n.suffix()
}

// IsTempPath reports whether p follows the *.tmp.* naming convention
func IsTempPath(p string) bool {
	return p != "" && strings.Contains(filepath.Base(p), tempMarker)
}

// IsBackupPath reports whether p follows the *.bak.* naming convention
func IsBackupPath(p string) bool {
	return p != "" && strings.Contains(filepath.Base(p), backupMarker)
}
