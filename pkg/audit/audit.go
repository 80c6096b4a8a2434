// Package audit appends operation results to a JSON lines log. Each line is
// one complete types.Result.
package audit

import (
	"encoding/json"
	"path/filepath"

	"github.com/arthur-debert/linkany/pkg/errors"
	"github.com/arthur-debert/linkany/pkg/logging"
	"github.com/arthur-debert/linkany/pkg/types"
)

// Suffix is appended to the absolute manifest path to name its default log
const Suffix = ".log.jsonl"

// DefaultLogPath returns the log that sits next to the manifest
func DefaultLogPath(manifestPath string) string {
	abs, err := filepath.Abs(manifestPath)
	if err != nil {
		abs = filepath.Clean(manifestPath)
	}
	return abs + Suffix
}

// Append writes r as a single line at the end of logPath
func Append(fs types.FS, logPath string, r *types.Result) error {
	line, err := json.Marshal(r)
	if err != nil {
		return errors.Wrap(err, errors.ErrAuditWrite, "failed to encode result")
	}
	line = append(line, '\n')

	if err := fs.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrAuditWrite, "failed to create %s", filepath.Dir(logPath))
	}
	if err := fs.AppendFile(logPath, line, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrAuditWrite, "failed to append to %s", logPath)
	}
	return nil
}

// Record appends r to logPath and notes the outcome on r itself: an
// executed audit step on success, or a failed audit step plus a warning.
// An audit failure never changes r.OK.
func Record(fs types.FS, logPath string, r *types.Result) {
	step := types.Step{
		Kind:    types.StepAudit,
		Message: "Append audit log",
		Paths:   map[string]string{types.PathFile: logPath},
	}

	if err := Append(fs, logPath, r); err != nil {
		msg := errors.Describe(err)
		logger := logging.GetLogger("audit")
		logger.Warn().Err(err).Str("path", logPath).Msg("Failed to write audit log")
		step.Status = types.StatusFailed
		step.Error = msg
		r.Warn("Failed to write audit log: " + msg)
		r.AddStep(step)
		return
	}

	step.Status = types.StatusExecuted
	r.AddStep(step)
}
