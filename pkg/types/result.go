package types

import "time"

// Change actions reported in Result.Changes
const (
	ChangeCreateSourceFile = "create_source_file"
	ChangeCreateSourceDir  = "create_source_dir"
	ChangeSymlink          = "symlink"
	ChangeUnlink           = "unlink"
	ChangeRemove           = "rm"
	ChangeMove             = "move"
	ChangeCopy             = "copy"
	ChangeManifestUpsert   = "manifest_upsert"
	ChangeManifestRemove   = "manifest_remove"
)

// Change is a semantic record of something that happened, meant for
// consumers that do not want to interpret raw steps.
type Change struct {
	Action string `json:"action"`
	Source string `json:"source,omitempty"`
	Target string `json:"target,omitempty"`
}

// Result is the outcome of one operation. It is also the unit appended to
// the audit log.
type Result struct {
	OK            bool      `json:"ok"`
	Operation     Operation `json:"operation"`
	ManifestPath  string    `json:"manifestPath,omitempty"`
	StartedAt     time.Time `json:"startedAt"`
	FinishedAt    time.Time `json:"finishedAt"`
	DurationMs    int64     `json:"durationMs"`
	Steps         []Step    `json:"steps"`
	Warnings      []string  `json:"warnings"`
	Errors        []string  `json:"errors"`
	Changes       []Change  `json:"changes"`
	RollbackSteps []Step    `json:"rollbackSteps,omitempty"`
	PlanText      string    `json:"planText,omitempty"`
}

// NewResult returns a successful, empty result stamped at now
func NewResult(op Operation, manifestPath string, now time.Time) *Result {
	return &Result{
		OK:           true,
		Operation:    op,
		ManifestPath: manifestPath,
		StartedAt:    now,
		FinishedAt:   now,
		Steps:        []Step{},
		Warnings:     []string{},
		Errors:       []string{},
		Changes:      []Change{},
	}
}

// Fail marks the result as failed and records msg
func (r *Result) Fail(msg string) {
	r.OK = false
	r.Errors = append(r.Errors, msg)
}

// Warn records a warning. Warnings never change OK.
func (r *Result) Warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// AddChange appends a semantic change record
func (r *Result) AddChange(action, source, target string) {
	r.Changes = append(r.Changes, Change{Action: action, Source: source, Target: target})
}

// AddStep appends an already resolved step
func (r *Result) AddStep(s Step) {
	r.Steps = append(r.Steps, s)
}

// Finish stamps the end time and duration
func (r *Result) Finish(now time.Time) {
	r.FinishedAt = now
	r.DurationMs = now.Sub(r.StartedAt).Milliseconds()
}

// HasFailedStep reports whether any step that decides OK failed. A failed
// audit append is only a warning and is not counted.
func (r *Result) HasFailedStep() bool {
	for _, s := range r.Steps {
		if s.Status == StatusFailed && s.Kind != StepAudit {
			return true
		}
	}
	return false
}

// StepsWithStatus returns the steps currently in the given status
func (r *Result) StepsWithStatus(status StepStatus) []Step {
	var out []Step
	for _, s := range r.Steps {
		if s.Status == status {
			out = append(out, s)
		}
	}
	return out
}
