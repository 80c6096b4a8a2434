package plan

import (
	"github.com/arthur-debert/linkany/pkg/errors"
	"github.com/arthur-debert/linkany/pkg/types"
)

// Entry is a resolved manifest mapping, in manifest order
type Entry struct {
	Key string
	Mapping
}

// CompileInstallAll links every entry. It fails closed: if any entry's
// source is missing or its target is a real object, no steps are returned
// at all and the error names the offending entry.
func (c *Compiler) CompileInstallAll(entries []Entry) ([]types.Step, error) {
	var steps []types.Step

	for _, e := range entries {
		logger := c.logger.With().Str("key", e.Key).Logger()

		if !c.state.Exists(e.Source) {
			return nil, errors.Newf(errors.ErrSourceMissing, "Source missing: %s", e.Source).
				WithDetail("key", e.Key).
				WithDetail("source", e.Source)
		}

		targetExists := c.state.Exists(e.Target)
		if targetExists {
			isLink, err := c.state.IsSymlink(e.Target)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrInternal, "failed to inspect target %s", e.Target)
			}
			if !isLink {
				return nil, errors.Newf(errors.ErrTargetNotSymlink,
					"Conflict: target exists and is not a symlink: %s", e.Target).
					WithDetail("key", e.Key).
					WithDetail("target", e.Target)
			}
		}

		if c.state.ResolvesTo(e.Target, e.Source) {
			logger.Debug().Msg("Already installed")
			continue
		}

		kind, err := c.resolveKind(e.Kind, "", e.Source, true)
		if err != nil {
			return nil, err
		}

		if targetExists {
			if c.state.IsDangling(e.Target) {
				logger.Debug().Msg("Replacing dangling symlink")
			}
			if e.Atomic {
				steps = append(steps, c.PlanReplacement(e.Target).BackupStep())
			} else {
				steps = append(steps, types.UnlinkStep(e.Target, "Remove existing target symlink before linking"))
			}
		}
		steps = append(steps, c.LinkSteps(e.Source, e.Target, kind, e.Atomic)...)
		logger.Debug().Bool("replace", targetExists).Msg("Planned install")
	}

	return steps, nil
}

// CompileUninstallAll unlinks every entry's target. Real objects found at a
// target are left alone and reported as warnings.
func (c *Compiler) CompileUninstallAll(entries []Entry) ([]types.Step, []string) {
	var steps []types.Step
	var warnings []string
	for _, e := range entries {
		unlink, warning := c.Unlink(e.Target)
		steps = append(steps, unlink...)
		if warning != "" {
			warnings = append(warnings, warning)
		}
	}
	return steps, warnings
}
