package plan

import (
	"github.com/arthur-debert/linkany/pkg/errors"
	"github.com/arthur-debert/linkany/pkg/logging"
	"github.com/arthur-debert/linkany/pkg/state"
	"github.com/arthur-debert/linkany/pkg/types"
	"github.com/rs/zerolog"
)

// Mapping is a desired link with absolute paths
type Mapping struct {
	Source string
	Target string
	// Kind is the declared kind; empty means detect
	Kind   types.LinkKind
	Atomic bool
}

// Compiled is the plan for one mapping. Err is set, and Steps is empty,
// whenever the mapping is refused.
type Compiled struct {
	Steps       []types.Step
	Disposition types.Disposition
	Kind        types.LinkKind
	Err         error
}

// Compiler turns mappings into steps by inspecting the filesystem
type Compiler struct {
	state  *state.Classifier
	namer  *Namer
	logger zerolog.Logger
}

// New creates a compiler reading through fs and naming artifacts with namer
func New(fs types.FS, namer *Namer) *Compiler {
	if namer == nil {
		namer = NewNamer(nil)
	}
	return &Compiler{
		state:  state.New(fs),
		namer:  namer,
		logger: logging.GetLogger("plan"),
	}
}

// State exposes the classifier the compiler decides with
func (c *Compiler) State() *state.Classifier {
	return c.state
}

// CompileLinkMapping decides how to converge target into a symlink to source.
//
//   - target already resolves to source: noop, no steps
//   - target is a real object and source exists: conflict
//   - target is a real object and source is missing: migrate the target
//     into the source, back the target up, link
//   - otherwise: synthesize a missing source, drop a foreign symlink, link
func (c *Compiler) CompileLinkMapping(m Mapping) Compiled {
	logger := c.logger.With().Str("source", m.Source).Str("target", m.Target).Logger()

	if c.state.ResolvesTo(m.Target, m.Source) {
		logger.Debug().Msg("Target already links to source")
		return Compiled{Disposition: types.DispositionNoop, Kind: m.Kind}
	}

	sourceExists := c.state.Exists(m.Source)
	targetExists := c.state.Exists(m.Target)
	targetIsLink := false
	if targetExists {
		isLink, err := c.state.IsSymlink(m.Target)
		if err != nil {
			return refuse(errors.Wrapf(err, errors.ErrInternal, "failed to inspect target %s", m.Target))
		}
		targetIsLink = isLink
	}

	if targetExists && !targetIsLink {
		if sourceExists {
			logger.Debug().Msg("Source and target both exist")
			return refuse(errors.Newf(errors.ErrConflict,
				"Refusing to proceed: source and target both exist: source=%s target=%s", m.Source, m.Target).
				WithDetail("source", m.Source).
				WithDetail("target", m.Target))
		}
		return c.compileMigration(m)
	}

	if targetIsLink && !sourceExists {
		return refuse(errors.Newf(errors.ErrSymlinkMigration,
			"Refusing to migrate: target is an existing symlink: %s", m.Target))
	}

	kind, err := c.resolveKind(m.Kind, "", m.Source, sourceExists)
	if err != nil {
		return refuse(err)
	}

	var steps []types.Step
	if !sourceExists {
		steps = append(steps, c.EnsureSource(m.Source, kind)...)
	}

	disposition := types.DispositionCreate
	if targetIsLink {
		disposition = types.DispositionReplace
		steps = append(steps, types.UnlinkStep(m.Target, "Remove existing symlink before re-link"))
	}
	steps = append(steps, c.LinkSteps(m.Source, m.Target, kind, m.Atomic)...)

	logger.Debug().Str("disposition", string(disposition)).Int("steps", len(steps)).Msg("Compiled mapping")
	return Compiled{Steps: steps, Disposition: disposition, Kind: kind}
}

// compileMigration promotes an existing real target to become the source:
// copy it over, move the original aside, link.
func (c *Compiler) compileMigration(m Mapping) Compiled {
	kind, err := c.resolveKind(m.Kind, m.Target, "", false)
	if err != nil {
		return refuse(err)
	}

	steps := c.CopySteps(m.Target, m.Source, kind, m.Atomic)
	steps = append(steps, c.PlanReplacement(m.Target).LinkSteps(m.Source, kind, m.Atomic)...)

	c.logger.Debug().
		Str("target", m.Target).
		Str("kind", string(kind)).
		Msg("Compiled migration of existing target into source")
	return Compiled{Steps: steps, Disposition: types.DispositionReplace, Kind: kind}
}

// resolveKind applies the precedence declared > existing target > existing
// source > file. A declaration that contradicts an existing real object is
// refused.
func (c *Compiler) resolveKind(declared types.LinkKind, target, source string, sourceExists bool) (types.LinkKind, error) {
	var observed types.LinkKind
	var observedPath string

	switch {
	case target != "":
		kind, err := c.state.DetectKind(target)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrInternal, "failed to detect kind of %s", target)
		}
		observed, observedPath = kind, target
	case sourceExists:
		kind, err := c.state.DetectKind(source)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrInternal, "failed to detect kind of %s", source)
		}
		observed, observedPath = kind, source
	}

	switch {
	case declared != "" && observed != "" && declared != observed:
		return "", errors.Newf(errors.ErrKindMismatch,
			"Declared kind %s does not match existing %s: %s", declared, observed, observedPath)
	case declared != "":
		return declared, nil
	case observed != "":
		return observed, nil
	default:
		return types.KindFile, nil
	}
}

func refuse(err error) Compiled {
	return Compiled{Disposition: types.DispositionConflict, Err: err}
}
