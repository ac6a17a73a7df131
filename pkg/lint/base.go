package lint

import "github.com/yaklabco/mkdlint/pkg/config"

// BaseRule is the common embedding for concrete Rule implementations. It
// supplies the identity/metadata accessors; embedders override DefaultEnabled,
// DefaultSeverity, and Apply as needed.
type BaseRule struct {
	id      string
	name    string
	desc    string
	tags    []string
	fixable bool
}

// NewBaseRule builds a BaseRule from a rule's static metadata.
func NewBaseRule(id, name, desc string, tags []string, fixable bool) BaseRule {
	return BaseRule{id: id, name: name, desc: desc, tags: tags, fixable: fixable}
}

func (r *BaseRule) ID() string          { return r.id }
func (r *BaseRule) Name() string        { return r.name }
func (r *BaseRule) Description() string { return r.desc }
func (r *BaseRule) Tags() []string      { return r.tags }
func (r *BaseRule) CanFix() bool        { return r.fixable }

// DefaultEnabled reports true; override to opt a rule out by default.
func (r *BaseRule) DefaultEnabled() bool { return true }

// DefaultSeverity reports warning; override for rules that default elsewhere.
func (r *BaseRule) DefaultSeverity() config.Severity { return config.SeverityWarning }

// Apply is a no-op placeholder; every concrete rule overrides it.
func (r *BaseRule) Apply(_ *RuleContext) ([]Diagnostic, error) { return nil, nil }
