package lint

import "github.com/yaklabco/mkdlint/pkg/config"

// ResolvedRule pairs a Rule with its effective configuration after merging
// registry defaults, CLI overrides, and config-file settings.
type ResolvedRule struct {
	Rule     Rule
	Enabled  bool
	Severity config.Severity
	AutoFix  bool
	Config   *config.RuleConfig
}

// ResolveRules walks every rule in registry and returns the ones that end up
// enabled, each paired with its resolved severity/autofix/config.
func ResolveRules(registry *Registry, cfg *config.Config) []ResolvedRule {
	resolved := make([]ResolvedRule, 0, len(registry.Rules()))
	for _, rule := range registry.Rules() {
		if rr := resolveOne(rule, cfg); rr.Enabled {
			resolved = append(resolved, rr)
		}
	}
	return resolved
}

// resolveOne computes a single rule's resolution. Precedence, highest last:
// registry defaults, rule-specific config, CLI enable/disable lists, the
// fix-rules filter, and finally the global --fix switch.
func resolveOne(rule Rule, cfg *config.Config) ResolvedRule {
	rr := ResolvedRule{
		Rule:     rule,
		Enabled:  rule.DefaultEnabled(),
		Severity: rule.DefaultSeverity(),
		AutoFix:  rule.CanFix(),
	}
	if cfg == nil {
		return rr
	}

	if ruleCfg, ok := cfg.Rules[rule.ID()]; ok {
		rr.Config = &ruleCfg
		if ruleCfg.Enabled != nil {
			rr.Enabled = *ruleCfg.Enabled
		}
		if ruleCfg.Severity != nil {
			rr.Severity = config.Severity(*ruleCfg.Severity)
		}
		if ruleCfg.AutoFix != nil {
			rr.AutoFix = *ruleCfg.AutoFix && rule.CanFix()
		}
	}

	if containsID(cfg.EnableRules, rule.ID()) {
		rr.Enabled = true
	}
	if containsID(cfg.DisableRules, rule.ID()) {
		rr.Enabled = false
	}

	if len(cfg.FixRules) > 0 {
		rr.AutoFix = rule.CanFix() && containsID(cfg.FixRules, rule.ID())
	}
	if !cfg.Fix {
		rr.AutoFix = false
	}

	return rr
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
