package config

import "fmt"

// ConfigParseError wraps a failure to parse a configuration file, naming the
// path that failed.
type ConfigParseError struct {
	Path string
	Err  error
}

func (e *ConfigParseError) Error() string {
	return fmt.Sprintf("parse config %s: %v", e.Path, e.Err)
}

func (e *ConfigParseError) Unwrap() error {
	return e.Err
}

// ConfigCycle is returned when a config's `extends` chain revisits a file
// already in the chain being resolved.
type ConfigCycle struct {
	Chain []string
}

func (e *ConfigCycle) Error() string {
	msg := "config extends cycle detected:"
	for _, p := range e.Chain {
		msg += " " + p + " ->"
	}
	return msg + " (cycle)"
}

// UnknownRuleError describes a rule ID or alias that does not exist in the
// registry. No code in this module returns it: an unknown rule key in a
// config file produces a validation warning instead.
type UnknownRuleError struct {
	RuleID string
}

func (e *UnknownRuleError) Error() string {
	return fmt.Sprintf("unknown rule %q", e.RuleID)
}

// EncodingError is returned when input content is not valid UTF-8.
type EncodingError struct {
	Path string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("%s: not valid UTF-8", e.Path)
}
