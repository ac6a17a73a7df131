package config

// FormatRuleID renders a rule's identifier per format: the bare ID, the
// bare name, or "id/name". An empty ruleName always falls back to ruleID,
// since ID is the only value guaranteed present.
func FormatRuleID(format RuleFormat, ruleID, ruleName string) string {
	if ruleName == "" {
		return ruleID
	}
	switch format {
	case RuleFormatID:
		return ruleID
	case RuleFormatCombined:
		return ruleID + "/" + ruleName
	default:
		return ruleName
	}
}
