package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mkdlint/internal/logging"
	"github.com/yaklabco/mkdlint/pkg/lint"
)

func newExplainCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain <rule>",
		Short: "Print documentation for a lint rule",
		Long: `Print a rule's description, default severity, tags, and whether it is
auto-fixable. If the rule name is unknown, suggests lexically similar rule
IDs from the registry.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runExplain(args[0])
		},
	}

	return cmd
}

func runExplain(name string) error {
	registry := lint.DefaultRegistry

	id, rule, found := registry.Resolve(name)
	if !found {
		id, rule, found = registry.Resolve(strings.ToUpper(name))
	}

	logger := logging.NewInteractive()

	if !found {
		fmt.Printf("unknown rule %q\n", name)
		suggestions := suggestSimilarRules(registry, name)
		if len(suggestions) > 0 {
			fmt.Println("\ndid you mean one of these?")
			for _, s := range suggestions {
				fmt.Printf("  %s\n", s)
			}
		}
		return fmt.Errorf("unknown rule: %s", name)
	}

	fixable := "no"
	if rule.CanFix() {
		fixable = "yes"
	}

	fmt.Printf("%s (%s)\n\n", id, rule.Name())
	fmt.Println(rule.Description())
	fmt.Println()

	logger.Info("rule details",
		logging.FieldSeverity, rule.DefaultSeverity(),
		logging.FieldFixable, fixable,
	)

	if tags := rule.Tags(); len(tags) > 0 {
		fmt.Printf("tags: %s\n", strings.Join(tags, ", "))
	}

	if !rule.DefaultEnabled() {
		fmt.Println("disabled by default")
	}

	return nil
}

// suggestSimilarRules returns up to 5 registered rule IDs ranked by
// Levenshtein distance to name, for typo suggestions in error output.
func suggestSimilarRules(registry *lint.Registry, name string) []string {
	upper := strings.ToUpper(name)

	type scored struct {
		id   string
		dist int
	}

	ids := registry.IDs()
	scoredIDs := make([]scored, 0, len(ids))
	for _, id := range ids {
		scoredIDs = append(scoredIDs, scored{id: id, dist: levenshtein(upper, id)})
	}

	sort.Slice(scoredIDs, func(i, j int) bool {
		if scoredIDs[i].dist != scoredIDs[j].dist {
			return scoredIDs[i].dist < scoredIDs[j].dist
		}
		return scoredIDs[i].id < scoredIDs[j].id
	})

	result := make([]string, 0, 5)
	for i := 0; i < len(scoredIDs) && i < 5; i++ {
		result = append(result, scoredIDs[i].id)
	}
	return result
}

// levenshtein computes the edit distance between two strings.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)

	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
