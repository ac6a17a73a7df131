package mermaid

import "github.com/yaklabco/mkdlint/pkg/lint"

// RegisterMermaidRules registers all mermaid validation rules.
func RegisterMermaidRules(registry *lint.Registry) {
	registry.Register(NewSyntaxRule())             // MM001
	registry.Register(NewUndefinedReferenceRule()) // MM002
	registry.Register(NewDuplicateIDRule())        // MM003
	registry.Register(NewInvalidDirectionRule())   // MM004
	registry.Register(NewTypeCheckRule())          // MM005
}
