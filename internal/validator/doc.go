// Package validator evaluates frontmatter metadata against field rules.
//
// A [Rule] checks a single named field of a metadata mapping and produces at
// most one [Event] per call. A [Ruleset] runs an ordered list of rules against
// the same metadata and reduces the events to a pass/fail verdict. Only events
// at [SeverityError] fail a ruleset; [SeverityWarn] events are reported but
// non-fatal and [SeveritySkip] events are never shown to users.
//
// # Core Concepts
//
//   - [Severity]: how a single violation is graded (skip, warn, error).
//   - [Event]: one graded diagnostic with field context.
//   - [Rule]: a short-circuiting missing/null/type check for one field.
//   - [Ruleset]: an ordered collection of rules and its verdict.
//
// # Basic Usage
//
//	title, err := validator.NewRule("title", validator.WithType(validator.TypeString))
//	if err != nil {
//		return err
//	}
//	rs := validator.NewRuleset(title)
//
//	passes, events := rs.Validate(meta)
//	if !passes {
//		// at least one error-level event
//	}
//
// All types in this package are immutable after construction and safe for
// concurrent use.
package validator
