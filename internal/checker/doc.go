// Package checker applies pattern-scoped rulesets to documents.
//
// A [Checker] holds an ordered list of [PatternRuleset] values built from
// configuration. [Checker.Check] extracts a document's frontmatter, selects
// every pattern whose glob matches the document path and runs the matching
// rulesets, producing a [DocumentResult]. [Checker.CheckAll] does the same
// for many documents on a bounded worker pool.
//
// A Checker is read-only after construction and safe for concurrent use.
package checker
