package validator

// Ruleset is an ordered collection of rules evaluated together.
type Ruleset struct {
	rules []Rule
}

// NewRuleset creates a Ruleset. Rule order is evaluation order and only
// affects the order of returned events.
func NewRuleset(rules ...Rule) *Ruleset {
	rs := &Ruleset{rules: make([]Rule, len(rules))}
	copy(rs.rules, rules)
	return rs
}

// Rules returns a copy of the rules in evaluation order.
func (rs *Ruleset) Rules() []Rule {
	out := make([]Rule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// Len returns the number of rules.
func (rs *Ruleset) Len() int {
	return len(rs.rules)
}

// Validate runs every rule against meta. It returns the events in rule order
// and passes is false iff any event has SeverityError.
func (rs *Ruleset) Validate(meta Metadata) (passes bool, events Events) {
	for _, rule := range rs.rules {
		if ev := rule.Check(meta); ev != nil {
			events = append(events, *ev)
		}
	}
	return !events.HasErrors(), events
}
