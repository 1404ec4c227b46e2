package reason

// Rule is a single classification heuristic.
// Apply returns a partial Classification and true if the rule matched, or a
// zero Classification and false if it doesn't apply.
type Rule interface {
	Name() string
	Apply(input *Input) (Classification, bool)
}

// DefaultRules returns rules in priority order, most-specific-first.
// Delegation takes precedence over everything else: a delegation attempt
// phrased as a question must still classify as delegation, otherwise it
// slips past governance at a permissive help level.
func DefaultRules() []Rule {
	return []Rule{
		&DelegationRule{},
		&JustificationRule{},
		&DecisionRule{},
		&ExplanationRule{},
		&HintRequestRule{},
		&QuestionRule{},
	}
}

// RunRules executes rules in order and returns the first match.
// Returns (zero, false) if no rule applies.
func RunRules(rules []Rule, input *Input) (Classification, bool) {
	for _, r := range rules {
		if cls, ok := r.Apply(input); ok {
			cls.RuleName = r.Name()
			return cls, true
		}
	}
	return Classification{}, false
}
